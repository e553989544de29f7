package connector

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// driverName maps a connector's provider to the database/sql driver
// registered by its import side-effect above.
func (c *Connector) driverName() (string, bool) {
	switch c.Provider {
	case "postgresql", "cockroachdb":
		return "postgres", true
	case "mysql":
		return "mysql", true
	case "sqlite":
		return "sqlite3", true
	default:
		return "", false
	}
}

// Ping opens a real connection to url and reports whether the server is
// reachable. It does not check the server version against MinimumVersion.
// Validation itself never calls this — capabilities are static per
// connector — but the CLI's `doctor` subcommand uses it to confirm a
// datasource is live.
func (c *Connector) Ping(ctx context.Context, url string) error {
	driver, ok := c.driverName()
	if !ok {
		return fmt.Errorf("connector %q has no registered database/sql driver", c.Provider)
	}
	db, err := sql.Open(driver, url)
	if err != nil {
		return fmt.Errorf("opening %s connection: %w", c.Provider, err)
	}
	defer db.Close()
	return db.PingContext(ctx)
}
