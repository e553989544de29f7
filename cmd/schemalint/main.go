// Command schemalint validates relational data-modeling schema files
// against the rule engine in package validate.
package main

import (
	"os"

	"github.com/schemalint/validate/cmd/schemalint/internal/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
