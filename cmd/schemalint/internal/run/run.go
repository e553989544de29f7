// Package run wires the validator's two passes together against a real
// schema file read through an afero filesystem, for use by every CLI
// subcommand that needs to actually validate something.
package run

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/schemalint/validate/connector"
	"github.com/schemalint/validate/diagnostics"
	"github.com/schemalint/validate/dmir"
	"github.com/schemalint/validate/elaborate"
	"github.com/schemalint/validate/schemaparse"
	"github.com/schemalint/validate/standardize"
	"github.com/schemalint/validate/validate"
)

// Outcome is the result of validating one schema file.
type Outcome struct {
	Source string
	Errors []string
}

// Schema reads and validates the file at path through fs, running both
// validator passes with standardisation in between, per spec.md §2's
// control flow.
func Schema(fs afero.Fs, path string) (*Outcome, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(data)

	parsed, err := schemaparse.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var ds *dmir.Datasource
	if conn, ok := connector.ByProvider(parsed.Provider); ok {
		ds = &dmir.Datasource{Provider: conn.Provider, CombinedConnector: conn.Capabilities, ActiveConnector: conn}
	}

	dm := elaborate.Elaborate(parsed.Ast, ds)

	out := &Outcome{Source: path}
	if err := validate.Validate(parsed.Ast, dm); err != nil {
		collect(out, err)
	}

	standardize.Standardise(dm)

	if err := validate.PostStandardisationValidate(parsed.Ast, dm); err != nil {
		collect(out, err)
	}

	return out, nil
}

func collect(out *Outcome, err error) {
	if bag, ok := err.(*diagnostics.Bag); ok {
		for _, d := range bag.Errors() {
			out.Errors = append(out.Errors, d.Message)
		}
		return
	}
	out.Errors = append(out.Errors, err.Error())
}
