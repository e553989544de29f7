// Package cli assembles schemalint's cobra command tree: validate, watch,
// doctor, init and explain.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/schemalint/validate/cmd/schemalint/internal/config"
	"github.com/schemalint/validate/cmd/schemalint/internal/run"
	"github.com/schemalint/validate/cmd/schemalint/internal/ui"
	"github.com/schemalint/validate/cmd/schemalint/internal/watch"
	"github.com/schemalint/validate/connector"
)

// NewRoot builds the top-level `schemalint` command.
func NewRoot() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "schemalint",
		Short: "Validate relational data-modeling schemas",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColor()
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(newValidateCmd(), newWatchCmd(), newDoctorCmd(), newInitCmd(), newExplainCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a schema file and print diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if schemaPath == "" {
				schemaPath = cfg.SchemaPath
			}
			return validateOnce(afero.NewOsFs(), schemaPath)
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "path to the schema file (default from schemalint.yaml)")
	return cmd
}

func validateOnce(fs afero.Fs, schemaPath string) error {
	ui.Header(schemaPath)
	outcome, err := run.Schema(fs, schemaPath)
	if err != nil {
		return err
	}
	if len(outcome.Errors) == 0 {
		ui.Success()
		return nil
	}
	ui.Failure(len(outcome.Errors), 0)
	for _, msg := range outcome.Errors {
		fmt.Println(" ", msg)
	}
	return fmt.Errorf("%d validation error(s)", len(outcome.Errors))
}

func newWatchCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate the schema on every save",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if schemaPath == "" {
				schemaPath = cfg.SchemaPath
			}
			fs := afero.NewOsFs()
			return watch.Run(schemaPath, func() error {
				_ = validateOnce(fs, schemaPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "path to the schema file")
	return cmd
}

func newDoctorCmd() *cobra.Command {
	var provider, url string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Ping the configured datasource and check its version",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, ok := connector.ByProvider(provider)
			if !ok {
				return fmt.Errorf("unknown provider %q", provider)
			}
			stop := ui.Spinner(fmt.Sprintf("pinging %s", provider))
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err := conn.Ping(ctx, url)
			stop(err == nil)
			return err
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "postgresql", "connector provider")
	cmd.Flags().StringVar(&url, "url", "", "datasource connection string")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively scaffold a schemalint.yaml and datasource block",
		RunE: func(cmd *cobra.Command, args []string) error {
			var provider, schemaPath string
			var strict bool
			if err := survey.Ask([]*survey.Question{
				{
					Name:     "provider",
					Prompt:   &survey.Select{Message: "Datasource provider:", Options: []string{"postgresql", "mysql", "sqlite", "cockroachdb"}},
					Validate: survey.Required,
				},
				{
					Name:   "schema",
					Prompt: &survey.Input{Message: "Schema file path:", Default: "schema.prisma"},
				},
				{
					Name:   "strict",
					Prompt: &survey.Confirm{Message: "Fail validation on warnings too?", Default: false},
				},
			}, &struct {
				Provider *string `survey:"provider"`
				Schema   *string `survey:"schema"`
				Strict   *bool   `survey:"strict"`
			}{&provider, &schemaPath, &strict}); err != nil {
				return err
			}

			cfg := config.Config{SchemaPath: schemaPath, Strict: strict}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := afero.WriteFile(afero.NewOsFs(), "schemalint.yaml", out, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote schemalint.yaml for provider %q\n", provider)
			return nil
		},
	}
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <rule>",
		Short: "Render a rule's explanation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, ok := ruleDocs[args[0]]
			if !ok {
				return fmt.Errorf("no such rule %q", args[0])
			}
			fmt.Println(ui.RenderMarkdown(doc))
			return nil
		},
	}
}

var ruleDocs = map[string]string{
	"R4":  "# R4 — strict unique criterion\n\nEvery non-ignored model may have at most one identity criterion and needs at least one unique criterion whose fields are all required.",
	"R13": "# R13 — relation referenced fields\n\n`references` must name existing, scalar fields on the related model, type-compatible with the relation's `fields`, that together form a unique criterion unless the connector supports relations over non-unique criteria.",
}
