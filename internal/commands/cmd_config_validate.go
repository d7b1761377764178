package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/xfind/internal/core/styles"
	"github.com/colonyops/xfind/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "xfind config validate [options]",
				Description: "Validates the configuration file, checking that roots exist and ignore patterns parse.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	issues := collectIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))

	if cmd.format == "json" {
		err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, struct {
			Valid  bool              `json:"valid"`
			Errors []validationIssue `json:"errors,omitempty"`
		}{
			Valid:  len(issues) == 0,
			Errors: issues,
		})
		if err != nil {
			return err
		}
		if len(issues) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	out := c.Root().Writer
	for _, issue := range issues {
		if issue.Field != "" {
			_, _ = fmt.Fprintf(out, "%s %s\n", styles.ErrorTextStyle.Render(issue.Field+":"), issue.Message)
			continue
		}
		_, _ = fmt.Fprintln(out, styles.ErrorTextStyle.Render(issue.Message))
	}

	if len(issues) == 0 {
		_, _ = fmt.Fprintln(out, styles.SuccessTextStyle.Render("Configuration is valid"))
		return nil
	}

	_, _ = fmt.Fprintf(out, "\n%s\n", styles.ErrorTextStyle.Render(fmt.Sprintf("%d error(s) found", len(issues))))
	return cli.Exit("", 1)
}

// collectIssues flattens criterio field errors; any other error becomes a
// single issue without a field.
func collectIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
