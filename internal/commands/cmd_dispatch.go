package commands

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/xfind/internal/core/logging"
	"github.com/colonyops/xfind/internal/tui"
	"github.com/colonyops/xfind/pkg/iojson"
)

type DispatchCmd struct {
	flags *Flags

	reader iojson.FileReader[[]json.RawMessage]
	roots  []string
}

// NewDispatchCmd creates a new dispatch command
func NewDispatchCmd(flags *Flags) *DispatchCmd {
	return &DispatchCmd{flags: flags}
}

// Register adds the dispatch command to the application
func (cmd *DispatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dispatch",
		Usage:     "Replay finder actions and print the resulting state",
		UsageText: "xfind dispatch [-f actions.json] [--root dir]...",
		Description: `Reads a JSON array of finder actions from a file or stdin, applies them in
order to a fresh finder store, and prints the final state as JSON.

Example:
  echo '[{"type":"UpdateQuery","query":"main"}]' | xfind dispatch

Unrecognized actions are logged and skipped.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringSliceFlag{
				Name:        "root",
				Usage:       "root directory to scan (repeatable, overrides config)",
				Destination: &cmd.roots,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DispatchCmd) run(ctx context.Context, c *cli.Command) error {
	actions, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	p, err := scanProject(ctx, cmd.flags.Config, cmd.roots)
	if err != nil {
		return err
	}

	store := tui.NewFinderStore(p, cmd.flags.Config.Finder.MaxResults, logging.Component("dispatch"))
	for _, raw := range actions {
		store.DispatchJSON(raw)
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, store.State())
}
