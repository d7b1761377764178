package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/xfind/internal/core/project"
	"github.com/colonyops/xfind/internal/core/styles"
	"github.com/colonyops/xfind/internal/tui/finder"
	"github.com/colonyops/xfind/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	limit      int
	roots      []string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List files matching a query",
		UsageText: "xfind ls [--json] [--limit n] [--root dir]... [query]",
		Description: `Scans the configured roots and prints every file whose path contains the
query, case-insensitively, in scan order. With no query every file is listed.

Use --json to print the finder state (query and items) as a single JSON line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the finder state as JSON",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of results (0 = config finder.max_results)",
				Destination: &cmd.limit,
			},
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

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	p, err := scanProject(ctx, cmd.flags.Config, cmd.roots)
	if err != nil {
		return err
	}

	limit := cmd.limit
	if limit == 0 {
		limit = cmd.flags.Config.Finder.MaxResults
	}

	query := c.Args().First()
	view := finder.New(query, finder.ItemsFromPaths(project.Filter(p.Paths(), query, limit)), nil)

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, finder.State{
			Query: view.Query(),
			Items: view.Items(),
		})
	}

	if len(view.Items()) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No matching files")
		return nil
	}

	if !isTerminal(out) {
		_, err := fmt.Fprint(out, finder.PlainRows(view.Render()))
		return err
	}

	list, _ := view.Render().Find(finder.ListID)
	for _, row := range list.Children {
		_, _ = fmt.Fprintln(out, finder.HighlightMatch(styles.PathStyle, row.Text, view.Query()))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
