package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/xfind/internal/core/project"
	"github.com/colonyops/xfind/internal/tui"
)

type TuiCmd struct {
	flags *Flags

	// flags
	open bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "open",
			Aliases:     []string{"o"},
			Usage:       "open the file finder immediately",
			Sources:     cli.EnvVars("XFIND_OPEN"),
			Destination: &cmd.open,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the interactive workspace",
		UsageText: "xfind tui [--open] [root...]",
		Flags:     cmd.Flags(),
		Action:    cmd.Run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	p, err := scanProject(ctx, cmd.flags.Config, c.Args().Slice())
	if err != nil {
		return err
	}

	log.Info().
		Strs("roots", p.Roots()).
		Int("files", len(p.Paths())).
		Msg("starting workspace")

	m := tui.New(
		tui.Deps{Config: cmd.flags.Config, Project: p},
		tui.Opts{OpenFinder: cmd.open},
	)

	prog := tea.NewProgram(m)

	if cmd.flags.Config.Watch {
		stop, err := watchProject(ctx, p, prog)
		if err != nil {
			// The workspace still works; ctrl+r rescans by hand.
			log.Warn().Err(err).Msg("file watching disabled")
		} else {
			defer stop()
		}
	}

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

// watchProject keeps p current while prog runs and tells the workspace about
// every change. The returned func stops the watcher.
func watchProject(ctx context.Context, p *project.Project, prog *tea.Program) (func(), error) {
	w, err := project.NewWatcher(p)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		err := w.Run(ctx, func() { prog.Send(tui.ProjectChangedMsg{}) })
		if err != nil {
			log.Error().Err(err).Msg("watcher stopped")
		}
	}()

	return func() {
		cancel()
		if err := w.Close(); err != nil {
			log.Warn().Err(err).Msg("close watcher")
		}
		<-done
	}, nil
}
