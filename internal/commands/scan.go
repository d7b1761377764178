package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/xfind/internal/core/config"
	"github.com/colonyops/xfind/internal/core/project"
)

// scanProject builds a project from the config roots (or args, when given)
// and runs an initial scan.
func scanProject(ctx context.Context, cfg *config.Config, args []string) (*project.Project, error) {
	roots := cfg.Roots
	if len(args) > 0 {
		roots = args
	}

	scoped := *cfg
	scoped.Roots = roots
	abs, err := scoped.AbsRoots()
	if err != nil {
		return nil, err
	}

	p := project.New(abs, cfg.Ignore, project.WithGitignore(cfg.Gitignore))
	if err := p.Rescan(ctx); err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return p, nil
}
