package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colonyops/xfind/internal/core/logging"
)

// Watcher keeps a Project's paths current from filesystem events. fsnotify
// is not recursive, so every directory that is not ignored gets its own
// watch, including ones created later.
type Watcher struct {
	project *Project
	fsw     *fsnotify.Watcher
	log     zerolog.Logger
}

// NewWatcher starts watching every root of p. The project should have been
// scanned first; events only patch the last scan.
func NewWatcher(p *Project) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		project: p,
		fsw:     fsw,
		log:     logging.Component("watcher"),
	}

	for _, root := range p.roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Run applies events until ctx is done or the watcher is closed. changed is
// called after every event that altered the project's paths.
func (w *Watcher) Run(ctx context.Context, changed func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(ctx, ev) && changed != nil {
				changed()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

// Close stops the watcher. Run returns once it notices.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) bool {
	w.log.Debug().Stringer("op", ev.Op).Str("path", ev.Name).Msg("fs event")

	// Ignore rules changed; patching is not enough.
	if filepath.Base(ev.Name) == ".gitignore" && w.project.gitignore {
		if err := w.project.Rescan(ctx); err != nil {
			w.log.Warn().Err(err).Msg("rescan after .gitignore change failed")
			return false
		}
		return true
	}

	switch {
	case ev.Has(fsnotify.Create):
		if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() && !w.project.excluded(ev.Name) {
			if err := w.addTree(ev.Name); err != nil {
				w.log.Warn().Err(err).Str("path", ev.Name).Msg("watch new directory")
			}
		}
		changed, err := w.project.Insert(ctx, ev.Name)
		if err != nil {
			w.log.Warn().Err(err).Str("path", ev.Name).Msg("insert path")
		}
		return changed

	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		// The watch on a removed directory goes away with it.
		_ = w.fsw.Remove(ev.Name)
		return w.project.Remove(ev.Name)
	}

	return false
}

// addTree watches dir and every directory below it that is not ignored.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != dir && w.project.excluded(path) {
			return fs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
		return nil
	})
}
