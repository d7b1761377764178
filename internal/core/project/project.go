// Package project scans a set of root directories for the files the finder
// can show.
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/xfind/internal/core/logging"
)

// Option configures a Project.
type Option func(*Project)

// WithGitignore controls whether .gitignore files found during a walk add to
// the ignore patterns. It is on by default.
func WithGitignore(enabled bool) Option {
	return func(p *Project) {
		p.gitignore = enabled
	}
}

// tree is the scan result for one root.
type tree struct {
	paths  []string // slash-separated, relative to the root, in walk order
	ignore []string // patterns read from .gitignore files, relative to the root
}

// Project holds the roots to scan and the result of the last scan.
type Project struct {
	roots     []string
	ignore    []string
	gitignore bool
	log       zerolog.Logger

	mu    sync.RWMutex
	trees []tree // one per root, in root order
}

// New creates a project over roots. Ignore patterns use doublestar syntax and
// are matched against slash-separated paths relative to each root.
func New(roots, ignore []string, opts ...Option) *Project {
	p := &Project{
		roots:     roots,
		ignore:    ignore,
		gitignore: true,
		log:       logging.Component("project"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Roots returns the scanned root directories.
func (p *Project) Roots() []string {
	return p.roots
}

// Paths returns a copy of the known paths. When more than one root is
// configured each path is prefixed with its root's base name.
func (p *Project) Paths() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prefixed := len(p.roots) > 1

	var out []string
	for i, t := range p.trees {
		if !prefixed {
			out = append(out, t.paths...)
			continue
		}
		base := filepath.Base(p.roots[i])
		for _, rel := range t.paths {
			out = append(out, base+"/"+rel)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Rescan walks every root in order and replaces the known paths. Within a
// directory entries are visited in lexical order. On error the previous
// result is kept.
func (p *Project) Rescan(ctx context.Context) error {
	trees := make([]tree, 0, len(p.roots))

	for _, root := range p.roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("stat root %q: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("root %q is not a directory", root)
		}

		paths, ignore, err := p.collect(ctx, root, root, nil)
		if err != nil {
			return err
		}
		trees = append(trees, tree{paths: paths, ignore: ignore})
	}

	p.mu.Lock()
	p.trees = trees
	p.mu.Unlock()

	p.log.Debug().
		Int("roots", len(p.roots)).
		Int("files", countPaths(trees)).
		Msg("project rescanned")

	return nil
}

// Insert adds the file at path, or every file below it when path is a
// directory. It reports whether the known paths changed. Paths outside the
// roots, ignored paths and paths that no longer exist are skipped.
func (p *Project) Insert(ctx context.Context, path string) (bool, error) {
	idx, rel, ok := p.locate(path)
	if !ok {
		return false, nil
	}

	p.mu.RLock()
	if idx >= len(p.trees) {
		p.mu.RUnlock()
		return false, nil
	}
	inherited := slices.Clone(p.trees[idx].ignore)
	p.mu.RUnlock()

	if p.ignoredPath(rel, inherited) {
		return false, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		// Created and removed again before we got to it.
		return false, nil
	}

	var (
		found  []string
		ignore []string
	)
	switch {
	case info.Mode().IsRegular():
		found = []string{rel}
	case info.IsDir():
		found, ignore, err = p.collect(ctx, p.roots[idx], path, inherited)
		if err != nil {
			return false, err
		}
	default:
		return false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	t := &p.trees[idx]
	t.ignore = append(t.ignore, ignore...)

	changed := false
	for _, f := range found {
		if t.insert(f) {
			changed = true
		}
	}
	return changed, nil
}

// Remove drops path and, when it names a directory, everything below it. It
// reports whether the known paths changed.
func (p *Project) Remove(path string) bool {
	idx, rel, ok := p.locate(path)
	if !ok {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if idx >= len(p.trees) {
		return false
	}

	t := &p.trees[idx]
	before := len(t.paths)
	dir := rel + "/"
	t.paths = slices.DeleteFunc(t.paths, func(s string) bool {
		return s == rel || strings.HasPrefix(s, dir)
	})
	return len(t.paths) != before
}

// locate maps an absolute path to the index of the root containing it and
// the slash-separated path relative to that root.
func (p *Project) locate(path string) (int, string, bool) {
	for i, root := range p.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return i, filepath.ToSlash(rel), true
	}
	return 0, "", false
}

// excluded reports whether path lies outside every root or is ignored.
func (p *Project) excluded(path string) bool {
	idx, rel, ok := p.locate(path)
	if !ok {
		return true
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var extra []string
	if idx < len(p.trees) {
		extra = p.trees[idx].ignore
	}
	return p.ignoredPath(rel, extra)
}

// collect walks dir, which lies inside root, and returns the regular files
// below it relative to root in walk order, plus the patterns of every
// .gitignore it read. inherited holds patterns already in force.
func (p *Project) collect(ctx context.Context, root, dir string, inherited []string) ([]string, []string, error) {
	var (
		found  []string
		ignore []string
	)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable entries are skipped rather than failing the scan.
			p.log.Debug().Err(err).Str("path", path).Msg("skipping entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %q: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if path != dir && p.ignored(rel, inherited, ignore) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if p.gitignore {
				ignore = append(ignore, p.readGitignore(path, rel)...)
			}
			return nil
		}

		if d.Type().IsRegular() {
			found = append(found, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %q: %w", dir, err)
	}

	return found, ignore, nil
}

func (p *Project) readGitignore(dir, rel string) []string {
	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		if !os.IsNotExist(err) {
			p.log.Debug().Err(err).Str("dir", dir).Msg("unreadable .gitignore")
		}
		return nil
	}
	if rel == "." {
		rel = ""
	}
	return parseGitignore(data, rel)
}

// ignored reports whether rel matches a configured pattern or one of the
// gitignore pattern sets.
func (p *Project) ignored(rel string, sets ...[]string) bool {
	if matchAny(p.ignore, rel) {
		return true
	}
	for _, set := range sets {
		if matchAny(set, rel) {
			return true
		}
	}
	return false
}

// ignoredPath is ignored applied to rel and each of its parent directories.
func (p *Project) ignoredPath(rel string, extra []string) bool {
	for dir := rel; dir != "."; dir = pathDir(dir) {
		if p.ignored(dir, extra) {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Patterns are validated by config; a bad one simply never matches.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func pathDir(rel string) string {
	i := strings.LastIndexByte(rel, '/')
	if i < 0 {
		return "."
	}
	return rel[:i]
}

// insert adds rel at its walk-order position. It reports false when rel is
// already present.
func (t *tree) insert(rel string) bool {
	i, found := slices.BinarySearchFunc(t.paths, rel, compareWalkOrder)
	if found {
		return false
	}
	t.paths = slices.Insert(t.paths, i, rel)
	return true
}

// compareWalkOrder orders slash-separated paths the way a lexical directory
// walk visits them: component by component, so "a/b" sorts before "a.txt".
func compareWalkOrder(a, b string) int {
	for {
		ah, at, amore := strings.Cut(a, "/")
		bh, bt, bmore := strings.Cut(b, "/")
		if c := strings.Compare(ah, bh); c != 0 {
			return c
		}
		switch {
		case !amore && !bmore:
			return 0
		case !amore:
			return -1
		case !bmore:
			return 1
		}
		a, b = at, bt
	}
}

func countPaths(trees []tree) int {
	n := 0
	for _, t := range trees {
		n += len(t.paths)
	}
	return n
}
