package tui

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/xfind/internal/core/action"
	"github.com/colonyops/xfind/internal/core/project"
	"github.com/colonyops/xfind/internal/tui/finder"
)

// Source supplies the candidate paths the finder filters.
type Source interface {
	Paths() []string
}

// FinderStore is the finder's state provider and dispatcher. It keeps the
// current query and recomputes the visible items from its source whenever
// the query changes.
type FinderStore struct {
	source   Source
	limit    int
	log      zerolog.Logger
	state    finder.State
	revision uint64
}

// NewFinderStore creates a store with an empty query. limit caps the number
// of items; zero means unlimited.
func NewFinderStore(source Source, limit int, log zerolog.Logger) *FinderStore {
	s := &FinderStore{
		source: source,
		limit:  limit,
		log:    log,
	}
	s.recompute()
	return s
}

// State returns the current snapshot.
func (s *FinderStore) State() finder.State {
	return s.state
}

// Revision is bumped every time the snapshot changes.
func (s *FinderStore) Revision() uint64 {
	return s.revision
}

// Dispatch applies a. Only UpdateQuery is understood; a query equal to the
// current one leaves the snapshot and revision untouched.
func (s *FinderStore) Dispatch(a action.Action) {
	switch a := a.(type) {
	case action.UpdateQuery:
		if a.Query == s.state.Query {
			return
		}
		s.state.Query = a.Query
		s.recompute()
	default:
		s.log.Warn().Stringer("type", typeOf(a)).Msg("unrecognized action")
	}
}

// DispatchJSON decodes a JSON action and dispatches it. Undecodable input is
// logged and dropped.
func (s *FinderStore) DispatchJSON(data []byte) {
	a, err := action.Decode(data)
	if err != nil {
		s.log.Warn().Err(err).Msg("unrecognized action")
		return
	}
	s.Dispatch(a)
}

// Reset clears the query.
func (s *FinderStore) Reset() {
	s.state.Query = ""
	s.recompute()
}

// Refresh recomputes the items, e.g. after the source was rescanned.
func (s *FinderStore) Refresh() {
	s.recompute()
}

func (s *FinderStore) recompute() {
	var paths []string
	if s.source != nil {
		paths = s.source.Paths()
	}
	s.state.Items = finder.ItemsFromPaths(project.Filter(paths, s.state.Query, s.limit))
	s.revision++

	s.log.Debug().
		Str("query", s.state.Query).
		Int("items", len(s.state.Items)).
		Uint64("revision", s.revision).
		Msg("finder state updated")
}

func typeOf(a action.Action) action.Type {
	if a == nil {
		return ""
	}
	return a.ActionType()
}
