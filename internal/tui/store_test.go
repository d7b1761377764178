package tui

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/xfind/internal/core/action"
	"github.com/colonyops/xfind/internal/tui/finder"
)

type staticSource []string

func (s staticSource) Paths() []string { return s }

func newTestStore(paths ...string) (*FinderStore, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewFinderStore(staticSource(paths), 0, zerolog.New(&buf)), &buf
}

func TestFinderStore_InitialState(t *testing.T) {
	s, _ := newTestStore("a.js", "b.js")

	st := s.State()
	assert.Empty(t, st.Query)
	assert.Equal(t, []finder.Item{{Path: "a.js"}, {Path: "b.js"}}, st.Items)
}

func TestFinderStore_UpdateQuery(t *testing.T) {
	s, _ := newTestStore("src/app.js", "src/app_test.js", "README.md")
	rev := s.Revision()

	s.Dispatch(action.NewUpdateQuery("app"))

	st := s.State()
	assert.Equal(t, "app", st.Query)
	assert.Equal(t, []finder.Item{{Path: "src/app.js"}, {Path: "src/app_test.js"}}, st.Items)
	assert.Greater(t, s.Revision(), rev)
}

func TestFinderStore_SameQueryIsNoop(t *testing.T) {
	s, _ := newTestStore("a")
	s.Dispatch(action.NewUpdateQuery("a"))
	rev := s.Revision()

	s.Dispatch(action.NewUpdateQuery("a"))
	assert.Equal(t, rev, s.Revision())
}

func TestFinderStore_Limit(t *testing.T) {
	s := NewFinderStore(staticSource{"a1", "a2", "a3"}, 2, zerolog.Nop())
	assert.Len(t, s.State().Items, 2)
}

func TestFinderStore_UnrecognizedActionLogged(t *testing.T) {
	s, buf := newTestStore("a")
	rev := s.Revision()

	s.Dispatch(action.NewToggleFileFinder())

	assert.Equal(t, rev, s.Revision())
	assert.Contains(t, buf.String(), "unrecognized action")
	assert.Contains(t, buf.String(), "ToggleFileFinder")
}

func TestFinderStore_DispatchJSON(t *testing.T) {
	s, buf := newTestStore("main.go", "util.go")

	s.DispatchJSON([]byte(`{"type":"UpdateQuery","query":"main"}`))
	assert.Equal(t, "main", s.State().Query)
	assert.Equal(t, []finder.Item{{Path: "main.go"}}, s.State().Items)

	s.DispatchJSON([]byte(`{"type":"Explode"}`))
	assert.Equal(t, "main", s.State().Query)
	assert.Contains(t, buf.String(), "unrecognized action")
}

func TestFinderStore_ResetAndRefresh(t *testing.T) {
	src := staticSource{"a", "b"}
	s := NewFinderStore(src, 0, zerolog.Nop())

	s.Dispatch(action.NewUpdateQuery("a"))
	assert.Len(t, s.State().Items, 1)

	s.Reset()
	assert.Empty(t, s.State().Query)
	assert.Len(t, s.State().Items, 2)
}

func TestFinderStore_NilSource(t *testing.T) {
	s := NewFinderStore(nil, 0, zerolog.Nop())
	s.Dispatch(action.NewUpdateQuery("x"))
	assert.Empty(t, s.State().Items)
}
