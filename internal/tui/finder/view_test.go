package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/xfind/internal/core/action"
)

type recordingDispatch struct {
	actions []action.Action
}

func (r *recordingDispatch) dispatch(a action.Action) {
	r.actions = append(r.actions, a)
}

type recordingFocuser struct {
	calls []ElementID
	err   error
}

func (f *recordingFocuser) Focus(id ElementID) error {
	f.calls = append(f.calls, id)
	return f.err
}

func rowTexts(t *testing.T, tree Node) []string {
	t.Helper()
	list, ok := tree.Find(ListID)
	require.True(t, ok, "list node missing")

	texts := make([]string, 0, len(list.Children))
	for _, row := range list.Children {
		assert.Equal(t, KindRow, row.Kind)
		assert.Empty(t, row.Children)
		texts = append(texts, row.Text)
	}
	return texts
}

func TestRender_Structure(t *testing.T) {
	v := New("", nil, nil)
	tree := v.Render()

	assert.Equal(t, KindContainer, tree.Kind)
	assert.Equal(t, RootID, tree.ID)
	require.Len(t, tree.Children, 2)

	input := tree.Children[0]
	assert.Equal(t, InputID, input.ID)
	assert.Equal(t, KindInput, input.Kind)
	assert.Empty(t, input.Text)

	list := tree.Children[1]
	assert.Equal(t, ListID, list.ID)
	assert.Equal(t, KindList, list.Kind)
	assert.Empty(t, list.Children)
}

func TestRender_RowsFollowItems(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{name: "empty", items: nil},
		{name: "two", items: []Item{{Path: "a.js"}, {Path: "b.js"}}},
		{name: "duplicates", items: []Item{{Path: "x"}, {Path: "x"}, {Path: "y"}}},
		{name: "unsorted", items: []Item{{Path: "z/last.go"}, {Path: "a/first.go"}, {Path: "m/mid.go"}}},
		{name: "empty path", items: []Item{{Path: ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			texts := rowTexts(t, New("", tt.items, nil).Render())

			require.Len(t, texts, len(tt.items))
			for i, item := range tt.items {
				assert.Equal(t, item.Path, texts[i], "row %d", i)
			}
		})
	}
}

func TestRender_TwoItemsScenario(t *testing.T) {
	v := New("", []Item{{Path: "a.js"}, {Path: "b.js"}}, nil)
	assert.Equal(t, []string{"a.js", "b.js"}, rowTexts(t, v.Render()))
}

func TestRender_PermutationLaw(t *testing.T) {
	items := []Item{{Path: "a"}, {Path: "b"}, {Path: "c"}, {Path: "d"}}
	perm := []int{2, 0, 3, 1}

	permuted := make([]Item, len(items))
	for i, p := range perm {
		permuted[i] = items[p]
	}

	v := New("", items, nil)
	before := rowTexts(t, v.Render())

	v.SetState("", permuted)
	after := rowTexts(t, v.Render())

	for i, p := range perm {
		assert.Equal(t, before[p], after[i])
	}
}

func TestRender_IsPure(t *testing.T) {
	items := []Item{{Path: "a.go"}, {Path: "b.go"}}
	v := New("q", items, nil)

	first := v.Render()
	second := v.Render()

	assert.Equal(t, first, second)
	assert.Equal(t, []Item{{Path: "a.go"}, {Path: "b.go"}}, items, "items must not be mutated")
	assert.False(t, v.Mounted(), "rendering must not mount")
}

func TestRender_StableKeys(t *testing.T) {
	v := New("", []Item{{Path: "a"}, {Path: "b"}}, nil)
	list, _ := v.Render().Find(ListID)
	assert.Equal(t, "0:a", list.Children[0].Key)
	assert.Equal(t, "1:b", list.Children[1].Key)

	// Appending a row leaves existing keys untouched.
	v.SetState("", []Item{{Path: "a"}, {Path: "b"}, {Path: "c"}})
	list, _ = v.Render().Find(ListID)
	assert.Equal(t, "0:a", list.Children[0].Key)
	assert.Equal(t, "1:b", list.Children[1].Key)
	assert.Equal(t, "2:c", list.Children[2].Key)
}

func TestRender_InputCarriesQuery(t *testing.T) {
	v := New("main", nil, nil)
	input, ok := v.Render().Find(InputID)
	require.True(t, ok)
	assert.Equal(t, "main", input.Text)

	v.SetState("main.go", nil)
	input, _ = v.Render().Find(InputID)
	assert.Equal(t, "main.go", input.Text)
}

func TestMount_FocusesInputOnce(t *testing.T) {
	f := &recordingFocuser{}
	v := New("", nil, nil)

	v.Mount(f)
	assert.True(t, v.Mounted())
	assert.Equal(t, []ElementID{InputID}, f.calls)

	v.Mount(f)
	assert.Len(t, f.calls, 1, "a single mount must not focus twice")
}

func TestMount_RemountFocusesAgain(t *testing.T) {
	f := &recordingFocuser{}
	v := New("", nil, nil)

	v.Mount(f)
	v.Unmount()
	assert.False(t, v.Mounted())
	assert.Len(t, f.calls, 1, "unmount has no side effect")

	v.Mount(f)
	assert.Equal(t, []ElementID{InputID, InputID}, f.calls)
}

func TestMount_FocusFailureIsIgnored(t *testing.T) {
	f := &recordingFocuser{err: ErrNoElement}
	v := New("", nil, nil)

	assert.NotPanics(t, func() { v.Mount(f) })
	assert.True(t, v.Mounted())
	assert.Len(t, f.calls, 1)
}

func TestMount_NilFocuser(t *testing.T) {
	v := New("", nil, nil)
	assert.NotPanics(t, func() { v.Mount(nil) })
	assert.True(t, v.Mounted())
}

func TestQueryChanged_DispatchesVerbatim(t *testing.T) {
	tests := []string{"abc", "", "  padded ", "src/**", "ünï"}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			rec := &recordingDispatch{}
			v := New("", nil, rec.dispatch)

			v.QueryChanged(raw)

			require.Len(t, rec.actions, 1)
			assert.Equal(t, action.UpdateQuery{Type: action.TypeUpdateQuery, Query: raw}, rec.actions[0])
		})
	}
}

func TestQueryChanged_PreservesOrderWithoutCoalescing(t *testing.T) {
	rec := &recordingDispatch{}
	v := New("", nil, rec.dispatch)

	for _, q := range []string{"f", "fo", "fo", "foo", ""} {
		v.QueryChanged(q)
	}

	require.Len(t, rec.actions, 5)
	assert.Equal(t, action.NewUpdateQuery("f"), rec.actions[0])
	assert.Equal(t, action.NewUpdateQuery("fo"), rec.actions[1])
	assert.Equal(t, action.NewUpdateQuery("fo"), rec.actions[2])
	assert.Equal(t, action.NewUpdateQuery("foo"), rec.actions[3])
	assert.Equal(t, action.NewUpdateQuery(""), rec.actions[4])
}

func TestQueryChanged_DoesNotTouchState(t *testing.T) {
	rec := &recordingDispatch{}
	v := New("old", []Item{{Path: "a"}}, rec.dispatch)

	v.QueryChanged("new")

	assert.Equal(t, "old", v.Query(), "the view only requests changes")
	assert.Equal(t, []Item{{Path: "a"}}, v.Items())
}

func TestQueryChanged_NilDispatch(t *testing.T) {
	v := New("", nil, nil)
	assert.NotPanics(t, func() { v.QueryChanged("abc") })
}

func TestScenario_EmptyThenType(t *testing.T) {
	rec := &recordingDispatch{}
	v := New("", []Item{}, rec.dispatch)

	tree := v.Render()
	input, _ := tree.Find(InputID)
	assert.Empty(t, input.Text)
	assert.Empty(t, rowTexts(t, tree))

	v.QueryChanged("foo.js")
	require.Len(t, rec.actions, 1)
	assert.Equal(t, action.NewUpdateQuery("foo.js"), rec.actions[0])
}

func TestItemsFromPaths(t *testing.T) {
	assert.Equal(t, []Item{{Path: "b"}, {Path: "a"}}, ItemsFromPaths([]string{"b", "a"}))
	assert.Empty(t, ItemsFromPaths(nil))
}

func TestNode_FindMissing(t *testing.T) {
	_, ok := New("", nil, nil).Render().Find("nope")
	assert.False(t, ok)
}
