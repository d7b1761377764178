package finder

import (
	"errors"

	"github.com/colonyops/xfind/internal/core/action"
)

// ErrNoElement is returned by a Focuser when the handle no longer resolves to
// an attached element.
var ErrNoElement = errors.New("element not attached")

// Item is one result row.
type Item struct {
	Path string `json:"path"`
}

// State is the snapshot a state provider hands to the view.
type State struct {
	Query string `json:"query"`
	Items []Item `json:"items"`
}

// ItemsFromPaths wraps paths as items, keeping their order.
func ItemsFromPaths(paths []string) []Item {
	items := make([]Item, len(paths))
	for i, p := range paths {
		items[i] = Item{Path: p}
	}
	return items
}

// Dispatch receives the actions the view produces.
type Dispatch func(action.Action)

// Focuser is the host's focus primitive.
type Focuser interface {
	Focus(id ElementID) error
}

// View is the file finder view. It is driven from a single goroutine: the
// host's event loop.
type View struct {
	query    string
	items    []Item
	dispatch Dispatch
	mounted  bool
}

// New creates a view over the given snapshot. dispatch may be nil, in which
// case query changes are dropped.
func New(query string, items []Item, dispatch Dispatch) *View {
	return &View{
		query:    query,
		items:    items,
		dispatch: dispatch,
	}
}

// Query returns the query of the current snapshot.
func (v *View) Query() string { return v.query }

// Items returns the items of the current snapshot.
func (v *View) Items() []Item { return v.items }

// Mounted reports whether the view is attached to the host.
func (v *View) Mounted() bool { return v.mounted }

// SetState replaces the snapshot. The next Render reflects it.
func (v *View) SetState(query string, items []Item) {
	v.query = query
	v.items = items
}

// Render returns the display tree for the current snapshot: a container
// holding the query input followed by the result list, one row per item in
// the order given.
func (v *View) Render() Node {
	rows := make([]Node, len(v.items))
	for i, item := range v.items {
		rows[i] = Node{
			Kind: KindRow,
			Key:  rowKey(i, item.Path),
			Text: item.Path,
		}
	}

	return Node{
		ID:   RootID,
		Kind: KindContainer,
		Key:  string(RootID),
		Children: []Node{
			{ID: InputID, Kind: KindInput, Key: "input", Text: v.query},
			{ID: ListID, Kind: KindList, Key: "results", Children: rows},
		},
	}
}

// Mount attaches the view and moves focus to the query input. Only the
// first Mount after construction or Unmount has any effect. A focus failure
// is ignored: the element may already be gone.
func (v *View) Mount(f Focuser) {
	if v.mounted {
		return
	}
	v.mounted = true

	if f == nil {
		return
	}
	_ = f.Focus(InputID)
}

// Unmount detaches the view.
func (v *View) Unmount() {
	v.mounted = false
}

// QueryChanged is called by the host input whenever its text changes. The
// raw value is dispatched as-is.
func (v *View) QueryChanged(raw string) {
	if v.dispatch == nil {
		return
	}
	v.dispatch(action.NewUpdateQuery(raw))
}
