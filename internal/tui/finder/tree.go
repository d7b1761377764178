package finder

import "strconv"

// ElementID is an opaque handle to an element of the rendered tree. Hosts
// resolve it to their own widgets; the view never holds a widget itself.
type ElementID string

const (
	RootID  ElementID = "finder"
	InputID ElementID = "finder.query"
	ListID  ElementID = "finder.results"
)

// NodeKind identifies what a Node draws.
type NodeKind int

const (
	KindContainer NodeKind = iota
	KindInput
	KindList
	KindRow
)

func (k NodeKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindInput:
		return "input"
	case KindList:
		return "list"
	case KindRow:
		return "row"
	default:
		return "unknown"
	}
}

// Node is one element of the display tree produced by View.Render.
type Node struct {
	ID       ElementID
	Kind     NodeKind
	Key      string // stable identity among siblings
	Text     string
	Children []Node
}

// Find returns the node with the given id, searching depth first.
func (n Node) Find(id ElementID) (Node, bool) {
	if n.ID == id {
		return n, true
	}
	for _, child := range n.Children {
		if found, ok := child.Find(id); ok {
			return found, true
		}
	}
	return Node{}, false
}

// rowKey derives a row's key from its position and path, so the key only
// changes when the row itself does.
func rowKey(index int, path string) string {
	return strconv.Itoa(index) + ":" + path
}
