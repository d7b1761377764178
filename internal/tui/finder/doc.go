// Package finder implements the file finder view: a query input above an
// ordered list of matching paths.
//
// The view owns no state of its own. A state provider hands it the current
// query and items, the host display attaches and detaches it, and every
// change to the input text is forwarded verbatim to a dispatcher as an
// UpdateQuery action. The view produces a display tree (Render) and leaves
// drawing, focus, and widget state to the host.
package finder
