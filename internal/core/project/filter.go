package project

import "strings"

// Filter returns the paths containing query, case-insensitively, in their
// input order. An empty query keeps every path. A limit of zero or less
// means unlimited. This is plain containment; no scoring or reordering.
func Filter(paths []string, query string, limit int) []string {
	needle := strings.ToLower(query)

	out := make([]string, 0, min(len(paths), max(limit, 0)))
	for _, p := range paths {
		if limit > 0 && len(out) >= limit {
			break
		}
		if needle == "" || strings.Contains(strings.ToLower(p), needle) {
			out = append(out, p)
		}
	}
	return out
}
