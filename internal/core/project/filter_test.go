package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	paths := []string{"src/App.js", "src/app_test.go", "docs/readme.md", "lib/zapp.js"}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{name: "empty query keeps all", query: "", want: paths},
		{name: "case insensitive", query: "APP", want: []string{"src/App.js", "src/app_test.go", "lib/zapp.js"}},
		{name: "order preserved", query: ".js", want: []string{"src/App.js", "lib/zapp.js"}},
		{name: "limit", query: "app", limit: 2, want: []string{"src/App.js", "src/app_test.go"}},
		{name: "limit on empty query", query: "", limit: 1, want: []string{"src/App.js"}},
		{name: "no match", query: "nope", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(paths, tt.query, tt.limit))
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	paths := []string{"b", "a"}
	_ = Filter(paths, "a", 0)
	assert.Equal(t, []string{"b", "a"}, paths)
}
