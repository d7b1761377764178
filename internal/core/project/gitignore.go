package project

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// parseGitignore converts the lines of a .gitignore file living in dir
// (slash-separated, relative to the root, empty for the root itself) into
// doublestar patterns relative to the root.
//
// Negations ("!pattern") are not supported and are dropped. A trailing slash
// is dropped too, so a directory-only pattern also hides files of that name.
func parseGitignore(data []byte, dir string) []string {
	var patterns []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		line = strings.TrimSuffix(line, "/")
		anchored := strings.Contains(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}

		pattern := line
		if !anchored {
			pattern = "**/" + line
		}
		if dir != "" {
			pattern = dir + "/" + pattern
		}

		if doublestar.ValidatePattern(pattern) {
			patterns = append(patterns, pattern)
		}
	}

	return patterns
}
