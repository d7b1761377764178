package finder

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/xfind/internal/core/styles"
)

const (
	finderTitle    = "Find File"
	finderHelp     = "[esc] close"
	finderChrome   = 6 // title + input (2) + help + border
	finderMinWidth = 20
)

// RenderString draws tree as terminal text. input is the host's rendering of
// the query input element, drawn in place of the input node. At most enough
// rows to fit height are drawn; height <= 0 draws every row.
func RenderString(tree Node, input string, width, height int) string {
	width = max(width, finderMinWidth)
	inner := width - 4 // border + padding

	list, _ := tree.Find(ListID)
	rows := list.Children
	query := ""
	if in, ok := tree.Find(InputID); ok {
		query = in.Text
	}

	visible := len(rows)
	if height > 0 {
		visible = min(visible, max(height-finderChrome, 1))
	}

	lines := make([]string, 0, visible+4)
	lines = append(lines,
		styles.FinderTitleStyle.Render(finderTitle),
		styles.FinderInputStyle.Width(inner).Render(input),
	)

	if len(rows) == 0 {
		lines = append(lines, styles.FinderEmptyStyle.Render("No matching files"))
	}
	for _, row := range rows[:visible] {
		lines = append(lines, ansi.Truncate(HighlightMatch(styles.FinderRowStyle, row.Text, query), inner, "…"))
	}
	if hidden := len(rows) - visible; hidden > 0 {
		lines = append(lines, styles.FinderEmptyStyle.Render(fmt.Sprintf("+%d more", hidden)))
	}

	lines = append(lines, styles.FinderHelpStyle.Render(finderHelp))

	return styles.FinderStyle.
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// HighlightMatch renders text with base, drawing the first case-insensitive
// occurrence of query with styles.MatchStyle instead.
func HighlightMatch(base lipgloss.Style, text, query string) string {
	lower := strings.ToLower(text)
	i := strings.Index(lower, strings.ToLower(query))
	// Case folding that changes byte lengths would misplace the match.
	if query == "" || i < 0 || len(lower) != len(text) {
		return base.Render(text)
	}

	j := i + len(query)
	var b strings.Builder
	if i > 0 {
		b.WriteString(base.Render(text[:i]))
	}
	b.WriteString(styles.MatchStyle.Render(text[i:j]))
	if j < len(text) {
		b.WriteString(base.Render(text[j:]))
	}
	return b.String()
}

// PlainRows returns the text of every row in tree, one per line.
func PlainRows(tree Node) string {
	list, _ := tree.Find(ListID)

	var b strings.Builder
	for _, row := range list.Children {
		b.WriteString(row.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
