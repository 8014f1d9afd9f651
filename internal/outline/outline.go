// Package outline rebuilds the two-level theme/item tree from indented text.
package outline

import (
	"strings"
	"unicode"

	"progress-board/internal/model"
)

// TabWidth is the number of spaces a tab counts for when measuring indentation.
const TabWidth = 2

// ThemeIndent is the indentation below which a line opens a new theme.
const ThemeIndent = 2

// Parse reads an outline where unindented lines are themes and indented lines
// are items of the closest theme above them.
//
// Blank lines are ignored. Items that appear before any theme are dropped.
// Order is preserved and nothing is de-duplicated.
func Parse(text string) []model.Theme {
	themes := []model.Theme{}
	cur := -1

	tab := strings.Repeat(" ", TabWidth)
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		raw = strings.ReplaceAll(raw, "\t", tab)

		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		if indentOf(raw) < ThemeIndent {
			themes = append(themes, model.Theme{Name: name, Items: []model.Item{}})
			cur = len(themes) - 1
			continue
		}
		if cur < 0 {
			continue
		}
		themes[cur].Items = append(themes[cur].Items, model.Item{Name: name})
	}
	return themes
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
