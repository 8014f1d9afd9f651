package board

import (
	"strings"

	"progress-board/internal/ident"
	"progress-board/internal/model"
)

// Match is one theme kept by Filter.
type Match struct {
	Theme model.Theme `json:"theme"`
	// ThemeMatched is true when the query is empty or hits the theme's own
	// name or content.
	ThemeMatched bool `json:"themeMatched"`
	// Matched holds the items that hit the query, in outline order. Every
	// item of a matched theme counts as matched.
	Matched []model.Item `json:"matched"`
}

// Display returns the items a renderer shows: all of them when the theme
// itself matched, otherwise the matched subset.
func (m Match) Display() []model.Item {
	if m.ThemeMatched || len(m.Matched) == 0 {
		return m.Theme.Items
	}
	return m.Matched
}

// Filter keeps the themes that match query by case-insensitive substring over
// names and, when content is non-nil, resolved content bodies. A theme that
// matches keeps all of its items.
//
// An empty (or blank) query keeps every theme with every item matched.
func Filter(themes []model.Theme, content ContentSource, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Match{}
	for _, t := range themes {
		if q == "" {
			items := make([]model.Item, len(t.Items))
			copy(items, t.Items)
			out = append(out, Match{Theme: t, ThemeMatched: true, Matched: items})
			continue
		}

		m := Match{Theme: t, Matched: []model.Item{}}
		m.ThemeMatched = contains(t.Name, q) || contains(lookup(content, ident.Path(t.Name, "")), q)
		for _, it := range t.Items {
			if m.ThemeMatched || contains(it.Name, q) || contains(lookup(content, ident.Path(t.Name, it.Name)), q) {
				m.Matched = append(m.Matched, it)
			}
		}
		if m.ThemeMatched || len(m.Matched) > 0 {
			out = append(out, m)
		}
	}
	return out
}

func (b *Board) Filter(query string) []Match {
	if b == nil {
		return []Match{}
	}
	return Filter(b.Themes, b.Content, query)
}

func contains(s, lowerQuery string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerQuery)
}

func lookup(content ContentSource, path string) string {
	if content == nil {
		return ""
	}
	return content.Content(path)
}
