package tui

import (
	"progress-board/internal/board"
	"progress-board/internal/model"
)

// row is one line of the board list: a theme header or one of its items.
type row struct {
	theme model.Theme
	item  *model.Item
	res   board.Resolution

	status model.Status
	// matched marks an item hit by a non-empty query.
	matched bool
	// badge is the number of items shown under a theme.
	badge     int
	collapsed bool
}

func (r row) isTheme() bool { return r.item == nil }

func (r row) name() string {
	if r.item != nil {
		return r.item.Name
	}
	return r.theme.Name
}

// FilterValue is required by list.Item; the list's own filter is disabled.
func (r row) FilterValue() string { return r.res.Path }

func (r row) Title() string { return r.name() }

// buildRows flattens the filter result. Collapsed themes hide their items
// unless a query is active.
func buildRows(b *board.Board, statuses model.StatusStore, query string, collapsed map[string]bool) []row {
	if b == nil {
		return nil
	}
	active := query != ""
	var out []row
	for _, m := range b.Filter(query) {
		display := m.Display()
		tres := b.Resolve(m.Theme, nil)
		hide := collapsed[tres.StatusKey] && !active
		out = append(out, row{
			theme:     m.Theme,
			res:       tres,
			status:    statuses.Get(tres.StatusKey),
			matched:   active && m.ThemeMatched,
			badge:     len(display),
			collapsed: hide,
		})
		if hide {
			continue
		}
		hit := map[string]bool{}
		if active {
			for _, it := range m.Matched {
				hit[it.Name] = true
			}
		}
		for i := range display {
			it := display[i]
			ires := b.Resolve(m.Theme, &it)
			out = append(out, row{
				theme:   m.Theme,
				item:    &it,
				res:     ires,
				status:  statuses.Get(ires.StatusKey),
				matched: hit[it.Name],
			})
		}
	}
	return out
}
