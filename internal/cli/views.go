package cli

import (
	"progress-board/internal/board"
	"progress-board/internal/model"
	"progress-board/internal/statusutil"
)

type nodeView struct {
	Name    string       `json:"name"`
	Path    string       `json:"path"`
	Key     string       `json:"key"`
	Status  model.Status `json:"status"`
	Label   string       `json:"label"`
	Content string       `json:"content,omitempty"`
}

type themeView struct {
	nodeView
	Items []nodeView `json:"items"`
}

type statsView struct {
	model.Stats
	Percent int `json:"percent"`
}

func newNodeView(r board.Resolution, name string, statuses model.StatusStore, locale string) nodeView {
	st := statuses.Get(r.StatusKey)
	return nodeView{
		Name:    name,
		Path:    r.Path,
		Key:     r.StatusKey,
		Status:  st,
		Label:   statusutil.Label(st, locale),
		Content: r.Content,
	}
}

func themeViews(b *board.Board, statuses model.StatusStore, locale string) []themeView {
	out := make([]themeView, 0, len(b.Themes))
	for _, t := range b.Themes {
		tv := themeView{
			nodeView: newNodeView(b.Resolve(t, nil), t.Name, statuses, locale),
			Items:    make([]nodeView, 0, len(t.Items)),
		}
		for i := range t.Items {
			tv.Items = append(tv.Items, newNodeView(b.Resolve(t, &t.Items[i]), t.Items[i].Name, statuses, locale))
		}
		out = append(out, tv)
	}
	return out
}

func newStatsView(s model.Stats) statsView {
	return statsView{Stats: s, Percent: s.Percent()}
}
