package board

import (
	"progress-board/internal/ident"
	"progress-board/internal/model"
)

// ComputeStats counts every theme and every item once, reading each unit's
// status by its normalized key. A theme's own status is independent of its
// items.
func ComputeStats(themes []model.Theme, statuses model.StatusStore) model.Stats {
	var s model.Stats
	for _, t := range themes {
		s.Add(statuses.Get(ident.ThemeKey(t.Name)))
		for _, it := range t.Items {
			s.Add(statuses.Get(ident.ItemKey(t.Name, it.Name)))
		}
	}
	return s
}

func (b *Board) Stats(statuses model.StatusStore) model.Stats {
	if b == nil {
		return model.Stats{}
	}
	return ComputeStats(b.Themes, statuses)
}
