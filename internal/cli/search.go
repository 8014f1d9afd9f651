package cli

import (
	"strings"

	"progress-board/internal/board"
	"progress-board/internal/model"

	"github.com/spf13/cobra"
)

type searchResult struct {
	Theme        nodeView   `json:"theme"`
	ThemeMatched bool       `json:"themeMatched"`
	Matched      []string   `json:"matched"`
	Display      []nodeView `json:"display"`
	// Badge is the number of items shown under the theme.
	Badge int `json:"badge"`
}

func searchResults(b *board.Board, statuses model.StatusStore, query, locale string) []searchResult {
	matches := b.Filter(query)
	out := make([]searchResult, 0, len(matches))
	for _, m := range matches {
		r := searchResult{
			Theme:        newNodeView(b.Resolve(m.Theme, nil), m.Theme.Name, statuses, locale),
			ThemeMatched: m.ThemeMatched,
			Matched:      make([]string, 0, len(m.Matched)),
		}
		for _, it := range m.Matched {
			r.Matched = append(r.Matched, it.Name)
		}
		display := m.Display()
		r.Display = make([]nodeView, 0, len(display))
		for i := range display {
			r.Display = append(r.Display, newNodeView(b.Resolve(m.Theme, &display[i]), display[i].Name, statuses, locale))
		}
		r.Badge = len(r.Display)
		out = append(out, r)
	}
	return out
}

func newSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		Aliases: []string{"filter"},
		Short:   "Filter themes and items by name or content (case-insensitive)",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")
			b, err := loadBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			results := searchResults(b, st.Load(ctx), query, app.cfg.UI.Locale)
			return writeOut(cmd, app, map[string]any{
				"data": results,
				"meta": map[string]any{"query": strings.TrimSpace(query), "themes": len(results)},
			})
		},
	}
	return cmd
}
