package cli

import (
	"github.com/spf13/cobra"
)

func newThemesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "themes",
		Aliases: []string{"ls"},
		Short:   "List every theme and item with its key, status and content",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := loadBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			statuses := st.Load(ctx)

			return writeOut(cmd, app, map[string]any{
				"data": themeViews(b, statuses, app.cfg.UI.Locale),
				"meta": map[string]any{"stats": newStatsView(b.Stats(statuses))},
			})
		},
	}
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show done/doing/todo counts and the completion percentage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := loadBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			return writeOut(cmd, app, map[string]any{
				"data": newStatsView(b.Stats(st.Load(ctx))),
			})
		},
	}
	return cmd
}
