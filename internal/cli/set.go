package cli

import (
	"strings"

	"progress-board/internal/board"
	"progress-board/internal/ident"
	"progress-board/internal/statusutil"

	"github.com/spf13/cobra"
)

func newSetCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "set <path> <status>",
		Short: "Set the status of a theme (\"Theme\") or item (\"Theme > Item\")",
		Long: strings.TrimSpace(`
Set the status of a theme or an item. Paths are matched by their normalized key,
so case, punctuation and extra spaces do not matter.

Status is todo|doing|done, or a label such as "en cours" or "fait".
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			to, err := statusutil.Parse(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := loadBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}

			path := strings.TrimSpace(args[0])
			nodes := b.Lookup(path)
			key := ident.Normalize(path)
			if len(nodes) == 0 && !force {
				return writeErr(cmd, board.UnknownNodeError{Path: path, Suggestions: b.Suggest(path, 3)})
			}

			st, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			next, change, err := board.ApplyStatusChange(st.Load(ctx), key, to)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.Save(ctx, next); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("status set", "key", change.Key, "from", change.From, "to", change.To)

			paths := make([]string, 0, len(nodes))
			for _, n := range nodes {
				paths = append(paths, n.Path)
			}
			return writeOut(cmd, app, map[string]any{
				"data": change,
				"meta": map[string]any{
					"paths": paths,
					"label": statusutil.Label(to, app.cfg.UI.Locale),
					"stats": newStatsView(b.Stats(next)),
				},
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Save the status even if no theme or item has this path")
	return cmd
}
