package cli

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show resolved sources, storage location and saved status counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			statuses := st.Load(ctx)
			counts := map[string]int{}
			for _, v := range statuses {
				counts[string(v)]++
			}
			data := map[string]any{
				"configFile": app.cfg.File,
				"outline":    app.cfg.Sources.Outline,
				"content":    app.cfg.Sources.Content,
				"backend":    app.cfg.Storage.Backend,
				"location":   st.Location(),
				"namespace":  st.Namespace,
				"entries":    len(statuses),
				"byStatus":   counts,
				"remote":     remoteClient(app).Configured(),
			}
			if t, ok := st.ModTime(ctx); ok {
				data["savedAt"] = t.UTC().Format(time.RFC3339)
				data["saved"] = humanize.RelTime(t, app.now(), "ago", "from now")
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	return cmd
}
