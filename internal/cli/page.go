package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newPageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page [slug]",
		Short: "Fetch a page from the remote page service (default: remote.default_page)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := app.cfg.Remote.DefaultPage
			if len(args) == 1 {
				slug = strings.TrimSpace(args[0])
			}
			page, err := remoteClient(app).Page(cmd.Context(), slug)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": page})
		},
	}
	return cmd
}
