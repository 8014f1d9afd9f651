package cli

import (
	"strings"

	"progress-board/internal/publish"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		asHTML    bool
		out       string
		title     string
		query     string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the board as Markdown (or HTML with --html)",
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

			md := publish.RenderMarkdown(b, st.Load(ctx), publish.RenderOptions{
				Title:       title,
				Locale:      app.cfg.UI.Locale,
				Query:       query,
				GeneratedAt: app.now(),
			})
			doc := md
			if asHTML {
				t := strings.TrimSpace(title)
				if t == "" {
					t = publish.DefaultTitle
				}
				doc, err = publish.RenderHTMLDocument(t, app.cfg.UI.Locale, md)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			if strings.TrimSpace(out) == "" {
				_, err := cmd.OutOrStdout().Write([]byte(doc))
				return err
			}
			res, err := publish.WriteFile(out, []byte(doc), overwrite)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().BoolVar(&asHTML, "html", false, "Render a standalone HTML page")
	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Report title (default: "+publish.DefaultTitle+")")
	cmd.Flags().StringVar(&query, "query", "", "Only include what this filter query keeps")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing --out file")
	return cmd
}
