package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"progress-board/internal/store"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved statuses as {exported_at, statuses} JSON",
		Long: strings.TrimSpace(`
Without --out the export document is written to stdout as-is, so it can be
piped to a file and read back with "board import". With --out the file is
written and its path reported in the usual envelope. "--out ." picks a
timestamped name in the state directory.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			exp := store.NewExport(app.cfg.Storage.Namespace, st.Load(ctx), app.now())
			if strings.TrimSpace(out) == "" {
				return store.WriteExport(cmd.OutOrStdout(), exp)
			}

			path := out
			if path == "." {
				path = filepath.Join(app.cfg.StateDir(), store.ExportFileName(exp.ExportedAt))
			}
			var buf bytes.Buffer
			if err := store.WriteExport(&buf, exp); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.WriteFileAtomic(path, buf.Bytes()); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("statuses exported", "path", path, "entries", len(exp.Statuses))
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"written": []string{path}, "entries": len(exp.Statuses)},
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout (\".\" = state dir)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var (
		yes   bool
		merge bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load statuses from an export file (replace, or --merge into the saved ones)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			exp, err := store.ReadExport(f)
			_ = f.Close()
			if err != nil {
				return writeErr(cmd, err)
			}

			st, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			current := st.Load(ctx)

			mode := "replace"
			if merge {
				mode = "merge"
			}
			if len(current) > 0 && !yes {
				ok, err := app.confirm(
					"Import "+args[0]+"?",
					"This will "+mode+" "+pluralEntries(len(current))+" saved under "+app.cfg.Storage.Namespace+".",
				)
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errImportCancelled)
				}
			}

			next := store.Merge(current, exp.Statuses, !merge)
			if err := st.Save(ctx, next); err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("statuses imported", "file", args[0], "mode", mode, "entries", len(exp.Statuses))
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"mode":       mode,
					"imported":   len(exp.Statuses),
					"total":      len(next),
					"exportedAt": exp.ExportedAt,
				},
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Do not ask before overwriting saved statuses")
	cmd.Flags().BoolVar(&merge, "merge", false, "Keep saved statuses that the file does not mention")
	return cmd
}

func pluralEntries(n int) string {
	if n == 1 {
		return "1 status"
	}
	return strconv.Itoa(n) + " statuses"
}

// confirmPrompt asks on the terminal. Without one, scripts must pass --yes.
func confirmPrompt(title, description string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, confirmRequiredError{action: "import"}
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Import").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
