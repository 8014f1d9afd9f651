package cli

import (
	"progress-board/internal/board"

	"github.com/spf13/cobra"
)

type doctorReport struct {
	// Orphans are saved keys no theme or item produces, usually after a rename.
	Orphans    []string          `json:"orphans"`
	Duplicates []board.Duplicate `json:"duplicates"`
}

func (r doctorReport) HasIssues() bool {
	return len(r.Orphans) > 0 || len(r.Duplicates) > 0
}

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report saved statuses no node uses and nodes that share a key",
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

			report := doctorReport{
				Orphans:    b.Orphans(st.Load(ctx)),
				Duplicates: b.Duplicates(),
			}
			hints := []string{}
			if len(report.Orphans) > 0 {
				hints = append(hints, "board export --out . && edit the keys, then board import <file> --yes")
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": map[string]any{
					"orphans":    len(report.Orphans),
					"duplicates": len(report.Duplicates),
					"hasIssues":  report.HasIssues(),
				},
				"_hints": hints,
			}); err != nil {
				return err
			}

			if fail && report.HasIssues() {
				return ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if issues are found")
	return cmd
}
