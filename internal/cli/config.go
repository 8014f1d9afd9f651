package cli

import (
	"errors"
	"os"
	"path/filepath"

	"progress-board/internal/config"
	"progress-board/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved config (defaults, file, env and flags applied)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data": app.cfg,
				"meta": map[string]any{"stateDir": app.cfg.StateDir()},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "example",
		Short: "Print an example config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(config.ExampleConfig()))
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the example config to the config directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(app.cfg.Dir, config.FileName)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return writeErr(cmd, errors.New("config exists (use --force): "+path))
				}
			}
			if err := store.WriteFileAtomic(path, []byte(config.ExampleConfig())); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"written": []string{path}}})
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)

	return cmd
}
