package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"progress-board/internal/board"
	"progress-board/internal/config"
	"progress-board/internal/format"
	"progress-board/internal/logging"
	"progress-board/internal/remote"
	"progress-board/internal/source"
	"progress-board/internal/store"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	Outline    string
	Content    string
	StateDir   string
	Backend    string
	Namespace  string
	Locale     string
	LogLevel   string
	PrettyJSON bool
	Format     string

	cfg    *config.Config
	logger *log.Logger

	// confirm asks a yes/no question; tests replace it.
	confirm func(title, description string) (bool, error)
	now     func() time.Time
}

func NewRootCmd() *cobra.Command {
	app := &App{confirm: confirmPrompt, now: time.Now}

	cmd := &cobra.Command{
		Use:          "board",
		Short:        "Progress board for a themed programme (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  board

  # Scriptable commands
  board stats
  board search terrain

  # Mark an item done (shortcut for: board set "Sport > Football" done)
  board "Sport > Football" done
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.setup(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("BOARD_CONFIG", ""), "Path to config.toml (default: $BOARD_CONFIG_DIR/config.toml or ~/.board/config.toml)")
	cmd.PersistentFlags().StringVar(&app.Outline, "outline", "", "Outline source: file path or http(s) URL (overrides sources.outline)")
	cmd.PersistentFlags().StringVar(&app.Content, "content", "", "Content-block source: file path or http(s) URL (overrides sources.content)")
	cmd.PersistentFlags().StringVar(&app.StateDir, "state-dir", "", "Directory for saved statuses, exports and logs (overrides storage.dir)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Status storage backend (file|sqlite)")
	cmd.PersistentFlags().StringVar(&app.Namespace, "namespace", "", "Key the statuses are saved under")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", "", "Status labels (fr|en)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("BOARD_FORMAT", format.JSON), "Output format (json|yaml)")

	cmd.AddCommand(newThemesCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newSetCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newPageCmd(app))
	cmd.AddCommand(newReportCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// setup resolves the layered config and the stderr logger.
func (app *App) setup(cmd *cobra.Command) error {
	if !format.Valid(app.Format) {
		return fmt.Errorf("unknown format: %s (want json|yaml)", app.Format)
	}
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	cfg.Apply(config.Overrides{
		Outline:   app.Outline,
		Content:   app.Content,
		Backend:   app.Backend,
		StateDir:  app.StateDir,
		Namespace: app.Namespace,
		Locale:    app.Locale,
		LogLevel:  app.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg
	app.logger = logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	return nil
}

func (app *App) fetcher() *source.Fetcher {
	return &source.Fetcher{Logger: app.logger}
}

func loadBoard(ctx context.Context, app *App) (*board.Board, error) {
	return source.LoadBoard(ctx, app.fetcher(), app.cfg.Sources.Outline, app.cfg.Sources.Content)
}

func openStore(ctx context.Context, app *App) (*store.Store, error) {
	return store.Open(ctx, app.cfg.Storage.Backend, app.cfg.StateDir(), app.cfg.Storage.Namespace, app.logger)
}

func remoteClient(app *App) *remote.Client {
	return &remote.Client{
		BaseURL: app.cfg.Remote.BaseURL,
		APIKey:  app.cfg.Remote.APIKey,
		Logger:  app.logger,
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
