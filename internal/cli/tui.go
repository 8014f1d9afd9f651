package cli

import (
	"context"

	"progress-board/internal/logging"
	"progress-board/internal/tui"

	"github.com/spf13/cobra"
)

// runTUI starts the interactive board. Logs go to board.log in the state
// directory since stderr belongs to the terminal UI.
func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := app.cfg

	logger, closer, err := logging.OpenFile(cfg.StateDir(), cfg.Log.Level)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closer.Close()
	app.logger = logger

	st, err := openStore(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer st.Close()

	logger.Info("tui start", "outline", cfg.Sources.Outline, "content", cfg.Sources.Content, "backend", cfg.Storage.Backend)
	err = tui.Run(ctx, tui.Options{
		Fetcher:  app.fetcher(),
		Outline:  cfg.Sources.Outline,
		Content:  cfg.Sources.Content,
		Store:    st,
		Remote:   remoteClient(app),
		PageSlug: cfg.Remote.DefaultPage,
		Locale:   cfg.UI.Locale,
		StateDir: cfg.StateDir(),
		Logger:   logger,
		Now:      app.now,
	}, cfg.UI.Watch)
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
