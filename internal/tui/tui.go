// Package tui is the interactive board: a collapsible theme list with status
// keys, a live filter, a content pane and the remote page view.
package tui

import (
	"context"
	"errors"
	"fmt"

	"progress-board/internal/logging"
	"progress-board/internal/model"
	"progress-board/internal/source"

	tea "github.com/charmbracelet/bubbletea"
)

// Run loads the board, then blocks until the user quits. A failure to load
// the sources is returned before the screen is taken over. When watch is set,
// local sources are reloaded whenever they change on disk.
func Run(ctx context.Context, opt Options, watch bool) error {
	applyColorProfilePreference()
	applyThemePreference()

	logger := logging.OrDiscard(opt.Logger)
	if opt.Board == nil {
		if opt.Fetcher == nil {
			opt.Fetcher = &source.Fetcher{Logger: logger}
		}
		b, err := source.LoadBoard(ctx, opt.Fetcher, opt.Outline, opt.Content)
		if err != nil {
			return err
		}
		opt.Board = b
	}

	var statuses model.StatusStore
	if opt.Store != nil {
		statuses = opt.Store.Load(ctx)
	}
	m := newAppModel(opt, statuses)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch {
		targets := source.WatchTargets(opt.Outline, opt.Content)
		if len(targets) > 0 {
			go func() {
				err := source.Watch(ctx, targets, source.DefaultDebounce, logger, func() {
					p.Send(sourcesChangedMsg{})
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("watch stopped", "err", err)
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
