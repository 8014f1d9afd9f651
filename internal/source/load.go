package source

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"progress-board/internal/board"
	"progress-board/internal/content"
	"progress-board/internal/model"
	"progress-board/internal/outline"
)

// Texts holds the raw source bodies of one load.
type Texts struct {
	Outline string
	Content string
}

// LoadAll fetches the outline and, when configured, the content text
// concurrently. Nothing is returned unless both succeed.
func LoadAll(ctx context.Context, f *Fetcher, outlineRes, contentRes string) (Texts, error) {
	var out Texts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := f.FetchText(gctx, outlineRes)
		if err != nil {
			return err
		}
		out.Outline = text
		return nil
	})
	if strings.TrimSpace(contentRes) != "" {
		g.Go(func() error {
			text, err := f.FetchText(gctx, contentRes)
			if err != nil {
				return err
			}
			out.Content = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Texts{}, err
	}
	return out, nil
}

// Parse builds a board from loaded texts.
func (t Texts) Parse() *board.Board {
	var cm model.ContentMap
	if t.Content != "" {
		cm = content.ParseBlocks(t.Content)
	} else {
		cm = model.ContentMap{}
	}
	return board.New(outline.Parse(t.Outline), cm)
}

// LoadBoard is LoadAll followed by Parse.
func LoadBoard(ctx context.Context, f *Fetcher, outlineRes, contentRes string) (*board.Board, error) {
	texts, err := LoadAll(ctx, f, outlineRes, contentRes)
	if err != nil {
		return nil, err
	}
	return texts.Parse(), nil
}
