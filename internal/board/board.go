// Package board stitches the parsed outline, the content blocks and the status
// store together. The three never share a stored id: every join goes through
// ident.Normalize (for statuses) or the raw path (for content), recomputed on
// each call.
package board

import (
	"progress-board/internal/ident"
	"progress-board/internal/model"
)

// ContentSource resolves a raw node path to its content body, "" when absent.
// model.ContentMap is the local implementation.
type ContentSource interface {
	Content(path string) string
}

// Board is an immutable snapshot of one load of the sources.
type Board struct {
	Themes  []model.Theme
	Content ContentSource
}

func New(themes []model.Theme, content ContentSource) *Board {
	return &Board{Themes: themes, Content: content}
}

// Node is one trackable unit: a theme (Item == nil) or an item of a theme.
type Node struct {
	Theme model.Theme
	Item  *model.Item
	Path  string
	Key   string
}

func (n Node) IsTheme() bool { return n.Item == nil }

func (n Node) Name() string {
	if n.Item != nil {
		return n.Item.Name
	}
	return n.Theme.Name
}

func themeNode(t model.Theme) Node {
	return Node{Theme: t, Path: ident.Path(t.Name, ""), Key: ident.ThemeKey(t.Name)}
}

func itemNode(t model.Theme, it model.Item) Node {
	item := it
	return Node{Theme: t, Item: &item, Path: ident.Path(t.Name, it.Name), Key: ident.ItemKey(t.Name, it.Name)}
}

// Nodes lists every theme followed by its items, in declaration order.
func (b *Board) Nodes() []Node {
	if b == nil {
		return nil
	}
	var out []Node
	for _, t := range b.Themes {
		out = append(out, themeNode(t))
		for _, it := range t.Items {
			out = append(out, itemNode(t, it))
		}
	}
	return out
}

// Resolution is what a renderer needs for one node.
type Resolution struct {
	Path      string `json:"path"`
	StatusKey string `json:"key"`
	Content   string `json:"content"`
}

// Resolve finds the content and status key of a theme, or of one of its items
// when item is non-nil.
//
// Content is looked up with the raw path exactly as authored; the status key
// is the normalized path. The two lookups intentionally differ.
func Resolve(content ContentSource, theme model.Theme, item *model.Item) Resolution {
	var n Node
	if item == nil {
		n = themeNode(theme)
	} else {
		n = itemNode(theme, *item)
	}
	r := Resolution{Path: n.Path, StatusKey: n.Key}
	if content != nil {
		r.Content = content.Content(n.Path)
	}
	return r
}

func (b *Board) Resolve(theme model.Theme, item *model.Item) Resolution {
	return Resolve(b.Content, theme, item)
}

// ResolveNode is Resolve for a node returned by Nodes.
func (b *Board) ResolveNode(n Node) Resolution {
	return Resolve(b.Content, n.Theme, n.Item)
}
