package tui

import (
	"fmt"
	"io"
	"strings"

	"progress-board/internal/statusutil"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type rowDelegate struct {
	locale string
}

func newRowDelegate(locale string) rowDelegate {
	return rowDelegate{locale: locale}
}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	r, ok := item.(row)
	if !ok || contentW < 4 {
		fmt.Fprint(w, "")
		return
	}
	selected := index == m.Index()

	var b strings.Builder
	if r.isTheme() {
		if r.collapsed {
			b.WriteString("▸ ")
		} else {
			b.WriteString("▾ ")
		}
	} else {
		b.WriteString("    ")
	}

	glyph := statusutil.Glyph(r.status)
	label := statusutil.Label(r.status, d.locale)
	name := r.name()
	if !selected {
		glyph = statusStyle(r.status).Render(glyph)
		label = statusStyle(r.status).Render(label)
		switch {
		case r.matched:
			name = styleMatch().Render(name)
		case r.isTheme():
			name = styleTitle().Render(name)
		}
	}
	b.WriteString(glyph + " " + name)

	right := label
	if r.isTheme() {
		badge := fmt.Sprintf("%d", r.badge)
		if !selected {
			badge = styleBadge().Render(badge)
		} else {
			badge = "(" + badge + ")"
		}
		right = badge + " " + right
	}

	line := b.String()
	lineW := xansi.StringWidth(line)
	rightW := xansi.StringWidth(right)
	switch {
	case lineW+1+rightW <= contentW:
		line += strings.Repeat(" ", contentW-lineW-rightW) + right
	case lineW > contentW:
		line = xansi.Truncate(line, contentW, "…")
	default:
		line += strings.Repeat(" ", contentW-lineW)
	}

	if selected {
		line = styleSelected().Render(padTo(line, contentW))
	}
	fmt.Fprint(w, line)
}

func padTo(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
