package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"progress-board/internal/board"
	"progress-board/internal/model"
	"progress-board/internal/statusutil"
)

const DefaultTitle = "Programme"

type RenderOptions struct {
	Title  string
	Locale string
	// Query limits the report to what Filter keeps.
	Query string
	// GeneratedAt is printed under the title when non-zero.
	GeneratedAt time.Time
}

// RenderMarkdown renders the board as a Markdown report: the stats table,
// then one section per theme with its own status and content, then its items.
func RenderMarkdown(b *board.Board, statuses model.StatusStore, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = DefaultTitle
	}
	writeLn("# " + title)
	writeLn("")
	if !opt.GeneratedAt.IsZero() {
		writeLn("_" + opt.GeneratedAt.UTC().Format(time.RFC3339) + "_")
		writeLn("")
	}

	stats := b.Stats(statuses)
	writeLn(fmt.Sprintf("| %s | %s | %s | Total | %s |",
		statusutil.Label(model.StatusDone, opt.Locale),
		statusutil.Label(model.StatusDoing, opt.Locale),
		statusutil.Label(model.StatusTodo, opt.Locale),
		statusutil.PercentLabel(opt.Locale)))
	writeLn("|---:|---:|---:|---:|---:|")
	writeLn(fmt.Sprintf("| %d | %d | %d | %d | %d%% |", stats.Done, stats.Doing, stats.Todo, stats.Total, stats.Percent()))

	placeholder := statusutil.EmptyContent(opt.Locale)
	for _, m := range b.Filter(opt.Query) {
		r := b.Resolve(m.Theme, nil)
		st := statuses.Get(r.StatusKey)
		writeLn("")
		writeLn(fmt.Sprintf("## %s %s", checkbox(st), m.Theme.Name))
		writeLn("")
		writeLn(fmt.Sprintf("%s · `%s`", statusutil.Label(st, opt.Locale), r.StatusKey))
		writeLn("")
		writeLn(bodyOr(r.Content, placeholder))

		items := m.Display()
		if len(items) == 0 {
			continue
		}
		writeLn("")
		for i := range items {
			ir := b.Resolve(m.Theme, &items[i])
			ist := statuses.Get(ir.StatusKey)
			writeLn(fmt.Sprintf("- %s **%s** (%s)", checkbox(ist), items[i].Name, statusutil.Label(ist, opt.Locale)))
			if strings.TrimSpace(ir.Content) != "" {
				writeLn("")
				writeLn(indent(ir.Content, "  "))
				writeLn("")
			}
		}
	}
	return buf.String()
}

// checkbox is the GFM task-list marker. doing has no GFM form and renders open.
func checkbox(st model.Status) string {
	if st == model.StatusDone {
		return "[x]"
	}
	return "[ ]"
}

func bodyOr(body, placeholder string) string {
	if strings.TrimSpace(body) == "" {
		return placeholder
	}
	return body
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
