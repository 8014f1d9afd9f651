package tui

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"progress-board/internal/board"
	"progress-board/internal/logging"
	"progress-board/internal/model"
	"progress-board/internal/remote"
	"progress-board/internal/source"
	"progress-board/internal/statusutil"
	"progress-board/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

type viewMode int

const (
	viewBoard viewMode = iota
	viewPage
)

const (
	appTitle         = "Programme"
	maxContentHeight = 12
	footerTick       = 30 * time.Second
)

// Options wires the board to its sources, storage and remote page service.
type Options struct {
	Board    *board.Board
	Store    *store.Store
	Fetcher  *source.Fetcher
	Outline  string
	Content  string
	Remote   *remote.Client
	PageSlug string
	Locale   string
	StateDir string
	Logger   *log.Logger
	Now      func() time.Time
}

type sourcesChangedMsg struct{}

type boardLoadedMsg struct {
	board *board.Board
	err   error
}

type pageLoadedMsg struct {
	page model.Page
	err  error
}

type footerTickMsg struct{}

type appModel struct {
	opt    Options
	logger *log.Logger
	now    func() time.Time
	keys   keyMap

	board     *board.Board
	statuses  model.StatusStore
	rows      []row
	collapsed map[string]bool

	list      list.Model
	filter    textinput.Model
	filtering bool
	query     string
	bar       progress.Model
	help      help.Model
	content   viewport.Model
	pageView  viewport.Model

	mode        viewMode
	showContent bool
	showHelp    bool

	page        *model.Page
	pageErr     string
	pageLoading bool
	pageFetched bool

	minibuffer    string
	minibufferErr bool
	savedAt       time.Time

	width  int
	height int
}

func newAppModel(opt Options, statuses model.StatusStore) appModel {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if statuses == nil {
		statuses = model.StatusStore{}
	}

	l := list.New(nil, newRowDelegate(opt.Locale), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter"
	ti.CharLimit = 200

	m := appModel{
		opt:       opt,
		logger:    logging.OrDiscard(opt.Logger),
		now:       opt.Now,
		keys:      defaultKeyMap(),
		board:     opt.Board,
		statuses:  statuses,
		collapsed: map[string]bool{},
		list:      l,
		filter:    ti,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:      help.New(),
		content:   viewport.New(0, 0),
		pageView:  viewport.New(0, 0),
	}
	if opt.Store != nil {
		if t, ok := opt.Store.ModTime(context.Background()); ok {
			m.savedAt = t
		}
	}
	m.rebuild()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tickFooter()
}

func tickFooter() tea.Cmd {
	return tea.Tick(footerTick, func(time.Time) tea.Msg { return footerTickMsg{} })
}

func (m *appModel) rebuild() {
	prevPath, prevTheme := "", false
	if r, ok := m.selectedRow(); ok {
		prevPath, prevTheme = r.res.Path, r.isTheme()
	}

	m.rows = buildRows(m.board, m.statuses, m.query, m.collapsed)
	items := make([]list.Item, 0, len(m.rows))
	for _, r := range m.rows {
		items = append(items, r)
	}
	m.list.SetItems(items)

	sel := 0
	for i, r := range m.rows {
		if r.res.Path == prevPath && r.isTheme() == prevTheme {
			sel = i
			break
		}
	}
	if len(m.rows) > 0 {
		m.list.Select(sel)
	}
	m.refreshContent()
}

func (m appModel) selectedRow() (row, bool) {
	r, ok := m.list.SelectedItem().(row)
	return r, ok
}

func (m appModel) stats() model.Stats {
	return m.board.Stats(m.statuses)
}

func (m *appModel) setMessage(s string) {
	m.minibuffer = s
	m.minibufferErr = false
}

func (m *appModel) setError(s string) {
	m.minibuffer = s
	m.minibufferErr = true
}

func (m appModel) loadBoardCmd() tea.Cmd {
	f, outline, content := m.opt.Fetcher, m.opt.Outline, m.opt.Content
	return func() tea.Msg {
		b, err := source.LoadBoard(context.Background(), f, outline, content)
		return boardLoadedMsg{board: b, err: err}
	}
}

func (m appModel) fetchPageCmd() tea.Cmd {
	client, slug := m.opt.Remote, m.opt.PageSlug
	return func() tea.Msg {
		p, err := client.Page(context.Background(), slug)
		return pageLoadedMsg{page: p, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case footerTickMsg:
		return m, tickFooter()

	case sourcesChangedMsg:
		return m, m.loadBoardCmd()

	case boardLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("reload failed", "err", msg.err)
			m.setError(msg.err.Error())
			return m, nil
		}
		m.board = msg.board
		m.rebuild()
		m.logger.Info("sources reloaded", "themes", len(m.board.Themes))
		m.setMessage("sources reloaded")
		return m, nil

	case pageLoadedMsg:
		m.pageLoading = false
		if msg.err != nil {
			m.logger.Warn("page fetch failed", "slug", m.opt.PageSlug, "err", msg.err)
			m.pageErr = msg.err.Error()
		} else {
			p := msg.page
			m.page = &p
			m.pageErr = ""
		}
		m.refreshPage()
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.mode == viewPage:
			return m.updatePage(msg)
		case m.filtering:
			return m.updateFilter(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m appModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.query = ""
		m.rebuild()
		return m, nil
	case "enter", "down", "up":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if q := strings.TrimSpace(m.filter.Value()); q != m.query {
		m.query = q
		m.rebuild()
	}
	return m, cmd
}

func (m appModel) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Page), msg.String() == "q":
		m.mode = viewBoard
		return m, nil
	}
	var cmd tea.Cmd
	m.pageView, cmd = m.pageView.Update(msg)
	return m, cmd
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue(m.query)
		m.filter.CursorEnd()
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.query = ""
			m.filter.SetValue("")
			m.rebuild()
		} else if m.showContent {
			m.showContent = false
			m.layout()
		}
		m.minibuffer = ""
		return m, nil
	case key.Matches(msg, m.keys.Todo):
		m.setStatus(model.StatusTodo)
		return m, nil
	case key.Matches(msg, m.keys.Doing):
		m.setStatus(model.StatusDoing)
		return m, nil
	case key.Matches(msg, m.keys.Done):
		m.setStatus(model.StatusDone)
		return m, nil
	case key.Matches(msg, m.keys.Cycle):
		if r, ok := m.selectedRow(); ok {
			m.setStatus(statusutil.Next(m.statuses.Get(r.res.StatusKey)))
		}
		return m, nil
	case key.Matches(msg, m.keys.Collapse):
		m.toggleCollapse()
		return m, nil
	case key.Matches(msg, m.keys.Content):
		m.showContent = !m.showContent
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Page):
		return m.openPage()
	case key.Matches(msg, m.keys.Copy):
		m.copyKey()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.export()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshContent()
	return m, cmd
}

// setStatus applies the change, writes it through to the store, then rebuilds
// every row from the new snapshot. A failed save keeps the in-memory change
// and reports the error; the next successful save persists it.
func (m *appModel) setStatus(to model.Status) {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	next, change, err := board.ApplyStatusChange(m.statuses, r.res.StatusKey, to)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.statuses = next
	m.rebuild()

	msg := r.res.Path + " → " + statusutil.Label(to, m.opt.Locale)
	if m.opt.Store != nil {
		if err := m.opt.Store.Save(context.Background(), next); err != nil {
			m.logger.Error("save failed", "key", change.Key, "err", err)
			m.setError("save failed: " + err.Error())
			return
		}
		m.savedAt = m.now()
	}
	m.logger.Info("status set", "key", change.Key, "from", change.From, "to", change.To)
	m.setMessage(msg)
}

func (m *appModel) toggleCollapse() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	if m.query != "" {
		m.setMessage("clear the filter (esc) to fold themes")
		return
	}
	themeKey := m.board.Resolve(r.theme, nil).StatusKey
	m.collapsed[themeKey] = !m.collapsed[themeKey]
	if !r.isTheme() {
		// Folding from an item lands on its theme.
		for i, x := range m.rows {
			if x.isTheme() && x.res.StatusKey == themeKey {
				m.list.Select(i)
				break
			}
		}
	}
	m.rebuild()
}

func (m *appModel) copyKey() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	if err := copyToClipboard(r.res.StatusKey); err != nil {
		m.setError("copy failed: " + err.Error())
		return
	}
	m.setMessage("copied " + r.res.StatusKey)
}

func (m *appModel) export() {
	if strings.TrimSpace(m.opt.StateDir) == "" {
		m.setError("export failed: no state directory")
		return
	}
	now := m.now()
	ns := ""
	if m.opt.Store != nil {
		ns = m.opt.Store.Namespace
	}
	exp := store.NewExport(ns, m.statuses, now)
	var buf bytes.Buffer
	if err := store.WriteExport(&buf, exp); err != nil {
		m.setError("export failed: " + err.Error())
		return
	}
	path := filepath.Join(m.opt.StateDir, store.ExportFileName(now))
	if err := store.WriteFileAtomic(path, buf.Bytes()); err != nil {
		m.setError("export failed: " + err.Error())
		return
	}
	m.logger.Info("statuses exported", "path", path, "entries", len(exp.Statuses))
	m.setMessage("exported " + path)
}

// openPage shows the remote page view. The page is fetched once per session.
func (m appModel) openPage() (tea.Model, tea.Cmd) {
	m.mode = viewPage
	if m.pageFetched {
		m.refreshPage()
		return m, nil
	}
	m.pageFetched = true
	if !m.opt.Remote.Configured() {
		m.pageErr = remote.ErrNotConfigured.Error()
		m.refreshPage()
		return m, nil
	}
	m.pageLoading = true
	m.refreshPage()
	return m, m.fetchPageCmd()
}

func (m *appModel) layout() {
	w := m.width
	if w <= 0 {
		return
	}
	m.bar.Width = max(10, w-2)
	m.filter.Width = max(10, w-4)
	m.help.Width = w

	contentH := 0
	if m.showContent {
		contentH = min(maxContentHeight, max(3, m.height/3))
		m.content.Width = w
		m.content.Height = contentH - 1
	}
	// title+stats, progress bar, filter line, footer
	chrome := 4
	if m.showHelp {
		chrome += lipgloss.Height(m.help.View(m.keys)) - 1
	}
	m.list.SetSize(w, max(1, m.height-chrome-contentH))

	m.pageView.Width = w
	m.pageView.Height = max(1, m.height-3)

	m.refreshContent()
	m.refreshPage()
}

func (m *appModel) refreshContent() {
	if !m.showContent {
		return
	}
	r, ok := m.selectedRow()
	if !ok {
		m.content.SetContent("")
		return
	}
	body := renderMarkdown(r.res.Content, max(10, m.content.Width-2))
	if body == "" {
		body = styleMuted().Render(statusutil.EmptyContent(m.opt.Locale))
	}
	m.content.SetContent(body)
	m.content.GotoTop()
}

func (m *appModel) refreshPage() {
	var b strings.Builder
	switch {
	case m.pageLoading:
		b.WriteString(styleMuted().Render("loading…"))
	case m.pageErr != "":
		b.WriteString(styleError().Render(m.pageErr))
	case m.page != nil:
		body := renderMarkdown(m.page.Body, max(10, m.pageView.Width-2))
		if body == "" {
			body = styleMuted().Render(statusutil.EmptyContent(m.opt.Locale))
		}
		b.WriteString(body)
	}
	m.pageView.SetContent(b.String())
}

func (m appModel) pageTitle() string {
	if m.page != nil && strings.TrimSpace(m.page.Title) != "" {
		return m.page.Title
	}
	return "Compte rendu – " + m.opt.PageSlug
}

func (m appModel) statsLine() string {
	s := m.stats()
	loc := m.opt.Locale
	parts := []string{
		statusStyle(model.StatusDone).Render(fmt.Sprintf("%s %d", statusutil.Label(model.StatusDone, loc), s.Done)),
		statusStyle(model.StatusDoing).Render(fmt.Sprintf("%s %d", statusutil.Label(model.StatusDoing, loc), s.Doing)),
		statusStyle(model.StatusTodo).Render(fmt.Sprintf("%s %d", statusutil.Label(model.StatusTodo, loc), s.Todo)),
		fmt.Sprintf("Total %d", s.Total),
		fmt.Sprintf("%s %d%%", statusutil.PercentLabel(loc), s.Percent()),
	}
	return strings.Join(parts, styleMuted().Render(" · "))
}

func (m appModel) footer() string {
	left := ""
	switch {
	case m.minibuffer != "" && m.minibufferErr:
		left = styleError().Render(m.minibuffer)
	case m.minibuffer != "":
		left = m.minibuffer
	default:
		left = m.help.View(m.keys)
	}
	right := ""
	if !m.savedAt.IsZero() {
		right = styleMuted().Render("saved " + humanize.RelTime(m.savedAt, m.now(), "ago", "from now"))
	}
	if m.showHelp && m.minibuffer == "" {
		return left + "\n" + right
	}
	if right == "" {
		return left
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = xansi.Truncate(left, max(0, m.width-lipgloss.Width(right)-2), "…")
		gap = max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) View() string {
	if m.mode == viewPage {
		header := styleTitle().Render(m.pageTitle())
		hint := styleMuted().Render("esc back")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", m.pageView.View(), hint)
	}

	var b strings.Builder
	b.WriteString(styleTitle().Render(appTitle) + "  " + m.statsLine())
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(float64(m.stats().Percent()) / 100))
	b.WriteString("\n")
	switch {
	case m.filtering:
		b.WriteString(m.filter.View())
	case m.query != "":
		b.WriteString(styleMatch().Render("/ " + m.query))
	default:
		b.WriteString(styleMuted().Render("/ filter"))
	}
	b.WriteString("\n")
	if len(m.rows) == 0 {
		b.WriteString(styleMuted().Render("no theme or item matches"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}
	if m.showContent {
		title := ""
		if r, ok := m.selectedRow(); ok {
			title = r.res.Path
		}
		b.WriteString(styleMuted().Render("── " + title))
		b.WriteString("\n")
		b.WriteString(m.content.View())
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	return b.String()
}
