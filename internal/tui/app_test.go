package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"progress-board/internal/board"
	"progress-board/internal/content"
	"progress-board/internal/model"
	"progress-board/internal/outline"
	"progress-board/internal/remote"
	"progress-board/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Setenv("BOARD_TUI_MD_STYLE", "notty")
	os.Exit(m.Run())
}

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func sampleBoard() *board.Board {
	themes := outline.Parse("Stade\n  Vestiaires\n  Pelouse\nÉcole\n  Cantine")
	blocks := content.ParseBlocks("[Stade]\nTerrain synthétique prévu.\n---\n[École > Cantine]\nRepas bio le jeudi")
	return board.New(themes, blocks)
}

func newTestModel(t *testing.T, kv store.KV) appModel {
	t.Helper()
	dir := t.TempDir()
	if kv == nil {
		var err error
		kv, err = store.OpenKV(context.Background(), store.BackendFile, dir)
		if err != nil {
			t.Fatalf("OpenKV: %v", err)
		}
	}
	opt := Options{
		Board:    sampleBoard(),
		Store:    store.New(kv, "", nil),
		Locale:   "fr",
		StateDir: dir,
		PageSlug: "football",
		Now:      func() time.Time { return fixedNow },
	}
	m := newAppModel(opt, opt.Store.Load(context.Background()))
	return update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(m appModel, msg tea.Msg) appModel {
	nm, _ := m.Update(msg)
	return nm.(appModel)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selectPath(t *testing.T, m appModel, path string, theme bool) appModel {
	t.Helper()
	for i, r := range m.rows {
		if r.res.Path == path && r.isTheme() == theme {
			m.list.Select(i)
			return m
		}
	}
	t.Fatalf("no row %q", path)
	return m
}

func TestBuildRows(t *testing.T) {
	b := sampleBoard()
	statuses := model.StatusStore{"stade > pelouse": model.StatusDone}

	rows := buildRows(b, statuses, "", nil)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if !rows[0].isTheme() || rows[0].badge != 2 || rows[2].status != model.StatusDone {
		t.Fatalf("unexpected rows: %#v", rows)
	}

	collapsed := map[string]bool{"stade": true}
	rows = buildRows(b, statuses, "", collapsed)
	if len(rows) != 3 || !rows[0].collapsed {
		t.Fatalf("expected Stade folded, got %d rows", len(rows))
	}

	// Folding is ignored while a query is active.
	rows = buildRows(b, statuses, "pelouse", collapsed)
	if len(rows) != 2 || rows[0].collapsed || !rows[1].matched || rows[1].name() != "Pelouse" {
		t.Fatalf("unexpected filtered rows: %#v", rows)
	}

	// A theme hit by name keeps every item, including ones that also match.
	rows = buildRows(b, statuses, "stade", collapsed)
	if len(rows) != 3 || !rows[0].matched || !rows[1].matched || !rows[2].matched {
		t.Fatalf("expected Stade with both items, got %#v", rows)
	}

	// Content bodies are searched too.
	rows = buildRows(b, statuses, "bio", nil)
	if len(rows) != 2 || rows[0].name() != "École" || rows[1].name() != "Cantine" {
		t.Fatalf("unexpected content match rows: %#v", rows)
	}
}

func TestStatusKeysPersist(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(m, runes("3"))
	if got := m.statuses.Get("stade"); got != model.StatusDone {
		t.Fatalf("expected stade done, got %q", got)
	}
	saved := m.opt.Store.Load(context.Background())
	if saved["stade"] != model.StatusDone {
		t.Fatalf("expected saved status, got %#v", saved)
	}
	if !m.savedAt.Equal(fixedNow) {
		t.Fatalf("expected savedAt set, got %v", m.savedAt)
	}
	if !strings.Contains(m.minibuffer, "Stade → Fait") {
		t.Fatalf("unexpected minibuffer %q", m.minibuffer)
	}
	if v := m.View(); !strings.Contains(v, "Fait 1") || !strings.Contains(v, "% Fait 20%") {
		t.Fatalf("stats not updated in view:\n%s", v)
	}

	m = selectPath(t, m, "Stade > Pelouse", false)
	m = update(m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(m, tea.KeyMsg{Type: tea.KeySpace})
	if got := m.statuses.Get("stade > pelouse"); got != model.StatusDone {
		t.Fatalf("expected two cycles to reach done, got %q", got)
	}
	r, _ := m.selectedRow()
	if r.res.Path != "Stade > Pelouse" {
		t.Fatalf("selection moved to %q", r.res.Path)
	}

	m = update(m, runes("1"))
	if got, ok := m.statuses["stade > pelouse"]; !ok || got != model.StatusTodo {
		t.Fatalf("expected explicit todo entry, got %q (present=%v)", got, ok)
	}
}

type failingKV struct{ store.KV }

func (f failingKV) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestSaveFailureKeepsChange(t *testing.T) {
	kv, err := store.OpenKV(context.Background(), store.BackendFile, t.TempDir())
	if err != nil {
		t.Fatalf("OpenKV: %v", err)
	}
	m := newTestModel(t, failingKV{kv})

	m = update(m, runes("2"))
	if m.statuses.Get("stade") != model.StatusDoing {
		t.Fatalf("expected in-memory change kept")
	}
	if !m.minibufferErr || !strings.Contains(m.minibuffer, "disk full") {
		t.Fatalf("expected save error, got %q", m.minibuffer)
	}
}

func TestFilterAndClear(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(m, runes("/"))
	if !m.filtering {
		t.Fatalf("expected filter focused")
	}
	m = update(m, runes("cant"))
	if m.query != "cant" || len(m.rows) != 2 {
		t.Fatalf("expected 2 rows for %q, got %d", m.query, len(m.rows))
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.filtering || m.query != "cant" {
		t.Fatalf("enter should keep the query and leave the input")
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.query != "" || len(m.rows) != 5 {
		t.Fatalf("esc should clear the filter, got %q with %d rows", m.query, len(m.rows))
	}

	m = update(m, runes("/"))
	m = update(m, runes("zzz"))
	if len(m.rows) != 0 || !strings.Contains(m.View(), "no theme or item matches") {
		t.Fatalf("expected empty state")
	}
}

func TestCollapse(t *testing.T) {
	m := newTestModel(t, nil)
	m = selectPath(t, m, "Stade > Vestiaires", false)

	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.rows) != 3 {
		t.Fatalf("expected Stade folded, got %d rows", len(m.rows))
	}
	if r, _ := m.selectedRow(); !r.isTheme() || r.res.Path != "Stade" {
		t.Fatalf("expected selection on folded theme, got %q", r.res.Path)
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.rows) != 5 {
		t.Fatalf("expected Stade unfolded, got %d rows", len(m.rows))
	}
}

func TestContentPane(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(m, runes("c"))
	if !strings.Contains(m.View(), "Terrain synthétique") {
		t.Fatalf("expected theme content in pane:\n%s", m.View())
	}
	m = selectPath(t, m, "Stade > Vestiaires", false)
	m.refreshContent()
	if !strings.Contains(m.View(), "Aucun contenu pour le moment") {
		t.Fatalf("expected placeholder:\n%s", m.View())
	}
}

func TestCopyKey(t *testing.T) {
	var got string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	m := newTestModel(t, nil)
	m = selectPath(t, m, "École > Cantine", false)
	m = update(m, runes("y"))
	if got != "école > cantine" || m.minibuffer != "copied école > cantine" {
		t.Fatalf("unexpected copy %q / %q", got, m.minibuffer)
	}
}

func TestExport(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(m, runes("3"))
	m = update(m, runes("e"))

	path := filepath.Join(m.opt.StateDir, store.ExportFileName(fixedNow))
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("expected export file: %v (minibuffer %q)", err, m.minibuffer)
	}
	defer f.Close()
	exp, err := store.ReadExport(f)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	if exp.Statuses["stade"] != model.StatusDone {
		t.Fatalf("unexpected export: %#v", exp)
	}
}

func TestPageNotConfigured(t *testing.T) {
	m := newTestModel(t, nil)
	nm, cmd := m.Update(runes("p"))
	m = nm.(appModel)
	if cmd != nil || m.mode != viewPage {
		t.Fatalf("expected page view without fetch")
	}
	if !strings.Contains(m.View(), "not configured") {
		t.Fatalf("expected configuration error:\n%s", m.View())
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != viewBoard {
		t.Fatalf("esc should return to the board")
	}
}

func TestPageFetchedOnce(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"ok":true,"page":{"title":"Compte rendu football","body":"Réunion **mardi**"}}`))
	}))
	t.Cleanup(srv.Close)

	m := newTestModel(t, nil)
	m.opt.Remote = &remote.Client{BaseURL: srv.URL, APIKey: "k", HTTP: srv.Client()}

	nm, cmd := m.Update(runes("p"))
	m = nm.(appModel)
	if cmd == nil || !m.pageLoading {
		t.Fatalf("expected fetch command")
	}
	m = update(m, cmd())
	if v := m.View(); !strings.Contains(v, "Compte rendu football") || !strings.Contains(v, "mardi") {
		t.Fatalf("unexpected page view:\n%s", v)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	nm, cmd = m.Update(runes("p"))
	m = nm.(appModel)
	if cmd != nil || calls != 1 || m.mode != viewPage {
		t.Fatalf("expected cached page, calls=%d", calls)
	}
}

func TestReload(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(m, boardLoadedMsg{err: errors.New("cannot load themes.txt (HTTP 500)")})
	if len(m.rows) != 5 || !m.minibufferErr {
		t.Fatalf("failed reload should keep the board and report, got %d rows", len(m.rows))
	}

	next := board.New(outline.Parse("Stade\n  Pelouse\nPiscine"), nil)
	m = update(m, boardLoadedMsg{board: next})
	if len(m.rows) != 3 || m.minibuffer != "sources reloaded" {
		t.Fatalf("unexpected reload result: %d rows, %q", len(m.rows), m.minibuffer)
	}
}

func TestFooterShowsSavedTime(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(m, runes("3"))
	m.minibuffer = ""
	m.now = func() time.Time { return fixedNow.Add(3 * time.Minute) }
	if f := m.footer(); !strings.Contains(f, "saved 3 minutes ago") {
		t.Fatalf("unexpected footer %q", f)
	}
}
