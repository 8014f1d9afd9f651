package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"progress-board/internal/board"
	"progress-board/internal/content"
	"progress-board/internal/model"
	"progress-board/internal/outline"
)

func testBoard() *board.Board {
	themes := outline.Parse("Sport\n  Football\n  Tennis\nArt\n  Peinture\n")
	cm := content.ParseBlocks("[Sport]\nClubs du quartier\n---\n[Sport > Football]\nTerrain **synthétique**\n")
	return board.New(themes, cm)
}

func TestRenderMarkdown_StatsAndSections(t *testing.T) {
	t.Parallel()

	statuses := model.StatusStore{
		"sport":            model.StatusDoing,
		"sport > football": model.StatusDone,
	}
	md := RenderMarkdown(testBoard(), statuses, RenderOptions{
		Title:       "Programme 2026",
		Locale:      "fr",
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{
		"# Programme 2026\n",
		"_2026-03-01T10:00:00Z_",
		"| Fait | En cours | À faire | Total | % Fait |",
		"| 1 | 1 | 3 | 5 | 20% |",
		"## [ ] Sport\n\nEn cours · `sport`\n\nClubs du quartier\n",
		"- [x] **Football** (Fait)\n\n  Terrain **synthétique**\n",
		"- [ ] **Tennis** (À faire)\n",
		"## [ ] Art\n\nÀ faire · `art`\n\n— (Aucun contenu pour le moment)\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected markdown to contain %q\n---\n%s", want, md)
		}
	}
	if strings.Index(md, "## [ ] Sport") > strings.Index(md, "## [ ] Art") {
		t.Fatalf("expected outline order")
	}
}

func TestRenderMarkdown_QueryLimitsSections(t *testing.T) {
	t.Parallel()

	md := RenderMarkdown(testBoard(), nil, RenderOptions{Locale: "en", Query: "synthé"})
	if !strings.HasPrefix(md, "# "+DefaultTitle+"\n") {
		t.Fatalf("expected default title, got %q", md[:20])
	}
	if !strings.Contains(md, "**Football** (To do)") {
		t.Fatalf("expected matched item, got:\n%s", md)
	}
	if strings.Contains(md, "Tennis") || strings.Contains(md, "## [ ] Art") {
		t.Fatalf("expected unmatched nodes hidden, got:\n%s", md)
	}
	// Stats always cover the whole board.
	if !strings.Contains(md, "| 0 | 0 | 5 | 5 | 0% |") {
		t.Fatalf("expected whole-board stats, got:\n%s", md)
	}
}

func TestRenderHTMLDocument(t *testing.T) {
	t.Parallel()

	md := RenderMarkdown(testBoard(), model.StatusStore{"sport > football": model.StatusDone}, RenderOptions{Title: "Programme <2026>"})
	doc, err := RenderHTMLDocument("Programme <2026>", "fr", md)
	if err != nil {
		t.Fatalf("RenderHTMLDocument: %v", err)
	}
	for _, want := range []string{
		"<title>Programme &lt;2026&gt;</title>",
		"<table>",
		"<strong>synthétique</strong>",
		`<html lang="fr">`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in html:\n%s", want, doc)
		}
	}
}

func TestRenderHTML_EscapesRawHTML(t *testing.T) {
	t.Parallel()

	out, err := RenderHTML("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw html must not pass through: %s", out)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "reports", "board.md")
	res, err := WriteFile(p, []byte("# x\n"), false)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if len(res.Written) != 1 || res.Written[0] != p {
		t.Fatalf("unexpected result: %#v", res)
	}
	if _, err := WriteFile(p, []byte("# y\n"), false); err == nil {
		t.Fatalf("expected exists error without overwrite")
	}
	if _, err := WriteFile(p, []byte("# y\n"), true); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "# y\n" {
		t.Fatalf("unexpected content: %q", b)
	}
}
