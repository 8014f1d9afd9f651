package board

import (
	"reflect"
	"strings"
	"testing"

	"progress-board/internal/model"
	"progress-board/internal/outline"
)

func TestLookup(t *testing.T) {
	b := New(outline.Parse("Stade\n  Pelouse\nÉcole\n  Cantine"), nil)

	got := b.Lookup("  STADE >pelouse ")
	if len(got) != 1 || got[0].Path != "Stade > Pelouse" {
		t.Fatalf("unexpected lookup: %#v", got)
	}
	if got := b.Lookup("école"); len(got) != 1 || !got[0].IsTheme() {
		t.Fatalf("expected theme node, got %#v", got)
	}
	if got := b.Lookup("nothing"); len(got) != 0 {
		t.Fatalf("expected no node, got %#v", got)
	}
	if got := b.Lookup("!!!"); got != nil {
		t.Fatalf("expected nil for empty key, got %#v", got)
	}
}

func TestSuggest(t *testing.T) {
	b := New(outline.Parse("Stade\n  Pelouse\n  Vestiaires\nÉcole\n  Cantine"), nil)
	got := b.Suggest("Stade > Pelo", 2)
	if len(got) == 0 || got[0] != "Stade > Pelouse" {
		t.Fatalf("expected Stade > Pelouse first, got %v", got)
	}
	if len(got) > 2 {
		t.Fatalf("expected at most 2 suggestions, got %v", got)
	}
	err := UnknownNodeError{Path: "Stade > Pelo", Suggestions: got}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("expected suggestions in error, got %q", err.Error())
	}
}

func TestDuplicates(t *testing.T) {
	b := New(outline.Parse("A\n  x\n  X!\nB\nA\n  y"), nil)
	got := b.Duplicates()
	want := []Duplicate{
		{Key: "a", Paths: []string{"A", "A"}},
		{Key: "a > x", Paths: []string{"A > x", "A > X!"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected duplicates:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestOrphans_Sorted(t *testing.T) {
	b := New(outline.Parse("A\n  x"), nil)
	statuses := model.StatusStore{
		"z":     model.StatusDone,
		"a":     model.StatusDone,
		"a > x": model.StatusDoing,
		"b":     model.StatusTodo,
	}
	if got := b.Orphans(statuses); !reflect.DeepEqual(got, []string{"b", "z"}) {
		t.Fatalf("unexpected orphans: %v", got)
	}
}
