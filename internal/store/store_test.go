package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"progress-board/internal/board"
	"progress-board/internal/logging"
	"progress-board/internal/model"
	"progress-board/internal/outline"
)

func openBoth(t *testing.T) map[string]*Store {
	t.Helper()
	ctx := context.Background()
	out := map[string]*Store{}
	for _, backend := range []string{BackendFile, BackendSQLite} {
		s, err := Open(ctx, backend, t.TempDir(), "", nil)
		if err != nil {
			t.Fatalf("Open(%s): %v", backend, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		out[backend] = s
	}
	return out
}

func TestStore_LoadAbsentIsEmpty(t *testing.T) {
	for name, s := range openBoth(t) {
		got := s.Load(context.Background())
		if got == nil || len(got) != 0 {
			t.Fatalf("%s: expected empty store, got %#v", name, got)
		}
		if _, ok := s.ModTime(context.Background()); ok {
			t.Fatalf("%s: expected no mod time before first save", name)
		}
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBoth(t) {
		in := model.StatusStore{
			"sport":            model.StatusDoing,
			"sport > football": model.StatusDone,
			"art":              model.StatusTodo,
		}
		if err := s.Save(ctx, in); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got := s.Load(ctx)
		if len(got) != len(in) {
			t.Fatalf("%s: expected %d entries, got %#v", name, len(in), got)
		}
		for k, v := range in {
			if got[k] != v {
				t.Fatalf("%s: key %q: expected %q, got %q", name, k, v, got[k])
			}
		}
		if _, ok := s.ModTime(ctx); !ok {
			t.Fatalf("%s: expected mod time after save", name)
		}

		// Overwrite replaces the whole value.
		if err := s.Save(ctx, model.StatusStore{"art": model.StatusDone}); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got = s.Load(ctx)
		if len(got) != 1 || got["art"] != model.StatusDone {
			t.Fatalf("%s: expected overwrite, got %#v", name, got)
		}
	}
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	a, err := Open(ctx, BackendFile, dir, "a", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	b, err := Open(ctx, BackendFile, dir, "b", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := a.Save(ctx, model.StatusStore{"sport": model.StatusDone}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := b.Load(ctx); len(got) != 0 {
		t.Fatalf("expected namespace b empty, got %#v", got)
	}
}

func TestStore_CorruptPayloadReadsEmptyAndWarns(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"garbage":  "{not json",
		"array":    `["done"]`,
		"string":   `"done"`,
		"null":     `null`,
		"number":   `42`,
		"truncate": `{"sport": "do`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			kv := &FileKV{Dir: dir}
			if err := kv.Put(ctx, DefaultNamespace, []byte(payload)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			var logs bytes.Buffer
			s := New(kv, "", logging.New(&logs, "warn"))
			got := s.Load(ctx)
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty store, got %#v", got)
			}
			if !strings.Contains(logs.String(), "malformed") {
				t.Fatalf("expected a warning, got %q", logs.String())
			}
		})
	}
}

func TestDecode_DropsUnknownValues(t *testing.T) {
	got, dropped, err := Decode([]byte(`{"a":"done","b":"finished","c":3,"d":null,"e":"doing","f":"DONE"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dropped != 4 {
		t.Fatalf("expected 4 dropped, got %d", dropped)
	}
	if len(got) != 2 || got["a"] != model.StatusDone || got["e"] != model.StatusDoing {
		t.Fatalf("unexpected store: %#v", got)
	}
}

func TestDecode_EmptyPayload(t *testing.T) {
	got, dropped, err := Decode([]byte("  \n"))
	if err != nil || dropped != 0 || len(got) != 0 {
		t.Fatalf("expected empty store, got %#v dropped=%d err=%v", got, dropped, err)
	}
}

func TestEncode_SkipsInvalid(t *testing.T) {
	b, err := Encode(model.StatusStore{"a": model.StatusDone, "b": model.Status("bogus")})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(b) != `{"a":"done"}` {
		t.Fatalf("unexpected payload: %s", b)
	}
}

func TestOpenKV_Validation(t *testing.T) {
	ctx := context.Background()
	if _, err := OpenKV(ctx, "redis", t.TempDir()); err == nil {
		t.Fatalf("expected unknown backend error")
	}
	if _, err := OpenKV(ctx, BackendFile, "  "); err == nil {
		t.Fatalf("expected missing dir error")
	}
	if !ValidBackend("") || !ValidBackend("SQLite") || ValidBackend("redis") {
		t.Fatalf("ValidBackend mismatch")
	}
}

func TestFileKV_KeyIsFileSafe(t *testing.T) {
	dir := t.TempDir()
	kv := &FileKV{Dir: dir}
	if err := kv.Put(context.Background(), "../escape me", []byte("{}")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".._escape_me.json")); err != nil {
		t.Fatalf("expected sanitized file name: %v", err)
	}
}

func TestSQLiteKV_FileLocation(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenSQLiteKV(context.Background(), dir)
	if err != nil {
		t.Fatalf("OpenSQLiteKV: %v", err)
	}
	defer kv.Close()
	if kv.Location() != filepath.Join(dir, sqliteFileName) {
		t.Fatalf("unexpected location: %s", kv.Location())
	}
}

// Persisting, reloading and re-parsing the same sources yields the same stats.
func TestStore_ReloadPreservesStats(t *testing.T) {
	ctx := context.Background()
	text := "Sport\n  Football\n  Tennis\nArt\n  Peinture\n"
	themes := outline.Parse(text)
	b := board.New(themes, model.ContentMap{})

	statuses := model.StatusStore{}
	var err error
	statuses, _, err = board.ApplyStatusChange(statuses, b.Resolve(themes[0], &themes[0].Items[0]).StatusKey, model.StatusDone)
	if err != nil {
		t.Fatalf("ApplyStatusChange: %v", err)
	}
	statuses, _, err = board.ApplyStatusChange(statuses, b.Resolve(themes[1], nil).StatusKey, model.StatusDoing)
	if err != nil {
		t.Fatalf("ApplyStatusChange: %v", err)
	}
	want := b.Stats(statuses)

	for name, s := range openBoth(t) {
		if err := s.Save(ctx, statuses); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		reloaded := board.New(outline.Parse(text), model.ContentMap{})
		got := reloaded.Stats(s.Load(ctx))
		if got != want {
			t.Fatalf("%s: expected %+v, got %+v", name, want, got)
		}
	}
	if want.Total != 5 || want.Done != 1 || want.Doing != 1 || want.Todo != 3 {
		t.Fatalf("unexpected stats: %+v", want)
	}
}

func TestExport_WriteReadRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	e := NewExport("ns", model.StatusStore{"sport": model.StatusDone, "bad": model.Status("nope")}, now)
	if _, ok := e.Statuses["bad"]; ok {
		t.Fatalf("expected invalid value dropped")
	}
	var buf bytes.Buffer
	if err := WriteExport(&buf, e); err != nil {
		t.Fatalf("WriteExport: %v", err)
	}
	got, err := ReadExport(&buf)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	if !got.ExportedAt.Equal(now) || got.Namespace != "ns" || got.Statuses["sport"] != model.StatusDone || len(got.Statuses) != 1 {
		t.Fatalf("unexpected export: %#v", got)
	}
}

func TestReadExport_SchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "missing statuses", in: `{"exported_at":"2026-01-01T00:00:00Z"}`, want: "statuses"},
		{name: "bad status", in: `{"exported_at":"2026-01-01T00:00:00Z","statuses":{"sport":"finished"}}`, want: "/statuses/sport"},
		{name: "bad time", in: `{"exported_at":"yesterday","statuses":{}}`, want: "/exported_at"},
		{name: "not an object", in: `[]`, want: "invalid export file"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadExport(strings.NewReader(tc.in))
			if err == nil {
				t.Fatalf("expected error")
			}
			var ie *InvalidExportError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InvalidExportError, got %T (%v)", err, err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestReadExport_NotJSON(t *testing.T) {
	if _, err := ReadExport(strings.NewReader("{")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestMerge(t *testing.T) {
	base := model.StatusStore{"a": model.StatusDone, "b": model.StatusDoing}
	in := model.StatusStore{"b": model.StatusTodo, "c": model.StatusDone}

	merged := Merge(base, in, false)
	if len(merged) != 3 || merged["a"] != model.StatusDone || merged["b"] != model.StatusTodo {
		t.Fatalf("unexpected merge: %#v", merged)
	}
	replaced := Merge(base, in, true)
	if len(replaced) != 2 || replaced["a"] != "" {
		t.Fatalf("unexpected replace: %#v", replaced)
	}
	if base["b"] != model.StatusDoing {
		t.Fatalf("base must not be modified")
	}
}

func TestExportFileName(t *testing.T) {
	got := ExportFileName(time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC))
	if got != "board-export-20260314-093005.json" {
		t.Fatalf("unexpected name: %s", got)
	}
}
