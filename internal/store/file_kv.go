package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileKV stores each key as <Dir>/<key>.json.
type FileKV struct {
	Dir string
}

func (s *FileKV) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s *FileKV) path(key string) string {
	return filepath.Join(s.Dir, fileSafeKey(key)+".json")
}

func (s *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *FileKV) Put(_ context.Context, key string, value []byte) error {
	return WriteFileAtomic(s.path(key), value)
}

func (s *FileKV) ModTime(_ context.Context, key string) (time.Time, bool, error) {
	st, err := os.Stat(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return st.ModTime(), true, nil
}

func (s *FileKV) Location() string { return s.Dir }

func (s *FileKV) Close() error { return nil }

// fileSafeKey keeps [A-Za-z0-9._-] and replaces everything else with '_'.
func fileSafeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
}
