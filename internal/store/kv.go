// Package store persists the status store.
//
// Statuses live under a single namespace key in a small key/value backend
// (one JSON file per key, or a SQLite table). Reading is best effort: a missing
// or malformed value reads as an empty store.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultNamespace is the key the status store is saved under.
const DefaultNamespace = "programme_2026_statuses_v1"

// KV is a string-keyed byte store.
type KV interface {
	// Get returns the value under key; ok is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	// ModTime reports when key was last written.
	ModTime(ctx context.Context, key string) (time.Time, bool, error)
	// Location describes where values live (a directory or a database file).
	Location() string
	Close() error
}

// ValidBackend reports whether OpenKV knows backend.
func ValidBackend(backend string) bool {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile, BackendSQLite:
		return true
	default:
		return false
	}
}

// OpenKV opens the named backend rooted at dir. An empty backend means file.
func OpenKV(ctx context.Context, backend, dir string) (KV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("open store: missing directory")
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		kv := &FileKV{Dir: dir}
		if err := kv.Ensure(); err != nil {
			return nil, err
		}
		return kv, nil
	case BackendSQLite:
		kv, err := OpenSQLiteKV(ctx, dir)
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (want file|sqlite)", backend)
	}
}
