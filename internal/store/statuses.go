package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"progress-board/internal/logging"
	"progress-board/internal/model"

	"github.com/charmbracelet/log"
)

// Store reads and writes the status store under one namespace key.
type Store struct {
	KV        KV
	Namespace string
	Logger    *log.Logger
}

// Open opens backend in dir. An empty namespace means DefaultNamespace.
func Open(ctx context.Context, backend, dir, namespace string, logger *log.Logger) (*Store, error) {
	kv, err := OpenKV(ctx, backend, dir)
	if err != nil {
		return nil, err
	}
	return New(kv, namespace, logger), nil
}

func New(kv KV, namespace string, logger *log.Logger) *Store {
	if strings.TrimSpace(namespace) == "" {
		namespace = DefaultNamespace
	}
	return &Store{KV: kv, Namespace: namespace, Logger: logging.OrDiscard(logger)}
}

// Load returns the persisted statuses. It never fails: a missing value, an
// unreadable backend or a malformed payload all read as an empty store.
func (s *Store) Load(ctx context.Context) model.StatusStore {
	raw, ok, err := s.KV.Get(ctx, s.Namespace)
	if err != nil {
		s.Logger.Warn("status store unreadable; starting empty", "namespace", s.Namespace, "err", err)
		return model.StatusStore{}
	}
	if !ok {
		return model.StatusStore{}
	}
	st, dropped, err := Decode(raw)
	if err != nil {
		s.Logger.Warn("status store malformed; starting empty", "namespace", s.Namespace, "err", err)
		return model.StatusStore{}
	}
	if dropped > 0 {
		s.Logger.Warn("ignored unknown status values", "namespace", s.Namespace, "count", dropped)
	}
	return st
}

// Save writes statuses through to the backend.
func (s *Store) Save(ctx context.Context, statuses model.StatusStore) error {
	b, err := Encode(statuses)
	if err != nil {
		return err
	}
	if err := s.KV.Put(ctx, s.Namespace, b); err != nil {
		return fmt.Errorf("save statuses: %w", err)
	}
	s.Logger.Debug("statuses saved", "namespace", s.Namespace, "entries", len(statuses))
	return nil
}

// ModTime reports when the statuses were last saved.
func (s *Store) ModTime(ctx context.Context) (time.Time, bool) {
	t, ok, err := s.KV.ModTime(ctx, s.Namespace)
	if err != nil {
		return time.Time{}, false
	}
	return t, ok
}

func (s *Store) Location() string { return s.KV.Location() }

func (s *Store) Close() error { return s.KV.Close() }

// Decode parses a persisted payload. Entries whose value is not one of the
// three statuses are dropped and counted. A payload that is not a JSON object
// is an error.
func Decode(raw []byte) (model.StatusStore, int, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return model.StatusStore{}, 0, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, 0, err
	}
	if m == nil {
		return nil, 0, fmt.Errorf("status payload is null")
	}
	out := make(model.StatusStore, len(m))
	dropped := 0
	for k, v := range m {
		s, ok := v.(string)
		if !ok || !model.Status(s).Valid() {
			dropped++
			continue
		}
		out[k] = model.Status(s)
	}
	return out, dropped, nil
}

// Encode serializes statuses as a JSON object, skipping invalid values.
func Encode(statuses model.StatusStore) ([]byte, error) {
	clean := make(map[string]model.Status, len(statuses))
	for k, v := range statuses {
		if v.Valid() {
			clean[k] = v
		}
	}
	return json.Marshal(clean)
}
