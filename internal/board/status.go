package board

import (
	"errors"
	"strings"

	"progress-board/internal/model"
)

var ErrInvalidStatus = errors.New("invalid status")
var ErrEmptyKey = errors.New("empty status key")

// StatusChange describes what ApplyStatusChange did.
type StatusChange struct {
	Key     string       `json:"key"`
	From    model.Status `json:"from"`
	To      model.Status `json:"to"`
	Changed bool         `json:"changed"`
}

// ApplyStatusChange returns a copy of statuses with key set to to. The input
// store is never modified. Callers persist the returned store and re-render.
//
// Setting a node back to todo keeps an explicit entry rather than deleting it.
func ApplyStatusChange(statuses model.StatusStore, key string, to model.Status) (model.StatusStore, StatusChange, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return statuses, StatusChange{}, ErrEmptyKey
	}
	if !to.Valid() {
		return statuses, StatusChange{}, ErrInvalidStatus
	}

	prev := statuses.Get(key)
	next := statuses.Clone()
	next[key] = to

	return next, StatusChange{
		Key:     key,
		From:    prev,
		To:      to,
		Changed: statuses[key] != to,
	}, nil
}
