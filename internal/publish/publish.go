// Package publish renders the board as a Markdown or HTML report.
package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteFile writes a rendered report to path, creating parent directories.
// An existing file is kept unless overwrite is set.
func WriteFile(path string, b []byte, overwrite bool) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --out")
	}
	path = filepath.Clean(path)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return WriteResult{}, errors.New("file exists (use --overwrite): " + path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return WriteResult{}, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}
