// Package source loads the outline and content texts from local files or
// HTTP(S) URLs and watches local files for edits.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"progress-board/internal/logging"

	"github.com/charmbracelet/log"
)

// FetchError reports a source that could not be read. Its message is the
// single line shown to the user.
type FetchError struct {
	Resource string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("cannot load %s (HTTP %d)", e.Resource, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("cannot load %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("cannot load %s", e.Resource)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher reads a text resource. The zero value is usable.
type Fetcher struct {
	HTTP   *http.Client
	Logger *log.Logger
}

const defaultTimeout = 15 * time.Second

func (f *Fetcher) client() *http.Client {
	if f != nil && f.HTTP != nil {
		return f.HTTP
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (f *Fetcher) logger() *log.Logger {
	if f == nil {
		return logging.Discard()
	}
	return logging.OrDiscard(f.Logger)
}

// IsURL reports whether resource is an http(s) URL.
func IsURL(resource string) bool {
	r := strings.ToLower(strings.TrimSpace(resource))
	return strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://")
}

// LocalPath returns the file path behind resource, or "" for http(s) URLs.
func LocalPath(resource string) string {
	resource = strings.TrimSpace(resource)
	if resource == "" || IsURL(resource) {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(resource), "file://") {
		u, err := url.Parse(resource)
		if err != nil {
			return ""
		}
		return u.Path
	}
	return resource
}

// FetchText returns the full body of resource. A non-2xx HTTP response is a
// FetchError carrying the status code.
func (f *Fetcher) FetchText(ctx context.Context, resource string) (string, error) {
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return "", &FetchError{Resource: "<empty>", Err: fmt.Errorf("no resource configured")}
	}
	start := time.Now()
	var (
		text string
		err  error
	)
	if IsURL(resource) {
		text, err = f.fetchHTTP(ctx, resource)
	} else {
		text, err = readFile(resource)
	}
	if err != nil {
		f.logger().Warn("source load failed", "resource", resource, "err", err)
		return "", err
	}
	f.logger().Debug("source loaded", "resource", resource, "bytes", len(text), "took", time.Since(start))
	return text, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, resource string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return "", &FetchError{Resource: resource, Err: err}
	}
	// Sources are edited by hand; always ask for the latest copy.
	req.Header.Set("Cache-Control", "no-store")
	resp, err := f.client().Do(req)
	if err != nil {
		return "", &FetchError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &FetchError{Resource: resource, Status: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Resource: resource, Err: err}
	}
	return string(b), nil
}

func readFile(resource string) (string, error) {
	path := LocalPath(resource)
	if path == "" {
		return "", &FetchError{Resource: resource, Err: fmt.Errorf("invalid file URL")}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &FetchError{Resource: resource, Err: err}
	}
	return string(b), nil
}
