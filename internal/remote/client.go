// Package remote talks to the keyed page service: a single GET endpoint that
// takes a route and an access key as query parameters and answers
// {"ok": bool, "error": string, ...}.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"progress-board/internal/logging"
	"progress-board/internal/model"

	"github.com/charmbracelet/log"
)

const RoutePage = "page"

// APIError is a request the service answered with ok=false, or an HTTP
// failure without a usable body.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "API error"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	return msg
}

// ErrNotConfigured is returned when no base URL is set.
var ErrNotConfigured = errors.New("remote service not configured (set remote.base_url or BOARD_REMOTE_URL)")

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Logger  *log.Logger
}

// Response is the decoded envelope.
type Response struct {
	OK    bool         `json:"ok"`
	Error string       `json:"error"`
	Page  *pagePayload `json:"page"`
}

type pagePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c *Client) Configured() bool {
	return c != nil && strings.TrimSpace(c.BaseURL) != ""
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// Get calls route with params. The access key is always sent; params may not
// override route or key.
func (c *Client) Get(ctx context.Context, route string, params map[string]string) (Response, error) {
	if !c.Configured() {
		return Response{}, ErrNotConfigured
	}
	u, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil {
		return Response{}, fmt.Errorf("remote: invalid base url: %w", err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("route", route)
	q.Set("key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	logger := logging.OrDiscard(c.Logger)
	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		logger.Warn("remote request failed", "route", route, "err", err)
		return Response{}, fmt.Errorf("remote %s: %w", route, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("remote %s: %w", route, err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return Response{}, &APIError{Status: resp.StatusCode}
		}
		return Response{}, fmt.Errorf("remote %s: decode response: %w", route, err)
	}
	if !out.OK {
		logger.Warn("remote service error", "route", route, "error", out.Error)
		return out, &APIError{Message: out.Error}
	}
	logger.Debug("remote request", "route", route, "took", time.Since(start))
	return out, nil
}

// Page fetches one page by slug. Missing fields come back empty.
func (c *Client) Page(ctx context.Context, slug string) (model.Page, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return model.Page{}, fmt.Errorf("missing page slug")
	}
	resp, err := c.Get(ctx, RoutePage, map[string]string{"slug": slug})
	if err != nil {
		return model.Page{}, err
	}
	p := model.Page{Slug: slug}
	if resp.Page != nil {
		p.Title = resp.Page.Title
		p.Body = resp.Page.Body
	}
	return p, nil
}
