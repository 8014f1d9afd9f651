package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, &Client{BaseURL: srv.URL + "/exec?v=2", APIKey: "secret", HTTP: srv.Client()}
}

func TestPage_OK(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("route") != "page" || q.Get("key") != "secret" || q.Get("slug") != "football" || q.Get("v") != "2" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"ok":true,"page":{"title":"Terrain","body":"Pelouse refaite"},"updated":"2026-01-01"}`))
	})
	p, err := c.Page(context.Background(), "football")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if p.Slug != "football" || p.Title != "Terrain" || p.Body != "Pelouse refaite" {
		t.Fatalf("unexpected page: %#v", p)
	}
}

func TestPage_MissingPageIsEmpty(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	p, err := c.Page(context.Background(), "football")
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if p.Title != "" || p.Body != "" {
		t.Fatalf("expected empty page, got %#v", p)
	}
}

func TestGet_ServiceErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "message", status: 200, body: `{"ok":false,"error":"bad key"}`, want: "bad key"},
		{name: "default message", status: 200, body: `{"ok":false}`, want: "API error"},
		{name: "http failure", status: 502, body: `<html>bad gateway</html>`, want: "API error (HTTP 502)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Get(context.Background(), "page", nil)
			var ae *APIError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *APIError, got %T (%v)", err, err)
			}
			if err.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestGet_ParamsCannotOverrideKey(t *testing.T) {
	_, c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "secret" || r.URL.Query().Get("route") != "page" {
			t.Errorf("params overrode protocol fields: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	if _, err := c.Get(context.Background(), "page", map[string]string{"key": "x", "route": "y"}); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestGet_NotConfigured(t *testing.T) {
	c := &Client{}
	if _, err := c.Page(context.Background(), "football"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestPage_EmptySlug(t *testing.T) {
	c := &Client{BaseURL: "http://127.0.0.1:1"}
	if _, err := c.Page(context.Background(), " "); err == nil {
		t.Fatalf("expected error")
	}
}
