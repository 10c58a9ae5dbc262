package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildCatalog_SinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "terraform-provider in:name user:hashicorp" {
			t.Errorf("query = %q", got)
		}
		fmt.Fprint(w, `{"total_count": 2, "items": [
			{"name": "terraform-provider-aws", "url": "u1", "html_url": "h1", "description": "AWS"},
			{"name": "terraform-provider-google", "url": "u2", "html_url": "h2", "description": null}
		]}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Query: "terraform-provider in:name user:hashicorp"})

	entries, err := c.BuildCatalog(context.Background())
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "terraform-provider-aws" || entries[1].Name != "terraform-provider-google" {
		t.Errorf("entries out of order: %+v", entries)
	}
}

func TestBuildCatalog_FollowsLinkHeader(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "", "1":
			w.Header().Set("Link", fmt.Sprintf(`<%s/search/repositories?q=x&page=2>; rel="next", <%s/search/repositories?q=x&page=2>; rel="last"`, server.URL, server.URL))
			fmt.Fprint(w, `{"items": [{"name": "p1"}]}`)
		case "2":
			fmt.Fprint(w, `{"items": [{"name": "p2"}]}`)
		default:
			t.Errorf("unexpected page request: %s", r.URL)
		}
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Query: "x"})

	entries, err := c.BuildCatalog(context.Background())
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Name != "p1" || entries[1].Name != "p2" {
		t.Errorf("page order not preserved: %+v", entries)
	}
}

func TestBuildCatalog_PageErrorFailsWholeBuild(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/search/repositories?q=x&page=2>; rel="next"`, server.URL))
		fmt.Fprint(w, `{"items": [{"name": "p1"}]}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Query: "x"})

	entries, err := c.BuildCatalog(context.Background())
	if err == nil {
		t.Fatal("expected error when a page fails")
	}
	if entries != nil {
		t.Errorf("expected no partial catalog, got %d entries", len(entries))
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should surface HTTP status, got: %v", err)
	}
}

func TestBuildCatalog_RateLimitStatusSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Query: "x"})

	if _, err := c.BuildCatalog(context.Background()); err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected 429 in error, got: %v", err)
	}
}

func TestBuildCatalog_PaginationCap(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always advertise a next page.
		w.Header().Set("Link", fmt.Sprintf(`<%s/search/repositories?q=x&page=2>; rel="next"`, server.URL))
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Query: "x"})

	if _, err := c.BuildCatalog(context.Background()); err == nil || !strings.Contains(err.Error(), "pages") {
		t.Errorf("expected pagination cap error, got: %v", err)
	}
}

func TestBuildCatalog_SendsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q, want Bearer tok123", got)
		}
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Query: "x", Token: "tok123"})
	if _, err := c.BuildCatalog(context.Background()); err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
}

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{`<https://api.github.com/x?page=2>; rel="next", <https://api.github.com/x?page=5>; rel="last"`, "https://api.github.com/x?page=2"},
		{`<https://api.github.com/x?page=5>; rel="last"`, ""},
		{"", ""},
		{`<https://api.github.com/x?page=3>;rel="next"`, "https://api.github.com/x?page=3"},
	}

	for _, tt := range tests {
		if got := nextPageURL(tt.header); got != tt.want {
			t.Errorf("nextPageURL(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
