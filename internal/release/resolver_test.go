package release

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/repos/hashicorp/terraform-provider-aws/releases"
		if r.URL.Path != wantPath {
			t.Errorf("path = %s, want %s", r.URL.Path, wantPath)
		}
		if got := r.URL.Query().Get("per_page"); got != "3" {
			t.Errorf("per_page = %s, want 3", got)
		}
		fmt.Fprint(w, `[{"tag_name": "v5.0.0"}, {"tag_name": "v4.9.0"}, {"tag_name": "v4.8.0"}]`)
	}))
	defer server.Close()

	r, err := New(Config{BaseURL: server.URL, Owner: "hashicorp"})
	if err != nil {
		t.Fatal(err)
	}

	tags, err := r.Resolve(context.Background(), "terraform-provider-aws", 3)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"v5.0.0", "v4.9.0", "v4.8.0"}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags, want %d", len(tags), len(want))
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %s, want %s (host order must be preserved)", i, tags[i], want[i])
		}
	}
}

func TestResolve_CachesPerProvider(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `[{"tag_name": "v1.0.0"}]`)
	}))
	defer server.Close()

	r, err := New(Config{BaseURL: server.URL, Owner: "hashicorp"})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if _, err := r.Resolve(context.Background(), "terraform-provider-aws", 3); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("endpoint hit %d times, want 1 (cached)", calls)
	}
}

func TestResolve_HTTPErrorSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r, err := New(Config{BaseURL: server.URL, Owner: "hashicorp"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.Resolve(context.Background(), "terraform-provider-missing", 3)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 in error, got: %v", err)
	}
}

func TestResolve_SkipsEmptyTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"tag_name": ""}, {"tag_name": "v1.0.0"}]`)
	}))
	defer server.Close()

	r, err := New(Config{BaseURL: server.URL, Owner: "hashicorp"})
	if err != nil {
		t.Fatal(err)
	}

	tags, err := r.Resolve(context.Background(), "terraform-provider-x", 3)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(tags) != 1 || tags[0] != "v1.0.0" {
		t.Errorf("tags = %v, want [v1.0.0]", tags)
	}
}

func TestResolve_NoReleases(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	r, err := New(Config{BaseURL: server.URL, Owner: "hashicorp"})
	if err != nil {
		t.Fatal(err)
	}

	tags, err := r.Resolve(context.Background(), "terraform-provider-empty", 3)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty", tags)
	}
}
