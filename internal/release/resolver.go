// Package release resolves the most recent release tags of a provider.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the in-process release cache. Sized for a full
// update-all run against a large catalog.
const cacheSize = 512

// Resolver queries the releases endpoint for a provider's latest tags.
type Resolver struct {
	baseURL string
	owner   string
	token   string
	client  *http.Client
	cache   *lru.Cache[string, []string]
}

// Config holds resolver configuration.
type Config struct {
	BaseURL string
	Owner   string
	Token   string // optional
}

// New creates a release resolver.
func New(cfg Config) (*Resolver, error) {
	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create release cache: %w", err)
	}
	return &Resolver{
		baseURL: cfg.BaseURL,
		owner:   cfg.Owner,
		token:   cfg.Token,
		client:  &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}, nil
}

// releaseResponse is one element of the releases-listing endpoint.
type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// Resolve returns up to limit release tags for the provider, newest first in
// whatever order the host defines as most recent. No client-side re-sorting
// is applied. Results are cached per provider for the lifetime of the
// process, so batch operations hit the endpoint once per provider.
func (r *Resolver) Resolve(ctx context.Context, provider string, limit int) ([]string, error) {
	key := fmt.Sprintf("%s/%s@%d", r.owner, provider, limit)
	if tags, ok := r.cache.Get(key); ok {
		return tags, nil
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d", r.baseURL, r.owner, provider, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases for %s: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("releases API returned status %d for %s", resp.StatusCode, provider)
	}

	var releases []releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode releases for %s: %w", provider, err)
	}

	tags := make([]string, 0, len(releases))
	for _, rel := range releases {
		if rel.TagName == "" {
			continue
		}
		tags = append(tags, rel.TagName)
		if len(tags) == limit {
			break
		}
	}

	r.cache.Add(key, tags)
	return tags, nil
}
