// Package registry builds the provider catalog from the remote search API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/provdocs/provdocs/internal/store"
)

// maxPages bounds catalog pagination so a host that never stops handing out
// next-page links cannot spin the build forever.
const maxPages = 50

// Client fetches the full provider catalog from the repository-search API.
type Client struct {
	baseURL string
	query   string
	token   string
	client  *http.Client
	logger  *log.Logger
}

// Config holds catalog client configuration.
type Config struct {
	BaseURL string
	Query   string
	Token   string // optional, raises rate limits
	Logger  *log.Logger
}

// New creates a catalog client.
func New(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		query:   cfg.Query,
		token:   cfg.Token,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  cfg.Logger,
	}
}

// searchResponse is one page of the repository-search endpoint.
type searchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Name        string `json:"name"`
		URL         string `json:"url"`
		HTMLURL     string `json:"html_url"`
		Description string `json:"description"`
	} `json:"items"`
}

// BuildCatalog walks every page of the search endpoint and returns catalog
// entries in API page order. Any page failure fails the whole build; a
// half-built catalog is never returned.
func (c *Client) BuildCatalog(ctx context.Context) ([]store.CatalogEntry, error) {
	pageURL := fmt.Sprintf("%s/search/repositories?q=%s&per_page=100",
		c.baseURL, url.QueryEscape(c.query))

	var entries []store.CatalogEntry
	for page := 1; pageURL != ""; page++ {
		if page > maxPages {
			return nil, fmt.Errorf("catalog build exceeded %d pages, aborting", maxPages)
		}

		c.logger.Debug("fetching catalog page", "page", page, "url", pageURL)

		pageEntries, next, err := c.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("catalog page %d: %w", page, err)
		}

		entries = append(entries, pageEntries...)
		pageURL = next
	}

	c.logger.Debug("catalog build complete", "entries", len(entries))
	return entries, nil
}

// fetchPage fetches one search page and returns its entries plus the URL of
// the next page, or an empty string when pagination is exhausted.
func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]store.CatalogEntry, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var page searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("failed to decode search response: %w", err)
	}

	entries := make([]store.CatalogEntry, 0, len(page.Items))
	for _, item := range page.Items {
		entries = append(entries, store.CatalogEntry{
			Name:        item.Name,
			URL:         item.URL,
			HTMLURL:     item.HTMLURL,
			Description: item.Description,
		})
	}

	return entries, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" target from a Link header, for example:
//
//	<https://api.github.com/search/repositories?q=x&page=2>; rel="next", <...>; rel="last"
//
// Returns an empty string when there is no next page.
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if strings.TrimSpace(section[1]) != `rel="next"` {
			continue
		}
		target := strings.TrimSpace(section[0])
		target = strings.TrimPrefix(target, "<")
		target = strings.TrimSuffix(target, ">")
		return target
	}
	return ""
}
