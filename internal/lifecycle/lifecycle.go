// Package lifecycle drives the provider install / update / remove state
// machine: it reconciles desired state (the latest N releases) against
// actual state (on-disk version directories) and persists outcomes.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/provdocs/provdocs/internal/config"
	"github.com/provdocs/provdocs/internal/fetch"
	"github.com/provdocs/provdocs/internal/store"
)

// ErrNotInstalled is returned by operations that require a lock-file entry.
var ErrNotInstalled = errors.New("provider is not installed")

// Resolver returns a provider's most recent release tags, newest first.
type Resolver interface {
	Resolve(ctx context.Context, provider string, limit int) ([]string, error)
}

// Fetcher runs one narrow checkout job.
type Fetcher interface {
	Fetch(ctx context.Context, job fetch.Job) fetch.Result
}

// CatalogBuilder fetches the full provider catalog from the remote host.
type CatalogBuilder interface {
	BuildCatalog(ctx context.Context) ([]store.CatalogEntry, error)
}

// IndexFunc scans a provider directory into index entries.
type IndexFunc func(providerDir string) ([]store.IndexEntry, error)

// Manager orchestrates the provider version lifecycle. It is the only
// writer of the lock file; every mutation is a whole-document
// read-modify-write, performed only after all fetch jobs in a batch have
// reported.
type Manager struct {
	store    *store.Store
	resolver Resolver
	fetcher  Fetcher
	catalog  CatalogBuilder
	index    IndexFunc
	cfg      *config.Config
	logger   *log.Logger

	// removeAll is swapped out in tests to exercise deletion failures.
	removeAll func(path string) error
}

// Config holds manager dependencies.
type Config struct {
	Store    *store.Store
	Resolver Resolver
	Fetcher  Fetcher
	Catalog  CatalogBuilder
	Index    IndexFunc
	Settings *config.Config
	Logger   *log.Logger
}

// New creates a lifecycle manager.
func New(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if cfg.Fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if cfg.Settings == nil {
		return nil, errors.New("settings are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Manager{
		store:     cfg.Store,
		resolver:  cfg.Resolver,
		fetcher:   cfg.Fetcher,
		catalog:   cfg.Catalog,
		index:     cfg.Index,
		cfg:       cfg.Settings,
		logger:    cfg.Logger,
		removeAll: os.RemoveAll,
	}, nil
}

// BuildRegistry rebuilds the provider catalog and persists it wholesale.
// A failed build leaves the previously persisted catalog untouched.
func (m *Manager) BuildRegistry(ctx context.Context) (int, error) {
	if m.catalog == nil {
		return 0, errors.New("no catalog client configured")
	}

	entries, err := m.catalog.BuildCatalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("registry build failed: %w", err)
	}
	if err := m.store.WriteCatalog(entries); err != nil {
		return 0, fmt.Errorf("failed to persist catalog: %w", err)
	}

	m.logger.Info("registry built", "providers", len(entries))
	return len(entries), nil
}

// repoURL resolves the clone URL for a provider, preferring the catalog's
// html_url and falling back to the configured owner.
func (m *Manager) repoURL(provider string) string {
	entries, err := m.store.ReadCatalog()
	if err == nil {
		for _, e := range entries {
			if e.Name == provider && e.HTMLURL != "" {
				return e.HTMLURL
			}
		}
	}
	return fmt.Sprintf("%s/%s/%s", m.cfg.Source.GitBase, m.cfg.Source.Owner, provider)
}

// scanVersions returns the on-disk version directories for a provider, the
// authoritative actual state. A missing provider directory is an empty set.
func (m *Manager) scanVersions(provider string) ([]string, error) {
	entries, err := os.ReadDir(m.store.ProviderDir(provider))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan versions for %s: %w", provider, err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	return versions, nil
}

// fetchVersions runs the candidate-path policy: one concurrent job per
// version against the first candidate subtree path, falling through to the
// next path until one succeeds for at least one version. Hard failures stay
// attached to their version; only versions that never succeeded are retried
// on later paths. Returns one result per requested version.
func (m *Manager) fetchVersions(ctx context.Context, provider, repoURL string, versions []string) []fetch.Result {
	var final []fetch.Result
	lastAttempt := make(map[string]fetch.Result)
	remaining := versions

	for _, subpath := range m.cfg.Install.FallbackPaths {
		if len(remaining) == 0 {
			break
		}

		results := m.dispatch(ctx, provider, repoURL, subpath, remaining)

		okCount := 0
		var stillMissing []string
		for _, res := range results {
			if res.OK() {
				final = append(final, res)
				okCount++
			} else {
				lastAttempt[res.Version] = res
				stillMissing = append(stillMissing, res.Version)
			}
		}
		remaining = stillMissing

		if okCount > 0 {
			// This path holds documentation for this provider; a version
			// that failed here will not fare better under another path.
			break
		}
	}

	for _, version := range remaining {
		final = append(final, lastAttempt[version])
	}
	return final
}

// dispatch fans out one fetch job per version and waits for all of them to
// report before returning. No lock-file write happens until every job in
// the batch is accounted for.
func (m *Manager) dispatch(ctx context.Context, provider, repoURL, subpath string, versions []string) []fetch.Result {
	results := make([]fetch.Result, len(versions))

	var wg sync.WaitGroup
	for i, version := range versions {
		wg.Add(1)
		go func(i int, version string) {
			defer wg.Done()
			results[i] = m.fetcher.Fetch(ctx, fetch.Job{
				Provider: provider,
				Version:  version,
				RepoURL:  repoURL,
				Subpath:  subpath,
				Dest:     m.store.VersionDir(provider, version),
			})
		}(i, version)
	}
	wg.Wait()

	return results
}

// reindex rebuilds a provider's artifact index. Indexing failures never
// fail the surrounding operation; they are logged and the stale index, if
// any, is left in place.
func (m *Manager) reindex(provider string) {
	if m.index == nil {
		return
	}

	entries, err := m.index(m.store.ProviderDir(provider))
	if err != nil {
		m.logger.Warn("indexing failed", "provider", provider, "error", err)
		return
	}
	if err := m.store.WriteIndex(provider, entries); err != nil {
		m.logger.Warn("failed to write index", "provider", provider, "error", err)
		return
	}
	m.logger.Debug("index rebuilt", "provider", provider, "artifacts", len(entries))
}

// sortedProviders returns lock keys in stable order.
func sortedProviders(lock store.Lock) []string {
	names := make([]string, 0, len(lock))
	for name := range lock {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
