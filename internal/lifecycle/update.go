package lifecycle

import (
	"context"
	"fmt"
	"sort"
)

// Update reconciles an installed provider against its latest N releases:
// stale on-disk versions are removed, missing ones fetched concurrently, and
// the lock file rewritten from a fresh disk scan once every job has
// reported. The provider stays Installed regardless of partial failures;
// the report's Success is true only when zero fetch jobs failed.
func (m *Manager) Update(ctx context.Context, provider string) (*UpdateReport, error) {
	lock, err := m.store.ReadLock()
	if err != nil {
		return nil, err
	}
	current, installed := lock[provider]
	if !installed {
		return nil, fmt.Errorf("%w: %s", ErrNotInstalled, provider)
	}

	tags, err := m.resolver.Resolve(ctx, provider, m.cfg.Install.ReleaseLimit)
	if err != nil {
		return nil, err
	}
	report := &UpdateReport{Provider: provider, Latest: tags}

	// The filesystem, not the lock file, is the authoritative actual state;
	// out-of-band deletions and stray manual copies are both reconciled.
	onDisk, err := m.scanVersions(provider)
	if err != nil {
		return nil, err
	}

	toRemove := subtract(onDisk, tags)
	toFetch := subtract(tags, onDisk)

	m.logger.Info("updating provider",
		"provider", provider,
		"latest", tags,
		"remove", toRemove,
		"fetch", toFetch,
	)

	for _, version := range toRemove {
		if err := m.removeAll(m.store.VersionDir(provider, version)); err != nil {
			// Best effort: a stuck directory never aborts the update.
			m.logger.Warn("failed to remove stale version",
				"provider", provider, "version", version, "error", err)
			report.RemoveErrors = append(report.RemoveErrors,
				fmt.Sprintf("%s: %v", version, err))
			continue
		}
		report.Removed = append(report.Removed, version)
	}

	if len(toFetch) > 0 {
		results := m.fetchVersions(ctx, provider, m.repoURL(provider), toFetch)
		for _, res := range results {
			if res.OK() {
				report.Fetched = append(report.Fetched, res.Version)
			} else {
				report.Failed = append(report.Failed, VersionOutcome{
					Version:     res.Version,
					Status:      res.Status,
					Diagnostics: res.Diagnostics,
				})
			}
		}
		sort.Strings(report.Fetched)
	}

	// All jobs have reported; rewrite the lock entry from ground truth.
	// Succeeded versions are kept even when siblings failed.
	onDisk, err = m.scanVersions(provider)
	if err != nil {
		return nil, err
	}
	sort.Strings(onDisk)

	lock, err = m.store.ReadLock()
	if err != nil {
		return nil, err
	}
	current.Versions = onDisk
	lock[provider] = current
	if err := m.store.WriteLock(lock); err != nil {
		return nil, err
	}

	m.reindex(provider)

	report.Success = len(report.Failed) == 0
	if report.Success {
		m.logger.Info("update complete", "provider", provider, "versions", onDisk)
	} else {
		m.logger.Error("update completed with failures",
			"provider", provider, "failed", len(report.Failed))
	}
	return report, nil
}

// UpdateAll updates every installed provider sequentially and reports
// per-provider success.
func (m *Manager) UpdateAll(ctx context.Context) (map[string]bool, error) {
	lock, err := m.store.ReadLock()
	if err != nil {
		return nil, err
	}

	outcome := make(map[string]bool, len(lock))
	for _, provider := range sortedProviders(lock) {
		report, err := m.Update(ctx, provider)
		if err != nil {
			m.logger.Error("update errored", "provider", provider, "error", err)
			outcome[provider] = false
			continue
		}
		outcome[provider] = report.Success
	}
	return outcome, nil
}

// subtract returns the elements of a not present in b, preserving a's order.
func subtract(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	var out []string
	for _, s := range a {
		if !inB[s] {
			out = append(out, s)
		}
	}
	return out
}
