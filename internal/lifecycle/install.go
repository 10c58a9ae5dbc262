package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/provdocs/provdocs/internal/store"
)

// Install fetches the latest N versions of a provider and records it in the
// lock file. Installing an already-installed provider is a no-op that
// succeeds without dispatching any fetch jobs. The returned report carries
// per-version outcomes; err is reserved for infrastructure failures
// (resolution, state store), not individual fetch failures.
func (m *Manager) Install(ctx context.Context, provider string) (*InstallReport, error) {
	report := &InstallReport{Provider: provider}

	lock, err := m.store.ReadLock()
	if err != nil {
		return nil, err
	}
	if _, installed := lock[provider]; installed {
		report.AlreadyInstalled = true
		report.Success = true
		return report, nil
	}

	tags, err := m.resolver.Resolve(ctx, provider, m.cfg.Install.ReleaseLimit)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no releases found for %s", provider)
	}
	report.Requested = tags

	m.logger.Info("installing provider", "provider", provider, "versions", tags)

	results := m.fetchVersions(ctx, provider, m.repoURL(provider), tags)
	for _, res := range results {
		if res.OK() {
			report.Installed = append(report.Installed, res.Version)
		} else {
			report.Failed = append(report.Failed, VersionOutcome{
				Version:     res.Version,
				Status:      res.Status,
				Diagnostics: res.Diagnostics,
			})
		}
	}
	sort.Strings(report.Installed)

	if len(report.Installed) == 0 {
		// Zero versions succeeded across all candidate paths: no lock-file
		// entry is written and the provider stays NotInstalled.
		m.logger.Error("install failed", "provider", provider)
		return report, nil
	}

	// Full read-modify-write: reread the lock rather than reusing the copy
	// from before the fetch phase.
	lock, err = m.store.ReadLock()
	if err != nil {
		return nil, err
	}
	lock[provider] = newLockEntry(report.Installed)
	if err := m.store.WriteLock(lock); err != nil {
		return nil, err
	}

	m.reindex(provider)

	report.Success = true
	if len(report.Failed) > 0 {
		m.logger.Warn("install completed with failures",
			"provider", provider,
			"installed", len(report.Installed),
			"failed", len(report.Failed),
		)
	} else {
		m.logger.Info("install complete", "provider", provider, "versions", report.Installed)
	}
	return report, nil
}

// EnsureInstalled installs each not-yet-installed provider sequentially with
// a fixed inter-provider delay, so a rate-limited host is never hit with
// simultaneous clone bursts. Already-installed providers are skipped as
// no-ops. The result maps each provider to its install success.
func (m *Manager) EnsureInstalled(ctx context.Context, providers []string) (map[string]bool, error) {
	outcome := make(map[string]bool, len(providers))

	lock, err := m.store.ReadLock()
	if err != nil {
		return nil, err
	}

	delayed := false
	for _, provider := range providers {
		if _, installed := lock[provider]; installed {
			outcome[provider] = true
			continue
		}

		if delayed {
			select {
			case <-ctx.Done():
				return outcome, ctx.Err()
			case <-time.After(m.cfg.Install.EnsureDelay.Std()):
			}
		}
		delayed = true

		report, err := m.Install(ctx, provider)
		if err != nil {
			m.logger.Error("ensure: install errored", "provider", provider, "error", err)
			outcome[provider] = false
			continue
		}
		outcome[provider] = report.Success
	}

	return outcome, nil
}

// newLockEntry builds a lock record with InstalledAt set to now. InstalledAt
// is set exactly once, at first successful install.
func newLockEntry(versions []string) store.InstalledProvider {
	return store.InstalledProvider{
		InstalledAt: time.Now().Unix(),
		Versions:    versions,
	}
}
