package lifecycle

import (
	"context"
	"fmt"
)

// Remove deletes a provider's documentation tree and its lock-file entry.
// If the directory deletion fails, the lock entry is deliberately left in
// place: losing track of content that still exists on disk is worse than
// thinking a removed provider is still installed.
func (m *Manager) Remove(ctx context.Context, provider string) (bool, error) {
	lock, err := m.store.ReadLock()
	if err != nil {
		return false, err
	}
	if _, installed := lock[provider]; !installed {
		return false, fmt.Errorf("%w: %s", ErrNotInstalled, provider)
	}

	if err := m.removeAll(m.store.ProviderDir(provider)); err != nil {
		m.logger.Error("failed to remove provider directory",
			"provider", provider, "error", err)
		return false, fmt.Errorf("failed to remove %s: %w", provider, err)
	}

	delete(lock, provider)
	if err := m.store.WriteLock(lock); err != nil {
		return false, err
	}

	if err := m.store.RemoveIndex(provider); err != nil {
		// The index is derived data; a stale file is log-worthy, not fatal.
		m.logger.Warn("failed to remove index", "provider", provider, "error", err)
	}

	m.logger.Info("provider removed", "provider", provider)
	return true, nil
}
