package lifecycle

import (
	"fmt"
	"strings"
	"time"
)

// ListEntry is one installed provider with its tracked versions
// cross-checked against disk.
type ListEntry struct {
	Provider    string   `json:"provider" yaml:"provider"`
	InstalledAt int64    `json:"installed_at" yaml:"installed_at"`
	Versions    []string `json:"versions" yaml:"versions"`
	Missing     []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Listing is the installed-provider overview.
type Listing []ListEntry

func (l Listing) String() string {
	if len(l) == 0 {
		return "no providers installed"
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  (installed %s)\n", e.Provider,
			time.Unix(e.InstalledAt, 0).UTC().Format("2006-01-02"))
		for _, v := range e.Versions {
			fmt.Fprintf(&b, "  %s\n", v)
		}
		for _, v := range e.Missing {
			fmt.Fprintf(&b, "  %s (missing on disk)\n", v)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// List reports every installed provider from the lock file, flagging locked
// versions whose directory has gone missing out of band.
func (m *Manager) List() (Listing, error) {
	lock, err := m.store.ReadLock()
	if err != nil {
		return nil, err
	}

	listing := make(Listing, 0, len(lock))
	for _, provider := range sortedProviders(lock) {
		rec := lock[provider]

		onDisk, err := m.scanVersions(provider)
		if err != nil {
			return nil, err
		}
		present := make(map[string]bool, len(onDisk))
		for _, v := range onDisk {
			present[v] = true
		}

		entry := ListEntry{Provider: provider, InstalledAt: rec.InstalledAt}
		for _, v := range rec.Versions {
			if present[v] {
				entry.Versions = append(entry.Versions, v)
			} else {
				entry.Missing = append(entry.Missing, v)
			}
		}
		listing = append(listing, entry)
	}
	return listing, nil
}
