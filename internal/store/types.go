// Package store persists the provider catalog, the installed-version lock
// file, and per-provider artifact indexes as whole JSON documents on disk.
package store

import (
	"fmt"
	"strings"
)

// CatalogEntry is one discoverable provider package. The catalog is an
// ordered sequence of entries, written and read wholesale.
type CatalogEntry struct {
	Name        string `json:"name" validate:"required"`
	URL         string `json:"url"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
}

// InstalledProvider is the lock-file record for one installed provider.
// A provider is installed iff it has a key in the lock file, even when
// Versions is empty after a partial failure.
type InstalledProvider struct {
	InstalledAt int64    `json:"installed_at" validate:"required"`
	Versions    []string `json:"versions"`
}

// Lock maps provider name to its installed-version record.
type Lock map[string]InstalledProvider

// Kind classifies a documentation artifact discovered during indexing.
type Kind string

const (
	KindIndex             Kind = "index"
	KindData              Kind = "data"
	KindResource          Kind = "resource"
	KindAction            Kind = "action"
	KindEphemeralResource Kind = "ephemeral-resource"
	KindGuide             Kind = "guide"
	KindListResources     Kind = "list-resources"
	KindUnknown           Kind = "unknown"
)

// AllKinds returns all valid artifact kinds.
func AllKinds() []Kind {
	return []Kind{
		KindIndex, KindData, KindResource, KindAction,
		KindEphemeralResource, KindGuide, KindListResources, KindUnknown,
	}
}

// Validate checks if the Kind is a valid value.
func (k Kind) Validate() error {
	switch k {
	case KindIndex, KindData, KindResource, KindAction,
		KindEphemeralResource, KindGuide, KindListResources, KindUnknown:
		return nil
	case "":
		return fmt.Errorf("artifact kind is required")
	default:
		return fmt.Errorf("invalid artifact kind '%s'", k)
	}
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// IndexEntry is one documentation artifact in a provider's index, merged by
// name across all versions in which it was observed.
type IndexEntry struct {
	Kind     Kind     `json:"type" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Path     string   `json:"path"`
	Versions []string `json:"versions" validate:"min=1"`
}
