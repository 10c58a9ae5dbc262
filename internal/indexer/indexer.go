// Package indexer scans a provider's on-disk documentation tree and builds
// the name-to-versions artifact index consumed by browsing frontends.
package indexer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/provdocs/provdocs/internal/store"
)

// kindByDir maps the top-level directory of a documentation tree to an
// artifact kind. Both the long-form names and the single-letter shorthand
// used by older provider layouts are recognized.
var kindByDir = map[string]store.Kind{
	"resources":           store.KindResource,
	"r":                   store.KindResource,
	"data-sources":        store.KindData,
	"d":                   store.KindData,
	"actions":             store.KindAction,
	"ephemeral-resources": store.KindEphemeralResource,
	"guides":              store.KindGuide,
	"list-resources":      store.KindListResources,
}

// docExtensions are stripped, repeatedly, to derive an artifact name from a
// file name ("instance.html.markdown" -> "instance").
var docExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".html":     true,
	".erb":      true,
	".txt":      true,
}

// Scan walks every version directory under providerDir and returns one index
// entry per artifact name, with the set of versions the artifact was
// observed in. Entries and their version lists are sorted, so the result is
// independent of scan order.
func Scan(providerDir string) ([]store.IndexEntry, error) {
	versionDirs, err := os.ReadDir(providerDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider directory: %w", err)
	}

	byName := make(map[string]*store.IndexEntry)

	for _, vd := range versionDirs {
		if !vd.IsDir() {
			continue
		}
		version := vd.Name()
		root := filepath.Join(providerDir, version)

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			name := artifactName(rel)
			if name == "" {
				return nil
			}

			entry, ok := byName[name]
			if !ok {
				byName[name] = &store.IndexEntry{
					Kind:     classify(rel),
					Name:     name,
					Path:     rel,
					Versions: []string{version},
				}
				return nil
			}
			if !contains(entry.Versions, version) {
				entry.Versions = append(entry.Versions, version)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
	}

	entries := make([]store.IndexEntry, 0, len(byName))
	for _, entry := range byName {
		sort.Strings(entry.Versions)
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// classify maps a version-relative file path to an artifact kind.
func classify(rel string) store.Kind {
	segments := strings.Split(rel, "/")
	if len(segments) == 1 {
		if strings.HasPrefix(segments[0], "index.") {
			return store.KindIndex
		}
		return store.KindUnknown
	}
	if kind, ok := kindByDir[segments[0]]; ok {
		return kind
	}
	return store.KindUnknown
}

// artifactName derives the artifact name from the file base, stripping
// stacked documentation extensions.
func artifactName(rel string) string {
	name := filepath.Base(rel)
	for {
		ext := filepath.Ext(name)
		if ext == "" || !docExtensions[strings.ToLower(ext)] {
			break
		}
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
