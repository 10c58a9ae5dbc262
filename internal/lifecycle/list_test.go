package lifecycle

import (
	"os"
	"strings"
	"testing"

	"github.com/provdocs/provdocs/internal/store"
)

func TestList(t *testing.T) {
	env := newTestEnv(t)
	if err := env.store.WriteLock(store.Lock{
		"terraform-provider-aws":    {InstalledAt: 1700000000, Versions: []string{"v5.0.0", "v4.0.0"}},
		"terraform-provider-google": {InstalledAt: 1700000001, Versions: []string{"v6.0.0"}},
	}); err != nil {
		t.Fatal(err)
	}
	// v4 present on disk, v5 deleted out of band, google intact.
	if err := os.MkdirAll(env.store.VersionDir("terraform-provider-aws", "v4.0.0"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(env.store.VersionDir("terraform-provider-google", "v6.0.0"), 0755); err != nil {
		t.Fatal(err)
	}

	listing, err := env.manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listing) != 2 {
		t.Fatalf("listing = %+v, want 2 entries", listing)
	}

	// Sorted by provider name.
	awsEntry := listing[0]
	if awsEntry.Provider != "terraform-provider-aws" {
		t.Fatalf("first entry = %s", awsEntry.Provider)
	}
	if len(awsEntry.Versions) != 1 || awsEntry.Versions[0] != "v4.0.0" {
		t.Errorf("aws Versions = %v, want [v4.0.0]", awsEntry.Versions)
	}
	if len(awsEntry.Missing) != 1 || awsEntry.Missing[0] != "v5.0.0" {
		t.Errorf("aws Missing = %v, want [v5.0.0]", awsEntry.Missing)
	}

	if !strings.Contains(listing.String(), "missing on disk") {
		t.Errorf("text rendering lacks missing marker:\n%s", listing.String())
	}
}

func TestList_Empty(t *testing.T) {
	env := newTestEnv(t)

	listing, err := env.manager.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(listing) != 0 {
		t.Errorf("listing = %+v, want empty", listing)
	}
	if listing.String() != "no providers installed" {
		t.Errorf("String() = %q", listing.String())
	}
}
