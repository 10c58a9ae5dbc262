package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/provdocs/provdocs/internal/config"
)

func runInitCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provdocs.toml")
	configPath = path
	defer func() { configPath = "" }()

	out, err := runInitCmd(t)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output %q does not mention the written path", out)
	}

	// The starter file must round-trip through the loader.
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	if cfg.Install.ReleaseLimit != 3 {
		t.Errorf("release_limit = %d", cfg.Install.ReleaseLimit)
	}
	if len(cfg.Install.FallbackPaths) != 2 {
		t.Errorf("fallback_paths = %v", cfg.Install.FallbackPaths)
	}
	if len(cfg.Providers) != 1 {
		t.Errorf("providers = %v", cfg.Providers)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provdocs.toml")
	if err := os.WriteFile(path, []byte("version = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	configPath = path
	defer func() { configPath = "" }()

	if _, err := runInitCmd(t); err == nil {
		t.Fatal("expected error without --force")
	}

	if _, err := runInitCmd(t, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "[install]") {
		t.Error("forced init did not replace the file")
	}
}
