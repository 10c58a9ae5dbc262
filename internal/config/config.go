// Package config handles provdocs configuration loading and path resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Duration wraps time.Duration so config files can use human-readable
// strings like "90s" in TOML, JSON, and YAML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML and JSON.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// SourceConfig describes the remote host the registry and release clients
// talk to. Only one host is supported; these knobs exist for testing and
// mirrors, not for alternate hosting providers.
type SourceConfig struct {
	Owner       string `toml:"owner" yaml:"owner" json:"owner"`
	SearchQuery string `toml:"search_query" yaml:"search_query" json:"search_query"`
	APIBase     string `toml:"api_base" yaml:"api_base" json:"api_base"`
	GitBase     string `toml:"git_base" yaml:"git_base" json:"git_base"`
}

// InstallConfig tunes the version lifecycle.
type InstallConfig struct {
	ReleaseLimit  int      `toml:"release_limit" yaml:"release_limit" json:"release_limit"`
	FallbackPaths []string `toml:"fallback_paths" yaml:"fallback_paths" json:"fallback_paths"`
	FetchTimeout  Duration `toml:"fetch_timeout" yaml:"fetch_timeout" json:"fetch_timeout"`
	EnsureDelay   Duration `toml:"ensure_delay" yaml:"ensure_delay" json:"ensure_delay"`
}

// Config is the explicit configuration passed into every component
// constructor. There are no package-level globals.
type Config struct {
	Version     int           `toml:"version" yaml:"version" json:"version"`
	DataDir     string        `toml:"data_dir" yaml:"data_dir" json:"data_dir"`
	GitHubToken string        `toml:"github_token" yaml:"github_token" json:"github_token"`
	Providers   []string      `toml:"providers" yaml:"providers" json:"providers"`
	Source      SourceConfig  `toml:"source" yaml:"source" json:"source"`
	Install     InstallConfig `toml:"install" yaml:"install" json:"install"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in zero-valued fields.
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.GitHubToken == "" {
		c.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	if c.Source.Owner == "" {
		c.Source.Owner = "hashicorp"
	}
	if c.Source.SearchQuery == "" {
		c.Source.SearchQuery = "terraform-provider in:name user:" + c.Source.Owner
	}
	if c.Source.APIBase == "" {
		c.Source.APIBase = "https://api.github.com"
	}
	if c.Source.GitBase == "" {
		c.Source.GitBase = "https://github.com"
	}
	if c.Install.ReleaseLimit == 0 {
		c.Install.ReleaseLimit = 3
	}
	if len(c.Install.FallbackPaths) == 0 {
		c.Install.FallbackPaths = []string{"website/docs", "docs"}
	}
	if c.Install.FetchTimeout == 0 {
		c.Install.FetchTimeout = Duration(90 * time.Second)
	}
	if c.Install.EnsureDelay == 0 {
		c.Install.EnsureDelay = Duration(3 * time.Second)
	}
}

// Validate checks the configuration for values no component can work with.
func (c *Config) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Install.ReleaseLimit < 1 {
		return fmt.Errorf("install.release_limit must be at least 1")
	}
	if len(c.Install.FallbackPaths) == 0 {
		return fmt.Errorf("install.fallback_paths must not be empty")
	}
	if c.Install.FetchTimeout.Std() <= 0 {
		return fmt.Errorf("install.fetch_timeout must be positive")
	}
	if c.Install.EnsureDelay.Std() < 0 {
		return fmt.Errorf("install.ensure_delay must not be negative")
	}
	return nil
}

// defaultDataDir returns XDG_DATA_HOME/provdocs, falling back to
// ~/.local/share/provdocs.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "provdocs-data"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "provdocs")
}

// DefaultPath returns the preferred location for a new config file.
func DefaultPath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "provdocs.toml"
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "provdocs", "provdocs.toml")
}

// Find searches for a config file in the standard locations. Returns an
// empty path (not an error) when no file exists: provdocs works with a
// zero-config default setup.
func Find(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("specified config not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv("PROVDOCS_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		xdgConfig = filepath.Join(home, ".config")
	}

	fileNames := []string{
		"provdocs.toml",
		"provdocs.yaml",
		"provdocs.yml",
		"provdocs.json",
	}
	for _, name := range fileNames {
		path := filepath.Join(xdgConfig, "provdocs", name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// Load reads, parses, and validates a config file. An empty path yields the
// default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect config format for %s", path)
	}

	cfg, err := parse(content, format)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
