package cmd

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/provdocs/provdocs/internal/config"
	"github.com/provdocs/provdocs/internal/fetch"
	"github.com/provdocs/provdocs/internal/indexer"
	"github.com/provdocs/provdocs/internal/lifecycle"
	"github.com/provdocs/provdocs/internal/output"
	"github.com/provdocs/provdocs/internal/registry"
	"github.com/provdocs/provdocs/internal/release"
	"github.com/provdocs/provdocs/internal/store"
)

// newLogger builds the root logger. --verbose wins over --quiet.
func newLogger() *log.Logger {
	level := log.InfoLevel
	if quiet {
		level = log.ErrorLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

// loadConfig resolves and loads the config file, applying flag overrides.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// newWriter builds the output writer from the --output flag.
func newWriter() (*output.Writer, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(os.Stdout, format), nil
}

// newManager assembles the lifecycle manager and all its collaborators from
// the loaded configuration.
func newManager(cfg *config.Config, logger *log.Logger) (*lifecycle.Manager, error) {
	resolver, err := release.New(release.Config{
		BaseURL: cfg.Source.APIBase,
		Owner:   cfg.Source.Owner,
		Token:   cfg.GitHubToken,
	})
	if err != nil {
		return nil, err
	}

	return lifecycle.New(lifecycle.Config{
		Store:    store.New(cfg.DataDir),
		Resolver: resolver,
		Fetcher: fetch.New(fetch.Config{
			Timeout: cfg.Install.FetchTimeout.Std(),
			Logger:  logger,
		}),
		Catalog: registry.New(registry.Config{
			BaseURL: cfg.Source.APIBase,
			Query:   cfg.Source.SearchQuery,
			Token:   cfg.GitHubToken,
			Logger:  logger,
		}),
		Index:    indexer.Scan,
		Settings: cfg,
		Logger:   logger,
	})
}
