package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provdocs/provdocs/internal/indexer"
	"github.com/provdocs/provdocs/internal/store"
)

type indexResult struct {
	Provider  string `json:"provider" yaml:"provider"`
	Artifacts int    `json:"artifacts" yaml:"artifacts"`
}

func (r indexResult) String() string {
	return fmt.Sprintf("indexed %s: %d artifacts", r.Provider, r.Artifacts)
}

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index <provider>",
		Short: "Rebuild a provider's artifact index",
		Long: `Index rescans a provider's installed version directories and rewrites
its artifact index, merging artifacts that appear across versions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, err := newWriter()
			if err != nil {
				return err
			}

			st := store.New(cfg.DataDir)
			entries, err := indexer.Scan(st.ProviderDir(provider))
			if err != nil {
				return fmt.Errorf("index %s: %w", provider, err)
			}
			if err := st.WriteIndex(provider, entries); err != nil {
				return err
			}
			return w.Write(indexResult{Provider: provider, Artifacts: len(entries)})
		},
	}
}
