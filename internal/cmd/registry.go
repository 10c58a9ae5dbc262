package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type registryResult struct {
	Providers int `json:"providers" yaml:"providers"`
}

func (r registryResult) String() string {
	return fmt.Sprintf("catalog built: %d providers", r.Providers)
}

func newRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registry",
		Short: "Rebuild the provider catalog",
		Long: `Registry queries the remote search API across all result pages and
rewrites the local provider catalog. A failed build leaves the previous
catalog untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			w, err := newWriter()
			if err != nil {
				return err
			}
			mgr, err := newManager(cfg, newLogger())
			if err != nil {
				return err
			}

			n, err := mgr.BuildRegistry(cmd.Context())
			if err != nil {
				return err
			}
			return w.Write(registryResult{Providers: n})
		},
	}
}
