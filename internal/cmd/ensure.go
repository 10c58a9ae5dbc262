package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnsureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure [provider]...",
		Short: "Install any providers that are not yet installed",
		Long: `Ensure installs each named provider that has no lock-file entry,
pausing between providers to stay clear of rate limits. Providers that are
already installed are skipped. With no arguments the provider list comes
from the config file.

Examples:
  provdocs ensure terraform-provider-aws terraform-provider-google
  provdocs ensure     # uses the providers list from the config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			providers := args
			if len(providers) == 0 {
				providers = cfg.Providers
			}
			if len(providers) == 0 {
				return fmt.Errorf("no providers given and none configured")
			}

			w, err := newWriter()
			if err != nil {
				return err
			}
			mgr, err := newManager(cfg, newLogger())
			if err != nil {
				return err
			}

			outcome, err := mgr.EnsureInstalled(cmd.Context(), providers)
			if err != nil {
				return err
			}
			if err := w.Write(outcomeResult(outcome)); err != nil {
				return err
			}
			if n := outcomeResult(outcome).failures(); n > 0 {
				return fmt.Errorf("%d of %d providers failed to install", n, len(outcome))
			}
			return nil
		},
	}
}
