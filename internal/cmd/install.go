package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <provider>...",
		Short: "Install the latest documentation versions of providers",
		Long: `Install fetches the documentation subtrees of each provider's latest
release tags and records the provider in the lock file. Installing an
already-installed provider is a no-op.

Examples:
  provdocs install terraform-provider-aws
  provdocs install terraform-provider-aws terraform-provider-google`,
		Args: cobra.MinimumNArgs(1),
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

			failures := 0
			for _, provider := range args {
				report, err := mgr.Install(cmd.Context(), provider)
				if err != nil {
					return fmt.Errorf("install %s: %w", provider, err)
				}
				if err := w.Write(report); err != nil {
					return err
				}
				if !report.Success {
					failures++
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d installs failed", failures, len(args))
			}
			return nil
		},
	}
}
