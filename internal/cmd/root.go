// Package cmd wires the provdocs CLI.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	outputFormat string
	configPath   string
	dataDir      string
	verbose      bool
	quiet        bool
)

// Execute builds the command tree and runs it. Version metadata is injected
// at build time via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	rootCmd := &cobra.Command{
		Use:   "provdocs",
		Short: "Versioned provider documentation manager",
		Long: `provdocs maintains local documentation trees for GitHub-hosted providers.

It builds a catalog of available providers, installs the documentation
subtrees of each provider's latest release tags via narrow git checkouts,
and keeps the installed set reconciled as new releases appear.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(newRegistryCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newEnsureCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))
	rootCmd.AddCommand(newCompletionCmd())

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.ExecuteContext(ctx)
}
