package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/provdocs/provdocs/internal/config"
)

const starterConfig = `version = 1

# Where documentation trees and state files live.
# Defaults to $XDG_DATA_HOME/provdocs when empty.
data_dir = ""

# Optional API token; GITHUB_TOKEN from the environment also works.
github_token = "${GITHUB_TOKEN:-}"

# Providers installed by 'provdocs ensure' when run without arguments.
providers = [
  "terraform-provider-aws",
]

[source]
owner = "hashicorp"
search_query = "terraform-provider in:name user:hashicorp"

[install]
release_limit = 3
fallback_paths = ["website/docs", "docs"]
fetch_timeout = "90s"
ensure_delay = "3s"
`

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Init writes a commented starter config to the default location, or to
the path given with --config.

Examples:
  provdocs init
  provdocs init --config ./provdocs.toml
  provdocs init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
