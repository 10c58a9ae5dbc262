package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type removeResult struct {
	Provider string `json:"provider" yaml:"provider"`
	Removed  bool   `json:"removed" yaml:"removed"`
}

func (r removeResult) String() string {
	return fmt.Sprintf("removed %s", r.Provider)
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <provider>",
		Short: "Remove an installed provider's documentation",
		Long: `Remove deletes a provider's documentation tree, its artifact index, and
its lock-file entry. If the directory cannot be deleted the lock entry is
kept so the content stays tracked.`,
		Args: cobra.ExactArgs(1),
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

			ok, err := mgr.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return w.Write(removeResult{Provider: args[0], Removed: ok})
		},
	}
}
