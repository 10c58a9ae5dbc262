package cmd

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed providers and their versions",
		Long: `List shows every provider recorded in the lock file with its tracked
versions, flagging any version whose directory has gone missing on disk.`,
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

			listing, err := mgr.List()
			if err != nil {
				return err
			}
			return w.Write(listing)
		},
	}
}
