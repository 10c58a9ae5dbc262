package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

func (v versionInfo) String() string {
	return fmt.Sprintf("provdocs %s (commit %s, built %s)", v.Version, v.Commit, v.Date)
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWriter()
			if err != nil {
				return err
			}
			return w.Write(versionInfo{Version: version, Commit: commit, Date: date})
		},
	}
}
