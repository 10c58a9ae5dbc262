package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// outcomeResult maps provider name to operation success.
type outcomeResult map[string]bool

func (o outcomeResult) String() string {
	if len(o) == 0 {
		return "nothing to do"
	}
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		status := "ok"
		if !o[name] {
			status = "failed"
		}
		fmt.Fprintf(&b, "%s: %s\n", name, status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (o outcomeResult) failures() int {
	n := 0
	for _, ok := range o {
		if !ok {
			n++
		}
	}
	return n
}

func newUpdateCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "update [provider]",
		Short: "Reconcile installed providers against their latest releases",
		Long: `Update re-resolves a provider's latest release tags, removes on-disk
versions that fell out of the latest set, and fetches versions not yet
present. The lock file is rewritten from a fresh disk scan afterwards.

Examples:
  provdocs update terraform-provider-aws
  provdocs update --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("specify exactly one provider or --all")
			}

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

			if all {
				outcome, err := mgr.UpdateAll(cmd.Context())
				if err != nil {
					return err
				}
				if err := w.Write(outcomeResult(outcome)); err != nil {
					return err
				}
				if n := outcomeResult(outcome).failures(); n > 0 {
					return fmt.Errorf("%d of %d updates failed", n, len(outcome))
				}
				return nil
			}

			report, err := mgr.Update(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := w.Write(report); err != nil {
				return err
			}
			if !report.Success {
				return fmt.Errorf("update of %s completed with failures", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Update every installed provider")

	return cmd
}
