package lifecycle

import (
	"fmt"
	"strings"

	"github.com/provdocs/provdocs/internal/fetch"
)

// VersionOutcome records a single version's fetch failure.
type VersionOutcome struct {
	Version     string       `json:"version" yaml:"version"`
	Status      fetch.Status `json:"status" yaml:"status"`
	Diagnostics []string     `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// InstallReport is the outcome of one install operation.
type InstallReport struct {
	Provider         string           `json:"provider" yaml:"provider"`
	AlreadyInstalled bool             `json:"already_installed,omitempty" yaml:"already_installed,omitempty"`
	Requested        []string         `json:"requested,omitempty" yaml:"requested,omitempty"`
	Installed        []string         `json:"installed,omitempty" yaml:"installed,omitempty"`
	Failed           []VersionOutcome `json:"failed,omitempty" yaml:"failed,omitempty"`
	Success          bool             `json:"success" yaml:"success"`
}

// String renders the report for text output.
func (r *InstallReport) String() string {
	if r.AlreadyInstalled {
		return fmt.Sprintf("%s: already installed", r.Provider)
	}

	var b strings.Builder
	if r.Success {
		fmt.Fprintf(&b, "%s: installed %s", r.Provider, strings.Join(r.Installed, ", "))
	} else {
		fmt.Fprintf(&b, "%s: install failed", r.Provider)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "\n  %s: %s", f.Version, f.Status)
		for _, d := range f.Diagnostics {
			fmt.Fprintf(&b, "\n    %s", d)
		}
	}
	return b.String()
}

// UpdateReport is the outcome of one update operation.
type UpdateReport struct {
	Provider     string           `json:"provider" yaml:"provider"`
	Latest       []string         `json:"latest" yaml:"latest"`
	Removed      []string         `json:"removed,omitempty" yaml:"removed,omitempty"`
	RemoveErrors []string         `json:"remove_errors,omitempty" yaml:"remove_errors,omitempty"`
	Fetched      []string         `json:"fetched,omitempty" yaml:"fetched,omitempty"`
	Failed       []VersionOutcome `json:"failed,omitempty" yaml:"failed,omitempty"`
	Success      bool             `json:"success" yaml:"success"`
}

// String renders the report for text output.
func (r *UpdateReport) String() string {
	var b strings.Builder
	if r.Success {
		fmt.Fprintf(&b, "%s: up to date with %s", r.Provider, strings.Join(r.Latest, ", "))
	} else {
		fmt.Fprintf(&b, "%s: update failed", r.Provider)
	}
	if len(r.Fetched) > 0 {
		fmt.Fprintf(&b, "\n  fetched: %s", strings.Join(r.Fetched, ", "))
	}
	if len(r.Removed) > 0 {
		fmt.Fprintf(&b, "\n  removed: %s", strings.Join(r.Removed, ", "))
	}
	for _, e := range r.RemoveErrors {
		fmt.Fprintf(&b, "\n  remove error: %s", e)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "\n  %s: %s", f.Version, f.Status)
		for _, d := range f.Diagnostics {
			fmt.Fprintf(&b, "\n    %s", d)
		}
	}
	return b.String()
}
