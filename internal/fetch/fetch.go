// Package fetch materializes one provider documentation subtree at one
// version via a narrow git checkout run as an external process.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Status classifies the outcome of a fetch job.
type Status string

const (
	// StatusOK means the subtree was materialized under Dest.
	StatusOK Status = "ok"
	// StatusPathMissing means the ref is valid but holds no documentation
	// under the requested subtree path. The caller should try the next
	// candidate path.
	StatusPathMissing Status = "path-missing"
	// StatusFailed means a hard failure: network, auth, unknown ref, or
	// timeout.
	StatusFailed Status = "failed"
)

// Job describes one narrow checkout: a single subtree of a single repository
// at a single tag, materialized into Dest.
type Job struct {
	Provider string
	Version  string
	RepoURL  string
	Subpath  string
	Dest     string
}

// Result is the ephemeral outcome of one job, consumed synchronously by the
// orchestrator. Never persisted.
type Result struct {
	Provider    string
	Version     string
	Subpath     string
	Status      Status
	Diagnostics []string
}

// OK reports whether the job materialized its subtree.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Fetcher runs narrow checkout jobs. Each job gets a fresh temporary working
// directory destroyed after copy-out, so concurrent jobs share no mutable
// state beyond their distinct destination directories.
type Fetcher struct {
	runner  Runner
	timeout time.Duration
	logger  *log.Logger
}

// Config holds fetcher configuration.
type Config struct {
	Runner  Runner
	Timeout time.Duration
	Logger  *log.Logger
}

// New creates a fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Runner == nil {
		cfg.Runner = &ExecRunner{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Fetcher{
		runner:  cfg.Runner,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Fetch runs one narrow checkout job to completion and classifies the
// outcome. It never returns an error; every failure mode is folded into the
// Result so the orchestrator can aggregate sibling jobs uniformly.
func (f *Fetcher) Fetch(ctx context.Context, job Job) Result {
	res := Result{
		Provider: job.Provider,
		Version:  job.Version,
		Subpath:  job.Subpath,
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	workDir, err := os.MkdirTemp("", "provdocs-fetch-*")
	if err != nil {
		res.Status = StatusFailed
		res.Diagnostics = []string{fmt.Sprintf("failed to create work directory: %v", err)}
		return res
	}
	defer os.RemoveAll(workDir)

	f.logger.Debug("starting narrow checkout",
		"provider", job.Provider,
		"version", job.Version,
		"subpath", job.Subpath,
	)

	// A sparse, blobless, depth-1 clone of a single branch keeps the
	// transfer close to the size of the subtree alone.
	_, stderr, err := f.runner.Run(ctx, "", "git",
		"clone",
		"--depth=1",
		"--filter=blob:none",
		"--sparse",
		"--single-branch",
		"--branch", job.Version,
		job.RepoURL,
		workDir,
	)
	if err != nil {
		res.Status = StatusFailed
		res.Diagnostics = f.describeFailure(ctx, "clone", stderr, err)
		return res
	}

	_, stderr, err = f.runner.Run(ctx, workDir, "git",
		"sparse-checkout", "set", "--no-cone", job.Subpath,
	)
	if err != nil {
		res.Status = StatusFailed
		res.Diagnostics = f.describeFailure(ctx, "sparse-checkout", stderr, err)
		return res
	}

	src := filepath.Join(workDir, filepath.FromSlash(job.Subpath))
	if !dirHasContent(src) {
		// The ref checked out fine; this tag just has nothing under the
		// requested path. Distinct from hard failure so the caller can try
		// an alternate path.
		res.Status = StatusPathMissing
		return res
	}

	if err := copyTree(src, job.Dest); err != nil {
		// A half-copied version directory would satisfy existence checks
		// while holding partial content. Remove it.
		os.RemoveAll(job.Dest)
		res.Status = StatusFailed
		res.Diagnostics = []string{fmt.Sprintf("failed to copy subtree: %v", err)}
		return res
	}

	res.Status = StatusOK
	return res
}

// describeFailure classifies stderr and annotates timeouts.
func (f *Fetcher) describeFailure(ctx context.Context, phase string, stderr []byte, err error) []string {
	diagnostics := Classify(stderr)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		diagnostics = append(diagnostics, fmt.Sprintf("%s timed out after %s", phase, f.timeout))
	} else if len(diagnostics) == 0 {
		diagnostics = []string{fmt.Sprintf("%s failed: %v", phase, err)}
	}
	return diagnostics
}

// dirHasContent reports whether path is a directory with at least one entry.
func dirHasContent(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}

// copyTree copies the contents of src into dst, creating dst as needed.
// Symlinks are skipped; documentation trees are plain files and directories.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
