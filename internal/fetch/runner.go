package fetch

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes external commands with separate stdout/stderr capture.
// The split matters: checkout diagnostics arrive on stderr and are classified
// line by line, so they cannot be interleaved with stdout.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run executes a command in the given directory. An empty dir runs in the
// process working directory.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
