package fetch

import "testing"

func TestClassify_AllBenign(t *testing.T) {
	stderr := []byte(`Cloning into '/tmp/provdocs-fetch-123'...
remote: Enumerating objects: 120, done.
remote: Counting objects: 100% (120/120), done.
Receiving objects: 100% (120/120), 1.2 MiB | 4.0 MiB/s, done.
Resolving deltas: 100% (30/30), done.
From https://github.com/hashicorp/terraform-provider-aws
Note: switching to 'v5.0.0'.
You are in 'detached HEAD' state. You can look around, make experimental
Updating files: 100% (500/500), done.
warning: filtering not recognized by server, ignoring
hint: use --no-cone for exact paths
`)

	if got := Classify(stderr); got != nil {
		t.Errorf("Classify() = %v, want nil for benign chatter", got)
	}
}

func TestClassify_GenuineErrors(t *testing.T) {
	stderr := []byte(`Cloning into '/tmp/provdocs-fetch-123'...
fatal: Remote branch v9.9.9 not found in upstream origin
`)

	got := Classify(stderr)
	if len(got) != 1 {
		t.Fatalf("Classify() = %v, want exactly 1 diagnostic", got)
	}
	if got[0] != "fatal: Remote branch v9.9.9 not found in upstream origin" {
		t.Errorf("diagnostic = %q", got[0])
	}
}

func TestClassify_AuthFailure(t *testing.T) {
	stderr := []byte(`Cloning into 'x'...
remote: Repository not found.
fatal: repository 'https://github.com/hashicorp/nope/' not found
`)

	got := Classify(stderr)
	// "remote:" lines are host chatter even when they carry the real story;
	// the fatal line is what gets surfaced.
	if len(got) != 1 {
		t.Fatalf("Classify() = %v, want 1 diagnostic", got)
	}
}

func TestClassify_Empty(t *testing.T) {
	if got := Classify(nil); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
	if got := Classify([]byte("\n\n  \n")); got != nil {
		t.Errorf("Classify(whitespace) = %v, want nil", got)
	}
}
