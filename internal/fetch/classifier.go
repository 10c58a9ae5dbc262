package fetch

import "strings"

// benignPrefixes is the allow-list of git stderr chatter that carries no
// error information. A narrow clone emits most of these on every run, even
// on success; anything not matched here is treated as a genuine diagnostic.
var benignPrefixes = []string{
	"Cloning into",
	"remote:",
	"Receiving objects",
	"Resolving deltas",
	"Counting objects",
	"Compressing objects",
	"Updating files",
	"Checking out files",
	"Filtering content",
	"Total ",
	"From ",
	"HEAD is now at",
	"Note: switching",
	"You are in 'detached HEAD'",
	"Your branch is up to date",
	"warning:",
	"hint:",
}

// Classify filters subprocess stderr down to genuine error lines, dropping
// known-harmless clone and checkout noise. Returns nil when every line is
// benign.
func Classify(stderr []byte) []string {
	var diagnostics []string

	for _, line := range strings.Split(string(stderr), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isBenign(line) {
			continue
		}
		diagnostics = append(diagnostics, line)
	}

	return diagnostics
}

func isBenign(line string) bool {
	for _, prefix := range benignPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
