/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package check

import (
	"context"
	"strings"
)

// Runner validates the files of one category.
type Runner interface {
	// Category returns the category this runner handles
	Category() Category

	// Check validates a single file (path relative to the repo root)
	Check(ctx context.Context, file string) Outcome
}

// syntaxOKSentinel is the success line ruby-based parsers print on
// stdout. It is suppressed from displayed diagnostics only; pass/fail
// always comes from the parser's exit status.
const syntaxOKSentinel = "Syntax OK"

// stripSentinel drops sentinel lines from diagnostic output.
func stripSentinel(output string) string {
	lines := strings.Split(output, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == syntaxOKSentinel {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// combineOutput joins stdout and stderr for display.
func combineOutput(stdout, stderr []byte) string {
	out := strings.TrimSpace(string(stdout))
	errOut := strings.TrimSpace(string(stderr))
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}
