package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// AssertOutput compares the non-empty output lines of a run with expected.
func AssertOutput(t *testing.T, result *HarnessResult, expected ...string) {
	t.Helper()

	if diff := cmp.Diff(expected, result.Lines()); diff != "" {
		t.Errorf("shell output mismatch (-want +got):\n%s\nfull output:\n%s", diff, result.Output)
	}
}
