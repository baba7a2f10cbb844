package utils

import "testing"

func TestAttemptScriptsCompile(t *testing.T) {
	// Compile-time smoke test: scripts should be initialized.
	if attemptAcquireScript == nil || attemptReleaseScript == nil {
		t.Fatalf("expected scripts to be initialized")
	}
}
