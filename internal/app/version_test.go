package app

import (
	"strings"
	"testing"
)

func TestBuildVersion_Stamped(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = oldV, oldC, oldB })

	Version, Commit, BuildTime = "3.1.0", "abc123", "2024-05-02T10:00:00Z"
	if got, want := BuildVersion(), "3.1.0 (commit: abc123, built: 2024-05-02T10:00:00Z)"; got != want {
		t.Errorf("BuildVersion() = %q, want %q", got, want)
	}
}

func TestBuildVersion_Unstamped(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = oldV, oldC, oldB })

	Version, Commit, BuildTime = "dev", "", ""
	got := BuildVersion()
	// Test binaries carry no VCS stamp.
	if !strings.HasPrefix(got, "dev (commit: ") || strings.Contains(got, "commit: ,") {
		t.Errorf("BuildVersion() = %q", got)
	}
}
