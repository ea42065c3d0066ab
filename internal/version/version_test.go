package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build metadata should be initialized")
	}
}

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3"
	got := String()
	if !strings.HasPrefix(got, "navexpand v1.2.3 ") {
		t.Errorf("String() = %q", got)
	}
	if !strings.Contains(got, "commit "+GitCommit) {
		t.Errorf("String() = %q, want commit", got)
	}
}
