package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origGitCommit, origBuildDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origGitCommit, origBuildDate }()

	// как при сборке с -ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Version != "1.2.3" || GitCommit != "abc123def456" || BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("overrides not applied: %q %q %q", Version, GitCommit, BuildDate)
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.0.0-beta.1", "2.0"} {
		Version = v
		if got := Colored(false); got != v {
			t.Errorf("Colored(false) = %q, want %q", got, v)
		}
		got := Colored(true)
		if !strings.Contains(got, "\x1b[") {
			t.Errorf("Colored(true) for %q has no escapes: %q", v, got)
		}
		if plain := stripANSI(got); plain != v {
			t.Errorf("Colored(true) for %q renders as %q", v, plain)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func BenchmarkColored(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Colored(true)
	}
}
