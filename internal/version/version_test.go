package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPlainVersion(t *testing.T) {
	orig := Suffix
	defer func() { Suffix = orig }()

	Suffix = ""
	if got := Plain(); got != Major+"."+Minor+"."+Patch {
		t.Fatalf("Plain() = %q", got)
	}
	Suffix = "rc.1"
	if got := Plain(); !strings.HasSuffix(got, "-rc.1") {
		t.Fatalf("Plain() = %q, want -rc.1 suffix", got)
	}
}

func TestColoredMatchesPlainWithoutColor(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	if Colored() != Plain() {
		t.Fatalf("Colored() = %q, Plain() = %q", Colored(), Plain())
	}
}

func TestDescribeIncludesOverrides(t *testing.T) {
	origCommit, origDate, origNoColor := GitCommit, BuildDate, color.NoColor
	defer func() { GitCommit, BuildDate, color.NoColor = origCommit, origDate, origNoColor }()
	color.NoColor = true

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	got := Describe()
	for _, want := range []string{"qasmc " + Plain(), "commit: abc123def456", "built:  2024-01-15T10:30:00Z"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Describe() = %q, missing %q", got, want)
		}
	}
}
