package version

import (
	"fmt"
	"runtime/debug"

	"github.com/fatih/color"
)

// Build metadata of the qasmc CLI; overridable via -ldflags.
var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Major, Minor and Patch form the plain semantic version.
	Major = "0"
	Minor = "3"
	Patch = "0"

	// Suffix is appended after a dash when non-empty.
	Suffix = "dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Plain returns the uncoloured version string.
func Plain() string {
	v := Major + "." + Minor + "." + Patch
	if Suffix != "" {
		v += "-" + Suffix
	}
	return v
}

// Colored returns the version with each component highlighted.
// fatih/color drops the escapes on its own when NoColor is set.
func Colored() string {
	v := versionMajorColor.Sprint(Major) + "." + versionMinorColor.Sprint(Minor) + "." + versionPatchColor.Sprint(Patch)
	if Suffix != "" {
		v += "-" + Suffix
	}
	return v
}

// Describe builds the multi-line `qasmc version` output.
func Describe() string {
	out := fmt.Sprintf("qasmc %s", Colored())
	commit := GitCommit
	if commit == "" {
		commit = vcsRevision()
	}
	if commit != "" {
		out += "\ncommit: " + commit
	}
	if BuildDate != "" {
		out += "\nbuilt:  " + BuildDate
	}
	return out
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}
