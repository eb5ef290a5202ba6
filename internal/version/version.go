package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the sharplint CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with major, minor and patch in their own colours.
// Versions that are not dotted triples are returned as is.
func Colored(enabled bool) string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 || !enabled {
		return Version
	}
	out := paint(versionMajorColor, parts[0]) + "." + paint(versionMinorColor, parts[1]) + "." + paint(versionPatchColor, parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

func paint(c *color.Color, s string) string {
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}
