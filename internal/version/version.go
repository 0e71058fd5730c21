package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the cjsflat CLI.
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

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with major, minor and patch in their own colors;
// the pre-release suffix stays plain. With colorize false it returns
// Version unchanged.
func Colored(colorize bool) string {
	v := strings.TrimSpace(Version)
	if !colorize || v == "" {
		return v
	}
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", len(partColors))
	for i, p := range parts {
		c := *partColors[i]
		c.EnableColor()
		parts[i] = c.Sprint(p)
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
