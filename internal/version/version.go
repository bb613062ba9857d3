// Package version holds build information for expectgroup.
package version

import "runtime/debug"

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X expectgroup/internal/version.Version=1.0.0 -X expectgroup/internal/version.Commit=abc123"
var (
	// Version is the semantic version of expectgroup
	Version = "0.3.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Info returns a formatted version string
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns complete version information
func Full() string {
	return "expectgroup version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate + "\n" +
		"Go: " + goVersion()
}

func goVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.GoVersion != "" {
		return bi.GoVersion
	}
	return "unknown"
}
