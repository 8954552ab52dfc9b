// Package version provides build-time version information.
package version

import "fmt"

// Set at build time with -ldflags "-X hsv-picker/internal/version.Version=...".
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version for --version output.
func String(program string) string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", program, Version, GitCommit, BuildTime)
}
