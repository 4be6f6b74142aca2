package crypton

import "fmt"

// Version of the crypton library
const Version = "1.0.0"

// Build information (set by ldflags during build)
var (
	GitCommit string
	BuildDate string
)

// VersionInfo returns formatted version information
func VersionInfo() string {
	if GitCommit == "" {
		return fmt.Sprintf("crypton v%s", Version)
	}
	return fmt.Sprintf("crypton v%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
