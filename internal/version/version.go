// Package version exposes the build metadata stamped into winpeek
// binaries at release time.
package version

// Stamped via -ldflags "-X github.com/winpeek/winpeek/internal/version.version=...";
// a plain `go build` reports the dev placeholders.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the semantic version.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit hash of the build.
func GetCommit() string {
	return commit
}

// GetDate returns the build date.
func GetDate() string {
	return date
}

// GetFullVersion returns the version with commit and date info.
func GetFullVersion() string {
	return version + " (commit: " + commit + ", built: " + date + ")"
}
