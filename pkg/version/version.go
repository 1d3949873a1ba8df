// Package version exposes the build-time version of seaside-installer.
package version

// These are overridden at build time via -ldflags "-X".
//
//nolint:gochecknoglobals // Set by the linker
var (
	version = "0.0.0-dev"
	commit  = "unknown"
)

// GetVersion returns the installer's own version string.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the installer was built from.
func GetCommit() string {
	return commit
}
