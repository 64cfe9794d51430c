package version

// Build metadata, overridden at link time via -ldflags.
var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line description of the build.
func String() string {
	return Version + " (" + GitSHA + ", built " + BuildTime + ")"
}
