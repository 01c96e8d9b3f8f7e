package amprep

var (
	// Version is set by the build via ldflags.
	Version = "v0.1.0+dev"
	// Build is the build timestamp, set via ldflags.
	Build = "n/a"
)
