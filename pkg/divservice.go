// Package divservice holds application-level metadata.
package divservice

var (
	// Version is set by the build via ldflags.
	Version = "dev"

	// Build is the build timestamp, set via ldflags.
	Build = "n/a"
)
