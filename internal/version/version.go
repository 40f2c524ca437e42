// Package version exposes the build version stamped via ldflags.
package version

var version = "v0.0.0"

// Value returns the CLI version.
func Value() string {
	return version
}
