// Package buildinfo exposes the version and commit of the strata binary.
// Both are set at link time, e.g.
//
//	go build -ldflags "-X github.com/lc/strata/internal/buildinfo.Version=v0.3.0"
package buildinfo

// Version is set at link-time with -ldflags.
var Version = "v0.1.0"

// Commit is set at link-time with -ldflags.
// Default is "unknown" so tests and "go run ." still work.
var Commit = "unknown"

// String renders version and commit on one line.
func String() string {
	return Version + " (" + Commit + ")"
}
