// Package version reports build information for rxkit binaries.
//
// Version, git commit, and build time can be stamped at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/rxkit/version.Version=1.0.0"
//
// Builds without stamped values fall back to the VCS metadata embedded
// by the Go toolchain.
package version
