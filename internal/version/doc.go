// Package version exposes build metadata of the release-manifest binary.
//
// Version, Commit and BuildTime are injected through -ldflags and keep
// placeholder values for local builds.
package version
