// Package manifest contains the core types of a published release manifest.
//
// It defines Manifest (what a client downloads to discover a release), the
// UpdateDescriptor and ModelDescriptor entries, and the pure helpers that turn
// a repository identifier into release and GitHub Pages download URLs.
package manifest
