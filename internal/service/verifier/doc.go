// Package verifier checks local release files against a written manifest.
//
// It re-hashes the update artifact and the model files the same way a device
// does after downloading them, and reports every entry whose digest or size
// disagrees with the manifest.
package verifier
