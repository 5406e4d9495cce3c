// Package manifest persists release manifests as JSON files.
//
// Encoding is deterministic: sorted keys, two-space indentation and a trailing
// newline, so unchanged inputs produce byte-identical files apart from the
// generation timestamp.
package manifest
