// Package checksum computes content digests of release files.
package checksum
