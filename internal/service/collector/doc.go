// Package collector hashes the release update artifact and the publishable
// model files and turns them into manifest descriptors.
package collector
