// Package config defines the manifest generation settings and provides
// helpers to load, merge, validate and save them in YAML format.
//
// Command-line flags override values read from the file.
package config
