// Package builder produces the release manifest consumed by devices.
//
// It collects digests for the update artifact and model files, stamps the
// document with the generation time and writes it to the requested path. The
// file is written only after every input has been hashed, so a failed run
// never leaves a partial manifest behind.
package builder
