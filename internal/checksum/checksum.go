package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ChunkSize bounds the amount of file data held in memory while hashing.
const ChunkSize = 1 << 20

// Digest is the SHA-256 digest and length of a file.
type Digest struct {
	// SHA256 is the lowercase hex encoded digest.
	SHA256 string
	// Size is the number of bytes hashed.
	Size int64
}

// File streams the file at path through SHA-256 in ChunkSize reads.
func File(path string) (Digest, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Digest{}, fmt.Errorf("open %s: %w", path, err)
	}

	// Read-only handle.
	defer func() {
		_ = file.Close()
	}()

	return Reader(file)
}

// Reader hashes everything readable from r.
func Reader(r io.Reader) (Digest, error) {
	var (
		hasher = sha256.New()
		buffer = make([]byte, ChunkSize)
	)

	size, err := io.CopyBuffer(hasher, onlyReader{r}, buffer)
	if err != nil {
		return Digest{}, fmt.Errorf("calculate checksum: %w", err)
	}

	return Digest{
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
		Size:   size,
	}, nil
}

// onlyReader hides WriterTo so io.CopyBuffer honors the chunk buffer.
type onlyReader struct {
	io.Reader
}
