package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFile verifies digest and size of a small file.
func TestFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "update.zip")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o600))

	digest, err := File(path)
	require.NoError(t, err)
	require.Equal(t, "8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4", digest.SHA256)
	require.Equal(t, int64(2), digest.Size)
}

// TestFile_Empty checks the digest of an empty file.
func TestFile_Empty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.tfl")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	digest, err := File(path)
	require.NoError(t, err)
	require.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest.SHA256)
	require.Zero(t, digest.Size)
}

// TestFile_SpansChunks hashes content larger than a single chunk.
func TestFile_SpansChunks(t *testing.T) {
	t.Parallel()

	contents := bytes.Repeat([]byte("0123456789abcdef"), ChunkSize/8+3)
	path := filepath.Join(t.TempDir(), "big.tflite")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	expected := sha256.Sum256(contents)

	digest, err := File(path)
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(expected[:]), digest.SHA256)
	require.Equal(t, int64(len(contents)), digest.Size)
}

// TestFile_NotFound ensures a missing file surfaces fs.ErrNotExist.
func TestFile_NotFound(t *testing.T) {
	t.Parallel()

	_, err := File(filepath.Join(t.TempDir(), "missing.zip"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
