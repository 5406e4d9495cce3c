package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"
	"unicode/utf8"

	domain "github.com/oshokin/release-manifest/internal/domain/manifest"
)

const (
	// DefaultFileMode is used for written manifests, which are published as-is.
	DefaultFileMode os.FileMode = 0o644

	// directoryMode is used for missing parents of the output path.
	directoryMode os.FileMode = 0o755

	// indent is the per-level JSON indentation.
	indent = "  "
)

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// Repository defines persistence operations for manifests.
type Repository interface {
	Load(ctx context.Context, path string) (*domain.Manifest, error)
	Save(ctx context.Context, path string, m *domain.Manifest) error
}

// FileRepository reads and writes manifests on the local filesystem.
type FileRepository struct{}

// NewFileRepository creates a filesystem backed repository.
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load reads and decodes the manifest at path.
func (r *FileRepository) Load(_ context.Context, path string) (*domain.Manifest, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	var m domain.Manifest
	if err = json.Unmarshal(contents, &m); err != nil {
		return nil, fmt.Errorf("decode manifest file: %w", err)
	}

	return &m, nil
}

// Save encodes the manifest and overwrites the file at path,
// creating missing parent directories first.
func (r *FileRepository) Save(_ context.Context, path string, m *domain.Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	path = filepath.Clean(path)

	if err = os.MkdirAll(filepath.Dir(path), directoryMode); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	if err = os.WriteFile(path, data, DefaultFileMode); err != nil {
		return fmt.Errorf("write manifest file: %w", err)
	}

	return nil
}

// Encode renders the manifest in its published form: sorted keys, two-space
// indentation, ASCII-only output and a trailing newline.
func Encode(m *domain.Manifest) ([]byte, error) {
	var (
		buf     bytes.Buffer
		encoder = json.NewEncoder(&buf)
	)

	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)

	// Encode terminates the document with a newline.
	if err := encoder.Encode(normalize(m)); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}

	return escapeNonASCII(buf.Bytes()), nil
}

// escapeNonASCII rewrites non-ASCII runes and DEL as \uXXXX escapes, using
// surrogate pairs above the basic plane. Such runes only occur inside JSON
// strings, so the document stays valid and decodes to the same values.
func escapeNonASCII(data []byte) []byte {
	escaped := make([]byte, 0, len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]

		switch {
		case r < utf8.RuneSelf && r != 0x7f:
			escaped = append(escaped, byte(r))
		case r > 0xffff:
			high, low := utf16.EncodeRune(r)
			escaped = fmt.Appendf(escaped, `\u%04x\u%04x`, high, low)
		default:
			escaped = fmt.Appendf(escaped, `\u%04x`, r)
		}
	}

	return escaped
}

// normalize returns a copy whose empty model list encodes as [] rather than null.
func normalize(m *domain.Manifest) *domain.Manifest {
	if m.Models != nil {
		return m
	}

	normalized := *m
	normalized.Models = []domain.ModelDescriptor{}

	return &normalized
}
