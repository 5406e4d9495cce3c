package verifier

import (
	"context"
	"testing"

	domain "github.com/oshokin/release-manifest/internal/domain/manifest"
	repository "github.com/oshokin/release-manifest/internal/repository/manifest"
)

// loadManifest reads a manifest written by the builder.
func loadManifest(t *testing.T, path string) (*domain.Manifest, error) {
	t.Helper()

	return repository.NewFileRepository().Load(context.Background(), path)
}
