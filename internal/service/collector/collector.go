package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"syscall"
	"unicode/utf8"

	"github.com/oshokin/release-manifest/internal/checksum"
	domain "github.com/oshokin/release-manifest/internal/domain/manifest"
	"github.com/oshokin/release-manifest/internal/logger"
)

// ErrInvalidFileName is returned for file names that are not valid UTF-8
// and therefore cannot be represented in the manifest.
var ErrInvalidFileName = errors.New("file name is not valid UTF-8")

// Request names the files to describe and the release they belong to.
type Request struct {
	// Repo is the "owner/name" repository identifier.
	Repo string
	// Tag is the release tag the update artifact is attached to.
	Tag string
	// UpdateFile is the path of the release update artifact.
	UpdateFile string
	// ModelsDir is the directory scanned (non-recursively) for model files.
	ModelsDir string
}

// Result holds the collected descriptors.
type Result struct {
	// Update describes the release artifact.
	Update domain.UpdateDescriptor
	// Models is sorted by name and never nil.
	Models []domain.ModelDescriptor
}

// Collect hashes the update artifact and every model file in the models directory.
// A missing models directory yields an empty model list.
func Collect(ctx context.Context, req *Request) (*Result, error) {
	pagesBase, err := domain.PagesBase(req.Repo)
	if err != nil {
		return nil, err
	}

	update, err := describeUpdate(ctx, req)
	if err != nil {
		return nil, err
	}

	models, err := describeModels(ctx, req.ModelsDir, pagesBase)
	if err != nil {
		return nil, err
	}

	return &Result{
		Update: update,
		Models: models,
	}, nil
}

// describeUpdate hashes the update artifact and builds its release URL.
func describeUpdate(ctx context.Context, req *Request) (domain.UpdateDescriptor, error) {
	name := filepath.Base(req.UpdateFile)
	if !utf8.ValidString(name) {
		return domain.UpdateDescriptor{}, fmt.Errorf("update file %q: %w", name, ErrInvalidFileName)
	}

	digest, err := checksum.File(req.UpdateFile)
	if err != nil {
		return domain.UpdateDescriptor{}, fmt.Errorf("update file: %w", err)
	}

	logger.DebugKV(ctx, "Hashed update file", "name", name, "size", digest.Size)

	return domain.UpdateDescriptor{
		Tag:    req.Tag,
		URL:    domain.ReleaseAssetURL(req.Repo, req.Tag, name),
		SHA256: digest.SHA256,
		Size:   digest.Size,
	}, nil
}

// describeModels hashes the model files of dir in name order.
func describeModels(ctx context.Context, dir, pagesBase string) ([]domain.ModelDescriptor, error) {
	names, err := ListModelFiles(dir)
	if err != nil {
		return nil, err
	}

	models := make([]domain.ModelDescriptor, 0, len(names))

	for _, name := range names {
		digest, err := checksum.File(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("model file: %w", err)
		}

		logger.DebugKV(ctx, "Hashed model file", "name", name, "size", digest.Size)

		models = append(models, domain.ModelDescriptor{
			Name:   name,
			URL:    domain.ModelURL(pagesBase, name),
			SHA256: digest.SHA256,
			Size:   digest.Size,
		})
	}

	return models, nil
}

// ListModelFiles returns the sorted names of regular model files directly inside dir.
// Symbolic links are followed; entries that cannot be resolved (dangling links,
// link loops) are not regular files and are skipped. A missing dir yields no
// names and no error. Model names that are not valid UTF-8 are rejected.
func ListModelFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Clean(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read models directory: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if !domain.IsModelFile(name) {
			continue
		}

		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			if isUnresolvable(err) {
				continue
			}

			return nil, fmt.Errorf("stat model file: %w", err)
		}

		if !info.Mode().IsRegular() {
			continue
		}

		if !utf8.ValidString(name) {
			return nil, fmt.Errorf("model file %q: %w", name, ErrInvalidFileName)
		}

		names = append(names, name)
	}

	// Manifest order is by name whatever order the listing came in.
	sort.Strings(names)

	return names, nil
}

// isUnresolvable reports stat errors meaning the entry is not a regular file.
func isUnresolvable(err error) bool {
	return errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ELOOP)
}
