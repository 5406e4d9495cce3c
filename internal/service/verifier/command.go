package verifier

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/oshokin/release-manifest/internal/checksum"
	domain "github.com/oshokin/release-manifest/internal/domain/manifest"
	"github.com/oshokin/release-manifest/internal/logger"
	repository "github.com/oshokin/release-manifest/internal/repository/manifest"
	"github.com/oshokin/release-manifest/internal/service/collector"
)

var (
	// ErrChecksumMismatch is returned when any file disagrees with the manifest.
	ErrChecksumMismatch = errors.New("files do not match the manifest")

	errManifestRequired = errors.New("manifest path must be provided")
)

// Options are inputs accepted by the verifier entry point.
type Options struct {
	// Manifest is the path of the manifest to check against.
	Manifest string
	// UpdateFile is the local copy of the update artifact.
	UpdateFile string
	// ModelsDir holds the local copies of the model files.
	ModelsDir string
	// Repository loads the manifest; a FileRepository when nil.
	Repository repository.Repository
}

// Problem describes one file that disagrees with the manifest.
type Problem struct {
	// File is the file name as listed in the manifest or found on disk.
	File string
	// Reason is a short machine-friendly cause.
	Reason string
}

const (
	reasonChecksum = "checksum_mismatch"
	reasonSize     = "size_mismatch"
	reasonMissing  = "missing"
	reasonUnlisted = "unlisted"
	reasonName     = "name_mismatch"
)

// Run loads the manifest and verifies the local files against it.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "verifier")
	ctx = logger.WithKV(ctx, "run_id", uuid.NewString())

	if opts.Manifest == "" {
		return errManifestRequired
	}

	repo := opts.Repository
	if repo == nil {
		repo = repository.NewFileRepository()
	}

	m, err := repo.Load(ctx, opts.Manifest)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	problems, err := Verify(ctx, m, opts.UpdateFile, opts.ModelsDir)
	if err != nil {
		return err
	}

	if len(problems) > 0 {
		for _, p := range problems {
			logger.ErrorKV(ctx, "File does not match the manifest", "file", p.File, "reason", p.Reason)
		}

		return fmt.Errorf("%d problem(s): %w", len(problems), ErrChecksumMismatch)
	}

	logger.InfoKV(ctx, "Files match the manifest",
		"tag", m.Update.Tag,
		"models", len(m.Models))

	return nil
}

// Verify compares the update file and the model files in modelsDir with m.
// An empty updateFile or modelsDir skips that part of the check. I/O failures
// other than missing files are returned as errors rather than problems.
func Verify(ctx context.Context, m *domain.Manifest, updateFile, modelsDir string) ([]Problem, error) {
	var problems []Problem

	if updateFile != "" {
		problem, err := verifyUpdate(ctx, &m.Update, updateFile)
		if err != nil {
			return nil, err
		}

		if problem != nil {
			problems = append(problems, *problem)
		}
	}

	if modelsDir == "" {
		return problems, nil
	}

	modelProblems, err := verifyModels(ctx, m, modelsDir)
	if err != nil {
		return nil, err
	}

	return append(problems, modelProblems...), nil
}

// verifyUpdate checks the update artifact name, digest and size.
func verifyUpdate(ctx context.Context, expected *domain.UpdateDescriptor, updateFile string) (*Problem, error) {
	name := filepath.Base(updateFile)

	if listed := assetName(expected.URL); listed != name {
		logger.WarnKV(ctx, "Update file name differs from the manifest", "local", name, "listed", listed)

		return &Problem{File: name, Reason: reasonName}, nil
	}

	digest, err := checksum.File(updateFile)
	if err != nil {
		return nil, fmt.Errorf("update file: %w", err)
	}

	return compare(name, expected.SHA256, expected.Size, digest), nil
}

// verifyModels checks every listed model and flags model files the manifest does not list.
func verifyModels(ctx context.Context, m *domain.Manifest, modelsDir string) ([]Problem, error) {
	names, err := collector.ListModelFiles(modelsDir)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	var problems []Problem

	for _, model := range m.Models {
		if _, ok := present[model.Name]; !ok {
			problems = append(problems, Problem{File: model.Name, Reason: reasonMissing})
			continue
		}

		digest, err := checksum.File(filepath.Join(modelsDir, model.Name))
		if err != nil {
			return nil, fmt.Errorf("model file: %w", err)
		}

		logger.DebugKV(ctx, "Checked model file", "name", model.Name, "sha256", digest.SHA256)

		if problem := compare(model.Name, model.SHA256, model.Size, digest); problem != nil {
			problems = append(problems, *problem)
		}
	}

	for _, name := range names {
		if _, listed := m.FindModel(name); !listed {
			problems = append(problems, Problem{File: name, Reason: reasonUnlisted})
		}
	}

	return problems, nil
}

// compare returns a problem when the digest disagrees with the expected values.
func compare(name, sha256 string, size int64, digest checksum.Digest) *Problem {
	switch {
	case digest.Size != size:
		return &Problem{File: name, Reason: reasonSize}
	case digest.SHA256 != sha256:
		return &Problem{File: name, Reason: reasonChecksum}
	default:
		return nil
	}
}

// assetName returns the last path segment of a download URL.
func assetName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}

	return path.Base(parsed.Path)
}
