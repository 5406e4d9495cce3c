package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/oshokin/release-manifest/internal/domain/manifest"
	"github.com/oshokin/release-manifest/internal/logger"
	repository "github.com/oshokin/release-manifest/internal/repository/manifest"
	"github.com/oshokin/release-manifest/internal/service/collector"
)

// TimestampLayout renders generated_at as ISO-8601 with microseconds and a numeric UTC offset.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// Options contains inputs for the builder entry point.
type Options struct {
	// Repo is the "owner/name" repository identifier.
	Repo string
	// Tag is the release tag, e.g. v16.0.0.
	Tag string
	// UpdateFile is the path of the release update artifact.
	UpdateFile string
	// ModelsDir is the directory holding model files to publish.
	ModelsDir string
	// Out is where the manifest is written.
	Out string
	// Now is the clock used for generated_at; time.Now when nil.
	Now func() time.Time
	// Repository stores the manifest; a FileRepository when nil.
	Repository repository.Repository
}

// builder assembles and stores a single manifest.
type builder struct {
	// opts are the caller inputs.
	opts *Options
	// now captures generated_at.
	now func() time.Time
	// repo stores the finished manifest.
	repo repository.Repository
}

// Run builds the manifest described by opts and writes it to opts.Out.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "builder")
	ctx = logger.WithKV(ctx, "run_id", uuid.NewString())

	b := newBuilder(opts)

	m, err := b.Build(ctx)
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}

	if err = b.repo.Save(ctx, opts.Out, m); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	logger.InfoKV(ctx, "Manifest written",
		"path", opts.Out,
		"tag", m.Update.Tag,
		"models", len(m.Models))

	return nil
}

// newBuilder fills in defaults for the optional collaborators.
func newBuilder(opts *Options) *builder {
	b := &builder{
		opts: opts,
		now:  opts.Now,
		repo: opts.Repository,
	}

	if b.now == nil {
		b.now = time.Now
	}

	if b.repo == nil {
		b.repo = repository.NewFileRepository()
	}

	return b
}

// Build collects descriptors and returns the in-memory manifest.
func (b *builder) Build(ctx context.Context) (*domain.Manifest, error) {
	logger.InfoKV(ctx, "Collecting release files",
		"update_file", b.opts.UpdateFile,
		"models_dir", b.opts.ModelsDir)

	result, err := collector.Collect(ctx, &collector.Request{
		Repo:       b.opts.Repo,
		Tag:        b.opts.Tag,
		UpdateFile: b.opts.UpdateFile,
		ModelsDir:  b.opts.ModelsDir,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Manifest{
		GeneratedAt: FormatTimestamp(b.now()),
		Repo:        b.opts.Repo,
		Update:      result.Update,
		Models:      result.Models,
	}, nil
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
