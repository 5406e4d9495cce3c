package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/release-manifest/internal/domain/manifest"
)

// Config holds the inputs of a manifest generation run.
type Config struct {
	// Repo is the "owner/name" repository identifier.
	Repo string `yaml:"repo"`
	// Tag is the release tag, e.g. v16.0.0.
	Tag string `yaml:"tag"`
	// UpdateFile is the path of the release update artifact.
	UpdateFile string `yaml:"update_file"`
	// ModelsDir is the directory holding model files to publish.
	ModelsDir string `yaml:"models_dir"`
	// Out is where the manifest JSON is written.
	Out string `yaml:"out"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultFilePermissions is the file permission for saved settings.
const DefaultFilePermissions = 0o600

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")

	// ErrMissingField is returned when a required setting is empty.
	ErrMissingField = errors.New("required setting is missing")
)

// Load reads configuration from the provided path.
// The result is not validated: flags may still fill the gaps.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Merge overlays the non-empty values of override onto base and returns the result.
func Merge(base, override *Config) *Config {
	merged := new(Config)
	if base != nil {
		*merged = *base
	}

	if override == nil {
		return merged
	}

	for _, field := range []struct {
		dst *string
		src string
	}{
		{&merged.Repo, override.Repo},
		{&merged.Tag, override.Tag},
		{&merged.UpdateFile, override.UpdateFile},
		{&merged.ModelsDir, override.ModelsDir},
		{&merged.Out, override.Out},
		{&merged.LogLevel, override.LogLevel},
	} {
		if field.src != "" {
			*field.dst = field.src
		}
	}

	return merged
}

// Validate checks that every required setting is present and the repository is well-formed.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"repo", cfg.Repo},
		{"tag", cfg.Tag},
		{"update-file", cfg.UpdateFile},
		{"models-dir", cfg.ModelsDir},
		{"out", cfg.Out},
	} {
		if field.value == "" {
			return fmt.Errorf("%s: %w", field.name, ErrMissingField)
		}
	}

	if _, err := domain.PagesBase(cfg.Repo); err != nil {
		return fmt.Errorf("invalid repo: %w", err)
	}

	return nil
}
