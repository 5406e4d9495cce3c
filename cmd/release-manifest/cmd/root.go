package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/release-manifest/internal/config"
	"github.com/oshokin/release-manifest/internal/logger"
	"github.com/oshokin/release-manifest/internal/service/builder"
	"github.com/oshokin/release-manifest/internal/version"
)

// rootFlags are the values bound to the root command flags.
type rootFlags struct {
	// configPath is an optional YAML file with default settings.
	configPath string
	// settings holds values given on the command line.
	settings config.Config
}

// NewRootCommand builds the command tree: manifest generation plus `verify` and `version`.
func NewRootCommand() *cobra.Command {
	flags := new(rootFlags)

	rootCmd := &cobra.Command{
		Use:          "release-manifest",
		Short:        "Generate the release manifest for the pages site",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := resolveSettings(flags)
			if err != nil {
				return err
			}

			return builder.Run(ctx, &builder.Options{
				Repo:       cfg.Repo,
				Tag:        cfg.Tag,
				UpdateFile: cfg.UpdateFile,
				ModelsDir:  cfg.ModelsDir,
				Out:        cfg.Out,
			})
		},
	}

	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to an optional YAML settings file")
	rootCmd.Flags().StringVar(&flags.settings.Repo, "repo", "", "repository identifier, owner/name")
	rootCmd.Flags().StringVar(&flags.settings.Tag, "tag", "", "release tag, e.g. v16.0.0")
	rootCmd.Flags().StringVar(&flags.settings.UpdateFile, "update-file", "", "path to the release update artifact")
	rootCmd.Flags().StringVar(&flags.settings.ModelsDir, "models-dir", "", "directory containing model files to publish")
	rootCmd.Flags().StringVar(&flags.settings.Out, "out", "", "path where the manifest JSON is written")
	rootCmd.PersistentFlags().StringVar(&flags.settings.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return applyLogLevel(flags.settings.LogLevel)
	}

	rootCmd.AddCommand(newVerifyCommand())
	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// Execute runs the release-manifest CLI and exits with non-zero status on error.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// resolveSettings merges the optional settings file with the flags and validates the result.
func resolveSettings(flags *rootFlags) (*config.Config, error) {
	var fileCfg *config.Config

	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}

		fileCfg = loaded
	}

	cfg := config.Merge(fileCfg, &flags.settings)

	if err := applyLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyLogLevel sets the global log level; an empty value keeps the current one.
func applyLogLevel(raw string) error {
	if raw == "" {
		return nil
	}

	level, ok := logger.ParseLogLevel(raw)
	if !ok {
		return fmt.Errorf("unknown log level %q", raw)
	}

	logger.SetLevel(level)

	return nil
}
