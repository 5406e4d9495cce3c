package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/release-manifest/internal/service/verifier"
)

// newVerifyCommand checks local files against a written manifest.
func newVerifyCommand() *cobra.Command {
	options := new(verifier.Options)

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check local release files against a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return verifier.Run(ctx, options)
		},
	}

	verifyCmd.Flags().StringVarP(&options.Manifest, "manifest", "m", "", "path to the manifest JSON")
	verifyCmd.Flags().StringVar(&options.UpdateFile, "update-file", "", "local update artifact (skipped when empty)")
	verifyCmd.Flags().StringVar(&options.ModelsDir, "models-dir", "", "directory with the local model files")

	//nolint:errcheck // The flag is defined right above.
	_ = verifyCmd.MarkFlagRequired("manifest")

	return verifyCmd
}
