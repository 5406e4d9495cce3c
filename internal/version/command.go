package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand adds a `version` subcommand to root and sets root.Version.
func AttachCobraVersionCommand(root *cobra.Command) {
	root.Version = Short()

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full())
		},
	})
}
