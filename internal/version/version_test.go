package version

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
}

// TestAttachCobraVersionCommand runs the attached subcommand.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	root := &cobra.Command{Use: "release-manifest"}
	AttachCobraVersionCommand(root)
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, Full(), strings.TrimSpace(out.String()))
}
