package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/release-manifest/internal/config"
)

// fixture lays out an update artifact and one model file.
func fixture(t *testing.T) (string, string) {
	t.Helper()

	root := t.TempDir()
	modelsDir := filepath.Join(root, "models")
	require.NoError(t, os.Mkdir(modelsDir, 0o755))

	updateFile := filepath.Join(root, "update.zip")
	require.NoError(t, os.WriteFile(updateFile, []byte("hi"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(modelsDir, "a.tflite"), []byte("model"), 0o600))

	return updateFile, modelsDir
}

// execute runs a fresh command tree with args.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	return root.ExecuteContext(context.Background())
}

// TestRoot_WritesManifest runs generation and verification through the CLI.
func TestRoot_WritesManifest(t *testing.T) {
	t.Parallel()

	updateFile, modelsDir := fixture(t)
	out := filepath.Join(t.TempDir(), "pages", "manifest.json")

	require.NoError(t, execute(t,
		"--repo", "acme/widgets",
		"--tag", "v2.1.0",
		"--update-file", updateFile,
		"--models-dir", modelsDir,
		"--out", out,
	))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var document map[string]any
	require.NoError(t, json.Unmarshal(data, &document))
	require.Equal(t, "acme/widgets", document["repo"])
	require.Len(t, document["models"], 1)

	require.NoError(t, execute(t,
		"verify",
		"--manifest", out,
		"--update-file", updateFile,
		"--models-dir", modelsDir,
	))
}

// TestRoot_MissingFlag fails validation without writing anything.
func TestRoot_MissingFlag(t *testing.T) {
	t.Parallel()

	updateFile, modelsDir := fixture(t)
	out := filepath.Join(t.TempDir(), "manifest.json")

	err := execute(t,
		"--repo", "acme/widgets",
		"--update-file", updateFile,
		"--models-dir", modelsDir,
		"--out", out,
	)
	require.ErrorIs(t, err, config.ErrMissingField)

	_, err = os.Stat(out)
	require.True(t, os.IsNotExist(err))
}

// TestRoot_MissingUpdateFile fails and leaves no manifest or output directory behind.
func TestRoot_MissingUpdateFile(t *testing.T) {
	t.Parallel()

	_, modelsDir := fixture(t)
	out := filepath.Join(t.TempDir(), "pages", "manifest.json")

	err := execute(t,
		"--repo", "acme/widgets",
		"--tag", "v2.1.0",
		"--update-file", filepath.Join(t.TempDir(), "update.zip"),
		"--models-dir", modelsDir,
		"--out", out,
	)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = os.Stat(out)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = os.Stat(filepath.Dir(out))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

// TestRoot_ConfigFileWithOverride takes defaults from YAML and lets flags win.
func TestRoot_ConfigFileWithOverride(t *testing.T) {
	t.Parallel()

	updateFile, modelsDir := fixture(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "manifest.json")
	settingsPath := filepath.Join(dir, "settings.yaml")

	require.NoError(t, config.Save(settingsPath, &config.Config{
		Repo:       "acme/widgets",
		Tag:        "v1.0.0",
		UpdateFile: updateFile,
		ModelsDir:  modelsDir,
		Out:        out,
	}))

	require.NoError(t, execute(t, "--config", settingsPath, "--tag", "v2.0.0"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), `"tag": "v2.0.0"`)
}

// TestVerify_RequiresManifest enforces the --manifest flag.
func TestVerify_RequiresManifest(t *testing.T) {
	t.Parallel()

	require.Error(t, execute(t, "verify"))
}
