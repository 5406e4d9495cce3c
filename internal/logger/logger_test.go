package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers checks that names and fields set on the context reach the output.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(zapcore.DebugLevel, &buf))
	ctx = WithName(ctx, "builder")
	ctx = WithKV(ctx, "run_id", "42")

	InfoKV(ctx, "Manifest written", "path", "out/manifest.json")

	line := buf.String()
	require.Contains(t, line, "builder")
	require.Contains(t, line, "Manifest written")
	require.Contains(t, line, "run_id")
	require.Contains(t, line, "out/manifest.json")
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}
