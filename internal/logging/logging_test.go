package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStderr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, closer, err := New(Stderr, "info", &buf)
	require.NoError(t, err)
	defer closer.Close()

	log.Debug("hidden")
	log.Info("parsed", slog.String("file", "a.kt"))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=parsed")
	assert.Contains(t, out, "file=a.kt")
}

func TestNewDiscard(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, closer, err := New(Discard, "debug", &buf)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	log.Error("dropped")
	assert.Empty(t, buf.String())
}

func TestNewFileAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.log")
	for _, msg := range []string{"first", "second"} {
		log, closer, err := New(path, "warn", nil)
		require.NoError(t, err)
		log.Warn(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "msg=second")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"":      slog.LevelWarn,
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
