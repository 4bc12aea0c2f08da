package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultDiscards(t *testing.T) {
	Set(nil)
	require.False(t, DebugEnabled())
	Info("dropped") // must not panic
}

func TestInitJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "corekit.log")
	closeFn, err := Init(Options{Enabled: true, Path: path, JSON: true, Level: slog.LevelDebug})
	require.NoError(t, err)
	t.Cleanup(func() { Set(nil) })

	require.True(t, DebugEnabled())
	Debug("block mapped", "size", 131072)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	require.Equal(t, "block mapped", rec["msg"])
	require.EqualValues(t, 131072, rec["size"])
}

func TestInitDisabled(t *testing.T) {
	closeFn, err := Init(Options{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, closeFn())
	require.False(t, DebugEnabled())
}
