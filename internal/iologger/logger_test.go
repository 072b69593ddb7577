package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/brewdb/internal/iologger"
	"github.com/gnames/brewdb/pkg/config"
	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "debug", Destination: "file"}
	path := filepath.Join(dir, iologger.LogFile)

	tests := []struct {
		msg    string
		append bool
		lines  int
	}{
		{"fresh", false, 1},
		{"append", true, 2},
		{"truncate", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			closer, err := iologger.Init(dir, cfg, tt.append)
			require.NoError(t, err)
			slog.Debug("Mapped rows", "kind", "hop")
			require.NoError(t, closer.Close())

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.lines, countLines(data))
			assert.Contains(t, string(data), "kind=hop")
		})
	}
}

func TestInitLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "stderr"}
	closer, err := iologger.Init("", cfg, false)
	require.NoError(t, err)
	defer closer.Close()

	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
}

func TestInitError(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	_, err := iologger.Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

func countLines(data []byte) int {
	var res int
	for _, b := range data {
		if b == '\n' {
			res++
		}
	}
	return res
}
