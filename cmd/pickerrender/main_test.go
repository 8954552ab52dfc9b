package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsv-picker/internal/config"
	"hsv-picker/pkg/colorutil"
)

func TestRunDefaultsToInitialColor(t *testing.T) {
	cfg := config.Default()
	cfg.Export.OutputDir = t.TempDir()
	cfg.Export.Sizes = []int{40}
	cfg.InitialColor = "#00ff00"

	require.NoError(t, run(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, nil))
	_, err := os.Stat(filepath.Join(cfg.Export.OutputDir, "picker-40-00ff00.png"))
	assert.NoError(t, err)
}

func TestRunReportsEveryBadColor(t *testing.T) {
	cfg := config.Default()
	cfg.Export.OutputDir = t.TempDir()

	err := run(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, []string{"nope", "red", "#zz"})
	require.Error(t, err)
	assert.ErrorIs(t, err, colorutil.ErrUnknownColor)
	assert.Contains(t, err.Error(), `"#zz"`)
}
