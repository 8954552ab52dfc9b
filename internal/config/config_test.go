package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsv-picker/internal/picker"
	"hsv-picker/pkg/colorutil"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, picker.DefaultConfig(), cfg.Picker)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picker.yaml")
	data := `
picker:
  size: 200
  inner_radius_percentage: 50
initial_color: teal
export:
  sizes: [64]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Picker.Size)
	assert.Equal(t, 50.0, cfg.Picker.InnerRadiusPercentage)
	assert.Equal(t, picker.DefaultOuterRadiusPercentage, cfg.Picker.OuterRadiusPercentage)
	assert.Equal(t, []int{64}, cfg.Export.Sizes)
	assert.Equal(t, 4, cfg.Export.Concurrency)
	assert.True(t, cfg.ShowPreview)

	hsv, err := cfg.Initial()
	require.NoError(t, err)
	assert.InDelta(t, 180, hsv.H, 1e-9)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("picker: [1, 2"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	want := Default()
	want.Picker.Size = 320
	want.InitialColor = "#336699"

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInitialUnknownColor(t *testing.T) {
	cfg := Default()
	cfg.InitialColor = "not-a-color"
	_, err := cfg.Initial()
	assert.ErrorIs(t, err, colorutil.ErrUnknownColor)
}

func TestLoadRejectsNonPositiveSizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export:\n  sizes: [128, -5]\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidSize)
	assert.Contains(t, err.Error(), "-5")

	cfg := Default()
	cfg.Export.Sizes = []int{0}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidSize)
	assert.NoError(t, Default().Validate())
}
