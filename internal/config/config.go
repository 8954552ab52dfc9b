// Package config loads the picker's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hsv-picker/internal/picker"
	"hsv-picker/pkg/colorutil"
)

// ErrInvalidSize is returned for export sizes that are not positive.
var ErrInvalidSize = errors.New("size must be positive")

// DefaultExportSizes are the snapshot sizes written by the batch exporter.
var DefaultExportSizes = []int{128, 256, 400}

// Config holds the settings shared by the picker front ends.
type Config struct {
	Picker       picker.Config `yaml:"picker"`
	InitialColor string        `yaml:"initial_color"`
	ShowPreview  bool          `yaml:"show_preview"`
	Export       Export        `yaml:"export"`
}

// Export configures the batch PNG exporter.
type Export struct {
	OutputDir   string `yaml:"output_dir"`
	Sizes       []int  `yaml:"sizes"`
	Concurrency int    `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Picker:       picker.DefaultConfig(),
		InitialColor: "#ff0000",
		ShowPreview:  true,
		Export: Export{
			OutputDir:   ".",
			Sizes:       append([]int(nil), DefaultExportSizes...),
			Concurrency: 4,
		},
	}
}

// Load reads the configuration at path over the defaults. A missing file
// yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Export.Sizes) == 0 {
		cfg.Export.Sizes = append([]int(nil), DefaultExportSizes...)
	}
	if cfg.Export.Concurrency <= 0 {
		cfg.Export.Concurrency = 1
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings that cannot be rendered.
func (c Config) Validate() error {
	for _, size := range c.Export.Sizes {
		if size <= 0 {
			return fmt.Errorf("export.sizes: %d: %w", size, ErrInvalidSize)
		}
	}
	return nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Initial returns the parsed initial color.
func (c Config) Initial() (colorutil.HSVColor, error) {
	hsv, err := colorutil.ParseColor(c.InitialColor)
	if err != nil {
		return colorutil.HSVColor{}, fmt.Errorf("initial_color: %w", err)
	}
	return hsv, nil
}
