// Command pickerrender writes PNG snapshots of the picker for a set of
// colors and sizes.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"hsv-picker/internal/config"
	"hsv-picker/internal/export"
	"hsv-picker/internal/logging"
	"hsv-picker/internal/version"
	"hsv-picker/pkg/colorutil"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	outDir := pflag.StringP("out", "o", "", "output directory (overrides export.output_dir)")
	sizes := pflag.IntSlice("sizes", nil, "widget sizes in pixels (overrides export.sizes)")
	colors := pflag.StringSlice("color", nil, "colors to render, repeatable (default: the initial color)")
	concurrency := pflag.IntP("jobs", "j", 0, "snapshots rendered in parallel (overrides export.concurrency)")
	noPreview := pflag.Bool("no-preview", false, "omit the preview swatch")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.String("pickerrender"))
		return
	}

	logger := logging.New(os.Stderr, *verbose)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := func() error {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		if *outDir != "" {
			cfg.Export.OutputDir = *outDir
		}
		if len(*sizes) > 0 {
			cfg.Export.Sizes = *sizes
		}
		if *concurrency > 0 {
			cfg.Export.Concurrency = *concurrency
		}
		if *noPreview {
			cfg.ShowPreview = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return run(ctx, logger, cfg, *colors)
	}()
	cancel()
	if err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg config.Config, names []string) error {
	if len(names) == 0 {
		names = []string{cfg.InitialColor}
	}
	colors := make([]colorutil.HSVColor, 0, len(names))
	var errs []error
	for _, name := range names {
		c, err := colorutil.ParseColor(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		colors = append(colors, c)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("colors: %w", err)
	}

	jobs := export.Plan(cfg, colors)
	start := time.Now()
	logger.Info("rendering", "snapshots", len(jobs), "dir", cfg.Export.OutputDir, "jobs", cfg.Export.Concurrency)
	if err := export.Run(ctx, logger, cfg, jobs); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logger.Info("done", "snapshots", len(jobs), "duration", time.Since(start))
	return nil
}
