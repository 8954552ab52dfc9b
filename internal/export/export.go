// Package export writes picker snapshots to PNG files.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"hsv-picker/internal/config"
	"hsv-picker/internal/render"
	"hsv-picker/pkg/colorutil"
)

// Job is one snapshot to write.
type Job struct {
	Size  int
	Color colorutil.HSVColor
	Path  string
}

// Plan lists one job per size and color, named picker-<size>-<hex>.png in
// the configured output directory.
func Plan(cfg config.Config, colors []colorutil.HSVColor) []Job {
	jobs := make([]Job, 0, len(cfg.Export.Sizes)*len(colors))
	for _, size := range cfg.Export.Sizes {
		for _, c := range colors {
			name := fmt.Sprintf("picker-%d-%s.png", size, strings.TrimPrefix(c.CSS().Hex, "#"))
			jobs = append(jobs, Job{
				Size:  size,
				Color: c,
				Path:  filepath.Join(cfg.Export.OutputDir, name),
			})
		}
	}
	return jobs
}

// Run renders every job with at most cfg.Export.Concurrency in flight.
// Jobs of the same size share a renderer and its cached layers.
func Run(ctx context.Context, logger *slog.Logger, cfg config.Config, jobs []Job) error {
	for _, job := range jobs {
		if job.Size <= 0 {
			return fmt.Errorf("%s: size %d: %w", job.Path, job.Size, config.ErrInvalidSize)
		}
	}
	if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	renderers := make(map[int]*render.Renderer)
	for _, job := range jobs {
		if _, ok := renderers[job.Size]; !ok {
			pc := cfg.Picker
			pc.Size = float64(job.Size)
			renderers[job.Size] = render.NewRenderer(pc, render.Options{ShowPreview: cfg.ShowPreview})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Export.Concurrency))
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := write(renderers[job.Size], job); err != nil {
				return err
			}
			logger.Debug("wrote snapshot", "path", job.Path, "size", job.Size, "color", job.Color.CSS().Hex)
			return nil
		})
	}
	return g.Wait()
}

func write(r *render.Renderer, job Job) error {
	dc, err := r.Snapshot(job.Color)
	if err != nil {
		return fmt.Errorf("render %s: %w", job.Path, err)
	}
	defer dc.Close()

	if err := dc.SavePNG(job.Path); err != nil {
		return fmt.Errorf("save %s: %w", job.Path, err)
	}
	return nil
}
