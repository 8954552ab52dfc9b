// Package logging builds the structured loggers used by the commands.
package logging

import (
	"io"
	"log/slog"

	"github.com/gogpu/gg"
)

// New returns a text logger writing to w at info level, or debug when
// verbose. The logger also becomes the slog default and gg's logger.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return logger
}
