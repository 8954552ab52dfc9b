// Command pickermcp serves the picker's color tools over MCP on stdio.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"

	"hsv-picker/internal/config"
	"hsv-picker/internal/logging"
	"hsv-picker/internal/mcptools"
	"hsv-picker/internal/render"
	"hsv-picker/internal/version"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.String("pickermcp"))
		return
	}

	// stdout carries the MCP stream.
	logger := logging.New(os.Stderr, *verbose)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, logger, *configPath)
	cancel()
	if err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hsv-picker",
		Version: version.Version,
	}, nil)
	server.AddReceivingMiddleware(loggingMiddleware(logger))
	mcptools.NewToolset(cfg.Picker, render.Options{ShowPreview: cfg.ShowPreview}).Register(server)

	logger.Info("starting MCP server", "transport", "stdio", "size", cfg.Picker.Size)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}

func loggingMiddleware(logger *slog.Logger) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			if err != nil {
				logger.ErrorContext(ctx, "request failed", "method", method, "duration", time.Since(start), "error", err)
			} else {
				logger.DebugContext(ctx, "request completed", "method", method, "duration", time.Since(start))
			}
			return result, err
		}
	}
}
