// Command pickertui runs the HSV picker in a terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/pflag"

	"hsv-picker/internal/app"
	"hsv-picker/internal/audio"
	"hsv-picker/internal/config"
	"hsv-picker/internal/logging"
	"hsv-picker/internal/tui"
	"hsv-picker/internal/version"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	size := pflag.Int("size", 48, "picker width in columns")
	initial := pflag.StringP("initial", "i", "", "initial color (#rrggbb, #rgb or CSS name)")
	sound := pflag.Bool("sound", false, "play a tone when a drag starts or ends")
	logPath := pflag.String("log", "", "write logs to this file; the terminal is in use")
	verbose := pflag.BoolP("verbose", "v", false, "debug logging")
	showVersion := pflag.Bool("version", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.String("pickertui"))
		return
	}

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logOut, *verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	cfg.Picker.Size = float64(*size)
	if *initial != "" {
		cfg.InitialColor = *initial
	}
	start, err := cfg.Initial()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var player tui.Player
	if *sound {
		fb := audio.NewFeedback()
		if err := fb.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		} else {
			defer fb.Close()
			player = fb
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	state := app.NewState(start)
	logger.Info("starting", "size", cfg.Picker.Size, "color", state.CSS().Hex)
	tui.New(screen, cfg.Picker, state, player).Run()
	screen.Fini()

	fmt.Println(state.CSS().RGB, state.CSS().Hex)
}
