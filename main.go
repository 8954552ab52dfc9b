// Package main provides the desktop HSV color picker.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"

	"hsv-picker/internal/app"
	"hsv-picker/internal/config"
	"hsv-picker/internal/logging"
	"hsv-picker/internal/render"
	"hsv-picker/internal/version"
	"hsv-picker/pkg/colorutil"
	"hsv-picker/ui/canvas"
	"hsv-picker/ui/prefs"
)

const (
	appID    = "io.github.hsv-picker"
	appTitle = "HSV Picker"
)

// options holds the command line. Picker geometry flags only override the
// config file when given explicitly.
type options struct {
	configPath string
	size       float64
	inner      float64
	outer      float64
	selector   float64
	initial    string
	noPreview  bool
	verbose    bool
	version    bool

	flags *pflag.FlagSet
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := pflag.NewFlagSet("hsv-picker", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	fs.Float64Var(&o.size, "size", 0, "widget size in pixels")
	fs.Float64Var(&o.inner, "inner", 0, "ring inner radius, percent of half the size")
	fs.Float64Var(&o.outer, "outer", 0, "ring outer radius, percent of half the size")
	fs.Float64Var(&o.selector, "selector", 0, "ring selector size, percent")
	fs.StringVarP(&o.initial, "initial", "i", "", "initial color (#rrggbb, #rgb or CSS name)")
	fs.BoolVar(&o.noPreview, "no-preview", false, "hide the preview swatch")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVar(&o.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.flags = fs
	return o, nil
}

// apply overrides cfg with the flags that were set.
func (o *options) apply(cfg *config.Config) {
	if o.flags.Changed("size") {
		cfg.Picker.Size = o.size
	}
	if o.flags.Changed("inner") {
		cfg.Picker.InnerRadiusPercentage = o.inner
	}
	if o.flags.Changed("outer") {
		cfg.Picker.OuterRadiusPercentage = o.outer
	}
	if o.flags.Changed("selector") {
		cfg.Picker.SelectorSizePercentage = o.selector
	}
	if o.initial != "" {
		cfg.InitialColor = o.initial
	}
	if o.noPreview {
		cfg.ShowPreview = false
	}
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if opts.version {
		fmt.Println(version.String("hsv-picker"))
		return
	}

	logger := logging.New(os.Stderr, opts.verbose)
	if err := run(logger, opts); err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

// loadSession resolves the config file from the flags or the saved
// preferences, then the initial color.
func loadSession(opts *options, appPrefs *prefs.Prefs) (config.Config, colorutil.HSVColor, error) {
	path := opts.configPath
	if path == "" {
		path = appPrefs.String(prefs.KeyConfigPath)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, colorutil.HSVColor{}, err
	}
	opts.apply(&cfg)
	opts.configPath = path

	initial, err := cfg.Initial()
	if err != nil {
		return cfg, colorutil.HSVColor{}, err
	}
	return cfg, initial, nil
}

// pickerView tracks the picker widget shown in the window.
type pickerView struct {
	state   *app.State
	label   *widget.Label
	current *canvas.PickerWidget
}

// build returns window content for cfg. The widget it replaces stops
// following the state.
func (v *pickerView) build(cfg config.Config) fyne.CanvasObject {
	pw := canvas.NewPickerWidget(cfg.Picker, v.state, render.Options{ShowPreview: cfg.ShowPreview})
	if v.current != nil {
		v.current.Detach()
	}
	v.current = pw
	return container.NewBorder(nil, v.label, nil, nil, container.NewCenter(pw))
}

func colorLabel(css colorutil.CSS) string {
	return css.RGB + "   " + css.Hex
}

func run(logger *slog.Logger, opts *options) error {
	appPrefs := prefs.Load()
	cfg, initial, err := loadSession(opts, appPrefs)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	logger.Info("starting", "version", version.Version, "size", cfg.Picker.Size, "config", opts.configPath)

	state := app.NewState(initial)
	a := fyneapp.NewWithID(appID)
	win := a.NewWindow(appTitle)

	label := widget.NewLabel(colorLabel(state.CSS()))
	state.OnColorChange(func(string) {
		label.SetText(colorLabel(state.CSS()))
	})
	state.On(app.EventHueChanged, func(data interface{}) {
		logger.Debug("hue changed", "hue", data)
	})

	view := &pickerView{state: state, label: label}
	win.SetContent(view.build(cfg))

	w, h := appPrefs.WindowSize(cfg.Picker.Size+80, cfg.Picker.Size+80)
	win.Resize(fyne.NewSize(float32(w), float32(h)))

	if opts.configPath != "" {
		if watcher := app.NewConfigWatcher(opts.configPath, 2*time.Second); watcher != nil {
			watcher.OnChange(func(path string) {
				next, err := config.Load(path)
				if err != nil {
					logger.Warn("config reload failed", "path", path, "error", err)
					return
				}
				opts.apply(&next)
				logger.Info("config reloaded", "path", path, "size", next.Picker.Size)
				win.SetContent(view.build(next))
			})
			watcher.Start()
			defer watcher.Stop()
		}
	}

	win.SetOnClosed(func() {
		size := win.Canvas().Size()
		appPrefs.SetWindowSize(float64(size.Width), float64(size.Height))
		if opts.configPath != "" {
			appPrefs.SetString(prefs.KeyConfigPath, opts.configPath)
		}
		if err := appPrefs.Save(); err != nil {
			logger.Warn("saving preferences", "error", err)
		}
	})

	win.ShowAndRun()
	return nil
}
