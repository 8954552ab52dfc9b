// Package canvas provides the fyne widget for the HSV picker.
package canvas

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"hsv-picker/internal/app"
	"hsv-picker/internal/picker"
	"hsv-picker/internal/render"
	"hsv-picker/pkg/geometry"
)

// PickerWidget shows the hue ring and saturation/value square and turns
// primary-button presses and drags into color changes.
//
// fyne keeps delivering Dragged to the widget that received the press, even
// once the pointer leaves it, which gives a drag global pointer capture.
type PickerWidget struct {
	widget.BaseWidget

	state      *app.State
	renderer   *render.Renderer
	controller *picker.Controller
	raster     *fynecanvas.Raster
	detach     func()

	mu       sync.Mutex
	captured picker.Region
}

// NewPickerWidget creates a picker bound to state.
func NewPickerWidget(cfg picker.Config, state *app.State, opts render.Options) *PickerWidget {
	w := &PickerWidget{
		state:    state,
		renderer: render.NewRenderer(cfg, opts),
	}
	w.controller = picker.NewController(cfg, state, w)

	w.raster = fynecanvas.NewRaster(w.draw)
	w.raster.ScaleMode = fynecanvas.ImageScalePixels
	size := w.renderer.FrameSize()
	w.raster.SetMinSize(fyne.NewSize(float32(size.X), float32(size.Y)))

	w.detach = state.On(app.EventColorChanged, func(interface{}) {
		w.raster.Refresh()
	})

	w.ExtendBaseWidget(w)
	return w
}

// Detach stops the widget from following state changes and ends any drag.
// Call it when the widget is replaced.
func (w *PickerWidget) Detach() {
	w.controller.Release()
	w.detach()
}

// Controller returns the interaction controller.
func (w *PickerWidget) Controller() *picker.Controller { return w.controller }

// Captured returns the region currently holding pointer capture.
func (w *PickerWidget) Captured() picker.Region {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.captured
}

// Capture implements picker.PointerCapture.
func (w *PickerWidget) Capture(region picker.Region) {
	w.mu.Lock()
	w.captured = region
	w.mu.Unlock()
}

// Release implements picker.PointerCapture.
func (w *PickerWidget) Release(region picker.Region) {
	w.mu.Lock()
	if w.captured == region {
		w.captured = picker.RegionNone
	}
	w.mu.Unlock()
}

func (w *PickerWidget) draw(_, _ int) image.Image {
	return w.renderer.Frame(w.state.Color())
}

func toPoint(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
}

// MouseDown starts a drag when the primary button goes down on a region.
func (w *PickerWidget) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	w.controller.Press(toPoint(ev.Position))
}

// MouseUp ends any drag in progress.
func (w *PickerWidget) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	w.controller.Release()
}

// Dragged updates the active region. Positions outside the widget are
// clamped by the region's mapping.
func (w *PickerWidget) Dragged(ev *fyne.DragEvent) {
	w.controller.Move(toPoint(ev.Position))
}

// DragEnd ends any drag in progress.
func (w *PickerWidget) DragEnd() {
	w.controller.Release()
}

// MinSize returns the frame size.
func (w *PickerWidget) MinSize() fyne.Size {
	return w.raster.MinSize()
}

// CreateRenderer implements fyne.Widget.
func (w *PickerWidget) CreateRenderer() fyne.WidgetRenderer {
	return &pickerRenderer{widget: w}
}

type pickerRenderer struct {
	widget *PickerWidget
}

func (r *pickerRenderer) Layout(size fyne.Size) {
	r.widget.raster.Resize(r.widget.raster.MinSize())
}

func (r *pickerRenderer) MinSize() fyne.Size {
	return r.widget.raster.MinSize()
}

func (r *pickerRenderer) Refresh() {
	r.widget.raster.Refresh()
}

func (r *pickerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.raster}
}

func (r *pickerRenderer) Destroy() {}
