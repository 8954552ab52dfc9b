package render

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"hsv-picker/internal/picker"
	"hsv-picker/pkg/colorutil"
)

// PreviewSize is the side of the preview swatch, border included.
const PreviewSize = 32

const previewBorder = 2

// Options control what a Renderer paints besides the ring and square.
type Options struct {
	ShowPreview bool
}

// Renderer paints the picker layers. The ring layer is built once; the
// saturation/value field is rebuilt only when the hue changes.
type Renderer struct {
	cfg    picker.Config
	opts   Options
	ring   picker.Ring
	square picker.Square

	mu          sync.Mutex
	ringLayer   *image.RGBA
	fieldLayer  *image.RGBA
	fieldHue    float64
	fieldBuilds int
}

// NewRenderer creates a renderer for the given widget configuration.
func NewRenderer(cfg picker.Config, opts Options) *Renderer {
	return &Renderer{
		cfg:    cfg,
		opts:   opts,
		ring:   picker.NewRing(cfg),
		square: picker.NewSquare(cfg),
	}
}

// Config returns the widget configuration.
func (r *Renderer) Config() picker.Config { return r.cfg }

// FrameSize returns the pixel size of a frame, including the preview
// swatch to the right of the widget when enabled.
func (r *Renderer) FrameSize() image.Point {
	size := int(math.Ceil(r.cfg.Size))
	if size < 0 {
		size = 0
	}
	w := size
	if r.opts.ShowPreview {
		w += PreviewSize
	}
	return image.Pt(w, size)
}

// PaintRing strokes one arc per hue track sample. Hues increase
// counter-clockwise on screen, so sample h covers screen angles
// -(h+step) to -h.
func (r *Renderer) PaintRing(s Surface) {
	thickness := r.ring.Thickness()
	if thickness <= 0 {
		return
	}
	center := r.ring.Center()
	mid := r.ring.InnerRadius() + thickness/2
	step := r.cfg.AngleStep()

	for sample := range r.ring.HueTrack(step) {
		end := -sample.Angle * math.Pi / 180
		start := end - step*math.Pi/180
		s.StrokeArc(center.X, center.Y, mid, start, end, thickness, sample.Color)
	}
}

// PaintSquare clears the square and fills its saturation/value field for hue.
func (r *Renderer) PaintSquare(s Surface, hue float64) {
	side := r.square.Side()
	if side <= 0 {
		return
	}
	o := r.square.Origin()
	s.ClearRect(o.X, o.Y, side, side)
	ox, oy := math.Floor(o.X), math.Floor(o.Y)
	for p := range r.square.SVField(hue) {
		s.FillRect(ox+float64(p.X), oy+float64(p.Y), 1, 1, p.Color)
	}
}

// PaintSelector draws the selector glyph inside the size×size box at (x, y):
// a white ring with a black ring inside it, scaled by pct percent.
func PaintSelector(s Surface, x, y, size, pct float64) {
	half := size / 2
	outer := math.Max(0, (half-2)*pct/100)
	inner := math.Max(0, (half-4)*pct/100)
	cx, cy := x+half, y+half

	s.StrokeArc(cx, cy, outer, 0, 2*math.Pi, 4*pct/100, colorutil.White)
	s.StrokeArc(cx, cy, inner, 0, 2*math.Pi, outer-inner, colorutil.Black)
}

// PaintSelectors draws the ring and square selectors for c.
func (r *Renderer) PaintSelectors(s Surface, c colorutil.HSVColor) {
	// An undefined hue has no ring position.
	if thickness := r.ring.Thickness(); thickness > 0 && !math.IsNaN(c.H) {
		p := r.ring.SelectorPosition(c.H)
		PaintSelector(s, p.X, p.Y, thickness, r.ring.SelectorSizePercentage())
	}
	if r.square.Side() > 0 {
		p := r.square.SelectorPosition(c.S, c.V)
		PaintSelector(s, p.X, p.Y, r.square.SelectorSize(), 100)
	}
}

// PaintPreview draws the bordered preview swatch right of the widget,
// vertically centered.
func (r *Renderer) PaintPreview(s Surface, c colorutil.HSVColor) {
	x := r.cfg.Size
	y := r.cfg.Size/2 - PreviewSize/2
	s.FillRect(x, y, PreviewSize, PreviewSize, colorutil.Black)
	s.FillRect(x+previewBorder, y+previewBorder,
		PreviewSize-2*previewBorder, PreviewSize-2*previewBorder, c.RGB())
}

// Frame composes the cached ring and field layers with the selectors for c.
func (r *Renderer) Frame(c colorutil.HSVColor) *image.RGBA {
	dst := r.layers(c.H)
	s := NewRasterSurface(dst)
	r.PaintSelectors(s, c)
	if r.opts.ShowPreview {
		r.PaintPreview(s, c)
	}
	return dst
}

// Snapshot renders c into a new gg context. The cached layers are copied in
// and the selectors and preview are painted antialiased. The caller closes
// the returned context.
func (r *Renderer) Snapshot(c colorutil.HSVColor) (*gg.Context, error) {
	dc := gg.NewContextForImage(r.layers(c.H))
	s := NewCanvasSurface(dc)
	r.PaintSelectors(s, c)
	if r.opts.ShowPreview {
		r.PaintPreview(s, c)
	}
	if err := s.Err(); err != nil {
		_ = dc.Close()
		return nil, fmt.Errorf("snapshot %s: %w", c.CSS().Hex, err)
	}
	return dc, nil
}

// layers returns a new frame holding the ring and the field for hue.
func (r *Renderer) layers(hue float64) *image.RGBA {
	r.mu.Lock()
	ring := r.ringLayerLocked()
	field := r.fieldLayerLocked(hue)
	r.mu.Unlock()

	dst := image.NewRGBA(image.Rectangle{Max: r.FrameSize()})
	draw.Draw(dst, ring.Bounds(), ring, image.Point{}, draw.Over)
	draw.Draw(dst, field.Bounds(), field, field.Bounds().Min, draw.Over)
	return dst
}

// FieldBuilds reports how many times the saturation/value field was built.
func (r *Renderer) FieldBuilds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fieldBuilds
}

func (r *Renderer) ringLayerLocked() *image.RGBA {
	if r.ringLayer == nil {
		size := r.FrameSize().Y
		r.ringLayer = image.NewRGBA(image.Rect(0, 0, size, size))
		r.PaintRing(NewRasterSurface(r.ringLayer))
	}
	return r.ringLayer
}

// fieldLayerLocked returns the field for hue, positioned at the square's
// pixel offset so it composes at its own bounds.
func (r *Renderer) fieldLayerLocked(hue float64) *image.RGBA {
	if r.fieldLayer != nil && sameHue(r.fieldHue, hue) {
		return r.fieldLayer
	}
	o := r.square.Origin()
	side := int(math.Ceil(r.square.Side()))
	at := image.Pt(int(math.Floor(o.X)), int(math.Floor(o.Y)))
	r.fieldLayer = image.NewRGBA(image.Rectangle{Min: at, Max: at.Add(image.Pt(side, side))})
	r.PaintSquare(NewRasterSurface(r.fieldLayer), hue)
	r.fieldHue = hue
	r.fieldBuilds++
	return r.fieldLayer
}

func sameHue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
