package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"hsv-picker/pkg/geometry"
)

// CanvasSurface draws onto a gg context with antialiased paths.
// Single-pixel fills go straight to the pixmap.
type CanvasSurface struct {
	dc  *gg.Context
	err error
}

// NewCanvasSurface wraps dc.
func NewCanvasSurface(dc *gg.Context) *CanvasSurface {
	return &CanvasSurface{dc: dc}
}

// Context returns the wrapped gg context.
func (s *CanvasSurface) Context() *gg.Context { return s.dc }

// Err returns the rendering errors gg reported since creation.
func (s *CanvasSurface) Err() error { return s.err }

// Bounds implements Surface.
func (s *CanvasSurface) Bounds() geometry.Rect {
	return geometry.NewRect(0, 0, float64(s.dc.Width()), float64(s.dc.Height()))
}

func isPixel(x, y, w, h float64) bool {
	return w == 1 && h == 1 && x == math.Trunc(x) && y == math.Trunc(y)
}

// FillRect implements Surface.
func (s *CanvasSurface) FillRect(x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	if isPixel(x, y, w, h) {
		s.dc.SetPixel(int(x), int(y), gg.FromColor(c))
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawRectangle(x, y, w, h)
	s.record("fill", s.dc.Fill())
}

// ClearRect implements Surface.
func (s *CanvasSurface) ClearRect(x, y, w, h float64) {
	r := pixelRect(x, y, w, h)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			s.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

// StrokeArc implements Surface.
func (s *CanvasSurface) StrokeArc(cx, cy, radius, start, end, lineWidth float64, c color.Color) {
	if lineWidth <= 0 || end < start {
		return
	}
	s.dc.ClearPath()
	s.dc.SetColor(c)
	s.dc.SetLineWidth(lineWidth)
	if end-start >= 2*math.Pi {
		s.dc.DrawCircle(cx, cy, radius)
	} else {
		s.dc.DrawArc(cx, cy, radius, start, end)
	}
	s.record("stroke", s.dc.Stroke())
}

func (s *CanvasSurface) record(op string, err error) {
	if err != nil {
		s.err = errors.Join(s.err, fmt.Errorf("%s: %w", op, err))
	}
}
