package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"hsv-picker/pkg/geometry"
)

// RasterSurface draws into an in-memory RGBA image without antialiasing.
type RasterSurface struct {
	img    *image.RGBA
	origin geometry.Point2D
}

// NewRasterSurface wraps img. The surface's page position is the origin
// until moved with SetOrigin.
func NewRasterSurface(img *image.RGBA) *RasterSurface {
	return &RasterSurface{img: img}
}

// Image returns the backing image.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

// SetOrigin places the surface at p in page coordinates.
func (s *RasterSurface) SetOrigin(p geometry.Point2D) { s.origin = p }

// Bounds implements Surface.
func (s *RasterSurface) Bounds() geometry.Rect {
	b := s.img.Bounds()
	return geometry.NewRect(s.origin.X, s.origin.Y, float64(b.Dx()), float64(b.Dy()))
}

func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
}

// FillRect implements Surface.
func (s *RasterSurface) FillRect(x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r := pixelRect(x, y, w, h).Intersect(s.img.Bounds())
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// ClearRect implements Surface.
func (s *RasterSurface) ClearRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	r := pixelRect(x, y, w, h).Intersect(s.img.Bounds())
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

// StrokeArc implements Surface by stamping a radial segment across the line
// width and rotating it about the center in sub-pixel angular steps.
func (s *RasterSurface) StrokeArc(cx, cy, radius, start, end, lineWidth float64, c color.Color) {
	if lineWidth <= 0 || end < start {
		return
	}
	center := geometry.NewPoint2D(cx, cy)
	rIn := math.Max(0, radius-lineWidth/2)
	rOut := radius + lineWidth/2
	if rOut <= 0 {
		s.set(center, c)
		return
	}

	da := 0.5 / rOut
	for a := start; ; a += da {
		if a > end {
			a = end
		}
		rot := geometry.RotationAbout(a, center)
		for r := rIn; r <= rOut; r += 0.5 {
			s.set(rot.Apply(center.Add(geometry.NewPoint2D(r, 0))), c)
		}
		if a >= end {
			return
		}
	}
}

func (s *RasterSurface) set(p geometry.Point2D, c color.Color) {
	x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
	if !(image.Point{X: x, Y: y}).In(s.img.Bounds()) {
		return
	}
	s.img.Set(x, y, c)
}
