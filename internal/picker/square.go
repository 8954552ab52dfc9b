package picker

import (
	"iter"
	"math"

	"hsv-picker/pkg/colorutil"
	"hsv-picker/pkg/geometry"
)

const (
	// squareMargin keeps the square clear of the ring.
	squareMargin = 4.0

	// selectorInset keeps the selector glyph inside the square's edges.
	selectorInset = 0.05
)

// Square maps saturation and value to positions inside the square inscribed
// in the ring. Square-local points are relative to the square's top-left.
type Square struct {
	side   float64
	origin geometry.Point2D
}

// FieldSample is one pixel of the saturation/value field.
type FieldSample struct {
	X, Y  int
	Color colorutil.RGBColor
}

// NewSquare derives the square geometry from cfg.
func NewSquare(cfg Config) Square {
	innerRadius := cfg.Size / 2 * cfg.InnerRadiusPercentage / 100
	side := SideLength(innerRadius)
	offset := (cfg.Size - side) / 2
	return Square{
		side:   side,
		origin: geometry.Point2D{X: offset, Y: offset},
	}
}

// SideLength returns the side of the square inscribed in a ring with the
// given inner radius, inset by the fixed margin and never negative.
func SideLength(innerRadius float64) float64 {
	return math.Max(0, math.Sqrt2*innerRadius-squareMargin)
}

// Side returns the side length.
func (s Square) Side() float64 { return s.side }

// Origin returns the square's top-left corner in widget coordinates.
func (s Square) Origin() geometry.Point2D { return s.origin }

// Bounds returns the square in widget coordinates.
func (s Square) Bounds() geometry.Rect {
	return geometry.NewRect(s.origin.X, s.origin.Y, s.side, s.side)
}

// ToLocal converts a widget point into a square-local point.
func (s Square) ToLocal(p geometry.Point2D) geometry.Point2D {
	return p.Sub(s.origin)
}

// ParamsToPixel returns the square-local top-left corner of the selector for
// the given saturation and value.
func ParamsToPixel(sat, val, side float64) geometry.Point2D {
	return geometry.Point2D{
		X: (sat - selectorInset) * side,
		Y: (1 - val - selectorInset) * side,
	}
}

// PixelToParams returns the saturation and value at a square-local point,
// clamped to [0, 1]. Value decreases downward.
func PixelToParams(p geometry.Point2D, side float64) (sat, val float64) {
	if side <= 0 {
		return 0, 0
	}
	sat = clamp01(p.X / side)
	val = clamp01((side - p.Y) / side)
	return sat, val
}

// IsWithinBox reports whether a square-local point lies inside the square,
// edges included. An empty square contains nothing.
func IsWithinBox(p geometry.Point2D, side float64) bool {
	if side <= 0 {
		return false
	}
	return geometry.NewRect(0, 0, side, side).Contains(p)
}

// SelectorPosition returns the widget-space top-left corner of the selector.
func (s Square) SelectorPosition(sat, val float64) geometry.Point2D {
	return s.origin.Add(ParamsToPixel(sat, val, s.side))
}

// SelectorSize returns the size of the square's selector glyph.
func (s Square) SelectorSize() float64 {
	return s.side / 10
}

// Params returns the saturation and value at a widget point.
func (s Square) Params(p geometry.Point2D) (sat, val float64) {
	return PixelToParams(s.ToLocal(p), s.side)
}

// Contains reports whether a widget point lies inside the square.
func (s Square) Contains(p geometry.Point2D) bool {
	return IsWithinBox(s.ToLocal(p), s.side)
}

// SVField yields the saturation/value gradient for hue, one sample per
// integer pixel in [0, side)², row by row. It must be regenerated whenever
// the hue changes.
func (s Square) SVField(hue float64) iter.Seq[FieldSample] {
	side := s.side
	return func(yield func(FieldSample) bool) {
		for y := 0; float64(y) < side; y++ {
			for x := 0; float64(x) < side; x++ {
				c := colorutil.HSVToRGB(colorutil.HSVColor{
					H: hue,
					S: float64(x) / side,
					V: 1 - float64(y)/side,
				})
				if !yield(FieldSample{X: x, Y: y, Color: c}) {
					return
				}
			}
		}
	}
}

// clamp01 limits v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(0, v), 1)
}
