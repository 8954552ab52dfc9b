// Package render paints the picker layers onto drawing surfaces.
package render

import (
	"image/color"

	"hsv-picker/pkg/geometry"
)

// Surface is a 2D drawing target addressed in widget coordinates.
// Angles are in radians and follow screen orientation: the point at angle a
// on a circle of radius r is (cx + r·cos a, cy + r·sin a), y pointing down.
type Surface interface {
	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)
	// StrokeArc strokes the arc of the given radius from start to end,
	// centered on the radius with width lineWidth.
	StrokeArc(cx, cy, radius, start, end, lineWidth float64, c color.Color)
	// ClearRect resets a rectangle to transparent.
	ClearRect(x, y, w, h float64)
	// Bounds returns the surface's rectangle in page coordinates. Hosts
	// convert client positions with Bounds().Local before hit testing.
	Bounds() geometry.Rect
}
