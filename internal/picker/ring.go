package picker

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"hsv-picker/pkg/colorutil"
	"hsv-picker/pkg/geometry"
)

// Ring maps hues to positions on an annulus centered in a square widget.
type Ring struct {
	size        float64
	innerRadius float64
	outerRadius float64
	selectorPct float64
}

// HueSample is one step of the discretized hue track.
type HueSample struct {
	Step  int                // step index, 0-based
	Angle float64            // hue in degrees at the start of the step
	Color colorutil.RGBColor // fully saturated, full value color at Angle
}

// NewRing derives the ring geometry from cfg.
func NewRing(cfg Config) Ring {
	half := cfg.Size / 2
	return Ring{
		size:        cfg.Size,
		innerRadius: half * cfg.InnerRadiusPercentage / 100,
		outerRadius: half * cfg.OuterRadiusPercentage / 100,
		selectorPct: cfg.SelectorSizePercentage,
	}
}

// Center returns the ring center in widget coordinates.
func (r Ring) Center() geometry.Point2D {
	return geometry.Point2D{X: r.size / 2, Y: r.size / 2}
}

// InnerRadius returns the inner radius.
func (r Ring) InnerRadius() float64 { return r.innerRadius }

// OuterRadius returns the outer radius.
func (r Ring) OuterRadius() float64 { return r.outerRadius }

// Thickness returns outer minus inner radius, never negative.
func (r Ring) Thickness() float64 {
	return math.Max(0, r.outerRadius-r.innerRadius)
}

// SelectorSizePercentage returns the selector glyph scale.
func (r Ring) SelectorSizePercentage() float64 { return r.selectorPct }

// HueToPixel returns the top-left corner of a selector of size thickness
// centered on the ring's mid-line at the given hue. Hue runs
// counter-clockwise from the positive x axis.
func (r Ring) HueToPixel(hue, thickness float64) geometry.Point2D {
	half := thickness / 2
	radius := r.innerRadius + half
	center := r.size / 2

	radians := hue / 180 * math.Pi
	return geometry.Point2D{
		X: radius*math.Cos(radians) + center - half,
		Y: center - radius*math.Sin(radians) - half,
	}
}

// SelectorPosition returns the top-left corner of the ring selector for hue.
func (r Ring) SelectorPosition(hue float64) geometry.Point2D {
	return r.HueToPixel(hue, r.Thickness())
}

// SelectorCenter returns the ring mid-line point for hue.
func (r Ring) SelectorCenter(hue float64) geometry.Point2D {
	half := r.Thickness() / 2
	return r.SelectorPosition(hue).Add(geometry.Point2D{X: half, Y: half})
}

// offset returns p relative to the ring center.
func (r Ring) offset(p geometry.Point2D) r2.Vec {
	return r2.Sub(r2.Vec(p), r2.Vec(r.Center()))
}

// PixelToHue returns the hue in [0, 360) for a widget point. It is the
// inverse of the angular convention of HueToPixel.
//
// The center and NaN coordinates map to +0, never -0.
func (r Ring) PixelToHue(p geometry.Point2D) float64 {
	d := r.offset(p)
	angle := -math.Atan2(d.Y, d.X) / math.Pi * 180
	switch {
	case math.IsNaN(angle), angle == 0:
		return 0
	case angle < 0:
		angle += 360
	}
	if angle >= 360 {
		angle -= 360
	}
	return angle
}

// Contains reports whether p lies on the ring, both radii included.
// A ring without thickness has no hit region.
func (r Ring) Contains(p geometry.Point2D) bool {
	if r.Thickness() <= 0 {
		return false
	}
	d2 := r2.Norm2(r.offset(p))
	return r.innerRadius*r.innerRadius <= d2 && d2 <= r.outerRadius*r.outerRadius
}

// HueTrack yields the hue track at stepDegrees resolution, covering the
// full circle in increasing hue order. A non-positive step falls back to
// 80/size degrees.
func (r Ring) HueTrack(stepDegrees float64) iter.Seq[HueSample] {
	if stepDegrees <= 0 {
		stepDegrees = Config{Size: r.size}.AngleStep()
	}
	numSteps := 360 / stepDegrees

	return func(yield func(HueSample) bool) {
		for step := 0; float64(step) < numSteps; step++ {
			angle := float64(step) * stepDegrees
			sample := HueSample{
				Step:  step,
				Angle: angle,
				Color: colorutil.HSVToRGB(colorutil.HSVColor{H: angle, S: 1, V: 1}),
			}
			if !yield(sample) {
				return
			}
		}
	}
}
