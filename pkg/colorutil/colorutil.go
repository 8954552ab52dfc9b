// Package colorutil provides the RGB and HSV color types used by the picker
// and the conversions between them.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Common glyph colors used by the renderers.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ErrUnknownColor is returned by ParseColor for input that is neither a hex
// triplet nor a CSS color name.
var ErrUnknownColor = errors.New("unknown color")

// achromaticEpsilon is the channel spread below which a color is treated as gray.
const achromaticEpsilon = 0.00001

// RGBColor holds red, green and blue channels in the range 0-255.
// Values are not validated; they are floored and clamped only when formatted.
type RGBColor struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// HSVColor holds hue in degrees [0, 360), saturation and value in [0, 1].
type HSVColor struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// CSS holds the two CSS renditions of a color.
type CSS struct {
	RGB string `json:"rgb"` // rgb(r, g, b)
	Hex string `json:"hex"` // #rrggbb
}

// NormalizeHue wraps a hue in degrees into [0, 360). NaN is returned unchanged.
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) {
		return h
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// RGBToHSV converts RGB (0-255) to HSV (H 0-360, S 0-1, V 0-1).
//
// Gray input yields hue 0. Input whose brightest channel is not positive
// yields saturation 0 and a NaN hue, since hue is undefined there.
func RGBToHSV(c RGBColor) HSVColor {
	maxC := math.Max(c.R, math.Max(c.G, c.B)) / 255.0
	minC := math.Min(c.R, math.Min(c.G, c.B)) / 255.0
	delta := maxC - minC

	ret := HSVColor{V: maxC}
	if delta < achromaticEpsilon {
		return ret
	}

	if maxC <= 0 {
		ret.H = math.NaN()
		return ret
	}
	ret.S = delta / maxC

	switch {
	case c.R/255.0 >= maxC:
		ret.H = (c.G - c.B) / 255.0 / delta
	case c.G/255.0 >= maxC:
		ret.H = 2 + (c.B-c.R)/255.0/delta
	default:
		ret.H = 4 + (c.R-c.G)/255.0/delta
	}

	ret.H *= 60
	if ret.H < 0 {
		ret.H += 360
	}
	return ret
}

// HSVToRGB converts HSV to RGB (0-255) using the hexcone decomposition.
// A NaN hue is rendered achromatic.
func HSVToRGB(c HSVColor) RGBColor {
	if c.S <= 0 || math.IsNaN(c.H) {
		gray := c.V * 255
		return RGBColor{R: gray, G: gray, B: gray}
	}

	hh := NormalizeHue(c.H) / 60
	i := int(math.Floor(hh)) % 6
	ff := hh - math.Floor(hh)

	v := c.V
	p := v * (1 - c.S)
	q := v * (1 - c.S*ff)
	t := v * (1 - c.S*(1-ff))

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return RGBColor{R: r * 255, G: g * 255, B: b * 255}
}

// channel8 floors a channel and clamps it into a byte.
func channel8(v float64) uint8 {
	v = math.Floor(v)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// FormatCSS returns the rgb() and #rrggbb strings for c.
func FormatCSS(c RGBColor) CSS {
	r, g, b := channel8(c.R), channel8(c.G), channel8(c.B)
	return CSS{
		RGB: fmt.Sprintf("rgb(%d, %d, %d)", r, g, b),
		Hex: fmt.Sprintf("#%02x%02x%02x", r, g, b),
	}
}

// CSS returns the CSS strings for the color.
func (c RGBColor) CSS() CSS {
	return FormatCSS(c)
}

// NRGBA returns the color as an opaque 8-bit color.
func (c RGBColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: channel8(c.R), G: channel8(c.G), B: channel8(c.B), A: 255}
}

// RGBA implements color.Color.
func (c RGBColor) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// RGB returns the color converted to RGB.
func (c HSVColor) RGB() RGBColor {
	return HSVToRGB(c)
}

// CSS returns the CSS strings for the color.
func (c HSVColor) CSS() CSS {
	return FormatCSS(HSVToRGB(c))
}

// RGBA implements color.Color.
func (c HSVColor) RGBA() (r, g, b, a uint32) {
	return HSVToRGB(c).RGBA()
}

// HSVModel converts any color.Color to HSVColor, dropping alpha.
var HSVModel = color.ModelFunc(hsvModel)

func hsvModel(c color.Color) color.Color {
	if hsv, ok := c.(HSVColor); ok {
		return hsv
	}
	return RGBToHSV(FromColor(c))
}

// FromColor converts a standard color to RGBColor, un-premultiplying alpha.
func FromColor(c color.Color) RGBColor {
	if rgb, ok := c.(RGBColor); ok {
		return rgb
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBColor{R: float64(n.R), G: float64(n.G), B: float64(n.B)}
}

// ParseColor parses "#rrggbb", "#rgb" or a CSS color name into HSV.
func ParseColor(s string) (HSVColor, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return HSVColor{}, fmt.Errorf("parse %q: %w", s, err)
		}
		return RGBToHSV(RGBColor{R: c.R * 255, G: c.G * 255, B: c.B * 255}), nil
	}

	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBToHSV(FromColor(named)), nil
	}
	return HSVColor{}, fmt.Errorf("parse %q: %w", s, ErrUnknownColor)
}
