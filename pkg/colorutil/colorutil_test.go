package colorutil

import (
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

func requireRGB(t *testing.T, want, got RGBColor, tol float64) {
	t.Helper()
	if !scalar.EqualWithinAbs(want.R, got.R, tol) ||
		!scalar.EqualWithinAbs(want.G, got.G, tol) ||
		!scalar.EqualWithinAbs(want.B, got.B, tol) {
		t.Fatalf("rgb mismatch: want %+v, got %+v", want, got)
	}
}

func TestRGBToHSV_Achromatic(t *testing.T) {
	hsv := RGBToHSV(RGBColor{R: 128, G: 128, B: 128})
	assert.Equal(t, 0.0, hsv.S)
	assert.Equal(t, 0.0, hsv.H)
	assert.InDelta(t, 128.0/255.0, hsv.V, 1e-12)
}

func TestRGBToHSV_NonPositiveMax(t *testing.T) {
	hsv := RGBToHSV(RGBColor{R: -100, G: 0, B: 0})
	assert.Equal(t, 0.0, hsv.S)
	assert.True(t, math.IsNaN(hsv.H))

	// NaN hue renders as gray rather than failing.
	rgb := HSVToRGB(hsv)
	requireRGB(t, RGBColor{}, rgb, 1e-9)
}

func TestRGBToHSV_Primaries(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGBColor
		hue  float64
	}{
		{"red", RGBColor{R: 255}, 0},
		{"yellow", RGBColor{R: 255, G: 255}, 60},
		{"green", RGBColor{G: 255}, 120},
		{"cyan", RGBColor{G: 255, B: 255}, 180},
		{"blue", RGBColor{B: 255}, 240},
		{"magenta", RGBColor{R: 255, B: 255}, 300},
		{"rose", RGBColor{R: 255, B: 128}, 360 - 128.0/255.0*60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hsv := RGBToHSV(tt.rgb)
			assert.InDelta(t, tt.hue, hsv.H, 1e-9)
			assert.InDelta(t, 1.0, hsv.S, 1e-12)
			assert.InDelta(t, 1.0, hsv.V, 1e-12)
		})
	}
}

func TestHSVToRGB_SectorBoundaries(t *testing.T) {
	requireRGB(t, RGBColor{R: 255}, HSVToRGB(HSVColor{H: 0, S: 1, V: 1}), 1e-9)
	requireRGB(t, RGBColor{R: 255}, HSVToRGB(HSVColor{H: 360, S: 1, V: 1}), 1e-9)
	requireRGB(t, RGBColor{G: 255}, HSVToRGB(HSVColor{H: 120, S: 1, V: 1}), 1e-9)
	requireRGB(t, RGBColor{B: 255}, HSVToRGB(HSVColor{H: 240, S: 1, V: 1}), 1e-9)
}

func TestHSVToRGB_WrapsNegativeHue(t *testing.T) {
	requireRGB(t, HSVToRGB(HSVColor{H: 300, S: 1, V: 1}), HSVToRGB(HSVColor{H: -60, S: 1, V: 1}), 1e-9)
	requireRGB(t, HSVToRGB(HSVColor{H: 30, S: 0.5, V: 0.5}), HSVToRGB(HSVColor{H: 750, S: 0.5, V: 0.5}), 1e-9)
}

func TestHSVToRGB_ZeroSaturation(t *testing.T) {
	requireRGB(t, RGBColor{R: 127.5, G: 127.5, B: 127.5}, HSVToRGB(HSVColor{H: 200, S: 0, V: 0.5}), 1e-9)
}

func TestHSVToRGB_MatchesColorful(t *testing.T) {
	for h := 0.0; h < 360; h += 7.5 {
		for _, s := range []float64{0.1, 0.5, 1} {
			for _, v := range []float64{0.2, 0.75, 1} {
				ref := colorful.Hsv(h, s, v)
				got := HSVToRGB(HSVColor{H: h, S: s, V: v})
				requireRGB(t, RGBColor{R: ref.R * 255, G: ref.G * 255, B: ref.B * 255}, got, 1e-6)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for r := 0.0; r <= 255; r += 17 {
		for g := 0.0; g <= 255; g += 15 {
			for b := 0.0; b <= 255; b += 51 {
				if r == g && g == b {
					continue
				}
				in := RGBColor{R: r, G: g, B: b}
				requireRGB(t, in, HSVToRGB(RGBToHSV(in)), 1e-3)
			}
		}
	}
}

func TestFormatCSS(t *testing.T) {
	tests := []struct {
		name string
		in   RGBColor
		rgb  string
		hex  string
	}{
		{"red", RGBColor{R: 255}, "rgb(255, 0, 0)", "#ff0000"},
		{"floors", RGBColor{R: 15.9, G: 16.2, B: 200.99}, "rgb(15, 16, 200)", "#0f10c8"},
		{"clamps overflow", RGBColor{R: 255.4, G: -0.2, B: 300}, "rgb(255, 0, 255)", "#ff00ff"},
		{"black", RGBColor{}, "rgb(0, 0, 0)", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			css := FormatCSS(tt.in)
			assert.Equal(t, tt.rgb, css.RGB)
			assert.Equal(t, tt.hex, css.Hex)
		})
	}
}

func TestHSVColorImplementsColor(t *testing.T) {
	var c color.Color = HSVColor{H: 120, S: 1, V: 1}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, n)

	back := HSVModel.Convert(color.NRGBA{B: 255, A: 255}).(HSVColor)
	assert.InDelta(t, 240.0, back.H, 1e-9)
}

func TestParseColor(t *testing.T) {
	hsv, err := ParseColor("#00ff00")
	require.NoError(t, err)
	assert.InDelta(t, 120.0, hsv.H, 1e-6)

	hsv, err = ParseColor("#00f")
	require.NoError(t, err)
	assert.InDelta(t, 240.0, hsv.H, 1e-6)

	hsv, err = ParseColor("Orange")
	require.NoError(t, err)
	assert.InDelta(t, 165.0/255.0*60, hsv.H, 1e-9)
	requireRGB(t, RGBColor{R: 255, G: 165}, hsv.RGB(), 1e-6)

	_, err = ParseColor("not-a-color")
	require.ErrorIs(t, err, ErrUnknownColor)

	_, err = ParseColor("#zzzzzz")
	require.Error(t, err)
}

func TestNormalizeHue(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeHue(360))
	assert.Equal(t, 350.0, NormalizeHue(-10))
	assert.Equal(t, 10.0, NormalizeHue(730))
	assert.True(t, math.IsNaN(NormalizeHue(math.NaN())))
}
