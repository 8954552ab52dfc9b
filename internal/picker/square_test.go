package picker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsv-picker/pkg/colorutil"
	"hsv-picker/pkg/geometry"
)

func TestSquareSizing(t *testing.T) {
	sq := NewSquare(testConfig())
	want := math.Sqrt2*130 - 4
	assert.InDelta(t, want, sq.Side(), 1e-9)
	assert.InDelta(t, (400-want)/2, sq.Origin().X, 1e-9)
	assert.InDelta(t, (400-want)/2, sq.Origin().Y, 1e-9)

	assert.Equal(t, 0.0, SideLength(2))
	assert.Equal(t, 0.0, NewSquare(Config{Size: 400}).Side())
}

func TestSquareInversion(t *testing.T) {
	side := NewSquare(testConfig()).Side()
	half := side / 20 // selector is side/10 wide

	for s := 0.0; s <= 1.0001; s += 0.05 {
		for v := 0.0; v <= 1.0001; v += 0.05 {
			p := ParamsToPixel(s, v, side).Add(geometry.NewPoint2D(half, half))
			gotS, gotV := PixelToParams(p, side)
			require.InDelta(t, math.Min(s, 1), gotS, 1e-2)
			require.InDelta(t, math.Min(v, 1), gotV, 1e-2)
		}
	}
}

func TestParamsToPixelInset(t *testing.T) {
	p := ParamsToPixel(1, 1, 200)
	assert.InDelta(t, 190, p.X, 1e-9)
	assert.InDelta(t, -10, p.Y, 1e-9)

	p = ParamsToPixel(0, 0, 200)
	assert.InDelta(t, -10, p.X, 1e-9)
	assert.InDelta(t, 190, p.Y, 1e-9)
}

func TestPixelToParamsClamps(t *testing.T) {
	s, v := PixelToParams(geometry.NewPoint2D(-50, 250), 200)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, v)

	s, v = PixelToParams(geometry.NewPoint2D(500, -30), 200)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, 1.0, v)

	s, v = PixelToParams(geometry.NewPoint2D(50, 150), 200)
	assert.Equal(t, 0.25, s)
	assert.Equal(t, 0.25, v)

	s, v = PixelToParams(geometry.NewPoint2D(5, 5), 0)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, v)
}

func TestIsWithinBox(t *testing.T) {
	tests := []struct {
		name string
		p    geometry.Point2D
		side float64
		want bool
	}{
		{"top-left corner", geometry.NewPoint2D(0, 0), 100, true},
		{"bottom-right corner", geometry.NewPoint2D(100, 100), 100, true},
		{"inside", geometry.NewPoint2D(40, 60), 100, true},
		{"left of box", geometry.NewPoint2D(-0.5, 10), 100, false},
		{"below box", geometry.NewPoint2D(10, 100.5), 100, false},
		{"empty square", geometry.NewPoint2D(0, 0), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWithinBox(tt.p, tt.side))
		})
	}
}

func TestSquareContainsUsesWidgetCoordinates(t *testing.T) {
	sq := NewSquare(testConfig())
	o := sq.Origin()

	assert.True(t, sq.Contains(o))
	assert.False(t, sq.Contains(o.Sub(geometry.NewPoint2D(1, 0))))
	assert.True(t, sq.Contains(o.Add(geometry.NewPoint2D(sq.Side()-0.01, sq.Side()-0.01))))
	assert.False(t, sq.Contains(o.Add(geometry.NewPoint2D(sq.Side()+1, 0))))
}

func TestSVField(t *testing.T) {
	// inner radius 10: side = 10*sqrt(2) - 4, covering pixels 0..10.
	sq := NewSquare(Config{Size: 20, InnerRadiusPercentage: 100})
	side := sq.Side()

	var samples []FieldSample
	for s := range sq.SVField(240) {
		samples = append(samples, s)
	}
	require.Len(t, samples, 11*11)

	first := samples[0]
	assert.Equal(t, 0, first.X)
	assert.Equal(t, 0, first.Y)
	assert.Equal(t, colorutil.RGBColor{R: 255, G: 255, B: 255}, first.Color)

	last := samples[len(samples)-1]
	assert.Equal(t, 10, last.X)
	assert.Equal(t, 10, last.Y)
	want := colorutil.HSVToRGB(colorutil.HSVColor{H: 240, S: 10 / side, V: 1 - 10/side})
	assert.Equal(t, want, last.Color)
}

func TestSVFieldEmptySquare(t *testing.T) {
	sq := NewSquare(Config{Size: 400})
	for range sq.SVField(0) {
		t.Fatal("empty square must not yield samples")
	}
}

func TestPixelToParamsNaN(t *testing.T) {
	s, v := PixelToParams(geometry.NewPoint2D(math.NaN(), 1), 100)
	assert.Equal(t, 0.0, s)
	assert.InDelta(t, 0.99, v, 1e-9)

	s, v = PixelToParams(geometry.NewPoint2D(20, math.NaN()), 100)
	assert.Equal(t, 0.2, s)
	assert.Equal(t, 0.0, v)
}
