package mcptools

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsv-picker/internal/picker"
	"hsv-picker/internal/render"
	"hsv-picker/pkg/colorutil"
)

func newToolset() *Toolset {
	return NewToolset(picker.DefaultConfig(), render.Options{})
}

func TestRGBToHSV(t *testing.T) {
	ts := newToolset()
	ctx := context.Background()

	_, out, err := ts.rgbToHSV(ctx, nil, RGBInput{R: 0, G: 255, B: 255})
	require.NoError(t, err)
	assert.InDelta(t, 180, out.H, 1e-9)
	assert.Equal(t, 1.0, out.S)
	assert.Equal(t, 1.0, out.V)
	assert.True(t, out.HueDefined)
	assert.Equal(t, "#00ffff", out.Hex)

	_, out, err = ts.rgbToHSV(ctx, nil, RGBInput{R: 90, G: 90, B: 90})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.H)
	assert.Equal(t, 0.0, out.S)
	assert.Equal(t, out.R, out.B)
}

func TestHSVToRGB(t *testing.T) {
	ts := newToolset()
	ctx := context.Background()

	_, out, err := ts.hsvToRGB(ctx, nil, HSVInput{H: 480, S: 1, V: 1})
	require.NoError(t, err)
	assert.Equal(t, 120.0, out.H)
	assert.Equal(t, uint8(255), out.G)
	assert.Equal(t, "rgb(0, 255, 0)", out.RGB)

	_, _, err = ts.hsvToRGB(ctx, nil, HSVInput{H: 0, S: 1.5, V: 1})
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, _, err = ts.hsvToRGB(ctx, nil, HSVInput{H: 0, S: 1, V: -0.1})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPickHue(t *testing.T) {
	ts := newToolset()

	_, out, err := ts.pickHue(context.Background(), nil, PointInput{X: 200, Y: 55})
	require.NoError(t, err)
	assert.InDelta(t, 90, out.Hue, 1e-9)
	assert.True(t, out.OnRing)

	// Same point against a 1000px widget: outside the ring.
	_, out, err = ts.pickHue(context.Background(), nil, PointInput{X: 200, Y: 55, Size: 1000})
	require.NoError(t, err)
	assert.False(t, out.OnRing)
}

func TestPickSaturationValue(t *testing.T) {
	ts := newToolset()

	_, out, err := ts.pickSaturationValue(context.Background(), nil, SVInput{X: 200, Y: 200, Hue: 240})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out.S, 0.01)
	assert.InDelta(t, 0.5, out.V, 0.01)
	assert.True(t, out.InSquare)
	assert.Equal(t, 240.0, out.Color.H)

	_, out, err = ts.pickSaturationValue(context.Background(), nil, SVInput{X: -50, Y: 999})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.S)
	assert.Equal(t, 0.0, out.V)
	assert.False(t, out.InSquare)
}

func TestRenderPicker(t *testing.T) {
	ts := newToolset()

	res, out, err := ts.renderPicker(context.Background(), nil, RenderInput{Color: "teal", Size: 96})
	require.NoError(t, err)
	assert.Equal(t, 96, out.Width)
	assert.Equal(t, 96, out.Height)
	assert.InDelta(t, 180, out.Color.H, 1e-9)
	assert.InDelta(t, 128, out.Color.G, 1)

	require.Len(t, res.Content, 2)
	img, ok := res.Content[0].(*mcp.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIMEType)
	decoded, err := png.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, 96, decoded.Bounds().Dx())

	_, _, err = ts.renderPicker(context.Background(), nil, RenderInput{Color: "chartreuse-ish"})
	assert.ErrorIs(t, err, colorutil.ErrUnknownColor)

	_, _, err = ts.renderPicker(context.Background(), nil, RenderInput{Color: "red", Size: 1e6})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRendererCachedPerSize(t *testing.T) {
	ts := newToolset()
	assert.Same(t, ts.renderer(0), ts.renderer(picker.DefaultSize))
	assert.NotSame(t, ts.renderer(0), ts.renderer(64))

	// Fractional sizes share the renderer of the rounded size.
	assert.Same(t, ts.renderer(64), ts.renderer(64.2))
	assert.Equal(t, 64.0, ts.renderer(63.7).Config().Size)
}

func TestRendererCacheIsBounded(t *testing.T) {
	ts := newToolset()
	for i := 0; i < 50; i++ {
		size := 100 + float64(i)*0.5
		_, _, err := ts.renderPicker(context.Background(), nil, RenderInput{Color: "red", Size: size})
		require.NoError(t, err)
		require.LessOrEqual(t, ts.cachedRenderers(), maxCachedRenderers)
	}
	assert.Equal(t, maxCachedRenderers, ts.cachedRenderers())

	// The most recent size is still cached; the first one was evicted.
	recent := ts.renderer(124.5)
	assert.Same(t, recent, ts.renderer(124.5))
	assert.Equal(t, maxCachedRenderers, ts.cachedRenderers())
	first := ts.renderer(100)
	assert.Equal(t, 100.0, first.Config().Size)
}

func TestServerListsTools(t *testing.T) {
	ctx := context.Background()
	server := mcp.NewServer(&mcp.Implementation{Name: "hsv-picker", Version: "test"}, nil)
	newToolset().Register(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	list, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"rgb_to_hsv", "hsv_to_rgb", "pick_hue", "pick_saturation_value", "render_picker",
	}, names)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "hsv_to_rgb",
		Arguments: map[string]any{"h": 240, "s": 1, "v": 1},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
