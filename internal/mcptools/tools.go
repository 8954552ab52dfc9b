// Package mcptools exposes the picker's color math and rendering as MCP tools.
package mcptools

import (
	"bytes"
	"container/list"
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"hsv-picker/internal/picker"
	"hsv-picker/internal/render"
	"hsv-picker/pkg/colorutil"
	"hsv-picker/pkg/geometry"
)

const (
	// maxRenderSize bounds render_picker output.
	maxRenderSize = 2048

	// maxCachedRenderers bounds the renderers kept for reuse, each holding
	// layers of up to maxRenderSize² pixels.
	maxCachedRenderers = 4
)

// ErrOutOfRange is returned for saturation or value outside [0, 1].
var ErrOutOfRange = errors.New("out of range")

// Toolset holds the widget geometry the tools work against.
type Toolset struct {
	cfg  picker.Config
	opts render.Options

	mu        sync.Mutex
	renderers map[int]*list.Element // size -> element holding *cachedRenderer
	lru       *list.List             // front = most recently used
}

type cachedRenderer struct {
	size     int
	renderer *render.Renderer
}

// NewToolset creates tools for widgets configured like cfg. Calls may
// override the widget size.
func NewToolset(cfg picker.Config, opts render.Options) *Toolset {
	return &Toolset{
		cfg:       cfg,
		opts:      opts,
		renderers: make(map[int]*list.Element),
		lru:       list.New(),
	}
}

// Register adds every tool to server.
func (ts *Toolset) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rgb_to_hsv",
		Description: "Convert an RGB color with 0-255 channels to hue (degrees), saturation and value (0-1).",
		Annotations: &mcp.ToolAnnotations{Title: "RGB to HSV", ReadOnlyHint: true},
	}, ts.rgbToHSV)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hsv_to_rgb",
		Description: "Convert hue (degrees), saturation and value (0-1) to 8-bit RGB and CSS strings.",
		Annotations: &mcp.ToolAnnotations{Title: "HSV to RGB", ReadOnlyHint: true},
	}, ts.hsvToRGB)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pick_hue",
		Description: "Return the hue selected by a pointer at widget coordinates (x, y) on the hue ring, and whether the point lies on the ring.",
		Annotations: &mcp.ToolAnnotations{Title: "Pick Hue", ReadOnlyHint: true},
	}, ts.pickHue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pick_saturation_value",
		Description: "Return the saturation and value selected by a pointer at widget coordinates (x, y) in the square, clamped to [0, 1].",
		Annotations: &mcp.ToolAnnotations{Title: "Pick Saturation/Value", ReadOnlyHint: true},
	}, ts.pickSaturationValue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_picker",
		Description: "Render the picker showing a color as a PNG image. The color is a #hex triplet or a CSS color name.",
		Annotations: &mcp.ToolAnnotations{Title: "Render Picker", ReadOnlyHint: true},
	}, ts.renderPicker)
}

func (ts *Toolset) config(size float64) picker.Config {
	cfg := ts.cfg
	if size > 0 {
		cfg.Size = size
	}
	return cfg
}

// renderer returns a renderer for size rounded to whole pixels, reusing
// recently used ones and evicting the least recently used beyond
// maxCachedRenderers.
func (ts *Toolset) renderer(size float64) *render.Renderer {
	cfg := ts.config(size)
	key := max(1, int(math.Round(cfg.Size)))

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if el, ok := ts.renderers[key]; ok {
		ts.lru.MoveToFront(el)
		return el.Value.(*cachedRenderer).renderer
	}

	cfg.Size = float64(key)
	r := render.NewRenderer(cfg, ts.opts)
	ts.renderers[key] = ts.lru.PushFront(&cachedRenderer{size: key, renderer: r})
	for ts.lru.Len() > maxCachedRenderers {
		oldest := ts.lru.Back()
		ts.lru.Remove(oldest)
		delete(ts.renderers, oldest.Value.(*cachedRenderer).size)
	}
	return r
}

// cachedRenderers returns the number of renderers held for reuse.
func (ts *Toolset) cachedRenderers() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.lru.Len()
}

// ColorOutput describes one color in every notation the picker uses.
type ColorOutput struct {
	H          float64 `json:"h"`
	S          float64 `json:"s"`
	V          float64 `json:"v"`
	HueDefined bool    `json:"hue_defined"`
	R          uint8   `json:"r"`
	G          uint8   `json:"g"`
	B          uint8   `json:"b"`
	RGB        string  `json:"rgb"`
	Hex        string  `json:"hex"`
}

func describe(c colorutil.HSVColor) ColorOutput {
	out := ColorOutput{H: c.H, S: c.S, V: c.V, HueDefined: !math.IsNaN(c.H)}
	if !out.HueDefined {
		out.H = 0
	}
	n := c.RGB().NRGBA()
	css := c.CSS()
	out.R, out.G, out.B = n.R, n.G, n.B
	out.RGB, out.Hex = css.RGB, css.Hex
	return out
}

// --- rgb_to_hsv ---

type RGBInput struct {
	R float64 `json:"r" jsonschema:"red channel, 0-255"`
	G float64 `json:"g" jsonschema:"green channel, 0-255"`
	B float64 `json:"b" jsonschema:"blue channel, 0-255"`
}

func (ts *Toolset) rgbToHSV(_ context.Context, _ *mcp.CallToolRequest, in RGBInput) (*mcp.CallToolResult, ColorOutput, error) {
	return nil, describe(colorutil.RGBToHSV(colorutil.RGBColor{R: in.R, G: in.G, B: in.B})), nil
}

// --- hsv_to_rgb ---

type HSVInput struct {
	H float64 `json:"h" jsonschema:"hue in degrees, wrapped into [0, 360)"`
	S float64 `json:"s" jsonschema:"saturation, 0-1"`
	V float64 `json:"v" jsonschema:"value, 0-1"`
}

func (ts *Toolset) hsvToRGB(_ context.Context, _ *mcp.CallToolRequest, in HSVInput) (*mcp.CallToolResult, ColorOutput, error) {
	if err := checkUnit("saturation", in.S); err != nil {
		return nil, ColorOutput{}, err
	}
	if err := checkUnit("value", in.V); err != nil {
		return nil, ColorOutput{}, err
	}
	c := colorutil.HSVColor{H: colorutil.NormalizeHue(in.H), S: in.S, V: in.V}
	return nil, describe(c), nil
}

func checkUnit(name string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("%s %v: %w", name, v, ErrOutOfRange)
	}
	return nil
}

// --- pick_hue ---

type PointInput struct {
	X    float64 `json:"x" jsonschema:"horizontal widget coordinate in pixels"`
	Y    float64 `json:"y" jsonschema:"vertical widget coordinate in pixels, growing downward"`
	Size float64 `json:"size,omitempty" jsonschema:"widget size in pixels; the server default when omitted"`
}

type HueOutput struct {
	Hue    float64 `json:"hue"`
	OnRing bool    `json:"on_ring"`
}

func (ts *Toolset) pickHue(_ context.Context, _ *mcp.CallToolRequest, in PointInput) (*mcp.CallToolResult, HueOutput, error) {
	ring := picker.NewRing(ts.config(in.Size))
	p := geometry.NewPoint2D(in.X, in.Y)
	return nil, HueOutput{Hue: ring.PixelToHue(p), OnRing: ring.Contains(p)}, nil
}

// --- pick_saturation_value ---

type SVInput struct {
	X    float64 `json:"x" jsonschema:"horizontal widget coordinate in pixels"`
	Y    float64 `json:"y" jsonschema:"vertical widget coordinate in pixels, growing downward"`
	Size float64 `json:"size,omitempty" jsonschema:"widget size in pixels; the server default when omitted"`
	Hue  float64 `json:"hue,omitempty" jsonschema:"hue used to describe the picked color"`
}

type SVOutput struct {
	S        float64     `json:"s"`
	V        float64     `json:"v"`
	InSquare bool        `json:"in_square"`
	Color    ColorOutput `json:"color"`
}

func (ts *Toolset) pickSaturationValue(_ context.Context, _ *mcp.CallToolRequest, in SVInput) (*mcp.CallToolResult, SVOutput, error) {
	sq := picker.NewSquare(ts.config(in.Size))
	p := geometry.NewPoint2D(in.X, in.Y)
	s, v := sq.Params(p)
	return nil, SVOutput{
		S:        s,
		V:        v,
		InSquare: sq.Contains(p),
		Color:    describe(colorutil.HSVColor{H: colorutil.NormalizeHue(in.Hue), S: s, V: v}),
	}, nil
}

// --- render_picker ---

type RenderInput struct {
	Color string  `json:"color" jsonschema:"color to show, #rrggbb, #rgb or a CSS color name"`
	Size  float64 `json:"size,omitempty" jsonschema:"widget size in pixels; the server default when omitted"`
}

type RenderOutput struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Color  ColorOutput `json:"color"`
}

func (ts *Toolset) renderPicker(_ context.Context, _ *mcp.CallToolRequest, in RenderInput) (*mcp.CallToolResult, RenderOutput, error) {
	if in.Size > maxRenderSize {
		return nil, RenderOutput{}, fmt.Errorf("size %v exceeds %d: %w", in.Size, maxRenderSize, ErrOutOfRange)
	}
	c, err := colorutil.ParseColor(in.Color)
	if err != nil {
		return nil, RenderOutput{}, err
	}

	dc, err := ts.renderer(in.Size).Snapshot(c)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	defer dc.Close()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, RenderOutput{}, fmt.Errorf("encoding png: %w", err)
	}

	out := RenderOutput{Width: dc.Width(), Height: dc.Height(), Color: describe(c)}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.ImageContent{Data: buf.Bytes(), MIMEType: "image/png"},
			&mcp.TextContent{Text: fmt.Sprintf("%s (%s), %dx%d", out.Color.Hex, out.Color.RGB, out.Width, out.Height)},
		},
	}, out, nil
}
