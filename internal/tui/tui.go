// Package tui renders the picker in a terminal with tcell. Each cell shows
// two vertically stacked pixels using the upper half block.
package tui

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"hsv-picker/internal/app"
	"hsv-picker/internal/picker"
	"hsv-picker/internal/render"
	"hsv-picker/pkg/geometry"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'

	// pickerRow is the first screen row of the picker; row 0 is the status line.
	pickerRow = 1
)

// Player receives pointer feedback.
type Player interface {
	Play(hue float64)
}

// Picker drives a terminal picker.
type Picker struct {
	screen     tcell.Screen
	state      *app.State
	renderer   *render.Renderer
	controller *picker.Controller
	surface    *render.RasterSurface // last drawn frame, placed on the page
	player     Player

	pressed bool
}

// New creates a picker drawing on screen. player may be nil.
func New(screen tcell.Screen, cfg picker.Config, state *app.State, player Player) *Picker {
	r := render.NewRenderer(cfg, render.Options{ShowPreview: true})
	p := &Picker{
		screen:     screen,
		state:      state,
		renderer:   r,
		controller: picker.NewController(cfg, state, nil),
		player:     player,
	}
	p.place(image.NewRGBA(image.Rectangle{Max: r.FrameSize()}))
	return p
}

// place makes frame the drawn surface. Page space has one unit per column
// horizontally and two per row vertically.
func (p *Picker) place(frame *image.RGBA) {
	p.surface = render.NewRasterSurface(frame)
	p.surface.SetOrigin(geometry.NewPoint2D(0, pickerRow*2))
}

// Controller returns the interaction controller.
func (p *Picker) Controller() *picker.Controller { return p.controller }

// CellToWidget converts a screen cell to a widget point at the cell's
// horizontal start and vertical middle.
func (p *Picker) CellToWidget(col, row int) geometry.Point2D {
	return p.surface.Bounds().Local(float64(col), float64(row*2)+1)
}

// HandleEvent processes one event and reports whether the picker should quit.
func (p *Picker) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		}
	case *tcell.EventResize:
		p.screen.Sync()
	case *tcell.EventMouse:
		col, row := ev.Position()
		pt := p.CellToWidget(col, row)
		down := ev.Buttons()&tcell.Button1 != 0
		switch {
		case down && !p.pressed:
			p.pressed = true
			if p.controller.Press(pt) != picker.RegionNone {
				p.feedback()
			}
		case down:
			p.controller.Move(pt)
		case p.pressed:
			p.pressed = false
			if p.controller.Active() != picker.RegionNone {
				p.controller.Release()
				p.feedback()
			}
		}
	}
	return false
}

func (p *Picker) feedback() {
	if p.player != nil {
		p.player.Play(p.state.Color().H)
	}
}

func cellColor(c color.RGBA) (tcell.Color, bool) {
	if c.A == 0 {
		return tcell.ColorDefault, false
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)), true
}

// Draw paints the status line and the current frame, then shows the screen.
func (p *Picker) Draw() {
	p.screen.Clear()

	css := p.state.CSS()
	status := css.RGB + "  " + css.Hex + "  (q to quit)"
	col := 0
	for _, r := range status {
		p.screen.SetContent(col, 0, r, nil, tcell.StyleDefault)
		col++
	}

	frame := p.renderer.Frame(p.state.Color())
	p.place(frame)
	b := frame.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, style := cellContent(frame, x, y)
			p.screen.SetContent(x, pickerRow+y/2, r, nil, style)
		}
	}
	p.screen.Show()
}

// cellContent picks the glyph and style showing pixels (x, y) and (x, y+1).
func cellContent(frame *image.RGBA, x, y int) (rune, tcell.Style) {
	top, topOK := cellColor(frame.RGBAAt(x, y))
	bottom, bottomOK := cellColor(frame.RGBAAt(x, y+1))
	switch {
	case topOK && bottomOK:
		return upperHalf, tcell.StyleDefault.Foreground(top).Background(bottom)
	case topOK:
		return upperHalf, tcell.StyleDefault.Foreground(top)
	case bottomOK:
		return lowerHalf, tcell.StyleDefault.Foreground(bottom)
	default:
		return ' ', tcell.StyleDefault
	}
}

// Run draws and handles events until the user quits.
func (p *Picker) Run() {
	p.state.On(app.EventColorChanged, func(interface{}) { p.Draw() })
	p.Draw()
	for {
		ev := p.screen.PollEvent()
		if ev == nil || p.HandleEvent(ev) {
			return
		}
	}
}
