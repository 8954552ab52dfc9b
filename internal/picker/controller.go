package picker

import (
	"hsv-picker/pkg/colorutil"
	"hsv-picker/pkg/geometry"
)

// Region identifies a draggable part of the picker.
type Region int

const (
	RegionNone Region = iota
	RegionRing
	RegionSquare
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionRing:
		return "ring"
	case RegionSquare:
		return "square"
	default:
		return "none"
	}
}

// DragState is the per-region interaction state.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

// String returns the state name.
func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Store holds the picker's current color. Setters report whether the stored
// value changed and notify listeners only when it did.
type Store interface {
	Color() colorutil.HSVColor
	SetHue(hue float64) bool
	SetSaturationValue(sat, val float64) bool
}

// PointerCapture lets a region keep receiving move and release events while
// the pointer is outside the widget. The host subscribes on Capture and
// unsubscribes on Release.
type PointerCapture interface {
	Capture(region Region)
	Release(region Region)
}

// Controller converts pointer events into color updates. At most one region
// is dragging at a time; a press while another region drags is ignored.
//
// All points are widget-local.
type Controller struct {
	ring    Ring
	square  Square
	store   Store
	capture PointerCapture

	active Region
}

// NewController creates a controller for the given geometry. capture may be
// nil when the host already delivers drag events globally.
func NewController(cfg Config, store Store, capture PointerCapture) *Controller {
	return &Controller{
		ring:    NewRing(cfg),
		square:  NewSquare(cfg),
		store:   store,
		capture: capture,
	}
}

// Ring returns the ring geometry.
func (c *Controller) Ring() Ring { return c.ring }

// Square returns the square geometry.
func (c *Controller) Square() Square { return c.square }

// Active returns the dragging region, or RegionNone.
func (c *Controller) Active() Region { return c.active }

// State returns the drag state of region.
func (c *Controller) State(region Region) DragState {
	if region != RegionNone && c.active == region {
		return Dragging
	}
	return Idle
}

// HitTest returns the region under p.
func (c *Controller) HitTest(p geometry.Point2D) Region {
	switch {
	case c.ring.Contains(p):
		return RegionRing
	case c.square.Contains(p):
		return RegionSquare
	default:
		return RegionNone
	}
}

// Press starts a drag on the region under p and applies p immediately.
// It returns the region that started dragging, or RegionNone.
func (c *Controller) Press(p geometry.Point2D) Region {
	if c.active != RegionNone {
		return RegionNone
	}

	region := c.HitTest(p)
	if region == RegionNone {
		return RegionNone
	}

	c.active = region
	if c.capture != nil {
		c.capture.Capture(region)
	}
	c.apply(p)
	return region
}

// Move updates the dragging region's parameter from p. The hit test is not
// re-applied, so the pointer may leave the region. It reports whether the
// stored color changed; moves without an active drag are ignored.
func (c *Controller) Move(p geometry.Point2D) bool {
	if c.active == RegionNone {
		return false
	}
	return c.apply(p)
}

// Release ends any drag.
func (c *Controller) Release() {
	region := c.active
	if region == RegionNone {
		return
	}
	c.active = RegionNone
	if c.capture != nil {
		c.capture.Release(region)
	}
}

func (c *Controller) apply(p geometry.Point2D) bool {
	switch c.active {
	case RegionRing:
		hue := c.ring.PixelToHue(p)
		if c.store.Color().H == hue {
			return false
		}
		return c.store.SetHue(hue)

	case RegionSquare:
		sat, val := c.square.Params(p)
		cur := c.store.Color()
		if cur.S == sat && cur.V == val {
			return false
		}
		return c.store.SetSaturationValue(sat, val)
	}
	return false
}
