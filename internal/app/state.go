// Package app holds the picker session state and its change events.
package app

import (
	"math"
	"sync"

	"hsv-picker/pkg/colorutil"
)

// State holds the picker's current color, the single authoritative HSV value.
type State struct {
	mu sync.RWMutex

	color colorutil.HSVColor

	// Event listeners
	listeners map[EventType][]subscription
	nextID    int
}

type subscription struct {
	id       int
	listener EventListener
}

// EventType identifies different picker events.
type EventType int

const (
	// EventHueChanged carries the new hue (float64).
	EventHueChanged EventType = iota
	// EventSaturationValueChanged carries the new [2]float64{s, v}.
	EventSaturationValueChanged
	// EventColorChanged carries the composed colorutil.HSVColor.
	EventColorChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a state holding the initial color. The hue is normalized.
func NewState(initial colorutil.HSVColor) *State {
	initial.H = colorutil.NormalizeHue(initial.H)
	return &State{
		color:     initial,
		listeners: make(map[EventType][]subscription),
	}
}

// DefaultColor is the picker's starting color: fully saturated red.
func DefaultColor() colorutil.HSVColor {
	return colorutil.HSVColor{H: 0, S: 1, V: 1}
}

// On registers an event listener for the specified event type. The
// returned function removes it; calling it again does nothing.
func (s *State) On(event EventType, listener EventListener) (off func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[event] = append(s.listeners[event], subscription{id: id, listener: listener})
	return func() { s.off(event, id) }
}

func (s *State) off(event EventType, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.listeners[event]
	for i, sub := range subs {
		if sub.id == id {
			// Copy so a concurrent Emit keeps iterating its own snapshot.
			s.listeners[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for event.
func (s *State) ListenerCount(event EventType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners[event])
}

// OnColorChange registers a callback receiving the rgb() CSS string of the
// color after every change. The returned function removes it.
func (s *State) OnColorChange(callback func(css string)) (off func()) {
	return s.On(EventColorChanged, func(data interface{}) {
		if c, ok := data.(colorutil.HSVColor); ok {
			callback(c.CSS().RGB)
		}
	})
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	subs := s.listeners[event]
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.listener(data)
	}
}

// Color returns the current color.
func (s *State) Color() colorutil.HSVColor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// CSS returns the CSS strings of the current color.
func (s *State) CSS() colorutil.CSS {
	return s.Color().CSS()
}

// SetHue stores a new hue and emits change events. It reports whether the
// stored hue changed.
func (s *State) SetHue(hue float64) bool {
	hue = colorutil.NormalizeHue(hue)

	s.mu.Lock()
	if s.color.H == hue {
		s.mu.Unlock()
		return false
	}
	s.color.H = hue
	c := s.color
	s.mu.Unlock()

	s.Emit(EventHueChanged, hue)
	s.Emit(EventColorChanged, c)
	return true
}

// SetSaturationValue stores new saturation and value, clamped to [0, 1],
// and emits change events. It reports whether either changed.
func (s *State) SetSaturationValue(sat, val float64) bool {
	sat = clamp01(sat)
	val = clamp01(val)

	s.mu.Lock()
	if s.color.S == sat && s.color.V == val {
		s.mu.Unlock()
		return false
	}
	s.color.S = sat
	s.color.V = val
	c := s.color
	s.mu.Unlock()

	s.Emit(EventSaturationValueChanged, [2]float64{sat, val})
	s.Emit(EventColorChanged, c)
	return true
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
