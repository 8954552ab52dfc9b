// Package audio plays short tones as pointer feedback.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"hsv-picker/pkg/colorutil"
)

const (
	sampleRate = beep.SampleRate(48000)

	// baseFrequency is A3; the ring spans one octave above it.
	baseFrequency = 220.0

	blipDuration = 60 * time.Millisecond
)

// HueTone returns the tone frequency for a hue. An undefined hue gets the
// base tone.
func HueTone(hue float64) float64 {
	if math.IsNaN(hue) {
		return baseFrequency
	}
	return baseFrequency * math.Pow(2, colorutil.NormalizeHue(hue)/360)
}

// Blip returns a sine tone of length d pitched for hue.
func Blip(hue float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, HueTone(hue))
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(d), sine), nil
}

// Feedback mixes blips into the speaker. Until Initialize succeeds every
// Play is a no-op.
type Feedback struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewFeedback creates an uninitialized player.
func NewFeedback() *Feedback {
	return &Feedback{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (f *Feedback) Initialize() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

// Play queues a blip for hue.
func (f *Feedback) Play(hue float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	s, err := Blip(hue, blipDuration)
	if err != nil {
		return
	}
	speaker.Lock()
	f.mixer.Add(s)
	speaker.Unlock()
}

// Close silences pending blips.
func (f *Feedback) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Lock()
	f.mixer.Clear()
	speaker.Unlock()
	f.initialized = false
}
