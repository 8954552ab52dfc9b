package audio

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHueTone(t *testing.T) {
	assert.Equal(t, 220.0, HueTone(0))
	assert.InDelta(t, 220*math.Sqrt2, HueTone(180), 1e-9)
	assert.InDelta(t, HueTone(90), HueTone(450), 1e-9)
	assert.Equal(t, 220.0, HueTone(math.NaN()))
}

func TestBlipLength(t *testing.T) {
	s, err := Blip(120, 10*time.Millisecond)
	require.NoError(t, err)

	buf := make([][2]float64, 128)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, sampleRate.N(10*time.Millisecond), total)
}

func TestUninitializedFeedbackIsSilent(t *testing.T) {
	f := NewFeedback()
	assert.NotPanics(t, func() {
		f.Play(30)
		f.Close()
	})
}
