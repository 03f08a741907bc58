// Package synth plays sound cues on the system speaker through beep. It is
// the only package that links the audio driver; games only see
// sound.Player.
package synth

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/arcadeloop/internal/sound"
	"github.com/vovakirdan/arcadeloop/internal/sound/tone"
)

var _ sound.Player = (*Synth)(nil)

// Synth plays cues through the system speaker.
type Synth struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
}

// New initializes the speaker. Volume is linear in (0, 1]. When the
// audio device cannot be opened the error is returned together with a
// silent synth, so callers may log and keep going.
func New(volume float64) (*Synth, error) {
	s := &Synth{mixer: &beep.Mixer{}, volume: volume}
	if err := speaker.Init(tone.SampleRate, tone.SampleRate.N(50*time.Millisecond)); err != nil {
		return s, err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return s, nil
}

// Play queues the cue's tone on the mixer.
func (s *Synth) Play(c sound.Cue) {
	t, ok := tone.Table[c]
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	vol := &effects.Volume{
		Streamer: tone.New(t, tone.SampleRate),
		Base:     2,
		Volume:   math.Log2(math.Max(s.volume, 0.01)),
		Silent:   s.volume <= 0,
	}
	speaker.Lock()
	s.mixer.Add(vol)
	speaker.Unlock()
}

// Close stops every queued sound.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.ready = false
}
