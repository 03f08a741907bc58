// Package tone renders sound cues as beep streamers: one oscillator per
// cue with a frequency sweep and a decaying gain. It never opens an audio
// device.
package tone

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// SampleRate is the rate the synth mixes at.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveSaw
	WaveNoise
)

// Spec describes one synthesized cue: a frequency sweep with an exponential
// gain decay.
type Spec struct {
	Wave     Wave
	From, To float64       // start and end frequency in Hz
	Step     bool          // jump from From to To at a quarter of Duration instead of sweeping
	Gain     float64       // starting gain
	Duration time.Duration // total length
}

// Table holds the tone of every cue.
var Table = map[sound.Cue]Spec{
	sound.Impact:    {Wave: WaveTriangle, From: 200, To: 50, Gain: 0.2, Duration: 100 * time.Millisecond},
	sound.Score:     {Wave: WaveSine, From: 800, To: 1200, Step: true, Gain: 0.1, Duration: 150 * time.Millisecond},
	sound.Failure:   {Wave: WaveSaw, From: 100, To: 10, Gain: 0.2, Duration: 300 * time.Millisecond},
	sound.Explosion: {Wave: WaveNoise, From: 100, To: 1, Gain: 0.3, Duration: 400 * time.Millisecond},
	sound.Bounce:    {Wave: WaveSine, From: 400, To: 600, Gain: 0.1, Duration: 50 * time.Millisecond},
	sound.Launch:    {Wave: WaveTriangle, From: 300, To: 600, Gain: 0.15, Duration: 150 * time.Millisecond},
	sound.Heal:      {Wave: WaveSine, From: 300, To: 900, Gain: 0.1, Duration: 600 * time.Millisecond},
	sound.Roll:      {Wave: WaveSaw, From: 50, To: 20, Gain: 0.1, Duration: 100 * time.Millisecond},
	sound.Laser:     {Wave: WaveSquare, From: 880, To: 220, Gain: 0.08, Duration: 100 * time.Millisecond},
}

// streamer renders one Spec.
type streamer struct {
	t        Spec
	rate     beep.SampleRate
	total    int
	position int
	phase    float64
}

// New returns a streamer rendering t at the given sample rate.
func New(t Spec, rate beep.SampleRate) beep.Streamer {
	return &streamer{t: t, rate: rate, total: rate.N(t.Duration)}
}

func (o *streamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		progress := float64(o.position) / float64(o.total)

		freq := o.t.To
		switch {
		case o.t.Step:
			if progress < 0.25 {
				freq = o.t.From
			}
		case o.t.From > 0 && o.t.To > 0:
			freq = o.t.From * math.Pow(o.t.To/o.t.From, progress)
		}
		// Gain decays exponentially toward 1% of its start.
		gain := o.t.Gain * math.Pow(0.01, progress)

		var val float64
		switch o.t.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = (rand.Float64()*2 - 1) * (0.5 + 0.5*math.Sin(2*math.Pi*o.phase))
		}
		val *= gain
		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *streamer) Err() error { return nil }
