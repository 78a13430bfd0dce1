package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// note is one enveloped oscillator: a short attack and a linear fade out.
type note struct {
	freq   float64
	wave   Wave
	rate   beep.SampleRate
	phase  float64
	pos    int
	total  int
	attack int
}

// Note returns a streamer that plays freq for d.
func Note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &note{
		freq:   freq,
		wave:   wave,
		rate:   rate,
		total:  total,
		attack: min(rate.N(5*time.Millisecond), total/4),
	}
}

func (n *note) Stream(samples [][2]float64) (int, bool) {
	if n.pos >= n.total {
		return 0, false
	}
	for i := range samples {
		if n.pos >= n.total {
			return i, true
		}

		var v float64
		switch n.wave {
		case WaveSquare:
			v = 1
			if n.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(n.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * n.phase)
		}

		gain := float64(n.total-n.pos) / float64(n.total)
		if n.attack > 0 && n.pos < n.attack {
			gain *= float64(n.pos) / float64(n.attack)
		}
		v *= gain

		samples[i][0] = v
		samples[i][1] = v

		n.phase += n.freq / float64(n.rate)
		n.phase -= math.Floor(n.phase)
		n.pos++
	}
	return len(samples), true
}

func (n *note) Err() error { return nil }

// withVolume scales s by vol in [0, 1]. Zero is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type tone struct {
	freq float64
	ms   int
	wave Wave
}

// cueTones lists the notes played in sequence for each cue.
var cueTones = map[sim.Cue][]tone{
	sim.CueClick:          {{1200, 25, WaveSquare}},
	sim.CueStart:          {{523, 90, WaveTriangle}, {659, 90, WaveTriangle}, {784, 140, WaveTriangle}},
	sim.CuePause:          {{440, 80, WaveTriangle}, {330, 120, WaveTriangle}},
	sim.CueEnd:            {{523, 150, WaveTriangle}, {392, 150, WaveTriangle}, {262, 300, WaveTriangle}},
	sim.CueHit:            {{880, 40, WaveSquare}, {1320, 60, WaveSquare}},
	sim.CueMiss:           {{140, 120, WaveSquare}},
	sim.CueSpawn:          {{660, 30, WaveSine}},
	sim.CueEnemySpawn:     {{220, 40, WaveSine}},
	sim.CuePowerupSpawn:   {{988, 50, WaveSine}},
	sim.CuePowerupCollect: {{784, 60, WaveSine}, {1047, 60, WaveSine}, {1319, 90, WaveSine}},
	sim.CueShieldBreak:    {{600, 50, WaveSquare}, {300, 80, WaveSquare}},
	sim.CueLifeLost:       {{330, 90, WaveSquare}, {220, 90, WaveSquare}, {110, 180, WaveSquare}},
}

// CueStreamer builds the sound for cue at rate, or nil for an unknown cue.
func CueStreamer(cue sim.Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	tones, ok := cueTones[cue]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, Note(t.freq, time.Duration(t.ms)*time.Millisecond, t.wave, rate))
	}
	return withVolume(beep.Seq(parts...), vol)
}
