package audio

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/mat-arcade/internal/sim"
)

func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestNoteLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveTriangle} {
		n, peak := drain(Note(440, 100*time.Millisecond, w, rate))
		if n != 800 {
			t.Errorf("wave %d: %d samples, expected 800", w, n)
		}
		if peak > 1 || peak == 0 {
			t.Errorf("wave %d: peak %f outside (0, 1]", w, peak)
		}
	}
}

func TestEveryCueHasSound(t *testing.T) {
	cues := []sim.Cue{
		sim.CueClick, sim.CueStart, sim.CuePause, sim.CueEnd,
		sim.CueHit, sim.CueMiss, sim.CueSpawn, sim.CueEnemySpawn,
		sim.CuePowerupSpawn, sim.CuePowerupCollect, sim.CueShieldBreak,
		sim.CueLifeLost,
	}
	rate := beep.SampleRate(8000)
	for _, cue := range cues {
		s := CueStreamer(cue, rate, 0.5)
		if s == nil {
			t.Errorf("no sound for %q", cue)
			continue
		}
		n, _ := drain(s)
		if n == 0 || n > rate.N(time.Second) {
			t.Errorf("%q: %d samples, expected a short cue", cue, n)
		}
	}

	if CueStreamer("unknown", rate, 0.5) != nil {
		t.Error("unknown cue should have no sound")
	}
}

func TestSilentVolume(t *testing.T) {
	_, peak := drain(CueStreamer(sim.CueHit, beep.SampleRate(8000), 0))
	if peak != 0 {
		t.Errorf("peak = %f at zero volume", peak)
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer(log.New(io.Discard))
	if p.Ready() {
		t.Fatal("player should not be ready before Init")
	}

	// Uninitialized players are no-ops
	p.Play(sim.CueHit)
	p.Handle(sim.CueEvent{Cue: sim.CueMiss})
	p.Handle(sim.StatsChanged{})
	p.Close()

	if !p.ToggleMute() || !p.Muted() {
		t.Error("ToggleMute should mute")
	}
	if p.ToggleMute() || p.Muted() {
		t.Error("second ToggleMute should unmute")
	}
}
