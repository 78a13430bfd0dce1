// Package audio plays the short sound cues sessions publish. Audio is
// optional: without an output device the player stays silent.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/mat-arcade/internal/sim"
)

const (
	// SampleRate is the output rate of every cue.
	SampleRate = beep.SampleRate(44100)

	// DefaultVolume is the cue volume in [0, 1].
	DefaultVolume = 0.4
)

// Player mixes cue sounds onto the speaker.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ready  bool
	muted  bool
	volume float64
	logger *log.Logger
}

// NewPlayer creates a silent player. Call Init to open the output device.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: DefaultVolume,
		logger: logger.WithPrefix("audio"),
	}
}

// Init opens the speaker. On failure the player keeps working as a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		p.logger.Warn("audio disabled", "error", err)
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Ready reports whether an output device is open.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Play queues the sound for cue. Muted or uninitialized players ignore it.
func (p *Player) Play(cue sim.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.muted {
		return
	}
	s := CueStreamer(cue, SampleRate, p.volume)
	if s == nil {
		p.logger.Debug("no sound for cue", "cue", cue)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Handle plays the cue carried by a session event and ignores the rest.
func (p *Player) Handle(evt sim.Event) {
	if ce, ok := evt.(sim.CueEvent); ok {
		p.Play(ce.Cue)
	}
}

// SetMuted turns sound off or on. Muting also cuts sounds already playing.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if muted && p.ready {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// ToggleMute flips the mute flag and returns the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	muted := !p.muted
	p.mu.Unlock()

	p.SetMuted(muted)
	return muted
}

// Muted reports whether sound is off.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops all sounds. The speaker itself stays open for the process.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}
