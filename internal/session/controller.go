package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mat-arcade/internal/matinput"
	"github.com/vovakirdan/mat-arcade/internal/sched"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// DefaultFrame is the frame interval at 60 fps.
const DefaultFrame = time.Second / 60

// Options configures a Controller.
type Options struct {
	Frame  time.Duration   // frame callback interval, DefaultFrame if zero
	Seed   int64           // random seed for spawn placement
	Pads   matinput.Source // mat input, nil to play with keys only
	Group  int             // mat group, matinput.DefaultGroup if zero
	Bus    *sim.Bus        // event bus, a new one if nil
	Logger *log.Logger
}

// Controller owns a session's state and drives it through
// Idle → Playing ⇄ Paused → Ended.
//
// All methods must be called from one goroutine. Mat presses arrive on a
// background reader and are only applied when Advance drains them.
type Controller struct {
	rules  Rules
	frame  FrameRules // nil when the variant has no frame callback
	state  *sim.State
	clock  *sched.Clock
	bus    *sim.Bus
	rng    *rand.Rand
	logger *log.Logger

	frameInterval time.Duration
	phase         sim.Phase

	countdown *sched.Handle
	spawners  []*sched.Handle
	frameH    *sched.Handle

	// Time left on each periodic timer when the session was paused.
	countdownLeft time.Duration
	spawnLeft     []time.Duration
	frameLeft     time.Duration

	pads      matinput.Source
	group     int
	sub       matinput.Subscription
	matStatus matinput.Status

	summary *sim.Summary
}

// New creates an idle controller for the given rules.
func New(rules Rules, state *sim.State, opts Options) *Controller {
	if opts.Frame <= 0 {
		opts.Frame = DefaultFrame
	}
	if opts.Group == 0 {
		opts.Group = matinput.DefaultGroup
	}
	if opts.Bus == nil {
		opts.Bus = sim.NewBus()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	c := &Controller{
		rules:         rules,
		state:         state,
		clock:         sched.NewClock(),
		bus:           opts.Bus,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		logger:        opts.Logger.With("game", rules.ID()),
		frameInterval: opts.Frame,
		pads:          opts.Pads,
		group:         opts.Group,
		matStatus:     matinput.StatusUnavailable,
	}
	if fr, ok := rules.(FrameRules); ok {
		c.frame = fr
	}
	if c.pads != nil {
		c.matStatus = matinput.StatusConnected
	}
	return c
}

// State returns the session state. Rules mutate it; the platform reads it.
func (c *Controller) State() *sim.State { return c.state }

// Clock returns the session clock.
func (c *Controller) Clock() *sched.Clock { return c.clock }

// Rand returns the session's random source.
func (c *Controller) Rand() *rand.Rand { return c.rng }

// Bus returns the event bus.
func (c *Controller) Bus() *sim.Bus { return c.bus }

// Logger returns the session logger.
func (c *Controller) Logger() *log.Logger { return c.logger }

// Phase returns the lifecycle stage.
func (c *Controller) Phase() sim.Phase { return c.phase }

// MatStatus returns the current mat indicator state.
func (c *Controller) MatStatus() matinput.Status { return c.matStatus }

// Subscribed reports whether a mat subscription is open.
func (c *Controller) Subscribed() bool { return c.sub != nil }

// Summary returns the result of the last ended session.
func (c *Controller) Summary() (sim.Summary, bool) {
	if c.summary == nil {
		return sim.Summary{}, false
	}
	return *c.summary, true
}

// Emit publishes an event to observers.
func (c *Controller) Emit(evt sim.Event) {
	c.bus.Publish(evt)
}

// Cue asks the platform to play a sound.
func (c *Controller) Cue(cue sim.Cue) {
	c.bus.Publish(sim.CueEvent{Cue: cue})
}

// EmitStats publishes the HUD counters.
func (c *Controller) EmitStats() {
	c.bus.Publish(sim.StatsOf(c.state))
}

// Spawn adds an entity stamped with the current session time.
func (c *Controller) Spawn(e *sim.Entity) *sim.Entity {
	e.SpawnedAt = c.clock.Now()
	c.state.Spawn(e)
	c.bus.Publish(sim.EntitySpawned{ID: e.ID, Kind: e.Kind, Powerup: e.Powerup, Cell: e.Cell})
	return e
}

// Remove takes an entity out of play and reports it. Removing an entity
// that is already gone does nothing.
func (c *Controller) Remove(id int, reason sim.RemoveReason) bool {
	e, ok := c.state.Remove(id)
	if !ok {
		return false
	}
	c.bus.Publish(sim.EntityRemoved{ID: e.ID, Kind: e.Kind, Cell: e.Cell, Reason: reason})
	return true
}

// Start begins a new session from Idle or Ended. It does nothing while a
// session is playing or paused.
func (c *Controller) Start() {
	if c.phase == sim.PhasePlaying || c.phase == sim.PhasePaused {
		return
	}

	c.clock.Reset()
	c.state.Reset()
	c.rules.Reset(c)
	c.state.Playing = true
	c.summary = nil

	from := c.phase
	c.phase = sim.PhasePlaying
	c.logger.Info("session started")
	c.Emit(sim.PhaseChanged{From: from, To: sim.PhasePlaying})
	c.Cue(sim.CueStart)
	c.EmitStats()

	c.arm()
	c.subscribe()
}

// Pause freezes the session. Timers are canceled and the mat subscription
// is closed; the clock does not advance until Resume.
func (c *Controller) Pause() {
	if c.phase != sim.PhasePlaying {
		return
	}
	c.disarm()
	c.unsubscribe()
	c.state.Paused = true
	c.phase = sim.PhasePaused
	c.Emit(sim.PhaseChanged{From: sim.PhasePlaying, To: sim.PhasePaused})
	c.Cue(sim.CuePause)
}

// Resume continues a paused session.
func (c *Controller) Resume() {
	if c.phase != sim.PhasePaused {
		return
	}
	c.state.Paused = false
	c.phase = sim.PhasePlaying
	c.Emit(sim.PhaseChanged{From: sim.PhasePaused, To: sim.PhasePlaying})
	c.Cue(sim.CueClick)
	c.arm()
	c.subscribe()
}

// TogglePause pauses a playing session or resumes a paused one.
func (c *Controller) TogglePause() {
	switch c.phase {
	case sim.PhasePlaying:
		c.Pause()
	case sim.PhasePaused:
		c.Resume()
	}
}

// End stops the session and publishes its summary. Only a playing or
// paused session can end; the state stays frozen until the next Start.
func (c *Controller) End() {
	if c.phase != sim.PhasePlaying && c.phase != sim.PhasePaused {
		return
	}
	from := c.phase

	c.teardown()
	c.state.Playing = false
	c.state.Paused = false

	summary := sim.Summary{
		Game:     c.rules.ID(),
		Score:    c.state.Score,
		Accuracy: c.state.Accuracy(),
		MaxCombo: c.state.MaxCombo,
		Combo:    c.state.Combo,
		Kills:    c.state.Kills,
		Attempts: c.state.Attempts,
		Elapsed:  c.state.Elapsed,
	}
	c.summary = &summary
	c.phase = sim.PhaseEnded

	c.logger.Info("session ended",
		"score", summary.Score,
		"accuracy", summary.Accuracy,
		"max_combo", summary.MaxCombo,
		"elapsed", summary.Elapsed)
	c.EmitStats()
	c.Emit(sim.PhaseChanged{From: from, To: sim.PhaseEnded})
	c.Cue(sim.CueEnd)
	c.Emit(sim.SessionEnded{Summary: summary})
}

// Restart tears down any running session and starts a new one.
func (c *Controller) Restart() {
	c.stop()
	c.Start()
}

// Quit tears down any running session and returns to Idle with a clean state.
func (c *Controller) Quit() {
	c.stop()
	c.state.Reset()
	c.rules.Reset(c)
	if c.phase != sim.PhaseIdle {
		from := c.phase
		c.phase = sim.PhaseIdle
		c.Emit(sim.PhaseChanged{From: from, To: sim.PhaseIdle})
	}
}

// stop moves a playing or paused session to Ended without a summary.
func (c *Controller) stop() {
	if c.phase == sim.PhasePlaying || c.phase == sim.PhasePaused {
		c.teardown()
		c.state.Playing = false
		c.state.Paused = false
		c.phase = sim.PhaseEnded
	}
}

// Press selects a cell. Ignored unless the session is playing.
func (c *Controller) Press(cell int) {
	if c.phase != sim.PhasePlaying {
		return
	}
	if cell < 0 || cell >= c.rules.Cells() {
		return
	}
	c.rules.Press(c, cell)
	if c.phase == sim.PhasePlaying {
		c.EmitStats()
	}
}

// Advance applies pending mat presses and then moves the session clock
// forward by dt. Ignored unless the session is playing.
func (c *Controller) Advance(dt time.Duration) {
	if c.phase != sim.PhasePlaying {
		return
	}
	c.drainPads()
	if c.phase != sim.PhasePlaying {
		return
	}
	c.clock.Advance(dt)
}

// arm schedules the countdown, the spawners and the frame callback.
// Handles that are still active are left alone so nothing runs twice.
// Timers interrupted by a pause first fire after the time they had left.
func (c *Controller) arm() {
	if !c.countdown.Active() {
		c.countdown = c.every(c.countdownLeft, func() time.Duration { return time.Second }, c.tickSecond)
	}

	specs := c.rules.Spawners()
	if len(c.spawners) != len(specs) {
		c.spawners = make([]*sched.Handle, len(specs))
	}
	for i, sp := range specs {
		if c.spawners[i].Active() {
			continue
		}
		var left time.Duration
		if i < len(c.spawnLeft) {
			left = c.spawnLeft[i]
		}
		sp := sp
		c.spawners[i] = c.every(left,
			func() time.Duration { return sp.Period(c.state.Elapsed) },
			func() { sp.Spawn(c) },
		)
	}

	if c.frame != nil && !c.frameH.Active() {
		c.frameH = c.every(c.frameLeft, func() time.Duration { return c.frameInterval }, func() { c.frame.Frame(c) })
	}
	c.forgetLeft()
}

// every starts a repeating timer. A zero left means a full first period.
func (c *Controller) every(left time.Duration, period func() time.Duration, fn func()) *sched.Handle {
	if left <= 0 {
		return c.clock.EveryFunc(period, fn)
	}
	return c.clock.EveryFuncAfter(left, period, fn)
}

// disarm cancels the session's periodic timers and remembers how long each
// had left. Target expiries stay scheduled and resume with the clock.
func (c *Controller) disarm() {
	c.countdownLeft = c.countdown.Remaining()
	c.countdown.Cancel()
	c.spawnLeft = c.spawnLeft[:0]
	for _, h := range c.spawners {
		c.spawnLeft = append(c.spawnLeft, h.Remaining())
		h.Cancel()
	}
	c.frameLeft = c.frameH.Remaining()
	c.frameH.Cancel()
}

func (c *Controller) forgetLeft() {
	c.countdownLeft, c.frameLeft = 0, 0
	c.spawnLeft = c.spawnLeft[:0]
}

// teardown stops every timer and the mat subscription.
func (c *Controller) teardown() {
	c.disarm()
	c.forgetLeft()
	c.clock.Reset()
	c.unsubscribe()
}

func (c *Controller) tickSecond() {
	c.state.Tick(time.Second)
	c.rules.Countdown(c)
	if c.phase == sim.PhasePlaying {
		c.EmitStats()
	}
}

func (c *Controller) setMatStatus(st matinput.Status, msg string) {
	if st == c.matStatus {
		return
	}
	c.matStatus = st
	c.Emit(sim.MatStatus{Status: st, Message: msg})
}

// subscribe opens the mat subscription unless one is already open.
func (c *Controller) subscribe() {
	if c.pads == nil || c.sub != nil {
		return
	}
	sub, err := c.pads.Subscribe(context.Background(), c.group)
	if err != nil {
		c.logger.Warn("mat listener failed", "source", c.pads.Name(), "error", err)
		c.setMatStatus(matinput.StatusListenFailed, err.Error())
		return
	}
	c.sub = sub
	c.logger.Debug("mat listener attached", "source", c.pads.Name(), "group", c.group)
	c.setMatStatus(matinput.StatusListening, "")
}

func (c *Controller) unsubscribe() {
	if c.sub == nil {
		return
	}
	c.sub.Close()
	c.sub = nil
	if c.pads != nil {
		c.setMatStatus(matinput.StatusConnected, "")
	}
}

// drainPads applies every queued press. Pads that map to no cell are ignored.
func (c *Controller) drainPads() {
	for c.sub != nil && c.phase == sim.PhasePlaying {
		select {
		case p, ok := <-c.sub.Presses():
			if !ok {
				c.lostSubscription()
				return
			}
			cell, valid := matinput.CellForPad(p.Pad, c.rules.Cells())
			if !valid {
				c.logger.Debug("ignoring pad", "pad", p.Pad)
				continue
			}
			c.setMatStatus(matinput.StatusActive, "")
			c.Press(cell)
		default:
			return
		}
	}
}

func (c *Controller) lostSubscription() {
	err := c.sub.Err()
	c.sub = nil
	if err != nil {
		c.logger.Warn("mat listener stopped", "error", err)
		c.setMatStatus(matinput.StatusListenFailed, err.Error())
		return
	}
	c.setMatStatus(matinput.StatusDisconnected, "")
}
