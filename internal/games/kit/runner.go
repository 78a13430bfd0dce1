// Package kit holds the pieces both minigames share: the step loop that
// turns platform input into session calls, and the idle, pause and summary
// overlays.
package kit

import (
	"time"

	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/session"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// Runner drives a session controller from platform ticks.
type Runner struct {
	ctrl  *session.Controller
	frame time.Duration
}

// NewRunner wraps ctrl. Each Step advances the session by one tick at tickRate.
func NewRunner(ctrl *session.Controller, tickRate int) *Runner {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Runner{ctrl: ctrl, frame: time.Second / time.Duration(tickRate)}
}

// Session returns the wrapped controller.
func (r *Runner) Session() *session.Controller {
	return r.ctrl
}

// Frame returns the session time covered by one Step.
func (r *Runner) Frame() time.Duration {
	return r.frame
}

// Step applies lifecycle actions and selected cells, then advances the session.
//
// Restart works in any phase. Pause toggles while a session runs. Enter
// starts a session from the title or summary screen; a selected cell also
// starts one from the title screen.
func (r *Runner) Step(in core.InputFrame) core.StepResult {
	c := r.ctrl

	switch {
	case in.Has(core.ActionRestart):
		c.Restart()
	case in.Has(core.ActionPause):
		c.TogglePause()
	}

	switch c.Phase() {
	case sim.PhaseIdle:
		if in.Has(core.ActionConfirm) || len(in.Cells()) > 0 {
			c.Start()
		}
	case sim.PhaseEnded:
		if in.Has(core.ActionConfirm) {
			c.Start()
		}
	case sim.PhasePlaying:
		for _, cell := range in.Cells() {
			c.Press(cell)
		}
	}

	c.Advance(r.frame)
	return core.StepResult{State: r.State()}
}

// State reports the session to the platform.
func (r *Runner) State() core.GameState {
	return core.GameState{
		Score:    r.ctrl.State().Score,
		GameOver: r.ctrl.Phase() == sim.PhaseEnded,
		Paused:   r.ctrl.Phase() == sim.PhasePaused,
	}
}

// Close ends the session and releases its mat subscription.
func (r *Runner) Close() {
	r.ctrl.Quit()
}
