// Package session runs one minigame session: its lifecycle, timers, mat
// input and event reporting. Variant behavior plugs in through Rules.
package session

import "time"

// Rules is the variant-specific part of a session.
type Rules interface {
	// ID is the game identifier used in summaries and score records.
	ID() string

	// Cells is the number of selectable cells (lanes or grid squares).
	Cells() int

	// Reset sets the variant's starting values on a freshly reset state.
	Reset(c *Controller)

	// Spawners lists the periodic spawners armed while the session plays.
	Spawners() []Spawner

	// Countdown runs once per second of play, after Elapsed and TimeLeft
	// have been advanced.
	Countdown(c *Controller)

	// Press handles a cell selection from keys or a mat pad.
	Press(c *Controller, cell int)
}

// FrameRules is implemented by variants that simulate motion every frame.
type FrameRules interface {
	Rules
	Frame(c *Controller)
}

// Spawner is one periodic spawn source.
type Spawner struct {
	Name string

	// Period returns the delay before the next spawn given the session's
	// elapsed time. It is asked again after every spawn.
	Period func(elapsed time.Duration) time.Duration

	Spawn func(c *Controller)
}
