package roach

import (
	"time"

	"github.com/vovakirdan/mat-arcade/internal/config"
	"github.com/vovakirdan/mat-arcade/internal/session"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// Rules is the Roach Smash variant: targets pop up on a grid and must be
// hit before they expire. The round ends when the countdown reaches zero.
type Rules struct {
	cfg        config.RoachConfig
	difficulty *config.DifficultyManager
}

// NewRules creates the rules for cfg.
func NewRules(cfg config.RoachConfig) *Rules {
	if cfg.Grid.Rows < 1 {
		cfg.Grid.Rows = 1
	}
	if cfg.Grid.Cols < 1 {
		cfg.Grid.Cols = 1
	}
	return &Rules{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID implements session.Rules.
func (r *Rules) ID() string { return "roach" }

// Cells implements session.Rules.
func (r *Rules) Cells() int { return r.cfg.Grid.Rows * r.cfg.Grid.Cols }

// Reset implements session.Rules: the round clock starts full.
func (r *Rules) Reset(c *session.Controller) {
	c.State().TimeLeft = time.Duration(r.cfg.Round.DurationSec) * time.Second
}

// Spawners implements session.Rules.
func (r *Rules) Spawners() []session.Spawner {
	return []session.Spawner{{
		Name:   "targets",
		Period: r.spawnInterval,
		Spawn:  r.spawnRandom,
	}}
}

func (r *Rules) spawnInterval(elapsed time.Duration) time.Duration {
	t := r.cfg.Targets
	return r.difficulty.Interval(config.Ms(t.IntervalMs), config.Ms(t.FloorMs), config.Ms(t.DecayMs), elapsed)
}

// TTL returns how long a target spawned at elapsed stays on the board.
func (r *Rules) TTL(elapsed time.Duration) time.Duration {
	t := r.cfg.Targets
	return r.difficulty.Interval(config.Ms(t.TTLMs), config.Ms(t.TTLFloorMs), config.Ms(t.TTLDecayMs), elapsed)
}

// Countdown implements session.Rules.
func (r *Rules) Countdown(c *session.Controller) {
	if c.State().TimeLeft <= 0 {
		c.End()
	}
}

// spawnRandom places a target in a random free cell. A full board skips
// the spawn.
func (r *Rules) spawnRandom(c *session.Controller) {
	free := c.State().FreeCells(r.Cells())
	if len(free) == 0 {
		return
	}
	r.SpawnAt(c, free[c.Rand().Intn(len(free))])
}

// SpawnAt places a target in cell and schedules its expiry. It returns
// false if the cell is out of range or already occupied.
func (r *Rules) SpawnAt(c *session.Controller, cell int) (*sim.Entity, bool) {
	if cell < 0 || cell >= r.Cells() {
		return nil, false
	}
	s := c.State()
	if _, taken := s.EntityAt(cell); taken {
		return nil, false
	}

	ttl := r.TTL(s.Elapsed)
	e := c.Spawn(&sim.Entity{
		Kind: sim.KindTarget,
		Skin: r.randomSkin(c),
		Cell: cell,
		TTL:  ttl,
	})
	id := e.ID
	c.Clock().After(ttl, func() {
		c.Remove(id, sim.RemovedExpired)
	})
	c.Cue(sim.CueSpawn)
	return e, true
}

func (r *Rules) randomSkin(c *session.Controller) string {
	skins := r.cfg.Targets.Skins
	if len(skins) == 0 {
		return "roach"
	}
	return skins[c.Rand().Intn(len(skins))]
}

// Press implements session.Rules. Every press is an attempt; hitting a
// target scores base plus a bonus for each full step of combo, missing
// drops the combo to zero.
func (r *Rules) Press(c *session.Controller, cell int) {
	s := c.State()
	s.Attempts++

	e, ok := s.EntityAt(cell)
	if !ok || e.Kind != sim.KindTarget {
		s.ResetCombo()
		c.Cue(sim.CueMiss)
		return
	}

	c.Remove(e.ID, sim.RemovedHit)
	s.Kills++
	s.BumpCombo()
	s.AddScore(r.Gain(s.Combo))
	c.Cue(sim.CueHit)
}

// Gain is the score for a hit that brought the combo to combo.
func (r *Rules) Gain(combo int) int {
	sc := r.cfg.Scoring
	if sc.BonusEvery <= 0 {
		return sc.Base
	}
	return sc.Base + combo/sc.BonusEvery*sc.BonusStep
}
