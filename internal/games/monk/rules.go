package monk

import (
	"time"

	"github.com/vovakirdan/mat-arcade/internal/config"
	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/session"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// Rules is the Monk Dodge variant: enemies and powerups fall down lanes
// and the monk moves between the bottom cells to dodge or collect them.
type Rules struct {
	cfg        config.MonkConfig
	difficulty *config.DifficultyManager
}

// NewRules creates the rules for cfg.
func NewRules(cfg config.MonkConfig) *Rules {
	if cfg.Field.Lanes < 1 {
		cfg.Field.Lanes = 1
	}
	return &Rules{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// ID implements session.Rules.
func (r *Rules) ID() string { return "monk" }

// Cells implements session.Rules. Each lane has one bottom cell.
func (r *Rules) Cells() int { return r.cfg.Field.Lanes }

// Reset implements session.Rules.
func (r *Rules) Reset(c *session.Controller) {
	c.State().PlayerCell = core.Clamp(r.cfg.Player.StartLane, 0, r.cfg.Field.Lanes-1)
}

// Spawners implements session.Rules.
func (r *Rules) Spawners() []session.Spawner {
	var out []session.Spawner
	if r.cfg.Spawn.AutoEnemies {
		out = append(out, session.Spawner{
			Name:   "enemies",
			Period: r.enemyInterval,
			Spawn: func(c *session.Controller) {
				r.spawnEnemy(c, c.Rand().Intn(r.cfg.Field.Lanes), r.randomSkin(c))
			},
		})
	}
	out = append(out, session.Spawner{
		Name:   "powerups",
		Period: func(time.Duration) time.Duration { return config.Ms(r.cfg.Spawn.PowerupIntervalMs) },
		Spawn: func(c *session.Controller) {
			r.spawnPowerup(c, c.Rand().Intn(r.cfg.Field.Lanes), r.randomPowerup(c))
		},
	})
	return out
}

func (r *Rules) enemyInterval(elapsed time.Duration) time.Duration {
	s := r.cfg.Spawn
	return r.difficulty.Interval(config.Ms(s.EnemyIntervalMs), config.Ms(s.EnemyFloorMs), config.Ms(s.EnemyDecayMs), elapsed)
}

// Countdown implements session.Rules. The monk plays until out of lives,
// so only the elapsed time moves.
func (r *Rules) Countdown(c *session.Controller) {}

// Press implements session.Rules: the monk steps into the selected cell.
func (r *Rules) Press(c *session.Controller, cell int) {
	c.State().PlayerCell = cell
}

// Drop lets a second player release an enemy into a lane.
func (r *Rules) Drop(c *session.Controller, lane int) {
	if c.Phase() != sim.PhasePlaying || lane < 0 || lane >= r.cfg.Field.Lanes {
		return
	}
	r.spawnEnemy(c, lane, r.randomSkin(c))
}

func (r *Rules) randomSkin(c *session.Controller) string {
	skins := r.cfg.Spawn.EnemySkins
	if len(skins) == 0 {
		return "hornet"
	}
	return skins[c.Rand().Intn(len(skins))]
}

// randomPowerup draws from the pool. Hearts are only offered below max lives.
func (r *Rules) randomPowerup(c *session.Controller) sim.Powerup {
	pool := []sim.Powerup{sim.PowerupShield, sim.PowerupFlowerTropical, sim.PowerupFlowerChinese}
	if s := c.State(); s.Lives < s.MaxLives {
		pool = append(pool, sim.PowerupHeart)
	}
	return pool[c.Rand().Intn(len(pool))]
}

func (r *Rules) spawnEnemy(c *session.Controller, lane int, skin string) *sim.Entity {
	e := c.Spawn(&sim.Entity{
		Kind:  sim.KindEnemy,
		Skin:  skin,
		Cell:  lane,
		Y:     -float64(r.cfg.Field.EntitySize),
		Speed: r.difficulty.Speed(r.cfg.Field.FallSpeed, c.State().Elapsed),
	})
	c.Cue(sim.CueEnemySpawn)
	return e
}

func (r *Rules) spawnPowerup(c *session.Controller, lane int, p sim.Powerup) *sim.Entity {
	e := c.Spawn(&sim.Entity{
		Kind:    sim.KindPowerup,
		Powerup: p,
		Cell:    lane,
		Y:       -float64(r.cfg.Field.EntitySize),
		Speed:   r.cfg.Field.FallSpeed,
	})
	c.Cue(sim.CuePowerupSpawn)
	return e
}

// Frame implements session.FrameRules: move everything down, reward
// enemies that got past, then resolve contact with the monk.
func (r *Rules) Frame(c *session.Controller) {
	s := c.State()
	changed := false

	for i := len(s.Entities) - 1; i >= 0; i-- {
		e := s.Entities[i]
		e.Y += e.Speed
		if e.Y <= float64(r.cfg.Field.Height) {
			continue
		}
		c.Remove(e.ID, sim.RemovedPassed)
		if e.Kind == sim.KindEnemy {
			s.AddScore(s.Combo)
			changed = true
		}
	}

	if r.collide(c) {
		changed = true
	}
	if changed && c.Phase() == sim.PhasePlaying {
		c.EmitStats()
	}
}

// collide resolves powerups first, then enemies, each newest first.
// It stops as soon as the session ends.
func (r *Rules) collide(c *session.Controller) bool {
	s := c.State()
	hitbox := r.Hitbox(s.PlayerCell)
	changed := false

	for _, kind := range []sim.Kind{sim.KindPowerup, sim.KindEnemy} {
		for i := len(s.Entities) - 1; i >= 0; i-- {
			e := s.Entities[i]
			if e.Kind != kind || !hitbox.Intersects(r.EntityRect(e)) {
				continue
			}
			c.Remove(e.ID, sim.RemovedHit)
			changed = true
			if kind == sim.KindPowerup {
				r.collect(c, e.Powerup)
				continue
			}
			r.hit(c)
			if c.Phase() != sim.PhasePlaying {
				return changed
			}
		}
	}
	return changed
}

func (r *Rules) collect(c *session.Controller, p sim.Powerup) {
	s := c.State()
	c.Cue(sim.CuePowerupCollect)
	switch p {
	case sim.PowerupHeart:
		s.GainLife()
	case sim.PowerupShield:
		s.HasShield = true
	case sim.PowerupFlowerTropical, sim.PowerupFlowerChinese:
		s.BumpCombo()
	}
}

// hit applies an enemy contact. A shield absorbs it and leaves the combo
// as it is.
func (r *Rules) hit(c *session.Controller) {
	s := c.State()
	c.Cue(sim.CueHit)
	if s.HasShield {
		s.HasShield = false
		c.Cue(sim.CueShieldBreak)
		return
	}
	s.ResetCombo()
	c.Cue(sim.CueLifeLost)
	if s.LoseLife() == 0 {
		c.End()
	}
}

// laneWidth is the width of one lane in logical units.
func (r *Rules) laneWidth() int {
	return r.cfg.Field.Width / r.cfg.Field.Lanes
}

// EntityRect is the bounding box of a falling entity, centered in its lane.
func (r *Rules) EntityRect(e *sim.Entity) core.Rect {
	size := r.cfg.Field.EntitySize
	x := e.Cell*r.laneWidth() + r.laneWidth()/2 - size/2
	return core.NewRect(x, int(e.Y), size, size)
}

// PlayerRect is the bottom cell of a lane.
func (r *Rules) PlayerRect(lane int) core.Rect {
	h := r.cfg.Player.Height
	return core.NewRect(lane*r.laneWidth(), r.cfg.Field.Height-h, r.laneWidth(), h)
}

// Hitbox is the part of the player cell that collides.
func (r *Rules) Hitbox(lane int) core.Rect {
	in := r.cfg.Player.Hitbox
	return r.PlayerRect(lane).Inset(in.Top, in.Right, in.Bottom, in.Left)
}
