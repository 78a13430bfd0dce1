// Package sim holds the state shared by every minigame: score, combo, lives,
// the entity list and the events a session emits while it runs.
//
// Nothing here touches the terminal, the clock or the network. Variant rules
// mutate a State through its methods and the session controller reports the
// changes as events.
package sim

import "time"

// Kind is the role of an entity in play.
type Kind int

const (
	KindEnemy   Kind = iota // falls toward the player, costs a life on contact
	KindPowerup             // falls toward the player, applies a bonus on contact
	KindTarget              // sits in a grid cell until hit or expired
)

func (k Kind) String() string {
	switch k {
	case KindEnemy:
		return "enemy"
	case KindPowerup:
		return "powerup"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Powerup is the bonus a powerup entity applies.
type Powerup int

const (
	PowerupNone Powerup = iota
	PowerupHeart
	PowerupShield
	PowerupFlowerTropical
	PowerupFlowerChinese
)

func (p Powerup) String() string {
	switch p {
	case PowerupHeart:
		return "heart"
	case PowerupShield:
		return "shield"
	case PowerupFlowerTropical:
		return "tropical flower"
	case PowerupFlowerChinese:
		return "chinese flower"
	default:
		return "none"
	}
}

// Entity is a spawned object occupying a grid cell or lane.
type Entity struct {
	ID        int
	Kind      Kind
	Powerup   Powerup // set for KindPowerup
	Skin      string  // visual variant, e.g. "hornet"
	Cell      int     // grid cell or lane index
	Y         float64 // vertical offset in logical units, falling entities only
	Speed     float64 // logical units per frame
	SpawnedAt time.Duration
	TTL       time.Duration // lifetime of a target, 0 for falling entities
}

// ExpiresAt returns the session time at which a target expires.
// Falling entities never expire.
func (e *Entity) ExpiresAt() (time.Duration, bool) {
	if e.TTL <= 0 {
		return 0, false
	}
	return e.SpawnedAt + e.TTL, true
}

// RemoveReason says why an entity left play.
type RemoveReason int

const (
	RemovedHit     RemoveReason = iota // the player struck or touched it
	RemovedExpired                     // its lifetime ran out
	RemovedPassed                      // it fell past the bottom of the field
	RemovedCleared                     // the session was reset or ended
)

func (r RemoveReason) String() string {
	switch r {
	case RemovedHit:
		return "hit"
	case RemovedExpired:
		return "expired"
	case RemovedPassed:
		return "passed"
	case RemovedCleared:
		return "cleared"
	default:
		return "unknown"
	}
}
