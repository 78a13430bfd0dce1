package sim

// Cue names a sound the platform may play. The simulation only names it.
type Cue string

const (
	CueClick          Cue = "click"
	CueStart          Cue = "start"
	CuePause          Cue = "pause"
	CueEnd            Cue = "end"
	CueHit            Cue = "hit"
	CueMiss           Cue = "miss"
	CueSpawn          Cue = "spawn"
	CueEnemySpawn     Cue = "enemy-spawn"
	CuePowerupSpawn   Cue = "powerup-spawn"
	CuePowerupCollect Cue = "powerup-collect"
	CueShieldBreak    Cue = "shield-break"
	CueLifeLost       Cue = "life-lost"
)
