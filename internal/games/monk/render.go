package monk

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/games/kit"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// Minimum terminal size for a playable field
const (
	minScreenW = 30
	minScreenH = 14
	maxLaneW   = 16
)

// Visual characters for rendering
const (
	MonkChar      = '☺'
	LaneChar      = '┊'
	GroundChar    = '═'
	LifeChar      = '♥'
	EmptyLifeChar = '♡'
)

type glyph struct {
	r rune
	c core.Color
}

var enemyGlyphs = map[string]glyph{
	"hornet":       {'※', core.ColorBrightYellow},
	"poop":         {'§', core.ColorBrown},
	"rotten fruit": {'%', core.ColorGreen},
	"snail":        {'@', core.ColorMagenta},
}

var powerupGlyphs = map[sim.Powerup]glyph{
	sim.PowerupHeart:          {LifeChar, core.ColorRed},
	sim.PowerupShield:         {'◊', core.ColorCyan},
	sim.PowerupFlowerTropical: {'✿', core.ColorOrange},
	sim.PowerupFlowerChinese:  {'❀', core.ColorBrightRed},
}

func glyphFor(e *sim.Entity) glyph {
	if e.Kind == sim.KindPowerup {
		if gl, ok := powerupGlyphs[e.Powerup]; ok {
			return gl
		}
	}
	if gl, ok := enemyGlyphs[e.Skin]; ok {
		return gl
	}
	return glyph{'*', core.ColorRed}
}

// layout maps logical field units onto terminal cells.
type layout struct {
	box   core.Rect // field border
	laneW int       // cells per lane
	rows  int       // inner field height in cells
}

func (g *Game) layout(dst *core.Screen) layout {
	lanes := g.cfg.Field.Lanes
	laneW := core.Clamp((dst.Width()-2)/lanes, 3, maxLaneW)
	w := lanes*laneW + 2
	return layout{
		box:   core.NewRect((dst.Width()-w)/2, 1, w, dst.Height()-2),
		laneW: laneW,
		rows:  dst.Height() - 4,
	}
}

// toRow converts a logical y to a screen row inside the field.
func (l layout) toRow(y, fieldH int) int {
	return l.box.Y + 1 + y*l.rows/fieldH
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawMessage("Terminal too small", fmt.Sprintf("need %dx%d", minScreenW, minScreenH), core.ColorWarning)
		return
	}

	ctrl := g.runner.Session()
	s := ctrl.State()
	l := g.layout(dst)
	fieldH := g.cfg.Field.Height

	// Field border and lane separators
	dst.DrawBox(l.box, core.ColorMuted)
	for lane := 1; lane < g.cfg.Field.Lanes; lane++ {
		x := l.box.X + 1 + lane*l.laneW
		for y := l.box.Y + 1; y < l.box.Bottom()-1; y++ {
			dst.SetColored(x, y, LaneChar, core.ColorMuted)
		}
	}
	dst.DrawHLine(l.box.X+1, l.box.Bottom()-1, l.box.W-2, GroundChar, core.ColorMuted)

	g.drawPlayer(dst, l, s)

	// Entities, clipped to the field
	innerTop, innerBottom := l.box.Y+1, l.box.Bottom()-1
	for _, e := range s.Entities {
		rect := g.rules.EntityRect(e)
		top := l.toRow(rect.Y, fieldH)
		bottom := max(top+1, l.toRow(rect.Bottom(), fieldH))
		w := max(1, l.laneW*3/5)
		x := l.box.X + 1 + e.Cell*l.laneW + (l.laneW-w)/2
		gl := glyphFor(e)
		for y := top; y < bottom; y++ {
			if y < innerTop || y >= innerBottom {
				continue
			}
			dst.DrawHLine(x, y, w, gl.r, gl.c)
		}
	}

	g.drawHUD(dst, s)
	dst.DrawText(1, dst.Height()-1, "←/→ 1-4 move · Z-V drop · P pause · M mute")
	kit.DrawMatStatus(dst, dst.Height()-1, ctrl.MatStatus())

	kit.DrawOverlay(dst, ctrl, "MONK DODGE", "Enter to start · dodge the falling pests")
}

func (g *Game) drawPlayer(dst *core.Screen, l layout, s *sim.State) {
	rect := g.rules.PlayerRect(s.PlayerCell)
	top := l.toRow(rect.Y, g.cfg.Field.Height)
	x := l.box.X + 1 + s.PlayerCell*l.laneW

	color := core.ColorWhite
	if s.HasShield {
		color = core.ColorCyan
	}
	for y := top; y < l.box.Bottom()-1; y++ {
		dst.DrawHLine(x+1, y, l.laneW-2, '░', core.ColorGray)
	}
	mid := x + l.laneW/2
	dst.SetColored(mid, top, MonkChar, color)
	if s.HasShield {
		dst.SetColored(mid-1, top, '(', color)
		dst.SetColored(mid+1, top, ')', color)
	}
}

func (g *Game) drawHUD(dst *core.Screen, s *sim.State) {
	lives := strings.Repeat(string(LifeChar), s.Lives) +
		strings.Repeat(string(EmptyLifeChar), max(0, s.MaxLives-s.Lives))
	hud := fmt.Sprintf(" Score: %d  Combo: x%d  Time: %s ", s.Score, s.Combo, kit.FormatSeconds(s.Elapsed))
	dst.DrawTextColored(1, 0, hud, core.ColorHUD)

	x := 1 + len([]rune(hud))
	dst.DrawTextColored(x, 0, lives, core.ColorRed)
	if s.HasShield {
		dst.DrawTextColored(x+len([]rune(lives))+1, 0, "SHIELD", core.ColorCyan)
	}
}
