package roach

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/games/kit"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

const (
	minCellW = 5
	maxCellW = 14
	minCellH = 3
	maxCellH = 6
)

// RoachChar is drawn in the middle of an occupied cell.
const RoachChar = 'Ж'

func (g *Game) cellSize(dst *core.Screen) (int, int) {
	w := core.Clamp((dst.Width()-2)/g.cfg.Grid.Cols, minCellW, maxCellW)
	h := core.Clamp((dst.Height()-3)/g.cfg.Grid.Rows, minCellH, maxCellH)
	return w, h
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	rows, cols := g.cfg.Grid.Rows, g.cfg.Grid.Cols
	minW, minH := cols*minCellW+2, rows*minCellH+3
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawMessage("Terminal too small", fmt.Sprintf("need %dx%d", minW, minH), core.ColorWarning)
		return
	}

	ctrl := g.runner.Session()
	s := ctrl.State()
	now := ctrl.Clock().Now()

	cw, ch := g.cellSize(dst)
	ox := (dst.Width() - cols*cw) / 2
	oy := 1 + (dst.Height()-2-rows*ch)/2

	for cell := 0; cell < rows*cols; cell++ {
		box := core.NewRect(ox+(cell%cols)*cw, oy+(cell/cols)*ch, cw, ch)
		dst.DrawBox(box, core.ColorMuted)
		dst.DrawTextColored(box.X+1, box.Y+1, strconv.Itoa(cell+1), core.ColorGray)

		e, ok := s.EntityAt(cell)
		if !ok {
			continue
		}
		color := core.ColorBrown
		// Targets about to escape turn red
		if at, ok := e.ExpiresAt(); ok && (at-now)*3 < e.TTL {
			color = core.ColorBrightRed
		}
		cx, cy := box.Center()
		dst.SetColored(cx, cy, RoachChar, color)
	}

	g.drawHUD(dst, s)
	dst.DrawText(1, dst.Height()-1, "1-9 smash · P pause · M mute")
	kit.DrawMatStatus(dst, dst.Height()-1, ctrl.MatStatus())

	kit.DrawOverlay(dst, ctrl, "ROACH SMASH", "Enter to start · smash them before they run")
}

func (g *Game) drawHUD(dst *core.Screen, s *sim.State) {
	hud := fmt.Sprintf(" Score: %d  Combo: x%d  Time: %s  Accuracy: %d%% ",
		s.Score, s.Combo, kit.FormatSeconds(s.TimeLeft), s.Accuracy())
	dst.DrawTextColored(1, 0, hud, core.ColorHUD)
}
