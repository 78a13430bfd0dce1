package kit

import (
	"fmt"
	"time"

	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/matinput"
	"github.com/vovakirdan/mat-arcade/internal/session"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

// DrawOverlay draws the title, pause or summary box for the session phase.
// Nothing is drawn while playing.
func DrawOverlay(dst *core.Screen, c *session.Controller, title, hint string) {
	switch c.Phase() {
	case sim.PhaseIdle:
		dst.DrawMessage(title, hint, core.ColorHUD)
	case sim.PhasePaused:
		dst.DrawMessage("PAUSED", "P resume · R restart · B menu", core.ColorWarning)
	case sim.PhaseEnded:
		DrawSummary(dst, c)
	}
}

// DrawSummary draws the end-of-session results.
func DrawSummary(dst *core.Screen, c *session.Controller) {
	sum, ok := c.Summary()
	if !ok {
		return
	}

	lines := []string{
		fmt.Sprintf("Score      %d", sum.Score),
		fmt.Sprintf("Max combo  x%d", sum.MaxCombo),
		fmt.Sprintf("Time       %s", FormatSeconds(sum.Elapsed)),
	}
	if sum.Attempts > 0 {
		lines = append(lines,
			fmt.Sprintf("Accuracy   %d%%", sum.Accuracy),
			fmt.Sprintf("Hits       %d/%d", sum.Kills, sum.Attempts))
	}
	footer := "Enter play again · B menu · Q quit"

	w := len(footer) + 4
	h := len(lines) + 6
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWarning)
	dst.DrawTextCentered(box.Y+1, "GAME OVER", core.ColorWarning)
	for i, line := range lines {
		dst.DrawText(box.X+4, box.Y+3+i, line)
	}
	dst.DrawTextCentered(box.Bottom()-2, footer, core.ColorMuted)
}

// DrawMatStatus draws the mat indicator on row y.
func DrawMatStatus(dst *core.Screen, y int, st matinput.Status) {
	color := core.ColorMuted
	switch {
	case st.Healthy():
		color = core.ColorGood
	case st == matinput.StatusFailed || st == matinput.StatusListenFailed:
		color = core.ColorWarning
	}
	dst.DrawTextColored(dst.Width()-len([]rune(st.String()))-1, y, st.String(), color)
}

// FormatSeconds renders a duration as whole seconds, e.g. "42s".
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%ds", int(d/time.Second))
}
