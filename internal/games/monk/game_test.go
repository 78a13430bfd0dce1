package monk

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/sim"
)

func newGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
		Logger:   log.New(io.Discard),
	})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestGameStartsOnConfirm(t *testing.T) {
	g := newGame(1)
	step(g)
	if g.Session().Phase() != sim.PhaseIdle {
		t.Fatal("game should wait on the title screen")
	}

	step(g, core.ActionConfirm)
	if g.Session().Phase() != sim.PhasePlaying {
		t.Fatalf("phase = %v, expected playing", g.Session().Phase())
	}
}

func TestGameMovement(t *testing.T) {
	g := newGame(1)
	step(g, core.ActionConfirm)

	step(g, core.ActionLeft)
	if g.Session().State().PlayerCell != 0 {
		t.Error("moving left from lane 0 should stay in lane 0")
	}
	step(g, core.ActionRight)
	step(g, core.ActionRight)
	if g.Session().State().PlayerCell != 2 {
		t.Errorf("PlayerCell = %d, expected 2", g.Session().State().PlayerCell)
	}

	in := core.NewInputFrame()
	in.PressCell(3)
	g.Step(in)
	if g.Session().State().PlayerCell != 3 {
		t.Errorf("PlayerCell = %d after selecting cell 3", g.Session().State().PlayerCell)
	}
}

func TestGamePauseToggle(t *testing.T) {
	g := newGame(1)
	step(g, core.ActionConfirm)

	res := step(g, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	step(g, core.ActionRight)
	if g.Session().State().PlayerCell != 0 {
		t.Error("movement while paused should be ignored")
	}

	res = step(g, core.ActionPause)
	if res.State.Paused {
		t.Error("expected resumed")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (int, int) {
		g := newGame(42)
		step(g, core.ActionConfirm)
		for i := 0; i < 60*20; i++ {
			if i%45 == 0 {
				step(g, core.ActionRight)
			} else if i%70 == 0 {
				step(g, core.ActionLeft)
			} else {
				step(g)
			}
		}
		s := g.Session().State()
		return s.Score, s.Lives
	}

	s1, l1 := run()
	s2, l2 := run()
	if s1 != s2 || l1 != l2 {
		t.Errorf("runs differ: score %d/%d lives %d/%d", s1, s2, l1, l2)
	}
}

func TestGameRender(t *testing.T) {
	g := newGame(1)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "MONK DODGE") {
		t.Errorf("title screen missing:\n%s", screen.String())
	}

	step(g, core.ActionConfirm)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Score: 0") || !strings.ContainsRune(out, MonkChar) {
		t.Errorf("play screen missing HUD or monk:\n%s", out)
	}
	if !strings.Contains(out, "Mat Control: Off") {
		t.Error("mat indicator should show off without pads")
	}

	small := core.NewScreen(20, 8)
	g.Render(small)
	if !strings.Contains(small.String(), "small") {
		t.Error("tiny screens should show a size warning")
	}
}
