package core

import "testing"

func TestInputFrameCellsAndDrops(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.PressCell(2)
	f.PressCell(-1)
	f.PressCell(0)
	f.Drop(3)
	f.Drop(-4)
	f.Set(ActionPause)

	cells := f.Cells()
	if len(cells) != 2 || cells[0] != 2 || cells[1] != 0 {
		t.Errorf("Cells() = %v, expected [2 0]", cells)
	}
	if drops := f.Drops(); len(drops) != 1 || drops[0] != 3 {
		t.Errorf("Drops() = %v, expected [3]", drops)
	}
	if !f.Has(ActionPause) || f.Has(ActionRestart) {
		t.Error("action flags mismatch")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
}

func TestActionString(t *testing.T) {
	if ActionMute.String() != "Mute" || Action(99).String() != "Unknown" {
		t.Error("Action.String mismatch")
	}
}
