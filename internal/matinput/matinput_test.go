package matinput

import (
	"context"
	"errors"
	"testing"
)

func TestCellForPad(t *testing.T) {
	tests := []struct {
		pad, cells int
		want       int
		ok         bool
	}{
		{1, 9, 0, true},
		{9, 9, 8, true},
		{3, 4, 2, true},
		{4, 4, 3, true},
		{5, 4, 0, false},
		{0, 9, 0, false},
		{-2, 9, 0, false},
		{10, 16, 0, false},
	}
	for _, tt := range tests {
		got, ok := CellForPad(tt.pad, tt.cells)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("CellForPad(%d, %d) = %d, %v; expected %d, %v", tt.pad, tt.cells, got, ok, tt.want, tt.ok)
		}
	}
}

func TestChanSourceFiltersGroup(t *testing.T) {
	src := NewChanSource(4)
	sub, err := src.Subscribe(context.Background(), 1)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	src.Send(Press{Pad: 2, Group: 2})
	src.Send(Press{Pad: 3, Group: 1})

	select {
	case p := <-sub.Presses():
		if p.Pad != 3 || p.Group != 1 {
			t.Errorf("got %+v, expected pad 3 of group 1", p)
		}
	default:
		t.Fatal("expected a queued press")
	}
	select {
	case p := <-sub.Presses():
		t.Errorf("unexpected press %+v from another group", p)
	default:
	}
}

func TestChanSourceDropsOldest(t *testing.T) {
	src := NewChanSource(2)
	sub, _ := src.Subscribe(context.Background(), 1)
	defer sub.Close()

	for pad := 1; pad <= 3; pad++ {
		src.Send(Press{Pad: pad, Group: 1})
	}

	first := <-sub.Presses()
	second := <-sub.Presses()
	if first.Pad != 2 || second.Pad != 3 {
		t.Errorf("got pads %d, %d; expected the oldest press to be dropped", first.Pad, second.Pad)
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	src := NewChanSource(1)
	sub, _ := src.Subscribe(context.Background(), 1)
	if src.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, expected 1", src.Subscribers())
	}

	sub.Close()
	sub.Close()

	if src.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after Close, expected 0", src.Subscribers())
	}
	if _, ok := <-sub.Presses(); ok {
		t.Error("press channel should be closed")
	}
	if sub.Err() != nil {
		t.Errorf("Err() = %v, expected nil after Close", sub.Err())
	}

	// Sending after close must not panic.
	src.Send(Press{Pad: 1, Group: 1})
}

func TestChanSourceFailWith(t *testing.T) {
	src := NewChanSource(1)
	boom := errors.New("offline")
	src.FailWith(boom)

	if _, err := src.Subscribe(context.Background(), 1); !errors.Is(err, boom) {
		t.Errorf("Subscribe error = %v, expected %v", err, boom)
	}

	src.FailWith(nil)
	sub, err := src.Subscribe(context.Background(), 1)
	if err != nil {
		t.Fatalf("Subscribe after clearing failure: %v", err)
	}
	sub.Close()
}

func TestStatusText(t *testing.T) {
	if StatusListening.String() != "Mat Control: Listening" {
		t.Errorf("Listening = %q", StatusListening.String())
	}
	if !StatusActive.Healthy() || StatusFailed.Healthy() || StatusUnavailable.Healthy() {
		t.Error("Healthy() mismatch")
	}
}
