package core

import "testing"

func TestRectIntersects(t *testing.T) {
	lane := NewRect(100, 500, 100, 100)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"falling into lane", NewRect(120, 460, 60, 60), true},
		{"next lane", NewRect(200, 500, 100, 100), false},
		{"just above", NewRect(100, 440, 60, 60), false},
		{"inside", NewRect(130, 530, 10, 10), true},
		{"corner overlap", NewRect(199, 599, 10, 10), true},
		{"zero width", NewRect(150, 550, 0, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lane.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Intersects(lane); got != tt.want {
				t.Errorf("reversed Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectPointsAndEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), want (25, 25)", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), want (15, 17)", cx, cy)
	}

	points := []struct {
		x, y int
		want bool
	}{
		{5, 10, true},
		{24, 24, true},
		{25, 24, false},
		{4, 12, false},
	}
	for _, p := range points {
		if got := r.Contains(p.x, p.y); got != p.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", p.x, p.y, got, p.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, lo, hi, want int }{
		{2, 0, 3, 2},
		{-1, 0, 3, 0},
		{4, 0, 3, 3},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRectInset(t *testing.T) {
	player := NewRect(100, 500, 100, 100)
	hit := player.Inset(20, 20, 10, 20)

	if hit != NewRect(120, 520, 60, 70) {
		t.Errorf("Inset() = %+v, expected {120 520 60 70}", hit)
	}

	// An entity touching only the transparent padding must not collide
	padding := NewRect(100, 440, 15, 75)
	if !player.Intersects(padding) {
		t.Fatal("padding rect should overlap the full player rect")
	}
	if hit.Intersects(padding) {
		t.Error("padding rect should not overlap the shrunk hitbox")
	}
}

func TestRectInsetCollapses(t *testing.T) {
	r := NewRect(0, 0, 10, 10).Inset(8, 8, 8, 8)
	if r.W != 0 || r.H != 0 {
		t.Errorf("over-inset rect should collapse to zero size, got %dx%d", r.W, r.H)
	}
	if r.Intersects(NewRect(0, 0, 100, 100)) {
		t.Error("empty rect should never intersect")
	}
}
