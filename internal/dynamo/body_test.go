package dynamo

import (
	"image/color"
	"math"
	"testing"
)

func TestBody_PressHitTest(t *testing.T) {
	tests := []struct {
		name  string
		press Vec2
		hover bool
	}{
		{"center", Vec2{100, 100}, true},
		{"inside", Vec2{120, 110}, true},
		{"on edge", Vec2{150, 100}, true},
		{"outside", Vec2{151, 100}, false},
		{"far away", Vec2{1000, 500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(Vec2{100, 100}, 50).Press(tt.press)
			if b.Hover != tt.hover {
				t.Errorf("Hover = %v, want %v", b.Hover, tt.hover)
			}
			if b.PressAt != tt.press {
				t.Errorf("PressAt = %v, want %v", b.PressAt, tt.press)
			}
		})
	}
}

func TestBody_ReleaseImpulse(t *testing.T) {
	b := NewBody(Vec2{100, 100}, 50)
	b = b.Press(Vec2{100, 100})
	b = b.Release(Vec2{200, 150}, ImpulseScale)

	if b.Vel != (Vec2{1, 0.5}) {
		t.Errorf("Vel = %v, want {1 0.5}", b.Vel)
	}
	if !b.Hover {
		t.Error("hover should stay set after release")
	}
}

func TestBody_ReleaseWithoutHit(t *testing.T) {
	b := NewBody(Vec2{100, 100}, 50)
	b.Vel = Vec2{3, -2}
	b = b.Press(Vec2{500, 500})
	b = b.Release(Vec2{600, 600}, ImpulseScale)

	if b.Vel != (Vec2{3, -2}) {
		t.Errorf("velocity changed to %v", b.Vel)
	}
	if b.ReleaseAt != (Vec2{600, 600}) {
		t.Errorf("ReleaseAt = %v", b.ReleaseAt)
	}
}

func TestBody_StaleHoverReappliesImpulse(t *testing.T) {
	b := NewBody(Vec2{100, 100}, 50)
	b = b.Press(Vec2{100, 100})
	b = b.Release(Vec2{200, 100}, ImpulseScale)
	b.Vel = Vec2{}

	b = b.Release(Vec2{100, 300}, ImpulseScale)
	if b.Vel != (Vec2{0, 2}) {
		t.Errorf("Vel = %v, want impulse from stale press {0 2}", b.Vel)
	}
}

func TestBody_AdvanceReflects(t *testing.T) {
	a := DefaultBounds()

	tests := []struct {
		name    string
		pos     Vec2
		vel     Vec2
		wantVel Vec2
	}{
		{"right wall", Vec2{1147, 300}, Vec2{5, 0}, Vec2{-5, 0}},
		{"left wall", Vec2{53, 300}, Vec2{-5, 0}, Vec2{5, 0}},
		{"bottom wall", Vec2{600, 547}, Vec2{0, 5}, Vec2{0, -5}},
		{"top wall", Vec2{600, 53}, Vec2{0, -5}, Vec2{0, 5}},
		{"corner", Vec2{1148, 548}, Vec2{4, 4}, Vec2{-4, -4}},
		{"free flight", Vec2{600, 300}, Vec2{5, 5}, Vec2{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(tt.pos, 50)
			b.Vel = tt.vel
			b = b.Advance(a)
			if b.Vel != tt.wantVel {
				t.Errorf("Vel = %v, want %v", b.Vel, tt.wantVel)
			}
			if !a.Contains(b) {
				t.Errorf("position %v escaped the arena", b.Pos)
			}
		})
	}
}

func TestBody_AdvancePinsToBoundary(t *testing.T) {
	a := DefaultBounds()
	b := NewBody(Vec2{1140, 300}, 50)
	b.Vel = Vec2{30, 0}
	b = b.Advance(a)

	if b.Pos.X != 1150 {
		t.Errorf("X = %v, want pinned at 1150", b.Pos.X)
	}
	if b.Vel.X != -30 {
		t.Errorf("Vel.X = %v, want -30", b.Vel.X)
	}
}

func TestBody_ContainmentUnderLongRun(t *testing.T) {
	a := DefaultBounds()
	b := NewBody(Vec2{300, 200}, 50)
	b.Vel = Vec2{37.3, -91.7}

	for i := 0; i < 5000; i++ {
		b = b.Advance(a)
		if !a.Contains(b) {
			t.Fatalf("step %d: position %v outside arena", i, b.Pos)
		}
		if !b.Vel.IsFinite() {
			t.Fatalf("step %d: non-finite velocity %v", i, b.Vel)
		}
	}
	if math.Abs(b.Vel.X) != 37.3 || math.Abs(b.Vel.Y) != 91.7 {
		t.Errorf("speed magnitude changed: %v", b.Vel)
	}
}

type recordingSurface struct {
	circles [][3]float64
}

func (s *recordingSurface) Clear(x, y, w, h float64) {}

func (s *recordingSurface) FillCircle(x, y, r float64, c color.RGBA) {
	s.circles = append(s.circles, [3]float64{x, y, r})
}

func TestBody_Draw(t *testing.T) {
	s := &recordingSurface{}
	NewBody(Vec2{10, 20}, 5).Draw(s, color.RGBA{255, 255, 255, 255})

	if len(s.circles) != 1 || s.circles[0] != [3]float64{10, 20, 5} {
		t.Errorf("unexpected draw calls: %v", s.circles)
	}
}
