package sim

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/layout"
)

type call struct {
	op      string
	x, y, r float64
}

type traceSurface struct {
	calls []call
}

func (s *traceSurface) Clear(x, y, w, h float64) {
	s.calls = append(s.calls, call{op: "clear", x: w, y: h})
}

func (s *traceSurface) FillCircle(x, y, r float64, c color.RGBA) {
	s.calls = append(s.calls, call{op: "fill", x: x, y: y, r: r})
}

func body(x, y, dx, dy float64) dynamo.Body {
	b := dynamo.NewBody(dynamo.Vec2{X: x, Y: y}, 50)
	b.Vel = dynamo.Vec2{X: dx, Y: dy}
	return b
}

func TestNewWorld_NoSurface(t *testing.T) {
	_, err := NewWorld(dynamo.DefaultBounds(), nil, nil, nil)
	if !errors.Is(err, dynamo.ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
}

func TestNewWorld_BadBounds(t *testing.T) {
	_, err := NewWorld(dynamo.Bounds{Width: 0, Height: 600}, nil, dynamo.NopSurface{}, nil)
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestWorld_TickOrder(t *testing.T) {
	s := &traceSurface{}
	w, err := NewWorld(dynamo.DefaultBounds(), []dynamo.Body{
		body(100, 100, 3, 0),
		body(400, 300, 0, -2),
	}, s, nil)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}

	w.Tick()

	want := []call{
		{op: "clear", x: 1200, y: 600},
		{op: "fill", x: 100, y: 100, r: 50},
		{op: "fill", x: 400, y: 300, r: 50},
	}
	if len(s.calls) != len(want) {
		t.Fatalf("expected %d surface calls, got %v", len(want), s.calls)
	}
	for i := range want {
		if s.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, s.calls[i], want[i])
		}
	}

	got := w.Bodies()
	if got[0].Pos != (dynamo.Vec2{X: 103, Y: 100}) || got[1].Pos != (dynamo.Vec2{X: 400, Y: 298}) {
		t.Errorf("draw must precede advance; positions now %v, %v", got[0].Pos, got[1].Pos)
	}
}

func TestWorld_HeadOnCollision(t *testing.T) {
	w, _ := NewWorld(dynamo.DefaultBounds(), []dynamo.Body{
		body(300, 300, 2, 0),
		body(400, 300, -2, 0),
	}, dynamo.NopSurface{}, nil)

	stats := w.Tick()
	if stats.Contacts != 1 {
		t.Errorf("expected 1 contact, got %d", stats.Contacts)
	}

	got := w.Bodies()
	if got[0].Vel != (dynamo.Vec2{X: -2}) || got[1].Vel != (dynamo.Vec2{X: 2}) {
		t.Errorf("velocities not exchanged: %v %v", got[0].Vel, got[1].Vel)
	}
}

func TestWorld_BodiesIsCopy(t *testing.T) {
	w, _ := NewWorld(dynamo.DefaultBounds(), []dynamo.Body{body(100, 100, 0, 0)}, dynamo.NopSurface{}, nil)
	bs := w.Bodies()
	bs[0].Pos.X = 999
	if w.Bodies()[0].Pos.X != 100 {
		t.Error("Bodies leaked internal state")
	}
}

func TestWorld_ContainmentAndFiniteness(t *testing.T) {
	bodies, err := layout.Grid(dynamo.DefaultBounds(), layout.Params{Count: 30, Radius: 50, Gap: 10})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for i := range bodies {
		bodies[i].Vel = dynamo.Vec2{X: float64(i%7) - 3, Y: float64(i%5) - 2}
	}

	w, _ := NewWorld(dynamo.DefaultBounds(), bodies, dynamo.NopSurface{}, nil)
	a := w.Bounds()
	for f := 0; f < 2000; f++ {
		w.Tick()
		for i, b := range w.Bodies() {
			if !a.Contains(b) {
				t.Fatalf("frame %d body %d escaped: %v", f, i, b.Pos)
			}
			if !b.Vel.IsFinite() || math.IsNaN(b.Pos.X) || math.IsNaN(b.Pos.Y) {
				t.Fatalf("frame %d body %d non-finite: %+v", f, i, b)
			}
		}
	}
}

func TestWorld_CoincidentBodiesStayFinite(t *testing.T) {
	w, _ := NewWorld(dynamo.DefaultBounds(), []dynamo.Body{
		body(500, 300, 1, 1),
		body(500, 300, 1, 1),
	}, dynamo.NopSurface{}, nil)

	stats := w.Tick()
	if stats.Contacts != 0 {
		t.Errorf("coincident pair should be skipped, got %d contacts", stats.Contacts)
	}
	for _, b := range w.Bodies() {
		if !b.Vel.IsFinite() {
			t.Errorf("non-finite velocity %v", b.Vel)
		}
	}
}

func TestInputController_Impulse(t *testing.T) {
	w, _ := NewWorld(dynamo.DefaultBounds(), []dynamo.Body{
		body(60, 60, 0, 0),
		body(170, 60, 0, 0),
	}, dynamo.NopSurface{}, nil)
	in := NewInputController(w, dynamo.ImpulseScale)

	if err := in.Press(60, 60); err != nil {
		t.Fatal(err)
	}
	if err := in.Release(160, 110); err != nil {
		t.Fatal(err)
	}

	got := w.Bodies()
	if got[0].Vel != (dynamo.Vec2{X: 1, Y: 0.5}) {
		t.Errorf("hit body velocity = %v, want {1 0.5}", got[0].Vel)
	}
	if got[1].Vel != (dynamo.Vec2{}) {
		t.Errorf("missed body moved: %v", got[1].Vel)
	}
}

func TestInputController_Miss(t *testing.T) {
	w, _ := NewWorld(dynamo.DefaultBounds(), []dynamo.Body{body(60, 60, 0, 0)}, dynamo.NopSurface{}, nil)
	in := NewInputController(w, dynamo.ImpulseScale)

	_ = in.Handle(Press(600, 500))
	_ = in.Handle(Release(700, 550))

	if v := w.Bodies()[0].Vel; v != (dynamo.Vec2{}) {
		t.Errorf("velocity changed to %v", v)
	}
}

func TestInputController_RejectsNonFinite(t *testing.T) {
	w, _ := NewWorld(dynamo.DefaultBounds(), []dynamo.Body{body(60, 60, 0, 0)}, dynamo.NopSurface{}, nil)
	in := NewInputController(w, dynamo.ImpulseScale)

	tests := []PointerEvent{
		Press(math.NaN(), 0),
		Release(0, math.Inf(1)),
		{Kind: PointerKind(9)},
	}
	for _, ev := range tests {
		if err := in.Handle(ev); !errors.Is(err, dynamo.ErrInvalidPointer) {
			t.Errorf("Handle(%+v) = %v, want ErrInvalidPointer", ev, err)
		}
	}
	if w.Bodies()[0].PressAt != (dynamo.Vec2{}) {
		t.Error("rejected press must not touch bodies")
	}
}

func TestPointerHub(t *testing.T) {
	hub := NewPointerHub()
	var order []string

	unsubA := hub.Subscribe(func(ev PointerEvent) { order = append(order, "a:"+ev.Kind.String()) })
	unsubB := hub.Subscribe(func(ev PointerEvent) { order = append(order, "b:"+ev.Kind.String()) })

	hub.Publish(Press(1, 2))
	unsubA()
	unsubA()
	hub.Publish(Release(3, 4))

	want := []string{"a:press", "b:press", "b:release"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}

	unsubB()
	if hub.Listeners() != 0 {
		t.Errorf("expected no listeners, got %d", hub.Listeners())
	}
}

func TestScript_At(t *testing.T) {
	s := Slingshot(3, dynamo.Vec2{X: 1, Y: 2}, dynamo.Vec2{X: 5, Y: 6})
	s = append(s, ScriptedEvent{Frame: 4, Event: Press(0, 0)})

	evs := s.At(3)
	if len(evs) != 2 || evs[0].Kind != PointerPress || evs[1].Kind != PointerRelease {
		t.Errorf("unexpected events at frame 3: %+v", evs)
	}
	if len(s.At(4)) != 1 || len(s.At(0)) != 0 {
		t.Error("wrong frame filtering")
	}
}
