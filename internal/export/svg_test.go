package export

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/arena/internal/analysis"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/palette"
	"github.com/san-kum/arena/internal/sim"
)

func TestSVGSurface_ClearDropsCircles(t *testing.T) {
	s := NewSVGSurface(dynamo.DefaultBounds())
	s.FillCircle(100, 100, 50, color.RGBA{255, 0, 0, 255})
	s.FillCircle(600, 300, 50, color.RGBA{0, 255, 0, 255})

	s.Clear(0, 0, 300, 300)
	if s.Circles() != 1 {
		t.Errorf("expected 1 circle after partial clear, got %d", s.Circles())
	}

	s.Clear(0, 0, 1200, 600)
	if s.Circles() != 0 {
		t.Errorf("expected empty surface, got %d", s.Circles())
	}
}

func TestSVGSurface_WorldFrame(t *testing.T) {
	s := NewSVGSurface(dynamo.DefaultBounds())
	w, err := sim.NewWorld(dynamo.DefaultBounds(), []dynamo.Body{
		dynamo.NewBody(dynamo.Vec2{X: 60, Y: 60}, 50),
		dynamo.NewBody(dynamo.Vec2{X: 170, Y: 60}, 50),
	}, s, nil)
	if err != nil {
		t.Fatalf("world: %v", err)
	}

	w.Tick()
	w.Tick()
	if s.Circles() != 2 {
		t.Errorf("each frame should replace the previous one, got %d circles", s.Circles())
	}

	out := s.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
		t.Error("malformed svg document")
	}
	if !strings.Contains(out, `<circle cx="60.0" cy="60.0" r="50.0" fill="#ffffff"/>`) {
		t.Errorf("missing circle:\n%s", out)
	}
}

func TestSnapshotWithPath(t *testing.T) {
	bodies := []dynamo.Body{dynamo.NewBody(dynamo.Vec2{X: 10, Y: 20}, 5)}
	out := Snapshot(dynamo.DefaultBounds(), bodies, palette.Default(), nil)
	if strings.Count(out, "<circle") != 1 || strings.Contains(out, "<path") {
		t.Errorf("expected one circle and no trail:\n%s", out)
	}

	trail := []analysis.Point{{X: 1, Y: 2}, {X: 10, Y: 20}}
	out = Snapshot(dynamo.DefaultBounds(), bodies, palette.Default(), trail)
	if !strings.Contains(out, `d="M1.0,2.0 L10.0,20.0"`) || !strings.Contains(out, TrailColor) {
		t.Errorf("trail missing:\n%s", out)
	}
	if strings.Index(out, "<path") > strings.Index(out, "<circle") {
		t.Errorf("trail should be drawn under the bodies:\n%s", out)
	}

	s := NewSVGSurface(dynamo.DefaultBounds())
	s.AddPath([]analysis.Point{{X: 0, Y: 0}, {X: 10, Y: 5}}, "#00ff00")
	s.AddPath([]analysis.Point{{X: 0, Y: 0}}, "#00ff00")
	if got := s.String(); !strings.Contains(got, `d="M0.0,0.0 L10.0,5.0"`) || strings.Count(got, "<path") != 1 {
		t.Errorf("unexpected path output:\n%s", got)
	}
}
