package experiment

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/arena/internal/config"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/sim"
)

func pairConfig(frames int) *config.Config {
	cfg := config.GetPreset("pair")
	cfg.Frames = frames
	return cfg
}

func TestRun_PairCollides(t *testing.T) {
	e, err := New(pairConfig(200), dynamo.NopSurface{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Frames) != 200 {
		t.Fatalf("frames = %d, want 200", len(res.Frames))
	}
	if res.Metrics["contacts"] < 1 {
		t.Errorf("expected at least one contact, metrics %v", res.Metrics)
	}
	if ke := res.Metrics["kinetic_energy"]; math.Abs(ke-4.5) > 1e-9 {
		t.Errorf("kinetic energy = %v, want 4.5", ke)
	}

	last := res.Frames[len(res.Frames)-1]
	if last[0].Vel != (dynamo.Vec2{}) {
		t.Errorf("striker should stop after a head-on hit, vel %v", last[0].Vel)
	}
}

func TestNew_Overflow(t *testing.T) {
	cfg := config.GetPreset("overflow")
	cfg.Frames = 5
	e, err := New(cfg, dynamo.NopSurface{}, nil)
	if err != nil {
		t.Fatalf("overflow should not be fatal: %v", err)
	}
	if e.Scheduler().World().Len() != 0 {
		t.Errorf("expected an empty world, got %d bodies", e.Scheduler().World().Len())
	}
	res, err := e.Run(context.Background())
	if err != nil || len(res.Frames) != 5 {
		t.Errorf("run: %v, frames %d", err, len(res.Frames))
	}
}

func TestNew_Invalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bodies.Radius = 0
	if _, err := New(cfg, dynamo.NopSurface{}, nil); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("err = %v, want ErrParameterBounds", err)
	}

	if _, err := New(config.DefaultConfig(), nil, nil); !errors.Is(err, dynamo.ErrNoSurface) {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
}

func TestNudged(t *testing.T) {
	runs, err := Nudged(context.Background(), pairConfig(150), []float64{0, 0, 1})
	if err != nil {
		t.Fatalf("Nudged: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("runs = %d", len(runs))
	}
	for i := range runs[0] {
		for j := range runs[0][i] {
			if runs[0][i][j] != runs[1][i][j] {
				t.Fatalf("identical runs diverged at frame %d", i)
			}
		}
	}
	if runs[2][0][0].Pos.X == runs[0][0][0].Pos.X {
		t.Error("nudge not applied")
	}
}

func TestLive_NoRecording(t *testing.T) {
	e, err := New(pairConfig(10), dynamo.NopSurface{}, nil, Live())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.Recorder() != nil {
		t.Fatal("live experiment should not record")
	}
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != nil || e.Scheduler().Frame() != 10 {
		t.Errorf("frames %d, scheduler at %d", len(res.Frames), e.Scheduler().Frame())
	}
}

func TestWithSchedulerOptions(t *testing.T) {
	seen := 0
	count := sim.ObserverFunc(func(sim.FrameStats, []dynamo.Body) { seen++ })
	e, err := New(pairConfig(7), dynamo.NopSurface{}, nil, WithSchedulerOptions(sim.WithObserver(count)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if seen != 7 {
		t.Errorf("observer saw %d frames, want 7", seen)
	}
}

func TestPaced_WaitsBetweenFrames(t *testing.T) {
	e, err := New(pairConfig(5), dynamo.NopSurface{}, nil, Paced(100))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.Scheduler().Frame() != 5 {
		t.Errorf("scheduler at frame %d, want 5", e.Scheduler().Frame())
	}
	// five frames wait on four or more 10ms ticks
	if res.Elapsed < 30*time.Millisecond {
		t.Errorf("paced run finished in %v", res.Elapsed)
	}
}
