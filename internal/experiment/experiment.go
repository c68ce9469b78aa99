// Package experiment wires a configured arena into a runnable scheduler.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/arena/internal/config"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/layout"
	"github.com/san-kum/arena/internal/logging"
	"github.com/san-kum/arena/internal/metrics"
	"github.com/san-kum/arena/internal/sim"
)

type Option func(*Experiment)

// Live drops the frame recorder, for interactive hosts that run unbounded.
func Live() Option { return func(e *Experiment) { e.recorder = nil } }

// Paced runs at fps frames per second instead of as fast as possible.
func Paced(fps int) Option { return func(e *Experiment) { e.fps = fps } }

// WithSchedulerOptions passes extra options to the scheduler.
func WithSchedulerOptions(opts ...sim.Option) Option {
	return func(e *Experiment) { e.schedOpts = append(e.schedOpts, opts...) }
}

type Experiment struct {
	cfg       *config.Config
	schedOpts []sim.Option
	sched     *sim.Scheduler
	recorder  *sim.Recorder
	metrics   []metrics.Metric
	log       *log.Logger
	fps       int
}

type Result struct {
	Frames  [][]dynamo.Body
	Metrics map[string]float64
	Elapsed time.Duration
}

// Layout places the configured bodies. Over capacity it logs a warning and
// returns no bodies; any other layout error is returned.
func Layout(cfg *config.Config, l *log.Logger) ([]dynamo.Body, error) {
	bodies, err := layout.Grid(cfg.Bounds(), cfg.LayoutParams())
	if errors.Is(err, dynamo.ErrCapacityExceeded) {
		cols, rows := layout.Capacity(cfg.Bounds(), cfg.LayoutParams())
		l.Warn("grid over capacity, running with no bodies", "requested", cfg.Bodies.Count, "capacity", cols*rows)
		return bodies, nil
	}
	return bodies, err
}

// New validates cfg and builds a world drawing on surface. A nil logger
// discards output.
func New(cfg *config.Config, surface dynamo.Surface, l *log.Logger, opts ...Option) (*Experiment, error) {
	if l == nil {
		l = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bodies, err := Layout(cfg, l)
	if err != nil {
		return nil, err
	}
	painter, err := cfg.Painter()
	if err != nil {
		return nil, err
	}
	world, err := sim.NewWorld(cfg.Bounds(), bodies, surface, painter)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	e := &Experiment{
		cfg:      cfg,
		recorder: sim.NewRecorder(cfg.Frames),
		metrics:  metrics.Standard(),
		log:      l,
	}
	for _, opt := range opts {
		opt(e)
	}

	schedOpts := []sim.Option{sim.WithScript(cfg.Script()), sim.WithLogger(l)}
	if e.recorder != nil {
		schedOpts = append(schedOpts, sim.WithObserver(e.recorder))
	}
	for _, m := range e.metrics {
		schedOpts = append(schedOpts, sim.WithObserver(m))
	}
	e.sched = sim.NewScheduler(world, sim.NewInputController(world, cfg.ImpulseScale), append(schedOpts, e.schedOpts...)...)
	return e, nil
}

func (e *Experiment) Scheduler() *sim.Scheduler { return e.sched }

// Recorder is nil for Live experiments.
func (e *Experiment) Recorder() *sim.Recorder { return e.recorder }

// Run steps the configured number of frames, back to back unless the
// experiment is Paced.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	var clock sim.Clock = sim.ImmediateClock{}
	if e.fps > 0 {
		rt := sim.NewRealtimeClock(e.fps)
		defer rt.Close()
		clock = rt
	}

	start := time.Now()
	if err := e.sched.Run(ctx, clock, e.cfg.Frames); err != nil {
		return nil, err
	}
	res := &Result{
		Metrics: metrics.Collect(e.metrics),
		Elapsed: time.Since(start),
	}
	if e.recorder != nil {
		res.Frames = e.recorder.Frames
	}
	e.log.Info("run complete", "frames", e.sched.Frame(), "bodies", e.sched.World().Len(), "elapsed", res.Elapsed)
	return res, nil
}

// Nudged runs cfg once per entry of nudges, each with body 0's initial x
// shifted by that amount, concurrently. Recordings come back in order.
func Nudged(ctx context.Context, cfg *config.Config, nudges []float64) ([][][]dynamo.Body, error) {
	recs, err := sim.RunEnsemble(ctx, len(nudges), cfg.Frames, func(i int) (*sim.Scheduler, *sim.Recorder, error) {
		dx := nudges[i]
		e, err := New(cfg, dynamo.NopSurface{}, nil)
		if err != nil {
			return nil, nil, err
		}
		if dx != 0 {
			bodies := e.sched.World().Bodies()
			if len(bodies) > 0 {
				bodies[0].Pos.X += dx
				e.sched.World().Reset(bodies)
			}
		}
		return e.sched, e.recorder, nil
	})
	if err != nil {
		return nil, err
	}
	out := make([][][]dynamo.Body, len(recs))
	for i, r := range recs {
		out[i] = r.Frames
	}
	return out, nil
}
