package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/logging"
)

const defaultQueueSize = 64

type Option func(*Scheduler)

func WithScript(s Script) Option { return func(sc *Scheduler) { sc.script = s } }

func WithObserver(o Observer) Option {
	return func(sc *Scheduler) { sc.observers = append(sc.observers, o) }
}

func WithLogger(l *log.Logger) Option { return func(sc *Scheduler) { sc.log = l } }

func WithQueueSize(n int) Option {
	return func(sc *Scheduler) {
		if n > 0 {
			sc.queueSize = n
		}
	}
}

// Scheduler drives frames of a World and applies queued pointer events
// between them.
type Scheduler struct {
	world     *World
	input     *InputController
	log       *log.Logger
	script    Script
	observers []Observer
	pool      *SnapshotPool
	queueSize int
	events    chan PointerEvent
	frame     atomic.Int64

	mu      sync.Mutex
	detach  []func()
	stopCh  chan struct{}
	stopped atomic.Bool
	once    sync.Once
}

func NewScheduler(world *World, input *InputController, opts ...Option) *Scheduler {
	s := &Scheduler{
		world:     world,
		input:     input,
		log:       logging.Discard(),
		pool:      NewSnapshotPool(),
		queueSize: defaultQueueSize,
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = make(chan PointerEvent, s.queueSize)
	return s
}

// Attach subscribes to src until the scheduler stops.
func (s *Scheduler) Attach(src PointerSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() {
		return dynamo.ErrStopped
	}
	s.detach = append(s.detach, src.Subscribe(func(ev PointerEvent) { s.Enqueue(ev) }))
	return nil
}

// Enqueue queues ev for the next frame. It never blocks; events arriving
// after Stop or while the queue is full are dropped.
func (s *Scheduler) Enqueue(ev PointerEvent) bool {
	if s.stopped.Load() {
		return false
	}
	select {
	case s.events <- ev:
		return true
	default:
		s.log.Warn("pointer queue full, dropping event", "kind", ev.Kind, "x", ev.X, "y", ev.Y)
		return false
	}
}

// Step applies scripted and queued pointer events, ticks the world once
// and notifies observers.
func (s *Scheduler) Step() (FrameStats, error) {
	if s.stopped.Load() {
		return FrameStats{}, dynamo.ErrStopped
	}

	frame := int(s.frame.Load())
	applied := 0
	for _, ev := range s.script.At(frame) {
		s.apply(ev)
		applied++
	}
drain:
	for {
		select {
		case ev := <-s.events:
			s.apply(ev)
			applied++
		default:
			break drain
		}
	}

	stats := s.world.Tick()
	stats.Frame = frame
	stats.Events = applied
	s.frame.Add(1)

	if len(s.observers) > 0 {
		snap := s.pool.Get()
		*snap = s.world.copyInto(*snap)
		for _, o := range s.observers {
			o.OnFrame(stats, *snap)
		}
		s.pool.Put(snap)
	}
	return stats, nil
}

func (s *Scheduler) apply(ev PointerEvent) {
	if err := s.input.Handle(ev); err != nil {
		s.log.Debug("pointer event rejected", "err", &dynamo.FrameError{Frame: int(s.frame.Load()), Wrapped: err})
	}
}

// Run steps until ctx is done, Stop is called, or maxFrames frames have
// run (maxFrames <= 0 means no limit). The scheduler is stopped on return.
// A cancelled context is reported as its error; Stop and an exhausted
// frame budget return nil.
func (s *Scheduler) Run(ctx context.Context, clock Clock, maxFrames int) error {
	defer s.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	for n := 0; maxFrames <= 0 || n < maxFrames; n++ {
		if _, err := s.Step(); err != nil {
			if errors.Is(err, dynamo.ErrStopped) {
				return nil
			}
			return err
		}
		if err := clock.Wait(ctx); err != nil {
			if s.stopped.Load() {
				return nil
			}
			return err
		}
	}
	return nil
}

// Stop halts scheduling and releases every attached listener. Safe to
// call more than once and from any goroutine.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped.Store(true)
		detach := s.detach
		s.detach = nil
		s.mu.Unlock()

		for _, fn := range detach {
			fn()
		}
		close(s.stopCh)
		s.log.Debug("scheduler stopped", "frames", s.frame.Load(), "listeners", len(detach))
	})
}

func (s *Scheduler) Done() <-chan struct{} { return s.stopCh }

func (s *Scheduler) Stopped() bool { return s.stopped.Load() }

// Frame is the number of frames ticked so far.
func (s *Scheduler) Frame() int { return int(s.frame.Load()) }

func (s *Scheduler) World() *World { return s.world }
