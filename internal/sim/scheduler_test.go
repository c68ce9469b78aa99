package sim

import (
	"bytes"
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/arena/internal/dynamo"
	"github.com/san-kum/arena/internal/layout"
	"github.com/san-kum/arena/internal/logging"
)

func newScheduler(opts ...Option) *Scheduler {
	bodies, err := layout.Grid(dynamo.DefaultBounds(), layout.DefaultParams())
	Expect(err).NotTo(HaveOccurred())
	w, err := NewWorld(dynamo.DefaultBounds(), bodies, dynamo.NopSurface{}, nil)
	Expect(err).NotTo(HaveOccurred())
	return NewScheduler(w, NewInputController(w, dynamo.ImpulseScale), opts...)
}

var _ = Describe("Scheduler", func() {
	Describe("Step", func() {
		It("applies queued pointer events before ticking", func() {
			s := newScheduler()
			Expect(s.Enqueue(Press(60, 60))).To(BeTrue())
			Expect(s.Enqueue(Release(160, 110))).To(BeTrue())

			stats, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Frame).To(Equal(0))
			Expect(stats.Events).To(Equal(2))

			b := s.World().Bodies()[0]
			Expect(b.Vel).To(Equal(dynamo.Vec2{X: 1, Y: 0.5}))
			Expect(b.Pos).To(Equal(dynamo.Vec2{X: 61, Y: 60.5}))
			Expect(s.Frame()).To(Equal(1))
		})

		It("replays scripted gestures on their frame", func() {
			script := Slingshot(2, dynamo.Vec2{X: 60, Y: 60}, dynamo.Vec2{X: 260, Y: 60})
			s := newScheduler(WithScript(script))

			for i := 0; i < 2; i++ {
				_, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(s.World().Bodies()[0].Vel).To(Equal(dynamo.Vec2{}))

			_, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.World().Bodies()[0].Vel).To(Equal(dynamo.Vec2{X: 2}))
		})

		It("notifies observers with the advanced state", func() {
			rec := NewRecorder(4)
			s := newScheduler(WithObserver(rec))
			for i := 0; i < 4; i++ {
				_, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(rec.Frames).To(HaveLen(4))
			Expect(rec.Stats[3].Frame).To(Equal(3))
			Expect(rec.Last()).To(HaveLen(layout.DefaultCount))
		})

		It("refuses to step once stopped", func() {
			s := newScheduler()
			s.Stop()
			_, err := s.Step()
			Expect(err).To(MatchError(dynamo.ErrStopped))
			Expect(s.Enqueue(Press(0, 0))).To(BeFalse())
		})

		It("drops events when the queue is full", func() {
			s := newScheduler(WithQueueSize(1))
			Expect(s.Enqueue(Press(0, 0))).To(BeTrue())
			Expect(s.Enqueue(Press(0, 0))).To(BeFalse())
		})
	})

	Describe("listener lifecycle", func() {
		It("deregisters attached listeners on Stop", func() {
			hub := NewPointerHub()
			s := newScheduler()
			Expect(s.Attach(hub)).To(Succeed())
			Expect(hub.Listeners()).To(Equal(1))

			s.Stop()
			s.Stop()
			Expect(hub.Listeners()).To(Equal(0))
			Expect(s.Attach(hub)).To(MatchError(dynamo.ErrStopped))
			Eventually(s.Done()).Should(BeClosed())
		})

		It("routes hub events into the next frame", func() {
			hub := NewPointerHub()
			s := newScheduler()
			Expect(s.Attach(hub)).To(Succeed())

			hub.Publish(Press(60, 60))
			hub.Publish(Release(60, 160))
			Expect(s.World().Bodies()[0].Vel).To(Equal(dynamo.Vec2{}))

			_, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.World().Bodies()[0].Vel).To(Equal(dynamo.Vec2{Y: 1}))
		})
	})

	Describe("Run", func() {
		It("stops after the frame budget and releases listeners", func() {
			hub := NewPointerHub()
			s := newScheduler()
			Expect(s.Attach(hub)).To(Succeed())

			Expect(s.Run(context.Background(), ImmediateClock{}, 25)).To(Succeed())
			Expect(s.Frame()).To(Equal(25))
			Expect(s.Stopped()).To(BeTrue())
			Expect(hub.Listeners()).To(Equal(0))
		})

		It("returns when Stop is called from another goroutine", func() {
			s := newScheduler()
			clock := NewRealtimeClock(240)
			defer clock.Close()

			done := make(chan error, 1)
			go func() { done <- s.Run(context.Background(), clock, 0) }()

			time.Sleep(20 * time.Millisecond)
			s.Stop()
			Eventually(done, time.Second).Should(Receive(BeNil()))
		})

		It("stops an unpaced loop from another goroutine and logs the frame count", func() {
			var buf bytes.Buffer
			s := newScheduler(WithLogger(logging.New(&buf, "debug")))

			done := make(chan error, 1)
			go func() { done <- s.Run(context.Background(), ImmediateClock{}, 0) }()

			Eventually(s.Frame, time.Second).Should(BeNumerically(">", 10))
			s.Stop()
			Eventually(done, time.Second).Should(Receive(BeNil()))
			Expect(s.Stopped()).To(BeTrue())
			Expect(buf.String()).To(ContainSubstring("scheduler stopped"))
		})

		It("reports context cancellation", func() {
			s := newScheduler()
			ctx, cancel := context.WithCancel(context.Background())
			clock := NewRealtimeClock(240)
			defer clock.Close()

			done := make(chan error, 1)
			go func() { done <- s.Run(ctx, clock, 0) }()
			cancel()

			Eventually(done, time.Second).Should(Receive(MatchError(context.Canceled)))
			Expect(s.Stopped()).To(BeTrue())
		})

		It("accepts events published concurrently with the loop", func() {
			hub := NewPointerHub()
			s := newScheduler()
			Expect(s.Attach(hub)).To(Succeed())

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					hub.Publish(Press(60, 60))
					hub.Publish(Release(61, 60))
				}
			}()
			Expect(s.Run(context.Background(), ImmediateClock{}, 200)).To(Succeed())
			wg.Wait()

			for _, b := range s.World().Bodies() {
				Expect(dynamo.DefaultBounds().Contains(b)).To(BeTrue())
			}
		})
	})

	Describe("determinism", func() {
		It("produces identical state for identical inputs", func() {
			script := append(
				Slingshot(0, dynamo.Vec2{X: 60, Y: 60}, dynamo.Vec2{X: 560, Y: 260}),
				Slingshot(40, dynamo.Vec2{X: 500, Y: 170}, dynamo.Vec2{X: 200, Y: 470})...,
			)
			build := func(int) (*Scheduler, *Recorder, error) {
				rec := NewRecorder(300)
				return newScheduler(WithScript(script), WithObserver(rec)), rec, nil
			}

			runs, err := RunEnsemble(context.Background(), 2, 300, build)
			Expect(err).NotTo(HaveOccurred())
			Expect(runs).To(HaveLen(2))
			Expect(runs[0].Frames).To(HaveLen(300))
			Expect(runs[0].Frames).To(Equal(runs[1].Frames))
		})
	})
})
