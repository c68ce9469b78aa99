package sim

import (
	"context"
	"time"
)

// Clock paces the frame loop. Wait blocks until the next frame is due.
type Clock interface {
	Wait(ctx context.Context) error
}

// RealtimeClock ticks at a fixed frame rate.
type RealtimeClock struct {
	ticker *time.Ticker
}

func NewRealtimeClock(fps int) *RealtimeClock {
	if fps <= 0 {
		fps = 60
	}
	return &RealtimeClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (c *RealtimeClock) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

func (c *RealtimeClock) Close() { c.ticker.Stop() }

// ImmediateClock never waits. Used for headless runs.
type ImmediateClock struct{}

func (ImmediateClock) Wait(ctx context.Context) error { return ctx.Err() }
