package sim

import (
	"context"
	"sync"
)

// Factory builds the i-th independent scheduler and the recorder observing it.
type Factory func(i int) (*Scheduler, *Recorder, error)

// RunEnsemble runs n schedulers built by build concurrently, each headless
// for frames frames. Every run keeps its own world; nothing is shared.
func RunEnsemble(ctx context.Context, n, frames int, build Factory) ([]*Recorder, error) {
	results := make([]*Recorder, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sched, rec, err := build(idx)
			if err != nil {
				errs[idx] = err
				return
			}
			errs[idx] = sched.Run(ctx, ImmediateClock{}, frames)
			results[idx] = rec
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
