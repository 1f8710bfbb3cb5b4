package typist

import (
	"context"
	"runtime"
	"sync"
)

// workerPool runs indexed tasks on a fixed number of goroutines. One pool
// serves one conversion; nothing is shared between calls.
type workerPool struct {
	workers int
}

// newWorkerPool creates a pool. If workers is 0 or negative, GOMAXPROCS is
// used.
func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{workers: workers}
}

// execute calls task(i) for every i in [0, n) and waits for them. Tasks
// record their own results by index, so completion order does not matter.
//
// When ctx is cancelled no further tasks are dispatched; tasks already
// handed to a worker run to completion and ctx.Err() is returned so the
// caller can discard the partial results.
func (p *workerPool) execute(ctx context.Context, n int, task func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	workers := min(p.workers, n)

	// Buffer a few tasks per worker so dispatch does not stall on a slow
	// tile.
	queue := make(chan int, workers*4)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range queue {
				// Queued but not yet started tasks are dropped on
				// cancellation.
				if ctx.Err() != nil {
					continue
				}
				task(i)
			}
		}()
	}

	var err error
dispatch:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case queue <- i:
		}
	}
	close(queue)
	wg.Wait()

	if err == nil {
		err = ctx.Err()
	}
	return err
}
