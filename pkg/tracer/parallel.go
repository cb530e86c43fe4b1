package tracer

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelFor splits [0, n) into numTasks contiguous chunks and runs fn on each
// chunk in its own goroutine, returning once all chunks are done.
// numTasks <= 0 uses one task per CPU.
func parallelFor(n, numTasks int, fn func(from, to int)) {
	if n <= 0 {
		return
	}
	if numTasks <= 0 {
		numTasks = runtime.NumCPU()
	}
	numTasks = min(numTasks, n)
	chunkSize := (n + numTasks - 1) / numTasks

	var g errgroup.Group
	for from := 0; from < n; from += chunkSize {
		to := min(from+chunkSize, n)
		g.Go(func() error {
			fn(from, to)
			return nil
		})
	}
	_ = g.Wait()
}
