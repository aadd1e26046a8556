// Package parallel splits index ranges across goroutines.
package parallel

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Workers resolves an n_jobs style setting into a worker count.
// nJobs < 0 means one worker per CPU core; 0 is treated as 1.
func Workers(nJobs int) int {
	switch {
	case nJobs < 0:
		return runtime.NumCPU()
	case nJobs == 0:
		return 1
	default:
		return nJobs
	}
}

// chunks returns [start, end) ranges covering items, at most workers of them.
func chunks(items, workers int) [][2]int {
	if items <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > items {
		workers = items
	}

	// ceiling division
	chunkSize := (items + workers - 1) / workers

	ranges := make([][2]int, 0, workers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// Parallelize divides items by the number of CPU cores and runs fn once per
// range (start, end).
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeWithWorkers(items, runtime.NumCPU(), fn)
}

// ParallelizeWithWorkers is Parallelize with an explicit worker count.
// With one worker fn runs on the calling goroutine.
func ParallelizeWithWorkers(items, workers int, fn func(start, end int)) {
	ranges := chunks(items, workers)
	if len(ranges) == 1 {
		fn(ranges[0][0], ranges[0][1])
		return
	}

	var wg sync.WaitGroup
	for _, r := range ranges {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(r[0], r[1])
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs sequentially when items <= threshold.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}

// ParallelizeErr is ParallelizeWithWorkers for functions that can fail.
// It returns the first error; ranges already started run to completion.
func ParallelizeErr(items, workers int, fn func(start, end int) error) error {
	ranges := chunks(items, workers)
	if len(ranges) == 1 {
		return fn(ranges[0][0], ranges[0][1])
	}

	var g errgroup.Group
	for _, r := range ranges {
		s, e := r[0], r[1]
		g.Go(func() error {
			return fn(s, e)
		})
	}
	return g.Wait()
}
