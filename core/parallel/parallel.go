// Package parallel provides chunked worker helpers for CPU-bound loops.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides items across the available CPU cores and executes fn
// for each half-open range [start, end). fn instances run concurrently and
// must only write to disjoint output ranges.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item is covered.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold runs fn over [0, items) sequentially when items
// is at or below threshold, and in parallel otherwise. Small inputs are not
// worth the goroutine overhead.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ParallelizeItems executes fn once per item index and returns the error of
// the lowest-index item that failed, or nil if all succeeded. Items are
// independent; a failure does not cancel the remaining items.
func ParallelizeItems(items int, fn func(i int) error) error {
	if items == 0 {
		return nil
	}

	errs := make([]error, items)
	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = fn(i)
		}
	})

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
