/*package parallel contains small helpers for splitting embarrassingly
parallel loops across goroutines. Every component in this library writes each
unit of work to its own output slot, so the helpers here never need locks:
callers only have to make sure fn writes exclusively inside [lo, hi).
*/
package parallel

import (
	"runtime"
	"sync"
)

// Workers normalizes a worker-count request. Zero or negative values select
// one worker per CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Do splits the index range [0, n) into contiguous blocks and calls
// fn(lo, hi) on each block from its own goroutine, then waits for all of
// them to finish. fn must only write to output slots with indices in
// [lo, hi).
func Do(n, workers int, fn func(lo, hi int)) {
	workers = Workers(workers)
	if workers > n { workers = n }
	if workers <= 1 {
		fn(0, n)
		return
	}

	block := n / workers
	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for id := 0; id < workers; id++ {
		lo, hi := id*block, (id+1)*block
		if id == workers-1 { hi = n }
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
