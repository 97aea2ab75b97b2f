// Package parallel distributes independent loop iterations across CPU
// cores.
//
// The CPU backend uses it for row-level kernel loops: every row of a
// matrix product or a softmax batch is computed without reading any
// other row, so the rows can run on separate goroutines. Callers pass
// a Config so each site can pick the chunk threshold that matches its
// per-iteration cost.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how For splits work across goroutines.
type Config struct {
	Enabled      bool // Run iterations concurrently when true.
	NumWorkers   int  // Upper bound on worker goroutines.
	MinChunkSize int  // Smallest n worth spawning goroutines for.
}

// DefaultConfig enables parallelism on multi-core machines with one
// worker per core. The chunk threshold suits element-wise loops;
// kernels whose iterations carry heavy work (a full matrix row, say)
// should lower it.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// For runs f(i) for every i in [0, n).
//
// Iterations must be independent: f may run on any goroutine and sees
// no ordering guarantee. Falls back to a plain loop when parallelism
// is disabled or n is below the configured threshold, so callers can
// route every loop through For without penalizing small inputs.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
