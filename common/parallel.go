package common

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

const DefaultParallelThreshold = 1000

// Parallel sizes the fork-join loops used by the mesh algorithms.
type Parallel struct {
	// Inputs with fewer elements than Threshold run on the calling goroutine.
	Threshold int `yaml:"threshold"`
	// Workers caps the number of chunks; <= 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

func DefaultParallel() Parallel {
	return Parallel{Threshold: DefaultParallelThreshold}
}

func (p Parallel) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ParallelFor splits [0,n) into contiguous ranges and calls fn once per range.
// fn must only write to slots inside its own range. The first error returned
// by any range is returned after all ranges have finished.
func ParallelFor(n int, p Parallel, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers := min(p.workers(), n)
	if n < p.Threshold || workers <= 1 {
		return fn(0, n)
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
