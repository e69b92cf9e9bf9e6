// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool reused across many ParallelFor calls.
// Workers are spawned once by NewPool and live until Close.
//
// Usage:
//
//	pool := dispatch.NewPool(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelFor(ctx, rows, func(lo, hi int) error {
//	    return processRows(lo, hi)
//	})
type Pool struct {
	numWorkers int
	grain      int
	workC      chan workItem
	// mu is held for reading by ParallelFor while it feeds workC and for
	// writing by Close, so workC is never closed under a pending send.
	mu     sync.RWMutex
	closed bool
}

// workItem is one block handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithGrain switches the pool from static chunking to atomic work stealing in
// batches of grain indices. Use it when per-index cost is uneven (rows with
// very different nnz). grain <= 0 keeps static chunking.
func WithGrain(grain int) PoolOption {
	return func(p *Pool) {
		if grain > 0 {
			p.grain = grain
		}
	}
}

// NewPool creates a pool with numWorkers persistent workers.
// If numWorkers <= 0, GOMAXPROCS is used.
func NewPool(numWorkers int, opts ...PoolOption) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}
	for _, opt := range opts {
		opt(p)
	}
	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int { return p.numWorkers }

// Close waits for in-flight ParallelFor calls, then shuts the workers down.
// Safe to call twice and concurrently with ParallelFor; later ParallelFor
// calls degrade to inline execution. Close must not be called from a Body.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.workC)
}

// ParallelFor implements Dispatcher.
func (p *Pool) ParallelFor(ctx context.Context, n int, body Body) error {
	if n <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || min(p.numWorkers, n) == 1 {
		return runBody(body, 0, n)
	}
	if p.grain > 0 {
		return p.parallelForBatched(ctx, n, body)
	}

	count, size := chunks(n, p.numWorkers)
	var (
		wg    sync.WaitGroup
		first firstError
	)
	wg.Add(count)
	for b := range count {
		lo, hi := b*size, min((b+1)*size, n)
		p.workC <- workItem{
			fn: func() {
				if first.failed() {
					return
				}
				if err := ctx.Err(); err != nil {
					first.set(err)
					return
				}
				first.set(runBody(body, lo, hi))
			},
			barrier: &wg,
		}
	}
	wg.Wait()

	return first.get()
}

// parallelForBatched hands out [start, start+grain) batches via an atomic counter.
func (p *Pool) parallelForBatched(ctx context.Context, n int, body Body) error {
	numBatches := (n + p.grain - 1) / p.grain
	workers := min(p.numWorkers, numBatches)

	var (
		nextBatch atomic.Int64
		wg        sync.WaitGroup
		first     firstError
	)
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{
			fn: func() {
				for !first.failed() {
					if err := ctx.Err(); err != nil {
						first.set(err)
						return
					}
					start := int(nextBatch.Add(1)-1) * p.grain
					if start >= n {
						return
					}
					first.set(runBody(body, start, min(start+p.grain, n)))
				}
			},
			barrier: &wg,
		}
	}
	wg.Wait()

	return first.get()
}

// firstError keeps the first non-nil error reported by concurrent blocks.
type firstError struct {
	mu  sync.Mutex
	err error
	bad atomic.Bool
}

func (f *firstError) set(err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	if f.err == nil {
		f.err = err
		f.bad.Store(true)
	}
	f.mu.Unlock()
}

func (f *firstError) failed() bool { return f.bad.Load() }

func (f *firstError) get() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}
