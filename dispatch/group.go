// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Group spawns fresh goroutines on every ParallelFor call, at most Workers()
// at a time, using errgroup for the join and for first-error cancellation.
// It needs no Close and is safe for concurrent use.
type Group struct {
	workers int
}

// NewGroup returns a Group limited to workers concurrent blocks
// (GOMAXPROCS when workers <= 0).
func NewGroup(workers int) *Group {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Group{workers: workers}
}

// Workers implements Dispatcher.
func (g *Group) Workers() int { return g.workers }

// ParallelFor implements Dispatcher. Once any block fails, the derived
// context is cancelled and blocks not yet started are skipped.
func (g *Group) ParallelFor(ctx context.Context, n int, body Body) error {
	if n <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	count, size := chunks(n, g.workers)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for b := range count {
		lo, hi := b*size, min((b+1)*size, n)
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return runBody(body, lo, hi)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
