// SPDX-License-Identifier: MIT
// Package spgemm_test: shared fixtures.

package spgemm_test

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/dispatch"
	"github.com/stretchr/testify/require"
)

// randomCSR builds a rows×cols matrix with roughly density·rows·cols entries
// drawn from {-2, -1, 1, 2, 0.5}. Small exact values make cancellation (and
// therefore epsilon filtering) common.
func randomCSR(tb testing.TB, seed int64, rows, cols int, density float64) *csr.Matrix {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	pool := []float64{-2, -1, 1, 2, 0.5}
	bld := csr.NewBuilder(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				require.NoError(tb, bld.Append(i, j, pool[rng.Intn(len(pool))]))
			}
		}
	}
	m, err := bld.Build(0)
	require.NoError(tb, err)

	return m
}

// mustDense is FromDense with eps 0.
func mustDense(tb testing.TB, data [][]float64) *csr.Matrix {
	tb.Helper()
	m, err := csr.FromDense(data, 0)
	require.NoError(tb, err)

	return m
}

// requireWellFormed checks the structural invariants of a product.
func requireWellFormed(t *testing.T, c *csr.Matrix, eps float64) {
	t.Helper()
	require.NoError(t, csr.Validate(c))
	for _, v := range c.Values() {
		require.Greater(t, abs(v), eps, "stored near-zero value")
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var errInjected = errors.New("injected failure")

// faultyDispatcher forwards to Serial but fails the call numbered failAt
// (1-based). With panics set, that call's body panics instead.
type faultyDispatcher struct {
	failAt int32
	panics bool
	calls  atomic.Int32
}

func (f *faultyDispatcher) Workers() int { return 1 }

func (f *faultyDispatcher) ParallelFor(ctx context.Context, n int, body dispatch.Body) error {
	if f.calls.Add(1) != f.failAt {
		return dispatch.Serial{}.ParallelFor(ctx, n, body)
	}
	if f.panics {
		return dispatch.Serial{}.ParallelFor(ctx, n, func(lo, hi int) error {
			panic("unit blew up")
		})
	}

	return errInjected
}
