// SPDX-License-Identifier: MIT

package csr_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

// randomCSR returns a rows×cols matrix with about density·rows·cols entries.
func randomCSR(tb testing.TB, seed int64, rows, cols int, density float64) *csr.Matrix {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	b := csr.NewBuilder(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				require.NoError(tb, b.Append(i, j, rng.NormFloat64()))
			}
		}
	}
	m, err := b.Build(0)
	require.NoError(tb, err)

	return m
}
