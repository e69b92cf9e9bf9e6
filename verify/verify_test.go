// SPDX-License-Identifier: MIT

package verify_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/spgemm"
	"github.com/katalvlaran/lvsparse/verify"
	"github.com/stretchr/testify/require"
)

func random(t *testing.T, seed int64, rows, cols int, density float64) *csr.Matrix {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	b := csr.NewBuilder(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				require.NoError(t, b.Append(i, j, float64(rng.Intn(7)-3)))
			}
		}
	}
	m, err := b.Build(0)
	require.NoError(t, err)

	return m
}

func TestReference_AgreesWithEngine(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 6; seed++ {
		a := random(t, seed, 20, 15, 0.2)
		b := random(t, seed+100, 15, 25, 0.2)

		want, err := verify.Reference(a, b, csr.DefaultEpsilon)
		require.NoError(t, err)
		for _, s := range []spgemm.Strategy{spgemm.StrategyDot, spgemm.StrategyGustavson} {
			got, err := spgemm.Multiply(ctx, a, b, spgemm.WithStrategy(s))
			require.NoError(t, err)
			require.NoError(t, verify.Compare(got, want, 1e-9), "seed %d %s", seed, s)
		}
	}
}

func TestReference_EdgeShapes(t *testing.T) {
	a, _ := csr.Zeros(0, 3)
	b, _ := csr.Zeros(3, 2)
	c, err := verify.Reference(a, b, 0)
	require.NoError(t, err)
	require.Equal(t, 0, c.Rows())
	require.Equal(t, 2, c.Cols())

	_, err = verify.Reference(b, b, 0)
	require.ErrorIs(t, err, verify.ErrDimensionMismatch)
	_, err = verify.Reference(nil, b, 0)
	require.ErrorIs(t, err, csr.ErrNilMatrix)
}

func TestCompare_ReportsFirstDivergence(t *testing.T) {
	want, _ := csr.FromDense([][]float64{{1, 0, 2}, {0, 3, 0}}, 0)

	cases := []struct {
		name  string
		got   [][]float64
		array string
		index int
	}{
		{"value", [][]float64{{1, 0, 2}, {0, 3.5, 0}}, verify.ArrayValues, 2},
		{"column", [][]float64{{1, 2, 0}, {0, 3, 0}}, verify.ArrayColInd, 1},
		{"row pointer", [][]float64{{1, 0, 0}, {0, 3, 4}}, verify.ArrayRowPtr, 1},
		{"shape", [][]float64{{1, 0, 2}}, verify.ArrayShape, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := csr.FromDense(tc.got, 0)
			err := verify.Compare(got, want, 1e-9)
			require.ErrorIs(t, err, verify.ErrMismatch)
			var mm *verify.Mismatch
			require.True(t, errors.As(err, &mm))
			require.Equal(t, tc.array, mm.Array)
			require.Equal(t, tc.index, mm.Index)
		})
	}

	require.NoError(t, verify.Compare(want, want, 0))
}
