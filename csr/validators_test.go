// SPDX-License-Identifier: MIT

package csr_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		rows   int
		cols   int
		rowPtr []int
		colInd []int
		values []float64
		want   error
	}{
		{"ok", 2, 3, []int{0, 2, 3}, []int{0, 2, 1}, []float64{1, 2, 3}, nil},
		{"rowPtr start", 2, 3, []int{1, 2, 3}, []int{0, 2, 1}, []float64{1, 2, 3}, csr.ErrRowPtr},
		{"rowPtr decreasing", 2, 3, []int{0, 3, 2}, []int{0, 1}, []float64{1, 2}, csr.ErrRowPtr},
		{"column out of range", 1, 2, []int{0, 1}, []int{2}, []float64{1}, csr.ErrOutOfRange},
		{"negative column", 1, 2, []int{0, 1}, []int{-1}, []float64{1}, csr.ErrOutOfRange},
		{"unsorted", 1, 3, []int{0, 2}, []int{2, 0}, []float64{1, 2}, csr.ErrColumnOrder},
		{"duplicate", 1, 3, []int{0, 2}, []int{1, 1}, []float64{1, 2}, csr.ErrColumnOrder},
		{"NaN", 1, 3, []int{0, 1}, []int{1}, []float64{nan()}, csr.ErrNaNInf},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := csr.New(tc.rows, tc.cols, tc.rowPtr, tc.colInd, tc.values)
			require.NoError(t, err)
			err = csr.Validate(m)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}

	require.ErrorIs(t, csr.Validate(nil), csr.ErrNilMatrix)
}

func TestEqual(t *testing.T) {
	a, _ := csr.FromDense([][]float64{{1, 0}, {0, 2}}, 0)
	b, _ := csr.FromDense([][]float64{{1, 0}, {0, 2 + 1e-12}}, 0)
	require.NoError(t, csr.Equal(a, b, 1e-9))
	require.ErrorIs(t, csr.Equal(a, b, 0), csr.ErrNotEqual)

	c, _ := csr.FromDense([][]float64{{1, 0}, {2, 0}}, 0)
	require.ErrorIs(t, csr.Equal(a, c, 1), csr.ErrNotEqual)

	d, _ := csr.FromDense([][]float64{{1, 0, 0}, {0, 2, 0}}, 0)
	require.ErrorIs(t, csr.Equal(a, d, 1), csr.ErrNotEqual)

	require.ErrorIs(t, csr.Equal(a, nil, 0), csr.ErrNilMatrix)
}
