// SPDX-License-Identifier: MIT
// Package csr: convenience constructors and dense conversion.

package csr

import (
	"fmt"
	"math"
)

// Zeros returns a rows×cols matrix with no stored entries.
// Returns ErrBadShape for negative dimensions.
func Zeros(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, csrErrorf(opNew, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}

	return newUnchecked(rows, cols, make([]int, rows+1), []int{}, []float64{}), nil
}

// Identity returns I_n with n stored ones on the diagonal.
func Identity(n int) (*Matrix, error) {
	if n < 0 {
		return nil, csrErrorf(opNew, fmt.Errorf("%dx%d: %w", n, n, ErrBadShape))
	}
	rowPtr := make([]int, n+1)
	colInd := make([]int, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		rowPtr[i+1] = i + 1
		colInd[i] = i
		values[i] = 1
	}

	return newUnchecked(n, n, rowPtr, colInd, values), nil
}

// FromDense compresses a row-major [][]float64 into CSR, dropping every entry
// with |v| ≤ eps. All rows must have the same length (ErrLengthMismatch).
// NaN/Inf entries are rejected with ErrNaNInf.
//
// Complexity: O(r*c) time, O(r + nnz) space.
func FromDense(data [][]float64, eps float64) (*Matrix, error) {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}
	rowPtr := make([]int, rows+1)
	colInd := make([]int, 0)
	values := make([]float64, 0)
	for i, row := range data {
		if len(row) != cols {
			return nil, csrErrorf(opFromDense, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), cols, ErrLengthMismatch))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, csrErrorf(opFromDense, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			if math.Abs(v) <= eps {
				continue
			}
			colInd = append(colInd, j)
			values = append(values, v)
		}
		rowPtr[i+1] = len(colInd)
	}

	return newUnchecked(rows, cols, rowPtr, colInd, values), nil
}

// ToDense expands m into a freshly allocated rows×cols slice of rows.
// Intended for tests, small matrices and reference checks: O(rows*cols) memory.
func (m *Matrix) ToDense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		cols, vals := m.Row(i)
		for k, j := range cols {
			out[i][j] = vals[k]
		}
	}

	return out
}
