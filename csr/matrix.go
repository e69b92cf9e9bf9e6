// SPDX-License-Identifier: MIT
// Package csr: the compressed-row matrix entity.
//
// Purpose:
//   - Hold rows/cols and the three CSR arrays behind read-only accessors.
//   - Keep construction cheap: New performs only O(1) shape checks; full
//     well-formedness is the job of Validate (called by loaders).
//
// Determinism & Performance:
//   - Accessors return the backing slices without copying. Callers MUST NOT
//     mutate them; kernels rely on operands being immutable while they run.

package csr

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultEpsilon is the tolerance below which a computed value is treated as
// a structural zero and never stored.
const DefaultEpsilon = 1e-10

// Matrix is an R×C sparse matrix in compressed-row form.
// The zero value is a valid 0×0 matrix with no entries.
type Matrix struct {
	rows, cols int       // dimensions
	rowPtr     []int     // len rows+1; rowPtr[rows] == nnz
	colInd     []int     // len nnz; strictly increasing within a row
	values     []float64 // len nnz
}

// New builds a Matrix from caller-provided arrays and takes ownership of them.
//
// Implementation:
//   - Stage 1: reject negative dimensions (ErrBadShape).
//   - Stage 2: check len(rowPtr)==rows+1 and len(colInd)==len(values)==rowPtr[rows].
//
// Errors:
//   - ErrBadShape, ErrLengthMismatch (wrapped with "New").
//
// Complexity:
//   - Time O(1), Space O(1). Monotonicity and column order are NOT checked;
//     run Validate on untrusted input.
func New(rows, cols int, rowPtr, colInd []int, values []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, csrErrorf(opNew, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}
	if len(rowPtr) != rows+1 {
		return nil, csrErrorf(opNew, fmt.Errorf("len(rowPtr)=%d, want %d: %w", len(rowPtr), rows+1, ErrLengthMismatch))
	}
	nnz := rowPtr[rows]
	if len(colInd) != nnz || len(values) != nnz {
		return nil, csrErrorf(opNew, fmt.Errorf("nnz=%d, len(colInd)=%d, len(values)=%d: %w",
			nnz, len(colInd), len(values), ErrLengthMismatch))
	}

	return &Matrix{rows: rows, cols: cols, rowPtr: rowPtr, colInd: colInd, values: values}, nil
}

// newUnchecked wraps arrays produced by this package's own kernels.
func newUnchecked(rows, cols int, rowPtr, colInd []int, values []float64) *Matrix {
	return &Matrix{rows: rows, cols: cols, rowPtr: rowPtr, colInd: colInd, values: values}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Dims returns (rows, cols).
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	if len(m.rowPtr) == 0 {
		return 0 // zero-value matrix
	}

	return m.rowPtr[m.rows]
}

// RowPtr returns the row offsets (length Rows()+1). Read-only.
func (m *Matrix) RowPtr() []int {
	if m.rowPtr == nil {
		return []int{0}
	}

	return m.rowPtr
}

// ColInd returns the column index of every stored entry. Read-only.
func (m *Matrix) ColInd() []int { return m.colInd }

// Values returns every stored value. Read-only.
func (m *Matrix) Values() []float64 { return m.values }

// Row returns the column indices and values of row i as sub-slices of the
// backing storage. It panics if i is outside [0, Rows()), like slice indexing.
func (m *Matrix) Row(i int) (cols []int, vals []float64) {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]

	return m.colInd[lo:hi], m.values[lo:hi]
}

// At returns the entry at (i, j), or 0 when it is not stored.
// Lookup is a binary search inside row i: O(log nnz(row)).
// Returns ErrOutOfRange for invalid indices.
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, csrErrorf(opAt, fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, m.rows, m.cols, ErrOutOfRange))
	}
	cols, vals := m.Row(i)
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return vals[k], nil
	}

	return 0, nil
}

// Clone returns a deep copy that shares no storage with m.
// Complexity: O(rows + nnz).
func (m *Matrix) Clone() *Matrix {
	return newUnchecked(m.rows, m.cols,
		append([]int(nil), m.RowPtr()...),
		append([]int(nil), m.colInd...),
		append([]float64(nil), m.values...))
}

// String renders the matrix as a list of (row, col)=value triples, one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "csr %dx%d nnz=%d\n", m.rows, m.cols, m.NNZ())
	for i := 0; i < m.rows; i++ {
		cols, vals := m.Row(i)
		if len(cols) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%d:", i)
		for k := range cols {
			fmt.Fprintf(&sb, " (%d)=%g", cols[k], vals[k])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
