// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Provide the single canonical well-formedness check for loaders.
//   - Provide tolerance-based comparison used by verifiers and tests.
//
// The SpGEMM engine never calls Validate: malformed input is a precondition
// violation owned by whoever built the matrix.

package csr

import (
	"fmt"
	"math"
)

// Validate checks every CSR invariant of m.
//
// Implementation (fixed order, first violation wins):
//   - ErrNilMatrix → ErrBadShape → ErrLengthMismatch (rowPtr, colInd, values)
//   - ErrRowPtr (rowPtr[0]==0, non-decreasing)
//   - ErrOutOfRange (column in [0, cols)) → ErrColumnOrder (strictly increasing per row)
//   - ErrNaNInf (finite values)
//
// Complexity: O(rows + nnz), no allocation.
func Validate(m *Matrix) error {
	if m == nil {
		return csrErrorf(opValidate, ErrNilMatrix)
	}
	if m.rows < 0 || m.cols < 0 {
		return csrErrorf(opValidate, ErrBadShape)
	}
	rp := m.RowPtr()
	if len(rp) != m.rows+1 {
		return csrErrorf(opValidate, fmt.Errorf("len(rowPtr)=%d: %w", len(rp), ErrLengthMismatch))
	}
	if rp[0] != 0 {
		return csrErrorf(opValidate, fmt.Errorf("rowPtr[0]=%d: %w", rp[0], ErrRowPtr))
	}
	for i := 0; i < m.rows; i++ {
		if rp[i+1] < rp[i] {
			return csrErrorf(opValidate, fmt.Errorf("rowPtr[%d]=%d < rowPtr[%d]=%d: %w", i+1, rp[i+1], i, rp[i], ErrRowPtr))
		}
	}
	nnz := rp[m.rows]
	if len(m.colInd) != nnz || len(m.values) != nnz {
		return csrErrorf(opValidate, fmt.Errorf("nnz=%d: %w", nnz, ErrLengthMismatch))
	}
	for i := 0; i < m.rows; i++ {
		prev := -1
		for k := rp[i]; k < rp[i+1]; k++ {
			c := m.colInd[k]
			if c < 0 || c >= m.cols {
				return csrErrorf(opValidate, fmt.Errorf("row %d col %d: %w", i, c, ErrOutOfRange))
			}
			if c <= prev {
				return csrErrorf(opValidate, fmt.Errorf("row %d col %d after %d: %w", i, c, prev, ErrColumnOrder))
			}
			prev = c
			if v := m.values[k]; math.IsNaN(v) || math.IsInf(v, 0) {
				return csrErrorf(opValidate, fmt.Errorf("row %d col %d: %w", i, c, ErrNaNInf))
			}
		}
	}

	return nil
}

// Equal reports whether a and b have the same shape and structure (exact
// rowPtr and colInd) and values within eps of each other. The returned error
// is nil when equal; otherwise it wraps ErrNotEqual (or ErrNilMatrix) and
// names the first difference.
func Equal(a, b *Matrix, eps float64) error {
	if a == nil || b == nil {
		return csrErrorf(opEqual, ErrNilMatrix)
	}
	if a.rows != b.rows || a.cols != b.cols {
		return csrErrorf(opEqual, fmt.Errorf("shape %dx%d vs %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrNotEqual))
	}
	ra, rb := a.RowPtr(), b.RowPtr()
	for i := range ra {
		if ra[i] != rb[i] {
			return csrErrorf(opEqual, fmt.Errorf("rowPtr[%d]: %d vs %d: %w", i, ra[i], rb[i], ErrNotEqual))
		}
	}
	for k := range a.colInd {
		if a.colInd[k] != b.colInd[k] {
			return csrErrorf(opEqual, fmt.Errorf("colInd[%d]: %d vs %d: %w", k, a.colInd[k], b.colInd[k], ErrNotEqual))
		}
		if math.Abs(a.values[k]-b.values[k]) > eps {
			return csrErrorf(opEqual, fmt.Errorf("values[%d]: %g vs %g: %w", k, a.values[k], b.values[k], ErrNotEqual))
		}
	}

	return nil
}
