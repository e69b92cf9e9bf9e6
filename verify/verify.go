// SPDX-License-Identifier: MIT

package verify

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvsparse/csr"
)

// ErrMismatch is matched (errors.Is) by every *Mismatch.
var ErrMismatch = errors.New("verify: results differ")

// ErrDimensionMismatch is returned by Reference when A.Cols() != B.Rows().
var ErrDimensionMismatch = errors.New("verify: dimension mismatch")

// Array names used in Mismatch.Array.
const (
	ArrayShape  = "shape"
	ArrayRowPtr = "row_ptr"
	ArrayColInd = "col_ind"
	ArrayValues = "values"
)

// Mismatch describes the first position where two matrices diverge.
type Mismatch struct {
	Array     string  // one of the Array* constants
	Index     int     // position inside Array (row for shape mismatches)
	Got, Want float64 // the differing entries
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%v: %s[%d]: got %g, want %g", ErrMismatch, m.Array, m.Index, m.Got, m.Want)
}

func (m *Mismatch) Is(target error) bool { return target == ErrMismatch }

// Reference computes A×B densely with gonum and compresses the product back
// to CSR, dropping entries with |v| ≤ eps.
func Reference(a, b *csr.Matrix, eps float64) (*csr.Matrix, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Reference: %w", csr.ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return nil, fmt.Errorf("Reference: A is %dx%d, B is %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}
	if a.Rows() == 0 || b.Cols() == 0 || a.Cols() == 0 {
		// gonum rejects zero-sized dense matrices
		return csr.Zeros(a.Rows(), b.Cols())
	}

	var c mat.Dense
	c.Mul(toDense(a), toDense(b))

	r, k := c.Dims()
	bld := csr.NewBuilder(r, k)
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			if v := c.At(i, j); math.Abs(v) > eps {
				if err := bld.Append(i, j, v); err != nil {
					return nil, fmt.Errorf("Reference: %w", err)
				}
			}
		}
	}

	return bld.Build(eps)
}

// Compare requires identical shape, row pointers and column indices, and
// values within eps of each other. It returns nil or a *Mismatch.
func Compare(got, want *csr.Matrix, eps float64) error {
	if got == nil || want == nil {
		return fmt.Errorf("Compare: %w", csr.ErrNilMatrix)
	}
	if got.Rows() != want.Rows() {
		return &Mismatch{Array: ArrayShape, Index: 0, Got: float64(got.Rows()), Want: float64(want.Rows())}
	}
	if got.Cols() != want.Cols() {
		return &Mismatch{Array: ArrayShape, Index: 1, Got: float64(got.Cols()), Want: float64(want.Cols())}
	}
	gp, wp := got.RowPtr(), want.RowPtr()
	for i := range wp {
		if gp[i] != wp[i] {
			return &Mismatch{Array: ArrayRowPtr, Index: i, Got: float64(gp[i]), Want: float64(wp[i])}
		}
	}
	gc, wc := got.ColInd(), want.ColInd()
	for k := range wc {
		if gc[k] != wc[k] {
			return &Mismatch{Array: ArrayColInd, Index: k, Got: float64(gc[k]), Want: float64(wc[k])}
		}
	}
	gv, wv := got.Values(), want.Values()
	for k := range wv {
		if math.Abs(gv[k]-wv[k]) > eps {
			return &Mismatch{Array: ArrayValues, Index: k, Got: gv[k], Want: wv[k]}
		}
	}

	return nil
}

// toDense expands m into a gonum dense matrix (m must be non-empty).
func toDense(m *csr.Matrix) *mat.Dense {
	d := mat.NewDense(m.Rows(), m.Cols(), nil)
	for i := 0; i < m.Rows(); i++ {
		cols, vals := m.Row(i)
		for k, j := range cols {
			d.Set(i, j, vals[k])
		}
	}

	return d
}
