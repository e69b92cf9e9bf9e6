// SPDX-License-Identifier: MIT

package csr_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/stretchr/testify/require"
)

func TestNew_ShapeAndLengths(t *testing.T) {
	m, err := csr.New(2, 3, []int{0, 1, 3}, []int{2, 0, 1}, []float64{5, 6, 7})
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Equal(t, 3, m.NNZ())

	_, err = csr.New(-1, 3, []int{0}, nil, nil)
	require.ErrorIs(t, err, csr.ErrBadShape)

	_, err = csr.New(2, 3, []int{0, 1}, nil, nil)
	require.ErrorIs(t, err, csr.ErrLengthMismatch)

	_, err = csr.New(2, 3, []int{0, 1, 3}, []int{2, 0}, []float64{5, 6, 7})
	require.ErrorIs(t, err, csr.ErrLengthMismatch)
}

func TestMatrix_ZeroValue(t *testing.T) {
	var m csr.Matrix
	require.Equal(t, 0, m.NNZ())
	require.Equal(t, []int{0}, m.RowPtr())
	require.NoError(t, csr.Validate(&m))
	require.Equal(t, "csr 0x0 nnz=0\n", m.String())
}

func TestMatrix_RowAndAt(t *testing.T) {
	m, err := csr.FromDense([][]float64{
		{0, 1.5, 0, 2},
		{0, 0, 0, 0},
		{3, 0, 0, -4},
	}, 0)
	require.NoError(t, err)

	cols, vals := m.Row(2)
	require.Equal(t, []int{0, 3}, cols)
	require.Equal(t, []float64{3, -4}, vals)
	cols, _ = m.Row(1)
	require.Empty(t, cols)

	v, err := m.At(0, 3)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
	v, err = m.At(0, 2)
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = m.At(3, 0)
	require.ErrorIs(t, err, csr.ErrOutOfRange)
	_, err = m.At(0, -1)
	require.ErrorIs(t, err, csr.ErrOutOfRange)
}

func TestMatrix_CloneIsDeep(t *testing.T) {
	m, err := csr.Identity(3)
	require.NoError(t, err)
	c := m.Clone()
	require.NoError(t, csr.Equal(m, c, 0))
	c.Values()[0] = 42
	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
}

func TestMatrix_String(t *testing.T) {
	m, err := csr.FromDense([][]float64{{0, 2}, {0, 0}, {1, 0}}, 0)
	require.NoError(t, err)
	require.Equal(t, "csr 3x2 nnz=2\n0: (1)=2\n2: (0)=1\n", m.String())
}

func TestConstructors(t *testing.T) {
	z, err := csr.Zeros(3, 4)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0, 0, 0}, z.RowPtr())
	require.NoError(t, csr.Validate(z))

	_, err = csr.Zeros(1, -1)
	require.ErrorIs(t, err, csr.ErrBadShape)
	_, err = csr.Identity(-2)
	require.ErrorIs(t, err, csr.ErrBadShape)

	id, err := csr.Identity(2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0}, {0, 1}}, id.ToDense())
}

func TestFromDense(t *testing.T) {
	m, err := csr.FromDense([][]float64{{1e-12, 1}, {-1, 0}}, csr.DefaultEpsilon)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, m.RowPtr())
	require.Equal(t, []int{1, 0}, m.ColInd())

	_, err = csr.FromDense([][]float64{{1, 2}, {3}}, 0)
	require.ErrorIs(t, err, csr.ErrLengthMismatch)

	_, err = csr.FromDense([][]float64{{1, nan()}}, 0)
	require.ErrorIs(t, err, csr.ErrNaNInf)

	empty, err := csr.FromDense(nil, 0)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Rows())
}
