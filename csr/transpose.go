// SPDX-License-Identifier: MIT
// Package csr: transpose kernels.
//
// Both kernels produce identical output. Transpose is the sequential
// counting-sort placement; TransposeParallel splits the rows of m into
// contiguous blocks and replaces the shared per-column cursor with per-block
// cursors obtained from an exclusive scan, so no two blocks ever write the
// same slot and rows of the result stay sorted.

package csr

import (
	"context"

	"github.com/katalvlaran/lvsparse/dispatch"
)

// Transpose returns mᵀ as a new Matrix (cols×rows, same nnz).
//
// Implementation:
//   - Stage 1: count occurrences of every column of m.
//   - Stage 2: prefix-sum the counts into the result's rowPtr.
//   - Stage 3: scan m row by row (ascending) and place each (r, v) at the next
//     free slot of result row col, advancing a per-column cursor.
//
// Behavior highlights:
//   - Rows of mᵀ come out with strictly increasing columns because the rows
//     of m are visited in ascending order; no sort is needed.
//   - m is never mutated; the result owns fresh storage.
//
// Complexity:
//   - Time O(nnz + cols), extra Space O(cols) for the cursor array.
func Transpose(m *Matrix) *Matrix {
	rows, cols := m.rows, m.cols
	nnz := m.NNZ()

	rowPtr := make([]int, cols+1)
	for _, c := range m.colInd {
		rowPtr[c+1]++
	}
	for c := 0; c < cols; c++ {
		rowPtr[c+1] += rowPtr[c]
	}

	colInd := make([]int, nnz)
	values := make([]float64, nnz)
	cursor := make([]int, cols)
	copy(cursor, rowPtr[:cols])
	for r := 0; r < rows; r++ {
		for k := m.rowPtr[r]; k < m.rowPtr[r+1]; k++ {
			c := m.colInd[k]
			slot := cursor[c]
			colInd[slot] = r
			values[slot] = m.values[k]
			cursor[c]++
		}
	}

	return newUnchecked(cols, rows, rowPtr, colInd, values)
}

// TransposeParallel computes the same result as Transpose using d.
//
// Implementation:
//   - Stage 1: split rows into B = d.Workers() contiguous blocks; each block
//     counts its own columns into counts[b][*] (parallel, disjoint writes).
//   - Stage 2: sequential exclusive scan per column over blocks in order:
//     start[b][c] = rowPtr[c] + Σ_{b'<b} counts[b'][c].
//   - Stage 3: each block places its entries using its private cursors.
//
// Errors:
//   - ErrNilMatrix for a nil m; any dispatch error (cancellation, panics) is
//     returned wrapped and no matrix is produced.
//
// Complexity:
//   - Time O(nnz + B*cols), extra Space O(B*cols).
func TransposeParallel(ctx context.Context, m *Matrix, d dispatch.Dispatcher) (*Matrix, error) {
	if m == nil {
		return nil, csrErrorf(opTranspose, ErrNilMatrix)
	}
	rows, cols := m.rows, m.cols
	blocks := d.Workers()
	if blocks < 1 {
		blocks = 1
	}
	if blocks > rows {
		blocks = rows
	}
	if blocks <= 1 {
		return Transpose(m), nil
	}
	blockSize := (rows + blocks - 1) / blocks

	counts := make([][]int, blocks)
	err := d.ParallelFor(ctx, blocks, func(lo, hi int) error {
		for b := lo; b < hi; b++ {
			cnt := make([]int, cols)
			rLo, rHi := b*blockSize, min((b+1)*blockSize, rows)
			for k := m.rowPtr[min(rLo, rows)]; k < m.rowPtr[rHi]; k++ {
				cnt[m.colInd[k]]++
			}
			counts[b] = cnt
		}
		return nil
	})
	if err != nil {
		return nil, csrErrorf(opTranspose, err)
	}

	rowPtr := make([]int, cols+1)
	for c := 0; c < cols; c++ {
		next := rowPtr[c]
		for b := 0; b < blocks; b++ {
			n := counts[b][c]
			counts[b][c] = next // counts[b] now holds block b's cursors
			next += n
		}
		rowPtr[c+1] = next
	}

	nnz := rowPtr[cols]
	colInd := make([]int, nnz)
	values := make([]float64, nnz)
	err = d.ParallelFor(ctx, blocks, func(lo, hi int) error {
		for b := lo; b < hi; b++ {
			cursor := counts[b]
			rLo, rHi := b*blockSize, min((b+1)*blockSize, rows)
			for r := rLo; r < rHi; r++ {
				for k := m.rowPtr[r]; k < m.rowPtr[r+1]; k++ {
					c := m.colInd[k]
					colInd[cursor[c]] = r
					values[cursor[c]] = m.values[k]
					cursor[c]++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, csrErrorf(opTranspose, err)
	}

	return newUnchecked(cols, rows, rowPtr, colInd, values), nil
}
