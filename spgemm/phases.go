// SPDX-License-Identifier: MIT
// Package spgemm: the three phases of a multiplication.
//
//   - symbolic: one unit per output row writes that row's count into
//     rowPtr[i+1] (a cell no other unit touches).
//   - prefixSum: sequential; turns the counts into offsets in place.
//   - numeric: one unit per output row fills its window
//     [rowPtr[i], rowPtr[i+1]) of colInd/values.

package spgemm

import (
	"context"

	"github.com/katalvlaran/lvsparse/dispatch"
)

// candidateCache keeps the symbolic results of every row when enabled.
type candidateCache struct {
	cols [][]int
	vals [][]float64
}

func newCandidateCache(rows int) *candidateCache {
	return &candidateCache{cols: make([][]int, rows), vals: make([][]float64, rows)}
}

// symbolic counts surviving candidates per row into rowPtr[i+1].
// rowPtr must have length rows+1; rowPtr[0] is left untouched.
func symbolic(ctx context.Context, d dispatch.Dispatcher, k rowKernel, rows int, rowPtr []int, cache *candidateCache) error {
	return d.ParallelFor(ctx, rows, func(lo, hi int) error {
		s := k.newScratch()
		n := 0
		count := func(int, float64) { n++ }
		for i := lo; i < hi; i++ {
			if cache != nil {
				var (
					cols []int
					vals []float64
				)
				k.row(i, s, func(j int, v float64) {
					cols = append(cols, j)
					vals = append(vals, v)
				})
				cache.cols[i], cache.vals[i] = cols, vals
				rowPtr[i+1] = len(cols)
				continue
			}
			n = 0
			k.row(i, s, count)
			rowPtr[i+1] = n
		}
		return nil
	})
}

// prefixSum converts per-row counts stored at rowPtr[1:] into offsets:
// rowPtr[0] = 0, rowPtr[k] = rowPtr[k-1] + count[k-1]. Returns nnz.
func prefixSum(rowPtr []int) int {
	rowPtr[0] = 0
	for k := 1; k < len(rowPtr); k++ {
		rowPtr[k] += rowPtr[k-1]
	}

	return rowPtr[len(rowPtr)-1]
}

// numeric writes every surviving (column, value) of row i into its window.
func numeric(ctx context.Context, d dispatch.Dispatcher, k rowKernel, rows int, rowPtr, colInd []int, values []float64, cache *candidateCache) error {
	return d.ParallelFor(ctx, rows, func(lo, hi int) error {
		s := k.newScratch()
		cur := 0
		write := func(j int, v float64) {
			colInd[cur] = j
			values[cur] = v
			cur++
		}
		for i := lo; i < hi; i++ {
			if cache != nil {
				copy(colInd[rowPtr[i]:rowPtr[i+1]], cache.cols[i])
				copy(values[rowPtr[i]:rowPtr[i+1]], cache.vals[i])
				continue
			}
			cur = rowPtr[i]
			k.row(i, s, write)
		}
		return nil
	})
}
