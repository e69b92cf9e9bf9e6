// SPDX-License-Identifier: MIT
// Package spgemm: per-row kernels.
//
// A rowKernel evaluates one output row and reports every candidate column
// whose sum passes the epsilon filter, in ascending column order. The
// symbolic phase counts the reports, the numeric phase stores them; because
// both phases call the same kernel on the same immutable operands, the counts
// always match the writes.

package spgemm

import (
	"math"
	"slices"

	"github.com/katalvlaran/lvsparse/csr"
)

type emitFunc func(j int, v float64)

type rowKernel interface {
	// newScratch returns per-block working memory (nil if none is needed).
	newScratch() *scratch
	// row evaluates output row i.
	row(i int, s *scratch, emit emitFunc)
}

// scratch is block-private state for StrategyGustavson.
type scratch struct {
	acc     []float64 // running sums, indexed by output column
	mark    []int     // last row that touched the column; -1 initially
	touched []int     // columns touched by the current row
}

// dotKernel evaluates C[i,j] = A[i,*] · Bt[j,*] for every non-empty row j of Bt.
type dotKernel struct {
	a, bt *csr.Matrix
	eps   float64
	dot   dotFunc
}

func (k *dotKernel) newScratch() *scratch { return nil }

func (k *dotKernel) row(i int, _ *scratch, emit emitFunc) {
	aCols, aVals := k.a.Row(i)
	if len(aCols) == 0 {
		return
	}
	btPtr, btCols, btVals := k.bt.RowPtr(), k.bt.ColInd(), k.bt.Values()
	for j := 0; j < k.bt.Rows(); j++ {
		lo, hi := btPtr[j], btPtr[j+1]
		if lo == hi {
			continue // empty column of B: sum is 0
		}
		sum, hit := k.dot(aCols, aVals, btCols[lo:hi], btVals[lo:hi])
		if hit && math.Abs(sum) > k.eps {
			emit(j, sum)
		}
	}
}

// gustavsonKernel scatters a_ik * B[k,*] into a dense accumulator and then
// emits the touched columns in ascending order.
type gustavsonKernel struct {
	a, b *csr.Matrix
	eps  float64
}

func (k *gustavsonKernel) newScratch() *scratch {
	n := k.b.Cols()
	s := &scratch{acc: make([]float64, n), mark: make([]int, n)}
	for j := range s.mark {
		s.mark[j] = -1
	}

	return s
}

func (k *gustavsonKernel) row(i int, s *scratch, emit emitFunc) {
	s.touched = s.touched[:0]
	aCols, aVals := k.a.Row(i)
	for r, kk := range aCols {
		av := aVals[r]
		bCols, bVals := k.b.Row(kk)
		for p, j := range bCols {
			if s.mark[j] != i {
				s.mark[j] = i
				s.acc[j] = 0
				s.touched = append(s.touched, j)
			}
			s.acc[j] += av * bVals[p]
		}
	}
	slices.Sort(s.touched)
	for _, j := range s.touched {
		if v := s.acc[j]; math.Abs(v) > k.eps {
			emit(j, v)
		}
	}
}
