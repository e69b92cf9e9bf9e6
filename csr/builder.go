// SPDX-License-Identifier: MIT
// Package csr: COO triplet builder.
//
// Builder collects (i, j, v) triplets in any order and compresses them into a
// well-formed Matrix: rows sorted, duplicate (i, j) pairs summed, and sums
// with |v| ≤ eps dropped. It is the safe way to assemble operands by hand.

package csr

import (
	"fmt"
	"math"
	"sort"
)

type triplet struct {
	i, j int
	v    float64
}

// Builder accumulates triplets for a fixed rows×cols shape.
// A Builder is not safe for concurrent use.
type Builder struct {
	rows, cols int
	data       []triplet
	err        error // first Append error, surfaced by Build
}

// NewBuilder returns an empty Builder. Negative dimensions make Build fail
// with ErrBadShape.
func NewBuilder(rows, cols int) *Builder {
	b := &Builder{rows: rows, cols: cols}
	if rows < 0 || cols < 0 {
		b.err = csrErrorf(opNew, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}

	return b
}

// Append records a_ij += v. Out-of-range indices or non-finite values are
// recorded and returned (as the first such error) by both Append and Build.
func (b *Builder) Append(i, j int, v float64) error {
	if b.err != nil {
		return b.err
	}
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		b.err = csrErrorf(opAppend, fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, b.rows, b.cols, ErrOutOfRange))
		return b.err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		b.err = csrErrorf(opAppend, fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
		return b.err
	}
	b.data = append(b.data, triplet{i, j, v})

	return nil
}

// Len returns the number of triplets appended so far (duplicates included).
func (b *Builder) Len() int { return len(b.data) }

// Build compresses the triplets into a new Matrix.
//
// Implementation:
//   - Stage 1: stable sort by (row, col) so duplicates are summed in append order.
//   - Stage 2: merge runs of equal (row, col), drop |sum| ≤ eps, fill rowPtr.
//
// Complexity: O(t log t) for t triplets. The Builder can be reused afterwards.
func (b *Builder) Build(eps float64) (*Matrix, error) {
	if b.err != nil {
		return nil, csrErrorf(opBuild, b.err)
	}
	data := append([]triplet(nil), b.data...)
	sort.SliceStable(data, func(x, y int) bool {
		if data[x].i != data[y].i {
			return data[x].i < data[y].i
		}
		return data[x].j < data[y].j
	})

	rowPtr := make([]int, b.rows+1)
	colInd := make([]int, 0, len(data))
	values := make([]float64, 0, len(data))
	for k := 0; k < len(data); {
		t := data[k]
		sum := 0.0
		for ; k < len(data) && data[k].i == t.i && data[k].j == t.j; k++ {
			sum += data[k].v
		}
		if math.Abs(sum) <= eps {
			continue
		}
		colInd = append(colInd, t.j)
		values = append(values, sum)
		rowPtr[t.i+1]++
	}
	for i := 0; i < b.rows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	return newUnchecked(b.rows, b.cols, rowPtr, colInd, values), nil
}
