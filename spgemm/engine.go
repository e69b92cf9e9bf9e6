// SPDX-License-Identifier: MIT
// Package spgemm: Engine and the Multiply driver.

package spgemm

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsparse/csr"
)

const opMultiply = "Multiply"

// Engine multiplies CSR matrices with a fixed configuration.
// An Engine holds no per-call state and is safe for concurrent use as long as
// its Dispatcher is.
type Engine struct {
	opts Options
}

// New applies opts over DefaultOptions and returns an Engine, or the first
// invalid option wrapped in ErrOptionViolation.
func New(opts ...Option) (*Engine, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Engine{opts: o}, nil
}

// Options returns the effective configuration.
func (e *Engine) Options() Options { return e.opts }

// Multiply is a convenience wrapper: New(opts...) then Engine.Multiply.
func Multiply(ctx context.Context, a, b *csr.Matrix, opts ...Option) (*csr.Matrix, error) {
	e, err := New(opts...)
	if err != nil {
		return nil, err
	}

	return e.Multiply(ctx, a, b)
}

// Multiply computes C = A × B.
//
// Implementation:
//   - Stage 0: validate operands (nil, A.Cols() == B.Rows()); nothing is
//     dispatched on failure, only the PhaseMultiply hooks observe it.
//   - Stage 1: StrategyDot builds Bt = Transpose(B); StrategyGustavson reads B
//     directly.
//   - Stage 2 (Symbolic): one unit per row of A counts surviving entries into
//     rowPtr[i+1].
//   - Stage 3 (Offsets): sequential prefix sum turns counts into rowPtr.
//   - Stage 4 (Numeric): colInd/values are allocated with exactly nnz slots;
//     each unit fills its row's window.
//
// The returned matrix has sorted, duplicate-free rows and no entry with
// |v| ≤ eps. It shares no memory with A or B.
//
// Errors:
//   - csr.ErrNilMatrix for a nil operand.
//   - ErrDimensionMismatch if A.Cols() != B.Rows().
//   - Any dispatcher error (ctx cancellation, a *dispatch.PanicError),
//     wrapped with the failing phase. No partial C is returned.
//
// Complexity (StrategyDot, MatchMerge):
//   - Time O(nnz(B) + Σ_i Σ_j (|A_i| + |Bt_j|)) over non-empty rows, split
//     across workers; Space O(nnz(B) + nnz(C) + rows).
func (e *Engine) Multiply(ctx context.Context, a, b *csr.Matrix) (c *csr.Matrix, err error) {
	var rows int
	if a != nil {
		rows = a.Rows()
	}
	done := e.begin(ctx, PhaseEvent{Phase: PhaseMultiply, Rows: rows, NNZ: -1})
	defer func() { done(err) }()

	if a == nil || b == nil {
		return nil, spgemmErrorf(opMultiply, csr.ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return nil, spgemmErrorf(opMultiply, fmt.Errorf("%w: A is %dx%d, B is %dx%d",
			ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols()))
	}
	cols := b.Cols()

	k, err := e.kernel(ctx, a, b)
	if err != nil {
		return nil, spgemmErrorf(opMultiply, err)
	}

	d := e.opts.dispatcher
	var cache *candidateCache
	if e.opts.cache {
		cache = newCandidateCache(rows)
	}

	rowPtr := make([]int, rows+1)
	err = e.run(ctx, PhaseEvent{Phase: PhaseSymbolic, Rows: rows, NNZ: -1}, func() error {
		return symbolic(ctx, d, k, rows, rowPtr, cache)
	})
	if err != nil {
		return nil, spgemmErrorf(opMultiply, err)
	}

	offsetsDone := e.begin(ctx, PhaseEvent{Phase: PhaseOffsets, Rows: rows, NNZ: -1})
	nnz := prefixSum(rowPtr)
	offsetsDone(nil)

	colInd := make([]int, nnz)
	values := make([]float64, nnz)
	err = e.run(ctx, PhaseEvent{Phase: PhaseNumeric, Rows: rows, NNZ: nnz}, func() error {
		return numeric(ctx, d, k, rows, rowPtr, colInd, values, cache)
	})
	if err != nil {
		return nil, spgemmErrorf(opMultiply, err)
	}

	c, err = csr.New(rows, cols, rowPtr, colInd, values)
	if err != nil {
		return nil, spgemmErrorf(opMultiply, err)
	}

	return c, nil
}

// kernel prepares the per-row evaluator for the configured strategy.
func (e *Engine) kernel(ctx context.Context, a, b *csr.Matrix) (rowKernel, error) {
	if e.opts.strategy == StrategyGustavson {
		return &gustavsonKernel{a: a, b: b, eps: e.opts.eps}, nil
	}

	var bt *csr.Matrix
	err := e.run(ctx, PhaseEvent{Phase: PhaseTranspose, Rows: b.Rows(), NNZ: b.NNZ()}, func() error {
		if !e.opts.parallelT {
			bt = csr.Transpose(b)
			return nil
		}
		var terr error
		bt, terr = csr.TransposeParallel(ctx, b, e.opts.dispatcher)
		return terr
	})
	if err != nil {
		return nil, err
	}

	return &dotKernel{a: a, bt: bt, eps: e.opts.eps, dot: e.opts.match.dot()}, nil
}

// run executes one phase between its hooks and tags a failure with the phase.
func (e *Engine) run(ctx context.Context, ev PhaseEvent, fn func() error) (err error) {
	done := e.begin(ctx, ev)
	defer func() { done(err) }()

	if err = fn(); err != nil {
		return fmt.Errorf("%s: %w", ev.Phase, err)
	}

	return nil
}

// begin notifies every hook that ev started and returns the combined
// completion callback; completions run in reverse registration order.
func (e *Engine) begin(ctx context.Context, ev PhaseEvent) func(error) {
	if len(e.opts.hooks) == 0 {
		return func(error) {}
	}
	dones := make([]func(error), 0, len(e.opts.hooks))
	for _, h := range e.opts.hooks {
		if d := h(ctx, ev); d != nil {
			dones = append(dones, d)
		}
	}

	return func(err error) {
		for i := len(dones) - 1; i >= 0; i-- {
			dones[i](err)
		}
	}
}
