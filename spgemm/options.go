// SPDX-License-Identifier: MIT
// Package spgemm: functional configuration of the Engine.
//
// Invalid option values are never panics: they are recorded while options
// are applied and surfaced by New as ErrOptionViolation.

package spgemm

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/dispatch"
)

// Match selects how a row of A is intersected with a row of Bt.
type Match int

const (
	// MatchMerge walks both sorted rows with two pointers: O(|a| + |bt|).
	MatchMerge Match = iota

	// MatchLinear scans the Bt row for every entry of the A row, stopping at
	// the first match: O(|a| · |bt|).
	MatchLinear
)

func (m Match) String() string {
	switch m {
	case MatchMerge:
		return "merge"
	case MatchLinear:
		return "linear"
	default:
		return fmt.Sprintf("Match(%d)", int(m))
	}
}

// ParseMatch maps "merge" / "linear" to a Match.
func ParseMatch(s string) (Match, error) {
	switch s {
	case "merge", "":
		return MatchMerge, nil
	case "linear":
		return MatchLinear, nil
	default:
		return 0, fmt.Errorf("match %q: %w", s, ErrOptionViolation)
	}
}

// Strategy selects the multiplication algorithm.
type Strategy int

const (
	// StrategyDot transposes B and evaluates one dot product per candidate
	// output column.
	StrategyDot Strategy = iota

	// StrategyGustavson expands each row of A over the rows of B into a
	// per-block sparse accumulator; B is not transposed.
	StrategyGustavson
)

func (s Strategy) String() string {
	switch s {
	case StrategyDot:
		return "dot"
	case StrategyGustavson:
		return "gustavson"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "dot" / "gustavson" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "dot", "":
		return StrategyDot, nil
	case "gustavson":
		return StrategyGustavson, nil
	default:
		return 0, fmt.Errorf("strategy %q: %w", s, ErrOptionViolation)
	}
}

// Phase identifies a stage of Multiply reported to a PhaseHook.
type Phase int

const (
	PhaseMultiply  Phase = iota // whole call, outermost
	PhaseTranspose              // Bt = Transpose(B)
	PhaseSymbolic               // per-row counts
	PhaseOffsets                // prefix sum into rowPtr
	PhaseNumeric                // column indices and values
)

func (p Phase) String() string {
	switch p {
	case PhaseMultiply:
		return "Multiply"
	case PhaseTranspose:
		return "Transpose"
	case PhaseSymbolic:
		return "Symbolic"
	case PhaseOffsets:
		return "Offsets"
	case PhaseNumeric:
		return "Numeric"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PhaseEvent describes a phase that is about to run.
type PhaseEvent struct {
	Phase Phase
	Rows  int // units of work (output rows, or rows of B for Transpose)
	NNZ   int // entries handled by the phase; -1 while still unknown
}

// PhaseHook is called when a phase starts; the returned func is called once
// the phase ended, with its error (nil on success). Hooks run on the caller's
// goroutine, never inside row units.
type PhaseHook func(ctx context.Context, ev PhaseEvent) (done func(err error))

// Option configures an Engine.
type Option func(*Options)

// Options holds the effective Engine configuration.
type Options struct {
	eps        float64
	dispatcher dispatch.Dispatcher
	match      Match
	strategy   Strategy
	cache      bool
	parallelT  bool
	hooks      []PhaseHook

	err error // first invalid option, surfaced by New
}

// DefaultOptions returns the defaults: eps = csr.DefaultEpsilon, a
// GOMAXPROCS-wide dispatch.Group, MatchMerge, StrategyDot, no cache, no hooks.
func DefaultOptions() Options {
	return Options{
		eps:        csr.DefaultEpsilon,
		dispatcher: dispatch.NewGroup(0),
		match:      MatchMerge,
		strategy:   StrategyDot,
	}
}

// WithEpsilon sets the structural-zero tolerance: sums with |s| ≤ eps are not
// stored. eps must be finite and ≥ 0.
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
			o.fail(fmt.Errorf("%w: epsilon must be finite and non-negative (%g)", ErrOptionViolation, eps))
			return
		}
		o.eps = eps
	}
}

// WithDispatcher sets the execution backend. The Engine never closes it.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(o *Options) {
		if d == nil {
			o.fail(fmt.Errorf("%w: nil dispatcher", ErrOptionViolation))
			return
		}
		o.dispatcher = d
	}
}

// WithMatch selects the row intersection kernel of StrategyDot.
func WithMatch(m Match) Option {
	return func(o *Options) {
		if m != MatchMerge && m != MatchLinear {
			o.fail(fmt.Errorf("%w: unknown match %d", ErrOptionViolation, int(m)))
			return
		}
		o.match = m
	}
}

// WithStrategy selects the multiplication algorithm.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s != StrategyDot && s != StrategyGustavson {
			o.fail(fmt.Errorf("%w: unknown strategy %d", ErrOptionViolation, int(s)))
			return
		}
		o.strategy = s
	}
}

// WithCandidateCache keeps every row's surviving (column, value) pairs from
// the symbolic phase so the numeric phase only copies them. Trades
// O(nnz(C)) extra memory for skipping the second evaluation.
func WithCandidateCache(on bool) Option {
	return func(o *Options) { o.cache = on }
}

// WithParallelTranspose makes StrategyDot build Bt with csr.TransposeParallel
// on the engine's dispatcher instead of the sequential counting sort.
func WithParallelTranspose(on bool) Option {
	return func(o *Options) { o.parallelT = on }
}

// WithPhaseHook registers a hook; hooks run in registration order.
func WithPhaseHook(h PhaseHook) Option {
	return func(o *Options) {
		if h != nil {
			o.hooks = append(o.hooks, h)
		}
	}
}

func (o *Options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

// Epsilon returns the configured tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// Dispatcher returns the configured backend.
func (o Options) Dispatcher() dispatch.Dispatcher { return o.dispatcher }

// Match returns the configured intersection kernel.
func (o Options) Match() Match { return o.match }

// Strategy returns the configured algorithm.
func (o Options) Strategy() Strategy { return o.strategy }

// CandidateCache reports whether symbolic results are cached.
func (o Options) CandidateCache() bool { return o.cache }

// ParallelTranspose reports whether Bt is built in parallel.
func (o Options) ParallelTranspose() bool { return o.parallelT }
