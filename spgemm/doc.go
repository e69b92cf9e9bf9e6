// Package spgemm multiplies two CSR matrices, C = A × B, with a two-phase
// data-parallel algorithm whose output size is discovered on the fly.
//
// 🚀 How it works
//
//	Bt     = csr.Transpose(B)              column access to B, rows stay sorted
//	counts = Symbolic(A, Bt)               per row: how many |a_i·bt_j| > eps
//	rowPtr = prefix sum of counts          sequential, after the phase barrier
//	C      = Numeric(A, Bt, rowPtr)        per row: recompute and write (j, sum)
//
// Every output row is an independent unit of work. The units of a phase run on
// a dispatch.Dispatcher and only touch read-only operands plus their own slice
// of the output, so no locks or atomics are needed. The Numeric phase starts
// only after Symbolic and the offset reduction completed.
//
// ✨ Knobs (functional options)
//   - WithEpsilon: structural-zero tolerance (default csr.DefaultEpsilon)
//   - WithDispatcher: execution backend (default: a dispatch.Group)
//   - WithMatch: MatchMerge (two-pointer) or MatchLinear (nested scan)
//   - WithStrategy: StrategyDot (transpose + dot products) or
//     StrategyGustavson (row-wise accumulator, no transpose)
//   - WithCandidateCache: keep symbolic results instead of recomputing them
//   - WithPhaseHook: observe each phase (used by package telemetry)
//
// All knob combinations produce bit-identical matrices: products are always
// accumulated in ascending order of the shared inner index.
//
// Failures are all-or-nothing: a dimension mismatch is reported before any
// work is dispatched, and an error or panic in any unit fails the call
// without returning a partial product.
package spgemm
