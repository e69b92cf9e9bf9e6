// Package lvsparse multiplies sparse matrices in Compressed Sparse Row form,
// in parallel, with results that do not depend on how the work was split.
//
// 🚀 What is lvsparse?
//
//	A small, dependency-light toolkit built around one operation, C = A×B:
//		• csr/      — the CSR Matrix, builders, validation and transpose
//		• dispatch/ — ParallelFor over a worker pool, goroutine groups or serially
//		• spgemm/   — the two-phase (symbolic, numeric) multiplication Engine
//		• csrio/    — text and binary (.bin, memory-mapped) file formats
//		• verify/   — dense gonum reference product and structural comparison
//		• spy/      — nonzero-pattern plots via gonum/plot
//		• config/   — LVSPARSE_* environment and .env settings
//		• telemetry/— phase hooks feeding slog, prometheus and OpenTelemetry
//		• cmd/lvsparse — the command-line front end
//
// ✨ Guarantees
//
//   - Every output row is sorted and duplicate-free; |v| ≤ eps is never stored.
//   - colInd/values are allocated once, with exactly nnz(C) slots.
//   - Any backend, worker count, match mode or strategy gives bit-identical C.
//   - Cancellation and panicking units surface as errors; no partial C escapes.
//
// Quick example:
//
//	a, _ := csr.FromDense([][]float64{{1, 0}, {0, 2}}, 0)
//	c, _ := spgemm.Multiply(ctx, a, a)
//	// c.RowPtr() = [0 1 2], c.ColInd() = [0 1], c.Values() = [1 4]
//
//	go install github.com/katalvlaran/lvsparse/cmd/lvsparse@latest
package lvsparse
