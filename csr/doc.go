// Package csr implements the compressed-row (CSR) sparse matrix used across
// lvsparse, together with the counting-sort transpose that gives the SpGEMM
// engine efficient column-wise access to its right operand.
//
// 🚀 What is CSR?
//
//	An R×C matrix with nnz stored entries is kept as three arrays:
//	  • rowPtr (R+1 offsets): row i lives in [rowPtr[i], rowPtr[i+1])
//	  • colInd (nnz ints):    column of every stored entry, strictly
//	                          increasing inside a row
//	  • values (nnz floats):  the stored entries themselves
//
// ✨ Key features:
//   - zero-copy accessors (RowPtr, ColInd, Values, Row) for hot kernels
//   - O(nnz + cols) Transpose that keeps rows sorted without a sort
//   - TransposeParallel with per-block exclusive scans (same output)
//   - Builder for COO triplets (duplicates summed, near-zeros dropped)
//   - Validate for loaders, Equal for tolerance-based comparisons
//
// ⚙️ Usage:
//
//	m, err := csr.New(2, 2, []int{0, 1, 2}, []int{0, 1}, []float64{1, 2})
//	if err != nil {
//	  // ErrBadShape / ErrLengthMismatch
//	}
//	mt := csr.Transpose(m)
//
// Matrices are read-only once constructed: no function in this package
// mutates its input, and every derived matrix owns fresh storage.
package csr
