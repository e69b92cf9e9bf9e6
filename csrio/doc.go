// Package csrio reads and writes csr.Matrix values.
//
// 🚀 Formats
//
//	Text    header "rows nnz" (square) or "rows cols nnz", then rows+1 row
//	        pointers, nnz column indices and nnz values, whitespace separated.
//	Binary  "LVSCSR01" magic, rows/cols/nnz as little-endian int64, then
//	        rowPtr and colInd as int64 and values as float64 bits.
//
// Binary files are decoded straight from a read-only memory mapping
// (github.com/edsrzf/mmap-go). ReadFile/WriteFile pick the format from the
// file extension: ".bin" is binary, anything else is text.
//
// Every loaded matrix passes csr.Validate before it is returned, so a matrix
// obtained from this package is always safe to hand to spgemm.
package csrio
