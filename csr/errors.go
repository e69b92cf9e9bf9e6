// SPDX-License-Identifier: MIT
// Package csr: sentinel error set.
// All constructors and validators return these sentinels, optionally wrapped
// with an operation tag via csrErrorf; callers match them with errors.Is.

package csr

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid (negative rows or cols).
	ErrBadShape = errors.New("csr: invalid shape")

	// ErrLengthMismatch indicates that rowPtr, colInd or values do not have the
	// lengths implied by rows and nnz.
	ErrLengthMismatch = errors.New("csr: array length mismatch")

	// ErrRowPtr indicates a rowPtr that does not start at 0 or decreases.
	ErrRowPtr = errors.New("csr: row pointer not monotone from zero")

	// ErrColumnOrder indicates that column indices inside a row are not
	// strictly increasing (this includes duplicate columns).
	ErrColumnOrder = errors.New("csr: column indices not strictly increasing")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("csr: index out of range")

	// ErrNaNInf signals a NaN or ±Inf stored value.
	ErrNaNInf = errors.New("csr: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil *Matrix was used.
	ErrNilMatrix = errors.New("csr: nil matrix")

	// ErrNotEqual is returned by Equal-style checks when two matrices differ.
	ErrNotEqual = errors.New("csr: matrices differ")
)

// Operation tags for uniform error wrapping.
const (
	opNew       = "New"
	opAt        = "At"
	opAppend    = "Builder.Append"
	opBuild     = "Builder.Build"
	opFromDense = "FromDense"
	opValidate  = "Validate"
	opEqual     = "Equal"
	opTranspose = "TransposeParallel"
)

// csrErrorf wraps err with an operation tag, preserving it for errors.Is.
// Only call with a non-nil err.
func csrErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
