// SPDX-License-Identifier: MIT

package spgemm

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when A.Cols() != B.Rows().
	ErrDimensionMismatch = errors.New("spgemm: dimension mismatch")

	// ErrOptionViolation is returned by New when an Option was invalid.
	ErrOptionViolation = errors.New("spgemm: invalid option supplied")
)

// spgemmErrorf wraps err with an operation tag. Only call with a non-nil err.
func spgemmErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
