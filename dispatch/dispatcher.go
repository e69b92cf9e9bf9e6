// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrUnitPanicked is returned when a Body panics; the panic value and
	// stack are kept in the wrapping *PanicError.
	ErrUnitPanicked = errors.New("dispatch: unit panicked")

	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("dispatch: unknown backend")

	// ErrNoDevice is returned by Select when every device scores negative.
	ErrNoDevice = errors.New("dispatch: no suitable device")
)

// Body processes the half-open index range [lo, hi). It must only write
// state owned by those indices.
type Body func(lo, hi int) error

// Dispatcher runs a Body over [0, n) and blocks until all of it completed.
type Dispatcher interface {
	// ParallelFor splits [0, n) into contiguous blocks and runs body on them,
	// possibly concurrently. It returns after every started block returned.
	// The first error (or recovered panic) is returned; ctx cancellation stops
	// scheduling further blocks and yields ctx.Err().
	ParallelFor(ctx context.Context, n int, body Body) error

	// Workers reports the maximum number of blocks run concurrently.
	Workers() int
}

// PanicError carries a recovered panic from a Body.
type PanicError struct {
	Lo, Hi int
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: block [%d,%d): %v", ErrUnitPanicked, e.Lo, e.Hi, e.Value)
}

func (e *PanicError) Unwrap() error { return ErrUnitPanicked }

// runBody invokes body and converts a panic into a *PanicError.
func runBody(body Body, lo, hi int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Lo: lo, Hi: hi, Value: r, Stack: debug.Stack()}
		}
	}()

	return body(lo, hi)
}

// chunks returns the number of blocks and their size for n items over w workers.
func chunks(n, w int) (count, size int) {
	w = max(1, min(w, n))
	size = (n + w - 1) / w

	return (n + size - 1) / size, size
}
