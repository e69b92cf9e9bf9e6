// SPDX-License-Identifier: MIT

package dispatch

import "context"

// Serial runs every ParallelFor inline on the calling goroutine as one block.
// It is the deterministic baseline the other backends are tested against.
type Serial struct{}

// ParallelFor runs body(0, n) once, after checking ctx.
func (Serial) ParallelFor(ctx context.Context, n int, body Body) error {
	if n <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return runBody(body, 0, n)
}

// Workers always reports 1.
func (Serial) Workers() int { return 1 }
