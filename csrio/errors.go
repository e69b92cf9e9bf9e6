// SPDX-License-Identifier: MIT

package csrio

import (
	"errors"
	"fmt"
)

// ErrFormat is returned for malformed input: bad header, a token that is not
// a number, truncated data or a size that does not fit.
var ErrFormat = errors.New("csrio: malformed input")

// Operation tags.
const (
	opReadText    = "ReadText"
	opWriteText   = "WriteText"
	opReadBinary  = "ReadBinary"
	opWriteBinary = "WriteBinary"
	opOpenBinary  = "OpenBinaryFile"
)

func ioErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// formatErrorf builds an ErrFormat with position details.
func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}
