// SPDX-License-Identifier: MIT

package csrio

import (
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvsparse/csr"
)

// IsBinaryPath reports whether path names a binary file (".bin" extension).
func IsBinaryPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".bin")
}

// ReadFile loads path in the format implied by its extension.
func ReadFile(path string) (*csr.Matrix, error) {
	if IsBinaryPath(path) {
		return OpenBinaryFile(path)
	}

	return ReadTextFile(path)
}

// WriteFile stores m at path in the format implied by its extension.
func WriteFile(path string, m *csr.Matrix) error {
	if IsBinaryPath(path) {
		return WriteBinaryFile(path, m)
	}

	return WriteTextFile(path, m)
}
