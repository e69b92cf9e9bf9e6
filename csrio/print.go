// SPDX-License-Identifier: MIT

package csrio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/katalvlaran/lvsparse/csr"
)

// Fprint dumps the raw arrays of m in three labelled lines:
//
//	Row pointers: 0 1 2
//	Column indices: 0 1
//	Values: 1 4
func Fprint(w io.Writer, m *csr.Matrix) error {
	if m == nil {
		return csr.ErrNilMatrix
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("Row pointers:")
	for _, x := range m.RowPtr() {
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(x))
	}
	bw.WriteString("\nColumn indices:")
	for _, x := range m.ColInd() {
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(x))
	}
	bw.WriteString("\nValues:")
	for _, v := range m.Values() {
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	bw.WriteByte('\n')

	return bw.Flush()
}
