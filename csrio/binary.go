// SPDX-License-Identifier: MIT
// Package csrio: binary format.
//
// Layout (little endian):
//
//	[0,8)    magic "LVSCSR01"
//	[8,32)   rows, cols, nnz           int64 each
//	...      rowPtr[rows+1]            int64
//	...      colInd[nnz]               int64
//	...      values[nnz]               float64 (IEEE-754 bits)
//
// The file size must match the header exactly.

package csrio

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/katalvlaran/lvsparse/csr"
)

// Magic identifies the binary format.
const Magic = "LVSCSR01"

const headSize = len(Magic) + 3*8

// WriteBinary encodes m to w.
func WriteBinary(w io.Writer, m *csr.Matrix) error {
	if m == nil {
		return ioErrorf(opWriteBinary, csr.ErrNilMatrix)
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, headSize)
	buf = append(buf, Magic...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.Rows()))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.Cols()))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.NNZ()))
	bw.Write(buf)

	var word [8]byte
	for _, x := range m.RowPtr() {
		binary.LittleEndian.PutUint64(word[:], uint64(x))
		bw.Write(word[:])
	}
	for _, x := range m.ColInd() {
		binary.LittleEndian.PutUint64(word[:], uint64(x))
		bw.Write(word[:])
	}
	for _, v := range m.Values() {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		bw.Write(word[:])
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(opWriteBinary, err)
	}

	return nil
}

// WriteBinaryFile creates (or truncates) path and writes m to it.
func WriteBinaryFile(path string, m *csr.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErrorf(opWriteBinary, err)
	}
	if err = WriteBinary(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// ReadBinary reads the whole stream and decodes it.
func ReadBinary(r io.Reader) (*csr.Matrix, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ioErrorf(opReadBinary, err)
	}
	m, err := decodeBinary(data)
	if err != nil {
		return nil, ioErrorf(opReadBinary, err)
	}

	return m, nil
}

// OpenBinaryFile maps path read-only and decodes the matrix from the mapping.
// The returned matrix owns its memory; the mapping is released before return.
func OpenBinaryFile(path string) (*csr.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(opOpenBinary, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, ioErrorf(opOpenBinary, err)
	}
	if info.Size() < int64(headSize) {
		return nil, ioErrorf(opOpenBinary, formatErrorf("file has %d bytes, header needs %d", info.Size(), headSize))
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, ioErrorf(opOpenBinary, err)
	}
	m, err := decodeBinary(data)
	if uerr := data.Unmap(); err == nil && uerr != nil {
		err = uerr
	}
	if err != nil {
		return nil, ioErrorf(opOpenBinary, err)
	}

	return m, nil
}

// decodeBinary copies the arrays out of data and validates the matrix.
func decodeBinary(data []byte) (*csr.Matrix, error) {
	if len(data) < headSize {
		return nil, formatErrorf("%d bytes, header needs %d", len(data), headSize)
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, formatErrorf("bad magic %q", data[:len(Magic)])
	}
	le := binary.LittleEndian
	rows64 := int64(le.Uint64(data[8:]))
	cols64 := int64(le.Uint64(data[16:]))
	nnz64 := int64(le.Uint64(data[24:]))
	size := int64(len(data))
	if rows64 < 0 || cols64 < 0 || nnz64 < 0 || rows64 > size || nnz64 > size {
		return nil, formatErrorf("implausible header rows=%d cols=%d nnz=%d for %d bytes", rows64, cols64, nnz64, size)
	}
	if want := int64(headSize) + 8*(rows64+1+2*nnz64); size != want {
		return nil, formatErrorf("size %d bytes, header implies %d", size, want)
	}
	rows, cols, nnz := int(rows64), int(cols64), int(nnz64)

	off := headSize
	readInts := func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = int(int64(le.Uint64(data[off:])))
			off += 8
		}
		return out
	}
	rowPtr := readInts(rows + 1)
	colInd := readInts(nnz)
	values := make([]float64, nnz)
	for k := range values {
		values[k] = math.Float64frombits(le.Uint64(data[off:]))
		off += 8
	}
	if rowPtr[rows] != nnz {
		return nil, formatErrorf("rowPtr[%d]=%d but header nnz=%d", rows, rowPtr[rows], nnz)
	}

	m, err := csr.New(rows, cols, rowPtr, colInd, values)
	if err != nil {
		return nil, err
	}
	if err = csr.Validate(m); err != nil {
		return nil, err
	}

	return m, nil
}
