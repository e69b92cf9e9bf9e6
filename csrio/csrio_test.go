// SPDX-License-Identifier: MIT

package csrio_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/csrio"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *csr.Matrix {
	t.Helper()
	m, err := csr.FromDense([][]float64{
		{0, 1.25, 0, -3},
		{0, 0, 0, 0},
		{1e-7, 0, 2.5, 0},
	}, 0)
	require.NoError(t, err)

	return m
}

func TestReadText_SquareHeader(t *testing.T) {
	// the two-field header describes a square matrix
	in := "2 2\n0 1 2\n0 1\n1 4\n"
	m, err := csrio.ReadText(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())
	require.Equal(t, []float64{1, 4}, m.Values())
}

func TestReadText_RectangularHeader(t *testing.T) {
	in := "\n  \n2 5 3\n0 2\n3\n1 4 0 1.5 -2 3e-2\n"
	m, err := csrio.ReadText(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 5, m.Cols())
	require.Equal(t, []int{1, 4, 0}, m.ColInd())
	require.Equal(t, []float64{1.5, -2, 0.03}, m.Values())
}

func TestReadText_Malformed(t *testing.T) {
	cases := map[string]struct {
		in   string
		want error
	}{
		"empty":           {"", csrio.ErrFormat},
		"header fields":   {"1 2 3 4\n", csrio.ErrFormat},
		"header negative": {"-1 0\n", csrio.ErrFormat},
		"not a number":    {"1 1\n0 x\n", csrio.ErrFormat},
		"truncated":       {"2 2\n0 1 2\n0 1\n1\n", csrio.ErrFormat},
		"nnz mismatch":    {"2 3\n0 1 2\n0 1\n1 4\n", csrio.ErrFormat},
		"trailing":        {"1 1\n0 1\n0\n7\n8\n", csrio.ErrFormat},
		"bad value":       {"1 1\n0 1\n0\nabc\n", csrio.ErrFormat},
		"unsorted":        {"1 3 2\n0 2\n2 0\n1 1\n", csr.ErrColumnOrder},
		"out of range":    {"1 2 1\n0 1\n5\n1\n", csr.ErrOutOfRange},
		"NaN":             {"1 1\n0 1\n0\nNaN\n", csr.ErrNaNInf},
		"huge rows":       {"9223372036854775807 0\n", csrio.ErrFormat},
		"huge nnz":        {"1 9223372036854775807\n0 9223372036854775807\n", csrio.ErrFormat},
		"huge nnz short":  {"2 3 1000000000000\n0 0 1000000000000\n", csrio.ErrFormat},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := csrio.ReadText(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestText_RoundTrip(t *testing.T) {
	m := sample(t)
	var buf bytes.Buffer
	require.NoError(t, csrio.WriteText(&buf, m))
	require.True(t, strings.HasPrefix(buf.String(), "3 4 4\n"))

	got, err := csrio.ReadText(&buf)
	require.NoError(t, err)
	require.NoError(t, csr.Equal(m, got, 0))
}

func TestBinary_RoundTrip(t *testing.T) {
	m := sample(t)
	var buf bytes.Buffer
	require.NoError(t, csrio.WriteBinary(&buf, m))
	require.Equal(t, csrio.Magic, buf.String()[:len(csrio.Magic)])
	require.Equal(t, 32+8*(4+4+4), buf.Len())

	got, err := csrio.ReadBinary(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.NoError(t, csr.Equal(m, got, 0))
}

func TestBinaryFile_Mapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.bin")
	m := sample(t)
	require.NoError(t, csrio.WriteBinaryFile(path, m))

	got, err := csrio.OpenBinaryFile(path)
	require.NoError(t, err)
	require.NoError(t, csr.Equal(m, got, 0))

	// an empty matrix is still a valid file
	z, _ := csr.Zeros(0, 0)
	require.NoError(t, csrio.WriteBinaryFile(path, z))
	got, err = csrio.OpenBinaryFile(path)
	require.NoError(t, err)
	require.Equal(t, 0, got.NNZ())
}

func TestBinary_Malformed(t *testing.T) {
	var good bytes.Buffer
	require.NoError(t, csrio.WriteBinary(&good, sample(t)))
	raw := good.Bytes()

	badMagic := append([]byte("NOTCSR01"), raw[8:]...)
	_, err := csrio.ReadBinary(bytes.NewReader(badMagic))
	require.ErrorIs(t, err, csrio.ErrFormat)

	_, err = csrio.ReadBinary(bytes.NewReader(raw[:len(raw)-1]))
	require.ErrorIs(t, err, csrio.ErrFormat)

	_, err = csrio.ReadBinary(bytes.NewReader(raw[:10]))
	require.ErrorIs(t, err, csrio.ErrFormat)

	huge := append([]byte(nil), raw...)
	binary.LittleEndian.PutUint64(huge[8:], 1<<62)
	_, err = csrio.ReadBinary(bytes.NewReader(huge))
	require.ErrorIs(t, err, csrio.ErrFormat)

	dir := t.TempDir()
	short := filepath.Join(dir, "short.bin")
	require.NoError(t, os.WriteFile(short, []byte("LVS"), 0o644))
	_, err = csrio.OpenBinaryFile(short)
	require.ErrorIs(t, err, csrio.ErrFormat)

	_, err = csrio.OpenBinaryFile(filepath.Join(dir, "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadWriteFile_ByExtension(t *testing.T) {
	dir := t.TempDir()
	m := sample(t)
	for _, name := range []string{"a.txt", "a.csr", "a.bin", "A.BIN"} {
		path := filepath.Join(dir, name)
		require.NoError(t, csrio.WriteFile(path, m))
		got, err := csrio.ReadFile(path)
		require.NoError(t, err, name)
		require.NoError(t, csr.Equal(m, got, 0))
	}
	require.True(t, csrio.IsBinaryPath("x.Bin"))
	require.False(t, csrio.IsBinaryPath("x.bin.txt"))
}

func TestWriters_NilMatrix(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, csrio.WriteText(&buf, nil), csr.ErrNilMatrix)
	require.ErrorIs(t, csrio.WriteBinary(&buf, nil), csr.ErrNilMatrix)
	require.ErrorIs(t, csrio.Fprint(&buf, nil), csr.ErrNilMatrix)
}

func TestFprint(t *testing.T) {
	m, _ := csr.FromDense([][]float64{{1, 0}, {0, 4}}, 0)
	var buf bytes.Buffer
	require.NoError(t, csrio.Fprint(&buf, m))
	require.Equal(t, "Row pointers: 0 1 2\nColumn indices: 0 1\nValues: 1 4\n", buf.String())
}
