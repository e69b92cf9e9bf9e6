// SPDX-License-Identifier: MIT

package csrio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvsparse/csr"
)

// maxPrealloc caps how many elements ReadText reserves up front from the
// header counts.
const maxPrealloc = 1 << 20

// ReadText parses the text format from r and validates the result.
//
// The first non-blank line is the header: "rows nnz" describes a square
// matrix, "rows cols nnz" a rectangular one. The remaining input is a stream
// of whitespace-separated tokens: rows+1 row pointers, nnz column indices,
// nnz values. Trailing tokens are an error.
func ReadText(r io.Reader) (*csr.Matrix, error) {
	br := bufio.NewReader(r)
	rows, cols, nnz, err := readHeader(br)
	if err != nil {
		return nil, ioErrorf(opReadText, err)
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	tok := &tokens{sc: sc}

	// headers are untrusted: slices grow with the tokens actually read
	rowPtr := make([]int, 0, min(rows, maxPrealloc)+1)
	for i := 0; i <= rows; i++ {
		v, err := tok.int("row pointer", i)
		if err != nil {
			return nil, ioErrorf(opReadText, err)
		}
		rowPtr = append(rowPtr, v)
	}
	if rowPtr[rows] != nnz {
		return nil, ioErrorf(opReadText, formatErrorf("rowPtr[%d]=%d but header nnz=%d", rows, rowPtr[rows], nnz))
	}
	colInd := make([]int, 0, min(nnz, maxPrealloc))
	for k := 0; k < nnz; k++ {
		v, err := tok.int("column index", k)
		if err != nil {
			return nil, ioErrorf(opReadText, err)
		}
		colInd = append(colInd, v)
	}
	values := make([]float64, 0, min(nnz, maxPrealloc))
	for k := 0; k < nnz; k++ {
		v, err := tok.float("value", k)
		if err != nil {
			return nil, ioErrorf(opReadText, err)
		}
		values = append(values, v)
	}
	if sc.Scan() {
		return nil, ioErrorf(opReadText, formatErrorf("unexpected trailing token %q", sc.Text()))
	}
	if err = sc.Err(); err != nil {
		return nil, ioErrorf(opReadText, err)
	}

	m, err := csr.New(rows, cols, rowPtr, colInd, values)
	if err != nil {
		return nil, ioErrorf(opReadText, err)
	}
	if err = csr.Validate(m); err != nil {
		return nil, ioErrorf(opReadText, err)
	}

	return m, nil
}

// ReadTextFile opens path and calls ReadText.
func ReadTextFile(path string) (*csr.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(opReadText, err)
	}
	defer f.Close()

	return ReadText(f)
}

// readHeader consumes lines until the first non-blank one and parses it.
func readHeader(br *bufio.Reader) (rows, cols, nnz int, err error) {
	for {
		line, rerr := br.ReadString('\n')
		fields := strings.Fields(line)
		if len(fields) > 0 {
			return parseHeader(fields)
		}
		if rerr == io.EOF {
			return 0, 0, 0, formatErrorf("missing header")
		}
		if rerr != nil {
			return 0, 0, 0, rerr
		}
	}
}

func parseHeader(fields []string) (rows, cols, nnz int, err error) {
	nums := make([]int, len(fields))
	for i, f := range fields {
		if nums[i], err = strconv.Atoi(f); err != nil || nums[i] < 0 {
			return 0, 0, 0, formatErrorf("header field %d: %q is not a non-negative integer", i, f)
		}
	}
	switch len(nums) {
	case 2:
		return nums[0], nums[0], nums[1], nil
	case 3:
		return nums[0], nums[1], nums[2], nil
	default:
		return 0, 0, 0, formatErrorf("header has %d fields, want 2 or 3", len(nums))
	}
}

// tokens reads numbers off a word scanner and reports what was expected on failure.
type tokens struct {
	sc *bufio.Scanner
	n  int // tokens consumed after the header
}

func (t *tokens) next(what string, idx int) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", formatErrorf("unexpected end of input reading %s %d", what, idx)
	}
	t.n++

	return t.sc.Text(), nil
}

func (t *tokens) int(what string, idx int) (int, error) {
	s, err := t.next(what, idx)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, formatErrorf("token %d: %s %d: %q is not an integer", t.n, what, idx, s)
	}

	return v, nil
}

func (t *tokens) float(what string, idx int) (float64, error) {
	s, err := t.next(what, idx)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, formatErrorf("token %d: %s %d: %q is not a number", t.n, what, idx, s)
	}

	return v, nil
}

// WriteText writes m in the "rows cols nnz" text format, one array per line.
// Values use the shortest representation that round-trips exactly.
func WriteText(w io.Writer, m *csr.Matrix) error {
	if m == nil {
		return ioErrorf(opWriteText, csr.ErrNilMatrix)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", m.Rows(), m.Cols(), m.NNZ())
	writeInts(bw, m.RowPtr())
	writeInts(bw, m.ColInd())
	for k, v := range m.Values() {
		if k > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return ioErrorf(opWriteText, err)
	}

	return nil
}

// WriteTextFile creates (or truncates) path and writes m to it.
func WriteTextFile(path string, m *csr.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErrorf(opWriteText, err)
	}
	if err = WriteText(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func writeInts(bw *bufio.Writer, xs []int) {
	for k, x := range xs {
		if k > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.Itoa(x))
	}
	bw.WriteByte('\n')
}
