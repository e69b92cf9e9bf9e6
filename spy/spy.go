// SPDX-License-Identifier: MIT

// Package spy renders the sparsity pattern of a csr.Matrix (a "spy plot")
// with gonum.org/v1/plot. One marker is drawn per stored entry at
// (column, row); the row axis grows downwards like a printed matrix.
package spy

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/lvsparse/csr"
)

// ErrUnsupportedFormat is returned for an output extension other than
// .png, .svg, .pdf, .jpg/.jpeg, .eps or .tif/.tiff.
var ErrUnsupportedFormat = errors.New("spy: unsupported image format")

// Options controls the rendered image.
type Options struct {
	Title  string      // plot title; empty means "<rows>x<cols>, nnz=<n>"
	Size   vg.Length   // edge length of the square image; 0 means 12cm
	Marker vg.Length   // marker radius; 0 picks one from the matrix size
	Color  color.Color // marker color; nil means black
}

// DefaultOptions returns the zero Options, which Render fills with defaults.
func DefaultOptions() Options { return Options{} }

// Plot builds the spy plot of m without saving it.
func Plot(m *csr.Matrix, opts Options) (*plot.Plot, error) {
	if m == nil {
		return nil, fmt.Errorf("spy: %w", csr.ErrNilMatrix)
	}
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%dx%d, nnz=%d", m.Rows(), m.Cols(), m.NNZ())
	}
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}
	defer func() {
		// one unit per row/column, regardless of what Add inferred
		p.X.Min, p.X.Max = -0.5, float64(max(m.Cols(), 1))-0.5
		p.Y.Min, p.Y.Max = -0.5, float64(max(m.Rows(), 1))-0.5
	}()

	if m.NNZ() == 0 {
		return p, nil
	}

	pts := make(plotter.XYs, 0, m.NNZ())
	for i := 0; i < m.Rows(); i++ {
		cols, _ := m.Row(i)
		for _, j := range cols {
			pts = append(pts, plotter.XY{X: float64(j), Y: float64(i)})
		}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("spy: %w", err)
	}
	sc.GlyphStyle.Shape = draw.BoxGlyph{}
	sc.GlyphStyle.Radius = markerRadius(m, opts)
	sc.GlyphStyle.Color = opts.Color
	if sc.GlyphStyle.Color == nil {
		sc.GlyphStyle.Color = color.Black
	}
	p.Add(sc)

	return p, nil
}

// Render draws m and saves it to path; the format follows the extension.
func Render(m *csr.Matrix, path string, opts Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
	default:
		return fmt.Errorf("spy: %q: %w", path, ErrUnsupportedFormat)
	}
	p, err := Plot(m, opts)
	if err != nil {
		return err
	}
	size := opts.Size
	if size <= 0 {
		size = 12 * vg.Centimeter
	}
	if err = p.Save(size, size, path); err != nil {
		return fmt.Errorf("spy: %w", err)
	}

	return nil
}

func markerRadius(m *csr.Matrix, opts Options) vg.Length {
	if opts.Marker > 0 {
		return opts.Marker
	}
	n := max(m.Rows(), m.Cols())
	switch {
	case n <= 32:
		return vg.Points(3)
	case n <= 256:
		return vg.Points(1.5)
	default:
		return vg.Points(0.5)
	}
}
