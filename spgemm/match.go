// SPDX-License-Identifier: MIT

package spgemm

// dotFunc returns Σ aVals[r]*bVals[p] over aCols[r] == bCols[p] and whether
// at least one pair matched. Both rows are sorted ascending and duplicate-free.
// Products are added in ascending order of the shared column, so every
// implementation returns bit-identical sums.
type dotFunc func(aCols []int, aVals []float64, bCols []int, bVals []float64) (float64, bool)

func (m Match) dot() dotFunc {
	if m == MatchLinear {
		return dotLinear
	}

	return dotMerge
}

// dotMerge intersects the rows with two pointers.
func dotMerge(aCols []int, aVals []float64, bCols []int, bVals []float64) (float64, bool) {
	var (
		sum  float64
		hit  bool
		r, p int
	)
	for r < len(aCols) && p < len(bCols) {
		switch ca, cb := aCols[r], bCols[p]; {
		case ca < cb:
			r++
		case ca > cb:
			p++
		default:
			sum += aVals[r] * bVals[p]
			hit = true
			r++
			p++
		}
	}

	return sum, hit
}

// dotLinear scans bCols for every entry of the A row and stops at the first
// match, which is valid because no row holds a column twice.
func dotLinear(aCols []int, aVals []float64, bCols []int, bVals []float64) (float64, bool) {
	var (
		sum float64
		hit bool
	)
	for r, ca := range aCols {
		for p, cb := range bCols {
			if ca == cb {
				sum += aVals[r] * bVals[p]
				hit = true
				break
			}
		}
	}

	return sum, hit
}
