// Package verify checks SpGEMM results against an independent dense
// reference computed with gonum.org/v1/gonum/mat.
//
// Reference is quadratic in memory and meant for test-sized inputs and the
// CLI's --verify flag. Compare reports the first divergence as a *Mismatch
// so callers can print exactly where two products disagree.
package verify
