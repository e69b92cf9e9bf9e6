// SPDX-License-Identifier: MIT

package spgemm

// White-box bridges for spgemm_test.
var (
	ExportedPrefixSum = prefixSum
	ExportedDotMerge  = dotMerge
	ExportedDotLinear = dotLinear
)
