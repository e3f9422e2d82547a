// SPDX-License-Identifier: MIT

package rates

import "gonum.org/v1/gonum/floats"

// Normalize converts raw rates into a cumulative distribution in place and
// returns their total.
//
// When the total is positive, values[i] becomes Σ_{k≤i} rate_k/total and the
// final entry is forced to exactly 1.0, so a uniform draw in [0,1) can never
// walk past the end through rounding drift. An empty slice or a zero total
// leaves values untouched and returns 0 ("no migration possible").
// Complexity: O(n).
func Normalize(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := floats.Sum(values)
	if !(total > 0) {
		return 0
	}

	values[0] /= total
	for i := 1; i < len(values); i++ {
		values[i] = values[i]/total + values[i-1]
	}
	values[len(values)-1] = 1.0

	return total
}

// Pick inverts a CDF: it returns the first index whose cumulative value
// strictly exceeds draw. A draw equal to a boundary goes to the next bucket,
// so a zero-rate bucket is never chosen.
//
// Returns -1 for an empty CDF. The walk never passes the last index.
// Complexity: O(n).
func Pick(cdf []float64, draw float64) int {
	if len(cdf) == 0 {
		return -1
	}
	i := 0
	for i < len(cdf)-1 && draw >= cdf[i] {
		i++
	}
	return i
}
