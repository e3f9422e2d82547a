// SPDX-License-Identifier: MIT

package rates

import (
	"math"
	"sort"
)

// Sample is one (age, rate) point of a Table.
type Sample struct {
	Age  float64
	Rate float64
}

// Table is an age→rate lookup kept sorted by ascending age.
//
// Ages at or below the first sample clamp to the first rate, ages at or
// above the last sample clamp to the last rate, regardless of the
// interpolation type. A one-sample table is constant. An empty table
// returns 0 for every age.
//
// The zero value is an empty Linear table ready to use.
type Table struct {
	interp  InterpolationType
	samples []Sample
}

// NewTable returns an empty table with the given interpolation type.
func NewTable(interp InterpolationType) Table {
	return Table{interp: interp}
}

// Interpolation reports the table's interpolation type.
func (t Table) Interpolation() InterpolationType { return t.interp }

// Len returns the number of samples.
func (t Table) Len() int { return len(t.samples) }

// Samples returns a copy of the samples in ascending age order.
func (t Table) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Add inserts (age, rate) keeping ascending order. An existing sample with
// the same age is replaced, matching map-insert semantics.
// Complexity: O(n) worst case (insertion shift), O(log n) search.
func (t *Table) Add(age, rate float64) error {
	if math.IsNaN(age) || math.IsInf(age, 0) || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return ErrNonFinite
	}
	i := sort.Search(len(t.samples), func(k int) bool { return t.samples[k].Age >= age })
	if i < len(t.samples) && t.samples[i].Age == age {
		t.samples[i].Rate = rate
		return nil
	}
	t.samples = append(t.samples, Sample{})
	copy(t.samples[i+1:], t.samples[i:])
	t.samples[i] = Sample{Age: age, Rate: rate}

	return nil
}

// Rate returns the rate for the given age in years. A NaN age gets the
// first sample's rate.
// Complexity: O(log n).
func (t Table) Rate(age float64) float64 {
	n := len(t.samples)
	if n == 0 {
		return 0
	}
	first, last := t.samples[0], t.samples[n-1]
	if age <= first.Age || math.IsNaN(age) {
		return first.Rate
	}
	if age >= last.Age {
		return last.Rate
	}

	// hi is the first sample strictly above age; 1 ≤ hi ≤ n-1 here.
	hi := sort.Search(n, func(k int) bool { return t.samples[k].Age > age })
	lo := hi - 1
	if t.interp == PiecewiseConstant {
		return t.samples[lo].Rate
	}

	a, b := t.samples[lo], t.samples[hi]
	frac := (age - a.Age) / (b.Age - a.Age)
	return a.Rate + frac*(b.Rate-a.Rate)
}
