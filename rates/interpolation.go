// SPDX-License-Identifier: MIT

package rates

import (
	"fmt"
	"strings"
)

// InterpolationType selects how Table.Rate fills the gap between samples.
type InterpolationType int

const (
	// Linear interpolates between the two neighbouring samples.
	Linear InterpolationType = iota
	// PiecewiseConstant returns the rate of the greatest sample age ≤ age.
	PiecewiseConstant
)

// interpolationNames holds the metadata-file spelling of each type.
var interpolationNames = [...]string{
	Linear:            "LINEAR_INTERPOLATION",
	PiecewiseConstant: "PIECEWISE_CONSTANT",
}

// String returns the metadata-file spelling of t.
func (t InterpolationType) String() string {
	if t < 0 || int(t) >= len(interpolationNames) {
		return fmt.Sprintf("InterpolationType(%d)", int(t))
	}
	return interpolationNames[t]
}

// InterpolationNames lists the valid spellings in declaration order.
func InterpolationNames() []string {
	out := make([]string, len(interpolationNames))
	copy(out, interpolationNames[:])
	return out
}

// ParseInterpolation maps a metadata-file spelling to its type.
// Matching is exact after trimming whitespace, as the file format is.
func ParseInterpolation(s string) (InterpolationType, error) {
	s = strings.TrimSpace(s)
	for i, name := range interpolationNames {
		if name == s {
			return InterpolationType(i), nil
		}
	}
	return Linear, fmt.Errorf("%q: %w", s, ErrUnknownInterpolation)
}
