// SPDX-License-Identifier: MIT

package migration

import (
	"fmt"
	"strings"
)

// Format limits.
const (
	// MaxDestinations bounds DatavalueCount.
	MaxDestinations = 100

	// MaxHumanAge is the default (and largest) age bucket in years.
	MaxHumanAge = 125.0

	// recordSize is one destination: uint32 id + float64 rate.
	recordSize = 4 + 8

	// offsetWidth is the hex width of one NodeOffsets entry.
	offsetWidth = 16
)

// Type classifies a migration step.
type Type int

const (
	NoMigration Type = iota
	Local
	Air
	Regional
	Sea
	Family
)

var typeNames = [...]string{
	NoMigration: "NO_MIGRATION",
	Local:       "LOCAL_MIGRATION",
	Air:         "AIR_MIGRATION",
	Regional:    "REGIONAL_MIGRATION",
	Sea:         "SEA_MIGRATION",
	Family:      "FAMILY_MIGRATION",
}

// defaultDestinations is the DatavalueCount assumed when a file omits it.
var defaultDestinations = [...]int{
	Local:    8,
	Air:      60,
	Regional: 30,
	Sea:      5,
	Family:   8,
}

// Types lists the migration types that can carry rates, in file order.
func Types() []Type { return []Type{Local, Air, Regional, Sea, Family} }

// String returns the file spelling, e.g. "LOCAL_MIGRATION".
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// DefaultDestinations returns the per-node destination count of t's files
// when their metadata has no DatavalueCount.
func (t Type) DefaultDestinations() int {
	if t <= NoMigration || int(t) >= len(defaultDestinations) {
		return 0
	}
	return defaultDestinations[t]
}

// ParseType maps a file spelling to a Type. Matching is exact.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return NoMigration, fmt.Errorf("%q is not a valid MigrationType, valid values are: %s: %w",
		s, quoteAll(typeNames[:]), ErrUnknownEnum)
}

// GenderDataType selects how many gender chunks a file holds.
type GenderDataType int

const (
	// SameForBothGenders stores one chunk read for both genders.
	SameForBothGenders GenderDataType = iota
	// OneForEachGender stores a male chunk followed by a female chunk.
	OneForEachGender
)

var genderDataNames = [...]string{
	SameForBothGenders: "SAME_FOR_BOTH_GENDERS",
	OneForEachGender:   "ONE_FOR_EACH_GENDER",
}

func (g GenderDataType) String() string {
	if g < 0 || int(g) >= len(genderDataNames) {
		return fmt.Sprintf("GenderDataType(%d)", int(g))
	}
	return genderDataNames[g]
}

// ParseGenderDataType maps a file spelling to a GenderDataType.
func ParseGenderDataType(s string) (GenderDataType, error) {
	for i, name := range genderDataNames {
		if name == s {
			return GenderDataType(i), nil
		}
	}
	return SameForBothGenders, fmt.Errorf("%q is not a valid GenderDataType, valid values are: %s: %w",
		s, quoteAll(genderDataNames[:]), ErrUnknownEnum)
}

// chunks is the number of gender chunks in the binary.
func (g GenderDataType) chunks() int {
	if g == OneForEachGender {
		return 2
	}
	return 1
}

func quoteAll(values []string) string {
	q := make([]string, len(values))
	for i, v := range values {
		q[i] = "'" + v + "'"
	}
	return strings.Join(q, ", ")
}
