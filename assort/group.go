// SPDX-License-Identifier: MIT

package assort

import (
	"fmt"
	"strings"
)

// Group selects how an individual is mapped to a matrix axis.
type Group int

const (
	NoGroup Group = iota
	STIInfectionStatus
	IndividualProperty
	STICoInfectionStatus
	HIVInfectionStatus
	HIVTestedPositiveStatus
	HIVReceivedResultsStatus
)

var groupNames = [...]string{
	NoGroup:                  "NO_GROUP",
	STIInfectionStatus:       "STI_INFECTION_STATUS",
	IndividualProperty:       "INDIVIDUAL_PROPERTY",
	STICoInfectionStatus:     "STI_COINFECTION_STATUS",
	HIVInfectionStatus:       "HIV_INFECTION_STATUS",
	HIVTestedPositiveStatus:  "HIV_TESTED_POSITIVE_STATUS",
	HIVReceivedResultsStatus: "HIV_RECEIVED_RESULTS_STATUS",
}

// String returns the configuration spelling of g.
func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return fmt.Sprintf("Group(%d)", int(g))
	}
	return groupNames[g]
}

// ParseGroup maps a configuration spelling (case-insensitive) to a Group.
func ParseGroup(s string) (Group, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range groupNames {
		if name == u {
			return Group(i), nil
		}
	}
	return NoGroup, fmt.Errorf("%q: %w", s, ErrUnknownGroup)
}

// MarshalText implements encoding.TextMarshaler (used by YAML encoding).
func (g Group) MarshalText() ([]byte, error) {
	if g < 0 || int(g) >= len(groupNames) {
		return nil, fmt.Errorf("%d: %w", int(g), ErrUnknownGroup)
	}
	return []byte(groupNames[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Group) UnmarshalText(b []byte) error {
	v, err := ParseGroup(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Extended reports whether g needs a registered IndexFunc.
func (g Group) Extended() bool {
	switch g {
	case HIVInfectionStatus, HIVTestedPositiveStatus, HIVReceivedResultsStatus:
		return true
	}
	return false
}

// boolean reports whether g uses the two TRUE/FALSE axes.
func (g Group) boolean() bool {
	switch g {
	case STIInfectionStatus, STICoInfectionStatus,
		HIVInfectionStatus, HIVTestedPositiveStatus, HIVReceivedResultsStatus:
		return true
	}
	return false
}
