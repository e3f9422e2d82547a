package population

import (
	"fmt"
	"strings"
)

// DaysPerYear converts ages kept in days to years.
const DaysPerYear = 365.0

// Gender of an individual. The numeric values index per-gender tables.
type Gender int

const (
	// Male is gender index 0.
	Male Gender = iota
	// Female is gender index 1.
	Female
)

// GenderCount is the number of genders, the length of per-gender tables.
const GenderCount = 2

// String returns "MALE" or "FEMALE".
func (g Gender) String() string {
	switch g {
	case Male:
		return "MALE"
	case Female:
		return "FEMALE"
	default:
		return fmt.Sprintf("Gender(%d)", int(g))
	}
}

// ParseGender accepts "MALE"/"FEMALE" case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE":
		return Male, nil
	case "FEMALE":
		return Female, nil
	}
	return Male, fmt.Errorf("%q: %w", s, ErrUnknownGender)
}

// RelationshipType selects which relationship pool a partner is sought for.
// Each type carries its own assortivity configuration and index cache slot.
type RelationshipType int

const (
	Transitory RelationshipType = iota
	Informal
	Marital
	Commercial
)

// RelationshipTypeCount is the number of relationship types.
const RelationshipTypeCount = 4

var relationshipNames = [RelationshipTypeCount]string{
	Transitory: "TRANSITORY",
	Informal:   "INFORMAL",
	Marital:    "MARITAL",
	Commercial: "COMMERCIAL",
}

// String returns the configuration spelling, e.g. "TRANSITORY".
func (r RelationshipType) String() string {
	if r < 0 || int(r) >= RelationshipTypeCount {
		return fmt.Sprintf("RelationshipType(%d)", int(r))
	}
	return relationshipNames[r]
}

// RelationshipTypes lists all relationship types in declaration order.
func RelationshipTypes() []RelationshipType {
	return []RelationshipType{Transitory, Informal, Marital, Commercial}
}

// ParseRelationshipType accepts the configuration spelling case-insensitively.
func ParseRelationshipType(s string) (RelationshipType, error) {
	u := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range relationshipNames {
		if name == u {
			return RelationshipType(i), nil
		}
	}
	return Transitory, fmt.Errorf("%q: %w", s, ErrUnknownRelationshipType)
}
