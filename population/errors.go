package population

import "errors"

// Sentinel errors for population operations.
var (
	// ErrEmptyPropertyKey indicates a property name that is the empty string.
	ErrEmptyPropertyKey = errors.New("population: property key is empty")

	// ErrUnknownProperty indicates a property name absent from the registry.
	ErrUnknownProperty = errors.New("population: property not defined")

	// ErrNoPropertyValues indicates a property defined with no legal values.
	ErrNoPropertyValues = errors.New("population: property has no values")

	// ErrDuplicatePropertyValue indicates a repeated legal value.
	ErrDuplicatePropertyValue = errors.New("population: duplicate property value")

	// ErrUnknownRelationshipType indicates an unrecognized relationship name.
	ErrUnknownRelationshipType = errors.New("population: unknown relationship type")

	// ErrUnknownGender indicates an unrecognized gender name.
	ErrUnknownGender = errors.New("population: unknown gender")
)
