// SPDX-License-Identifier: MIT

package assort

import "errors"

// Configuration errors. Returned by New and Restore, always wrapped with the
// relationship type and parameter name; match them with errors.Is.
var (
	// ErrMatrixShape indicates the weighting matrix is not N×N for N axes.
	ErrMatrixShape = errors.New("assort: weighting matrix must be square with one row/column per axis")

	// ErrZeroRow indicates a matrix row without any strictly positive weight.
	ErrZeroRow = errors.New("assort: weighting matrix row is all zeros")

	// ErrZeroColumn indicates a matrix column without any strictly positive weight.
	ErrZeroColumn = errors.New("assort: weighting matrix column is all zeros")

	// ErrWeightRange indicates a weight outside [0,1] or non-finite.
	ErrWeightRange = errors.New("assort: weight must be within [0,1]")

	// ErrAxesTrueFalse indicates boolean-trait axes other than TRUE and FALSE.
	ErrAxesTrueFalse = errors.New("assort: axes must be 'TRUE' and 'FALSE'")

	// ErrPropertyName indicates an empty property name in property mode.
	ErrPropertyName = errors.New("assort: property name must be defined and non-empty")

	// ErrUnknownProperty indicates the property is not defined in the registry.
	ErrUnknownProperty = errors.New("assort: property is not defined")

	// ErrAxesMismatch indicates axes that do not match the property's values.
	ErrAxesMismatch = errors.New("assort: axes must match the property values")

	// ErrSimulationType indicates a group not valid for the simulation type.
	ErrSimulationType = errors.New("assort: group not valid for simulation type")

	// ErrStartYear indicates a start year outside [MinYear, MaxYear].
	ErrStartYear = errors.New("assort: start year out of range")

	// ErrUnknownGroup indicates an unrecognized group name.
	ErrUnknownGroup = errors.New("assort: unknown group")
)

// Operation errors. Returned by SelectPartner.
var (
	// ErrNilAnchor indicates SelectPartner was called without an anchor.
	ErrNilAnchor = errors.New("assort: anchor partner is nil")

	// ErrNilRandom indicates a matrix-driven selection without a random source.
	ErrNilRandom = errors.New("assort: random source is nil")

	// ErrUnhandledGroup indicates a group with no resolver (extended group
	// without a registered IndexFunc, or an unknown value).
	ErrUnhandledGroup = errors.New("assort: unhandled group")

	// ErrValueNotInAxes indicates an individual's property value that is not
	// one of the axes (data drifted after validation).
	ErrValueNotInAxes = errors.New("assort: value is not one of the axes")

	// ErrIndexOutOfRange indicates an IndexFunc returned an index outside [0,N).
	ErrIndexOutOfRange = errors.New("assort: category index out of range")
)
