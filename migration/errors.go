// SPDX-License-Identifier: MIT

package migration

import "errors"

// Configuration errors.
var (
	// ErrEmptyFilename indicates an enabled migration type without a file.
	ErrEmptyFilename = errors.New("migration: filename is empty, you must specify a file")

	// ErrMetadata indicates a malformed metadata document: invalid JSON, a
	// missing required key, or a value of the wrong JSON type.
	ErrMetadata = errors.New("migration: malformed metadata")

	// ErrIDReference indicates the file's IdReference differs from the
	// simulation's.
	ErrIDReference = errors.New("migration: IdReference does not match")

	// ErrDatavalueCount indicates a DatavalueCount outside [1, MaxDestinations].
	ErrDatavalueCount = errors.New("migration: DatavalueCount out of range")

	// ErrUnknownEnum indicates an enumerated metadata value that is not valid.
	ErrUnknownEnum = errors.New("migration: invalid enumerated value")

	// ErrMigrationTypeMismatch indicates a file declaring another migration type.
	ErrMigrationTypeMismatch = errors.New("migration: MigrationType does not match")

	// ErrAgesYears indicates AgesYears is not a strictly increasing array
	// within [0, MaxHumanAge].
	ErrAgesYears = errors.New("migration: invalid AgesYears")

	// ErrNodeOffsets indicates NodeOffsets disagrees with NodeCount or is not hex.
	ErrNodeOffsets = errors.New("migration: invalid NodeOffsets")

	// ErrUnknownSource indicates Params.Source is neither FILE nor TORUS.
	ErrUnknownSource = errors.New("migration: unknown rate source")

	// ErrUnknownModel indicates an unrecognized Params.Model.
	ErrUnknownModel = errors.New("migration: unknown migration model")
)

// File I/O errors.
var (
	// ErrFileNotFound indicates no search path contains the file.
	ErrFileNotFound = errors.New("migration: file not found")

	// ErrFileSize indicates the binary size differs from the size computed
	// from the metadata.
	ErrFileSize = errors.New("migration: wrong size for migration data file")

	// ErrShortRead indicates a block could not be read completely.
	ErrShortRead = errors.New("migration: error reading migration data")
)

// Data-consistency errors.
var (
	// ErrOffsetRange indicates a node offset at or beyond the expected file size.
	ErrOffsetRange = errors.New("migration: node offset beyond file size")

	// ErrInconsistentDestinations indicates age blocks of one node that list
	// destinations in different slots.
	ErrInconsistentDestinations = errors.New("migration: destinations differ between age blocks")

	// ErrUnknownNode indicates a destination id that is not a registered node.
	ErrUnknownNode = errors.New("migration: destination node is not registered")
)

// Precondition errors.
var (
	// ErrNilRandom indicates a draw was needed but no random source was given.
	ErrNilRandom = errors.New("migration: random source is nil")

	// ErrGenderTables indicates age-and-gender data without exactly two
	// gender tables.
	ErrGenderTables = errors.New("migration: age and gender data needs one table per gender")

	// ErrFixedRateTable indicates fixed-rate data with more than one age sample.
	ErrFixedRateTable = errors.New("migration: fixed-rate data must hold exactly one rate per destination")
)
