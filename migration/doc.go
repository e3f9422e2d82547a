// Package migration decides whether, where, and when an individual leaves
// its node.
//
// Each node owns one Info strategy, built once by a Factory:
//
//   - Null: the node never emits migrants ("fortress" nodes, or migration
//     switched off). Its step has Time == -1.
//   - FixedRate: rates do not depend on the traveler; the CDF is built once.
//   - AgeAndGender: rates are looked up per call from the traveler's age
//     and gender, with separate destination lists per gender.
//
// PickMigrationStep draws the waiting time from an exponential distribution
// with the node's total rate, then inverts one uniform draw against the
// rate CDF (rates.Pick). A zero total rate yields NoMigration with Time 0
// and consumes no draws.
//
// Rates come either from binary files (FileFactory, up to one file per
// migration Type) or from a procedural torus (DefaultFactory).
//
// # File format
//
// A migration file is a pair: <name> (binary) and <name>.json (metadata).
// The binary holds, for each gender chunk, each age bucket and each source
// node, one block of DatavalueCount little-endian uint32 destination ids
// followed by DatavalueCount float64 rates. Destination id 0 is padding.
// The block of node n, gender g and age a starts at
//
//	g*genderSize + a*ageSize + NodeOffsets[n]
//
// where ageSize = nodes*DatavalueCount*12 and genderSize = ages*ageSize.
// Metadata keys are case-sensitive:
//
//	{
//	  "Metadata": {
//	    "IdReference": "Gridded world",     required, case-insensitive match
//	    "NodeCount": 4,                     required
//	    "DatavalueCount": 8,                optional, 1..100
//	    "MigrationType": "LOCAL_MIGRATION", optional, must match the file slot
//	    "GenderDataType": "SAME_FOR_BOTH_GENDERS",
//	    "AgesYears": [0, 20, 60],           optional, strictly increasing, ≤125
//	    "InterpolationType": "LINEAR_INTERPOLATION"
//	  },
//	  "NodeOffsets": "0000000100000000..." 16 hex chars per node: id, offset
//	}
//
// Files are read through io.ReaderAt, so per-node builds may run
// concurrently (see BuildAll). A single Info is not safe for concurrent
// PickMigrationStep calls.
package migration
