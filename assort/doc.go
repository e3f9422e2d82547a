// SPDX-License-Identifier: MIT

// Package assort implements assortative partner selection: given an anchor
// individual and a list of candidates, pick one candidate according to a
// preference model expressed as a weighting matrix over discrete
// categories ("axes").
//
// Grouping modes (Group):
//
//	NO_GROUP                      – no preference, first candidate wins
//	STI_INFECTION_STATUS          – axes TRUE/FALSE on infection
//	STI_COINFECTION_STATUS        – axes TRUE/FALSE on co-infection
//	INDIVIDUAL_PROPERTY           – axes are a property's legal values
//	HIV_* (extended)              – resolved by a registered IndexFunc
//
// Matrix rows are indexed by the anchor's category and columns by the
// candidate's category. Every row and every column must hold at least one
// strictly positive weight; New rejects anything else before an engine is
// returned, so a constructed *Assortivity is always valid.
//
// Selection is weighted sampling without replacement of one element: keep
// candidates with weight > 0 (up to the ScoreBuffer capacity, overflow is
// dropped), draw u·total and return the first candidate whose running
// weight strictly exceeds the draw.
//
// Concurrency: an *Assortivity is read-only after construction except for
// Update, but SelectPartner writes into a ScoreBuffer and draws from an
// rng.Source. Give every execution context its own ScoreBuffer and Source.
package assort
