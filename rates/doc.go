// SPDX-License-Identifier: MIT

// Package rates holds the shared numeric primitives of the migration and
// partner-selection engines:
//
//   - Table: a sorted age→rate sample set with clamped linear or
//     piecewise-constant lookup.
//   - Normalize: in-place conversion of raw per-destination rates into a
//     cumulative distribution whose last entry is exactly 1.0.
//   - Pick: linear CDF inversion with a strict "greater than" walk.
//
// All functions are pure, deterministic, and allocation-free on the lookup
// paths. Nothing here is goroutine-safe for concurrent mutation; Tables are
// read-only once built.
package rates
