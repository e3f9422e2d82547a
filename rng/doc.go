// SPDX-License-Identifier: MIT

// Package rng provides the random capability consumed by the partner
// selection and migration engines.
//
// Both engines depend only on the Source interface: a uniform draw in [0,1)
// and an exponential draw with a given rate. PCG is the production
// implementation (math/rand/v2 PCG generator, exponential variates through
// gonum's distuv). Replay serves scripted draws for deterministic tests and
// for re-running a recorded decision sequence.
//
// Determinism:
//   - The same seed yields the same stream on every platform.
//   - Seed 0 is mapped to DefaultSeed, never to a time-based seed.
//   - Derive builds independent streams for parallel partitions from one
//     parent seed (SplitMix64 mixing).
//
// Concurrency:
//   - A Source is NOT goroutine-safe. Each partition or worker must own its
//     own Source; use Derive to create them.
package rng
