// SPDX-License-Identifier: MIT

package rng

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed uint64 = 1

// Source draws the two variates the engines need.
type Source interface {
	// Uniform returns a value in [0,1).
	Uniform() float64

	// Exponential returns an exponentially distributed value with the
	// given rate (mean 1/rate). A non-positive rate yields +Inf.
	Exponential(rate float64) float64
}

// PCG is a seeded Source backed by a PCG generator.
// The uniform and exponential draws share one underlying stream, so the
// order of calls is part of the reproducibility contract.
type PCG struct {
	rnd *rand.Rand
	exp distuv.Exponential // Rate fixed at 1, scaled per draw
}

// New returns a PCG seeded with seed (0 ⇒ DefaultSeed).
// Complexity: O(1).
func New(seed uint64) *PCG {
	if seed == 0 {
		seed = DefaultSeed
	}
	src := rand.NewPCG(seed, deriveSeed(seed, 0))

	return &PCG{
		rnd: rand.New(src),
		exp: distuv.Exponential{Rate: 1, Src: src},
	}
}

// Derive returns an independent stream for the given partition/stream id.
// Call during setup, not in hot loops.
// Complexity: O(1).
func Derive(parent uint64, stream uint64) *PCG {
	if parent == 0 {
		parent = DefaultSeed
	}
	return New(deriveSeed(parent, stream+1))
}

// Uniform returns a value in [0,1).
func (p *PCG) Uniform() float64 {
	return p.rnd.Float64()
}

// Exponential returns an Exp(rate) variate.
func (p *PCG) Exponential(rate float64) float64 {
	if rate <= 0 || math.IsNaN(rate) {
		return math.Inf(1)
	}
	return p.exp.Rand() / rate
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed
// with a SplitMix64 finalizer; small input changes scatter across all bits.
// Complexity: O(1).
func deriveSeed(parent uint64, stream uint64) uint64 {
	var x uint64
	x = parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		x = DefaultSeed
	}
	return x
}
