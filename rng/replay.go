// SPDX-License-Identifier: MIT

package rng

import "math"

// Replay is a Source that serves pre-recorded draws in order, cycling when
// a list is exhausted. Exponential ignores the requested rate unless the
// Exponentials list is empty, in which case it returns 1/rate (the mean).
//
// Replay is meant for tests and for re-running a captured decision trace.
type Replay struct {
	Uniforms     []float64
	Exponentials []float64

	ui int
	ei int
}

// NewReplay returns a Replay serving the given uniform draws.
func NewReplay(uniforms ...float64) *Replay {
	return &Replay{Uniforms: uniforms}
}

// Uniform returns the next recorded uniform draw (0 when none recorded).
func (r *Replay) Uniform() float64 {
	if len(r.Uniforms) == 0 {
		return 0
	}
	v := r.Uniforms[r.ui%len(r.Uniforms)]
	r.ui++
	return v
}

// Exponential returns the next recorded exponential draw.
func (r *Replay) Exponential(rate float64) float64 {
	if len(r.Exponentials) == 0 {
		if rate <= 0 {
			return math.Inf(1)
		}
		return 1 / rate
	}
	v := r.Exponentials[r.ei%len(r.Exponentials)]
	r.ei++
	return v
}

// UniformCalls reports how many uniform draws have been served.
func (r *Replay) UniformCalls() int { return r.ui }

// Reset rewinds both lists to the beginning.
func (r *Replay) Reset() {
	r.ui = 0
	r.ei = 0
}
