// SPDX-License-Identifier: MIT

package assort

// scored is one kept candidate and its weight.
type scored struct {
	partner Partner
	weight  float64
}

// ScoreBuffer is a reusable, fixed-capacity scratch list for the
// partner-selection hot path. It is reset before every use, so its prior
// contents are never read. Candidates beyond the capacity are dropped and
// counted.
//
// A ScoreBuffer is owned by one execution context; never share one between
// goroutines.
type ScoreBuffer struct {
	entries []scored
	dropped int
}

// NewScoreBuffer allocates a buffer holding up to capacity candidates.
// Panics if capacity <= 0.
func NewScoreBuffer(capacity int) *ScoreBuffer {
	if capacity <= 0 {
		panic("assort: NewScoreBuffer: capacity must be > 0")
	}
	return &ScoreBuffer{entries: make([]scored, 0, capacity)}
}

// Cap returns the candidate capacity.
func (b *ScoreBuffer) Cap() int { return cap(b.entries) }

// Len returns the number of candidates kept by the last selection.
func (b *ScoreBuffer) Len() int { return len(b.entries) }

// Dropped returns how many positive-weight candidates the last selection
// dropped for lack of capacity.
func (b *ScoreBuffer) Dropped() int { return b.dropped }

// reset empties the buffer and releases partner references.
func (b *ScoreBuffer) reset() {
	clear(b.entries)
	b.entries = b.entries[:0]
	b.dropped = 0
}

// push keeps (p, w) if there is room; otherwise counts a drop.
func (b *ScoreBuffer) push(p Partner, w float64) bool {
	if len(b.entries) == cap(b.entries) {
		b.dropped++
		return false
	}
	b.entries = append(b.entries, scored{partner: p, weight: w})
	return true
}
