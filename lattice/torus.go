// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"
)

// Direction indexes the eight entries returned by Neighbors.
type Direction int

const (
	NorthWest Direction = iota
	North
	NorthEast
	West
	East
	SouthWest
	South
	SouthEast

	// NeighborCount is the size of a Moore neighborhood.
	NeighborCount = 8
)

// offsets lists (dx, dy) per Direction; y grows downward.
var offsets = [NeighborCount][2]int{
	NorthWest: {-1, -1}, North: {0, -1}, NorthEast: {1, -1},
	West: {-1, 0}, East: {1, 0},
	SouthWest: {-1, 1}, South: {0, 1}, SouthEast: {1, 1},
}

// Torus is a Size×Size wrap-around grid. It is immutable.
type Torus struct {
	size int
}

// NewTorus returns a torus with the given side length.
// Returns ErrSize if size < 2 or Size² would overflow a uint32 node id.
func NewTorus(size int) (*Torus, error) {
	if size < 2 || size > math.MaxUint16 {
		return nil, fmt.Errorf("lattice: NewTorus(%d): %w", size, ErrSize)
	}
	return &Torus{size: size}, nil
}

// Size returns the side length.
func (t *Torus) Size() int { return t.size }

// Len returns the number of nodes, Size².
func (t *Torus) Len() int { return t.size * t.size }

// Contains reports whether id is a node of the torus.
func (t *Torus) Contains(id uint32) bool {
	return id >= 1 && uint64(id) <= uint64(t.Len())
}

// Coordinates returns the zero-based column x and row y of id.
func (t *Torus) Coordinates(id uint32) (x, y int, err error) {
	if !t.Contains(id) {
		return 0, 0, fmt.Errorf("lattice: node %d not in [1,%d]: %w", id, t.Len(), ErrNodeRange)
	}
	i := int(id) - 1
	return i % t.size, i / t.size, nil
}

// ID returns the node at column x, row y, wrapping both coordinates.
func (t *Torus) ID(x, y int) uint32 {
	x = wrap(x, t.size)
	y = wrap(y, t.size)
	return uint32(y*t.size + x + 1)
}

// Neighbors returns the eight neighbor ids of id, indexed by Direction.
// Complexity: O(1).
func (t *Torus) Neighbors(id uint32) ([NeighborCount]uint32, error) {
	var out [NeighborCount]uint32
	x, y, err := t.Coordinates(id)
	if err != nil {
		return out, err
	}
	for d, off := range offsets {
		out[d] = t.ID(x+off[0], y+off[1])
	}
	return out, nil
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
