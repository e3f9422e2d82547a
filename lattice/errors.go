package lattice

import "errors"

var (
	// ErrSize indicates a torus side shorter than 2.
	ErrSize = errors.New("lattice: torus size must be at least 2")
	// ErrNodeRange indicates a node id outside [1, Size²].
	ErrNodeRange = errors.New("lattice: node id out of range")
)
