// Package lattice describes the square toroidal grid used when no
// migration files are configured.
//
// Nodes are numbered 1..Size² in row-major order starting at the top-left
// corner. Each node has exactly eight neighbors (its Moore neighborhood);
// rows and columns wrap around, so the grid has no edges:
//
//	NW  N  NE
//	W   ·   E
//	SW  S  SE
//
// Neighbor ids are always within [1, Size²]. The size must be at least 2;
// for Size == 2 some of the eight neighbors coincide.
package lattice
