package paths

import "github.com/havfrost/rogrid"

// Neighbors is a cache-buffer for 4-way and 8-way neighbor computations. A
// zero Neighbors is ready to use. Reusing the same Neighbors value across
// calls avoids repeated allocations, which matters for hot pathfinding
// loops.
type Neighbors struct {
	nb []rogrid.Point
}

// All returns the up to 8 adjacent positions of p for which keep returns
// true. The returned slice is reused across calls: do not retain it.
func (nb *Neighbors) All(p rogrid.Point, keep func(rogrid.Point) bool) []rogrid.Point {
	nb.nb = p.Neighbors(nb.nb, keep)
	return nb.nb
}

// Cardinal returns the up to 4 cardinal-adjacent positions of p for which
// keep returns true. The returned slice is reused across calls: do not
// retain it.
func (nb *Neighbors) Cardinal(p rogrid.Point, keep func(rogrid.Point) bool) []rogrid.Point {
	nb.nb = p.CardinalNeighbors(nb.nb, keep)
	return nb.nb
}
