package paths

import "github.com/havfrost/rogrid"

// apath is a test Astar implementation driven by a passable function, with
// optional diagonal movement, matching the same movement rules used by
// JPSPath so that both algorithms can be cross-checked against each other.
type apath struct {
	nb       *Neighbors
	passable func(rogrid.Point) bool
	diags    bool
}

func (ap apath) Neighbors(p rogrid.Point) []rogrid.Point {
	if ap.diags {
		return ap.nb.All(p, ap.passable)
	}
	return ap.nb.Cardinal(p, ap.passable)
}

func (ap apath) Cost(p, q rogrid.Point) int {
	return 1
}

func (ap apath) Estimation(p, q rogrid.Point) int {
	if ap.diags {
		return DistanceChebyshev(p, q)
	}
	return DistanceManhattan(p, q)
}

// bpath is a test Dijkstra/BreadthFirst/Astar implementation allowing free
// 8-way movement across the whole range, used for benchmarks.
type bpath struct {
	nb *Neighbors
}

func (bp bpath) Neighbors(p rogrid.Point) []rogrid.Point {
	return bp.nb.All(p, func(rogrid.Point) bool { return true })
}

func (bp bpath) Cost(p, q rogrid.Point) int {
	return 1
}

func (bp bpath) Estimation(p, q rogrid.Point) int {
	return DistanceChebyshev(p, q)
}
