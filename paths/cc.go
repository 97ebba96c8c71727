package paths

import "github.com/havfrost/rogrid"

// Neighborer is the interface that allows to compute connected components
// using the ComputeCCAll and ComputeCC functions.
type Neighborer interface {
	// Neighbors returns the available neighbor positions of a given
	// position. Implementations may use a cache to avoid allocations.
	Neighbors(rogrid.Point) []rogrid.Point
}

func (pr *PathRange) resetCC() {
	if pr.CC == nil {
		max := pr.Rg.Size()
		pr.CC = make([]int, max.X*max.Y)
	}
	for i := range pr.CC {
		pr.CC[i] = -1
	}
	pr.CCStack = pr.CCStack[:0]
}

// ComputeCCAll computes the connected components of the whole range, using
// nb as the neighbor relation. Use CCAt to query the resulting component
// identifiers.
func (pr *PathRange) ComputeCCAll(nb Neighborer) {
	pr.resetCC()
	pr.CCIterCache = pr.CCIterCache[:0]
	id := 0
	max := pr.Rg.Size()
	for y := 0; y < max.Y; y++ {
		for x := 0; x < max.X; x++ {
			p := rogrid.Point{X: pr.Rg.Min.X + x, Y: pr.Rg.Min.Y + y}
			if pr.CC[pr.idx(p)] != -1 {
				continue
			}
			pr.floodCC(nb, p, id, false)
			id++
		}
	}
}

// ComputeCC computes the connected component containing p, using nb as the
// neighbor relation. It's a no-op if p is out of range. Use CCIter to
// iterate the positions of the resulting component.
func (pr *PathRange) ComputeCC(nb Neighborer, p rogrid.Point) {
	pr.resetCC()
	pr.CCIterCache = pr.CCIterCache[:0]
	if !p.In(pr.Rg) {
		return
	}
	pr.floodCC(nb, p, 0, true)
}

func (pr *PathRange) floodCC(nb Neighborer, start rogrid.Point, id int, record bool) {
	pr.CCStack = append(pr.CCStack[:0], start)
	pr.CC[pr.idx(start)] = id
	if record {
		pr.CCIterCache = append(pr.CCIterCache, start)
	}
	for len(pr.CCStack) > 0 {
		n := len(pr.CCStack) - 1
		p := pr.CCStack[n]
		pr.CCStack = pr.CCStack[:n]
		for _, q := range nb.Neighbors(p) {
			if !q.In(pr.Rg) {
				continue
			}
			idx := pr.idx(q)
			if pr.CC[idx] != -1 {
				continue
			}
			pr.CC[idx] = id
			if record {
				pr.CCIterCache = append(pr.CCIterCache, q)
			}
			pr.CCStack = append(pr.CCStack, q)
		}
	}
}

// CCAt returns the component identifier of p in the last computed connected
// components, or -1 if p was not part of it (including when p is out of
// range).
func (pr *PathRange) CCAt(p rogrid.Point) int {
	if pr.CC == nil || !p.In(pr.Rg) {
		return -1
	}
	return pr.CC[pr.idx(p)]
}

// CCIter iterates a function on the positions of the component computed by
// the last call to ComputeCC.
func (pr *PathRange) CCIter(fn func(rogrid.Point)) {
	for _, p := range pr.CCIterCache {
		fn(p)
	}
}
