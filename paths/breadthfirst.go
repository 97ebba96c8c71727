package paths

import "github.com/havfrost/rogrid"

// BreadthFirst is the interface that allows to build a breadth first map
// using the BreadthFirstMap function.
type BreadthFirst interface {
	// Neighbors returns the available neighbor positions of a given
	// position. Implementations may use a cache to avoid allocations.
	Neighbors(rogrid.Point) []rogrid.Point
}

// bfNode stores the cached cost of a single cell in a breadth first map,
// stamped with the generation (BfIdx) it was computed in.
type bfNode struct {
	Cost int
	Idx  int
}

// BreadthFirstMap computes a breadth first map given a list of source
// positions and a maximal cost (in number of steps) from those sources. The
// resulting map can then be queried with CostAt.
func (pr *PathRange) BreadthFirstMap(bf BreadthFirst, sources []rogrid.Point, maxCost int) {
	if pr.BfMap == nil {
		max := pr.Rg.Size()
		pr.BfMap = make([]bfNode, max.X*max.Y)
		pr.BfQueue = pr.BfQueue[:0]
	}
	pr.BfIdx++
	pr.BfUnreachable = maxCost + 1
	pr.BfQueue = pr.BfQueue[:0]
	for _, f := range sources {
		if !f.In(pr.Rg) {
			continue
		}
		idx := pr.idx(f)
		pr.BfMap[idx] = bfNode{Cost: 0, Idx: pr.BfIdx}
		pr.BfQueue = append(pr.BfQueue, Node{P: f, Cost: 0})
	}
	pr.BfEnd = 0
	for pr.BfEnd < len(pr.BfQueue) {
		n := pr.BfQueue[pr.BfEnd]
		pr.BfEnd++
		if n.Cost >= maxCost {
			continue
		}
		for _, nb := range bf.Neighbors(n.P) {
			if !nb.In(pr.Rg) {
				continue
			}
			idx := pr.idx(nb)
			if pr.BfMap[idx].Idx == pr.BfIdx {
				continue
			}
			cost := n.Cost + 1
			pr.BfMap[idx] = bfNode{Cost: cost, Idx: pr.BfIdx}
			pr.BfQueue = append(pr.BfQueue, Node{P: nb, Cost: cost})
		}
	}
}

// CostAt returns the cost, in number of steps, from the closest source of
// the last computed breadth first map. It returns one more than the maximal
// cost given to BreadthFirstMap if p was not reached, and if p is out of
// range.
func (pr *PathRange) CostAt(p rogrid.Point) int {
	if pr.BfMap == nil || !p.In(pr.Rg) {
		return pr.BfUnreachable
	}
	n := pr.BfMap[pr.idx(p)]
	if n.Idx != pr.BfIdx {
		return pr.BfUnreachable
	}
	return n.Cost
}
