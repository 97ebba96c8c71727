// This file implements the A* pathfinding algorithm. For more information:
// https://en.wikipedia.org/wiki/A*_search_algorithm

package paths

import "github.com/havfrost/rogrid"

// Astar is the interface that allows to compute a path between two points
// using the AstarPath function.
type Astar interface {
	// Neighbors returns the available neighbor positions of a given
	// position. Implementations may use a cache to avoid allocations.
	Neighbors(rogrid.Point) []rogrid.Point

	// Cost represents the cost from one position to an adjacent one. It
	// should not produce paths with negative costs.
	Cost(rogrid.Point, rogrid.Point) int

	// Estimation offers a hint for Astar's heuristic. Underestimating
	// the value of this function will guarantee an optimal path. It
	// should be kept simple, as it will often get called.
	Estimation(rogrid.Point, rogrid.Point) int
}

func (pr *PathRange) initAstar() {
	if pr.AstarNodes != nil {
		return
	}
	pr.AstarNodes = &nodeMap{}
	max := pr.Rg.Size()
	pr.AstarNodes.Nodes = make([]node, max.X*max.Y)
	pr.AstarQueue = make(priorityQueue, 0, max.X*max.Y)
}

// AstarPath returns a path from a position to another, including these
// positions, in the path order. The path is returned in a newly allocated
// slice; no caller-provided buffer is reused. The returned slice is nil if
// no path was found.
func (pr *PathRange) AstarPath(ast Astar, from, to rogrid.Point) []rogrid.Point {
	if !from.In(pr.Rg) || !to.In(pr.Rg) {
		return nil
	}
	pr.initAstar()
	nm := pr.AstarNodes
	nm.Idx++
	defer checkNodesIdx(nm)
	pr.AstarQueue = pr.AstarQueue[:0]
	pqInit(&pr.AstarQueue)

	fromNode := nm.get(pr, from)
	fromNode.Cost = 0
	fromNode.Rank = ast.Estimation(from, to)
	fromNode.Open = true
	pqPush(&pr.AstarQueue, fromNode)

	for {
		if pr.AstarQueue.Len() == 0 {
			return nil
		}
		n := pqPop(&pr.AstarQueue)
		n.Open = false
		n.Closed = true

		if n.P == to {
			return pr.astarPath(from, n)
		}

		for _, nb := range ast.Neighbors(n.P) {
			if !nb.In(pr.Rg) {
				continue
			}
			cost := n.Cost + ast.Cost(n.P, nb)
			nbNode := nm.get(pr, nb)
			if nbNode.Open || nbNode.Closed {
				if cost < nbNode.Cost {
					if nbNode.Open {
						pqRemove(&pr.AstarQueue, nbNode.Idx)
					}
					nbNode.Open = false
					nbNode.Closed = false
				}
			}
			if !nbNode.Open && !nbNode.Closed {
				nbNode.Cost = cost
				nbNode.Rank = cost + ast.Estimation(nb, to)
				nbNode.Parent = n.P
				nbNode.Open = true
				pqPush(&pr.AstarQueue, nbNode)
			}
		}
	}
}

func (pr *PathRange) astarPath(from rogrid.Point, n *node) []rogrid.Point {
	path := []rogrid.Point{n.P}
	for n.P != from {
		n = pr.AstarNodes.at(pr, n.Parent)
		path = append(path, n.P)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
