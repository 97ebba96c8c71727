package paths

import "math"

// checkNodesIdx resets the generation stamps of a node map once its
// counter gets close to overflow, so that CacheIndex comparisons remain
// valid forever. This mirrors the same safety check used by the FOV
// light maps.
func checkNodesIdx(nm *nodeMap) {
	if nm.Idx < math.MaxInt32 {
		return
	}
	for i, n := range nm.Nodes {
		idx := 0
		if n.CacheIndex == nm.Idx {
			idx = 1
		}
		n.CacheIndex = idx
		nm.Nodes[i] = n
	}
	nm.Idx = 1
}
