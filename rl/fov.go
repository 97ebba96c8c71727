// This file implements a line of sight algorithm.

package rl

import (
	"bytes"
	"encoding/gob"
	"math"

	"github.com/havfrost/rogrid"
)

// FOV represents a field of vision. With a well-defined Lighter, it has the
// following properties: symmetric light rays, expansive walls, permissive with
// blind diagonal corners, simple octant-based geometry, fast computation.
//
// The default algorithm works in a way that can remind of the Dijkstra
// algorithm, but within each cone between a diagonal and an orthogonal axis
// (an octant), only movements along those two directions are allowed. This
// allows the algorithm to be a simple pass on squares around the player,
// starting from radius 1 until line of sight range.
//
// Going from a rogrid.Point p to a rogrid.Point q has a cost, which depends
// essentially on the type of terrain in p, and is determined by a Lighter.
//
// The obtained light rays are lines formed using at most two adjacent
// directions: a diagonal and an orthogonal one (for example north east and
// east).
//
// FOV implements the gob.GobDecoder and gob.GobEncoder interfaces for easy
// serialization.
type FOV struct {
	innerFOV
}

type fovNode struct {
	Idx  int // map number (for caching)
	Cost int // ray cost from source to this node
}

type innerFOV struct {
	LMap     []fovNode
	Idx      int         // light map number (for caching)
	Rg       rogrid.Range // range of valid positions
	Src      rogrid.Point // source of the last VisionMap call, used by Ray and From
	Lighted  []LightNode  // cache of nodes lit by the last VisionMap or LightMap call
	RayCache []LightNode

	SscMap   []fovNode      // symmetric shadow casting visited map
	SscIdx   int            // ssc map number (for caching)
	Visibles []rogrid.Point // positions lit by the last ssc call
}

// NewFOV returns new ready to use field of view with a given range of valid
// positions.
func NewFOV(rg rogrid.Range) *FOV {
	fov := &FOV{}
	fov.Rg = rg
	fov.LMap = make([]fovNode, fov.Rg.Size().X*fov.Rg.Size().Y)
	return fov
}

// SetRange updates the range used by the field of view. If the size is the
// same, cached structures will be preserved, otherwise they will be
// reinitialized.
func (fov *FOV) SetRange(rg rogrid.Range) {
	org := fov.Rg
	fov.Rg = rg
	max := rg.Size()
	omax := org.Size()
	if max == omax {
		return
	}
	*fov = FOV{}
	fov.Rg = rg
	fov.LMap = make([]fovNode, max.X*max.Y)
}

// Range returns the current FOV's range of positions.
func (fov *FOV) Range() rogrid.Range {
	return fov.Rg
}

// GobDecode implements gob.GobDecoder.
func (fov *FOV) GobDecode(bs []byte) error {
	r := bytes.NewReader(bs)
	gd := gob.NewDecoder(r)
	ifov := &innerFOV{}
	err := gd.Decode(ifov)
	if err != nil {
		return err
	}
	fov.innerFOV = *ifov
	return nil
}

// GobEncode implements gob.GobEncoder.
func (fov *FOV) GobEncode() ([]byte, error) {
	buf := bytes.Buffer{}
	ge := gob.NewEncoder(&buf)
	err := ge.Encode(&fov.innerFOV)
	return buf.Bytes(), err
}

// At returns the total ray cost at a given position from the last source given
// to VisionMap. It returns a false boolean if the position was out of reach
// (distance greater than the radius).
func (fov *FOV) At(p rogrid.Point) (int, bool) {
	if !p.In(fov.Rg) || fov.LMap == nil {
		return 0, false
	}
	node := fov.LMap[fov.idx(p)]
	if node.Idx != fov.Idx {
		return node.Cost, false
	}
	return node.Cost, true
}

func (fov *FOV) idx(p rogrid.Point) int {
	p = p.Sub(fov.Rg.Min)
	w := fov.Rg.Max.X - fov.Rg.Min.X
	return p.Y*w + p.X
}

// Iter iterates the whole map range on the nodes lighted in last VisionMap or
// LightMap. This may not be efficient if the FOV range is much larger than the
// lighted region.
func (fov *FOV) Iter(fn func(LightNode)) {
	for _, n := range fov.computeLighted() {
		fn(n)
	}
}

// computeLighted rebuilds and returns the cache of nodes lit in the last
// VisionMap or LightMap call, scanning the whole map range. Positions are
// relative to the FOV's range minimum, as with Iter.
func (fov *FOV) computeLighted() []LightNode {
	fov.Lighted = fov.Lighted[:0]
	w := fov.Rg.Size().X
	for i, n := range fov.LMap {
		if n.Idx == fov.Idx {
			fov.Lighted = append(fov.Lighted, LightNode{P: idxToPos(i, w), Cost: n.Cost})
		}
	}
	return fov.Lighted
}

func (fov *FOV) octantParents(ps []rogrid.Point, src, p rogrid.Point) []rogrid.Point {
	q := src.Sub(p)
	r := q
	if q.X != 0 {
		r.X /= abs(q.X)
	}
	if q.Y != 0 {
		r.Y /= abs(q.Y)
	}
	switch {
	case q.Y == 0:
		ps = append(ps, p.Add(rogrid.Point{r.X, 0}))
	case q.X == 0:
		ps = append(ps, p.Add(rogrid.Point{0, r.Y}))
	case abs(q.X) == abs(q.Y):
		ps = append(ps, p.Add(rogrid.Point{r.X, r.Y}))
	case abs(q.X) > abs(q.Y):
		ps = append(ps, p.Add(rogrid.Point{r.X, 0}), p.Add(rogrid.Point{r.X, r.Y}))
	default:
		ps = append(ps, p.Add(rogrid.Point{0, r.Y}), p.Add(rogrid.Point{r.X, r.Y}))
	}
	return ps
}

func (fov *FOV) bestParent(lt Lighter, src, p rogrid.Point) (rogrid.Point, int) {
	var psa [2]rogrid.Point
	ps := psa[:0]
	ps = fov.octantParents(ps, src, p)
	q := ps[0]
	if len(ps) > 1 && fov.LMap[fov.idx(ps[1])].Cost+lt.Cost(src, ps[1], p) < fov.LMap[fov.idx(q)].Cost+lt.Cost(src, q, p) {
		q = ps[1]
	}
	return q, fov.LMap[fov.idx(q)].Cost + lt.Cost(src, q, p)
}

// Lighter is the interface that captures the requirements for light ray
// propagation.
type Lighter interface {
	// Cost returns the cost of light propagation from a position to
	// an adjacent one given an original source. If you want the resulting
	// FOV to be symmetric, the function should generate symmetric costs
	// for rays in both directions.
	//
	// Note that the FOV algorithm takes care of only providing (from, to)
	// couples that may belong to a same light ray whose source is src,
	// independently of terrain.  This means that the Cost function should
	// essentially take care of terrain considerations, for example giving
	// a cost of 1 if from is a regular ground cell, and a maximal cost if
	// it is a wall, or something in between for fog, bushes or other
	// terrains.
	//
	// As a special case, you normally want Cost(src, src, to) == 1
	// independently of the terrain in src to guarantee symmetry, except
	// for diagonals in certain cases with 4-way movement, because two
	// walls could block vision (for example).
	Cost(src rogrid.Point, from rogrid.Point, to rogrid.Point) int

	// MaxCost returns the vision radius from src: VisionMap/LightMap scan
	// the square of positions within Chebyshev distance MaxCost of src.
	// Positions in that square are not filtered by their accumulated cost.
	MaxCost(src rogrid.Point) int
}

// VisionMap builds a field of vision map for a viewer at src, reaching up to
// lt.MaxCost(src). It returns the lit nodes; values can also be consulted
// individually with At.
func (fov *FOV) VisionMap(lt Lighter, src rogrid.Point) []LightNode {
	fov.Idx++
	if !src.In(fov.Rg) {
		return fov.computeLighted()
	}
	fov.Src = src
	fov.LMap[fov.idx(src)] = fovNode{Cost: 0, Idx: fov.Idx}
	radius := lt.MaxCost(src)
	for d := 1; d <= radius; d++ {
		for x := -d + src.X; x <= d+src.X; x++ {
			fov.visionUpdate(lt, src, rogrid.Point{x, src.Y + d})
			fov.visionUpdate(lt, src, rogrid.Point{x, src.Y - d})
		}
		for y := -d + 1 + src.Y; y <= d-1+src.Y; y++ {
			fov.visionUpdate(lt, src, rogrid.Point{src.X + d, y})
			fov.visionUpdate(lt, src, rogrid.Point{src.X - d, y})
		}
	}
	fov.checkIdx()
	return fov.computeLighted()
}

func (fov *FOV) visionUpdate(lt Lighter, src rogrid.Point, to rogrid.Point) {
	if !to.In(fov.Rg) {
		return
	}
	_, c := fov.bestParent(lt, src, to)
	fov.LMap[fov.idx(to)] = fovNode{Cost: c, Idx: fov.Idx}
}

// LightMap builds a lighting map with given light sources, each reaching up
// to lt.MaxCost(src). It returns the lit nodes; values can also be consulted
// individually with At.
func (fov *FOV) LightMap(lt Lighter, srcs []rogrid.Point) []LightNode {
	fov.Idx++
	for _, src := range srcs {
		if !src.In(fov.Rg) {
			continue
		}
		fov.LMap[fov.idx(src)] = fovNode{Cost: 0, Idx: fov.Idx}
		radius := lt.MaxCost(src)
		for d := 1; d <= radius; d++ {
			for x := -d + src.X; x <= d+src.X; x++ {
				fov.lightUpdate(lt, src, rogrid.Point{x, src.Y + d})
				fov.lightUpdate(lt, src, rogrid.Point{x, src.Y - d})
			}
			for y := -d + 1 + src.Y; y <= d-1+src.Y; y++ {
				fov.lightUpdate(lt, src, rogrid.Point{src.X + d, y})
				fov.lightUpdate(lt, src, rogrid.Point{src.X - d, y})
			}
		}
	}
	fov.checkIdx()
	return fov.computeLighted()
}

func (fov *FOV) lightUpdate(lt Lighter, src rogrid.Point, to rogrid.Point) {
	if !to.In(fov.Rg) {
		return
	}
	_, c := fov.bestParent(lt, src, to)
	oc, ok := fov.At(to)
	if ok && oc <= c {
		return
	}
	fov.LMap[fov.idx(to)] = fovNode{Cost: c, Idx: fov.Idx}
}

func (fov *FOV) checkIdx() {
	if fov.Idx < math.MaxInt32 {
		return
	}
	for i, n := range fov.LMap {
		idx := 0
		if n.Idx == fov.Idx {
			idx = 1
		}
		fov.LMap[i] = fovNode{Cost: n.Cost, Idx: idx}
	}
	fov.Idx = 1
}

// LightNode represents the information attached to a given position in a light
// map.
type LightNode struct {
	P    rogrid.Point // position in the light ray
	Cost int         // light cost
}

// Ray returns the light ray from the source of the last VisionMap call to
// to. If to is not within the max distance from that source, a nil slice is
// returned.
//
// The returned slice is cached for efficiency, so results will be invalidated
// by future calls.
func (fov *FOV) Ray(lt Lighter, to rogrid.Point) []LightNode {
	if _, ok := fov.At(to); !ok {
		return nil
	}
	from := fov.Src
	fov.RayCache = fov.RayCache[:0]
	var c int
	for to != from {
		oto := to
		to, c = fov.bestParent(lt, from, oto)
		fov.RayCache = append(fov.RayCache, LightNode{P: oto, Cost: c})
	}
	fov.RayCache = append(fov.RayCache, LightNode{P: from, Cost: 0})
	for i := range fov.RayCache[:len(fov.RayCache)/2] {
		fov.RayCache[i], fov.RayCache[len(fov.RayCache)-i-1] = fov.RayCache[len(fov.RayCache)-i-1], fov.RayCache[i]
	}
	return fov.RayCache
}

// From returns the previous position in the light ray towards to, as
// computed by the last VisionMap call, together with the accumulated cost
// at to via that position. It reports false if to was not reached, or is
// the source itself.
func (fov *FOV) From(lt Lighter, to rogrid.Point) (LightNode, bool) {
	if _, ok := fov.At(to); !ok {
		return LightNode{}, false
	}
	if to == fov.Src {
		return LightNode{}, false
	}
	q, c := fov.bestParent(lt, fov.Src, to)
	return LightNode{P: q, Cost: c}, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
