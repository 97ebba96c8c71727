// This file implements a symmetric shadow casting line of sight algorithm.

package rl

import "github.com/havfrost/rogrid"

// SSCVisionMap computes field of vision from src using symmetric shadow
// casting, up to maxDepth. Unlike VisionMap, visibility is binary: passable
// reports whether vision passes through a position, and diags controls whether
// diagonal adjacency is considered when revealing cells at wall boundaries.
// The returned slice is owned by fov and is overwritten by the next call.
func (fov *FOV) SSCVisionMap(src rogrid.Point, maxDepth int, passable func(rogrid.Point) bool, diags bool) []rogrid.Point {
	fov.initSsc()
	fov.SscIdx++
	fov.Visibles = fov.Visibles[:0]
	if !src.In(fov.Rg) {
		return fov.Visibles
	}
	fov.sscInternal(src, maxDepth, passable, diags)
	return fov.Visibles
}

// SSCLightMap is the multi-source variant of SSCVisionMap.
func (fov *FOV) SSCLightMap(srcs []rogrid.Point, maxDepth int, passable func(rogrid.Point) bool, diags bool) []rogrid.Point {
	fov.initSsc()
	fov.SscIdx++
	fov.Visibles = fov.Visibles[:0]
	for _, src := range srcs {
		if src.In(fov.Rg) {
			fov.sscInternal(src, maxDepth, passable, diags)
		}
	}
	return fov.Visibles
}

// RetainCircular post-filters the visibility results of the last
// SSCVisionMap or SSCLightMap call to a Euclidean-distance circle centered
// on center with the given radius, clipping the default square (Chebyshev)
// boundary.
func (fov *FOV) RetainCircular(center rogrid.Point, radius int) {
	rsq := radius * radius
	kept := fov.Visibles[:0]
	for _, p := range fov.Visibles {
		dx := p.X - center.X
		dy := p.Y - center.Y
		if dx*dx+dy*dy <= rsq {
			kept = append(kept, p)
		} else if p.In(fov.Rg) {
			fov.SscMap[fov.sscIdx(p)].Idx = 0 // unmark: 0 never matches a live SscIdx
		}
	}
	fov.Visibles = kept
}

// Visible reports whether p was lit by the last SSCVisionMap or
// SSCLightMap call.
func (fov *FOV) Visible(p rogrid.Point) bool {
	if !p.In(fov.Rg) || fov.SscMap == nil {
		return false
	}
	return fov.SscMap[fov.sscIdx(p)].Idx == fov.SscIdx
}

// IterSSC iterates fn over the positions lit by the last SSCVisionMap or
// SSCLightMap call.
func (fov *FOV) IterSSC(fn func(rogrid.Point)) {
	for _, p := range fov.Visibles {
		fn(p)
	}
}

func (fov *FOV) initSsc() {
	if fov.SscMap == nil {
		max := fov.Rg.Size()
		fov.SscMap = make([]fovNode, max.X*max.Y)
	}
}

func (fov *FOV) sscIdx(p rogrid.Point) int {
	p = p.Sub(fov.Rg.Min)
	w := fov.Rg.Max.X - fov.Rg.Min.X
	return p.Y*w + p.X
}

func (fov *FOV) sscInternal(src rogrid.Point, maxDepth int, passable func(rogrid.Point) bool, diags bool) {
	fov.reveal(quadrant{dir: 0, p: src}, rogrid.Point{X: 0, Y: 0})
	for dir := 0; dir < 4; dir++ {
		fov.sscQuadrant(src, maxDepth, quadDir(dir), passable, diags)
	}
}

func (fov *FOV) reveal(qt quadrant, tile rogrid.Point) {
	p := qt.transform(tile)
	idx := fov.sscIdx(p)
	if fov.SscMap[idx].Idx != fov.SscIdx {
		fov.SscMap[idx].Idx = fov.SscIdx
		fov.Visibles = append(fov.Visibles, p)
	}
}

func (fov *FOV) sscQuadrant(src rogrid.Point, maxDepth int, dir quadDir, passable func(rogrid.Point) bool, diags bool) {
	qt := quadrant{dir: dir, p: src}
	colmin, colmax := qt.maxCols(fov.Rg)
	dmax := qt.maxDepth(fov.Rg)
	if dmax > maxDepth {
		dmax = maxDepth
	}
	if dmax <= 0 {
		return
	}

	unreachable := maxDepth + 1
	rows := []sscRow{{depth: 1, slopeStart: rogrid.Point{X: -1, Y: 1}, slopeEnd: rogrid.Point{X: 1, Y: 1}}}

	for len(rows) > 0 {
		r := rows[len(rows)-1]
		rows = rows[:len(rows)-1]
		ptile := rogrid.Point{X: unreachable, Y: 0}
		tiles := r.tiles(colmin, colmax)
		for _, tile := range tiles {
			wall := !passable(qt.transform(tile))
			if (wall || r.isSymmetric(tile)) &&
				(diags ||
					(tile.X <= 1 && tile.Y == 0) ||
					(tile.X > 1 && passable(qt.transform(tile.Shift(-1, 0)))) ||
					(tile.Y >= 0 && passable(qt.transform(tile.Shift(0, -1)))) ||
					(tile.Y <= 0 && passable(qt.transform(tile.Shift(0, 1))))) {
				fov.reveal(qt, tile)
			}
			if ptile.X == unreachable {
				ptile = tile
				continue
			}
			pwall := !passable(qt.transform(ptile))
			if pwall && !wall {
				switch {
				case !diags && tile.X < dmax && !passable(qt.transform(tile.Shift(1, 0))):
					r.slopeStart = slopeSquare(tile.Shift(1, 0))
				case !diags && tile.X > 1 && !passable(qt.transform(tile.Shift(-1, 0))):
					r.slopeStart = slopeDiamond(tile.Shift(-1, 1))
				default:
					r.slopeStart = slopeDiamond(tile)
				}
			}
			if !pwall && wall {
				nr := r.next()
				switch {
				case !diags && tile.X < dmax && !passable(qt.transform(tile.Shift(1, 0))):
					nr.slopeEnd = slopeSquare(tile.Shift(1, 0))
				case !diags && ptile.X > 1 && !passable(qt.transform(ptile.Shift(-1, 0))):
					nr.slopeEnd = slopeDiamond(ptile.Shift(-1, 0))
				default:
					nr.slopeEnd = slopeDiamond(tile)
				}
				if nr.depth <= dmax {
					rows = append(rows, nr)
				}
			}
			ptile = tile
		}
		if ptile.X == unreachable {
			continue
		}
		if passable(qt.transform(ptile)) && r.depth < dmax {
			rows = append(rows, r.next())
		}
	}
}

// quadDir identifies one of the four quadrants a SSC scan fans out into:
// north, east, south or west of the source.
type quadDir int

// quadrant maps the local (depth, column) tile coordinates of a SSC scan
// back to absolute grid positions, given a direction and an origin.
type quadrant struct {
	dir quadDir
	p   rogrid.Point
}

func (qt quadrant) transform(tile rogrid.Point) rogrid.Point {
	switch qt.dir {
	case 0:
		return rogrid.Point{X: qt.p.X + tile.Y, Y: qt.p.Y - tile.X}
	case 1:
		return rogrid.Point{X: qt.p.X + tile.X, Y: qt.p.Y + tile.Y}
	case 2:
		return rogrid.Point{X: qt.p.X + tile.Y, Y: qt.p.Y + tile.X}
	default:
		return rogrid.Point{X: qt.p.X - tile.X, Y: qt.p.Y + tile.Y}
	}
}

func (qt quadrant) maxCols(rg rogrid.Range) (int, int) {
	switch qt.dir {
	case 0, 2:
		dx := qt.p.X - rg.Min.X
		dy := rg.Max.X - qt.p.X - 1
		return -dx, dy
	default:
		dx := qt.p.Y - rg.Min.Y
		dy := rg.Max.Y - qt.p.Y - 1
		return -dx, dy
	}
}

func (qt quadrant) maxDepth(rg rogrid.Range) int {
	switch qt.dir {
	case 0:
		return qt.p.Y - rg.Min.Y
	case 1:
		return rg.Max.X - qt.p.X - 1
	case 2:
		return rg.Max.Y - qt.p.Y - 1
	default:
		return qt.p.X - rg.Min.X
	}
}

// sscRow is one depth-row of a SSC quadrant scan, bounded by a fractional
// start and end slope (represented as num/den points to stay in exact
// integer arithmetic).
type sscRow struct {
	depth      int
	slopeStart rogrid.Point
	slopeEnd   rogrid.Point
}

func (r sscRow) tiles(colmin, colmax int) []rogrid.Point {
	depth := r.depth

	n := depth * r.slopeStart.X
	d := r.slopeStart.Y
	min := n / d
	rem := n % d
	switch sign(rem) {
	case 1:
		if 2*rem >= d {
			min++
		}
	case -1:
		if -2*rem > d {
			min--
		}
	}

	n = depth * r.slopeEnd.X
	d = r.slopeEnd.Y
	max := n / d
	rem = n % d
	switch sign(rem) {
	case 1:
		if 2*rem > d {
			max++
		}
	case -1:
		if -2*rem >= d {
			max--
		}
	}

	if min < colmin {
		min = colmin
	}
	if max > colmax {
		max = colmax
	}
	if min > max {
		return nil
	}
	ts := make([]rogrid.Point, 0, max-min+1)
	for col := min; col <= max; col++ {
		ts = append(ts, rogrid.Point{X: depth, Y: col})
	}
	return ts
}

func (r sscRow) next() sscRow {
	return sscRow{depth: r.depth + 1, slopeStart: r.slopeStart, slopeEnd: r.slopeEnd}
}

func (r sscRow) isSymmetric(tile rogrid.Point) bool {
	col := tile.Y
	return col*r.slopeStart.Y >= r.depth*r.slopeStart.X && col*r.slopeEnd.Y <= r.depth*r.slopeEnd.X
}

func slopeDiamond(tile rogrid.Point) rogrid.Point {
	return rogrid.Point{X: 2*tile.Y - 1, Y: 2 * tile.X}
}

func slopeSquare(tile rogrid.Point) rogrid.Point {
	return rogrid.Point{X: 2*tile.Y - 1, Y: 2*tile.X + 1}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
