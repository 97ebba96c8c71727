package rogrid

import "fmt"

// Point represents an (X,Y) position in a grid. The Y axis grows downward,
// following the usual grid/terminal convention.
type Point struct {
	X int
	Y int
}

// Add returns the vector sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector difference of p and q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p with both coordinates multiplied by k.
func (p Point) Mul(k int) Point {
	return Point{p.X * k, p.Y * k}
}

// Div returns p with both coordinates divided by k.
func (p Point) Div(k int) Point {
	return Point{p.X / k, p.Y / k}
}

// Shift returns a point shifted relatively by the given (x,y) distances.
func (p Point) Shift(x, y int) Point {
	return Point{p.X + x, p.Y + y}
}

// In reports whether p is within the given range.
func (p Point) In(rg Range) bool {
	return p.X >= rg.Min.X && p.Y >= rg.Min.Y && p.X < rg.Max.X && p.Y < rg.Max.Y
}

func (p Point) E() Point  { return Point{p.X + 1, p.Y} }
func (p Point) W() Point  { return Point{p.X - 1, p.Y} }
func (p Point) N() Point  { return Point{p.X, p.Y - 1} }
func (p Point) S() Point  { return Point{p.X, p.Y + 1} }
func (p Point) NE() Point { return Point{p.X + 1, p.Y - 1} }
func (p Point) NW() Point { return Point{p.X - 1, p.Y - 1} }
func (p Point) SE() Point { return Point{p.X + 1, p.Y + 1} }
func (p Point) SW() Point { return Point{p.X - 1, p.Y + 1} }

// Neighbors appends to nb the 8 adjacent positions for which keep returns
// true, and returns the resulting slice. It reuses the storage of nb.
func (p Point) Neighbors(nb []Point, keep func(Point) bool) []Point {
	neighbors := [8]Point{p.E(), p.W(), p.N(), p.S(), p.NE(), p.NW(), p.SE(), p.SW()}
	nb = nb[:0]
	for _, q := range neighbors {
		if keep(q) {
			nb = append(nb, q)
		}
	}
	return nb
}

// CardinalNeighbors is like Neighbors but restricted to the 4 cardinal
// directions.
func (p Point) CardinalNeighbors(nb []Point, keep func(Point) bool) []Point {
	neighbors := [4]Point{p.E(), p.W(), p.N(), p.S()}
	nb = nb[:0]
	for _, q := range neighbors {
		if keep(q) {
			nb = append(nb, q)
		}
	}
	return nb
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func mini(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func maxi(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Distance returns the Manhattan distance between p and q.
func (p Point) Distance(q Point) int {
	return abs(q.X-p.X) + abs(q.Y-p.Y)
}

// DistanceChebyshev returns the Chebyshev (king-move) distance between p and
// q.
func (p Point) DistanceChebyshev(q Point) int {
	dx := abs(q.X - p.X)
	dy := abs(q.Y - p.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Range represents a rectangular range of positions, from Min (included) to
// Max (excluded): it contains positions (X,Y) with Min.X <= X < Max.X and
// Min.Y <= Y < Max.Y.
type Range struct {
	Min, Max Point
}

// NewRange returns a new Range with given coordinates. The resulting range
// will have minimum and maximum coordinates reordered as necessary, so that
// it's always well-formed.
func NewRange(x0, y0, x1, y1 int) Range {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Range{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

// Size returns the (width, height) of the range, as a point.
func (rg Range) Size() Point {
	return Point{rg.Max.X - rg.Min.X, rg.Max.Y - rg.Min.Y}
}

// Empty reports whether the range contains no positions.
func (rg Range) Empty() bool {
	return rg.Min.X >= rg.Max.X || rg.Min.Y >= rg.Max.Y
}

// Sub returns a range of same size translated by -p.
func (rg Range) Sub(p Point) Range {
	return Range{Min: rg.Min.Sub(p), Max: rg.Max.Sub(p)}
}

// Origin returns the range shifted so that its minimum is the zero point,
// preserving its size.
func (rg Range) Origin() Range {
	return rg.Sub(rg.Min)
}

// Shift returns a range with coordinates shifted by the given amounts.
func (rg Range) Shift(x0, y0, x1, y1 int) Range {
	return NewRange(rg.Min.X+x0, rg.Min.Y+y0, rg.Max.X+x1, rg.Max.Y+y1)
}

// Line returns the sub-range made of the single row n of rg.
func (rg Range) Line(n int) Range {
	min := rg.Min
	min.Y += n
	max := rg.Max
	max.Y = min.Y + 1
	return Range{Min: min, Max: max}
}

// Lines returns the sub-range made of rows [a,b) of rg.
func (rg Range) Lines(a, b int) Range {
	min := rg.Min
	min.Y += a
	max := rg.Min
	max.X = rg.Max.X
	max.Y += b
	return Range{Min: min, Max: max}
}

// Column returns the sub-range made of the single column n of rg.
func (rg Range) Column(n int) Range {
	min := rg.Min
	min.X += n
	max := rg.Max
	max.X = min.X + 1
	return Range{Min: min, Max: max}
}

// Columns returns the sub-range made of columns [a,b) of rg.
func (rg Range) Columns(a, b int) Range {
	min := rg.Min
	min.X += a
	max := rg.Min
	max.Y = rg.Max.Y
	max.X += b
	return Range{Min: min, Max: max}
}

// Overlaps reports whether the two ranges share any position.
func (rg Range) Overlaps(other Range) bool {
	return !rg.Intersect(other).Empty()
}

// Intersect returns the intersection of the two ranges. It may be an empty
// range.
func (rg Range) Intersect(other Range) Range {
	if rg.Min.X < other.Min.X {
		rg.Min.X = other.Min.X
	}
	if rg.Min.Y < other.Min.Y {
		rg.Min.Y = other.Min.Y
	}
	if rg.Max.X > other.Max.X {
		rg.Max.X = other.Max.X
	}
	if rg.Max.Y > other.Max.Y {
		rg.Max.Y = other.Max.Y
	}
	if rg.Empty() {
		return Range{}
	}
	return rg
}

// Union returns the smallest range containing both ranges.
func (rg Range) Union(other Range) Range {
	if other.Empty() {
		return rg
	}
	if rg.Empty() {
		return other
	}
	return Range{
		Min: Point{mini(rg.Min.X, other.Min.X), mini(rg.Min.Y, other.Min.Y)},
		Max: Point{maxi(rg.Max.X, other.Max.X), maxi(rg.Max.Y, other.Max.Y)},
	}
}

// Iter calls fn for every position within the range, in row-major order.
func (rg Range) Iter(fn func(Point)) {
	for y := rg.Min.Y; y < rg.Max.Y; y++ {
		for x := rg.Min.X; x < rg.Max.X; x++ {
			fn(Point{x, y})
		}
	}
}

func (rg Range) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", rg.Min.X, rg.Min.Y, rg.Max.X, rg.Max.Y)
}
