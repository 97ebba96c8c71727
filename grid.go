package rogrid

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Grid represents the game grid that is used to draw to the screen. It is a
// slice type: a Grid value is a view, by reference, onto a rectangular range
// of an underlying shared cell buffer, so copying a Grid value is cheap and
// several grids can alias the same storage, the way e.g. a Go slice aliases
// its backing array.
//
// Grid iteration is more efficient line by line, as in the following
// pattern:
//
//	max := gd.Size()
//	for y := 0; y < max.Y; y++ {
//		for x := 0; x < max.X; x++ {
//			p := Point{X: x, Y: y}
//			// use p and gd
//		}
//	}
//
// Grid implements gob.GobEncoder and gob.GobDecoder for serialization.
type Grid struct {
	innerGrid
}

type innerGrid struct {
	Ug *gridBuffer // underlying shared cell storage
	rg Range        // range within the underlying buffer
}

// gobInnerGrid mirrors innerGrid with exported fields, so that gob's
// reflection-based encoding can be used without exporting rg itself.
type gobInnerGrid struct {
	Ug *gridBuffer
	Rg Range
}

type gridBuffer struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid returns a new grid with given width and height in cells, filled
// with space characters. Width and height should be positive or null.
func NewGrid(w, h int) Grid {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("negative dimensions: NewGrid(%d,%d)", w, h))
	}
	gd := Grid{}
	gd.Ug = &gridBuffer{Width: w, Height: h, Cells: make([]Cell, w*h)}
	gd.rg = NewRange(0, 0, w, h)
	gd.Fill(Cell{Rune: ' '})
	return gd
}

// GobDecode implements gob.GobDecoder.
func (gd *Grid) GobDecode(bs []byte) error {
	r := bytes.NewReader(bs)
	dec := gob.NewDecoder(r)
	gig := &gobInnerGrid{}
	if err := dec.Decode(gig); err != nil {
		return err
	}
	gd.innerGrid = innerGrid{Ug: gig.Ug, rg: gig.Rg}
	return nil
}

// GobEncode implements gob.GobEncoder.
func (gd *Grid) GobEncode() ([]byte, error) {
	buf := bytes.Buffer{}
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(&gobInnerGrid{Ug: gd.Ug, Rg: gd.rg})
	return buf.Bytes(), err
}

// Bounds returns the range that this grid occupies within the underlying
// shared buffer.
func (gd Grid) Bounds() Range {
	return gd.rg
}

// Range returns a zero-origin range with the same size as the grid. It's
// convenient for building Slice sub-ranges relative to the grid.
func (gd Grid) Range() Range {
	return gd.rg.Origin()
}

// Size returns the (width, height) of the grid in cells.
func (gd Grid) Size() Point {
	return gd.rg.Size()
}

// Slice returns the sub-grid corresponding to the given range, expressed
// relative to gd. The range is clipped to the available space. The returned
// grid shares storage with gd: writes to one are visible through the other.
func (gd Grid) Slice(rg Range) Grid {
	if rg.Min.X < 0 {
		rg.Min.X = 0
	}
	if rg.Min.Y < 0 {
		rg.Min.Y = 0
	}
	max := gd.rg.Size()
	if rg.Max.X > max.X {
		rg.Max.X = max.X
	}
	if rg.Max.Y > max.Y {
		rg.Max.Y = max.Y
	}
	if rg.Max.X < rg.Min.X {
		rg.Max.X = rg.Min.X
	}
	if rg.Max.Y < rg.Min.Y {
		rg.Max.Y = rg.Min.Y
	}
	min := gd.rg.Min
	rg.Min = rg.Min.Add(min)
	rg.Max = rg.Max.Add(min)
	return Grid{innerGrid{Ug: gd.Ug, rg: rg}}
}

// Contains reports whether the given position, relative to gd, is within the
// grid.
func (gd Grid) Contains(p Point) bool {
	return p.Add(gd.rg.Min).In(gd.rg)
}

func (gd Grid) getIdx(p Point) int {
	p = p.Add(gd.rg.Min)
	return p.Y*gd.Ug.Width + p.X
}

func idxToPos(i, w int) Point {
	return Point{X: i - (i/w)*w, Y: i / w}
}

// Set draws a cell at the given position, relative to gd. It's a no-op if
// the position is out of range.
func (gd Grid) Set(p Point, c Cell) {
	if !gd.Contains(p) {
		return
	}
	gd.Ug.Cells[gd.getIdx(p)] = c
}

// At returns the cell at the given position, relative to gd. It returns the
// zero Cell if the position is out of range.
func (gd Grid) At(p Point) Cell {
	if !gd.Contains(p) {
		return Cell{}
	}
	return gd.Ug.Cells[gd.getIdx(p)]
}

// Fill sets c as content for every position of the grid.
func (gd Grid) Fill(c Cell) {
	max := gd.Size()
	min := gd.rg.Min
	for y := 0; y < max.Y; y++ {
		idx := (min.Y+y)*gd.Ug.Width + min.X
		row := gd.Ug.Cells[idx : idx+max.X]
		for i := range row {
			row[i] = c
		}
	}
}

// String returns a non-styled rune rendering of the grid, one line per row,
// with no trailing newline. It implements fmt.Stringer.
func (gd Grid) String() string {
	max := gd.Size()
	buf := bytes.Buffer{}
	for y := 0; y < max.Y; y++ {
		if y > 0 {
			buf.WriteByte('\n')
		}
		for x := 0; x < max.X; x++ {
			buf.WriteRune(gd.At(Point{X: x, Y: y}).Rune)
		}
	}
	return buf.String()
}

// Iter calls fn for every position and cell of the grid, in row-major order.
func (gd Grid) Iter(fn func(Point, Cell)) {
	max := gd.Size()
	for y := 0; y < max.Y; y++ {
		for x := 0; x < max.X; x++ {
			p := Point{X: x, Y: y}
			fn(p, gd.At(p))
		}
	}
}

// Copy copies the cells from src into gd, starting both at their respective
// minimum position, and returns the size of the copied area, which is the
// minimum size of both grids in each dimension. Copy is safe to use with
// source and destination grids sharing the same underlying storage, even
// with overlapping ranges.
func (gd Grid) Copy(src Grid) Point {
	if gd.Ug != src.Ug {
		return gd.cp(src)
	}
	if gd.rg == src.rg {
		return gd.rg.Size()
	}
	if !gd.rg.Overlaps(src.rg) || gd.rg.Min.Y <= src.rg.Min.Y {
		return gd.cp(src)
	}
	return gd.cprev(src)
}

func (gd Grid) cp(src Grid) Point {
	rg := gd.rg
	rgsrc := src.rg
	max := gd.Range().Intersect(src.Range()).Size()
	for j := 0; j < max.Y; j++ {
		idx := (rg.Min.Y+j)*gd.Ug.Width + rg.Min.X
		idxsrc := (rgsrc.Min.Y+j)*src.Ug.Width + rgsrc.Min.X
		copy(gd.Ug.Cells[idx:idx+max.X], src.Ug.Cells[idxsrc:idxsrc+max.X])
	}
	return max
}

func (gd Grid) cprev(src Grid) Point {
	rg := gd.rg
	rgsrc := src.rg
	max := gd.Range().Intersect(src.Range()).Size()
	for j := max.Y - 1; j >= 0; j-- {
		idx := (rg.Min.Y+j)*gd.Ug.Width + rg.Min.X
		idxsrc := (rgsrc.Min.Y+j)*src.Ug.Width + rgsrc.Min.X
		copy(gd.Ug.Cells[idx:idx+max.X], src.Ug.Cells[idxsrc:idxsrc+max.X])
	}
	return max
}

// GridIterator is a stateful cursor for writing to a grid in row-major
// order. SetCell writes through Set, so every write is bounds-checked. It's used
// by widgets that stream content into a grid, such as StyledText.Draw.
type GridIterator struct {
	gd  Grid
	p   Point
	max Point
}

// Iterator returns a new iterator positioned before the first cell of gd.
func (gd Grid) Iterator() *GridIterator {
	return &GridIterator{gd: gd, p: Point{X: -1, Y: 0}, max: gd.Size()}
}

// Next advances the iterator to the next position in row-major order. It
// returns false once the grid has been exhausted.
func (it *GridIterator) Next() bool {
	it.p.X++
	if it.p.X >= it.max.X {
		it.p.X = 0
		it.p.Y++
	}
	return it.p.Y < it.max.Y
}

// P returns the iterator's current position, relative to the grid.
func (it *GridIterator) P() Point {
	return it.p
}

// SetP moves the iterator to the given position, relative to the grid. If p
// is out of range, the iterator becomes exhausted: Next will return false
// and P will no longer reflect p.
func (it *GridIterator) SetP(p Point) {
	if p.X < 0 || p.X >= it.max.X || p.Y < 0 || p.Y >= it.max.Y {
		it.p = Point{X: 0, Y: it.max.Y}
		return
	}
	it.p = p
}

// SetCell writes c at the iterator's current position. It's a no-op if the
// iterator is exhausted.
func (it *GridIterator) SetCell(c Cell) {
	if it.p.Y >= it.max.Y || it.p.Y < 0 {
		return
	}
	it.gd.Set(it.p, c)
}

// Cell returns the cell at the iterator's current position.
func (it *GridIterator) Cell() Cell {
	return it.gd.At(it.p)
}
