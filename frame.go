package rogrid

import "time"

// FrameCell represents a single cell change in a Frame.
type FrameCell struct {
	Cell Cell
	P    Point
}

// Frame represents a minimal set of cell changes produced by comparing two
// successive grid draws. It's what drivers consume to update the screen, and
// what gets serialized by the frame recording codec.
type Frame struct {
	Cells  []FrameCell // cells that changed since the previous frame
	Time   time.Time   // time of frame computation, used for replay pacing
	Width  int         // grid width when the frame was produced
	Height int         // grid height when the frame was produced
}

// ComputeFrame compares gd against the cells cached in prev (which must have
// the same dimensions as gd, or be empty to force a full redraw), and
// returns the minimal Frame of changed cells along with the updated cache.
// If nothing changed, the returned Frame has a nil Cells slice.
func ComputeFrame(gd Grid, prev []Cell, full bool) (Frame, []Cell) {
	max := gd.Size()
	n := max.X * max.Y
	if len(prev) != n {
		prev = make([]Cell, n)
		full = true
	}
	frame := Frame{Time: timeNow(), Width: max.X, Height: max.Y}
	i := 0
	for y := 0; y < max.Y; y++ {
		for x := 0; x < max.X; x++ {
			p := Point{X: x, Y: y}
			c := gd.At(p)
			if !full && c == prev[i] {
				i++
				continue
			}
			frame.Cells = append(frame.Cells, FrameCell{Cell: c, P: p})
			prev[i] = c
			i++
		}
	}
	return frame, prev
}

// timeNow is a thin wrapper so that the rest of the package never calls
// time.Now directly, keeping frame timestamping in one place.
func timeNow() time.Time {
	return time.Now()
}
