package ui

import (
	"fmt"

	"github.com/havfrost/rogrid"
)

// PagerConfig describes configuration options for creating a pager.
type PagerConfig struct {
	Grid  rogrid.Grid   // grid slice where the viewable content is drawn
	Lines []StyledText // content lines to be read
	Box   *Box         // draw optional box around the pager
	Keys  PagerKeys    // optional custom key bindings for the pager
	Style PagerStyle
}

// PagerStyle describes styling options for a Pager.
type PagerStyle struct {
	LineNum rogrid.Style // line num display style (for boxed pager)
}

// PagerKeys contains key bindings configuration for the pager.
type PagerKeys struct {
	Down         []rogrid.Key // go one line down (default: ArrowDown, j)
	Up           []rogrid.Key // go one line up (default: ArrowUp, k)
	Left         []rogrid.Key // go left (default: ArrowLeft, h)
	Right        []rogrid.Key // go right (default: ArrowRight, l)
	Start        []rogrid.Key // go to start of line (default: 0, ^)
	PageDown     []rogrid.Key // go one page down (default: PageDown, f)
	PageUp       []rogrid.Key // go one page up (default: PageUp, b)
	HalfPageDown []rogrid.Key // go half page down (default: Enter, d)
	HalfPageUp   []rogrid.Key // go half page up (default: Backspace, u)
	Top          []rogrid.Key // go to the top (default: Home, g)
	Bottom       []rogrid.Key // go to the bottom (default: End, G)
	Quit         []rogrid.Key // quit pager (default: Escape, q, Q)
}

// Pager represents a pager widget for viewing a long list of lines.
//
// Pager implements rogrid.Model and can be used as main model of an
// application.
type Pager struct {
	grid   rogrid.Grid
	box    *Box
	lines  []StyledText
	style  PagerStyle
	index  int // current index
	x      int // x position
	action PagerAction
	init   bool // Update received MsgInit
	keys   PagerKeys
	dirty  bool       // state changed in Update and Draw was still not called
	drawn  rogrid.Grid // last drawn grid slice
}

// PagerAction represents an user action with the pager.
type PagerAction int

const (
	// PagerPass reports that the pager state did not change (for example a
	// mouse motion outside the menu, or within a same entry line).
	PagerPass PagerAction = iota

	// PagerMove reports a scrolling movement.
	PagerMove

	// PagerQuit reports that the user clicked outside the pager, or pressed
	// one of the Quit keys (by default Escape, q or Q).
	PagerQuit
)

// NewPager returns a new pager with given configuration options.
func NewPager(cfg PagerConfig) *Pager {
	pg := &Pager{
		grid:  cfg.Grid,
		box:   cfg.Box,
		lines: cfg.Lines,
		style: cfg.Style,
		keys:  cfg.Keys,
	}
	if pg.keys.Down == nil {
		pg.keys.Down = []rogrid.Key{rogrid.KeyArrowDown, "j"}
	}
	if pg.keys.Up == nil {
		pg.keys.Up = []rogrid.Key{rogrid.KeyArrowUp, "k"}
	}
	if pg.keys.PageDown == nil {
		pg.keys.PageDown = []rogrid.Key{rogrid.KeyPageDown, "f"}
	}
	if pg.keys.PageUp == nil {
		pg.keys.PageUp = []rogrid.Key{rogrid.KeyPageUp, "b"}
	}
	if pg.keys.Left == nil {
		pg.keys.Left = []rogrid.Key{rogrid.KeyArrowLeft, "h"}
	}
	if pg.keys.Right == nil {
		pg.keys.Right = []rogrid.Key{rogrid.KeyArrowRight, "l"}
	}
	if pg.keys.Start == nil {
		pg.keys.Start = []rogrid.Key{"^", "0"}
	}
	if pg.keys.HalfPageDown == nil {
		pg.keys.HalfPageDown = []rogrid.Key{rogrid.KeyEnter, "d"}
	}
	if pg.keys.HalfPageUp == nil {
		pg.keys.HalfPageUp = []rogrid.Key{rogrid.KeyBackspace, "u"}
	}
	if pg.keys.Top == nil {
		pg.keys.Top = []rogrid.Key{rogrid.KeyHome, "g"}
	}
	if pg.keys.Bottom == nil {
		pg.keys.Bottom = []rogrid.Key{rogrid.KeyEnd, "G"}
	}
	if pg.keys.Quit == nil {
		pg.keys.Quit = []rogrid.Key{rogrid.KeyEscape, "q", "Q"}
	}
	pg.dirty = true
	return pg
}

// SetBox updates the pager surrounding box.
func (pg *Pager) SetBox(b *Box) {
	pg.box = b
	pg.dirty = true
}

// SetLines updates the pager text lines.
func (pg *Pager) SetLines(lines []StyledText) {
	nlines := pg.nlines()
	pg.lines = lines
	if pg.index+nlines-1 >= len(pg.lines) {
		pg.index = len(pg.lines) - nlines
		if pg.index <= 0 {
			pg.index = 0
		}
	}
	pg.dirty = true
}

func (pg *Pager) nlines() int {
	nlines := pg.grid.Size().Y
	if pg.box != nil {
		nlines -= 2
	}
	return nlines
}

// View returns a range (Min, Max) such that the currently displayed lines are
// the lines whose index is between Min.Y and Max.Y, and the displayed text
// columns are the ones between Min.X and Max.X.
func (pg *Pager) View() rogrid.Range {
	size := pg.grid.Size()
	h := size.Y
	bh := 0
	if pg.box != nil {
		bh = 2
	}
	if h > bh+len(pg.lines) {
		h = bh + len(pg.lines)
	}
	if h-bh <= 0 {
		return rogrid.Range{}
	}
	return rogrid.NewRange(pg.x, pg.index, pg.x+size.X, pg.index+h-bh)
}

func (pg *Pager) down(shift int) {
	nlines := pg.nlines()
	if pg.index+nlines+shift-1 >= len(pg.lines) {
		shift = len(pg.lines) - pg.index - nlines
	}
	if shift > 0 {
		pg.action = PagerMove
		pg.index += shift
	}
}

func (pg *Pager) up(shift int) {
	if pg.index-shift < 0 {
		shift = pg.index
	}
	if shift > 0 {
		pg.action = PagerMove
		pg.index -= shift
	}
}

func (pg *Pager) right() {
	pg.action = PagerMove
	pg.x += 8
}

func (pg *Pager) left() {
	if pg.x > 0 {
		pg.action = PagerMove
		pg.x -= 8
		if pg.x <= 0 {
			pg.x = 0
		}
	}
}

func (pg *Pager) lineStart() {
	if pg.x > 0 {
		pg.action = PagerMove
		pg.x = 0
	}
}

func (pg *Pager) top() {
	if pg.index != 0 {
		pg.index = 0
		pg.action = PagerMove
	}
}

func (pg *Pager) bottom() {
	nlines := pg.nlines()
	if pg.index != len(pg.lines)-nlines {
		pg.index = len(pg.lines) - nlines
		pg.action = PagerMove
	}
}

// Update implements rogrid.Model.Update for Pager. It considers mouse message
// coordinates to be absolute in its grid. If a rogrid.MsgInit is passed to
// Update, the pager will behave as if it is the main model of an application,
// and send a rogrid.End() command on PagerQuit action.
func (pg *Pager) Update(msg rogrid.Msg) rogrid.Effect {
	pg.action = PagerPass
	var eff rogrid.Effect
	switch msg := msg.(type) {
	case rogrid.MsgInit:
		pg.init = true
	case rogrid.MsgKeyDown:
		eff = pg.updateMsgKeyDown(msg)
	case rogrid.MsgMouse:
		eff = pg.updateMsgMouse(msg)
	}
	if pg.Action() != PagerPass {
		pg.dirty = true
	}
	return eff
}

func (pg *Pager) updateMsgKeyDown(msg rogrid.MsgKeyDown) rogrid.Effect {
	key := msg.Key
	switch {
	case key.In(pg.keys.Down):
		pg.down(1)
	case key.In(pg.keys.Up):
		pg.up(1)
	case key.In(pg.keys.Left):
		pg.left()
	case key.In(pg.keys.Right):
		pg.right()
	case key.In(pg.keys.Start):
		pg.lineStart()
	case key.In(pg.keys.PageDown), key.In(pg.keys.HalfPageDown):
		shift := pg.nlines() - 1
		if key.In(pg.keys.HalfPageDown) {
			shift /= 2
		}
		pg.down(shift)
	case key.In(pg.keys.PageUp), key.In(pg.keys.HalfPageUp):
		shift := pg.nlines() - 1
		if key.In(pg.keys.HalfPageUp) {
			shift /= 2
		}
		pg.up(shift)
	case key.In(pg.keys.Top):
		pg.top()
	case key.In(pg.keys.Bottom):
		pg.bottom()
	case key.In(pg.keys.Quit):
		pg.action = PagerQuit
		if pg.init {
			return rogrid.End()
		}
	}
	return nil
}

func (pg *Pager) updateMsgMouse(msg rogrid.MsgMouse) rogrid.Effect {
	nlines := pg.grid.Size().Y
	if pg.box != nil {
		nlines -= 2
	}
	if !msg.P.In(pg.grid.Bounds()) {
		switch msg.Action {
		case rogrid.MouseMain:
			pg.action = PagerQuit
		}
		return nil
	}
	switch msg.Action {
	case rogrid.MouseMain:
		if msg.P.Sub(pg.grid.Bounds().Min).Y > nlines/2 {
			pg.down(nlines - 1)
		} else {
			pg.up(nlines - 1)
		}
	case rogrid.MouseWheelUp:
		pg.up(1)
	case rogrid.MouseWheelDown:
		pg.down(1)
	}
	return nil
}

// Action returns the last action performed with the pager.
func (pg *Pager) Action() PagerAction {
	return pg.action
}

// Draw implements rogrid.Model.Draw for Pager. It returns the grid slice that
// was drawn, or the whole grid if it is used as main model.
func (pg *Pager) Draw() rogrid.Grid {
	if !pg.dirty {
		if pg.init {
			return pg.drawn.Slice(rogrid.Range{})
		}
		return pg.drawn
	}
	grid := pg.grid
	max := grid.Size()
	w, h := max.X, max.Y
	bh := 0
	if pg.box != nil {
		bh = 2
	}
	if h > bh+len(pg.lines) {
		h = bh + len(pg.lines)
		grid = grid.Slice(rogrid.NewRange(0, 0, w, h))
	}
	if pg.init {
		pg.grid.Fill(rogrid.Cell{Rune: ' '})
	}
	cgrid := grid
	if pg.box != nil {
		pg.box.Draw(grid)
		rg := grid.Range()
		line := grid.Slice(rg.Line(h-1).Shift(2, 0, -2, 0))
		var lnumtext string
		if pg.x > 0 {
			lnumtext = fmt.Sprintf("%d-%d/%d+%d", pg.index, pg.index+h-bh-1, len(pg.lines)-1, pg.x)
		} else {
			lnumtext = fmt.Sprintf("%d-%d/%d", pg.index, pg.index+h-bh-1, len(pg.lines)-1)
		}
		NewStyledText(lnumtext, pg.style.LineNum).Draw(line)
		cgrid = grid.Slice(rg.Shift(1, 1, -1, -1))
	}
	rg := cgrid.Range()
	for i := 0; i < h-bh; i++ {
		line := cgrid.Slice(rg.Line(i))
		stt := pg.lines[i+pg.index]
		line.Fill(rogrid.Cell{Rune: ' ', Style: stt.Style()})
		stt.Iter(func(p rogrid.Point, c rogrid.Cell) {
			p = p.Shift(-pg.x, 0)
			if p.X >= 0 {
				line.Set(p, c)
			}
		})
	}
	pg.dirty = false
	pg.drawn = grid
	if pg.init {
		pg.drawn = pg.grid
	}
	return pg.drawn
}
