// Package ui defines common UI utilities for rogrid.
package ui

import (
	"time"

	"github.com/havfrost/rogrid"
)

// NewReplay returns a new Replay with a given configuration.
func NewReplay(cfg ReplayConfig) *Replay {
	rep := &Replay{
		gd:      cfg.Grid,
		decoder: cfg.FrameDecoder,
		auto:    true,
		speed:   1,
		undo:    [][]rogrid.FrameCell{},
		keys:    cfg.Keys,
	}
	if rep.keys.Quit == nil {
		rep.keys.Quit = []rogrid.Key{rogrid.KeyEscape, "Q", "q"}
	}
	if rep.keys.Pause == nil {
		rep.keys.Pause = []rogrid.Key{rogrid.KeySpace, "P", "p"}
	}
	if rep.keys.SpeedMore == nil {
		rep.keys.SpeedMore = []rogrid.Key{"+", ">"}
	}
	if rep.keys.SpeedLess == nil {
		rep.keys.SpeedLess = []rogrid.Key{"-", "<"}
	}
	if rep.keys.FrameNext == nil {
		rep.keys.FrameNext = []rogrid.Key{rogrid.KeyArrowRight, rogrid.KeyArrowDown, rogrid.KeyEnter, "j", "n", "f"}
	}
	if rep.keys.FramePrev == nil {
		rep.keys.FramePrev = []rogrid.Key{rogrid.KeyArrowLeft, rogrid.KeyArrowUp, rogrid.KeyBackspace, "k", "N", "b"}
	}
	return rep
}

// ReplayKeys contains key bindings configuration for the replay.
type ReplayKeys struct {
	Quit      []rogrid.Key // quit replay
	Pause     []rogrid.Key // pause replay
	SpeedMore []rogrid.Key // increase replay speed
	SpeedLess []rogrid.Key // decrease replay speed
	FrameNext []rogrid.Key // manually go to next frame
	FramePrev []rogrid.Key // manually go to previous frame
}

// ReplayConfig contains replay configuration.
type ReplayConfig struct {
	Grid         rogrid.Grid         // grid to use for drawing
	FrameDecoder rogrid.FrameDecoder // frame decoder
	Keys         ReplayKeys          // optional custom key bindings
}

// Replay represents an application's session with the given recorded frames.
// It implements the rogrid.Model interface.
type Replay struct {
	decoder rogrid.FrameDecoder
	frames  []rogrid.Frame
	gd      rogrid.Grid
	undo    [][]rogrid.FrameCell
	fidx    int // frame index
	auto    bool
	speed   time.Duration
	action  repAction
	init    bool // Update received MsgInit
	keys    ReplayKeys
}

type repAction int

const (
	replayNone repAction = iota
	replayNext
	replayPrevious
	replayTogglePause
	replayQuit
	replaySpeedMore
	replaySpeedLess
)

type msgTick int // frame number

func (rep *Replay) decodeNext() {
	if rep.fidx >= len(rep.frames)-1 {
		var frame rogrid.Frame
		if err := rep.decoder.Decode(&frame); err == nil {
			rep.frames = append(rep.frames, frame)
		}
	}
}

// Update implements Model.Update for Replay.
func (rep *Replay) Update(msg rogrid.Msg) rogrid.Effect {
	rep.action = replayNone
	switch msg := msg.(type) {
	case rogrid.MsgInit:
		rep.init = true
		return rep.tick()
	case rogrid.MsgKeyDown:
		key := msg.Key
		switch {
		case key.In(rep.keys.Quit):
			if rep.init {
				rep.action = replayQuit
			}
		case key.In(rep.keys.Pause):
			rep.action = replayTogglePause
		case key.In(rep.keys.SpeedMore):
			rep.action = replaySpeedMore
		case key.In(rep.keys.SpeedLess):
			rep.action = replaySpeedLess
		case key.In(rep.keys.FrameNext):
			rep.action = replayNext
			rep.auto = false
		case key.In(rep.keys.FramePrev):
			rep.action = replayPrevious
			rep.auto = false
		}
	case rogrid.MsgMouse:
		switch msg.Action {
		case rogrid.MouseMain:
			rep.action = replayTogglePause
		case rogrid.MouseAuxiliary:
			rep.action = replayNext
			rep.auto = false
		case rogrid.MouseSecondary:
			rep.action = replayPrevious
			rep.auto = false
		}
	case msgTick:
		if rep.auto && rep.fidx == int(msg) {
			rep.action = replayNext
		}
	}
	switch rep.action {
	case replayNext:
		rep.decodeNext()
		if rep.fidx >= len(rep.frames) {
			rep.action = replayNone
			break
		} else if rep.fidx < 0 {
			rep.fidx = 0
		}
		rep.fidx++
	case replayPrevious:
		if rep.fidx <= 1 {
			rep.action = replayNone
			break
		} else if rep.fidx >= len(rep.frames) {
			rep.fidx = len(rep.frames)
		}
		rep.fidx--
	case replayQuit:
		return rogrid.End()
	case replayTogglePause:
		rep.auto = !rep.auto
	case replaySpeedMore:
		rep.speed *= 2
		if rep.speed > 64 {
			rep.speed = 64
		}
	case replaySpeedLess:
		rep.speed /= 2
		if rep.speed < 1 {
			rep.speed = 1
		}
	}
	rep.draw()
	rep.decodeNext()
	if !rep.auto || rep.fidx > len(rep.frames)-1 || rep.fidx < 0 || rep.action == replayNone {
		return nil
	}
	return rep.tick()
}

// The grid state is actually the replay state so we draw the grid on Update
// instead of Draw.
func (rep *Replay) draw() {
	switch rep.action {
	case replayNext:
		frame := rep.frames[rep.fidx-1]
		rep.undo = append(rep.undo, []rogrid.FrameCell{})
		j := len(rep.undo) - 1
		for _, fc := range frame.Cells {
			c := rep.gd.At(fc.P)
			rep.undo[j] = append(rep.undo[j], rogrid.FrameCell{Cell: c, P: fc.P})
			rep.gd.Set(fc.P, fc.Cell)
		}
	case replayPrevious:
		fcells := rep.undo[len(rep.undo)-1]
		for _, fc := range fcells {
			rep.gd.Set(fc.P, fc.Cell)
		}
		rep.undo = rep.undo[:len(rep.undo)-1]
	}
}

// Draw implements Model.Draw for Replay.
func (rep *Replay) Draw() rogrid.Grid {
	return rep.gd
}

func (rep *Replay) tick() rogrid.Cmd {
	var d time.Duration
	if rep.fidx > 0 {
		d = rep.frames[rep.fidx].Time.Sub(rep.frames[rep.fidx-1].Time)
	} else {
		d = 0
	}
	if d >= 2*time.Second {
		d = 2 * time.Second
	}
	d = d / rep.speed
	mininterval := time.Second / 240
	if d <= mininterval {
		d = mininterval
	}
	n := rep.fidx
	return func() rogrid.Msg {
		t := time.NewTimer(d)
		<-t.C
		return msgTick(n)
	}
}
