package rogrid

import (
	"bytes"
	"testing"
	"time"
)

type runnerModel struct {
	gd    Grid
	inits int
	pings int
	quit  bool
}

type pingMsg int

func (rm *runnerModel) Update(msg Msg) Effect {
	switch msg := msg.(type) {
	case MsgInit:
		rm.inits++
		return Cmd(func() Msg { return pingMsg(1) })
	case pingMsg:
		rm.pings++
	case MsgKeyDown:
		if msg.Key == KeyEscape {
			rm.quit = true
			return End()
		}
	}
	return nil
}

func (rm *runnerModel) Draw() Grid {
	if rm.quit {
		return rm.gd.Slice(Range{})
	}
	rm.gd.Fill(Cell{Rune: rune('0' + rm.pings)})
	return rm.gd
}

func TestAppRunner(t *testing.T) {
	framebuf := &bytes.Buffer{}
	m := &runnerModel{gd: NewGrid(8, 4)}
	ar := NewAppRunner(AppRunnerConfig{Model: m, Width: 8, Height: 4, FrameWriter: framebuf})

	ar.Init()
	if m.inits != 1 {
		t.Errorf("bad init count: %d", m.inits)
	}

	// the Cmd effect from MsgInit runs synchronously inside Init, so the
	// ping is normally handled already; draining pending messages is harmless
	deadline := time.Now().Add(time.Second)
	for m.pings == 0 && time.Now().Before(deadline) {
		ar.ProcessPendingMsgs()
	}
	if m.pings != 1 {
		t.Errorf("bad ping count: %d", m.pings)
	}

	frame, ok := ar.DrawFrame()
	if !ok {
		t.Error("expected a frame to flush after Init")
	}
	if len(frame.Cells) != 8*4 {
		t.Errorf("bad frame.Cells length: %d", len(frame.Cells))
	}

	if _, ok := ar.DrawFrame(); ok {
		t.Error("DrawFrame should report nothing to flush without a new dispatch")
	}

	ar.Resize(8, 4)
	frame, ok = ar.DrawFrame()
	if !ok || len(frame.Cells) != 8*4 {
		t.Errorf("Resize should force a full frame, got %d cells, ok=%v", len(frame.Cells), ok)
	}

	if ar.ShouldQuit() {
		t.Error("should not quit yet")
	}
	ar.HandleMsg(MsgKeyDown{Key: KeyEscape})
	if !ar.ShouldQuit() {
		t.Error("should quit after End effect")
	}

	if err := ar.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	dec, err := NewFrameDecoder(framebuf)
	if err != nil {
		t.Fatalf("frame decoding: %v", err)
	}
	count := 0
	fr := Frame{}
	for dec.Decode(&fr) == nil {
		count++
	}
	if count != 2 {
		t.Errorf("bad recorded frame count: %d", count)
	}
}

func TestAppRunnerNoDrawBeforeDispatch(t *testing.T) {
	m := &runnerModel{gd: NewGrid(4, 4)}
	ar := NewAppRunner(AppRunnerConfig{Model: m})
	if _, ok := ar.DrawFrame(); ok {
		t.Error("DrawFrame should have nothing to flush before any message is handled")
	}
}
