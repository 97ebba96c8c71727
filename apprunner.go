package rogrid

import (
	"context"
	"io"
	"log"
)

// EventLoopDriver is implemented by back-ends that own the platform's main
// thread event loop (a native windowing toolkit, a browser's animation
// frame callback) and therefore cannot be driven by App.Start polling them
// in a loop. Instead, such a driver pushes input events into an AppRunner
// and pulls frames out of it whenever the platform asks it to redraw.
//
// drivers/tk bridges a similar event-loop-owned back-end (the Tcl/Tk
// interpreter) into the poll-based Driver shape instead, by running the
// interpreter's own event loop on a goroutine and forwarding messages
// through a channel; EventLoopDriver is for back-ends where that bridge
// isn't practical and the caller must drive the state machine directly.
type EventLoopDriver interface {
	// Run starts the platform event loop. The driver is expected to call
	// runner.Init once at startup, runner.HandleMsg for every input
	// event, runner.ProcessPendingMsgs between events to drain messages
	// produced by Sub effects, and runner.DrawFrame whenever the
	// platform requests a redraw, stopping once runner.ShouldQuit
	// reports true.
	Run(runner *AppRunner) error
}

// AppRunnerConfig contains the configuration options for creating a new
// AppRunner.
type AppRunnerConfig struct {
	Model  Model // application state
	Width  int   // initial screen width in cells
	Height int   // initial screen height in cells

	// FrameWriter is an optional io.Writer for recording frames, exactly
	// as in AppConfig.
	FrameWriter io.Writer

	// Logger is optional and is used to log non-fatal IO errors.
	Logger *log.Logger
}

// AppRunner holds the Model-Update-Draw state machine for use by an
// EventLoopDriver. Where App.Start owns both the polling loop and the
// dispatch loop, AppRunner only owns dispatch: the driver decides when to
// call in, which lets it share the platform's own main thread event loop
// instead of running its own goroutine.
type AppRunner struct {
	model  Model
	cells  []Cell // cache of last flushed cell contents, for frame diffing
	enc    *frameEncoder
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	msgs   chan Msg

	needsDraw bool
	exposed   bool // next DrawFrame should report every cell, as after a resize
}

// NewAppRunner creates a new AppRunner with the given configuration. Call
// Init before feeding it any other message.
func NewAppRunner(cfg AppRunnerConfig) *AppRunner {
	ctx, cancel := context.WithCancel(context.Background())
	ar := &AppRunner{
		model:  cfg.Model,
		logger: cfg.Logger,
		ctx:    ctx,
		cancel: cancel,
		msgs:   make(chan Msg, 16),
	}
	if cfg.FrameWriter != nil {
		ar.enc = newFrameEncoder(cfg.FrameWriter)
	}
	return ar
}

// Init sends the MsgInit message to the model. Call it once, before
// processing any other event.
func (ar *AppRunner) Init() {
	ar.HandleMsg(MsgInit{})
}

// HandleMsg pushes a message into the model, running any effect it
// produces. A Cmd effect runs synchronously and its message is fed back into
// the model before HandleMsg returns; a Sub effect runs on its own
// goroutine. It's what an EventLoopDriver calls for every input event it
// receives from the platform.
func (ar *AppRunner) HandleMsg(msg Msg) {
	ar.dispatch(msg)
}

// ProcessPendingMsgs drains messages produced by Sub effects since the last
// call, feeding each one back into the model. An EventLoopDriver should call
// this between platform events, since subscriptions run on their own
// goroutines and cannot call back into the model directly.
func (ar *AppRunner) ProcessPendingMsgs() {
	for {
		select {
		case msg := <-ar.msgs:
			ar.dispatch(msg)
		default:
			return
		}
	}
}

func (ar *AppRunner) dispatch(msg Msg) {
	if msg == nil || ar.ctx.Err() != nil {
		return
	}
	if _, ok := msg.(msgEnd); ok {
		ar.cancel()
		return
	}
	if batchedEffects, ok := msg.(msgBatch); ok {
		for _, eff := range batchedEffects {
			ar.runEffect(eff)
			if ar.ctx.Err() != nil {
				return
			}
		}
		return
	}
	if _, ok := msg.(MsgScreen); ok {
		ar.exposed = true
	}
	eff := ar.model.Update(msg)
	if eff != nil {
		ar.runEffect(eff)
	}
	ar.needsDraw = true
}

func (ar *AppRunner) runEffect(eff Effect) {
	switch eff := eff.(type) {
	case Cmd:
		if eff != nil {
			ar.dispatch(eff())
		}
	case Sub:
		if eff != nil {
			go eff(ar.ctx, ar.msgs)
		}
	}
}

// ShouldQuit reports whether the model has requested the application to
// stop, via the End effect.
func (ar *AppRunner) ShouldQuit() bool {
	return ar.ctx.Err() != nil
}

// DrawFrame computes a diff frame if the model changed since the last call,
// and reports whether there is anything to flush. The driver should call
// this whenever the platform requests a redraw.
func (ar *AppRunner) DrawFrame() (Frame, bool) {
	if !ar.needsDraw {
		return Frame{}, false
	}
	ar.needsDraw = false
	gd := ar.model.Draw()
	full := ar.exposed
	ar.exposed = false
	frame, cells := ComputeFrame(gd, ar.cells, full)
	ar.cells = cells
	if ar.enc != nil {
		if err := ar.enc.encode(frame); err != nil && ar.logger != nil {
			ar.logger.Printf("frame encoding: %v", err)
		}
	}
	if len(frame.Cells) == 0 {
		return frame, false
	}
	return frame, true
}

// Resize forces the next DrawFrame call to report every cell as changed.
// The driver should call it whenever the window is resized and the model
// has adjusted its grid accordingly, typically in response to sending a
// MsgScreen message through HandleMsg.
func (ar *AppRunner) Resize(width, height int) {
	ar.cells = nil
	ar.exposed = true
	ar.needsDraw = true
}

// Close finalizes frame recording, if any was configured. The driver should
// call it once, after its event loop returns.
func (ar *AppRunner) Close() error {
	if ar.enc == nil {
		return nil
	}
	return ar.enc.Close()
}
