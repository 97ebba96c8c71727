package rogrid

import "time"

// Msg represents an action and triggers the Update function of a Model.
// Note that key and mouse events implement this interface, among others.
type Msg interface{}

// Key identifies a key, as reported in a MsgKeyDown message. For runes, it
// simply contains the string representation of the rune.
type Key string

const (
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowUp    Key = "ArrowUp"
	KeyBackspace  Key = "Backspace"
	KeyDelete     Key = "Delete"
	KeyEnd        Key = "End"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
	KeyHome       Key = "Home"
	KeyInsert     Key = "Insert"
	KeyPageDown   Key = "PageDown"
	KeyPageUp     Key = "PageUp"
	KeySpace      Key = " "
	KeyTab        Key = "Tab"
)

// In reports whether the key is one of the given keys.
func (k Key) In(keys []Key) bool {
	for _, key := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// IsRune reports whether the key represents a single printable rune, as
// opposed to a named key such as KeyEscape or KeyArrowDown.
func (k Key) IsRune() bool {
	switch k {
	case KeyArrowDown, KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyBackspace,
		KeyDelete, KeyEnd, KeyEnter, KeyEscape, KeyHome, KeyInsert,
		KeyPageDown, KeyPageUp, KeyTab:
		return false
	}
	return len([]rune(string(k))) == 1
}

// ModMask represents a bitmask of keyboard modifiers. Support varies across
// drivers and platforms, so models should not rely on it exclusively.
type ModMask int

const ModNone ModMask = 0

const (
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

func (mod ModMask) String() string {
	if mod == ModNone {
		return "None"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "+"
		}
		s += name
	}
	if mod&ModCtrl != 0 {
		add("Ctrl")
	}
	if mod&ModAlt != 0 {
		add("Alt")
	}
	if mod&ModMeta != 0 {
		add("Meta")
	}
	if mod&ModShift != 0 {
		add("Shift")
	}
	return s
}

// MsgKeyDown represents a key press.
type MsgKeyDown struct {
	Key  Key       // key identifier
	Mod  ModMask   // active modifiers, if reported by the driver
	Time time.Time // time when the event was generated
}

// MouseAction describes a kind of mouse event.
type MouseAction int

const (
	MouseMain       MouseAction = iota // left button press
	MouseAuxiliary                     // middle button press
	MouseSecondary                     // right button press
	MouseWheelUp                       // wheel scrolled up
	MouseWheelDown                     // wheel scrolled down
	MouseMove                          // motion, with or without a button held
	MouseRelease                       // button released
)

// MsgMouse represents a mouse event: a click, a release, a motion or a
// wheel scroll.
type MsgMouse struct {
	P      Point       // mouse position in the grid
	Action MouseAction // kind of mouse event
	Mod    ModMask     // active modifiers, if reported by the driver
	Time   time.Time   // time when the event was generated
}

// MsgScreen is reported when the screen is resized, or when it needs to be
// redrawn in full, for example because it was previously hidden.
type MsgScreen struct {
	Width  int
	Height int
	Time   time.Time
}

// MsgInit is always the first message sent to a Model's Update function by
// the App runtime.
type MsgInit struct{}

// MsgQuit is reported by drivers that can detect a request to quit the
// application coming from outside the normal message flow, such as closing
// the SDL or Tk window. The underlying value is the time
// the event was generated: use MsgQuit(time.Now()) to build one.
type MsgQuit time.Time

// msgEnd is sent to terminate the application main loop. It's produced by
// the End effect.
type msgEnd struct{}

// msgBatch bundles several effects to be run together. It's produced by the
// Batch effect constructor.
type msgBatch []Effect

// RelMsg returns a copy of msg with any embedded grid position shifted to be
// relative to rg.Min. Only position-carrying messages (currently MsgMouse)
// are affected; other messages are returned unchanged. This is convenient
// for widgets that receive messages in the coordinates of a parent grid but
// want to reason about their own local coordinates.
func (rg Range) RelMsg(msg Msg) Msg {
	switch m := msg.(type) {
	case MsgMouse:
		m.P = m.P.Sub(rg.Min)
		return m
	default:
		return msg
	}
}
