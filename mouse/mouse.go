// Package mouse defines the mouse events delivered to controls, plus an
// adapter from tcell's event representation. The display layer never
// reads the input stream itself; the host translates whatever its
// terminal backend produces into these events.
package mouse

import "time"

// Button identifies a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary button.
	ButtonLeft
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// String returns a human-readable button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Action is the kind of mouse event.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionDrag indicates movement with a button held.
	ActionDrag
	// ActionScrollUp indicates a wheel tick up.
	ActionScrollUp
	// ActionScrollDown indicates a wheel tick down.
	ActionScrollDown
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionDrag:
		return "drag"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	default:
		return "none"
	}
}

// IsScroll reports whether the action is a wheel event.
func (a Action) IsScroll() bool {
	return a == ActionScrollUp || a == ActionScrollDown
}

// Modifier is a bit set of keyboard modifiers held during the event.
type Modifier uint8

// Modifier flags.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// HasShift reports whether Shift was held.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasCtrl reports whether Control was held.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// Position is a cell coordinate relative to the control's content
// origin (not the screen origin; the host subtracts the window offset).
type Position struct {
	X int
	Y int
}

// Event is a single mouse input event.
type Event struct {
	Position  Position
	Button    Button
	Action    Action
	Modifiers Modifier

	// Time is when the event occurred. The host should fill this from
	// its clock so double-click detection works under test.
	Time time.Time
}
