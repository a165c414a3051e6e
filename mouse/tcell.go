package mouse

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellAdapter converts tcell mouse events into Events. tcell reports
// the current button mask on every event, so press/release/drag have to
// be recovered by diffing against the previous mask. One adapter
// instance must see every mouse event of its screen, in order.
type TcellAdapter struct {
	last tcell.ButtonMask
}

// Translate converts a tcell mouse event. The second return value is
// false when the event carries nothing of interest (pure motion with no
// button held).
func (a *TcellAdapter) Translate(ev *tcell.EventMouse) (Event, bool) {
	x, y := ev.Position()
	out := Event{
		Position:  Position{X: x, Y: y},
		Modifiers: translateModifiers(ev.Modifiers()),
		Time:      ev.When(),
	}
	if out.Time.IsZero() {
		out.Time = time.Now()
	}

	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		out.Action = ActionScrollUp
		return out, true
	case buttons&tcell.WheelDown != 0:
		out.Action = ActionScrollDown
		return out, true
	}

	pressed := buttons &^ a.last
	released := a.last &^ buttons
	held := buttons & a.last
	a.last = buttons

	switch {
	case pressed != 0:
		out.Action = ActionPress
		out.Button = translateButton(pressed)
	case released != 0:
		out.Action = ActionRelease
		out.Button = translateButton(released)
	case held != 0:
		out.Action = ActionDrag
		out.Button = translateButton(held)
	default:
		return Event{}, false
	}

	return out, true
}

func translateButton(mask tcell.ButtonMask) Button {
	switch {
	case mask&tcell.Button1 != 0:
		return ButtonLeft
	case mask&tcell.Button2 != 0:
		// tcell's Button2 is the secondary (right) button.
		return ButtonRight
	case mask&tcell.Button3 != 0:
		return ButtonMiddle
	}
	return ButtonNone
}

func translateModifiers(mod tcell.ModMask) Modifier {
	var m Modifier
	if mod&tcell.ModShift != 0 {
		m |= ModShift
	}
	if mod&tcell.ModCtrl != 0 {
		m |= ModCtrl
	}
	if mod&tcell.ModAlt != 0 {
		m |= ModAlt
	}
	if mod&tcell.ModMeta != 0 {
		m |= ModMeta
	}
	return m
}
