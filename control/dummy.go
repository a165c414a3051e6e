package control

import (
	"math"

	"github.com/dshills/tessera/core"
	"github.com/dshills/tessera/event"
	"github.com/dshills/tessera/mouse"
)

// DummyControl paints nothing. It reports an effectively unbounded
// line count of empty lines, so it can fill leftover layout space.
type DummyControl struct{}

// Reset implements Control as a no-op.
func (DummyControl) Reset() {}

// PreferredWidth implements Control with no opinion.
func (DummyControl) PreferredWidth(ctx *Context, maxAvailableWidth int) (int, bool) {
	return 0, false
}

// PreferredHeight implements Control with no opinion.
func (DummyControl) PreferredHeight(ctx *Context, width, maxAvailableHeight int, wrapLines bool, prefix LinePrefixFunc) (int, bool) {
	return 0, false
}

// IsFocusable implements Control; a filler is never focusable.
func (DummyControl) IsFocusable() bool { return false }

// CreateContent implements Control.
func (DummyControl) CreateContent(ctx *Context, width, height int) *Content {
	return NewContent(math.MaxInt, func(lineno int) []core.Fragment {
		return nil
	})
}

// MouseHandler implements Control; never handled.
func (DummyControl) MouseHandler(ctx *Context, ev mouse.Event) bool { return false }

// MoveCursorDown implements Control as a no-op.
func (DummyControl) MoveCursorDown() {}

// MoveCursorUp implements Control as a no-op.
func (DummyControl) MoveCursorUp() {}

// KeyBindings implements Control.
func (DummyControl) KeyBindings() KeyBindings { return nil }

// InvalidateEvents implements Control.
func (DummyControl) InvalidateEvents() []*event.Signal { return nil }
