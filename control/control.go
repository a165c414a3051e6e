// Package control implements the display-layer controls: it converts
// model objects (an editable buffer, static formatted text) into
// Content, a line-addressable render artifact, and maps mouse events
// back to text offsets through the transformation pipeline's inverse
// coordinate maps.
//
// Rendering is single-threaded and cooperative: the host calls into a
// control synchronously during one render pass and bumps the render
// generation exactly once per frame. Every cache in this package keys
// on that generation or on content identity, never on wall time.
package control

import (
	"github.com/dshills/tessera/core"
	"github.com/dshills/tessera/event"
	"github.com/dshills/tessera/mouse"
)

// Unconstrained is passed as the height to CreateContent when the
// content should be computed as if vertical space were unlimited.
const Unconstrained = -1

// KeyBindings is an opaque key-binding table supplied by the host. The
// display layer transports it between control and host; resolution and
// dispatch happen elsewhere.
type KeyBindings interface{}

// LinePrefixFunc returns the fragments inserted before a line: the
// first visual row when continuation is false, wrapped continuation
// rows when true. Line-number gutters and quote markers live here; the
// prefix may differ in width per line and per row.
type LinePrefixFunc func(width, lineno int, continuation bool) []core.Fragment

// Context carries the host state a render pass needs. The host owns
// all of it; controls only read, except for focus requests. This
// replaces ambient application lookups so that every call site is
// explicit and testable.
type Context struct {
	// Generation is the host's render counter, bumped once per frame.
	// It scopes every per-frame cache.
	Generation uint64

	// Focused is the control currently holding input focus.
	Focused Control

	// SearchTarget is the control an active search field is searching,
	// when a search is in progress.
	SearchTarget Control

	// RequestFocus, if set, lets a control claim focus (focus-on-click).
	RequestFocus func(Control)
}

// IsFocused reports whether c currently holds focus.
func (ctx *Context) IsFocused(c Control) bool {
	return ctx != nil && ctx.Focused == c
}

func (ctx *Context) focus(c Control) {
	if ctx == nil {
		return
	}
	if ctx.RequestFocus != nil {
		ctx.RequestFocus(c)
	}
	ctx.Focused = c
}

func (ctx *Context) generation() uint64 {
	if ctx == nil {
		return 0
	}
	return ctx.Generation
}

// Control is the capability every display control implements. The host
// layout engine talks to controls exclusively through this interface;
// the screen painter consumes only the Content they produce.
type Control interface {
	// Reset clears per-render transient state (recorded clickable
	// fragments and the like). A no-op is valid.
	Reset()

	// PreferredWidth returns the control's preferred width, or false
	// to mean "no opinion, fill the available space".
	PreferredWidth(ctx *Context, maxAvailableWidth int) (int, bool)

	// PreferredHeight returns the preferred height at the given width,
	// or false for no opinion.
	PreferredHeight(ctx *Context, width, maxAvailableHeight int, wrapLines bool, prefix LinePrefixFunc) (int, bool)

	// IsFocusable reports whether the control can take input focus.
	IsFocusable() bool

	// CreateContent renders the control at the given size. Pass
	// Unconstrained as height to render as if unbounded.
	CreateContent(ctx *Context, width, height int) *Content

	// MouseHandler handles a mouse event. False means not handled;
	// the host then applies its default behavior (scrolling, focus).
	MouseHandler(ctx *Context, ev mouse.Event) bool

	// MoveCursorDown is a best-effort hint used when scrolling while
	// the cursor is pinned at the top edge.
	MoveCursorDown()

	// MoveCursorUp is the upward counterpart of MoveCursorDown.
	MoveCursorUp()

	// KeyBindings returns control-specific bindings, or nil.
	KeyBindings() KeyBindings

	// InvalidateEvents returns the signals the host should subscribe
	// to in order to know when this control needs re-rendering.
	InvalidateEvents() []*event.Signal
}
