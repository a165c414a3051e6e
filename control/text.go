package control

import (
	"strings"

	"github.com/dshills/tessera/cache"
	"github.com/dshills/tessera/core"
	"github.com/dshills/tessera/event"
	"github.com/dshills/tessera/mouse"
)

const (
	// Only the current generation's fragment list is worth keeping.
	textFragmentCacheSize = 1

	// Content is requested several times per render pass (dimension
	// probes plus the final draw); a small bounded cache covers them.
	textContentCacheSize = 18
)

// TextFunc produces the fragments of a TextControl on demand, once per
// render generation.
type TextFunc func() []core.Fragment

// TextControl displays static formatted text: toolbars, menus, labels.
// Fragments may carry click handlers, and the zero-width marker tags
// core.SetCursorPosition / core.SetMenuPosition pin the cursor or menu
// to a position inside the text.
type TextControl struct {
	// Text producer; exactly one of text/textFunc is used.
	text     []core.Fragment
	textFunc TextFunc

	style       string
	focusable   bool
	showCursor  bool
	modal       bool
	cursorPos   func() (core.Point, bool)
	keyBindings KeyBindings

	fragmentCache *cache.Cache[uint64, []core.Fragment]
	contentCache  *cache.Cache[textContentKey, *Content]

	// Last rendered fragments, kept for mouse dispatch. Cleared by
	// Reset.
	fragments []core.Fragment
}

type textContentKey struct {
	generation uint64
	width      int
	cursor     core.Point
	hasCursor  bool
}

// TextControlConfig configures a TextControl.
type TextControlConfig struct {
	// Style is prepended to every fragment's tags.
	Style string

	// Focusable makes the control focusable.
	Focusable bool

	// ShowCursor shows the cursor when focused.
	ShowCursor bool

	// Modal controls should exclusively own cursor and keyboard while
	// shown (menus, dialogs).
	Modal bool

	// GetCursorPosition, if set, overrides marker-tag scanning.
	GetCursorPosition func() (core.Point, bool)

	// KeyBindings are control-specific bindings, or nil.
	KeyBindings KeyBindings
}

// NewTextControl creates a control over a fixed fragment list.
func NewTextControl(text []core.Fragment, cfg TextControlConfig) *TextControl {
	c := newTextControl(cfg)
	c.text = text
	return c
}

// NewTextControlFunc creates a control whose text is produced per
// render generation.
func NewTextControlFunc(fn TextFunc, cfg TextControlConfig) *TextControl {
	c := newTextControl(cfg)
	c.textFunc = fn
	return c
}

// NewLabel creates an unfocusable control over plain text.
func NewLabel(text string) *TextControl {
	return NewTextControl([]core.Fragment{{Text: text}}, TextControlConfig{ShowCursor: true})
}

func newTextControl(cfg TextControlConfig) *TextControl {
	return &TextControl{
		style:         cfg.Style,
		focusable:     cfg.Focusable,
		showCursor:    cfg.ShowCursor,
		modal:         cfg.Modal,
		cursorPos:     cfg.GetCursorPosition,
		keyBindings:   cfg.KeyBindings,
		fragmentCache: cache.New[uint64, []core.Fragment](textFragmentCacheSize),
		contentCache:  cache.New[textContentKey, *Content](textContentCacheSize),
	}
}

// SetText replaces the fixed fragment list.
func (c *TextControl) SetText(text []core.Fragment) {
	c.text = text
	c.fragmentCache.Clear()
	c.contentCache.Clear()
}

// Reset implements Control.
func (c *TextControl) Reset() {
	c.fragments = nil
}

// IsFocusable implements Control.
func (c *TextControl) IsFocusable() bool { return c.focusable }

// IsModal reports whether the control should exclusively own cursor
// and keyboard while shown.
func (c *TextControl) IsModal() bool { return c.modal }

// KeyBindings implements Control.
func (c *TextControl) KeyBindings() KeyBindings { return c.keyBindings }

// InvalidateEvents implements Control. Static text has none.
func (c *TextControl) InvalidateEvents() []*event.Signal { return nil }

// MoveCursorDown implements Control as a no-op.
func (c *TextControl) MoveCursorDown() {}

// MoveCursorUp implements Control as a no-op.
func (c *TextControl) MoveCursorUp() {}

// formattedText retrieves the fragments once per render generation;
// the same list serves dimension probes and the final draw.
func (c *TextControl) formattedText(ctx *Context) []core.Fragment {
	return c.fragmentCache.Get(ctx.generation(), func() []core.Fragment {
		source := c.text
		if c.textFunc != nil {
			source = c.textFunc()
		}
		if c.style == "" {
			return source
		}
		styled := make([]core.Fragment, len(source))
		for i, f := range source {
			styled[i] = f.WithStyle(c.style)
		}
		return styled
	})
}

// PreferredWidth implements Control: the display width of the longest
// unwrapped line.
func (c *TextControl) PreferredWidth(ctx *Context, maxAvailableWidth int) (int, bool) {
	text := core.Text(c.formattedText(ctx))
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		widest = max(widest, core.StringWidth(line))
	}
	return widest, true
}

// PreferredHeight implements Control: the number of produced lines at
// the given width.
func (c *TextControl) PreferredHeight(ctx *Context, width, maxAvailableHeight int, wrapLines bool, prefix LinePrefixFunc) (int, bool) {
	content := c.CreateContent(ctx, width, Unconstrained)
	return content.LineCount, true
}

// CreateContent implements Control.
func (c *TextControl) CreateContent(ctx *Context, width, height int) *Content {
	fragments := c.formattedText(ctx)
	lines := core.SplitLines(fragments)

	// Remember the handler-bearing fragments for mouse dispatch.
	c.fragments = fragments

	// Strip handlers from what reaches the painter.
	plainLines := make([][]core.Fragment, len(lines))
	for i, line := range lines {
		plain := make([]core.Fragment, len(line))
		for j, f := range line {
			plain[j] = core.Fragment{Style: f.Style, Text: f.Text}
		}
		plainLines[i] = plain
	}

	cursor, hasCursor := c.resolveCursor(plainLines)

	key := textContentKey{
		generation: ctx.generation(),
		width:      width,
		cursor:     cursor,
		hasCursor:  hasCursor,
	}

	return c.contentCache.Get(key, func() *Content {
		content := NewContent(len(plainLines), func(lineno int) []core.Fragment {
			return plainLines[lineno]
		})
		content.ShowCursor = c.showCursor
		if hasCursor {
			content.Cursor = cursor
		}
		if menu, ok := scanMarker(plainLines, core.SetMenuPosition); ok {
			content.Menu = &menu
		}
		return content
	})
}

func (c *TextControl) resolveCursor(lines [][]core.Fragment) (core.Point, bool) {
	if c.cursorPos != nil {
		return c.cursorPos()
	}
	return scanMarker(lines, core.SetCursorPosition)
}

// scanMarker finds the (column, row) where a zero-width marker tag
// first occurs in the split fragment stream.
func scanMarker(lines [][]core.Fragment, marker string) (core.Point, bool) {
	for y, line := range lines {
		x := 0
		for _, f := range line {
			if strings.Contains(f.Style, marker) {
				return core.Point{X: x, Y: y}, true
			}
			x += len([]rune(f.Text))
		}
	}
	return core.Point{}, false
}

// MouseHandler implements Control. A click on a handler-bearing
// fragment invokes that handler and propagates its result verbatim;
// anything else is not handled.
func (c *TextControl) MouseHandler(ctx *Context, ev mouse.Event) bool {
	if c.fragments == nil {
		return false
	}

	lines := core.SplitLines(c.fragments)
	if ev.Position.Y < 0 || ev.Position.Y >= len(lines) {
		return false
	}

	// Walk the line accumulating text length until the click column is
	// reached; the fragment under it may carry a handler.
	count := 0
	for _, f := range lines[ev.Position.Y] {
		count += len([]rune(f.Text))
		if count > ev.Position.X {
			if f.Handler != nil {
				return f.Handler(ev)
			}
			break
		}
	}

	return false
}
