package control

import (
	"fmt"

	"github.com/dshills/tessera/core"
)

// MaxLineHeight is the sentinel returned when a line cannot be wrapped
// into the available width: zero width, or a continuation prefix wider
// than the window. Transient zero-width layouts occur during resize,
// so this degrades instead of failing.
const MaxLineHeight = 100_000_000

// Content is one renderable frame produced by a control: a lazily
// evaluated, line-addressable view plus cursor and menu coordinates.
// It is read-only to consumers and discarded at the end of the render
// pass; only the producing control may cache whole Content values.
type Content struct {
	// LineCount is the number of addressable lines. Controls that fill
	// unbounded space report a very large count.
	LineCount int

	// Cursor is the cursor position in display coordinates.
	Cursor core.Point

	// Menu is the popup-menu anchor, nil when no menu applies.
	Menu *core.Point

	// ShowCursor makes the cursor visible.
	ShowCursor bool

	getLine func(lineno int) []core.Fragment

	// Per-line height cache. The key substitutes the render generation
	// for the prefix function, relying on the contract that content
	// and prefix logic do not change within one generation.
	heights map[heightKey]int
}

type heightKey struct {
	generation uint64
	lineno     int
	width      int
}

// NewContent creates a content frame over a line lookup function.
func NewContent(lineCount int, getLine func(lineno int) []core.Fragment) *Content {
	return &Content{
		LineCount:  lineCount,
		ShowCursor: true,
		getLine:    getLine,
	}
}

// Line returns the fragments of line lineno. Requesting a line outside
// [0, LineCount) is a programming error and panics; callers check
// LineCount first.
func (c *Content) Line(lineno int) []core.Fragment {
	if lineno < 0 || lineno >= c.LineCount {
		panic(fmt.Sprintf("content: line %d out of range [0,%d)", lineno, c.LineCount))
	}
	return c.getLine(lineno)
}

// HeightForLine returns how many terminal rows line lineno occupies
// when wrapped at width, accounting for a per-row prefix that consumes
// columns and may differ between the first row and continuation rows.
// Results are cached per (generation, lineno, width) and deterministic
// within one generation.
func (c *Content) HeightForLine(generation uint64, lineno, width int, prefix LinePrefixFunc) int {
	key := heightKey{generation: generation, lineno: lineno, width: width}
	if h, ok := c.heights[key]; ok {
		return h
	}

	height := c.computeHeight(lineno, width, prefix)

	if c.heights == nil {
		c.heights = make(map[heightKey]int)
	}
	c.heights[key] = height
	return height
}

func (c *Content) computeHeight(lineno, width int, prefix LinePrefixFunc) int {
	if width == 0 {
		return MaxLineHeight
	}

	textWidth := core.StringWidth(core.Text(c.Line(lineno)))
	if prefix != nil {
		textWidth += core.FragmentsWidth(prefix(width, lineno, false))
	}

	// Wrap until the remainder fits, re-adding the continuation prefix
	// on every wrapped row. The prefix must be recomputed per row: its
	// width can vary (growing line numbers, markers).
	height := 1
	for textWidth > width {
		height++
		textWidth -= width

		if prefix != nil {
			prefixWidth := core.FragmentsWidth(prefix(width, lineno, true))
			if prefixWidth > width {
				// The prefix alone can never fit.
				return MaxLineHeight
			}
			textWidth += prefixWidth
		}
	}

	return height
}

// HeightForText returns the rows a plain string occupies when wrapped
// at width: ceiling division of its display width, minimum 1. A zero
// width yields MaxLineHeight, never an error.
func HeightForText(text string, width int) int {
	if width == 0 {
		return MaxLineHeight
	}
	lineWidth := core.StringWidth(text)
	height := lineWidth / width
	if lineWidth%width != 0 {
		height++
	}
	return max(1, height)
}
