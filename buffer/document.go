// Package buffer provides the editable text model the display layer
// renders: an immutable Document snapshot with coordinate conversions,
// and a mutable Buffer that owns cursor, selection, and invalidation
// signals.
//
// All offsets and columns are rune counts, not byte counts, so they
// line up with the per-character coordinate maps used by the
// transformation pipeline.
package buffer

import (
	"sort"
	"unicode"

	"github.com/dshills/tessera/search"
)

// SelectionType describes the shape of a selection.
type SelectionType int

const (
	// SelectCharacters selects a contiguous run of characters.
	SelectCharacters SelectionType = iota
	// SelectLines selects whole lines.
	SelectLines
	// SelectBlock selects a rectangular block. Rendering treats it like
	// a character selection; block editing lives in the host.
	SelectBlock
)

// SelectionState records an in-progress selection. The selection covers
// the span between OriginalCursor and the document's current cursor.
type SelectionState struct {
	OriginalCursor int
	Type           SelectionType
}

// Document is an immutable snapshot of buffer text and cursor state.
// Deriving documents (for search previews) never touches the buffer.
type Document struct {
	text      string
	cursor    int
	selection *SelectionState
	cursors   []int // secondary cursor offsets, for multi-cursor display

	// Lazily computed line index.
	lines      []string
	lineRunes  [][]rune
	lineStarts []int // rune offset of each line start
}

// NewDocument creates a document snapshot. The cursor is clamped to the
// text's rune length.
func NewDocument(text string, cursor int) *Document {
	d := &Document{text: text, cursor: cursor}
	d.index()
	if d.cursor < 0 {
		d.cursor = 0
	}
	if n := d.runeLen(); d.cursor > n {
		d.cursor = n
	}
	return d
}

// WithSelection returns a copy of the document carrying a selection.
func (d *Document) WithSelection(sel *SelectionState) *Document {
	out := *d
	out.selection = sel
	return &out
}

// WithCursors returns a copy carrying secondary cursor offsets.
func (d *Document) WithCursors(cursors []int) *Document {
	out := *d
	out.cursors = cursors
	return &out
}

func (d *Document) index() {
	if d.lineStarts != nil {
		return
	}
	d.lines = splitKeepEmpty(d.text)
	d.lineRunes = make([][]rune, len(d.lines))
	d.lineStarts = make([]int, len(d.lines))
	offset := 0
	for i, line := range d.lines {
		d.lineRunes[i] = []rune(line)
		d.lineStarts[i] = offset
		offset += len(d.lineRunes[i]) + 1 // +1 for the newline
	}
}

func splitKeepEmpty(text string) []string {
	lines := []string{}
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	return append(lines, text[start:])
}

func (d *Document) runeLen() int {
	last := len(d.lineStarts) - 1
	return d.lineStarts[last] + len(d.lineRunes[last])
}

// Text returns the full document text.
func (d *Document) Text() string { return d.text }

// CursorPosition returns the cursor's rune offset.
func (d *Document) CursorPosition() int { return d.cursor }

// Selection returns the document's selection state, or nil.
func (d *Document) Selection() *SelectionState { return d.selection }

// Cursors returns secondary cursor offsets (multi-cursor display).
func (d *Document) Cursors() []int { return d.cursors }

// LineCount returns the number of lines. An empty document has one.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the text of line i, or "" out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// Lines returns all lines.
func (d *Document) Lines() []string { return d.lines }

// TranslateIndexToPosition converts a rune offset into (row, col). The
// offset is clamped to the document.
func (d *Document) TranslateIndexToPosition(index int) (row, col int) {
	if index < 0 {
		index = 0
	}
	if n := d.runeLen(); index > n {
		index = n
	}
	row = sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > index
	}) - 1
	return row, index - d.lineStarts[row]
}

// TranslateRowColToIndex converts (row, col) into a rune offset. Both
// coordinates are clamped; col may point one past the last character of
// the line, the position a cursor occupies at end of line.
func (d *Document) TranslateRowColToIndex(row, col int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(d.lines) {
		row = len(d.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if n := len(d.lineRunes[row]); col > n {
		col = n
	}
	return d.lineStarts[row] + col
}

// CursorRow returns the cursor's line number.
func (d *Document) CursorRow() int {
	row, _ := d.TranslateIndexToPosition(d.cursor)
	return row
}

// CursorCol returns the cursor's column on its line.
func (d *Document) CursorCol() int {
	_, col := d.TranslateIndexToPosition(d.cursor)
	return col
}

// CursorUpOffset returns the relative cursor movement for going one
// line up, preserving the column where possible. Zero on the first line.
func (d *Document) CursorUpOffset() int {
	row, col := d.TranslateIndexToPosition(d.cursor)
	if row == 0 {
		return 0
	}
	return d.TranslateRowColToIndex(row-1, col) - d.cursor
}

// CursorDownOffset returns the relative cursor movement for going one
// line down. Zero on the last line.
func (d *Document) CursorDownOffset() int {
	row, col := d.TranslateIndexToPosition(d.cursor)
	if row >= len(d.lines)-1 {
		return 0
	}
	return d.TranslateRowColToIndex(row+1, col) - d.cursor
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordBoundaries returns the [start, end) rune offsets of the word
// under the cursor. When the cursor is not on a word rune, it returns
// the cursor position twice.
func (d *Document) WordBoundaries() (start, end int) {
	runes := []rune(d.text)
	pos := d.cursor
	if pos >= len(runes) || !isWordRune(runes[pos]) {
		// A cursor just past a word still selects it on double click.
		if pos > 0 && pos-1 < len(runes) && isWordRune(runes[pos-1]) {
			pos--
		} else {
			return d.cursor, d.cursor
		}
	}
	start, end = pos, pos+1
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return start, end
}

// SelectionRange returns the selected [from, to) rune offsets.
func (d *Document) SelectionRange() (from, to int, ok bool) {
	if d.selection == nil {
		return 0, 0, false
	}
	from, to = d.selection.OriginalCursor, d.cursor
	if from > to {
		from, to = to, from
	}
	if d.selection.Type == SelectLines {
		fr, _ := d.TranslateIndexToPosition(from)
		tr, _ := d.TranslateIndexToPosition(to)
		from = d.lineStarts[fr]
		to = d.lineStarts[tr] + len(d.lineRunes[tr])
	}
	return from, to, true
}

// SelectionRangeAtLine intersects the selection with line lineno and
// returns the covered [from, to) columns on that line.
func (d *Document) SelectionRangeAtLine(lineno int) (from, to int, ok bool) {
	selFrom, selTo, ok := d.SelectionRange()
	if !ok || lineno < 0 || lineno >= len(d.lines) {
		return 0, 0, false
	}
	lineFrom := d.lineStarts[lineno]
	lineTo := lineFrom + len(d.lineRunes[lineno])
	if selTo <= lineFrom || selFrom > lineTo {
		return 0, 0, false
	}
	from = max(selFrom, lineFrom) - lineFrom
	to = min(selTo, lineTo) - lineFrom
	return from, to, true
}

// FindMatch returns the rune offset of the next search match relative
// to the cursor, honoring direction and case folding. The search wraps
// around the document. ok is false when the text does not occur or the
// search text is empty.
func (d *Document) FindMatch(st *search.State) (offset int, ok bool) {
	if st == nil || st.Text == "" {
		return 0, false
	}
	text := []rune(d.text)
	needle := []rune(st.Text)
	if len(needle) > len(text) {
		return 0, false
	}

	equalAt := func(i int) bool {
		for j, r := range needle {
			c := text[i+j]
			if st.IgnoreCase {
				c = unicode.ToLower(c)
				r = unicode.ToLower(r)
			}
			if c != r {
				return false
			}
		}
		return true
	}

	var matches []int
	for i := 0; i+len(needle) <= len(text); i++ {
		if equalAt(i) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return 0, false
	}

	if st.Direction == search.Forward {
		for _, m := range matches {
			if m > d.cursor {
				return m, true
			}
		}
		return matches[0], true // wrap
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i] < d.cursor {
			return matches[i], true
		}
	}
	return matches[len(matches)-1], true // wrap
}
