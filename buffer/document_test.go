package buffer

import (
	"testing"

	"github.com/dshills/tessera/search"
)

func TestDocumentLineIndex(t *testing.T) {
	d := NewDocument("one\ntwo\nthree", 0)

	if d.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", d.LineCount())
	}
	if d.Line(1) != "two" {
		t.Errorf("expected %q, got %q", "two", d.Line(1))
	}
	if d.Line(99) != "" {
		t.Errorf("expected empty string out of range, got %q", d.Line(99))
	}
}

func TestDocumentEmptyHasOneLine(t *testing.T) {
	d := NewDocument("", 0)
	if d.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", d.LineCount())
	}
}

func TestDocumentTrailingNewline(t *testing.T) {
	d := NewDocument("a\n", 0)
	if d.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", d.LineCount())
	}
	if d.Line(1) != "" {
		t.Errorf("expected empty last line, got %q", d.Line(1))
	}
}

func TestDocumentCursorClamped(t *testing.T) {
	d := NewDocument("abc", 99)
	if d.CursorPosition() != 3 {
		t.Errorf("expected cursor clamped to 3, got %d", d.CursorPosition())
	}
	d = NewDocument("abc", -5)
	if d.CursorPosition() != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", d.CursorPosition())
	}
}

func TestTranslateIndexToPosition(t *testing.T) {
	d := NewDocument("ab\ncd", 0)

	tests := []struct {
		index    int
		row, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 0, 2}, // end of first line
		{3, 1, 0}, // first char of second line
		{5, 1, 2}, // end of document
		{99, 1, 2},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		row, col := d.TranslateIndexToPosition(tt.index)
		if row != tt.row || col != tt.col {
			t.Errorf("index %d: expected (%d, %d), got (%d, %d)", tt.index, tt.row, tt.col, row, col)
		}
	}
}

func TestTranslateRowColToIndex(t *testing.T) {
	d := NewDocument("ab\ncd", 0)

	tests := []struct {
		row, col int
		index    int
	}{
		{0, 0, 0},
		{0, 2, 2},  // col may equal line length
		{0, 99, 2}, // clamped to line length
		{1, 1, 4},
		{99, 0, 3}, // row clamped to last line
		{-1, -1, 0},
	}
	for _, tt := range tests {
		if got := d.TranslateRowColToIndex(tt.row, tt.col); got != tt.index {
			t.Errorf("(%d, %d): expected index %d, got %d", tt.row, tt.col, tt.index, got)
		}
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	d := NewDocument("hello\nwörld\n\nlast", 0)
	for i := 0; i <= len([]rune(d.Text())); i++ {
		row, col := d.TranslateIndexToPosition(i)
		if got := d.TranslateRowColToIndex(row, col); got != i {
			t.Errorf("offset %d: round trip gave %d via (%d, %d)", i, got, row, col)
		}
	}
}

func TestCursorUpDownOffsets(t *testing.T) {
	// Cursor on "cd" line, column 1.
	d := NewDocument("ab\ncd\nef", 4)

	if got := d.CursorUpOffset(); got != -3 {
		t.Errorf("expected up offset -3, got %d", got)
	}
	if got := d.CursorDownOffset(); got != 3 {
		t.Errorf("expected down offset 3, got %d", got)
	}

	// Short line above clamps the column.
	d = NewDocument("a\nlong", 5) // cursor at col 3 of "long"
	if got := d.CursorUpOffset(); got != -4 {
		t.Errorf("expected up offset -4 onto short line, got %d", got)
	}

	// First line cannot go up, last cannot go down.
	d = NewDocument("only", 2)
	if got := d.CursorUpOffset(); got != 0 {
		t.Errorf("expected 0 on first line, got %d", got)
	}
	if got := d.CursorDownOffset(); got != 0 {
		t.Errorf("expected 0 on last line, got %d", got)
	}
}

func TestWordBoundaries(t *testing.T) {
	tests := []struct {
		text       string
		cursor     int
		start, end int
	}{
		{"foo bar", 5, 4, 7},  // inside "bar"
		{"foo bar", 0, 0, 3},  // start of "foo"
		{"foo bar", 3, 0, 3},  // just past "foo" still selects it
		{"foo bar", 7, 4, 7},  // end of text after a word
		{"foo  bar", 4, 4, 4}, // on whitespace, no word
		{"a_b c", 1, 0, 3},    // underscore is a word rune
	}
	for _, tt := range tests {
		d := NewDocument(tt.text, tt.cursor)
		start, end := d.WordBoundaries()
		if start != tt.start || end != tt.end {
			t.Errorf("%q cursor %d: expected [%d, %d), got [%d, %d)",
				tt.text, tt.cursor, tt.start, tt.end, start, end)
		}
	}
}

func TestSelectionRange(t *testing.T) {
	d := NewDocument("hello world", 8).
		WithSelection(&SelectionState{OriginalCursor: 2, Type: SelectCharacters})

	from, to, ok := d.SelectionRange()
	if !ok || from != 2 || to != 8 {
		t.Errorf("expected [2, 8), got [%d, %d) ok=%v", from, to, ok)
	}

	// Reversed anchors normalize.
	d = NewDocument("hello world", 2).
		WithSelection(&SelectionState{OriginalCursor: 8, Type: SelectCharacters})
	from, to, _ = d.SelectionRange()
	if from != 2 || to != 8 {
		t.Errorf("expected normalized [2, 8), got [%d, %d)", from, to)
	}

	if _, _, ok := NewDocument("x", 0).SelectionRange(); ok {
		t.Error("expected no selection range without selection")
	}
}

func TestSelectionRangeLines(t *testing.T) {
	// Selection from middle of line 0 to middle of line 1 expands to
	// both whole lines.
	d := NewDocument("abc\ndef\nghi", 5).
		WithSelection(&SelectionState{OriginalCursor: 1, Type: SelectLines})

	from, to, ok := d.SelectionRange()
	if !ok || from != 0 || to != 7 {
		t.Errorf("expected [0, 7), got [%d, %d) ok=%v", from, to, ok)
	}
}

func TestSelectionRangeAtLine(t *testing.T) {
	// Cursor on line 2, col 1.
	d := NewDocument("abc\ndef\nghi", 9).
		WithSelection(&SelectionState{OriginalCursor: 2, Type: SelectCharacters})

	from, to, ok := d.SelectionRangeAtLine(0)
	if !ok || from != 2 || to != 3 {
		t.Errorf("line 0: expected [2, 3), got [%d, %d) ok=%v", from, to, ok)
	}
	from, to, ok = d.SelectionRangeAtLine(1)
	if !ok || from != 0 || to != 3 {
		t.Errorf("line 1: expected [0, 3), got [%d, %d) ok=%v", from, to, ok)
	}
	from, to, ok = d.SelectionRangeAtLine(2)
	if !ok || from != 0 || to != 1 {
		t.Errorf("line 2: expected [0, 1), got [%d, %d) ok=%v", from, to, ok)
	}
}

func TestFindMatchForward(t *testing.T) {
	d := NewDocument("ab ab ab", 1)

	st := &search.State{Text: "ab", Direction: search.Forward}
	offset, ok := d.FindMatch(st)
	if !ok || offset != 3 {
		t.Errorf("expected match at 3, got %d ok=%v", offset, ok)
	}

	// Past the last match, the search wraps to the first.
	d = NewDocument("ab ab ab", 7)
	offset, ok = d.FindMatch(st)
	if !ok || offset != 0 {
		t.Errorf("expected wrapped match at 0, got %d ok=%v", offset, ok)
	}
}

func TestFindMatchBackward(t *testing.T) {
	d := NewDocument("ab ab ab", 4)

	st := &search.State{Text: "ab", Direction: search.Backward}
	offset, ok := d.FindMatch(st)
	if !ok || offset != 3 {
		t.Errorf("expected match at 3, got %d ok=%v", offset, ok)
	}

	// Before the first match, the search wraps to the last.
	d = NewDocument("ab ab ab", 0)
	offset, ok = d.FindMatch(st)
	if !ok || offset != 6 {
		t.Errorf("expected wrapped match at 6, got %d ok=%v", offset, ok)
	}
}

func TestFindMatchIgnoreCase(t *testing.T) {
	d := NewDocument("Hello HELLO", 0)

	st := &search.State{Text: "hello", Direction: search.Forward, IgnoreCase: true}
	offset, ok := d.FindMatch(st)
	if !ok || offset != 6 {
		t.Errorf("expected case-folded match at 6, got %d ok=%v", offset, ok)
	}

	st.IgnoreCase = false
	if _, ok := d.FindMatch(st); ok {
		t.Error("expected no case-sensitive match")
	}
}

func TestFindMatchMisses(t *testing.T) {
	d := NewDocument("hello", 0)

	if _, ok := d.FindMatch(&search.State{Text: "xyz"}); ok {
		t.Error("expected no match for absent text")
	}
	if _, ok := d.FindMatch(&search.State{Text: ""}); ok {
		t.Error("expected no match for empty search text")
	}
	if _, ok := d.FindMatch(nil); ok {
		t.Error("expected no match for nil state")
	}
}

func TestDirectionOpposite(t *testing.T) {
	if search.Forward.Opposite() != search.Backward {
		t.Error("expected forward opposite to be backward")
	}
	if search.Backward.Opposite() != search.Forward {
		t.Error("expected backward opposite to be forward")
	}
	if search.Forward.String() != "forward" || search.Backward.String() != "backward" {
		t.Error("unexpected direction names")
	}
}
