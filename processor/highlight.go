package processor

import (
	"unicode"

	"github.com/dshills/tessera/core"
	"github.com/dshills/tessera/search"
)

// Style tags attached by the default stages. Themes resolve them to
// concrete colors.
const (
	TagSearch        = "search"
	TagSearchCurrent = "search.current"
	TagSelection     = "selection"
	TagMultiCursor   = "multiple-cursors"
)

// PassThrough is a stage that changes nothing. Useful as a placeholder
// and in pipeline tests.
type PassThrough struct{}

// Apply returns the input unchanged with identity maps.
func (PassThrough) Apply(in Input) Transformation {
	return Transformation{Fragments: in.Fragments}
}

// HighlightSearch tags every occurrence of the confirmed search text,
// marking the occurrence under the cursor as the current one. Positions
// are preserved, so both maps are the identity.
type HighlightSearch struct{}

// Apply implements Processor.
func (HighlightSearch) Apply(in Input) Transformation {
	return highlightMatches(in, in.Search)
}

// HighlightIncrementalSearch tags matches of the search text being
// typed, before the search is confirmed.
type HighlightIncrementalSearch struct{}

// Apply implements Processor.
func (HighlightIncrementalSearch) Apply(in Input) Transformation {
	return highlightMatches(in, in.PreviewSearch)
}

func highlightMatches(in Input, st *search.State) Transformation {
	if st == nil || st.Text == "" {
		return Transformation{Fragments: in.Fragments}
	}

	lineRunes := []rune(core.Text(in.Fragments))
	needle := []rune(st.Text)
	if len(needle) == 0 || len(needle) > len(lineRunes) {
		return Transformation{Fragments: in.Fragments}
	}

	cursorCol := -1
	if in.Document != nil && in.Document.CursorRow() == in.Lineno {
		cursorCol = in.SourceToDisplay.At(in.Document.CursorCol())
	}

	fragments := in.Fragments
	for col := 0; col+len(needle) <= len(lineRunes); col++ {
		if !runesEqualFold(lineRunes[col:col+len(needle)], needle, st.IgnoreCase) {
			continue
		}
		tag := TagSearch
		if cursorCol >= col && cursorCol < col+len(needle) {
			tag = TagSearchCurrent
		}
		fragments = TagRange(fragments, col, col+len(needle), tag)
	}

	return Transformation{Fragments: fragments}
}

func runesEqualFold(a, b []rune, fold bool) bool {
	for i := range b {
		x, y := a[i], b[i]
		if fold {
			x = unicode.ToLower(x)
			y = unicode.ToLower(y)
		}
		if x != y {
			return false
		}
	}
	return true
}

// HighlightSelection tags the selected span of each line. The span is
// mapped through the running source→display map first, so it stays
// correct after earlier stages moved columns around.
type HighlightSelection struct{}

// Apply implements Processor.
func (HighlightSelection) Apply(in Input) Transformation {
	if in.Document == nil {
		return Transformation{Fragments: in.Fragments}
	}
	from, to, ok := in.Document.SelectionRangeAtLine(in.Lineno)
	if !ok {
		return Transformation{Fragments: in.Fragments}
	}
	from = in.SourceToDisplay.At(from)
	to = in.SourceToDisplay.At(to)
	if from >= to {
		return Transformation{Fragments: in.Fragments}
	}
	return Transformation{Fragments: TagRange(in.Fragments, from, to, TagSelection)}
}

// DisplayMultipleCursors tags the cell under every secondary cursor so
// multi-cursor edits stay visible.
type DisplayMultipleCursors struct{}

// Apply implements Processor.
func (DisplayMultipleCursors) Apply(in Input) Transformation {
	if in.Document == nil || len(in.Document.Cursors()) == 0 {
		return Transformation{Fragments: in.Fragments}
	}
	fragments := in.Fragments
	for _, offset := range in.Document.Cursors() {
		row, col := in.Document.TranslateIndexToPosition(offset)
		if row != in.Lineno {
			continue
		}
		col = in.SourceToDisplay.At(col)
		fragments = TagRange(fragments, col, col+1, TagMultiCursor)
	}
	return Transformation{Fragments: fragments}
}

// TagRange prepends a style tag to the [from, to) columns of a fragment
// list, splitting fragments at the boundaries. Text and positions are
// unchanged. Out-of-range columns clamp to the line.
func TagRange(fragments []core.Fragment, from, to int, tag string) []core.Fragment {
	if from < 0 {
		from = 0
	}
	if to <= from {
		return fragments
	}

	var out []core.Fragment
	col := 0
	for _, f := range fragments {
		runes := []rune(f.Text)
		if len(runes) == 0 {
			out = append(out, f)
			continue
		}
		start, end := col, col+len(runes)
		col = end

		switch {
		case end <= from || start >= to:
			out = append(out, f)
		case start >= from && end <= to:
			out = append(out, f.WithStyle(tag))
		default:
			lo := max(from, start) - start
			hi := min(to, end) - start
			if lo > 0 {
				out = append(out, core.Fragment{Style: f.Style, Text: string(runes[:lo]), Handler: f.Handler})
			}
			out = append(out, core.Fragment{Style: f.Style, Text: string(runes[lo:hi]), Handler: f.Handler}.WithStyle(tag))
			if hi < len(runes) {
				out = append(out, core.Fragment{Style: f.Style, Text: string(runes[hi:]), Handler: f.Handler})
			}
		}
	}
	return out
}

// DefaultStages returns the stages BufferControl prepends unless
// disabled: search highlighting, incremental-search highlighting,
// selection highlighting, and multi-cursor markers, in that order.
func DefaultStages() []Processor {
	return []Processor{
		HighlightSearch{},
		HighlightIncrementalSearch{},
		HighlightSelection{},
		DisplayMultipleCursors{},
	}
}
