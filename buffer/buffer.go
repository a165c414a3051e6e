package buffer

import (
	"github.com/dshills/tessera/event"
	"github.com/dshills/tessera/search"
)

// CompleteState tracks an in-progress completion. OriginalDocument is
// the snapshot taken when completion started; the menu anchor uses it
// because a completion can replace the input with something shorter
// than what was typed.
type CompleteState struct {
	OriginalDocument *Document
	Completions      []string
}

// Buffer is the mutable text model behind a BufferControl. It owns the
// cursor, selection, completion state, and the invalidation signals the
// host subscribes to.
type Buffer struct {
	text      string
	cursor    int
	selection *SelectionState
	cursors   []int
	doc       *Document // cached snapshot, nil after mutation

	completeState *CompleteState
	suggestion    string

	// Invalidation signals, in the order a host typically wires them.
	OnTextChanged        *event.Signal
	OnCursorMoved        *event.Signal
	OnCompletionsChanged *event.Signal
	OnSuggestionSet      *event.Signal
}

// New creates an empty buffer.
func New() *Buffer {
	return NewWithText("")
}

// NewWithText creates a buffer holding text, cursor at offset 0.
func NewWithText(text string) *Buffer {
	return &Buffer{
		text:                 text,
		OnTextChanged:        event.NewSignal("buffer.text-changed"),
		OnCursorMoved:        event.NewSignal("buffer.cursor-moved"),
		OnCompletionsChanged: event.NewSignal("buffer.completions-changed"),
		OnSuggestionSet:      event.NewSignal("buffer.suggestion-set"),
	}
}

// Document returns the current snapshot. Snapshots are cached until the
// next mutation, so repeated calls within one render pass are cheap.
func (b *Buffer) Document() *Document {
	if b.doc == nil {
		d := NewDocument(b.text, b.cursor)
		d.selection = b.selection
		d.cursors = b.cursors
		b.doc = d
		b.cursor = d.cursor // snapshot clamps
	}
	return b.doc
}

func (b *Buffer) invalidate() { b.doc = nil }

// Text returns the buffer text.
func (b *Buffer) Text() string { return b.text }

// SetText replaces the whole text. The cursor is clamped by the next
// snapshot. Fires the text-changed signal.
func (b *Buffer) SetText(text string) {
	if text == b.text {
		return
	}
	b.text = text
	b.invalidate()
	b.OnTextChanged.Emit()
}

// InsertText inserts text at the cursor and advances it.
func (b *Buffer) InsertText(text string) {
	if text == "" {
		return
	}
	runes := []rune(b.text)
	at := b.clampedCursor(len(runes))
	b.text = string(runes[:at]) + text + string(runes[at:])
	b.cursor = at + len([]rune(text))
	b.invalidate()
	b.OnTextChanged.Emit()
}

// DeleteBeforeCursor removes count runes before the cursor.
func (b *Buffer) DeleteBeforeCursor(count int) {
	runes := []rune(b.text)
	at := b.clampedCursor(len(runes))
	from := at - count
	if from < 0 {
		from = 0
	}
	if from == at {
		return
	}
	b.text = string(runes[:from]) + string(runes[at:])
	b.cursor = from
	b.invalidate()
	b.OnTextChanged.Emit()
}

func (b *Buffer) clampedCursor(runeLen int) int {
	at := b.cursor
	if at < 0 {
		at = 0
	}
	if at > runeLen {
		at = runeLen
	}
	return at
}

// CursorPosition returns the cursor's rune offset.
func (b *Buffer) CursorPosition() int { return b.cursor }

// SetCursorPosition moves the cursor. Fires the cursor-moved signal.
func (b *Buffer) SetCursorPosition(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset == b.cursor {
		return
	}
	b.cursor = offset
	b.invalidate()
	b.OnCursorMoved.Emit()
}

// MoveCursor moves the cursor by a relative offset.
func (b *Buffer) MoveCursor(delta int) {
	b.SetCursorPosition(b.cursor + delta)
}

// CursorUp moves the cursor one line up, preserving the column.
func (b *Buffer) CursorUp() {
	b.MoveCursor(b.Document().CursorUpOffset())
}

// CursorDown moves the cursor one line down, preserving the column.
func (b *Buffer) CursorDown() {
	b.MoveCursor(b.Document().CursorDownOffset())
}

// Selection returns the current selection state, or nil.
func (b *Buffer) Selection() *SelectionState { return b.selection }

// StartSelection begins a selection anchored at the current cursor.
func (b *Buffer) StartSelection(selType SelectionType) {
	b.selection = &SelectionState{OriginalCursor: b.cursor, Type: selType}
	b.invalidate()
}

// ExitSelection drops any selection.
func (b *Buffer) ExitSelection() {
	if b.selection == nil {
		return
	}
	b.selection = nil
	b.invalidate()
}

// CompleteState returns the in-progress completion, or nil.
func (b *Buffer) CompleteState() *CompleteState { return b.completeState }

// SetCompletions starts a completion session, capturing the current
// document as the original. Fires the completions-changed signal.
func (b *Buffer) SetCompletions(completions []string) {
	b.completeState = &CompleteState{
		OriginalDocument: b.Document(),
		Completions:      completions,
	}
	b.OnCompletionsChanged.Emit()
}

// ClearCompletions ends the completion session.
func (b *Buffer) ClearCompletions() {
	if b.completeState == nil {
		return
	}
	b.completeState = nil
	b.OnCompletionsChanged.Emit()
}

// Suggestion returns the current auto-suggestion text.
func (b *Buffer) Suggestion() string { return b.suggestion }

// SetSuggestion installs an auto-suggestion. Fires the suggestion-set
// signal.
func (b *Buffer) SetSuggestion(text string) {
	b.suggestion = text
	b.OnSuggestionSet.Emit()
}

// SetSecondaryCursors installs extra cursor offsets shown by the
// multi-cursor display stage.
func (b *Buffer) SetSecondaryCursors(offsets []int) {
	b.cursors = offsets
	b.invalidate()
	b.OnCursorMoved.Emit()
}

// DocumentForSearch derives a document reflecting an in-progress
// search: same text, cursor moved to the match the search would land
// on. The buffer itself is untouched; turning the preview off without
// confirming leaves cursor and selection exactly as they were.
func (b *Buffer) DocumentForSearch(st *search.State) *Document {
	doc := b.Document()
	offset, ok := doc.FindMatch(st)
	if !ok {
		return doc
	}
	return NewDocument(doc.Text(), offset)
}

// ApplySearch confirms a search: the real cursor moves to the match.
func (b *Buffer) ApplySearch(st *search.State) bool {
	offset, ok := b.Document().FindMatch(st)
	if !ok {
		return false
	}
	b.ExitSelection()
	b.SetCursorPosition(offset)
	return true
}
