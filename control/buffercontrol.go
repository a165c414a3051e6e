package control

import (
	"time"

	"github.com/dshills/tessera/buffer"
	"github.com/dshills/tessera/cache"
	"github.com/dshills/tessera/core"
	"github.com/dshills/tessera/event"
	"github.com/dshills/tessera/lexer"
	"github.com/dshills/tessera/mouse"
	"github.com/dshills/tessera/processor"
	"github.com/dshills/tessera/search"
)

const (
	// Cursor movement, undo, and resizing frequently re-render the
	// same document; a handful of lexed documents covers that churn.
	lexerCacheSize = 8

	// Two releases within this span count as a double click.
	doubleClickInterval = 300 * time.Millisecond
)

// ProcessedLine is one line after the transformation pipeline ran:
// rewritten fragments plus the composed coordinate maps between source
// and display columns.
type ProcessedLine struct {
	Fragments       []core.Fragment
	SourceToDisplay processor.ColumnMap
	DisplayToSource processor.ColumnMap
}

type lexerCacheKey struct {
	text string
	hash string
}

// BufferControlConfig configures a BufferControl. Start from
// DefaultBufferControlConfig; the zero value is a non-focusable
// control over a fresh empty buffer.
type BufferControlConfig struct {
	// Buffer is the document model to display. Nil creates an empty
	// buffer.
	Buffer *buffer.Buffer

	// Lexer produces per-line styled fragments. Nil uses a plain
	// SimpleLexer.
	Lexer lexer.Lexer

	// Processors are extra transformation stages, run after the
	// default set.
	Processors []processor.Processor

	// DisableDefaultProcessors drops the built-in search, selection,
	// and multi-cursor stages.
	DisableDefaultProcessors bool

	// PreviewSearch renders the document as if the in-progress search
	// had already moved the cursor, without touching the buffer.
	PreviewSearch bool

	// Focusable makes the control focusable.
	Focusable bool

	// FocusOnClick claims focus when an unfocused control is clicked.
	FocusOnClick bool

	// SearchControl resolves the search field attached to this
	// control, when one exists. A function so that field and target
	// can be constructed in either order.
	SearchControl func() *SearchBufferControl

	// MenuPosition, if set, returns the explicit document offset to
	// anchor a popup menu at. It wins over completion state.
	MenuPosition func() (int, bool)

	// KeyBindings are control-specific bindings, or nil.
	KeyBindings KeyBindings

	// Clock supplies the time for double-click detection. Nil uses
	// time.Now.
	Clock func() time.Time
}

// DefaultBufferControlConfig returns the usual setup: focusable, with
// the default transformation stages.
func DefaultBufferControlConfig() BufferControlConfig {
	return BufferControlConfig{Focusable: true}
}

// BufferControl renders a live editable document through the
// transformation pipeline as wrapped, mouse-addressable Content.
type BufferControl struct {
	buf           *buffer.Buffer
	lex           lexer.Lexer
	processors    []processor.Processor
	noDefaults    bool
	previewSearch bool
	focusable     bool
	focusOnClick  bool
	searchControl func() *SearchBufferControl
	menuPosition  func() (int, bool)
	keyBindings   KeyBindings
	now           func() time.Time

	// self preserves identity for focus/search-target comparisons when
	// this control is embedded (SearchBufferControl).
	self Control

	lexerCache *cache.Cache[lexerCacheKey, lexer.LineFunc]

	// Last render's per-line processor, reused by the mouse handler
	// within the same frame.
	lastProcessed func(lineno int) ProcessedLine

	lastClick time.Time
}

// NewBufferControl creates a buffer control.
func NewBufferControl(cfg BufferControlConfig) *BufferControl {
	c := &BufferControl{
		buf:           cfg.Buffer,
		lex:           cfg.Lexer,
		processors:    cfg.Processors,
		noDefaults:    cfg.DisableDefaultProcessors,
		previewSearch: cfg.PreviewSearch,
		focusable:     cfg.Focusable,
		focusOnClick:  cfg.FocusOnClick,
		searchControl: cfg.SearchControl,
		menuPosition:  cfg.MenuPosition,
		keyBindings:   cfg.KeyBindings,
		now:           cfg.Clock,
		lexerCache:    cache.New[lexerCacheKey, lexer.LineFunc](lexerCacheSize),
	}
	if c.buf == nil {
		c.buf = buffer.New()
	}
	if c.lex == nil {
		c.lex = lexer.SimpleLexer{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.self = c
	return c
}

// Buffer returns the underlying buffer.
func (c *BufferControl) Buffer() *buffer.Buffer { return c.buf }

// SearchControl returns the attached search field, or nil.
func (c *BufferControl) SearchControl() *SearchBufferControl {
	if c.searchControl == nil {
		return nil
	}
	return c.searchControl()
}

// SearchState returns the shared search state driving this control.
// When one search field searches several controls, they all see the
// same state.
func (c *BufferControl) SearchState() *search.State {
	if sc := c.SearchControl(); sc != nil {
		return sc.SearcherSearchState
	}
	return nil
}

// Reset implements Control. The retained processed-line function stays
// valid for the frame, matching the mouse handler's reuse of it.
func (c *BufferControl) Reset() {}

// IsFocusable implements Control.
func (c *BufferControl) IsFocusable() bool { return c.focusable }

// KeyBindings implements Control.
func (c *BufferControl) KeyBindings() KeyBindings { return c.keyBindings }

// PreferredWidth implements Control with no opinion: finding the
// longest line would mean running every processor over the whole
// document, unfeasible for large documents and inconsistent if done
// only for small ones.
func (c *BufferControl) PreferredWidth(ctx *Context, maxAvailableWidth int) (int, bool) {
	return 0, false
}

// PreferredHeight implements Control: the wrapped height of the
// document at the given width, capped at maxAvailableHeight.
func (c *BufferControl) PreferredHeight(ctx *Context, width, maxAvailableHeight int, wrapLines bool, prefix LinePrefixFunc) (int, bool) {
	content := c.CreateContent(ctx, width, Unconstrained)

	if !wrapLines {
		return content.LineCount, true
	}
	if content.LineCount >= maxAvailableHeight {
		return maxAvailableHeight, true
	}

	height := 0
	for i := 0; i < content.LineCount; i++ {
		height += content.HeightForLine(ctx.generation(), i, width, prefix)
		if height >= maxAvailableHeight {
			return maxAvailableHeight, true
		}
	}
	return height, true
}

// documentForRender picks the document to draw: the real one, or a
// search-preview document when an attached search field has text and
// this control is the active search target. The preview never mutates
// the buffer.
func (c *BufferControl) documentForRender(ctx *Context) (*buffer.Document, *search.State) {
	sc := c.SearchControl()

	previewNow := c.previewSearch &&
		sc != nil && sc.Buffer().Text() != "" &&
		ctx != nil && ctx.SearchTarget == c.self

	if !previewNow {
		return c.buf.Document(), nil
	}

	ss := sc.SearcherSearchState
	preview := &search.State{
		Text:       sc.Buffer().Text(),
		Direction:  ss.Direction,
		IgnoreCase: ss.IgnoreCase,
	}
	return c.buf.DocumentForSearch(preview), preview
}

// lexedLineFunc returns the lexer's line lookup for the document,
// cached on (text, lexer invalidation hash). Stale entries age out of
// the bounded cache; they are never looked up again since the key
// embeds the text itself.
func (c *BufferControl) lexedLineFunc(doc *buffer.Document) lexer.LineFunc {
	key := lexerCacheKey{text: doc.Text(), hash: c.lex.InvalidationHash()}
	return c.lexerCache.Get(key, func() lexer.LineFunc {
		return c.lex.LexDocument(doc)
	})
}

// processedLineFunc builds the per-line pipeline for one render: lexed
// fragments pushed through every stage, memoized per line number so
// height probes at several widths within the same CreateContent call
// reuse the work.
func (c *BufferControl) processedLineFunc(ctx *Context, doc *buffer.Document, preview *search.State, width, height int) func(lineno int) ProcessedLine {
	stages := c.processors
	if !c.noDefaults {
		stages = append(processor.DefaultStages(), stages...)
	}
	pipeline := processor.Merge(stages...)

	getLine := c.lexedLineFunc(doc)
	searchState := c.SearchState()
	focused := ctx.IsFocused(c.self)

	memo := make(map[int]ProcessedLine)
	return func(lineno int) ProcessedLine {
		if pl, ok := memo[lineno]; ok {
			return pl
		}
		tr := pipeline.Apply(processor.Input{
			Document:        doc,
			Lineno:          lineno,
			Fragments:       getLine(lineno),
			Width:           width,
			Height:          height,
			Search:          searchState,
			PreviewSearch:   preview,
			Focused:         focused,
		})
		pl := ProcessedLine{
			Fragments:       tr.Fragments,
			SourceToDisplay: tr.SourceToDisplay,
			DisplayToSource: tr.DisplayToSource,
		}
		memo[lineno] = pl
		return pl
	}
}

// CreateContent implements Control.
func (c *BufferControl) CreateContent(ctx *Context, width, height int) *Content {
	doc, preview := c.documentForRender(ctx)

	getProcessed := c.processedLineFunc(ctx, doc, preview, width, height)
	c.lastProcessed = getProcessed

	translate := func(row, col int) core.Point {
		return core.Point{X: getProcessed(row).SourceToDisplay.At(col), Y: row}
	}

	content := NewContent(doc.LineCount(), func(lineno int) []core.Fragment {
		fragments := getProcessed(lineno).Fragments

		// One trailing blank cell per line: the valid cursor position
		// just past the last character. Appended on every line, not
		// only the cursor's, so wrapping and scrolling do not shift
		// when the cursor moves.
		out := make([]core.Fragment, len(fragments), len(fragments)+1)
		copy(out, fragments)
		return append(out, core.Fragment{Text: " "})
	})

	row, col := doc.TranslateIndexToPosition(doc.CursorPosition())
	content.Cursor = translate(row, col)

	// The menu anchor matters only on the focused control; there is
	// one menu on screen, owned by the focused buffer.
	if ctx.IsFocused(c.self) {
		if c.menuPosition != nil {
			if offset, ok := c.menuPosition(); ok {
				r, cl := c.buf.Document().TranslateIndexToPosition(offset)
				p := translate(r, cl)
				content.Menu = &p
			}
		} else if cs := c.buf.CompleteState(); cs != nil {
			// The original cursor can sit past the completed text when
			// a completion shortened the input; anchor at the smaller
			// offset.
			offset := min(c.buf.CursorPosition(), cs.OriginalDocument.CursorPosition())
			r, cl := c.buf.Document().TranslateIndexToPosition(offset)
			p := translate(r, cl)
			content.Menu = &p
		}
	}

	return content
}

// MouseHandler implements Control. Focused controls translate clicks
// back through the last render's inverse maps into document offsets;
// unfocused controls optionally claim focus on release. Scroll events
// are never handled here, deferring to the host's scrolling.
func (c *BufferControl) MouseHandler(ctx *Context, ev mouse.Event) bool {
	if !ctx.IsFocused(c.self) {
		// Focus on release, not press: the release then arrives at the
		// freshly focused control and is handled as a normal click.
		if c.focusOnClick && ev.Action == mouse.ActionRelease {
			ctx.focus(c.self)
			return true
		}
		return false
	}

	if c.lastProcessed == nil {
		// Nothing rendered yet; nothing to translate against.
		return false
	}

	doc := c.buf.Document()
	pos := ev.Position
	if pos.Y < 0 || pos.Y >= doc.LineCount() {
		return false
	}

	sourceCol := c.lastProcessed(pos.Y).DisplayToSource.At(pos.X)
	index := doc.TranslateRowColToIndex(pos.Y, sourceCol)

	switch ev.Action {
	case mouse.ActionPress:
		c.buf.ExitSelection()
		c.buf.SetCursorPosition(index)
		return true

	case mouse.ActionRelease:
		// A release away from the press point selects the range. The
		// >1 tolerance keeps a plain click from creating an empty
		// selection when navigation snaps the cursor off the end.
		if abs(c.buf.CursorPosition()-index) > 1 {
			c.buf.StartSelection(buffer.SelectCharacters)
			c.buf.SetCursorPosition(index)
		}

		now := c.now()
		doubleClick := !c.lastClick.IsZero() && now.Sub(c.lastClick) < doubleClickInterval
		c.lastClick = now

		if doubleClick {
			start, end := c.buf.Document().WordBoundaries()
			if end > start {
				c.buf.SetCursorPosition(start)
				c.buf.StartSelection(buffer.SelectCharacters)
				c.buf.SetCursorPosition(end)
			}
		}
		return true

	default:
		return false
	}
}

// MoveCursorDown implements Control.
func (c *BufferControl) MoveCursorDown() { c.buf.CursorDown() }

// MoveCursorUp implements Control.
func (c *BufferControl) MoveCursorUp() { c.buf.CursorUp() }

// InvalidateEvents implements Control: any of these requires a
// re-render of this control.
func (c *BufferControl) InvalidateEvents() []*event.Signal {
	return []*event.Signal{
		c.buf.OnTextChanged,
		c.buf.OnCursorMoved,
		c.buf.OnCompletionsChanged,
		c.buf.OnSuggestionSet,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// SearchBufferControlConfig configures a SearchBufferControl.
type SearchBufferControlConfig struct {
	Buffer       *buffer.Buffer
	Lexer        lexer.Lexer
	Processors   []processor.Processor
	FocusOnClick bool
	KeyBindings  KeyBindings

	// IgnoreCase searches case-insensitively.
	IgnoreCase bool
}

// SearchBufferControl is a BufferControl used as the search field over
// one or more other BufferControls. It owns the SearchState those
// controls share to know what to highlight and preview.
type SearchBufferControl struct {
	*BufferControl

	// SearcherSearchState is the search state of the controls searched
	// through this field.
	SearcherSearchState *search.State
}

// NewSearchBufferControl creates a search field control.
func NewSearchBufferControl(cfg SearchBufferControlConfig) *SearchBufferControl {
	inner := NewBufferControl(BufferControlConfig{
		Buffer:       cfg.Buffer,
		Lexer:        cfg.Lexer,
		Processors:   cfg.Processors,
		Focusable:    true,
		FocusOnClick: cfg.FocusOnClick,
		KeyBindings:  cfg.KeyBindings,
	})
	s := &SearchBufferControl{
		BufferControl:       inner,
		SearcherSearchState: &search.State{IgnoreCase: cfg.IgnoreCase},
	}
	inner.self = s
	return s
}
