// Package main is a small terminal host for the tessera display layer:
// a syntax-highlighted editor pane with incremental search, driven by
// tcell. It exists to exercise the library end to end; it is not a
// complete editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tessera/buffer"
	"github.com/dshills/tessera/control"
	"github.com/dshills/tessera/core"
	"github.com/dshills/tessera/lexer"
	"github.com/dshills/tessera/mouse"
	"github.com/dshills/tessera/search"
	"github.com/dshills/tessera/style"
)

func main() {
	os.Exit(run())
}

const sampleText = `package main

import "fmt"

// greet prints a friendly message.
func greet(name string) {
	fmt.Printf("hello, %s\n", name)
}

func main() {
	greet("tessera")
}
`

func run() int {
	var themePath string
	flag.StringVar(&themePath, "theme", "", "Path to a TOML theme file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tessera-demo [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  /  search forward     ?  search backward\n")
		fmt.Fprintf(os.Stderr, "  Enter  confirm search     Esc  cancel search\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-Q  quit\n")
	}
	flag.Parse()

	theme := style.DefaultTheme()
	if themePath != "" {
		t, err := style.LoadTheme(themePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		theme = t
	}

	filename := "sample.go"
	text := sampleText
	if args := flag.Args(); len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		filename = args[0]
		text = string(data)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	app := newApp(screen, theme, filename, text)
	app.loop()
	return 0
}

type app struct {
	screen   tcell.Screen
	theme    *style.Theme
	filename string

	editor    *control.BufferControl
	searchBar *control.SearchBufferControl

	focused      control.Control
	searchTarget control.Control

	generation uint64
	rowOffset  int
	adapter    mouse.TcellAdapter

	dirty bool
}

func newApp(screen tcell.Screen, theme *style.Theme, filename, text string) *app {
	a := &app{screen: screen, theme: theme, filename: filename, dirty: true}

	searchBuf := buffer.New()
	a.searchBar = control.NewSearchBufferControl(control.SearchBufferControlConfig{
		Buffer:       searchBuf,
		FocusOnClick: true,
		IgnoreCase:   true,
	})

	cfg := control.DefaultBufferControlConfig()
	cfg.Buffer = buffer.NewWithText(text)
	cfg.Lexer = lexer.DetectChromaLexer(filename, text)
	cfg.PreviewSearch = true
	cfg.FocusOnClick = true
	cfg.SearchControl = func() *control.SearchBufferControl { return a.searchBar }
	a.editor = control.NewBufferControl(cfg)

	a.focused = a.editor

	// Any model change marks the frame dirty; the loop redraws once
	// per drained event batch.
	for _, c := range []control.Control{a.editor, a.searchBar} {
		for _, sig := range c.InvalidateEvents() {
			sig.Subscribe(func() { a.dirty = true })
		}
	}

	return a
}

func (a *app) context() *control.Context {
	return &control.Context{
		Generation:   a.generation,
		Focused:      a.focused,
		SearchTarget: a.searchTarget,
		RequestFocus: func(c control.Control) { a.focused = c },
	}
}

func (a *app) loop() {
	for {
		if a.dirty {
			a.draw()
			a.dirty = false
		}
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
			a.dirty = true
		case *tcell.EventMouse:
			a.handleMouse(ev)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlQ || ev.Key() == tcell.KeyCtrlC {
				return
			}
			a.handleKey(ev)
		case nil:
			return
		}
	}
}

func (a *app) startSearch(dir search.Direction) {
	a.searchBar.SearcherSearchState.Direction = dir
	a.searchBar.Buffer().SetText("")
	a.searchTarget = a.editor
	a.focused = a.searchBar
	a.dirty = true
}

func (a *app) finishSearch(apply bool) {
	if apply {
		st := a.searchBar.SearcherSearchState
		st.Text = a.searchBar.Buffer().Text()
		a.editor.Buffer().ApplySearch(st)
	}
	a.searchTarget = nil
	a.focused = a.editor
	a.dirty = true
}

func (a *app) handleKey(ev *tcell.EventKey) {
	a.dirty = true

	if a.focused == a.searchBar {
		buf := a.searchBar.Buffer()
		switch ev.Key() {
		case tcell.KeyEnter:
			a.finishSearch(true)
		case tcell.KeyEscape:
			a.finishSearch(false)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			buf.DeleteBeforeCursor(1)
		case tcell.KeyRune:
			buf.InsertText(string(ev.Rune()))
		}
		return
	}

	buf := a.editor.Buffer()
	switch ev.Key() {
	case tcell.KeyUp:
		buf.CursorUp()
	case tcell.KeyDown:
		buf.CursorDown()
	case tcell.KeyLeft:
		buf.MoveCursor(-1)
	case tcell.KeyRight:
		buf.MoveCursor(1)
	case tcell.KeyEnter:
		buf.InsertText("\n")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		buf.DeleteBeforeCursor(1)
	case tcell.KeyEscape:
		buf.ExitSelection()
	case tcell.KeyRune:
		switch ev.Rune() {
		case '/':
			a.startSearch(search.Forward)
		case '?':
			a.startSearch(search.Backward)
		default:
			buf.InsertText(string(ev.Rune()))
		}
	}
}

func (a *app) handleMouse(tev *tcell.EventMouse) {
	ev, ok := a.adapter.Translate(tev)
	if !ok {
		return
	}

	_, height := a.screen.Size()
	editorHeight := height - 2
	ctx := a.context()
	a.dirty = true

	if ev.Position.Y == height-1 {
		// Search bar row; account for the prompt cell.
		ev.Position.X--
		ev.Position.Y = 0
		a.searchBar.MouseHandler(ctx, ev)
		return
	}
	if ev.Position.Y >= editorHeight {
		return
	}

	ev.Position.Y += a.rowOffset
	if a.editor.MouseHandler(ctx, ev) {
		return
	}

	// Unhandled scroll falls back to viewport scrolling.
	switch ev.Action {
	case mouse.ActionScrollUp:
		a.scroll(-3, editorHeight)
	case mouse.ActionScrollDown:
		a.scroll(3, editorHeight)
	}
}

func (a *app) scroll(delta, editorHeight int) {
	a.rowOffset += delta
	maxOffset := a.editor.Buffer().Document().LineCount() - editorHeight
	if a.rowOffset > maxOffset {
		a.rowOffset = maxOffset
	}
	if a.rowOffset < 0 {
		a.rowOffset = 0
	}
}

func (a *app) draw() {
	a.generation++
	ctx := a.context()

	width, height := a.screen.Size()
	if width <= 0 || height < 3 {
		return
	}
	editorHeight := height - 2

	a.screen.Clear()
	a.editor.Reset()
	a.searchBar.Reset()

	content := a.editor.CreateContent(ctx, width, editorHeight)

	// Keep the cursor's line in view.
	if content.Cursor.Y < a.rowOffset {
		a.rowOffset = content.Cursor.Y
	}
	if content.Cursor.Y >= a.rowOffset+editorHeight {
		a.rowOffset = content.Cursor.Y - editorHeight + 1
	}

	for row := 0; row < editorHeight; row++ {
		lineno := row + a.rowOffset
		if lineno >= content.LineCount {
			break
		}
		a.drawFragments(0, row, width, content.Line(lineno))
	}

	a.drawStatus(content, width, height)
	a.drawSearchBar(ctx, width, height)

	if ctx.IsFocused(a.editor) && content.ShowCursor {
		a.screen.ShowCursor(content.Cursor.X, content.Cursor.Y-a.rowOffset)
	}

	a.screen.Show()
}

func (a *app) drawStatus(content *control.Content, width, height int) {
	status := fmt.Sprintf(" %s  %d:%d ", a.filename, content.Cursor.Y+1, content.Cursor.X+1)
	frag := core.Fragment{Style: "status", Text: status}
	x := a.drawFragments(0, height-2, width, []core.Fragment{frag})
	pad := tcellStyle(a.theme.Resolve("status"))
	for ; x < width; x++ {
		a.screen.SetContent(x, height-2, ' ', nil, pad)
	}
}

func (a *app) drawSearchBar(ctx *control.Context, width, height int) {
	prompt := '/'
	if a.searchBar.SearcherSearchState.Direction == search.Backward {
		prompt = '?'
	}
	a.screen.SetContent(0, height-1, prompt, nil, tcellStyle(a.theme.Resolve("search-bar.prompt")))

	content := a.searchBar.CreateContent(ctx, width-1, 1)
	if content.LineCount > 0 {
		a.drawFragments(1, height-1, width-1, content.Line(0))
	}
	if ctx.IsFocused(a.searchBar) && content.ShowCursor {
		a.screen.ShowCursor(content.Cursor.X+1, height-1)
	}
}

// drawFragments paints one line of fragments and returns the column
// after the last cell written.
func (a *app) drawFragments(x, y, maxWidth int, fragments []core.Fragment) int {
	for _, frag := range fragments {
		st := tcellStyle(a.theme.Resolve(frag.Style))
		for _, r := range frag.Text {
			if x >= maxWidth {
				return x
			}
			a.screen.SetContent(x, y, r, nil, st)
			x += core.StringWidth(string(r))
		}
	}
	return x
}

func tcellStyle(s style.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcellColor(s.Foreground)).
		Background(tcellColor(s.Background))
	attrs := s.Attributes
	st = st.Bold(attrs.Has(style.AttrBold)).
		Dim(attrs.Has(style.AttrDim)).
		Italic(attrs.Has(style.AttrItalic)).
		Underline(attrs.Has(style.AttrUnderline)).
		Reverse(attrs.Has(style.AttrReverse))
	return st
}

func tcellColor(c style.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}
