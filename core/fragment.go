package core

import (
	"strings"

	"github.com/dshills/tessera/mouse"
)

// Marker tags recognized inside a fragment's style field. A zero-width
// fragment carrying one of these pins the cursor or menu position to the
// point where it occurs in the fragment stream.
const (
	SetCursorPosition = "[SetCursorPosition]"
	SetMenuPosition   = "[SetMenuPosition]"
)

// ClickHandler handles a mouse event on a fragment. It returns true when
// the event was consumed; false defers to the containing window.
type ClickHandler func(ev mouse.Event) bool

// Fragment is a run of text sharing one style tag list.
type Fragment struct {
	// Style is a space-separated list of style tags.
	Style string

	// Text is the literal text of the run. May contain newlines; use
	// SplitLines to break a fragment stream into display lines.
	Text string

	// Handler, if set, is invoked when the fragment is clicked.
	Handler ClickHandler
}

// HasStyleTag reports whether the fragment's style field contains the
// given marker or tag as a substring.
func (f Fragment) HasStyleTag(tag string) bool {
	return strings.Contains(f.Style, tag)
}

// WithStyle returns a copy of the fragment with extra tags prepended.
func (f Fragment) WithStyle(tags string) Fragment {
	if tags == "" {
		return f
	}
	if f.Style == "" {
		f.Style = tags
		return f
	}
	f.Style = tags + " " + f.Style
	return f
}

// Text returns the concatenated plain text of a fragment list.
func Text(fragments []Fragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// SplitLines splits a fragment stream on newline characters into one
// fragment list per display line. Newlines are not retained. Handlers
// and styles carry over to every part of a split fragment. The result
// always contains at least one line; a trailing newline yields a final
// empty line, matching how the text would occupy the screen.
func SplitLines(fragments []Fragment) [][]Fragment {
	lines := [][]Fragment{nil}

	for _, f := range fragments {
		text := f.Text
		for {
			idx := strings.IndexByte(text, '\n')
			if idx < 0 {
				break
			}
			if idx > 0 {
				last := len(lines) - 1
				lines[last] = append(lines[last], Fragment{Style: f.Style, Text: text[:idx], Handler: f.Handler})
			}
			lines = append(lines, nil)
			text = text[idx+1:]
		}
		if text != "" || f.Text == "" {
			// Keep zero-width fragments (markers) on the current line.
			last := len(lines) - 1
			lines[last] = append(lines[last], Fragment{Style: f.Style, Text: text, Handler: f.Handler})
		}
	}

	return lines
}
