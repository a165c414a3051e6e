// Package lexer turns a document into per-line styled fragments. The
// display layer treats lexing as an external collaborator: it only
// needs a per-line fragment function and an invalidation token for its
// cache key.
package lexer

import (
	"github.com/dshills/tessera/buffer"
	"github.com/dshills/tessera/core"
)

// LineFunc returns the styled fragments of one line. Out-of-range line
// numbers return nil.
type LineFunc func(lineno int) []core.Fragment

// Lexer produces per-line fragments for a document.
type Lexer interface {
	// LexDocument returns a line lookup for the given snapshot. The
	// returned function may lex lazily but must be deterministic for
	// the snapshot.
	LexDocument(doc *buffer.Document) LineFunc

	// InvalidationHash changes whenever the lexer's configuration
	// changes, busting caches keyed on (text, hash).
	InvalidationHash() string
}

// SimpleLexer styles every line with one fixed tag. The zero value
// leaves lines unstyled.
type SimpleLexer struct {
	// Style is the tag applied to every line.
	Style string
}

// LexDocument implements Lexer.
func (l SimpleLexer) LexDocument(doc *buffer.Document) LineFunc {
	lines := doc.Lines()
	return func(lineno int) []core.Fragment {
		if lineno < 0 || lineno >= len(lines) {
			return nil
		}
		return []core.Fragment{{Style: l.Style, Text: lines[lineno]}}
	}
}

// InvalidationHash implements Lexer.
func (l SimpleLexer) InvalidationHash() string {
	return "simple:" + l.Style
}
