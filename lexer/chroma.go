package lexer

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"

	"github.com/dshills/tessera/buffer"
	"github.com/dshills/tessera/core"
)

// TagPrefix prefixes every style tag emitted by ChromaLexer, so a
// theme can address token styles as e.g. "chroma.keyword".
const TagPrefix = "chroma."

// ChromaLexer tokenizes documents with a Chroma lexer. The whole text
// is tokenized in one pass (multi-line tokenization gives the lexer
// full context), then sliced into per-line fragments on first access.
type ChromaLexer struct {
	name  string
	lexer chroma.Lexer
}

// NewChromaLexer creates a lexer for the named language. Unknown names
// fall back to plain text.
func NewChromaLexer(name string) *ChromaLexer {
	lx := lexers.Get(name)
	if lx == nil {
		lx = lexers.Fallback
		name = "fallback"
	}
	return &ChromaLexer{name: name, lexer: lx}
}

// DetectChromaLexer picks a lexer for a file, preferring enry's
// language detection over Chroma's content analysis.
func DetectChromaLexer(filename, contents string) *ChromaLexer {
	if lang := enry.GetLanguage(filename, []byte(contents)); lang != "" {
		if lx := lexers.Get(lang); lx != nil {
			return &ChromaLexer{name: lang, lexer: lx}
		}
	}
	if lx := lexers.Analyse(contents); lx != nil {
		return &ChromaLexer{name: lx.Config().Name, lexer: lx}
	}
	return &ChromaLexer{name: "fallback", lexer: lexers.Fallback}
}

// Name returns the resolved language name.
func (l *ChromaLexer) Name() string { return l.name }

// LexDocument implements Lexer. Tokenization runs once, on the first
// line lookup, and the per-line slices are retained by the returned
// closure for the lifetime of the snapshot's cache entry.
func (l *ChromaLexer) LexDocument(doc *buffer.Document) LineFunc {
	var lines [][]core.Fragment
	lexed := false

	return func(lineno int) []core.Fragment {
		if !lexed {
			lexed = true
			lines = l.lexAll(doc.Text(), doc.LineCount())
		}
		if lineno < 0 || lineno >= len(lines) {
			return nil
		}
		return lines[lineno]
	}
}

func (l *ChromaLexer) lexAll(text string, lineCount int) [][]core.Fragment {
	lines := make([][]core.Fragment, lineCount)

	tokens, err := chroma.Tokenise(chroma.Coalesce(l.lexer), nil, text)
	if err != nil {
		// Degrade to unstyled lines rather than failing the render.
		for i, line := range strings.Split(text, "\n") {
			if i < lineCount {
				lines[i] = []core.Fragment{{Text: line}}
			}
		}
		return lines
	}

	lineno := 0
	for _, tok := range tokens {
		tag := tokenTag(tok.Type)
		value := tok.Value
		for value != "" && lineno < lineCount {
			idx := strings.IndexByte(value, '\n')
			if idx < 0 {
				lines[lineno] = append(lines[lineno], core.Fragment{Style: tag, Text: value})
				break
			}
			if idx > 0 {
				lines[lineno] = append(lines[lineno], core.Fragment{Style: tag, Text: value[:idx]})
			}
			lineno++
			value = value[idx+1:]
		}
	}

	return lines
}

// InvalidationHash implements Lexer.
func (l *ChromaLexer) InvalidationHash() string {
	return "chroma:" + l.name
}

// tokenTag converts a Chroma token type into a dotted style tag:
// KeywordDeclaration -> "chroma.keyword.declaration". Hierarchical
// tags let themes style whole token families with one entry.
func tokenTag(t chroma.TokenType) string {
	name := t.String()
	var sb strings.Builder
	sb.WriteString(TagPrefix)
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteRune(r + ('a' - 'A'))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
