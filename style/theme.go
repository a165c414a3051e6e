package style

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Theme maps style tags to concrete styles. Tags are hierarchical:
// "chroma.keyword.declaration" falls back to "chroma.keyword", then
// "chroma", then the theme default.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Styles maps tags to styles.
	Styles map[string]Style

	// Base is the style for untagged text.
	Base Style
}

// Resolve converts a fragment's tag list (space separated) into one
// concrete style. Tags are applied left to right, each resolved with
// hierarchical fallback, so later tags override earlier ones.
func (t *Theme) Resolve(tags string) Style {
	out := t.Base
	if tags == "" {
		return out
	}
	for _, tag := range strings.Fields(tags) {
		if s, ok := t.lookup(tag); ok {
			out = out.Merge(s)
		}
	}
	return out
}

func (t *Theme) lookup(tag string) (Style, bool) {
	for tag != "" {
		if s, ok := t.Styles[tag]; ok {
			return s, true
		}
		idx := strings.LastIndexByte(tag, '.')
		if idx < 0 {
			break
		}
		tag = tag[:idx]
	}
	return Style{}, false
}

// themeFile is the on-disk TOML shape:
//
//	name = "dusk"
//	[colors.base]
//	fg = "#d8dee9"
//	bg = "#2e3440"
//	[colors."chroma.keyword"]
//	fg = "#81a1c1"
//	bold = true
type themeFile struct {
	Name   string                `toml:"name"`
	Colors map[string]colorEntry `toml:"colors"`
}

type colorEntry struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Dim       bool   `toml:"dim"`
	Italic    bool   `toml:"italic"`
	Underline bool   `toml:"underline"`
	Reverse   bool   `toml:"reverse"`
}

// ThemeError reports a problem in a theme file.
type ThemeError struct {
	Path    string
	Message string
	Err     error
}

func (e *ThemeError) Error() string {
	return fmt.Sprintf("theme %s: %s", e.Path, e.Message)
}

func (e *ThemeError) Unwrap() error { return e.Err }

// LoadTheme reads a TOML theme file.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ThemeError{Path: path, Message: "read failed", Err: err}
	}
	return ParseTheme(path, data)
}

// ParseTheme parses TOML theme data. The source string is used in
// error messages only.
func ParseTheme(source string, data []byte) (*Theme, error) {
	var file themeFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, &ThemeError{Path: source, Message: err.Error(), Err: err}
	}

	theme := &Theme{
		Name:   file.Name,
		Styles: make(map[string]Style, len(file.Colors)),
		Base:   DefaultStyle(),
	}

	for tag, entry := range file.Colors {
		s, err := entry.style()
		if err != nil {
			return nil, &ThemeError{Path: source, Message: fmt.Sprintf("tag %q: %v", tag, err), Err: err}
		}
		if tag == "base" {
			theme.Base = s
			continue
		}
		theme.Styles[tag] = s
	}

	return theme, nil
}

func (e colorEntry) style() (Style, error) {
	s := DefaultStyle()
	if e.Fg != "" {
		c, err := ParseColor(e.Fg)
		if err != nil {
			return Style{}, err
		}
		s.Foreground = c
	}
	if e.Bg != "" {
		c, err := ParseColor(e.Bg)
		if err != nil {
			return Style{}, err
		}
		s.Background = c
	}
	if e.Bold {
		s.Attributes |= AttrBold
	}
	if e.Dim {
		s.Attributes |= AttrDim
	}
	if e.Italic {
		s.Attributes |= AttrItalic
	}
	if e.Underline {
		s.Attributes |= AttrUnderline
	}
	if e.Reverse {
		s.Attributes |= AttrReverse
	}
	return s, nil
}

// DefaultTheme returns a built-in theme covering the tags emitted by
// the default transformation stages and the common Chroma families.
// Highlight backgrounds are blends of the base background so they stay
// readable on any foreground.
func DefaultTheme() *Theme {
	base := Style{Foreground: RGB(0xd8, 0xde, 0xe9), Background: RGB(0x2e, 0x34, 0x40)}
	bg := base.Background

	return &Theme{
		Name: "dusk",
		Base: base,
		Styles: map[string]Style{
			"selection":        {Foreground: ColorDefault, Background: bg.Blend(RGB(0x81, 0xa1, 0xc1), 0.45)},
			"search":           {Foreground: ColorDefault, Background: bg.Blend(RGB(0xeb, 0xcb, 0x8b), 0.35)},
			"search.current":   {Foreground: RGB(0x2e, 0x34, 0x40), Background: RGB(0xeb, 0xcb, 0x8b)},
			"multiple-cursors": {Foreground: ColorDefault, Background: bg.Blend(RGB(0xa3, 0xbe, 0x8c), 0.55)},
			"chroma.keyword":   {Foreground: RGB(0x81, 0xa1, 0xc1), Attributes: AttrBold},
			"chroma.name":      {Foreground: RGB(0xd8, 0xde, 0xe9)},
			"chroma.name.function": {
				Foreground: RGB(0x88, 0xc0, 0xd0),
			},
			"chroma.literal.string": {Foreground: RGB(0xa3, 0xbe, 0x8c)},
			"chroma.literal.number": {Foreground: RGB(0xb4, 0x8e, 0xad)},
			"chroma.comment":        {Foreground: RGB(0x61, 0x6e, 0x88), Attributes: AttrItalic},
			"chroma.operator":       {Foreground: RGB(0x81, 0xa1, 0xc1)},
			"chroma.punctuation":    {Foreground: RGB(0xec, 0xef, 0xf4)},
		},
	}
}
