package style

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#ff0000", RGB(255, 0, 0)},
		{"00ff00", RGB(0, 255, 0)},
		{"#abc", RGB(0xaa, 0xbb, 0xcc)},
		{"  #102030  ", RGB(0x10, 0x20, 0x30)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.input, tt.want, got)
		}
	}

	if _, err := ParseColor("not-a-color"); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestColorBlend(t *testing.T) {
	black := RGB(0, 0, 0)
	white := RGB(255, 255, 255)

	if got := black.Blend(white, 0); !got.Equal(black) {
		t.Errorf("t=0 should keep the receiver, got %v", got)
	}
	if got := black.Blend(white, 1); !got.Equal(white) {
		t.Errorf("t=1 should yield the other color, got %v", got)
	}

	mid := black.Blend(white, 0.5)
	if mid.R < 100 || mid.R > 155 {
		t.Errorf("expected a mid gray, got %v", mid)
	}

	// Nothing to blend for default or indexed colors.
	if got := ColorDefault.Blend(white, 0.5); !got.IsDefault() {
		t.Errorf("expected default passthrough, got %v", got)
	}
	if got := Indexed(3).Blend(white, 0.5); !got.Equal(Indexed(3)) {
		t.Errorf("expected indexed passthrough, got %v", got)
	}
}

func TestStyleMerge(t *testing.T) {
	base := Style{Foreground: RGB(1, 2, 3), Background: RGB(4, 5, 6), Attributes: AttrBold}
	over := Style{Foreground: RGB(9, 9, 9), Background: ColorDefault, Attributes: AttrItalic}

	got := base.Merge(over)
	if !got.Foreground.Equal(RGB(9, 9, 9)) {
		t.Errorf("expected overriding foreground, got %v", got.Foreground)
	}
	if !got.Background.Equal(RGB(4, 5, 6)) {
		t.Errorf("expected default background to not override, got %v", got.Background)
	}
	if !got.Attributes.Has(AttrBold) || !got.Attributes.Has(AttrItalic) {
		t.Errorf("expected attributes OR'd, got %v", got.Attributes)
	}
}

func TestStyleInvert(t *testing.T) {
	s := Style{Foreground: RGB(1, 1, 1), Background: RGB(2, 2, 2), Attributes: AttrBold}

	got := s.Invert()
	if !got.Foreground.Equal(RGB(2, 2, 2)) || !got.Background.Equal(RGB(1, 1, 1)) {
		t.Error("expected swapped colors")
	}
	if !got.Attributes.Has(AttrBold) {
		t.Error("expected attributes preserved")
	}
}

func TestThemeResolveHierarchy(t *testing.T) {
	theme := &Theme{
		Base: Style{Foreground: RGB(1, 1, 1)},
		Styles: map[string]Style{
			"chroma":         {Foreground: RGB(2, 2, 2)},
			"chroma.keyword": {Foreground: RGB(3, 3, 3)},
		},
	}

	// Exact tag.
	if got := theme.Resolve("chroma.keyword"); !got.Foreground.Equal(RGB(3, 3, 3)) {
		t.Errorf("expected exact match, got %v", got.Foreground)
	}
	// Falls back to the parent tag.
	if got := theme.Resolve("chroma.keyword.declaration"); !got.Foreground.Equal(RGB(3, 3, 3)) {
		t.Errorf("expected parent fallback, got %v", got.Foreground)
	}
	if got := theme.Resolve("chroma.comment"); !got.Foreground.Equal(RGB(2, 2, 2)) {
		t.Errorf("expected root fallback, got %v", got.Foreground)
	}
	// Unknown tags resolve to the base style.
	if got := theme.Resolve("unknown"); !got.Foreground.Equal(RGB(1, 1, 1)) {
		t.Errorf("expected base style, got %v", got.Foreground)
	}
	if got := theme.Resolve(""); !got.Foreground.Equal(RGB(1, 1, 1)) {
		t.Errorf("expected base style for empty tags, got %v", got.Foreground)
	}
}

func TestThemeResolveMultipleTags(t *testing.T) {
	theme := &Theme{
		Styles: map[string]Style{
			"keyword":   {Foreground: RGB(1, 0, 0), Attributes: AttrBold},
			"selection": {Background: RGB(0, 0, 9)},
		},
	}

	// Later tags override earlier ones where they conflict.
	got := theme.Resolve("selection keyword")
	if !got.Foreground.Equal(RGB(1, 0, 0)) {
		t.Errorf("expected keyword foreground, got %v", got.Foreground)
	}
	if !got.Background.Equal(RGB(0, 0, 9)) {
		t.Errorf("expected selection background, got %v", got.Background)
	}
	if !got.Attributes.Has(AttrBold) {
		t.Error("expected bold attribute")
	}
}

func TestParseTheme(t *testing.T) {
	data := []byte(`
name = "test"

[colors.base]
fg = "#d8dee9"
bg = "#2e3440"

[colors."chroma.keyword"]
fg = "#81a1c1"
bold = true

[colors.selection]
bg = "#434c5e"
reverse = true
`)

	theme, err := ParseTheme("test.toml", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if theme.Name != "test" {
		t.Errorf("expected name %q, got %q", "test", theme.Name)
	}
	if !theme.Base.Foreground.Equal(RGB(0xd8, 0xde, 0xe9)) {
		t.Errorf("unexpected base foreground %v", theme.Base.Foreground)
	}

	kw := theme.Resolve("chroma.keyword")
	if !kw.Foreground.Equal(RGB(0x81, 0xa1, 0xc1)) || !kw.Attributes.Has(AttrBold) {
		t.Errorf("unexpected keyword style %v", kw)
	}
	sel := theme.Resolve("selection")
	if !sel.Background.Equal(RGB(0x43, 0x4c, 0x5e)) || !sel.Attributes.Has(AttrReverse) {
		t.Errorf("unexpected selection style %v", sel)
	}
}

func TestParseThemeBadColor(t *testing.T) {
	data := []byte("[colors.base]\nfg = \"nope\"\n")

	_, err := ParseTheme("bad.toml", data)
	if err == nil {
		t.Fatal("expected error")
	}
	var themeErr *ThemeError
	if !errors.As(err, &themeErr) {
		t.Fatalf("expected *ThemeError, got %T", err)
	}
	if themeErr.Path != "bad.toml" {
		t.Errorf("expected path in error, got %q", themeErr.Path)
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	_, err := LoadTheme("/no/such/theme.toml")
	if err == nil {
		t.Fatal("expected error")
	}
	var themeErr *ThemeError
	if !errors.As(err, &themeErr) {
		t.Fatalf("expected *ThemeError, got %T", err)
	}
	if themeErr.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}

func TestDefaultThemeCoversStageTags(t *testing.T) {
	theme := DefaultTheme()

	for _, tag := range []string{"search", "search.current", "selection", "multiple-cursors"} {
		if theme.Resolve(tag).Equal(theme.Base) {
			t.Errorf("expected %q to differ from the base style", tag)
		}
	}
}
