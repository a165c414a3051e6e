package style

// Attribute is a bit set of text attributes.
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrItalic              // Italic text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video
)

// Has reports whether the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Style is a concrete visual style for a run of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the terminal default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// Merge combines two styles; the other style wins for every
// non-default value, attributes are OR'd.
func (s Style) Merge(other Style) Style {
	out := s
	if !other.Foreground.IsDefault() {
		out.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		out.Background = other.Background
	}
	out.Attributes |= other.Attributes
	return out
}

// Equal reports whether two styles are identical.
func (s Style) Equal(other Style) bool {
	return s == other
}

// Invert swaps foreground and background.
func (s Style) Invert() Style {
	return Style{Foreground: s.Background, Background: s.Foreground, Attributes: s.Attributes}
}
