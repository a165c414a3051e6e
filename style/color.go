// Package style resolves the string style tags carried by fragments
// into concrete terminal styles. Controls never touch this package; it
// sits between the fragment stream and whatever paints the screen.
package style

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a terminal color: true color RGB, an indexed palette entry,
// or the terminal default.
type Color struct {
	R, G, B uint8
	// Indexed true means R holds the palette index; G and B are unused.
	Indexed bool
	// Default marks the terminal's default color.
	Default bool
}

// ColorDefault is the terminal's default (inherited) color.
var ColorDefault = Color{Default: true}

// RGB creates a true color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Indexed creates a palette color (0-255).
func Indexed(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ParseColor parses "#RGB", "#RRGGBB", or a bare hex string.
func ParseColor(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// IsDefault reports whether this is the terminal default color.
func (c Color) IsDefault() bool { return c.Default }

// Equal reports whether two colors are identical.
func (c Color) Equal(other Color) bool { return c == other }

// Blend mixes the color toward other in RGB space. t=0 keeps the
// receiver, t=1 yields other. Default/indexed colors pass through
// unchanged since there is nothing to blend in RGB.
func (c Color) Blend(other Color, t float64) Color {
	if c.Default || c.Indexed || other.Default || other.Indexed {
		return c
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bb := a.BlendRgb(b, t).Clamped().RGB255()
	return Color{R: r, G: g, B: bb}
}
