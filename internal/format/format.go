// Package format defines the document-wide text formatting state applied
// by every render pass: font, weight, slant, underline, color and alignment.
package format

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Align is the horizontal alignment of every line.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Valid reports whether a is one of the known alignments.
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	default:
		return false
	}
}

// ParseAlign converts a case-insensitive name into an Align.
func ParseAlign(s string) (Align, error) {
	a := Align(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("invalid alignment %q (must be \"left\", \"center\", or \"right\")", s)
	}
	return a, nil
}

// Color is a normalized "#rrggbb" hex color.
type Color string

const (
	Black Color = "#000000"
	White Color = "#ffffff"
)

// ParseColor accepts "#rgb" or "#rrggbb" (the leading '#' is optional) and
// returns the normalized six-digit form.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(c.Hex()), nil
}

// RGBA converts c to an opaque image color. Unparseable values render black.
func (c Color) RGBA() color.RGBA {
	cf, err := colorful.Hex(string(c))
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := cf.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// State is the single formatting state shared by all lines.
type State struct {
	FontFamily string  `mapstructure:"font_family" yaml:"font_family"`
	FontSize   float64 `mapstructure:"font_size" yaml:"font_size"`
	Bold       bool    `mapstructure:"bold" yaml:"bold"`
	Italic     bool    `mapstructure:"italic" yaml:"italic"`
	Underline  bool    `mapstructure:"underline" yaml:"underline"`
	Color      Color   `mapstructure:"color" yaml:"color"`
	Align      Align   `mapstructure:"align" yaml:"align"`
}

// Default returns the format a new document starts with.
func Default() State {
	return State{
		FontFamily: "Arial",
		FontSize:   16,
		Color:      Black,
		Align:      AlignLeft,
	}
}

// Validate checks that every field holds a usable value.
func (s State) Validate() error {
	if strings.TrimSpace(s.FontFamily) == "" {
		return fmt.Errorf("font_family is required")
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", s.FontSize)
	}
	if _, err := ParseColor(string(s.Color)); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if !s.Align.Valid() {
		return fmt.Errorf("align must be \"left\", \"center\", or \"right\", got %q", s.Align)
	}
	return nil
}

// FontString describes the font in CSS shorthand, e.g. "italic bold 16px Arial".
// It doubles as a cache key for width measurements.
func (s State) FontString() string {
	var sb strings.Builder
	if s.Italic {
		sb.WriteString("italic ")
	}
	if s.Bold {
		sb.WriteString("bold ")
	}
	sb.WriteString(strconv.FormatFloat(s.FontSize, 'f', -1, 64))
	sb.WriteString("px ")
	sb.WriteString(s.FontFamily)
	return sb.String()
}
