// Package navigator moves the cursor through a document and maps surface
// coordinates to cursor positions (hit-testing).
//
// All functions clamp instead of failing: whatever the input, the returned
// position is valid for the text it was computed against.
package navigator

import (
	"math"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/format"
)

// Text is the read-only view of a document the navigator needs.
type Text interface {
	Len() int
	Line(i int) string
	LineLen(i int) int
}

// MeasureFunc returns the rendered width of text in surface units.
// It is supplied by the rendering collaborator.
type MeasureFunc func(text string, f format.State) float64

// Layout describes where lines are placed on the surface.
type Layout struct {
	TopPadding   float64
	LeftPadding  float64
	RightPadding float64
	LineHeight   float64
	SurfaceWidth float64
}

const (
	// DefaultPadding is the gap between the surface edge and the text.
	DefaultPadding = 20
	// DefaultLineSpacing is added to the font size to get the line height.
	DefaultLineSpacing = 8
)

// Spacing holds the pixel gaps used to lay out a pixel surface.
type Spacing struct {
	Padding     float64
	LineSpacing float64
}

// DefaultSpacing is the spacing PixelLayout uses.
var DefaultSpacing = Spacing{Padding: DefaultPadding, LineSpacing: DefaultLineSpacing}

// Layout lays out a pixel surface of the given width, with the line height
// following the font size.
func (s Spacing) Layout(surfaceWidth float64, f format.State) Layout {
	return Layout{
		TopPadding:   s.Padding,
		LeftPadding:  s.Padding,
		RightPadding: s.Padding,
		LineHeight:   f.FontSize + s.LineSpacing,
		SurfaceWidth: surfaceWidth,
	}
}

// PixelLayout lays out a pixel surface with DefaultSpacing.
func PixelLayout(surfaceWidth float64, f format.State) Layout {
	return DefaultSpacing.Layout(surfaceWidth, f)
}

// StartX returns the x coordinate where a line of the given width begins.
func StartX(a format.Align, l Layout, textWidth float64) float64 {
	switch a {
	case format.AlignCenter:
		return (l.SurfaceWidth - textWidth) / 2
	case format.AlignRight:
		return l.SurfaceWidth - l.RightPadding - textWidth
	default:
		return l.LeftPadding
	}
}

// LineTop returns the y coordinate of the top of line i.
func LineTop(i int, l Layout) float64 {
	return l.TopPadding + float64(i)*l.LineHeight
}

// Clamp pulls p into the bounds of t.
func Clamp(t Text, p document.Position) document.Position {
	last := max(t.Len()-1, 0)
	line := min(max(p.Line, 0), last)
	col := min(max(p.Column, 0), t.LineLen(line))
	return document.Position{Line: line, Column: col}
}

// Move applies one arrow-key step. A non-zero deltaLine moves vertically
// and ignores deltaColumn.
//
// Vertical moves clamp the line to the document and, when the line actually
// changes, re-clamp the column to the new line's length. The original column
// is not remembered across lines.
//
// Horizontal moves never cross a line boundary: a step that would leave
// [0, line length] is rejected and the cursor stays put.
func Move(t Text, p document.Position, deltaLine, deltaColumn int) document.Position {
	p = Clamp(t, p)

	if deltaLine != 0 {
		line := min(max(p.Line+deltaLine, 0), t.Len()-1)
		if line != p.Line {
			p.Line = line
			p.Column = min(p.Column, t.LineLen(line))
		}
		return p
	}

	col := p.Column + deltaColumn
	if col >= 0 && col <= t.LineLen(p.Line) {
		p.Column = col
	}
	return p
}

// LineStart returns the first column of p's line.
func LineStart(t Text, p document.Position) document.Position {
	p = Clamp(t, p)
	p.Column = 0
	return p
}

// LineEnd returns the last column of p's line.
func LineEnd(t Text, p document.Position) document.Position {
	p = Clamp(t, p)
	p.Column = t.LineLen(p.Line)
	return p
}

// Locate hit-tests the surface point (x, y).
//
// The line is the row under y, clamped to the document. The column is the
// prefix length whose right edge lies closest to x; on a tie the smaller
// column wins. Every prefix of the line is measured, so the cost is linear
// in the line length.
func Locate(x, y float64, t Text, l Layout, f format.State, measure MeasureFunc) document.Position {
	lineHeight := l.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1
	}
	row := int(math.Floor((y - l.TopPadding) / lineHeight))
	row = min(max(row, 0), t.Len()-1)

	text := t.Line(row)
	start := StartX(f.Align, l, measure(text, f))

	best := 0
	bestDist := math.Inf(1)
	n := document.GraphemeCount(text)
	for i := 0; i <= n; i++ {
		caret := start + measure(document.SliceByGraphemes(text, 0, i), f)
		if d := math.Abs(x - caret); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return document.Position{Line: row, Column: best}
}

// CaretX returns the x coordinate of the caret drawn at p.
func CaretX(t Text, p document.Position, l Layout, f format.State, measure MeasureFunc) float64 {
	p = Clamp(t, p)
	text := t.Line(p.Line)
	start := StartX(f.Align, l, measure(text, f))
	return start + measure(document.SliceByGraphemes(text, 0, p.Column), f)
}
