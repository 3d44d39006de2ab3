// Package measure provides text width measurers for hit-testing and caret
// placement.
package measure

import (
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/navigator"
)

// DefaultAdvanceRatio approximates the advance of an average glyph as a
// fraction of the font size.
const DefaultAdvanceRatio = 0.6

// Monospace measures every grapheme cluster as ratio times the font size.
func Monospace(ratio float64) navigator.MeasureFunc {
	if ratio <= 0 {
		ratio = DefaultAdvanceRatio
	}
	return func(text string, f format.State) float64 {
		return float64(document.GraphemeCount(text)) * f.FontSize * ratio
	}
}

// Cells measures text in terminal cells. Wide runes such as CJK count as two
// cells and the font size is ignored.
func Cells() navigator.MeasureFunc {
	return func(text string, _ format.State) float64 {
		return float64(runewidth.StringWidth(text))
	}
}
