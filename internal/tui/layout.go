package tui

import (
	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/navigator"
)

// cellPadding is the gap, in cells, between the text area edge and the text.
const cellPadding = 1

// cellLayout places the document on the character grid: one row per line,
// one unit per cell. top moves as the view scrolls.
type cellLayout struct {
	top float64
}

func (c *cellLayout) Layout(surfaceWidth float64, _ format.State) navigator.Layout {
	return navigator.Layout{
		TopPadding:   c.top,
		LeftPadding:  cellPadding,
		RightPadding: cellPadding,
		LineHeight:   1,
		SurfaceWidth: surfaceWidth,
	}
}

// cellCenter converts a terminal cell coordinate to the point at the middle
// of that cell, so a click lands on the caret slot before the clicked glyph.
func cellCenter(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}
