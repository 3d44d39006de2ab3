package editor

import (
	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/log"
)

// ToggleBold flips bold for the whole document.
func (c *Controller) ToggleBold() {
	c.format.Bold = !c.format.Bold
	c.commit(ChangeFormat, "toggle bold")
}

// ToggleItalic flips italic for the whole document.
func (c *Controller) ToggleItalic() {
	c.format.Italic = !c.format.Italic
	c.commit(ChangeFormat, "toggle italic")
}

// ToggleUnderline flips underline for the whole document.
func (c *Controller) ToggleUnderline() {
	c.format.Underline = !c.format.Underline
	c.commit(ChangeFormat, "toggle underline")
}

// SetAlignment changes the alignment of every line. Unknown values are
// ignored.
func (c *Controller) SetAlignment(a format.Align) {
	if !a.Valid() {
		log.Warn(log.CatEditor, "ignored unknown alignment", "align", a)
		return
	}
	c.format.Align = a
	c.commit(ChangeFormat, "set alignment")
}

// SetFontFamily changes the font family. Empty names are ignored.
func (c *Controller) SetFontFamily(name string) {
	if name == "" {
		return
	}
	c.format.FontFamily = name
	c.commit(ChangeFormat, "set font family")
}

// SetFontSize changes the font size and with it the line height.
// Sizes that are not positive are ignored.
func (c *Controller) SetFontSize(size float64) {
	if size <= 0 {
		log.Warn(log.CatEditor, "ignored font size", "size", size)
		return
	}
	c.format.FontSize = size
	c.commit(ChangeFormat, "set font size")
}

// SetColor changes the text color. Invalid colors are ignored.
func (c *Controller) SetColor(col format.Color) {
	parsed, err := format.ParseColor(string(col))
	if err != nil {
		log.Warn(log.CatEditor, "ignored text color", "error", err)
		return
	}
	c.format.Color = parsed
	c.commit(ChangeFormat, "set color")
}

// SetBackgroundColor changes the surface color. It is not recorded in
// history, so undo does not revert it.
func (c *Controller) SetBackgroundColor(col format.Color) {
	parsed, err := format.ParseColor(string(col))
	if err != nil {
		log.Warn(log.CatEditor, "ignored background color", "error", err)
		return
	}
	c.background = parsed
	c.notify(ChangeBackground)
}
