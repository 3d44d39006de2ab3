package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/scribe/internal/format"
)

// action is a user command reachable from both keys and toolbar buttons.
type action int

const (
	actNone action = iota
	actBold
	actItalic
	actUnderline
	actAlignLeft
	actAlignCenter
	actAlignRight
	actFontSmaller
	actFontBigger
	actUndo
	actRedo
	actClear
	actExport
)

// fontStep is how much the font size buttons change the size.
const fontStep = 2

type button struct {
	id     string
	label  string
	action action
	active func(f format.State) bool
}

var toolbarButtons = []button{
	{id: "tb-bold", label: " B ", action: actBold, active: func(f format.State) bool { return f.Bold }},
	{id: "tb-italic", label: " I ", action: actItalic, active: func(f format.State) bool { return f.Italic }},
	{id: "tb-underline", label: " U ", action: actUnderline, active: func(f format.State) bool { return f.Underline }},
	{id: "tb-left", label: " Left ", action: actAlignLeft, active: func(f format.State) bool { return f.Align == format.AlignLeft }},
	{id: "tb-center", label: " Center ", action: actAlignCenter, active: func(f format.State) bool { return f.Align == format.AlignCenter }},
	{id: "tb-right", label: " Right ", action: actAlignRight, active: func(f format.State) bool { return f.Align == format.AlignRight }},
	{id: "tb-smaller", label: " A- ", action: actFontSmaller},
	{id: "tb-bigger", label: " A+ ", action: actFontBigger},
	{id: "tb-undo", label: " Undo ", action: actUndo},
	{id: "tb-redo", label: " Redo ", action: actRedo},
	{id: "tb-clear", label: " Clear ", action: actClear},
	{id: "tb-export", label: " Export ", action: actExport},
}

// toolbarView renders each button inside its click zone. Buttons that do
// not fit in width are left off rather than wrapped.
func toolbarView(f format.State, width int) string {
	parts := make([]string, 0, len(toolbarButtons))
	used := 0
	for _, b := range toolbarButtons {
		w := lipgloss.Width(b.label)
		if len(parts) > 0 {
			w++
		}
		if used+w > width {
			break
		}
		used += w

		style := buttonStyle
		if b.active != nil && b.active(f) {
			style = activeButtonStyle
		}
		parts = append(parts, zone.Mark(b.id, style.Render(b.label)))
	}
	return strings.Join(parts, " ")
}
