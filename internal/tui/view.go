package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/navigator"
)

// View renders the toolbar, text area, status bar and help.
func (m Model) View() string {
	sections := make([]string, 0, 4)
	if m.cfg.UI.ShowToolbar {
		sections = append(sections, toolbarView(m.ctrl.Format(), m.width))
	}
	sections = append(sections, m.textView())
	if m.cfg.UI.ShowStatusBar {
		sections = append(sections, m.statusView())
	}
	sections = append(sections, m.help.View(m.keys))
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) textView() string {
	lines := m.ctrl.Lines()
	layout := m.ctrl.Layout()
	surface := surfaceStyle(m.ctrl.Background())

	rows := make([]string, m.textRows())
	for r := range rows {
		i := r - cellPadding + m.scroll
		row := ""
		if i >= 0 && i < len(lines) {
			row = m.renderLine(i, lines[i], layout)
		}
		if pad := m.width - ansi.StringWidth(row); pad > 0 {
			row += surface.Render(strings.Repeat(" ", pad))
		}
		rows[r] = row
	}
	return strings.Join(rows, "\n")
}

// renderLine draws line i at its aligned offset, with the caret as a
// reversed cell when it is on this line and visible.
func (m Model) renderLine(i int, line string, layout navigator.Layout) string {
	f := m.ctrl.Format()
	bg := m.ctrl.Background()
	text := textStyle(f, bg)

	start := int(navigator.StartX(f.Align, layout, m.ctrl.Measure(line)))
	var b strings.Builder
	if start > 0 {
		b.WriteString(surfaceStyle(bg).Render(strings.Repeat(" ", start)))
	}

	cur := m.ctrl.Cursor()
	if cur.Line == i && m.blinker.Visible() {
		n := document.GraphemeCount(line)
		at := document.SliceByGraphemes(line, cur.Column, cur.Column+1)
		if at == "" {
			at = " "
		}
		b.WriteString(text.Render(document.SliceByGraphemes(line, 0, cur.Column)))
		b.WriteString(caretStyle(f, bg).Render(at))
		b.WriteString(text.Render(document.SliceByGraphemes(line, cur.Column+1, n)))
	} else {
		b.WriteString(text.Render(line))
	}
	return ansi.Truncate(b.String(), m.width, "")
}

func (m Model) statusView() string {
	f := m.ctrl.Format()
	left := m.ctrl.Status().String()
	if m.debug && m.lastLog != "" {
		left += " | " + m.lastLog
	}

	right := fmt.Sprintf("%s | %s | %s", f.FontString(), f.Align, f.Color)
	if m.toast != "" {
		style := toastStyle
		if m.toastErr {
			style = errorToastStyle
		}
		right = style.Render(m.toast)
	}

	gap := max(m.width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	line := ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.width, "…")
	return statusStyle.Render(line)
}
