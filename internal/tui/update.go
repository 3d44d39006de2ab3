package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/editor"
	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/pubsub"
	"github.com/zjrosen/scribe/internal/raster"
	"github.com/zjrosen/scribe/internal/watcher"
)

type blinkMsg struct{ gen uint64 }

type pastedMsg struct {
	text string
	err  error
}

type exportedMsg struct {
	path string
	err  error
}

type savedMsg struct {
	path string
	err  error
}

type configLoadedMsg struct {
	cfg config.Config
	err error
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ctrl.SetSurfaceWidth(float64(msg.Width))
		return m.scrollToCursor(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case blinkMsg:
		if m.blinker.Toggle(msg.gen) {
			return m, m.blink(msg.gen)
		}
		return m, nil

	case tea.FocusMsg:
		return m, m.blink(m.blinker.Reset())

	case tea.BlurMsg:
		m.blinker.Stop()
		return m, nil

	case pubsub.Event[editor.ChangeEvent]:
		m.lastChange = msg.Payload.Kind
		return m, m.changes.Latest()

	case log.LogEvent:
		m.lastLog = strings.TrimSpace(msg.Payload)
		return m, m.logs.Listen()

	case pubsub.Event[watcher.WatcherEvent]:
		if msg.Type == pubsub.FailedEvent {
			m = m.setToast("config watch failed", true)
			return m, m.reloads.Listen()
		}
		return m, tea.Batch(m.reloads.Listen(), loadConfig(msg.Payload.Path))

	case configLoadedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Config reload failed", msg.err)
			return m.setToast("config reload failed: "+msg.err.Error(), true), nil
		}
		m = m.applyConfig(msg.cfg)
		return m, m.blink(m.blinker.Reset())

	case pastedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "Paste failed", msg.err)
			return m.setToast("paste failed", true), nil
		}
		m.ctrl.Paste(msg.text)
		return m.scrollToCursor(), m.blink(m.blinker.Reset())

	case exportedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatRender, "Export failed", msg.err, "path", msg.path)
			return m.setToast("export failed: "+msg.err.Error(), true), nil
		}
		return m.setToast("exported "+msg.path, false), nil

	case savedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Saving format failed", msg.err, "path", msg.path)
			return m.setToast("save failed: "+msg.err.Error(), true), nil
		}
		return m.setToast("format saved to "+msg.path, false), nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	m.toast = ""

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, k.Quit):
		m.blinker.Stop()
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Up):
		m.ctrl.MoveCursor(-1, 0)
	case key.Matches(msg, k.Down):
		m.ctrl.MoveCursor(1, 0)
	case key.Matches(msg, k.Left):
		m.ctrl.MoveCursor(0, -1)
	case key.Matches(msg, k.Right):
		m.ctrl.MoveCursor(0, 1)
	case key.Matches(msg, k.LineStart):
		m.ctrl.MoveToLineStart()
	case key.Matches(msg, k.LineEnd):
		m.ctrl.MoveToLineEnd()
	case key.Matches(msg, k.NewLine):
		m.ctrl.InsertNewLine()
	case key.Matches(msg, k.Backspace):
		m.ctrl.Backspace()
	case key.Matches(msg, k.ForwardDelete):
		m.ctrl.ForwardDelete()
	case key.Matches(msg, k.Paste):
		cmd = m.paste()
	case key.Matches(msg, k.SaveFormat):
		cmd = m.saveFormat()
	default:
		if a := m.actionFor(msg); a != actNone {
			m, cmd = m.do(a)
			break
		}
		switch msg.Type {
		case tea.KeyRunes:
			if msg.Paste {
				m.ctrl.Paste(string(msg.Runes))
			} else {
				m.ctrl.InsertText(string(msg.Runes))
			}
		case tea.KeySpace:
			m.ctrl.InsertText(" ")
		default:
			return m, nil
		}
	}

	m = m.scrollToCursor()
	return m, tea.Batch(cmd, m.blink(m.blinker.Reset()))
}

// actionFor maps the keys shared with the toolbar.
func (m Model) actionFor(msg tea.KeyMsg) action {
	k := m.keys
	switch {
	case key.Matches(msg, k.Bold):
		return actBold
	case key.Matches(msg, k.Italic):
		return actItalic
	case key.Matches(msg, k.Underline):
		return actUnderline
	case key.Matches(msg, k.AlignLeft):
		return actAlignLeft
	case key.Matches(msg, k.AlignCenter):
		return actAlignCenter
	case key.Matches(msg, k.AlignRight):
		return actAlignRight
	case key.Matches(msg, k.FontSmaller):
		return actFontSmaller
	case key.Matches(msg, k.FontBigger):
		return actFontBigger
	case key.Matches(msg, k.Undo):
		return actUndo
	case key.Matches(msg, k.Redo):
		return actRedo
	case key.Matches(msg, k.Clear):
		return actClear
	case key.Matches(msg, k.Export):
		return actExport
	}
	return actNone
}

// do runs a: shared by keys and toolbar clicks.
func (m Model) do(a action) (Model, tea.Cmd) {
	f := m.ctrl.Format()
	switch a {
	case actBold:
		m.ctrl.ToggleBold()
	case actItalic:
		m.ctrl.ToggleItalic()
	case actUnderline:
		m.ctrl.ToggleUnderline()
	case actAlignLeft:
		m.ctrl.SetAlignment(format.AlignLeft)
	case actAlignCenter:
		m.ctrl.SetAlignment(format.AlignCenter)
	case actAlignRight:
		m.ctrl.SetAlignment(format.AlignRight)
	case actFontSmaller:
		m.ctrl.SetFontSize(f.FontSize - fontStep)
	case actFontBigger:
		m.ctrl.SetFontSize(f.FontSize + fontStep)
	case actUndo:
		if !m.ctrl.Undo() {
			m = m.setToast("nothing to undo", false)
		}
	case actRedo:
		if !m.ctrl.Redo() {
			m = m.setToast("nothing to redo", false)
		}
	case actClear:
		m.ctrl.Clear()
	case actExport:
		return m, m.export()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress && m.scroll > 0 {
			m.scroll--
			m.syncLayout()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress && m.scroll < len(m.ctrl.Lines()) {
			m.scroll++
			m.syncLayout()
		}
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	if m.cfg.UI.ShowToolbar {
		for _, b := range toolbarButtons {
			if z := zone.Get(b.id); z != nil && z.InBounds(msg) {
				m.toast = ""
				var cmd tea.Cmd
				m, cmd = m.do(b.action)
				m = m.scrollToCursor()
				return m, tea.Batch(cmd, m.blink(m.blinker.Reset()))
			}
		}
	}

	top := m.headerRows()
	if msg.Y < top || msg.Y >= top+m.textRows() {
		return m, nil
	}
	m.ctrl.SetCursorFromPoint(cellCenter(msg.X, msg.Y))
	return m, m.blink(m.blinker.Reset())
}

func (m Model) setToast(text string, isErr bool) Model {
	m.toast = text
	m.toastErr = isErr
	return m
}

// blink schedules the next caret toggle for generation gen.
func (m Model) blink(gen uint64) tea.Cmd {
	return tea.Tick(m.blinker.Interval(), func(time.Time) tea.Msg {
		return blinkMsg{gen: gen}
	})
}

func (m Model) paste() tea.Cmd {
	clip := m.clipboard
	return func() tea.Msg {
		text, err := clip.ReadAll()
		return pastedMsg{text: text, err: err}
	}
}

// export snapshots the document now and writes the PNG off the update loop.
func (m Model) export() tea.Cmd {
	v := raster.ViewOf(m.ctrl, m.cfg.Export.Width, m.cfg.Export.Height, false)
	path := m.cfg.Export.Path
	r := m.renderer
	return func() tea.Msg {
		return exportedMsg{path: path, err: r.ExportFile(path, v)}
	}
}

func (m Model) saveFormat() tea.Cmd {
	if m.configPath == "" {
		return func() tea.Msg {
			return savedMsg{err: fmt.Errorf("no config file")}
		}
	}
	path, f := m.configPath, m.ctrl.Format()
	return func() tea.Msg {
		return savedMsg{path: path, err: config.SaveFormat(path, f)}
	}
}

func loadConfig(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.Load(path)
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

// applyConfig takes over reloaded settings. The document format is left
// alone because it belongs to the undo history; the background is applied
// since it never was.
func (m Model) applyConfig(cfg config.Config) Model {
	// The caller resets the blinker, which drops ticks of the old interval.
	m.blinker.SetInterval(cfg.Editor.BlinkInterval)
	if cfg.Editor.Spacing() != m.renderer.Spacing {
		r := raster.NewRenderer(m.renderer.Fonts())
		r.Spacing = cfg.Editor.Spacing()
		m.renderer = r
	}
	if bg := format.Color(cfg.Background); bg != m.ctrl.Background() {
		m.ctrl.SetBackgroundColor(bg)
	}

	m.cfg.Editor = cfg.Editor
	m.cfg.Background = cfg.Background
	m.cfg.Export = cfg.Export
	m.cfg.UI = cfg.UI
	log.Info(log.CatConfig, "Config reloaded", "toolbar", cfg.UI.ShowToolbar, "status", cfg.UI.ShowStatusBar)
	return m.setToast("config reloaded", false).scrollToCursor()
}
