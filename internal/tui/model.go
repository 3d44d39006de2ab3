// Package tui is the terminal front end for the editor: it maps keys,
// mouse clicks and toolbar buttons onto editor operations and draws the
// document on the character grid.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/scribe/internal/caret"
	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/editor"
	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/keys"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/measure"
	"github.com/zjrosen/scribe/internal/pubsub"
	"github.com/zjrosen/scribe/internal/raster"
	"github.com/zjrosen/scribe/internal/watcher"
)

// Size used until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the terminal editor.
type Options struct {
	Config config.Config
	// ConfigPath is where ctrl+w saves the format. Empty disables saving.
	ConfigPath string
	// Text seeds the document.
	Text      string
	Clipboard Clipboard
	// Watcher, when set and started, triggers config reloads.
	Watcher *watcher.Watcher
	// Debug shows the latest log entry in the status bar.
	Debug bool
}

// Model is the Bubble Tea model wrapping one editor.Controller.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl      *editor.Controller
	layout    *cellLayout
	blinker   *caret.Blinker
	keys      keys.KeyMap
	help      help.Model
	renderer  *raster.Renderer
	clipboard Clipboard

	changes *pubsub.ContinuousListener[editor.ChangeEvent]
	logs    *log.LogListener
	reloads *pubsub.ContinuousListener[watcher.WatcherEvent]

	cfg        config.Config
	configPath string
	debug      bool

	width      int
	height     int
	scroll     int
	lastChange editor.ChangeKind
	toast      string
	toastErr   bool
	lastLog    string
}

// New creates the model. Call Close when the program exits.
func New(opts Options) Model {
	cfg := opts.Config
	layout := &cellLayout{}
	widths := measure.NewCache(measure.Cells(), measure.DefaultExpiration, measure.DefaultCleanupInterval)

	ctrl := editor.New(editor.Options{
		Format:       cfg.Format,
		Background:   format.Color(cfg.Background),
		HistoryLimit: cfg.Editor.HistoryLimit,
		Measure:      widths.Func(),
		Layout:       layout.Layout,
		SurfaceWidth: defaultWidth,
	})
	if opts.Text != "" {
		ctrl.Load(opts.Text)
	}

	renderer := raster.NewRenderer(nil)
	renderer.Spacing = cfg.Editor.Spacing()

	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		ctx:        ctx,
		cancel:     cancel,
		ctrl:       ctrl,
		layout:     layout,
		blinker:    caret.New(cfg.Editor.BlinkInterval),
		keys:       keys.DefaultKeyMap(),
		help:       help.New(),
		renderer:   renderer,
		clipboard:  clip,
		changes:    pubsub.NewContinuousListener(ctx, ctrl.Broker()),
		cfg:        cfg,
		configPath: opts.ConfigPath,
		debug:      opts.Debug,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	if opts.Debug {
		m.logs = log.NewListener(ctx)
	}
	if opts.Watcher != nil {
		m.reloads = pubsub.NewContinuousListener(ctx, opts.Watcher.Broker())
	}
	m.help.Width = m.width
	return m.scrollToCursor()
}

// Init starts the caret blinking and the event listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.changes.Latest(), m.blink(m.blinker.Reset())}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	if m.reloads != nil {
		cmds = append(cmds, m.reloads.Listen())
	}
	return tea.Batch(cmds...)
}

// Close stops the listeners and the caret. It does not stop the watcher,
// which belongs to the caller.
func (m Model) Close() {
	m.cancel()
	m.blinker.Stop()
	m.ctrl.Close()
}

// Controller exposes the editor being driven.
func (m Model) Controller() *editor.Controller { return m.ctrl }

// Config returns the configuration in effect, including reloads.
func (m Model) Config() config.Config { return m.cfg }

// Toast returns the transient message in the status bar.
func (m Model) Toast() string { return m.toast }

// LastChange returns the kind of the most recent change event received.
func (m Model) LastChange() editor.ChangeKind { return m.lastChange }

func (m Model) headerRows() int {
	if m.cfg.UI.ShowToolbar {
		return 1
	}
	return 0
}

func (m Model) footerRows() int {
	n := 1 // help
	if m.help.ShowAll {
		n = 0
		for _, col := range m.keys.FullHelp() {
			n = max(n, len(col))
		}
	}
	if m.cfg.UI.ShowStatusBar {
		n++
	}
	return n
}

func (m Model) textRows() int {
	return max(m.height-m.headerRows()-m.footerRows(), 1)
}

// scrollToCursor adjusts the scroll offset so the cursor line is on screen,
// below the top padding row, and moves the layout to match.
func (m Model) scrollToCursor() Model {
	row := cellPadding + m.ctrl.Cursor().Line - m.scroll
	rows := m.textRows()
	switch {
	case row < cellPadding:
		m.scroll -= cellPadding - row
	case row >= rows:
		m.scroll += row - rows + 1
	}
	m.scroll = max(m.scroll, 0)
	m.syncLayout()
	return m
}

func (m Model) syncLayout() {
	m.layout.top = float64(m.headerRows() + cellPadding - m.scroll)
}
