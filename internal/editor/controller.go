// Package editor orchestrates the editing core: every operation mutates the
// buffer and cursor, commits a snapshot to history, then notifies listeners.
//
// A Controller is driven from a single goroutine (the UI event loop).
package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/format"
	"github.com/zjrosen/scribe/internal/history"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/measure"
	"github.com/zjrosen/scribe/internal/navigator"
	"github.com/zjrosen/scribe/internal/pubsub"
)

// DefaultSurfaceWidth is the surface width used when Options leaves it unset.
const DefaultSurfaceWidth = 800

// LayoutFunc derives the surface layout from its width and the current format.
type LayoutFunc func(surfaceWidth float64, f format.State) navigator.Layout

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Format is the initial format. Zero means format.Default().
	Format format.State
	// Background is the initial background color. Empty means white.
	Background format.Color
	// HistoryLimit bounds the undo log. Below 1 means history.DefaultLimit.
	HistoryLimit int
	// Measure returns text widths for hit-testing. Nil means a monospace
	// approximation.
	Measure navigator.MeasureFunc
	// Layout derives line placement. Nil means navigator.PixelLayout.
	Layout       LayoutFunc
	SurfaceWidth float64
	// OnChange is called synchronously after every state change.
	OnChange func()
}

// Controller owns the buffer, cursor, format and history of one document.
type Controller struct {
	buf        *document.Buffer
	cursor     document.Position
	format     format.State
	background format.Color
	history    *history.Store

	measure      navigator.MeasureFunc
	layout       LayoutFunc
	surfaceWidth float64
	onChange     func()
	broker       *pubsub.Broker[ChangeEvent]
}

// New returns a controller holding an empty document. The empty document is
// committed as the first snapshot so undo never goes below it.
func New(opts Options) *Controller {
	if opts.Format == (format.State{}) {
		opts.Format = format.Default()
	}
	if opts.Background == "" {
		opts.Background = format.White
	}
	if opts.Measure == nil {
		opts.Measure = measure.Monospace(measure.DefaultAdvanceRatio)
	}
	if opts.Layout == nil {
		opts.Layout = navigator.PixelLayout
	}
	if opts.SurfaceWidth <= 0 {
		opts.SurfaceWidth = DefaultSurfaceWidth
	}

	c := &Controller{
		buf:          document.NewBuffer(""),
		format:       opts.Format,
		background:   opts.Background,
		history:      history.NewStore(opts.HistoryLimit),
		measure:      opts.Measure,
		layout:       opts.Layout,
		surfaceWidth: opts.SurfaceWidth,
		onChange:     opts.OnChange,
		broker:       pubsub.NewBroker[ChangeEvent](),
	}
	c.history.Commit(c.snapshot())
	return c
}

// Load replaces the document with text, places the cursor at the end and
// commits. Undo returns to the previous document.
func (c *Controller) Load(text string) {
	c.buf = document.NewBuffer(text)
	last := c.buf.Len() - 1
	c.cursor = document.Position{Line: last, Column: c.buf.LineLen(last)}
	c.commit(ChangeEdit, "load")
}

// Subscribe returns a channel of change events, closed when ctx is done.
func (c *Controller) Subscribe(ctx context.Context) <-chan pubsub.Event[ChangeEvent] {
	return c.broker.Subscribe(ctx)
}

// Broker exposes the change broker for pubsub.NewContinuousListener.
func (c *Controller) Broker() *pubsub.Broker[ChangeEvent] {
	return c.broker
}

// Close shuts down the change broker.
func (c *Controller) Close() {
	c.broker.Close()
}

// Lines returns a copy of the document lines.
func (c *Controller) Lines() []string { return c.buf.Lines() }

// Text returns the document joined with newlines.
func (c *Controller) Text() string { return c.buf.Text() }

// Cursor returns the cursor position.
func (c *Controller) Cursor() document.Position { return c.cursor }

// Format returns the current format.
func (c *Controller) Format() format.State { return c.format }

// Background returns the background color.
func (c *Controller) Background() format.Color { return c.background }

// CanUndo reports whether Undo would change anything.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// HistoryLen returns the number of retained snapshots.
func (c *Controller) HistoryLen() int { return c.history.Len() }

// Layout returns the current surface layout.
func (c *Controller) Layout() navigator.Layout {
	return c.layout(c.surfaceWidth, c.format)
}

// SurfaceWidth returns the width hit-testing lays lines out against.
func (c *Controller) SurfaceWidth() float64 { return c.surfaceWidth }

// SetSurfaceWidth updates the width used for alignment and hit-testing.
// It does not touch the document.
func (c *Controller) SetSurfaceWidth(w float64) {
	if w <= 0 || w == c.surfaceWidth {
		return
	}
	c.surfaceWidth = w
}

// Measure returns the width of text in the current format.
func (c *Controller) Measure(text string) float64 {
	return c.measure(text, c.format)
}

// CaretX returns the x coordinate of the caret on the surface.
func (c *Controller) CaretX() float64 {
	return navigator.CaretX(c.buf, c.cursor, c.Layout(), c.format, c.measure)
}

// snapshot captures the current document state.
func (c *Controller) snapshot() history.Snapshot {
	return history.NewSnapshot(c.buf.Lines(), c.cursor, c.format)
}

// commit records the current state and notifies listeners.
func (c *Controller) commit(kind ChangeKind, op string) {
	c.cursor = navigator.Clamp(c.buf, c.cursor)
	snap := c.snapshot()
	c.history.Commit(snap)
	log.Debug(log.CatHistory, "committed snapshot",
		"op", op, "id", snap.ID, "index", c.history.Index(), "len", c.history.Len())
	c.notify(kind)
}

func (c *Controller) notify(kind ChangeKind) {
	if c.onChange != nil {
		c.onChange()
	}
	c.broker.Publish(pubsub.UpdatedEvent, ChangeEvent{
		Kind:   kind,
		Cursor: c.cursor,
		Lines:  c.buf.Len(),
	})
}

// must turns a buffer error into a panic. The controller only ever passes a
// clamped cursor, so an error here means the cursor invariant was broken.
func must(op string, p document.Position, err error) document.Position {
	if err != nil {
		log.ErrorErr(log.CatEditor, "buffer rejected cursor", err, "op", op)
		panic(fmt.Errorf("editor: %s: %w", op, err))
	}
	return p
}

// normalizeNewlines converts CRLF and lone CR to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
