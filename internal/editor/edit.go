package editor

import (
	"strings"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/history"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/navigator"
)

// InsertText types text at the cursor and leaves the cursor after it.
// Line breaks in text split lines; the whole insertion is one undo step.
// Empty text still commits, the same as any other keystroke.
func (c *Controller) InsertText(text string) {
	text = normalizeNewlines(text)
	var (
		p   document.Position
		err error
	)
	if strings.Contains(text, "\n") {
		p, err = c.buf.Insert(c.cursor, text)
	} else {
		p, err = c.buf.InsertText(c.cursor, text)
	}
	c.cursor = must("insert text", p, err)
	c.commit(ChangeEdit, "insert text")
}

// Paste inserts clipboard text at the cursor as a single undo step.
func (c *Controller) Paste(text string) {
	text = normalizeNewlines(text)
	p, err := c.buf.Insert(c.cursor, text)
	c.cursor = must("paste", p, err)
	log.Debug(log.CatEditor, "pasted", "bytes", len(text), "cursor", c.cursor)
	c.commit(ChangeEdit, "paste")
}

// InsertNewLine splits the current line at the cursor and moves the cursor
// to the start of the new line.
func (c *Controller) InsertNewLine() {
	p, err := c.buf.SplitLine(c.cursor)
	c.cursor = must("new line", p, err)
	c.commit(ChangeEdit, "new line")
}

// Backspace deletes the character before the cursor, joining with the
// previous line at column 0. At the start of the document it changes
// nothing but still commits.
func (c *Controller) Backspace() {
	p, err := c.buf.DeleteBackward(c.cursor)
	c.cursor = must("backspace", p, err)
	c.commit(ChangeEdit, "backspace")
}

// ForwardDelete deletes the character under the cursor, joining the next
// line at the end of a line. The cursor does not move.
func (c *Controller) ForwardDelete() {
	p, err := c.buf.DeleteForward(c.cursor)
	c.cursor = must("delete", p, err)
	c.commit(ChangeEdit, "delete")
}

// Clear empties the document. The format is kept and the clear can be
// undone.
func (c *Controller) Clear() {
	c.cursor = c.buf.Clear()
	c.commit(ChangeEdit, "clear")
}

// MoveCursor applies one arrow-key step: deltaLine for up/down, deltaColumn
// for left/right. Cursor moves are not recorded in history.
func (c *Controller) MoveCursor(deltaLine, deltaColumn int) {
	c.setCursor(navigator.Move(c.buf, c.cursor, deltaLine, deltaColumn))
}

// MoveToLineStart moves the cursor to column 0.
func (c *Controller) MoveToLineStart() {
	c.setCursor(navigator.LineStart(c.buf, c.cursor))
}

// MoveToLineEnd moves the cursor past the last character of its line.
func (c *Controller) MoveToLineEnd() {
	c.setCursor(navigator.LineEnd(c.buf, c.cursor))
}

// SetCursorFromPoint places the cursor at the position nearest the surface
// point (x, y).
func (c *Controller) SetCursorFromPoint(x, y float64) {
	p := navigator.Locate(x, y, c.buf, c.Layout(), c.format, c.measure)
	log.Debug(log.CatEditor, "hit-test", "x", x, "y", y, "cursor", p)
	c.setCursor(p)
}

func (c *Controller) setCursor(p document.Position) {
	c.cursor = navigator.Clamp(c.buf, p)
	c.notify(ChangeCursor)
}

// Undo restores the previous snapshot. It reports false, leaving the state
// untouched, when there is nothing to undo.
func (c *Controller) Undo() bool {
	before := c.history.Current()
	snap, err := c.history.Undo()
	if err != nil {
		log.Debug(log.CatHistory, "undo ignored", "reason", err)
		return false
	}
	c.install(snap)
	c.logHistoryStep("undo", before, snap)
	c.notify(ChangeUndo)
	return true
}

// Redo reapplies the snapshot undone last. It reports false when there is
// nothing to redo.
func (c *Controller) Redo() bool {
	before := c.history.Current()
	snap, err := c.history.Redo()
	if err != nil {
		log.Debug(log.CatHistory, "redo ignored", "reason", err)
		return false
	}
	c.install(snap)
	c.logHistoryStep("redo", before, snap)
	c.notify(ChangeRedo)
	return true
}

// logHistoryStep logs an undo or redo. The diff runs only when debug
// logging is on.
func (c *Controller) logHistoryStep(op string, from, to history.Snapshot) {
	if !log.Enabled(log.LevelDebug) {
		return
	}
	log.Debug(log.CatHistory, op, "id", to.ID, "index", c.history.Index(),
		"change", history.Summarize(from, to))
}

// install makes snap the live state. The background color is not part of a
// snapshot and is left alone.
func (c *Controller) install(snap history.Snapshot) {
	c.buf.SetLines(snap.Lines())
	c.cursor = snap.Cursor()
	c.format = snap.Format()
}
