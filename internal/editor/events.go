package editor

import (
	"github.com/zjrosen/scribe/internal/document"
)

// ChangeKind says what an operation changed.
type ChangeKind string

const (
	ChangeEdit       ChangeKind = "edit"
	ChangeFormat     ChangeKind = "format"
	ChangeBackground ChangeKind = "background"
	ChangeCursor     ChangeKind = "cursor"
	ChangeUndo       ChangeKind = "undo"
	ChangeRedo       ChangeKind = "redo"
)

// Committed reports whether a change of this kind added a history entry.
func (k ChangeKind) Committed() bool {
	return k == ChangeEdit || k == ChangeFormat
}

// ChangeEvent is published after every state change.
type ChangeEvent struct {
	Kind   ChangeKind
	Cursor document.Position
	Lines  int
}
