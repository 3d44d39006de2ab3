// Package history keeps a bounded, linear log of document snapshots for
// undo and redo.
package history

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/format"
)

// Snapshot is an immutable copy of the document state at one point in time.
// Lines are copied on the way in and on the way out, so a snapshot never
// aliases a live buffer.
type Snapshot struct {
	ID    uuid.UUID
	Taken time.Time

	lines  []string
	cursor document.Position
	format format.State
}

// NewSnapshot captures lines, cursor and format.
func NewSnapshot(lines []string, cursor document.Position, f format.State) Snapshot {
	return Snapshot{
		ID:     uuid.New(),
		Taken:  time.Now(),
		lines:  slices.Clone(lines),
		cursor: cursor,
		format: f,
	}
}

// Lines returns a copy of the captured lines.
func (s Snapshot) Lines() []string {
	return slices.Clone(s.lines)
}

// Cursor returns the captured cursor.
func (s Snapshot) Cursor() document.Position {
	return s.cursor
}

// Format returns the captured format.
func (s Snapshot) Format() format.State {
	return s.format
}

// Text returns the captured lines joined with newlines.
func (s Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}

// IsZero reports whether s was never captured.
func (s Snapshot) IsZero() bool {
	return s.ID == uuid.Nil
}

// SameContent reports whether s and other hold equal document state,
// ignoring identity and capture time.
func (s Snapshot) SameContent(other Snapshot) bool {
	return s.cursor == other.cursor &&
		s.format == other.format &&
		slices.Equal(s.lines, other.lines)
}
