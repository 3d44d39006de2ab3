// Package document holds the text of a scribe document: an ordered list of
// lines that is never empty, edited at (line, column) positions.
package document

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPosition is returned when a position lies outside the buffer.
	// Callers treat it as a broken invariant, not a user error.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidText is returned when single-line text contains a line break.
	ErrInvalidText = errors.New("text contains a line break")
)

// Position is a cursor location. Column is a grapheme index into the line.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Buffer is an ordered sequence of lines. The zero value is not usable;
// create buffers with NewBuffer.
type Buffer struct {
	lines []string
}

// NewBuffer creates a buffer from text, splitting on newlines.
// An empty string yields one empty line. CRLF line endings are normalized.
func NewBuffer(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Len returns the number of lines, always at least 1.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns line i, or "" when i is out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// LineLen returns the length of line i in characters.
func (b *Buffer) LineLen(i int) int {
	return GraphemeCount(b.Line(i))
}

// Lines returns a copy of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// SetLines replaces the content with a copy of lines.
// A nil or empty slice resets the buffer to one empty line.
func (b *Buffer) SetLines(lines []string) {
	if len(lines) == 0 {
		b.lines = []string{""}
		return
	}
	b.lines = make([]string, len(lines))
	copy(b.lines, lines)
}

// Text returns the content joined with newlines.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Contains reports whether p is a valid cursor position.
func (b *Buffer) Contains(p Position) bool {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return false
	}
	return p.Column >= 0 && p.Column <= b.LineLen(p.Line)
}

func (b *Buffer) validate(p Position) error {
	if !b.Contains(p) {
		return fmt.Errorf("%w: %s (lines=%d, line length=%d)", ErrInvalidPosition, p, len(b.lines), b.LineLen(p.Line))
	}
	return nil
}

// InsertText inserts single-line text at p and returns the position just
// after the inserted text.
func (b *Buffer) InsertText(p Position, text string) (Position, error) {
	if err := b.validate(p); err != nil {
		return p, err
	}
	if containsLineBreak(text) {
		return p, ErrInvalidText
	}

	before, after := splitAt(b.lines[p.Line], p.Column)
	b.lines[p.Line] = before + text + after
	// Counting the joined prefix keeps the column valid when text starts
	// with a combining mark that fuses into the previous cluster.
	return Position{Line: p.Line, Column: GraphemeCount(before + text)}, nil
}

// Insert inserts text that may span several lines and returns the position
// after the last inserted character.
func (b *Buffer) Insert(p Position, text string) (Position, error) {
	if err := b.validate(p); err != nil {
		return p, err
	}
	parts := splitLines(text)
	if len(parts) == 1 {
		return b.InsertText(p, parts[0])
	}

	before, after := splitAt(b.lines[p.Line], p.Column)
	last := parts[len(parts)-1]

	inserted := make([]string, 0, len(parts))
	inserted = append(inserted, before+parts[0])
	inserted = append(inserted, parts[1:len(parts)-1]...)
	inserted = append(inserted, last+after)

	lines := make([]string, 0, len(b.lines)+len(parts)-1)
	lines = append(lines, b.lines[:p.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[p.Line+1:]...)
	b.lines = lines

	return Position{Line: p.Line + len(parts) - 1, Column: GraphemeCount(last)}, nil
}

// SplitLine breaks line p.Line at p.Column. The text after the column moves
// to a new line directly below, where the returned position points.
func (b *Buffer) SplitLine(p Position) (Position, error) {
	if err := b.validate(p); err != nil {
		return p, err
	}

	before, after := splitAt(b.lines[p.Line], p.Column)
	b.lines[p.Line] = before
	b.lines = append(b.lines, "")
	copy(b.lines[p.Line+2:], b.lines[p.Line+1:])
	b.lines[p.Line+1] = after

	return Position{Line: p.Line + 1, Column: 0}, nil
}

// DeleteBackward applies backspace at p. Inside a line it removes the
// character before the column; at column 0 it joins the line onto the
// previous one. At the very start of the document it does nothing.
func (b *Buffer) DeleteBackward(p Position) (Position, error) {
	if err := b.validate(p); err != nil {
		return p, err
	}

	if p.Column > 0 {
		line := b.lines[p.Line]
		b.lines[p.Line] = SliceByGraphemes(line, 0, p.Column-1) + line[GraphemeToByteOffset(line, p.Column):]
		return Position{Line: p.Line, Column: p.Column - 1}, nil
	}
	if p.Line == 0 {
		return p, nil
	}

	prev := b.lines[p.Line-1]
	col := GraphemeCount(prev)
	b.lines[p.Line-1] = prev + b.lines[p.Line]
	b.lines = append(b.lines[:p.Line], b.lines[p.Line+1:]...)
	return Position{Line: p.Line - 1, Column: col}, nil
}

// DeleteForward applies the delete key at p. Inside a line it removes the
// character at the column; at the end of a line it pulls the next line up.
// The cursor never moves.
func (b *Buffer) DeleteForward(p Position) (Position, error) {
	if err := b.validate(p); err != nil {
		return p, err
	}

	line := b.lines[p.Line]
	if p.Column < GraphemeCount(line) {
		before, rest := splitAt(line, p.Column)
		b.lines[p.Line] = before + rest[GraphemeToByteOffset(rest, 1):]
		return p, nil
	}
	if p.Line == len(b.lines)-1 {
		return p, nil
	}

	b.lines[p.Line] = line + b.lines[p.Line+1]
	b.lines = append(b.lines[:p.Line+1], b.lines[p.Line+2:]...)
	return p, nil
}

// Clear resets the buffer to a single empty line.
func (b *Buffer) Clear() Position {
	b.lines = []string{""}
	return Position{}
}
