package editor

import (
	"fmt"
	"strings"

	"github.com/zjrosen/scribe/internal/document"
)

// Status is the summary shown in a status bar.
type Status struct {
	// Line and Column are 1-based.
	Line       int
	Column     int
	Words      int
	Characters int
}

func (s Status) String() string {
	return fmt.Sprintf("Line %d, Column %d | %d words, %d characters",
		s.Line, s.Column, s.Words, s.Characters)
}

// Status computes the status for the current document. Characters are
// grapheme clusters of the text joined with newlines, so each line break
// counts as one.
func (c *Controller) Status() Status {
	lines := c.buf.Lines()
	return Status{
		Line:       c.cursor.Line + 1,
		Column:     c.cursor.Column + 1,
		Words:      len(strings.Fields(strings.Join(lines, " "))),
		Characters: document.GraphemeCount(strings.Join(lines, "\n")),
	}
}
