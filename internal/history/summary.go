package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change counts the characters that differ between two snapshots.
type Change struct {
	Inserted int
	Deleted  int
}

// IsZero reports whether the text did not change.
func (c Change) IsZero() bool {
	return c.Inserted == 0 && c.Deleted == 0
}

func (c Change) String() string {
	return fmt.Sprintf("+%d -%d", c.Inserted, c.Deleted)
}

// Summarize diffs the text of from against to.
func Summarize(from, to Snapshot) Change {
	a, b := from.Text(), to.Text()
	if a == b {
		return Change{}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)

	var c Change
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			c.Inserted += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			c.Deleted += utf8.RuneCountInString(d.Text)
		}
	}
	return c
}
