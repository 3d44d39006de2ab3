package document

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Columns in a document are grapheme indices: the nth user-visible
// character of a line, never a byte offset. The helpers below translate
// between the two.

// GraphemeCount returns the number of grapheme clusters in s.
// For example: "hello" = 5, "héllo" = 5 whether é is precomposed or not.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Returns 0 for idx <= 0 and len(s) when idx is past the last cluster.
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}

	n := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		n++
		if n == idx {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// SliceByGraphemes returns the clusters in [start, end) as a string.
// Out-of-range bounds are clamped; an inverted range yields "".
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	from := GraphemeToByteOffset(s, start)
	to := GraphemeToByteOffset(s, end)
	if from >= len(s) {
		return ""
	}
	return s[from:to]
}

// splitAt splits s into the clusters before and after grapheme index idx.
func splitAt(s string, idx int) (before, after string) {
	off := GraphemeToByteOffset(s, idx)
	return s[:off], s[off:]
}

// containsLineBreak reports whether text would introduce a new line.
func containsLineBreak(text string) bool {
	return strings.ContainsAny(text, "\r\n")
}
