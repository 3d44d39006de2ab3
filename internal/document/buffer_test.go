package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewBuffer_EmptyTextHasOneLine(t *testing.T) {
	b := NewBuffer("")
	require.Equal(t, 1, b.Len())
	require.Equal(t, []string{""}, b.Lines())
}

func TestNewBuffer_NormalizesLineEndings(t *testing.T) {
	b := NewBuffer("one\r\ntwo\rthree")
	require.Equal(t, []string{"one", "two", "three"}, b.Lines())
}

func TestBuffer_InsertText(t *testing.T) {
	b := NewBuffer("herld")

	pos, err := b.InsertText(Position{Line: 0, Column: 2}, "llo wo")
	require.NoError(t, err)
	assert.Equal(t, "hello world", b.Line(0))
	assert.Equal(t, Position{Line: 0, Column: 8}, pos)
}

func TestBuffer_InsertText_Unicode(t *testing.T) {
	b := NewBuffer("héllo")

	pos, err := b.InsertText(Position{Line: 0, Column: 2}, "日本")
	require.NoError(t, err)
	assert.Equal(t, "hé日本llo", b.Line(0))
	assert.Equal(t, Position{Line: 0, Column: 4}, pos)
	assert.Equal(t, 7, b.LineLen(0))
}

func TestBuffer_InsertText_InvalidPosition(t *testing.T) {
	b := NewBuffer("abc")

	tests := []Position{
		{Line: 1, Column: 0},
		{Line: -1, Column: 0},
		{Line: 0, Column: 4},
		{Line: 0, Column: -1},
	}
	for _, p := range tests {
		_, err := b.InsertText(p, "x")
		require.ErrorIs(t, err, ErrInvalidPosition, "position %s", p)
	}
	require.Equal(t, []string{"abc"}, b.Lines(), "failed inserts must not mutate")
}

func TestBuffer_InsertText_RejectsLineBreaks(t *testing.T) {
	b := NewBuffer("abc")
	_, err := b.InsertText(Position{}, "x\ny")
	require.ErrorIs(t, err, ErrInvalidText)
	require.Equal(t, "abc", b.Text())
}

func TestBuffer_Insert_MultiLine(t *testing.T) {
	b := NewBuffer("start end\nnext")

	pos, err := b.Insert(Position{Line: 0, Column: 6}, "one\ntwo\nthree ")
	require.NoError(t, err)
	assert.Equal(t, []string{"start one", "two", "three end", "next"}, b.Lines())
	assert.Equal(t, Position{Line: 2, Column: 6}, pos)
}

func TestBuffer_SplitLine(t *testing.T) {
	b := NewBuffer("first\nhello world\nlast")

	pos, err := b.SplitLine(Position{Line: 1, Column: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "hello", " world", "last"}, b.Lines())
	assert.Equal(t, Position{Line: 2, Column: 0}, pos)
}

func TestBuffer_SplitLine_AtEnds(t *testing.T) {
	b := NewBuffer("abc")

	pos, err := b.SplitLine(Position{Line: 0, Column: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", ""}, b.Lines())
	assert.Equal(t, Position{Line: 1, Column: 0}, pos)

	pos, err = b.SplitLine(Position{Line: 0, Column: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "abc", ""}, b.Lines())
	assert.Equal(t, Position{Line: 1, Column: 0}, pos)
}

func TestBuffer_DeleteBackward_WithinLine(t *testing.T) {
	b := NewBuffer("abc")

	pos, err := b.DeleteBackward(Position{Line: 0, Column: 2})
	require.NoError(t, err)
	assert.Equal(t, "ac", b.Line(0))
	assert.Equal(t, Position{Line: 0, Column: 1}, pos)
}

func TestBuffer_DeleteBackward_JoinsLines(t *testing.T) {
	b := NewBuffer("ab\ncd\nef")

	pos, err := b.DeleteBackward(Position{Line: 1, Column: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"abcd", "ef"}, b.Lines())
	assert.Equal(t, Position{Line: 0, Column: 2}, pos)
}

func TestBuffer_DeleteBackward_AtOriginIsNoop(t *testing.T) {
	b := NewBuffer("abc\ndef")

	pos, err := b.DeleteBackward(Position{})
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def"}, b.Lines())
	assert.Equal(t, Position{}, pos)
}

func TestBuffer_DeleteBackward_RemovesWholeCluster(t *testing.T) {
	b := NewBuffer("aéz")

	pos, err := b.DeleteBackward(Position{Line: 0, Column: 2})
	require.NoError(t, err)
	assert.Equal(t, "az", b.Line(0))
	assert.Equal(t, Position{Line: 0, Column: 1}, pos)
}

func TestBuffer_DeleteForward(t *testing.T) {
	b := NewBuffer("abc\ndef")

	pos, err := b.DeleteForward(Position{Line: 0, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"ac", "def"}, b.Lines())
	assert.Equal(t, Position{Line: 0, Column: 1}, pos)

	pos, err = b.DeleteForward(Position{Line: 0, Column: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"acdef"}, b.Lines())
	assert.Equal(t, Position{Line: 0, Column: 2}, pos)

	pos, err = b.DeleteForward(Position{Line: 0, Column: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"acdef"}, b.Lines(), "delete at end of document is a no-op")
	assert.Equal(t, Position{Line: 0, Column: 5}, pos)
}

func TestBuffer_Clear(t *testing.T) {
	b := NewBuffer("a\nb\nc")
	pos := b.Clear()
	assert.Equal(t, Position{}, pos)
	assert.Equal(t, []string{""}, b.Lines())
}

func TestBuffer_LinesReturnsCopy(t *testing.T) {
	b := NewBuffer("abc")
	lines := b.Lines()
	lines[0] = "mutated"
	assert.Equal(t, "abc", b.Line(0))
}

func TestBuffer_SetLines(t *testing.T) {
	b := NewBuffer("abc")

	src := []string{"x", "y"}
	b.SetLines(src)
	src[0] = "mutated"
	assert.Equal(t, []string{"x", "y"}, b.Lines())

	b.SetLines(nil)
	assert.Equal(t, []string{""}, b.Lines())
}

// TestProperty_SplitThenBackspaceRoundTrips verifies that splitting a line and
// immediately deleting backward from the start of the new line restores the
// original line and column.
func TestProperty_SplitThenBackspaceRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringMatching(`[a-zA-Z0-9 é日]{0,20}`).Draw(t, "line")
		b := NewBuffer(line)
		col := rapid.IntRange(0, b.LineLen(0)).Draw(t, "col")

		split, err := b.SplitLine(Position{Line: 0, Column: col})
		require.NoError(t, err)
		require.Equal(t, 2, b.Len())

		back, err := b.DeleteBackward(split)
		require.NoError(t, err)
		require.Equal(t, []string{line}, b.Lines())
		require.Equal(t, Position{Line: 0, Column: col}, back)
	})
}

// TestProperty_EditsPreserveInvariants applies random edits and checks that
// the buffer is never empty and every returned position is valid.
func TestProperty_EditsPreserveInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,8}`), 1, 4).Draw(t, "initial")
		b := &Buffer{}
		b.SetLines(initial)
		pos := Position{}

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			var err error
			switch rapid.IntRange(0, 4).Draw(t, "op") {
			case 0:
				pos, err = b.InsertText(pos, rapid.StringMatching(`[a-z]{0,3}`).Draw(t, "text"))
			case 1:
				pos, err = b.SplitLine(pos)
			case 2:
				pos, err = b.DeleteBackward(pos)
			case 3:
				pos, err = b.DeleteForward(pos)
			case 4:
				pos = b.Clear()
			}
			require.NoError(t, err)
			require.GreaterOrEqual(t, b.Len(), 1)
			require.True(t, b.Contains(pos), "position %s out of bounds in %q", pos, b.Lines())
		}
	})
}
