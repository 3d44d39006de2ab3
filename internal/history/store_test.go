package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/format"
)

func snap(text string) Snapshot {
	return NewSnapshot([]string{text}, document.Position{}, format.Default())
}

func TestNewStore_DefaultLimit(t *testing.T) {
	require.Equal(t, DefaultLimit, NewStore(0).Limit())
	require.Equal(t, DefaultLimit, NewStore(-3).Limit())
	require.Equal(t, 7, NewStore(7).Limit())
}

func TestStore_Empty(t *testing.T) {
	s := NewStore(5)
	require.Equal(t, 0, s.Len())
	require.Equal(t, -1, s.Index())
	require.True(t, s.Current().IsZero())
	require.False(t, s.CanUndo())
	require.False(t, s.CanRedo())

	_, err := s.Undo()
	require.ErrorIs(t, err, ErrNothingToUndo)
	_, err = s.Redo()
	require.ErrorIs(t, err, ErrNothingToRedo)
}

func TestStore_UndoRedo(t *testing.T) {
	s := NewStore(10)
	s.Commit(snap(""))
	s.Commit(snap("a"))
	s.Commit(snap("ab"))

	got, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "a", got.Text())

	got, err = s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "", got.Text())

	_, err = s.Undo()
	require.ErrorIs(t, err, ErrNothingToUndo, "the first snapshot is never undone")
	assert.Equal(t, 0, s.Index())

	got, err = s.Redo()
	require.NoError(t, err)
	assert.Equal(t, "a", got.Text())

	got, err = s.Redo()
	require.NoError(t, err)
	assert.Equal(t, "ab", got.Text())

	_, err = s.Redo()
	require.ErrorIs(t, err, ErrNothingToRedo)
}

func TestStore_CommitDiscardsRedoBranch(t *testing.T) {
	s := NewStore(10)
	s.Commit(snap(""))
	s.Commit(snap("a"))
	s.Commit(snap("ab"))

	_, err := s.Undo()
	require.NoError(t, err)
	_, err = s.Undo()
	require.NoError(t, err)

	s.Commit(snap("x"))
	require.Equal(t, 2, s.Len())
	require.Equal(t, 1, s.Index())
	require.False(t, s.CanRedo())
	require.Equal(t, "x", s.Current().Text())
}

func TestStore_EvictsOldest(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 5; i++ {
		s.Commit(snap(fmt.Sprint(i)))
	}

	require.Equal(t, 3, s.Len())
	require.Equal(t, 2, s.Index())
	require.Equal(t, "4", s.Current().Text())

	got, err := s.Undo()
	require.NoError(t, err)
	require.Equal(t, "3", got.Text())
	got, err = s.Undo()
	require.NoError(t, err)
	require.Equal(t, "2", got.Text())
	_, err = s.Undo()
	require.ErrorIs(t, err, ErrNothingToUndo)
}

func TestStore_DefaultLimitEviction(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 60; i++ {
		s.Commit(snap(fmt.Sprint(i)))
	}
	require.Equal(t, 50, s.Len())
	require.Equal(t, 49, s.Index())
	require.Equal(t, "59", s.Current().Text())
}

func TestStore_CurrentKeepsIdentity(t *testing.T) {
	s := NewStore(5)
	s.Commit(snap("a"))
	s.Commit(snap("b"))
	id := s.Current().ID

	_, err := s.Undo()
	require.NoError(t, err)
	_, err = s.Redo()
	require.NoError(t, err)
	require.Equal(t, id, s.Current().ID)
}

func TestSnapshot_DeepCopies(t *testing.T) {
	lines := []string{"one", "two"}
	sn := NewSnapshot(lines, document.Position{Line: 1, Column: 2}, format.Default())

	lines[0] = "mutated"
	require.Equal(t, []string{"one", "two"}, sn.Lines())

	out := sn.Lines()
	out[1] = "mutated"
	require.Equal(t, []string{"one", "two"}, sn.Lines())
	require.Equal(t, document.Position{Line: 1, Column: 2}, sn.Cursor())
	require.Equal(t, "one\ntwo", sn.Text())
}

func TestSnapshot_SameContent(t *testing.T) {
	a := snap("x")
	b := snap("x")
	require.NotEqual(t, a.ID, b.ID)
	require.True(t, a.SameContent(b))

	f := format.Default()
	f.Bold = true
	c := NewSnapshot([]string{"x"}, document.Position{}, f)
	require.False(t, a.SameContent(c))
}

// TestProperty_StoreMatchesModel drives the store with random commits, undos
// and redos and compares it against a plain slice model.
func TestProperty_StoreMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 8).Draw(t, "limit")
		s := NewStore(limit)

		var model []string
		idx := -1
		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				text := fmt.Sprint(i)
				s.Commit(snap(text))
				model = append(model[:idx+1], text)
				if len(model) > limit {
					model = model[1:]
				}
				idx = len(model) - 1
			case 1:
				_, err := s.Undo()
				if idx > 0 {
					require.NoError(t, err)
					idx--
				} else {
					require.ErrorIs(t, err, ErrNothingToUndo)
				}
			case 2:
				_, err := s.Redo()
				if idx < len(model)-1 {
					require.NoError(t, err)
					idx++
				} else {
					require.ErrorIs(t, err, ErrNothingToRedo)
				}
			}

			require.LessOrEqual(t, s.Len(), limit)
			require.Equal(t, len(model), s.Len())
			require.Equal(t, idx, s.Index())
			if idx >= 0 {
				require.Equal(t, model[idx], s.Current().Text())
			}
		}
	})
}
