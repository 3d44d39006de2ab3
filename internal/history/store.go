package history

import (
	"errors"
)

// DefaultLimit is the number of snapshots kept when no limit is configured.
const DefaultLimit = 50

var (
	// ErrNothingToUndo is returned by Undo at the oldest retained snapshot.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo at the newest snapshot.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Store is a linear undo/redo log of at most Limit snapshots.
//
// Committing while not at the newest entry discards everything after the
// current index. When the log is full the oldest entry is evicted and the
// just-committed snapshot stays current.
//
// Store is not safe for concurrent use.
type Store struct {
	entries []Snapshot
	index   int
	limit   int
}

// NewStore returns an empty store keeping at most limit snapshots.
// A limit below 1 uses DefaultLimit.
func NewStore(limit int) *Store {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Store{
		entries: make([]Snapshot, 0, limit),
		index:   -1,
		limit:   limit,
	}
}

// Commit appends snap after the current entry and makes it current.
func (s *Store) Commit(snap Snapshot) {
	// Drop the redo branch.
	s.entries = s.entries[:s.index+1]
	s.entries = append(s.entries, snap)

	if len(s.entries) > s.limit {
		// Shift into a fresh slice so evicted snapshots can be collected.
		kept := make([]Snapshot, len(s.entries)-1, s.limit)
		copy(kept, s.entries[1:])
		s.entries = kept
	}
	s.index = len(s.entries) - 1
}

// Undo steps back one entry and returns the snapshot that is now current.
func (s *Store) Undo() (Snapshot, error) {
	if !s.CanUndo() {
		return Snapshot{}, ErrNothingToUndo
	}
	s.index--
	return s.entries[s.index], nil
}

// Redo steps forward one entry and returns the snapshot that is now current.
func (s *Store) Redo() (Snapshot, error) {
	if !s.CanRedo() {
		return Snapshot{}, ErrNothingToRedo
	}
	s.index++
	return s.entries[s.index], nil
}

// Current returns the current snapshot, or the zero Snapshot when empty.
func (s *Store) Current() Snapshot {
	if s.index < 0 {
		return Snapshot{}
	}
	return s.entries[s.index]
}

// CanUndo reports whether Undo would succeed.
func (s *Store) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether Redo would succeed.
func (s *Store) CanRedo() bool { return s.index < len(s.entries)-1 }

// Len returns the number of retained snapshots.
func (s *Store) Len() int { return len(s.entries) }

// Index returns the position of the current snapshot, -1 when empty.
func (s *Store) Index() int { return s.index }

// Limit returns the maximum number of retained snapshots.
func (s *Store) Limit() int { return s.limit }
