// Package history keeps a bounded, cursor-addressed list of graph snapshots
// for undo and redo.
package history

import (
	"bytes"

	"lukechampine.com/blake3"
)

// DefaultCapacity is the number of snapshots retained.
const DefaultCapacity = 50

type entry struct {
	snapshot []byte
	digest   [32]byte
}

func newEntry(blob []byte) entry {
	return entry{
		snapshot: bytes.Clone(blob),
		digest:   blake3.Sum256(blob),
	}
}

// Stack is an undo/redo list of immutable snapshots. The cursor points at
// the snapshot matching the live graph.
type Stack struct {
	entries  []entry
	cursor   int
	capacity int
}

// New returns an empty stack holding at most capacity snapshots.
func New(capacity int) *Stack {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity, cursor: -1}
}

// Seed records the initial state. It only has an effect on an empty stack.
func (s *Stack) Seed(blob []byte) bool {
	if len(s.entries) > 0 {
		return false
	}
	s.entries = append(s.entries, newEntry(blob))
	s.cursor = 0
	return true
}

// Record appends a snapshot after the cursor, discarding any redo branch.
// A snapshot equal to the one at the cursor is skipped. It reports whether
// the snapshot was stored.
func (s *Stack) Record(blob []byte) bool {
	e := newEntry(blob)
	if s.cursor >= 0 && s.entries[s.cursor].digest == e.digest {
		return false
	}

	s.entries = append(s.entries[:s.cursor+1], e)
	s.cursor++

	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = append([]entry(nil), s.entries[over:]...)
		s.cursor -= over
	}
	return true
}

// Undo moves the cursor back one and returns that snapshot.
func (s *Stack) Undo() ([]byte, bool) {
	if !s.CanUndo() {
		return nil, false
	}
	s.cursor--
	return s.entries[s.cursor].snapshot, true
}

// Redo moves the cursor forward one and returns that snapshot.
func (s *Stack) Redo() ([]byte, bool) {
	if !s.CanRedo() {
		return nil, false
	}
	s.cursor++
	return s.entries[s.cursor].snapshot, true
}

// CanUndo reports whether an older snapshot exists.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether a newer snapshot exists.
func (s *Stack) CanRedo() bool { return s.cursor >= 0 && s.cursor < len(s.entries)-1 }

// Len returns the number of retained snapshots.
func (s *Stack) Len() int { return len(s.entries) }

// Cursor returns the index of the current snapshot, or -1 when empty.
func (s *Stack) Cursor() int { return s.cursor }

// Capacity returns the retention limit.
func (s *Stack) Capacity() int { return s.capacity }

// Current returns the snapshot at the cursor.
func (s *Stack) Current() ([]byte, bool) {
	if s.cursor < 0 {
		return nil, false
	}
	return s.entries[s.cursor].snapshot, true
}
