package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ErrCorrupt is returned by Decode for unreadable history data.
var ErrCorrupt = errors.New("history data is corrupt")

type wire struct {
	Capacity  int      `json:"capacity"`
	Cursor    int      `json:"cursor"`
	Snapshots [][]byte `json:"snapshots"`
}

// Encode serializes the stack as zstd-compressed JSON.
func (s *Stack) Encode() ([]byte, error) {
	w := wire{Capacity: s.capacity, Cursor: s.cursor, Snapshots: make([][]byte, len(s.entries))}
	for i, e := range s.entries {
		w.Snapshots[i] = e.snapshot
	}
	raw, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}

	var compressed bytes.Buffer
	encoder, err := zstd.NewWriter(&compressed)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	if _, err := encoder.Write(raw); err != nil {
		encoder.Close()
		return nil, fmt.Errorf("compressing: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("finalizing compression: %w", err)
	}
	return compressed.Bytes(), nil
}

// Decode restores a stack written by Encode. A capacity greater than zero
// overrides the stored one, trimming the oldest snapshots when needed.
func Decode(data []byte, capacity int) (*Stack, error) {
	decoder, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(w.Snapshots) == 0 {
		if w.Cursor != -1 {
			return nil, fmt.Errorf("%w: cursor %d on empty history", ErrCorrupt, w.Cursor)
		}
	} else if w.Cursor < 0 || w.Cursor >= len(w.Snapshots) {
		return nil, fmt.Errorf("%w: cursor %d out of range", ErrCorrupt, w.Cursor)
	}

	if capacity < 1 {
		capacity = w.Capacity
	}
	s := New(capacity)
	for _, snap := range w.Snapshots {
		s.entries = append(s.entries, newEntry(snap))
	}
	s.cursor = w.Cursor
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = s.entries[over:]
		s.cursor -= over
		if s.cursor < 0 {
			s.cursor = 0
		}
	}
	return s, nil
}
