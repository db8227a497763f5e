package history

import (
	"fmt"
	"testing"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(i int) []byte { return []byte(fmt.Sprintf("state-%d", i)) }

func TestSeedOnlyOnce(t *testing.T) {
	s := New(5)
	assert.True(t, s.Seed(snap(0)))
	assert.False(t, s.Seed(snap(1)))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Cursor())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestRecordSkipsDuplicate(t *testing.T) {
	s := New(5)
	s.Seed(snap(0))
	assert.False(t, s.Record(snap(0)))
	assert.True(t, s.Record(snap(1)))
	assert.False(t, s.Record(snap(1)))
	assert.Equal(t, 2, s.Len())
}

func TestUndoRedoWalk(t *testing.T) {
	s := New(10)
	s.Seed(snap(0))
	for i := 1; i <= 4; i++ {
		require.True(t, s.Record(snap(i)))
	}

	for i := 3; i >= 0; i-- {
		blob, ok := s.Undo()
		require.True(t, ok)
		assert.Equal(t, snap(i), blob)
	}
	_, ok := s.Undo()
	assert.False(t, ok, "undo past the oldest snapshot is a no-op")

	for i := 1; i <= 4; i++ {
		blob, ok := s.Redo()
		require.True(t, ok)
		assert.Equal(t, snap(i), blob)
	}
	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestRecordTruncatesRedoBranch(t *testing.T) {
	s := New(10)
	s.Seed(snap(0))
	s.Record(snap(1))
	s.Record(snap(2))
	s.Undo()
	s.Undo()

	require.True(t, s.Record(snap(9)))
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.CanRedo())
	cur, _ := s.Current()
	assert.Equal(t, snap(9), cur)
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := New(DefaultCapacity)
	s.Seed(snap(0))
	for i := 1; i <= 60; i++ {
		s.Record(snap(i))
	}
	assert.Equal(t, DefaultCapacity, s.Len())
	assert.Equal(t, DefaultCapacity-1, s.Cursor())

	var last []byte
	for s.CanUndo() {
		last, _ = s.Undo()
	}
	assert.Equal(t, snap(11), last, "oldest retained snapshot")
	_, ok := s.Undo()
	assert.False(t, ok)
}

func TestEncodeDecode(t *testing.T) {
	s := New(8)
	s.Seed(snap(0))
	s.Record(snap(1))
	s.Record(snap(2))
	s.Undo()

	data, err := s.Encode()
	require.NoError(t, err)

	got, err := Decode(data, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Capacity())
	assert.Equal(t, 3, got.Len())
	assert.Equal(t, 1, got.Cursor())
	assert.True(t, got.CanRedo())
	assert.False(t, got.Record(snap(1)), "digests survive the round trip")

	trimmed, err := Decode(data, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, trimmed.Len())
	assert.Equal(t, 0, trimmed.Cursor())
}

func TestDecodeEmptyStack(t *testing.T) {
	data, err := New(3).Encode()
	require.NoError(t, err)
	got, err := Decode(data, 0)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
	assert.Equal(t, -1, got.Cursor())
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode([]byte("not zstd at all"), 0)
	assert.Error(t, err)
}

func TestRecorderFollowsGraph(t *testing.T) {
	g := graph.New()
	r, err := NewRecorder(g, New(DefaultCapacity))
	require.NoError(t, err)
	defer r.Close()

	var recorded int
	r.OnRecord = func() { recorded++ }

	a := g.AddNode(0, 0, "A")
	b := g.AddNode(100, 0, "B")
	require.NoError(t, g.AddEdge(a.ID, b.ID))
	assert.Equal(t, 3, recorded)
	assert.Equal(t, 4, r.Stack().Len())

	before, _ := g.Serialize()
	ok, err := r.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, g.Edges())
	assert.Equal(t, 4, r.Stack().Len(), "replay must not be recorded")

	ok, err = r.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	after, _ := g.Serialize()
	assert.Equal(t, before, after)
}

func TestRecorderUndoAllRedoAll(t *testing.T) {
	g := graph.New()
	r, err := NewRecorder(g, New(DefaultCapacity))
	require.NoError(t, err)

	var states [][]byte
	s0, _ := g.Serialize()
	states = append(states, s0)
	for i := 0; i < 5; i++ {
		g.AddNode(float64(i*10), 0, fmt.Sprintf("n%d", i))
		s, _ := g.Serialize()
		states = append(states, s)
	}

	for i := 4; i >= 0; i-- {
		_, err := r.Undo()
		require.NoError(t, err)
		cur, _ := g.Serialize()
		assert.Equal(t, states[i], cur)
	}
	ok, _ := r.Undo()
	assert.False(t, ok)

	for i := 1; i <= 5; i++ {
		_, err := r.Redo()
		require.NoError(t, err)
		cur, _ := g.Serialize()
		assert.Equal(t, states[i], cur)
	}
}

func TestRecorderIgnoresGestureUntilSettle(t *testing.T) {
	g := graph.New()
	a := g.AddNode(0, 0, "A")
	r, err := NewRecorder(g, New(DefaultCapacity))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		g.Translate([]graph.NodeID{a.ID}, 1, 1, graph.Gesture)
	}
	assert.Equal(t, 1, r.Stack().Len())

	g.Settle()
	assert.Equal(t, 2, r.Stack().Len(), "a drag is one history entry")

	g.Settle()
	assert.Equal(t, 2, r.Stack().Len(), "settling without movement records nothing")

	r.Close()
	g.AddNode(1, 1, "B")
	assert.Equal(t, 2, r.Stack().Len())
}
