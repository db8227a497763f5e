package selection

import (
	"testing"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/viewport"
	"github.com/stretchr/testify/assert"
)

func TestClickNodeReplaces(t *testing.T) {
	s := New()
	s.ClickNode(1, false)
	s.ClickNode(2, false)

	assert.Equal(t, []graph.NodeID{2}, s.IDs())
	p, ok := s.Primary()
	assert.True(t, ok)
	assert.Equal(t, graph.NodeID(2), p)
}

func TestClickNodeToggle(t *testing.T) {
	s := New()
	s.ClickNode(1, false)
	s.ClickNode(3, true)
	s.ClickNode(2, true)
	assert.Equal(t, []graph.NodeID{1, 2, 3}, s.IDs())

	s.ClickNode(1, true)
	assert.Equal(t, []graph.NodeID{2, 3}, s.IDs())
	assert.False(t, s.Has(1))
}

func TestClickSelectedNodeKeepsGroup(t *testing.T) {
	s := New()
	s.SetMarquee([]graph.NodeID{4, 5, 6})
	s.ClickNode(5, false)

	assert.Equal(t, 3, s.Len())
	p, _ := s.Primary()
	assert.Equal(t, graph.NodeID(5), p)
}

func TestEdgeAndNodeSelectionExclusive(t *testing.T) {
	s := New()
	s.ClickNode(1, false)
	s.ClickEdge(graph.Edge{Source: 1, Target: 2})

	assert.Zero(t, s.Len())
	_, ok := s.Primary()
	assert.False(t, ok)
	e, ok := s.Edge()
	assert.True(t, ok)
	assert.Equal(t, graph.Edge{Source: 1, Target: 2}, e)

	s.ClickNode(2, false)
	_, ok = s.Edge()
	assert.False(t, ok)
}

func TestMarqueeSetsFirstAsPrimary(t *testing.T) {
	s := New()
	s.ClickEdge(graph.Edge{Source: 1, Target: 2})
	s.SetMarquee([]graph.NodeID{7, 3})

	p, ok := s.Primary()
	assert.True(t, ok)
	assert.Equal(t, graph.NodeID(7), p)
	_, ok = s.Edge()
	assert.False(t, ok)

	s.SetMarquee(nil)
	assert.Zero(t, s.Len())
	_, ok = s.Primary()
	assert.False(t, ok)
}

func TestPrune(t *testing.T) {
	s := New()
	s.SetMarquee([]graph.NodeID{1, 2, 3})
	s.Prune(func(id graph.NodeID) bool { return id != 1 }, func(graph.Edge) bool { return true })

	assert.Equal(t, []graph.NodeID{2, 3}, s.IDs())
	_, ok := s.Primary()
	assert.False(t, ok, "primary step was removed")

	s.ClickEdge(graph.Edge{Source: 2, Target: 3})
	s.Prune(func(graph.NodeID) bool { return true }, func(graph.Edge) bool { return false })
	_, ok = s.Edge()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	s := New()
	s.ClickNode(1, false)
	s.Clear()
	assert.Zero(t, s.Len())
	_, ok := s.Primary()
	assert.False(t, ok)
}

func TestMarqueeRectNormalised(t *testing.T) {
	m := Marquee{StartX: 100, StartY: 50, EndX: -20, EndY: 80}
	assert.Equal(t, viewport.Rect{MinX: -20, MinY: 50, MaxX: 100, MaxY: 80}, m.Rect())
}
