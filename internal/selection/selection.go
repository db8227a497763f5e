// Package selection tracks which steps and which connection are selected.
package selection

import (
	"math"
	"sort"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/viewport"
)

// Set is the current selection: any number of steps with one primary step,
// or a single connection. Selecting a connection clears the steps and
// clicking a step clears the connection.
type Set struct {
	ids     map[graph.NodeID]bool
	primary graph.NodeID
	edge    *graph.Edge
}

// New returns an empty selection.
func New() *Set {
	return &Set{ids: make(map[graph.NodeID]bool)}
}

// Clear drops every selected step and the selected connection.
func (s *Set) Clear() {
	s.ids = make(map[graph.NodeID]bool)
	s.primary = 0
	s.edge = nil
}

// ClickNode applies a click on a step. With toggle the step's membership
// flips; without it the selection becomes just that step unless the step
// is already selected, in which case the group is kept so it can be
// dragged together. The clicked step always becomes primary.
func (s *Set) ClickNode(id graph.NodeID, toggle bool) {
	switch {
	case toggle && s.ids[id]:
		delete(s.ids, id)
	case toggle:
		s.ids[id] = true
	case !s.ids[id]:
		s.ids = map[graph.NodeID]bool{id: true}
	}
	s.primary = id
	s.edge = nil
}

// Select replaces the selection with a single step.
func (s *Set) Select(id graph.NodeID) {
	s.ids = map[graph.NodeID]bool{id: true}
	s.primary = id
	s.edge = nil
}

// ClickEdge selects a connection and clears the step selection.
func (s *Set) ClickEdge(e graph.Edge) {
	s.ids = make(map[graph.NodeID]bool)
	s.primary = 0
	s.edge = &e
}

// SetMarquee replaces the selection with the steps inside a marquee. ids
// must be in store order; the first becomes primary. An empty result keeps
// no primary.
func (s *Set) SetMarquee(ids []graph.NodeID) {
	s.ids = make(map[graph.NodeID]bool, len(ids))
	for _, id := range ids {
		s.ids[id] = true
	}
	s.primary = 0
	if len(ids) > 0 {
		s.primary = ids[0]
		s.edge = nil
	}
}

// Has reports whether a step is selected.
func (s *Set) Has(id graph.NodeID) bool { return s.ids[id] }

// Len returns the number of selected steps.
func (s *Set) Len() int { return len(s.ids) }

// IDs returns the selected step ids in ascending order.
func (s *Set) IDs() []graph.NodeID {
	out := make([]graph.NodeID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Primary returns the focused step, if any.
func (s *Set) Primary() (graph.NodeID, bool) {
	return s.primary, s.primary != 0
}

// Edge returns the selected connection, if any.
func (s *Set) Edge() (graph.Edge, bool) {
	if s.edge == nil {
		return graph.Edge{}, false
	}
	return *s.edge, true
}

// ClearEdge deselects the connection only.
func (s *Set) ClearEdge() { s.edge = nil }

// Prune drops references to steps and connections that no longer exist,
// for use after deletions, undo or import.
func (s *Set) Prune(exists func(graph.NodeID) bool, hasEdge func(graph.Edge) bool) {
	for id := range s.ids {
		if !exists(id) {
			delete(s.ids, id)
		}
	}
	if s.primary != 0 && !exists(s.primary) {
		s.primary = 0
	}
	if s.edge != nil && !hasEdge(*s.edge) {
		s.edge = nil
	}
}

// Marquee is a box-select rectangle in world space, anchored at the press
// point and grown to the current pointer.
type Marquee struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// Rect returns the marquee normalised so Min <= Max.
func (m Marquee) Rect() viewport.Rect {
	return viewport.Rect{
		MinX: math.Min(m.StartX, m.EndX),
		MinY: math.Min(m.StartY, m.EndY),
		MaxX: math.Max(m.StartX, m.EndX),
		MaxY: math.Max(m.StartY, m.EndY),
	}
}
