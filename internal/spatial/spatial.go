// Package spatial resolves world-space points to steps and connections.
package spatial

import (
	"math"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/viewport"
)

// Metrics sizes the hit areas.
type Metrics struct {
	NodeWidth  float64
	NodeHeight float64
	// EdgeRadius trims each connection at both ends so clicks near a step
	// hit the step rather than the line.
	EdgeRadius float64
	// EdgeThreshold is the pick distance in screen pixels.
	EdgeThreshold float64
}

// DefaultMetrics matches the drawn step size.
func DefaultMetrics() Metrics {
	return Metrics{
		NodeWidth:     200,
		NodeHeight:    75,
		EdgeRadius:    40,
		EdgeThreshold: 5,
	}
}

// Tester answers hit queries against a graph.
type Tester struct {
	m Metrics
}

// New creates a Tester. Zero fields fall back to DefaultMetrics.
func New(m Metrics) *Tester {
	d := DefaultMetrics()
	if m.NodeWidth <= 0 {
		m.NodeWidth = d.NodeWidth
	}
	if m.NodeHeight <= 0 {
		m.NodeHeight = d.NodeHeight
	}
	if m.EdgeRadius <= 0 {
		m.EdgeRadius = d.EdgeRadius
	}
	if m.EdgeThreshold <= 0 {
		m.EdgeThreshold = d.EdgeThreshold
	}
	return &Tester{m: m}
}

// Metrics returns the hit metrics in use.
func (t *Tester) Metrics() Metrics { return t.m }

// NodeAt returns the topmost step whose rectangle contains (x, y). Later
// steps are drawn above earlier ones, so the search runs newest first.
func (t *Tester) NodeAt(g *graph.Graph, x, y float64) (graph.Node, bool) {
	nodes := g.Nodes()
	hw, hh := t.m.NodeWidth/2, t.m.NodeHeight/2
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if x >= n.X-hw && x <= n.X+hw && y >= n.Y-hh && y <= n.Y+hh {
			return n, true
		}
	}
	return graph.Node{}, false
}

// EdgeAt returns the first connection, in edge-list order, whose trimmed
// segment lies within the pick threshold of (x, y). The threshold is given
// in screen pixels and divided by zoom so the pick band has the same
// on-screen width at every zoom level.
func (t *Tester) EdgeAt(g *graph.Graph, x, y, zoom float64) (graph.Edge, bool) {
	if zoom <= 0 {
		zoom = 1
	}
	threshold := t.m.EdgeThreshold / zoom
	for _, e := range g.Edges() {
		x1, y1, x2, y2, ok := t.segment(g, e)
		if !ok {
			continue
		}
		if DistanceToSegment(x, y, x1, y1, x2, y2) <= threshold {
			return e, true
		}
	}
	return graph.Edge{}, false
}

// segment returns the connection line between two step centers pulled in
// by EdgeRadius at both ends.
func (t *Tester) segment(g *graph.Graph, e graph.Edge) (x1, y1, x2, y2 float64, ok bool) {
	src, ok1 := g.Node(e.Source)
	dst, ok2 := g.Node(e.Target)
	if !ok1 || !ok2 {
		return 0, 0, 0, 0, false
	}
	dx, dy := dst.X-src.X, dst.Y-src.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0, 0, 0, false
	}
	nx, ny := dx/length, dy/length
	r := t.m.EdgeRadius
	return src.X + nx*r, src.Y + ny*r, dst.X - nx*r, dst.Y - ny*r, true
}

// DistanceToSegment returns the distance from (px, py) to the segment
// (x1, y1)-(x2, y2), projecting onto the line and clamping to the ends.
func DistanceToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	cx, cy := x2-x1, y2-y1
	lenSq := cx*cx + cy*cy

	param := -1.0
	if lenSq != 0 {
		param = ((px-x1)*cx + (py-y1)*cy) / lenSq
	}

	var xx, yy float64
	switch {
	case param < 0:
		xx, yy = x1, y1
	case param > 1:
		xx, yy = x2, y2
	default:
		xx, yy = x1+param*cx, y1+param*cy
	}
	return math.Hypot(px-xx, py-yy)
}

// NodesIn returns the steps whose centers lie inside r, in store order.
func NodesIn(g *graph.Graph, r viewport.Rect) []graph.Node {
	var out []graph.Node
	for _, n := range g.Nodes() {
		if r.Contains(n.X, n.Y) {
			out = append(out, n)
		}
	}
	return out
}
