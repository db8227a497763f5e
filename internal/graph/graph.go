// Package graph owns the step graph: nodes placed on the canvas and the
// directed connections between them. The graph is kept acyclic at all times.
package graph

import (
	"fmt"
	"math"
	"sort"
)

// NodeID identifies a step. IDs are positive and never reused.
type NodeID int

// Node is a step on the canvas. X and Y are the world-space center.
type Node struct {
	ID   NodeID  `json:"id" yaml:"id"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Text string  `json:"text" yaml:"text"`
}

// Edge is a directed connection from Source to Target.
type Edge struct {
	Source NodeID `json:"source" yaml:"source"`
	Target NodeID `json:"target" yaml:"target"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%d -> %d", e.Source, e.Target)
}

// Graph is the single owner of the node and edge collections. Every
// mutation goes through its methods and is announced to subscribers.
type Graph struct {
	nodes  map[NodeID]*Node
	order  []NodeID // ascending id, which is also insertion order
	edges  []Edge
	nextID NodeID
	// issued is the highest id handed out this session. It is not part of
	// the serialized state, so undo restores nextID exactly.
	issued NodeID

	subs   []subscription
	subSeq int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:  make(map[NodeID]*Node),
		edges:  make([]Edge, 0),
		nextID: 1,
	}
}

// ─── Read ───

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Has reports whether a node with the given id exists.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns copies of every node in store order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.nodes[id])
	}
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// NextNodeID returns the serialized id counter. After an undo, AddNode may
// issue a higher id than this so that no id is handed out twice.
func (g *Graph) NextNodeID() NodeID { return g.nextID }

// HasEdge reports whether the exact ordered pair exists.
func (g *Graph) HasEdge(source, target NodeID) bool {
	for _, e := range g.edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

// Outgoing returns the targets of id's outgoing edges in edge-list order.
func (g *Graph) Outgoing(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range g.edges {
		if e.Source == id {
			out = append(out, e.Target)
		}
	}
	return out
}

// Bounds returns the bounding box of every node center.
func (g *Graph) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(g.order) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, id := range g.order {
		n := g.nodes[id]
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY, true
}

// ─── Nodes ───

// AddNode creates a step at (x, y) and returns it. It always succeeds.
func (g *Graph) AddNode(x, y float64, text string) Node {
	id := g.nextID
	if id <= g.issued {
		id = g.issued + 1
	}
	n := &Node{ID: id, X: x, Y: y, Text: text}
	g.nextID = id + 1
	g.issued = id
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	g.emit(Change{Op: OpAddNode, Origin: UserEdit, Nodes: []NodeID{n.ID}})
	return *n
}

// UpdateNodeText replaces the text of a step. Unknown ids are ignored.
func (g *Graph) UpdateNodeText(id NodeID, text string) {
	n, ok := g.nodes[id]
	if !ok || n.Text == text {
		return
	}
	n.Text = text
	g.emit(Change{Op: OpUpdateText, Origin: UserEdit, Nodes: []NodeID{id}})
}

// MoveNode sets the position of a step. Unknown ids are ignored.
func (g *Graph) MoveNode(id NodeID, x, y float64) {
	n, ok := g.nodes[id]
	if !ok || !finite(x, y) {
		return
	}
	if n.X == x && n.Y == y {
		return
	}
	n.X, n.Y = x, y
	g.emit(Change{Op: OpMoveNodes, Origin: UserEdit, Nodes: []NodeID{id}})
}

// Translate moves every listed step by the same delta. Drags report each
// step with the Gesture origin and finish with Settle.
func (g *Graph) Translate(ids []NodeID, dx, dy float64, origin Origin) {
	if (dx == 0 && dy == 0) || !finite(dx, dy) {
		return
	}
	var moved []NodeID
	seen := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		n, ok := g.nodes[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		n.X += dx
		n.Y += dy
		moved = append(moved, id)
	}
	if len(moved) == 0 {
		return
	}
	g.emit(Change{Op: OpMoveNodes, Origin: origin, Nodes: moved})
}

// Settle closes a drag gesture so observers can commit its final state.
func (g *Graph) Settle() {
	g.emit(Change{Op: OpSettle, Origin: UserEdit})
}

// RemoveNode deletes a step and every edge touching it.
func (g *Graph) RemoveNode(id NodeID) {
	g.RemoveNodes(id)
}

// RemoveNodes deletes several steps and their edges as one mutation and
// returns how many steps were removed.
func (g *Graph) RemoveNodes(ids ...NodeID) int {
	doomed := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		if _, ok := g.nodes[id]; ok {
			doomed[id] = true
		}
	}
	if len(doomed) == 0 {
		return 0
	}

	removed := make([]NodeID, 0, len(doomed))
	order := g.order[:0]
	for _, id := range g.order {
		if doomed[id] {
			delete(g.nodes, id)
			removed = append(removed, id)
			continue
		}
		order = append(order, id)
	}
	g.order = order

	// Cascade: drop every edge with a removed endpoint
	edges := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if !doomed[e.Source] && !doomed[e.Target] {
			edges = append(edges, e)
		}
	}
	g.edges = edges

	g.emit(Change{Op: OpRemoveNodes, Origin: UserEdit, Nodes: removed})
	return len(removed)
}

// ─── Edges ───

// AddEdge connects source to target. The edge is rejected when it is a
// self-loop, a duplicate, references an unknown step, or closes a cycle.
func (g *Graph) AddEdge(source, target NodeID) error {
	if source == target {
		return ErrSelfLoop
	}
	if !g.Has(source) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, source)
	}
	if !g.Has(target) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, target)
	}
	if g.HasEdge(source, target) {
		return ErrDuplicateEdge
	}

	candidate := make([]Edge, len(g.edges), len(g.edges)+1)
	copy(candidate, g.edges)
	e := Edge{Source: source, Target: target}
	candidate = append(candidate, e)
	if WouldCreateCycle(candidate, source, target) {
		return ErrWouldCreateCycle
	}

	g.edges = candidate
	g.emit(Change{Op: OpAddEdge, Origin: UserEdit, Edge: e})
	return nil
}

// RemoveEdge deletes the exact pair if present and reports whether it did.
func (g *Graph) RemoveEdge(source, target NodeID) bool {
	for i, e := range g.edges {
		if e.Source == source && e.Target == target {
			g.edges = append(g.edges[:i:i], g.edges[i+1:]...)
			g.emit(Change{Op: OpRemoveEdge, Origin: UserEdit, Edge: e})
			return true
		}
	}
	return false
}

// ─── Whole-graph replacement ───

// Replace swaps the entire graph for a decoded state. The state has already
// been validated by Decode, so the swap cannot fail half-way.
func (g *Graph) Replace(s *State, origin Origin) {
	nodes := make(map[NodeID]*Node, len(s.nodes))
	order := make([]NodeID, 0, len(s.nodes))
	for _, n := range s.nodes {
		n := n
		nodes[n.ID] = &n
		order = append(order, n.ID)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	g.nodes = nodes
	g.order = order
	g.edges = append(make([]Edge, 0, len(s.edges)), s.edges...)
	g.nextID = s.next
	if s.next-1 > g.issued {
		g.issued = s.next - 1
	}
	g.emit(Change{Op: OpReplace, Origin: origin})
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
