package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// document is the persisted and exported form of a graph.
type document struct {
	Nodes      map[string]*Node `json:"nodes" yaml:"nodes"`
	Edges      []*Edge          `json:"edges" yaml:"edges"`
	NextNodeID *NodeID          `json:"nextNodeId,omitempty" yaml:"nextNodeId,omitempty"`
}

// State is a decoded, validated graph that can be swapped in with Replace.
type State struct {
	nodes []Node
	edges []Edge
	next  NodeID
}

// Nodes returns the decoded steps in ascending id order.
func (s *State) Nodes() []Node { return append([]Node(nil), s.nodes...) }

// Edges returns the decoded connections in document order.
func (s *State) Edges() []Edge { return append([]Edge(nil), s.edges...) }

// NextNodeID returns the id counter carried by the document.
func (s *State) NextNodeID() NodeID { return s.next }

func (g *Graph) document() document {
	next := g.nextID
	doc := document{
		Nodes:      make(map[string]*Node, len(g.order)),
		Edges:      make([]*Edge, 0, len(g.edges)),
		NextNodeID: &next,
	}
	for _, id := range g.order {
		n := *g.nodes[id]
		doc.Nodes[strconv.Itoa(int(id))] = &n
	}
	for _, e := range g.edges {
		e := e
		doc.Edges = append(doc.Edges, &e)
	}
	return doc
}

// Serialize returns the compact JSON form used for persistence and history
// snapshots. Map keys are sorted by encoding/json, so equal graphs produce
// equal bytes.
func (g *Graph) Serialize() ([]byte, error) {
	return json.Marshal(g.document())
}

// Snapshot returns the current graph as a State without a round trip
// through JSON.
func (g *Graph) Snapshot() *State {
	return &State{nodes: g.Nodes(), edges: g.Edges(), next: g.nextID}
}

// Decode parses a JSON graph document and validates it. The live graph is
// never touched; apply the result with Replace.
func Decode(data []byte) (*State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc.validate()
}

// DecodeYAML is Decode for the YAML form written by ExportYAML.
func DecodeYAML(data []byte) (*State, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc.validate()
}

func (doc document) validate() (*State, error) {
	if doc.Nodes == nil {
		return nil, fmt.Errorf("%w: missing nodes", ErrParse)
	}
	if doc.Edges == nil {
		return nil, fmt.Errorf("%w: missing edges", ErrParse)
	}

	s := &State{
		nodes: make([]Node, 0, len(doc.Nodes)),
		edges: make([]Edge, 0, len(doc.Edges)),
	}
	seen := make(map[NodeID]bool, len(doc.Nodes))
	var maxID NodeID

	for key, n := range doc.Nodes {
		if n == nil {
			return nil, fmt.Errorf("%w: node %q is null", ErrParse, key)
		}
		if n.ID <= 0 {
			return nil, fmt.Errorf("%w: node %q has invalid id %d", ErrParse, key, n.ID)
		}
		if key != strconv.Itoa(int(n.ID)) {
			return nil, fmt.Errorf("%w: node key %q does not match id %d", ErrParse, key, n.ID)
		}
		if math.IsNaN(n.X) || math.IsInf(n.X, 0) || math.IsNaN(n.Y) || math.IsInf(n.Y, 0) {
			return nil, fmt.Errorf("%w: node %d has a non-finite position", ErrParse, n.ID)
		}
		seen[n.ID] = true
		if n.ID > maxID {
			maxID = n.ID
		}
		s.nodes = append(s.nodes, *n)
	}
	sort.Slice(s.nodes, func(i, j int) bool { return s.nodes[i].ID < s.nodes[j].ID })

	pairs := make(map[Edge]bool, len(doc.Edges))
	for i, e := range doc.Edges {
		if e == nil {
			return nil, fmt.Errorf("%w: edge %d is null", ErrParse, i)
		}
		if !seen[e.Source] || !seen[e.Target] {
			return nil, fmt.Errorf("%w: edge %s references a missing step", ErrParse, e)
		}
		if e.Source == e.Target {
			return nil, fmt.Errorf("%w: edge %s: %v", ErrParse, e, ErrSelfLoop)
		}
		if pairs[*e] {
			return nil, fmt.Errorf("%w: edge %s: %v", ErrParse, e, ErrDuplicateEdge)
		}
		pairs[*e] = true
		s.edges = append(s.edges, *e)
	}
	if !Acyclic(s.edges) {
		return nil, fmt.Errorf("%w: %v", ErrParse, ErrWouldCreateCycle)
	}

	// A missing or stale counter is repaired so ids are never reused.
	s.next = maxID + 1
	if doc.NextNodeID != nil && *doc.NextNodeID > maxID {
		s.next = *doc.NextNodeID
	}
	return s, nil
}
