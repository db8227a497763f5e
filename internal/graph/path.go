package graph

import (
	"fmt"
	"strings"
)

// FindPath returns the shortest route from start to end by hop count, or nil
// when end cannot be reached. Among equally short routes the one discovered
// first in edge-list order wins, so repeated calls return the same path.
func (g *Graph) FindPath(start, end NodeID) []NodeID {
	if !g.Has(start) || !g.Has(end) {
		return nil
	}

	adj := adjacency(g.edges)
	visited := map[NodeID]bool{start: true}
	queue := [][]NodeID{{start}}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		last := path[len(path)-1]
		if last == end {
			return path
		}
		for _, next := range adj[last] {
			if visited[next] {
				continue
			}
			visited[next] = true
			ext := make([]NodeID, len(path)+1)
			copy(ext, path)
			ext[len(path)] = next
			queue = append(queue, ext)
		}
	}
	return nil
}

// Roots returns the steps with no incoming connection, in store order.
func (g *Graph) Roots() []Node {
	incoming := make(map[NodeID]bool, len(g.edges))
	for _, e := range g.edges {
		incoming[e.Target] = true
	}
	var roots []Node
	for _, id := range g.order {
		if !incoming[id] {
			roots = append(roots, *g.nodes[id])
		}
	}
	return roots
}

// PathTo returns the first route found from any root to target, trying
// roots in store order.
func (g *Graph) PathTo(target NodeID) ([]NodeID, error) {
	if !g.Has(target) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, target)
	}
	roots := g.Roots()
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}
	for _, r := range roots {
		if p := g.FindPath(r.ID, target); len(p) > 0 {
			return p, nil
		}
	}
	return nil, ErrPathNotFound
}

// Describe formats a path as "A > B > C" using each step's text.
func (g *Graph) Describe(path []NodeID) string {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		n, ok := g.nodes[id]
		if !ok {
			parts = append(parts, fmt.Sprintf("Unknown (%d)", id))
			continue
		}
		parts = append(parts, n.Text)
	}
	return strings.Join(parts, " > ")
}
