package graph

// WouldCreateCycle reports whether edges, which already include the candidate
// edge source -> target, contain a route from target back to source.
func WouldCreateCycle(edges []Edge, source, target NodeID) bool {
	adj := adjacency(edges)
	visited := make(map[NodeID]bool)

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		if id == source {
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		for _, next := range adj[id] {
			if visit(next) {
				return true
			}
		}
		return false
	}
	return visit(target)
}

// Acyclic reports whether the edge relation contains no cycle.
func Acyclic(edges []Edge) bool {
	const (
		unvisited = iota
		visiting
		done
	)
	adj := adjacency(edges)
	state := make(map[NodeID]int)

	var visit func(id NodeID) bool
	visit = func(id NodeID) bool {
		switch state[id] {
		case visiting:
			return false
		case done:
			return true
		}
		state[id] = visiting
		for _, next := range adj[id] {
			if !visit(next) {
				return false
			}
		}
		state[id] = done
		return true
	}

	for _, e := range edges {
		if !visit(e.Source) {
			return false
		}
	}
	return true
}

func adjacency(edges []Edge) map[NodeID][]NodeID {
	adj := make(map[NodeID][]NodeID)
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}
