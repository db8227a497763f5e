package graph

// Op identifies the kind of mutation carried by a Change.
type Op int

const (
	OpAddNode Op = iota
	OpUpdateText
	OpMoveNodes
	OpRemoveNodes
	OpAddEdge
	OpRemoveEdge
	OpSettle
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpAddNode:
		return "add-node"
	case OpUpdateText:
		return "update-text"
	case OpMoveNodes:
		return "move-nodes"
	case OpRemoveNodes:
		return "remove-nodes"
	case OpAddEdge:
		return "add-edge"
	case OpRemoveEdge:
		return "remove-edge"
	case OpSettle:
		return "settle"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Origin tags a mutation with what caused it. Observers such as the history
// recorder and the persister decide what to do based on it.
type Origin int

const (
	// UserEdit is a committed edit made by the user.
	UserEdit Origin = iota
	// Gesture is an in-flight drag step. It is closed by Settle.
	Gesture
	// HistoryReplay restores a snapshot during undo or redo.
	HistoryReplay
	// Import replaces the graph with user supplied data.
	Import
	// Load replaces the graph with the persisted state at startup.
	Load
)

func (o Origin) String() string {
	switch o {
	case UserEdit:
		return "user"
	case Gesture:
		return "gesture"
	case HistoryReplay:
		return "replay"
	case Import:
		return "import"
	case Load:
		return "load"
	default:
		return "unknown"
	}
}

// Change describes one applied mutation.
type Change struct {
	Op     Op
	Origin Origin
	Nodes  []NodeID
	Edge   Edge
}

type subscription struct {
	id int
	fn func(Change)
}

// Subscribe registers fn to be called after every applied mutation, in
// registration order. The returned function removes the subscription.
func (g *Graph) Subscribe(fn func(Change)) (cancel func()) {
	g.subSeq++
	id := g.subSeq
	g.subs = append(g.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range g.subs {
			if s.id == id {
				g.subs = append(g.subs[:i:i], g.subs[i+1:]...)
				return
			}
		}
	}
}

func (g *Graph) emit(c Change) {
	subs := append([]subscription(nil), g.subs...)
	for _, s := range subs {
		s.fn(c)
	}
}
