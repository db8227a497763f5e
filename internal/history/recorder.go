package history

import (
	"fmt"

	"github.com/msalah0e/pathseek/internal/graph"
)

// Recorder snapshots a graph after every committed mutation and restores
// snapshots on undo and redo. Restores carry the HistoryReplay origin so
// they are never recorded again.
type Recorder struct {
	g      *graph.Graph
	stack  *Stack
	cancel func()

	// OnRecord is called after a snapshot has been stored.
	OnRecord func()
	// OnError is called when the graph cannot be serialized.
	OnError func(error)
}

// NewRecorder seeds stack with the current graph if it is empty and
// subscribes to g. Call Close to unsubscribe.
func NewRecorder(g *graph.Graph, stack *Stack) (*Recorder, error) {
	r := &Recorder{g: g, stack: stack}
	if stack.Len() == 0 {
		blob, err := g.Serialize()
		if err != nil {
			return nil, fmt.Errorf("seeding history: %w", err)
		}
		stack.Seed(blob)
	}
	r.cancel = g.Subscribe(r.observe)
	return r, nil
}

// Stack returns the underlying snapshot list.
func (r *Recorder) Stack() *Stack { return r.stack }

func (r *Recorder) observe(c graph.Change) {
	switch c.Origin {
	case graph.HistoryReplay, graph.Gesture, graph.Load:
		return
	}
	blob, err := r.g.Serialize()
	if err != nil {
		if r.OnError != nil {
			r.OnError(err)
		}
		return
	}
	if r.stack.Record(blob) && r.OnRecord != nil {
		r.OnRecord()
	}
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (r *Recorder) Undo() (bool, error) {
	blob, ok := r.stack.Undo()
	if !ok {
		return false, nil
	}
	return true, r.restore(blob)
}

// Redo restores the next snapshot. It reports false when there is nothing
// to redo.
func (r *Recorder) Redo() (bool, error) {
	blob, ok := r.stack.Redo()
	if !ok {
		return false, nil
	}
	return true, r.restore(blob)
}

func (r *Recorder) restore(blob []byte) error {
	s, err := graph.Decode(blob)
	if err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	r.g.Replace(s, graph.HistoryReplay)
	return nil
}

// Close unsubscribes from the graph.
func (r *Recorder) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
