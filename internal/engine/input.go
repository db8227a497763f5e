package engine

import (
	"strings"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/spatial"
)

// Pointer buttons.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

// PointerEvent is a mouse event in screen pixels relative to the canvas.
type PointerEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
	Shift  bool    `json:"shift"`
	Ctrl   bool    `json:"ctrl"`
	Meta   bool    `json:"meta"`
}

func (p PointerEvent) toggle() bool { return p.Ctrl || p.Meta }

// WheelEvent is a scroll over the canvas. Negative DeltaY zooms in.
type WheelEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaY float64 `json:"deltaY"`
}

// KeyEvent is a key press. Key uses DOM key names ("z", "Enter",
// "Escape", "Delete").
type KeyEvent struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
}

// PointerDown starts whatever interaction the press implies.
func (e *Engine) PointerDown(p PointerEvent) {
	e.pointerX, e.pointerY = p.X, p.Y
	if e.mode == EditingText {
		e.CommitEdit()
	}
	switch p.Button {
	case ButtonLeft:
	case ButtonMiddle:
		e.startPan(p)
		return
	default:
		return
	}

	wx, wy := e.vp.ScreenToWorld(p.X, p.Y)
	node, onNode := e.hit.NodeAt(e.g, wx, wy)

	if !onNode {
		if p.Shift {
			e.enter(Marqueeing)
			e.marquee.StartX, e.marquee.StartY = wx, wy
			e.marquee.EndX, e.marquee.EndY = wx, wy
			return
		}
		if edge, ok := e.hit.EdgeAt(e.g, wx, wy, e.vp.Zoom); ok {
			e.sel.ClickEdge(edge)
		} else {
			e.sel.Clear()
		}
		e.startPan(p)
		return
	}

	switch e.mode {
	case PickingPath:
		if node.ID != e.pathFrom {
			from := e.pathFrom
			e.cancelMode()
			e.FindPath(from, node.ID)
		}
		return
	case DrawingEdge:
		if node.ID != e.edgeStart {
			from := e.edgeStart
			e.cancelMode()
			e.Connect(from, node.ID)
		}
		return
	}

	e.sel.ClickNode(node.ID, p.toggle())
	e.enter(DraggingNode)
	e.drag = dragState{id: node.ID, grabX: wx - node.X, grabY: wy - node.Y}
}

func (e *Engine) startPan(p PointerEvent) {
	e.enter(Panning)
	e.pan = panState{startX: p.X, startY: p.Y, originX: e.vp.OffsetX, originY: e.vp.OffsetY}
}

// PointerMove advances the active interaction.
func (e *Engine) PointerMove(p PointerEvent) {
	e.pointerX, e.pointerY = p.X, p.Y
	switch e.mode {
	case Panning:
		// Only the newest offset is kept; Frame applies it.
		e.pan.nextX, e.pan.nextY = e.vp.PanFrom(e.pan.originX, e.pan.originY, p.X-e.pan.startX, p.Y-e.pan.startY)
		e.pan.pending = true
		e.dirty = true
	case Marqueeing:
		e.marquee.EndX, e.marquee.EndY = e.vp.ScreenToWorld(p.X, p.Y)
		e.dirty = true
	case DraggingNode:
		e.dragTo(p)
	case DrawingEdge, PickingPath:
		e.dirty = true
	}
}

// dragTo moves the grabbed step under the pointer and carries the rest of
// a multi-step selection along by the same delta.
func (e *Engine) dragTo(p PointerEvent) {
	node, ok := e.g.Node(e.drag.id)
	if !ok {
		e.cancelMode()
		return
	}
	wx, wy := e.vp.ScreenToWorld(p.X, p.Y)
	dx := wx - e.drag.grabX - node.X
	dy := wy - e.drag.grabY - node.Y
	if dx == 0 && dy == 0 {
		return
	}
	ids := []graph.NodeID{e.drag.id}
	if e.sel.Len() > 1 && e.sel.Has(e.drag.id) {
		for _, id := range e.sel.IDs() {
			if id != e.drag.id {
				ids = append(ids, id)
			}
		}
	}
	e.g.Translate(ids, dx, dy, graph.Gesture)
	e.drag.moved = true
}

// PointerUp finishes drags, pans and marquees. Edge drawing and path
// picking stay active until the next click.
func (e *Engine) PointerUp(p PointerEvent) {
	e.pointerX, e.pointerY = p.X, p.Y
	switch e.mode {
	case DraggingNode:
		if e.drag.moved {
			e.clearStatus()
			e.drag.moved = false
			e.g.Settle()
		}
		e.cancelMode()
	case Panning:
		e.cancelMode()
	case Marqueeing:
		e.marquee.EndX, e.marquee.EndY = e.vp.ScreenToWorld(p.X, p.Y)
		nodes := spatial.NodesIn(e.g, e.marquee.Rect())
		ids := make([]graph.NodeID, 0, len(nodes))
		for _, n := range nodes {
			ids = append(ids, n.ID)
		}
		e.sel.SetMarquee(ids)
		e.cancelMode()
	}
}

// DoubleClick opens the text editor on a step, or for a new step on empty
// canvas.
func (e *Engine) DoubleClick(p PointerEvent) {
	wx, wy := e.vp.ScreenToWorld(p.X, p.Y)
	if node, ok := e.hit.NodeAt(e.g, wx, wy); ok {
		e.BeginEdit(node.ID)
		return
	}
	e.enter(EditingText)
	e.editing = &Editing{X: wx, Y: wy}
}

// ContextMenu handles a right click: on a step it starts a connection, on
// a connection it deletes it.
func (e *Engine) ContextMenu(p PointerEvent) {
	wx, wy := e.vp.ScreenToWorld(p.X, p.Y)
	if node, ok := e.hit.NodeAt(e.g, wx, wy); ok {
		e.StartEdgeFrom(node.ID)
		return
	}
	if edge, ok := e.hit.EdgeAt(e.g, wx, wy, e.vp.Zoom); ok {
		if sel, ok := e.sel.Edge(); ok && sel == edge {
			e.sel.ClearEdge()
		}
		e.DeleteEdge(edge.Source, edge.Target)
	}
}

// Wheel zooms one step around the pointer.
func (e *Engine) Wheel(w WheelEvent) {
	if w.DeltaY == 0 {
		return
	}
	e.flushPan()
	direction := 1
	if w.DeltaY > 0 {
		direction = -1
	}
	if e.vp.ZoomAt(w.X, w.Y, direction) {
		e.dirty = true
		if e.mode == Panning {
			// Rebase the drag so it continues from the zoomed view.
			e.pan.startX, e.pan.startY = e.pointerX, e.pointerY
			e.pan.originX, e.pan.originY = e.vp.OffsetX, e.vp.OffsetY
		}
	}
}

// Key handles a keyboard shortcut and reports whether it was consumed.
func (e *Engine) Key(k KeyEvent) bool {
	if e.mode == EditingText {
		switch k.Key {
		case "Enter":
			if k.Shift {
				e.editing.Text += "\n"
				e.dirty = true
				return true
			}
			e.CommitEdit()
			return true
		case "Escape":
			e.CancelEdit()
			return true
		}
		return false
	}

	if k.Ctrl || k.Meta {
		switch strings.ToLower(k.Key) {
		case "z":
			if k.Shift {
				e.Redo()
			} else {
				e.Undo()
			}
			return true
		case "y":
			e.Redo()
			return true
		}
		return false
	}

	switch k.Key {
	case "Escape":
		if e.mode == Idle {
			e.sel.Clear()
			e.highlight = nil
		}
		e.cancelMode()
		return true
	case "Delete", "Backspace":
		if e.sel.Len() > 0 {
			e.DeleteSelected()
			return true
		}
		if _, ok := e.sel.Edge(); ok {
			e.DeleteSelectedEdge()
			return true
		}
	}
	return false
}

// ─── Text editing ───

// BeginEdit opens the text editor on an existing step.
func (e *Engine) BeginEdit(id graph.NodeID) error {
	node, ok := e.g.Node(id)
	if !ok {
		return e.unknown(id)
	}
	e.enter(EditingText)
	e.editing = &Editing{ID: id, X: node.X, Y: node.Y, Text: node.Text}
	return nil
}

// EditText replaces the text being edited.
func (e *Engine) EditText(text string) {
	if e.editing == nil {
		return
	}
	e.editing.Text = text
	e.dirty = true
}

// CommitEdit applies the edited text. A new step with empty text is
// discarded; an existing step keeps its old text.
func (e *Engine) CommitEdit() {
	if e.mode != EditingText || e.editing == nil {
		return
	}
	ed := e.editing
	e.cancelMode()
	if ed.ID == 0 {
		if strings.TrimSpace(ed.Text) != "" {
			e.CreateNode(ed.X, ed.Y, ed.Text)
		}
		return
	}
	e.SetNodeText(ed.ID, ed.Text)
}

// CancelEdit closes the editor without changes.
func (e *Engine) CancelEdit() {
	if e.mode == EditingText {
		e.cancelMode()
	}
}
