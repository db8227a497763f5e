package engine

import (
	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/render"
)

// View is the state UI chrome needs besides the canvas itself.
type View struct {
	Mode         string         `json:"mode"`
	Zoom         float64        `json:"zoom"`
	OffsetX      float64        `json:"offsetX"`
	OffsetY      float64        `json:"offsetY"`
	Selected     []graph.NodeID `json:"selected"`
	Primary      graph.NodeID   `json:"primary,omitempty"`
	SelectedEdge *graph.Edge    `json:"selectedEdge,omitempty"`
	Highlight    []graph.NodeID `json:"highlight"`
	Path         string         `json:"path,omitempty"`
	Status       Status         `json:"status"`
	Editing      *Editing       `json:"editing,omitempty"`
	// EditingAt is the editor's top-left corner in screen pixels.
	EditingAt *[2]float64 `json:"editingAt,omitempty"`
	CanUndo   bool        `json:"canUndo"`
	CanRedo   bool        `json:"canRedo"`
	Nodes     int         `json:"nodes"`
	Edges     int         `json:"edges"`
}

// Mode returns the active interaction.
func (e *Engine) Mode() Mode { return e.mode }

// Nodes returns every step in store order.
func (e *Engine) Nodes() []graph.Node { return e.g.Nodes() }

// Edges returns every connection in insertion order.
func (e *Engine) Edges() []graph.Edge { return e.g.Edges() }

// Highlight returns the highlighted path.
func (e *Engine) Highlight() []graph.NodeID {
	return append([]graph.NodeID(nil), e.highlight...)
}

// Status returns the current status line.
func (e *Engine) Status() Status { return e.currentStatus() }

// View snapshots the UI state.
func (e *Engine) View() View {
	v := View{
		Mode:      e.mode.String(),
		Zoom:      e.vp.Zoom,
		OffsetX:   e.vp.OffsetX,
		OffsetY:   e.vp.OffsetY,
		Selected:  e.sel.IDs(),
		Highlight: e.Highlight(),
		Path:      e.DescribePath(),
		Status:    e.currentStatus(),
		Nodes:     e.g.Len(),
		Edges:     len(e.g.Edges()),
	}
	if v.Selected == nil {
		v.Selected = []graph.NodeID{}
	}
	if v.Highlight == nil {
		v.Highlight = []graph.NodeID{}
	}
	if id, ok := e.sel.Primary(); ok {
		v.Primary = id
	}
	if edge, ok := e.sel.Edge(); ok {
		v.SelectedEdge = &edge
	}
	if e.editing != nil {
		ed := *e.editing
		v.Editing = &ed
		m := e.hit.Metrics()
		sx, sy := e.vp.WorldToScreen(ed.X-m.NodeWidth/2, ed.Y-m.NodeHeight/2)
		v.EditingAt = &[2]float64{sx, sy}
	}
	if e.rec != nil {
		v.CanUndo = e.rec.Stack().CanUndo()
		v.CanRedo = e.rec.Stack().CanRedo()
	}
	return v
}

// Dirty reports whether anything visible changed since the last Frame.
func (e *Engine) Dirty() bool {
	if e.pan.pending {
		return true
	}
	e.currentStatus()
	return e.dirty
}

// Frame applies the pending pan and builds the render input for a
// w x h canvas. It clears the dirty flag.
func (e *Engine) Frame(w, h float64) render.Frame {
	e.Resize(w, h)
	e.flushPan()

	f := render.Frame{
		Width:     e.width,
		Height:    e.height,
		Zoom:      e.vp.Zoom,
		OffsetX:   e.vp.OffsetX,
		OffsetY:   e.vp.OffsetY,
		Nodes:     e.g.Nodes(),
		Edges:     e.g.Edges(),
		Selected:  make(map[graph.NodeID]bool, e.sel.Len()),
		Highlight: e.Highlight(),
	}
	for _, id := range e.sel.IDs() {
		f.Selected[id] = true
	}
	if id, ok := e.sel.Primary(); ok {
		f.Primary = id
	}
	if edge, ok := e.sel.Edge(); ok {
		f.SelectedEdge = &edge
	}

	px, py := e.vp.ScreenToWorld(e.pointerX, e.pointerY)
	switch e.mode {
	case Marqueeing:
		r := e.marquee.Rect()
		f.Marquee = &r
	case DrawingEdge:
		if n, ok := e.g.Node(e.edgeStart); ok {
			f.EdgePreview = &render.Line{FromX: n.X, FromY: n.Y, ToX: px, ToY: py}
		}
	case PickingPath:
		if n, ok := e.g.Node(e.pathFrom); ok {
			f.PathPreview = &render.Line{FromX: n.X, FromY: n.Y, ToX: px, ToY: py}
		}
	}

	e.dirty = false
	return f
}

// Render draws one frame onto c.
func (e *Engine) Render(c render.Canvas, w, h float64) {
	e.renderer.Draw(c, e.Frame(w, h))
}
