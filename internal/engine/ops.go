package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/viewport"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
)

// message turns a graph error into the status line shown to the user.
func message(err error) string {
	switch {
	case errors.Is(err, graph.ErrSelfLoop):
		return "Cannot connect a step to itself"
	case errors.Is(err, graph.ErrDuplicateEdge):
		return "This connection already exists"
	case errors.Is(err, graph.ErrWouldCreateCycle):
		return "This connection would create a cycle, which is not allowed"
	case errors.Is(err, graph.ErrNoRoots):
		return "No starting points found. Create a step with no incoming connections."
	case errors.Is(err, graph.ErrUnknownNode):
		return "That step no longer exists"
	case errors.Is(err, ErrEmptyText):
		return "A step needs some text"
	case errors.Is(err, ErrNoSelection):
		return "Select a step first"
	default:
		return err.Error()
	}
}

// ─── Steps ───

// CreateNode adds a step at a world position. Text is trimmed and must
// not be empty.
func (e *Engine) CreateNode(x, y float64, text string) (graph.Node, error) {
	e.clearStatus()
	text = strings.TrimSpace(text)
	if text == "" {
		e.fail(message(ErrEmptyText))
		return graph.Node{}, ErrEmptyText
	}
	return e.g.AddNode(x, y, text), nil
}

// SetNodeText replaces the text of a step. Empty text leaves it unchanged.
func (e *Engine) SetNodeText(id graph.NodeID, text string) error {
	e.clearStatus()
	if !e.g.Has(id) {
		return e.unknown(id)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	e.g.UpdateNodeText(id, text)
	return nil
}

// MoveNode places a step at a world position.
func (e *Engine) MoveNode(id graph.NodeID, x, y float64) error {
	e.clearStatus()
	if !e.g.Has(id) {
		return e.unknown(id)
	}
	e.g.MoveNode(id, x, y)
	return nil
}

// SelectNode makes id the only selected step.
func (e *Engine) SelectNode(id graph.NodeID) error {
	if !e.g.Has(id) {
		return e.unknown(id)
	}
	e.sel.Select(id)
	e.dirty = true
	return nil
}

// SelectNodes replaces the selection with ids. The first becomes primary.
func (e *Engine) SelectNodes(ids ...graph.NodeID) error {
	for _, id := range ids {
		if !e.g.Has(id) {
			return e.unknown(id)
		}
	}
	e.sel.SetMarquee(ids)
	e.dirty = true
	return nil
}

// ClearSelection deselects everything.
func (e *Engine) ClearSelection() {
	e.sel.Clear()
	e.dirty = true
}

// DeleteNode removes one step and its connections.
func (e *Engine) DeleteNode(id graph.NodeID) error {
	e.clearStatus()
	if !e.g.Has(id) {
		return e.unknown(id)
	}
	e.g.RemoveNode(id)
	return nil
}

// DeleteSelected removes every selected step in one undoable edit and
// returns how many were removed.
func (e *Engine) DeleteSelected() (int, error) {
	e.clearStatus()
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return 0, ErrNoSelection
	}
	if e.mode == DrawingEdge || e.mode == PickingPath {
		e.cancelMode()
	}
	return e.g.RemoveNodes(ids...), nil
}

// ─── Connections ───

// Connect adds a connection from source to target.
func (e *Engine) Connect(source, target graph.NodeID) error {
	e.clearStatus()
	if err := e.g.AddEdge(source, target); err != nil {
		e.fail(message(err))
		return err
	}
	return nil
}

// StartEdgeFrom enters edge drawing with source as the tail. The next
// click on another step completes the connection.
func (e *Engine) StartEdgeFrom(source graph.NodeID) error {
	if !e.g.Has(source) {
		return e.unknown(source)
	}
	e.clearStatus()
	e.enter(DrawingEdge)
	e.edgeStart = source
	return nil
}

// DeleteEdge removes a connection and reports whether it existed.
func (e *Engine) DeleteEdge(source, target graph.NodeID) bool {
	e.clearStatus()
	if !e.g.RemoveEdge(source, target) {
		return false
	}
	e.info("Connection deleted")
	return true
}

// DeleteSelectedEdge removes the selected connection.
func (e *Engine) DeleteSelectedEdge() error {
	edge, ok := e.sel.Edge()
	if !ok {
		return ErrNoSelection
	}
	e.sel.ClearEdge()
	e.DeleteEdge(edge.Source, edge.Target)
	return nil
}

// ─── Paths ───

// StartPathFrom enters path picking from the primary selected step. The
// next click on another step highlights the shortest path.
func (e *Engine) StartPathFrom() error {
	id, ok := e.sel.Primary()
	if !ok {
		return ErrNoSelection
	}
	e.clearStatus()
	e.highlight = nil
	e.enter(PickingPath)
	e.pathFrom = id
	return nil
}

// FindPath highlights the shortest path from source to target.
func (e *Engine) FindPath(source, target graph.NodeID) ([]graph.NodeID, error) {
	e.clearStatus()
	e.dirty = true
	path := e.g.FindPath(source, target)
	if len(path) == 0 {
		e.highlight = nil
		e.fail(fmt.Sprintf("No path found from %q to %q", e.text(source), e.text(target)))
		return nil, fmt.Errorf("%w: %d to %d", graph.ErrPathNotFound, source, target)
	}
	e.highlight = path
	return path, nil
}

// PathToSelected highlights a path from the first root that reaches the
// primary selected step.
func (e *Engine) PathToSelected() ([]graph.NodeID, error) {
	id, ok := e.sel.Primary()
	if !ok {
		return nil, ErrNoSelection
	}
	e.clearStatus()
	e.dirty = true
	path, err := e.g.PathTo(id)
	if err != nil {
		e.highlight = nil
		if errors.Is(err, graph.ErrNoRoots) {
			e.fail(message(err))
		} else {
			e.fail(fmt.Sprintf("No path found to %q", e.text(id)))
		}
		return nil, err
	}
	e.highlight = path
	return path, nil
}

// ClearHighlight removes the highlighted path.
func (e *Engine) ClearHighlight() {
	e.highlight = nil
	e.dirty = true
}

// DescribePath formats the highlighted path as "A > B > C".
func (e *Engine) DescribePath() string {
	return e.g.Describe(e.highlight)
}

// ─── History ───

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (e *Engine) Undo() (bool, error) {
	e.clearStatus()
	e.cancelMode()
	ok, err := e.rec.Undo()
	if err != nil {
		e.fail("Could not restore the previous state")
	}
	return ok, err
}

// Redo restores the next snapshot.
func (e *Engine) Redo() (bool, error) {
	e.clearStatus()
	e.cancelMode()
	ok, err := e.rec.Redo()
	if err != nil {
		e.fail("Could not restore the next state")
	}
	return ok, err
}

// ─── Import / export ───

// Export renders the graph in the given format.
func (e *Engine) Export(format string) ([]byte, error) {
	switch format {
	case "", FormatJSON:
		return e.g.ExportJSON()
	case FormatYAML:
		return e.g.ExportYAML()
	case FormatDOT:
		return []byte(e.g.ExportDOT()), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want json, yaml or dot)", format)
	}
}

// Import replaces the whole graph. Invalid data leaves the graph as it
// was; a successful import is one undoable edit.
func (e *Engine) Import(data []byte, format string) error {
	e.clearStatus()
	var (
		state *graph.State
		err   error
	)
	switch format {
	case "", FormatJSON:
		state, err = graph.Decode(data)
	case FormatYAML:
		state, err = graph.DecodeYAML(data)
	default:
		err = fmt.Errorf("%w: cannot import %q", graph.ErrParse, format)
	}
	if err != nil {
		e.fail(fmt.Sprintf("Failed to parse %s file", strings.ToUpper(formatName(format))))
		return err
	}
	e.cancelMode()
	e.sel.Clear()
	e.highlight = nil
	e.g.Replace(state, graph.Import)
	return nil
}

func formatName(format string) string {
	if format == "" {
		return FormatJSON
	}
	return format
}

// ─── View ───

// Resize records the canvas size in screen pixels.
func (e *Engine) Resize(w, h float64) {
	if w > 0 && h > 0 && (w != e.width || h != e.height) {
		e.width, e.height = w, h
		e.dirty = true
	}
}

// ResetView returns to zoom 1 and centers on the graph.
func (e *Engine) ResetView() {
	e.pan = panState{}
	e.vp.Reset()
	e.CenterView()
}

// CenterView centers the graph on screen at the current zoom. An empty
// graph leaves the view alone.
func (e *Engine) CenterView() {
	minX, minY, maxX, maxY, ok := e.g.Bounds()
	if !ok {
		e.dirty = true
		return
	}
	m := e.hit.Metrics()
	bounds := viewport.Rect{
		MinX: minX - m.NodeWidth/2,
		MinY: minY - m.NodeHeight/2,
		MaxX: maxX + m.NodeWidth/2,
		MaxY: maxY + m.NodeHeight/2,
	}
	e.pan = panState{}
	e.vp.CenterOn(bounds, e.width, e.height)
	e.dirty = true
}

// ─── helpers ───

func (e *Engine) unknown(id graph.NodeID) error {
	err := fmt.Errorf("%w: %d", graph.ErrUnknownNode, id)
	e.fail(message(err))
	return err
}

func (e *Engine) text(id graph.NodeID) string {
	if n, ok := e.g.Node(id); ok {
		return n.Text
	}
	return fmt.Sprintf("Unknown (%d)", id)
}
