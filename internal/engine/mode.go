package engine

import (
	"time"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/selection"
)

// Mode is the interaction the pointer is currently driving. Exactly one
// mode is active; entering a new one cancels the previous.
type Mode int

const (
	Idle Mode = iota
	DraggingNode
	Panning
	Marqueeing
	DrawingEdge
	PickingPath
	EditingText
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case DraggingNode:
		return "dragging"
	case Panning:
		return "panning"
	case Marqueeing:
		return "marquee"
	case DrawingEdge:
		return "drawing-edge"
	case PickingPath:
		return "picking-path"
	case EditingText:
		return "editing"
	default:
		return "unknown"
	}
}

type dragState struct {
	id           graph.NodeID
	grabX, grabY float64 // pointer offset from the step center, world units
	moved        bool
}

type panState struct {
	startX, startY   float64 // screen position at press
	originX, originY float64 // offset at press
	pending          bool
	nextX, nextY     float64
}

// Editing is the text box open over the canvas. ID is zero while a new
// step is being written at (X, Y).
type Editing struct {
	ID   graph.NodeID `json:"id"`
	X    float64      `json:"x"`
	Y    float64      `json:"y"`
	Text string       `json:"text"`
}

// StatusKind classifies the status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusInfo:
		return "info"
	case StatusError:
		return "error"
	default:
		return ""
	}
}

// MarshalText encodes the kind by name.
func (k StatusKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind written by MarshalText.
func (k *StatusKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*k = StatusInfo
	case "error":
		*k = StatusError
	default:
		*k = StatusNone
	}
	return nil
}

// Status is the one-line message shown to the user. Info messages expire;
// errors stay until the next state-changing action.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Text    string     `json:"text"`
	expires time.Time
}

func (e *Engine) info(text string) {
	e.status = Status{Kind: StatusInfo, Text: text, expires: e.opts.Now().Add(e.opts.InfoTTL)}
	e.dirty = true
}

func (e *Engine) fail(text string) {
	e.status = Status{Kind: StatusError, Text: text}
	e.dirty = true
}

func (e *Engine) clearStatus() {
	if e.status.Kind != StatusNone {
		e.status = Status{}
		e.dirty = true
	}
}

// currentStatus drops an expired info message.
func (e *Engine) currentStatus() Status {
	if e.status.Kind == StatusInfo && !e.opts.Now().Before(e.status.expires) {
		e.status = Status{}
		e.dirty = true
	}
	return e.status
}

// enter switches to m, cancelling whatever was active.
func (e *Engine) enter(m Mode) {
	if e.mode != m {
		e.cancelMode()
	}
	e.mode = m
	e.dirty = true
}

// cancelMode abandons the active mode without committing it.
func (e *Engine) cancelMode() {
	switch e.mode {
	case DraggingNode:
		if e.drag.moved {
			e.g.Settle()
		}
	case Panning:
		e.flushPan()
	}
	e.mode = Idle
	e.drag = dragState{}
	e.pan = panState{}
	e.marquee = selection.Marquee{}
	e.edgeStart = 0
	e.pathFrom = 0
	e.editing = nil
	e.dirty = true
}

func (e *Engine) flushPan() {
	if e.pan.pending {
		e.vp.SetOffset(e.pan.nextX, e.pan.nextY)
		e.pan.pending = false
		e.dirty = true
	}
}
