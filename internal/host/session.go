package host

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msalah0e/pathseek/internal/engine"
	"github.com/msalah0e/pathseek/internal/render"
)

const writeWait = 5 * time.Second

type session struct {
	s    *Server
	eng  *engine.Engine
	conn *websocket.Conn
	rec  *render.Recorder

	width, height float64
}

func newSession(s *Server, conn *websocket.Conn) *session {
	return &session{s: s, eng: s.eng, conn: conn, rec: render.NewRecorder()}
}

// run owns the engine until the connection closes. A reader goroutine
// decodes input; this goroutine applies it and pushes frames on a ticker.
func (ss *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan Inbound, 64)
	go ss.read(ctx, events)

	ticker := time.NewTicker(time.Second / time.Duration(ss.s.cfg.FPS))
	defer ticker.Stop()

	// The first frame goes out as soon as the page reports its size.
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-events:
			if !ok {
				return
			}
			ss.s.messages.Add(1)
			if err := ss.apply(m); err != nil {
				ss.s.log.Debug("write failed", "error", err)
				return
			}
		case <-ticker.C:
			if ss.width == 0 || !ss.eng.Dirty() {
				continue
			}
			if err := ss.pushFrame(); err != nil {
				ss.s.log.Debug("write failed", "error", err)
				return
			}
		}
	}
}

func (ss *session) read(ctx context.Context, events chan<- Inbound) {
	defer close(events)
	for {
		var m Inbound
		if err := ss.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ss.s.log.Warn("reading from browser", "error", err)
			}
			return
		}
		select {
		case events <- m:
		case <-ctx.Done():
			return
		}
	}
}

func (ss *session) pushFrame() error {
	ss.rec.Reset()
	ss.eng.Render(ss.rec, ss.width, ss.height)
	view := ss.eng.View()
	ss.s.frames.Add(1)
	return ss.send(Outbound{Type: "frame", Ops: ss.rec, View: &view})
}

func (ss *session) send(out Outbound) error {
	ss.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return ss.conn.WriteJSON(out)
}

// apply feeds one browser message to the engine. Only write failures are
// returned; bad input is logged and ignored.
func (ss *session) apply(m Inbound) error {
	e := ss.eng
	switch m.Type {
	case "resize":
		first := ss.width == 0
		ss.width, ss.height = m.Width, m.Height
		e.Resize(m.Width, m.Height)
		if first {
			e.CenterView()
			return ss.pushFrame()
		}
	case "pointerdown", "pointermove", "pointerup", "dblclick", "contextmenu":
		if m.Pointer == nil {
			return nil
		}
		switch m.Type {
		case "pointerdown":
			e.PointerDown(*m.Pointer)
		case "pointermove":
			e.PointerMove(*m.Pointer)
		case "pointerup":
			e.PointerUp(*m.Pointer)
		case "dblclick":
			e.DoubleClick(*m.Pointer)
		case "contextmenu":
			e.ContextMenu(*m.Pointer)
		}
	case "wheel":
		if m.Wheel != nil {
			e.Wheel(*m.Wheel)
		}
	case "key":
		if m.Key != nil {
			e.Key(*m.Key)
		}
	case "text":
		e.EditText(m.Text)
	case "command":
		return ss.command(m)
	default:
		ss.s.log.Debug("ignoring message", "type", m.Type)
	}
	return nil
}

func (ss *session) command(m Inbound) error {
	e := ss.eng
	var err error
	switch m.Command {
	case "undo":
		_, err = e.Undo()
	case "redo":
		_, err = e.Redo()
	case "delete":
		_, err = e.DeleteSelected()
	case "deleteEdge":
		err = e.DeleteSelectedEdge()
	case "pathFrom":
		err = e.StartPathFrom()
	case "pathTo":
		_, err = e.PathToSelected()
	case "clearPath":
		e.ClearHighlight()
	case "resetView":
		e.ResetView()
	case "centerView":
		e.CenterView()
	case "commitEdit":
		e.CommitEdit()
	case "cancelEdit":
		e.CancelEdit()
	case "export":
		data, exportErr := e.Export(m.Format)
		if exportErr != nil {
			return ss.send(Outbound{Type: "error", Message: exportErr.Error()})
		}
		return ss.send(Outbound{Type: "export", Format: m.Format, Data: string(data)})
	case "import":
		err = e.Import([]byte(m.Payload), m.Format)
	default:
		return ss.send(Outbound{Type: "error", Message: fmt.Sprintf("unknown command %q", m.Command)})
	}
	if err != nil {
		ss.s.log.Debug("command failed", "command", m.Command, "error", err)
	}
	return nil
}
