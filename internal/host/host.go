// Package host serves the canvas editor to a browser. The page is a thin
// client: it forwards input over a websocket and replays the draw calls the
// engine records for each frame.
package host

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/msalah0e/pathseek/internal/engine"
	"github.com/msalah0e/pathseek/internal/render"
)

//go:embed static/index.html
var static embed.FS

// Config holds host configuration.
type Config struct {
	Addr string
	FPS  int
}

// Inbound is a message from the browser.
type Inbound struct {
	Type    string               `json:"type"`
	Pointer *engine.PointerEvent `json:"pointer,omitempty"`
	Wheel   *engine.WheelEvent   `json:"wheel,omitempty"`
	Key     *engine.KeyEvent     `json:"key,omitempty"`
	Width   float64              `json:"width,omitempty"`
	Height  float64              `json:"height,omitempty"`
	Text    string               `json:"text,omitempty"`
	Command string               `json:"command,omitempty"`
	Format  string               `json:"format,omitempty"`
	Payload string               `json:"payload,omitempty"`
}

// Outbound is a message to the browser.
type Outbound struct {
	Type    string           `json:"type"`
	Ops     *render.Recorder `json:"ops,omitempty"`
	View    *engine.View     `json:"view,omitempty"`
	Format  string           `json:"format,omitempty"`
	Data    string           `json:"data,omitempty"`
	Message string           `json:"message,omitempty"`
}

// Stats tracks host activity.
type Stats struct {
	Sessions  int64     `json:"sessions"`
	Messages  int64     `json:"messages"`
	Frames    int64     `json:"frames"`
	StartedAt time.Time `json:"started_at"`
}

// Server hosts a single editing session at a time.
type Server struct {
	cfg      Config
	eng      *engine.Engine
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	active bool

	sessions atomic.Int64
	messages atomic.Int64
	frames   atomic.Int64
	started  time.Time
}

// New creates a host for eng. The engine must already be initialized and
// is only touched by the session goroutine.
func New(cfg Config, eng *engine.Engine, logger *slog.Logger) *Server {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg: cfg,
		eng: eng,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 64 * 1024,
		},
		started: time.Now(),
	}
}

// Handler returns the HTTP routes: the page, the websocket and a status
// endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleSocket)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	s.log.Info("canvas host listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "running",
		"active": active,
		"stats": Stats{
			Sessions:  s.sessions.Load(),
			Messages:  s.messages.Load(),
			Frames:    s.frames.Load(),
			StartedAt: s.started,
		},
	})
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		http.Error(w, "another editor session is already open", http.StatusConflict)
		return
	}
	s.active = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
	}()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.sessions.Add(1)
	s.log.Info("session opened", "remote", r.RemoteAddr)
	newSession(s, conn).run(r.Context())
	s.log.Info("session closed", "remote", r.RemoteAddr)
}
