// Package engine ties the step graph to an interactive canvas: pointer and
// keyboard input, selection, undo history, persistence and rendering.
// An Engine is not safe for concurrent use; a host owns it from a single
// goroutine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msalah0e/pathseek/internal/activity"
	"github.com/msalah0e/pathseek/internal/config"
	"github.com/msalah0e/pathseek/internal/ctxlog"
	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/history"
	"github.com/msalah0e/pathseek/internal/render"
	"github.com/msalah0e/pathseek/internal/selection"
	"github.com/msalah0e/pathseek/internal/spatial"
	"github.com/msalah0e/pathseek/internal/store"
	"github.com/msalah0e/pathseek/internal/viewport"
)

var (
	// ErrEmptyText is returned when a step would be created without text.
	ErrEmptyText = errors.New("step text is empty")
	// ErrNoSelection is returned by operations that need a selected step
	// or connection.
	ErrNoSelection = errors.New("nothing selected")
)

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Viewport        viewport.Options
	Metrics         spatial.Metrics
	Style           render.Style
	HistoryCapacity int
	PersistHistory  bool
	InfoTTL         time.Duration

	// Store persists the graph and history. A nil Store keeps everything
	// in memory.
	Store store.Store
	// Journal, when set, receives every committed change.
	Journal *activity.Journal
	// Logger overrides the logger carried by the Init context.
	Logger *slog.Logger
	// Now is the clock used for status expiry.
	Now func() time.Time
}

// OptionsFromConfig builds Options from the loaded configuration. The
// store and journal are left for the caller to open.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Viewport:        cfg.ViewportOptions(),
		Metrics:         cfg.Metrics(),
		Style:           cfg.Style(),
		HistoryCapacity: cfg.History.Capacity,
		PersistHistory:  cfg.History.Persist,
		InfoTTL:         cfg.InfoTTL(),
	}
}

// Engine is the editor core.
type Engine struct {
	opts Options

	g        *graph.Graph
	vp       *viewport.Viewport
	hit      *spatial.Tester
	sel      *selection.Set
	renderer *render.Renderer
	store    store.Store
	rec      *history.Recorder
	log      *slog.Logger

	mode      Mode
	drag      dragState
	pan       panState
	marquee   selection.Marquee
	edgeStart graph.NodeID
	pathFrom  graph.NodeID
	editing   *Editing
	pointerX  float64
	pointerY  float64
	highlight []graph.NodeID
	status    Status

	width, height float64
	dirty         bool
	cancels       []func()
	initialized   bool
}

// New creates an engine with an empty graph. Call Init before use.
func New(opts Options) *Engine {
	if opts.HistoryCapacity <= 0 {
		opts.HistoryCapacity = history.DefaultCapacity
	}
	if opts.InfoTTL <= 0 {
		opts.InfoTTL = 2 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Style.NodeWidth == 0 {
		opts.Style = render.DefaultStyle()
	}
	s := opts.Store
	if s == nil {
		s = store.NewMemoryStore()
	}
	return &Engine{
		opts:     opts,
		g:        graph.New(),
		vp:       viewport.New(opts.Viewport),
		hit:      spatial.New(opts.Metrics),
		sel:      selection.New(),
		renderer: render.New(opts.Style),
		store:    s,
		log:      opts.Logger,
		dirty:    true,
	}
}

// Init loads the persisted graph and history and starts observing the
// graph. It must be called once before any other method.
func (e *Engine) Init(ctx context.Context) error {
	if e.initialized {
		return nil
	}
	if e.log == nil {
		e.log = ctxlog.FromContext(ctx)
	}

	if err := e.loadGraph(); err != nil {
		return err
	}

	stack := e.loadHistory()
	rec, err := history.NewRecorder(e.g, stack)
	if err != nil {
		return err
	}
	rec.OnError = func(err error) {
		e.log.Warn("recording history", "error", err)
	}
	e.rec = rec
	e.cancels = append(e.cancels, rec.Close)

	e.cancels = append(e.cancels, e.g.Subscribe(e.reconcile))
	e.cancels = append(e.cancels, e.g.Subscribe(e.persist))
	if e.opts.Journal != nil {
		e.cancels = append(e.cancels, e.opts.Journal.Observe(e.g, func(err error) {
			e.log.Warn("writing activity journal", "error", err)
		}))
	}

	e.initialized = true
	e.log.Debug("engine ready", "nodes", e.g.Len(), "edges", len(e.g.Edges()), "history", stack.Len())
	return nil
}

func (e *Engine) loadGraph() error {
	blob, err := e.store.Get(store.KeyGraph)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading graph: %w", err)
	}
	state, err := graph.Decode(blob)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}
	e.g.Replace(state, graph.Load)
	return nil
}

func (e *Engine) loadHistory() *history.Stack {
	if !e.opts.PersistHistory {
		return history.New(e.opts.HistoryCapacity)
	}
	blob, err := e.store.Get(store.KeyHistory)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.log.Warn("reading history", "error", err)
		}
		return history.New(e.opts.HistoryCapacity)
	}
	stack, err := history.Decode(blob, e.opts.HistoryCapacity)
	if err != nil {
		e.log.Warn("discarding history", "error", err)
		return history.New(e.opts.HistoryCapacity)
	}
	return stack
}

// Dispose stops every observer. The engine must not be used afterwards.
func (e *Engine) Dispose() {
	for i := len(e.cancels) - 1; i >= 0; i-- {
		e.cancels[i]()
	}
	e.cancels = nil
	e.initialized = false
}

// Graph exposes the graph for read access.
func (e *Engine) Graph() *graph.Graph { return e.g }

// Viewport exposes the current view transform.
func (e *Engine) Viewport() *viewport.Viewport { return e.vp }

// History exposes the undo stack.
func (e *Engine) History() *history.Stack { return e.rec.Stack() }

// persist writes committed changes to the store. Failures are logged and
// do not undo the edit.
func (e *Engine) persist(c graph.Change) {
	if c.Origin == graph.Gesture || c.Origin == graph.Load {
		return
	}
	blob, err := e.g.Serialize()
	if err != nil {
		e.log.Warn("serializing graph", "error", err)
		return
	}
	if err := e.store.Set(store.KeyGraph, blob); err != nil {
		e.log.Warn("saving graph", "error", err)
	}
	if !e.opts.PersistHistory || e.rec == nil {
		return
	}
	hist, err := e.rec.Stack().Encode()
	if err != nil {
		e.log.Warn("encoding history", "error", err)
		return
	}
	if err := e.store.Set(store.KeyHistory, hist); err != nil {
		e.log.Warn("saving history", "error", err)
	}
}

// reconcile drops selection and highlight entries that no longer exist.
func (e *Engine) reconcile(c graph.Change) {
	e.dirty = true
	if c.Origin != graph.Gesture {
		e.log.Debug("graph changed", "op", c.Op.String(), "origin", c.Origin.String(), "nodes", len(c.Nodes))
	}
	switch c.Op {
	case graph.OpRemoveNodes, graph.OpRemoveEdge, graph.OpReplace:
	default:
		return
	}
	e.sel.Prune(e.g.Has, func(edge graph.Edge) bool { return e.g.HasEdge(edge.Source, edge.Target) })
	if !e.pathIntact(e.highlight) {
		e.highlight = nil
	}
	if e.edgeStart != 0 && !e.g.Has(e.edgeStart) {
		e.cancelMode()
	}
	if e.pathFrom != 0 && !e.g.Has(e.pathFrom) {
		e.cancelMode()
	}
	if e.editing != nil && e.editing.ID != 0 && !e.g.Has(e.editing.ID) {
		e.cancelMode()
	}
}

// pathIntact reports whether every step and hop of path still exists.
func (e *Engine) pathIntact(path []graph.NodeID) bool {
	for i, id := range path {
		if !e.g.Has(id) {
			return false
		}
		if i > 0 && !e.g.HasEdge(path[i-1], id) {
			return false
		}
	}
	return true
}
