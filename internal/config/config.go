package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/pathseek/internal/render"
	"github.com/msalah0e/pathseek/internal/spatial"
	"github.com/msalah0e/pathseek/internal/store"
	"github.com/msalah0e/pathseek/internal/viewport"
)

// Config holds pathseek configuration.
type Config struct {
	UI       UIConfig       `toml:"ui"`
	Storage  StorageConfig  `toml:"storage"`
	Viewport ViewportConfig `toml:"viewport"`
	Canvas   CanvasConfig   `toml:"canvas"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
	Serve    ServeConfig    `toml:"serve"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Color bool `toml:"color"`
}

// StorageConfig selects where the graph and its history are kept.
type StorageConfig struct {
	Backend  string `toml:"backend"` // "file", "sqlite", "memory"
	Path     string `toml:"path"`
	Encrypt  bool   `toml:"encrypt"`
	Compress bool   `toml:"compress"`
}

// ViewportConfig bounds zooming and sets the drag-pan speed.
type ViewportConfig struct {
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"`
	PanSpeed float64 `toml:"pan_speed"`
}

// CanvasConfig sizes steps, hit areas and the background grid.
type CanvasConfig struct {
	NodeWidth     float64 `toml:"node_width"`
	NodeHeight    float64 `toml:"node_height"`
	EdgeRadius    float64 `toml:"edge_radius"`
	EdgeThreshold float64 `toml:"edge_threshold"`
	GridSize      float64 `toml:"grid_size"`
	CullMargin    float64 `toml:"cull_margin"`
	InfoTTLMillis int     `toml:"info_ttl_ms"`
}

// HistoryConfig controls undo depth.
type HistoryConfig struct {
	Capacity int  `toml:"capacity"`
	Persist  bool `toml:"persist"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
}

// ServeConfig controls the browser canvas host.
type ServeConfig struct {
	Addr string `toml:"addr"`
	FPS  int    `toml:"fps"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI:      UIConfig{Color: true},
		Storage: StorageConfig{Backend: store.BackendFile, Encrypt: true},
		Viewport: ViewportConfig{
			MinZoom:  viewport.DefaultMinZoom,
			MaxZoom:  viewport.DefaultMaxZoom,
			ZoomStep: viewport.DefaultZoomStep,
			PanSpeed: viewport.DefaultPanSpeed,
		},
		Canvas: CanvasConfig{
			NodeWidth:     200,
			NodeHeight:    75,
			EdgeRadius:    40,
			EdgeThreshold: 5,
			GridSize:      50,
			CullMargin:    200,
			InfoTTLMillis: 2000,
		},
		History: HistoryConfig{Capacity: 50, Persist: true},
		Log:     LogConfig{Level: "warn", Format: "text"},
		Serve:   ServeConfig{Addr: "127.0.0.1:7878", FPS: 60},
	}
}

// ConfigDir returns the pathseek config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pathseek")
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, falling back to defaults if it doesn't exist
// or cannot be parsed.
func Load() *Config {
	cfg, err := LoadFile(Path())
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile reads a config file over the defaults. A missing file yields the
// defaults without error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}

// StoreOptions maps [storage] onto store.Options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:  c.Storage.Backend,
		Path:     c.Storage.Path,
		Encrypt:  c.Storage.Encrypt,
		Compress: c.Storage.Compress,
	}
}

// ViewportOptions maps [viewport] onto viewport.Options.
func (c *Config) ViewportOptions() viewport.Options {
	return viewport.Options{
		MinZoom:  c.Viewport.MinZoom,
		MaxZoom:  c.Viewport.MaxZoom,
		ZoomStep: c.Viewport.ZoomStep,
		PanSpeed: c.Viewport.PanSpeed,
	}
}

// Metrics maps [canvas] onto hit-test metrics.
func (c *Config) Metrics() spatial.Metrics {
	return spatial.Metrics{
		NodeWidth:     c.Canvas.NodeWidth,
		NodeHeight:    c.Canvas.NodeHeight,
		EdgeRadius:    c.Canvas.EdgeRadius,
		EdgeThreshold: c.Canvas.EdgeThreshold,
	}
}

// Style returns the default render style sized by [canvas].
func (c *Config) Style() render.Style {
	s := render.DefaultStyle()
	if c.Canvas.NodeWidth > 0 && c.Canvas.NodeHeight > 0 {
		s.NodeWidth, s.NodeHeight = c.Canvas.NodeWidth, c.Canvas.NodeHeight
	}
	if c.Canvas.GridSize > 0 {
		s.GridSize = c.Canvas.GridSize
	}
	if c.Canvas.CullMargin > 0 {
		s.CullMargin = c.Canvas.CullMargin
	}
	return s
}

// InfoTTL is how long informational status messages stay visible.
func (c *Config) InfoTTL() time.Duration {
	if c.Canvas.InfoTTLMillis <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Canvas.InfoTTLMillis) * time.Millisecond
}
