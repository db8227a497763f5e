// Package viewport maps between screen pixels and world coordinates.
//
// The world origin sits at screen position -Offset, scaled by Zoom:
//
//	world  = (screen + offset) / zoom
//	screen = world*zoom - offset
package viewport

import "math"

// Defaults for a new viewport.
const (
	DefaultMinZoom  = 0.1
	DefaultMaxZoom  = 3.0
	DefaultZoomStep = 0.1
	DefaultPanSpeed = 0.65
)

// Options bounds the zoom range and sets the step and pan factor.
type Options struct {
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
	PanSpeed float64
}

// DefaultOptions returns the stock zoom limits and pan speed.
func DefaultOptions() Options {
	return Options{
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
		ZoomStep: DefaultZoomStep,
		PanSpeed: DefaultPanSpeed,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MinZoom <= 0 {
		o.MinZoom = d.MinZoom
	}
	if o.MaxZoom < o.MinZoom {
		o.MaxZoom = math.Max(d.MaxZoom, o.MinZoom)
	}
	if o.ZoomStep <= 0 {
		o.ZoomStep = d.ZoomStep
	}
	if o.PanSpeed <= 0 {
		o.PanSpeed = d.PanSpeed
	}
	return o
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Intersects reports whether r and o overlap, touching edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Grow returns r expanded by m on every side.
func (r Rect) Grow(m float64) Rect {
	return Rect{r.MinX - m, r.MinY - m, r.MaxX + m, r.MaxY + m}
}

// Viewport holds the pan offset and zoom factor.
type Viewport struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Zoom    float64 `json:"zoom"`

	opts Options
}

// New returns a viewport at zoom 1 with no offset.
func New(opts Options) *Viewport {
	return &Viewport{Zoom: 1, opts: opts.normalized()}
}

// Options returns the limits in effect.
func (v *Viewport) Options() Options { return v.opts }

// ScreenToWorld converts a screen pixel to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx/v.Zoom + v.OffsetX/v.Zoom, sy/v.Zoom + v.OffsetY/v.Zoom
}

// WorldToScreen converts world coordinates to a screen pixel.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return wx*v.Zoom - v.OffsetX, wy*v.Zoom - v.OffsetY
}

// ZoomAt steps the zoom in direction (positive zooms in) while keeping the
// world point under (sx, sy) fixed on screen. It reports whether the zoom
// changed; at a limit nothing is modified.
func (v *Viewport) ZoomAt(sx, sy float64, direction int) bool {
	if direction == 0 {
		return false
	}
	step := v.opts.ZoomStep
	if direction < 0 {
		step = -step
	}
	next := clamp(round(v.Zoom+step), v.opts.MinZoom, v.opts.MaxZoom)
	if next == v.Zoom {
		return false
	}

	wx, wy := v.ScreenToWorld(sx, sy)
	v.Zoom = next
	v.OffsetX = wx*next - sx
	v.OffsetY = wy*next - sy
	return true
}

// SetZoom sets the zoom directly, clamped to the configured range, keeping
// the offset untouched.
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = clamp(z, v.opts.MinZoom, v.opts.MaxZoom)
}

// Pan moves the view by a screen-pixel drag delta scaled by the pan speed.
// Dragging right reveals content on the left.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX -= dx * v.opts.PanSpeed
	v.OffsetY -= dy * v.opts.PanSpeed
}

// PanFrom computes the offset for a drag that started at originX/originY
// and has since moved by (dx, dy) screen pixels. The viewport is not
// modified so callers can coalesce updates.
func (v *Viewport) PanFrom(originX, originY, dx, dy float64) (ox, oy float64) {
	return originX - dx*v.opts.PanSpeed, originY - dy*v.opts.PanSpeed
}

// SetOffset commits a pan offset.
func (v *Viewport) SetOffset(ox, oy float64) {
	v.OffsetX, v.OffsetY = ox, oy
}

// Visible returns the world-space rectangle covered by a w x h screen.
func (v *Viewport) Visible(w, h float64) Rect {
	minX, minY := v.ScreenToWorld(0, 0)
	maxX, maxY := v.ScreenToWorld(w, h)
	return Rect{minX, minY, maxX, maxY}
}

// Reset returns to zoom 1 with no offset.
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.OffsetX, v.OffsetY = 0, 0
}

// CenterOn places the center of bounds in the middle of a w x h screen at
// the current zoom.
func (v *Viewport) CenterOn(bounds Rect, w, h float64) {
	cx := (bounds.MinX + bounds.MaxX) / 2
	cy := (bounds.MinY + bounds.MaxY) / 2
	v.OffsetX = cx*v.Zoom - w/2
	v.OffsetY = cy*v.Zoom - h/2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round trims float drift from repeated 0.1 steps.
func round(z float64) float64 {
	return math.Round(z*1e6) / 1e6
}
