package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func TestScreenWorldInverse(t *testing.T) {
	cases := []struct {
		name string
		ox   float64
		oy   float64
		zoom float64
	}{
		{"identity", 0, 0, 1},
		{"zoomed in", 120, -45, 2.5},
		{"zoomed out", -800, 300, 0.1},
		{"odd", 13.37, 42.42, 0.7},
	}
	points := [][2]float64{{0, 0}, {10, -20}, {-1234.5, 999.25}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New(DefaultOptions())
			v.SetOffset(tc.ox, tc.oy)
			v.Zoom = tc.zoom
			for _, p := range points {
				sx, sy := v.WorldToScreen(p[0], p[1])
				wx, wy := v.ScreenToWorld(sx, sy)
				assert.InDelta(t, p[0], wx, tol)
				assert.InDelta(t, p[1], wy, tol)
			}
		})
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	v := New(DefaultOptions())
	v.SetOffset(37, -12)

	anchors := [][2]float64{{400, 300}, {0, 0}, {1023, 17}}
	for _, a := range anchors {
		wx, wy := v.ScreenToWorld(a[0], a[1])
		require.True(t, v.ZoomAt(a[0], a[1], 1))
		sx, sy := v.WorldToScreen(wx, wy)
		assert.InDelta(t, a[0], sx, 1e-6)
		assert.InDelta(t, a[1], sy, 1e-6)
	}
	assert.InDelta(t, 1.3, v.Zoom, tol)

	wx, wy := v.ScreenToWorld(200, 200)
	require.True(t, v.ZoomAt(200, 200, -1))
	sx, sy := v.WorldToScreen(wx, wy)
	assert.InDelta(t, 200, sx, 1e-6)
	assert.InDelta(t, 200, sy, 1e-6)
}

func TestZoomAtClamps(t *testing.T) {
	v := New(DefaultOptions())
	for i := 0; i < 100; i++ {
		v.ZoomAt(0, 0, 1)
	}
	assert.Equal(t, DefaultMaxZoom, v.Zoom)

	ox, oy := v.OffsetX, v.OffsetY
	assert.False(t, v.ZoomAt(50, 50, 1), "zoom at the limit should report no change")
	assert.Equal(t, ox, v.OffsetX)
	assert.Equal(t, oy, v.OffsetY)

	for i := 0; i < 100; i++ {
		v.ZoomAt(0, 0, -1)
	}
	assert.Equal(t, DefaultMinZoom, v.Zoom)
	assert.False(t, v.ZoomAt(0, 0, -1))
	assert.False(t, v.ZoomAt(0, 0, 0))
}

func TestPan(t *testing.T) {
	v := New(DefaultOptions())
	v.Pan(100, -40)
	assert.InDelta(t, -65, v.OffsetX, tol)
	assert.InDelta(t, 26, v.OffsetY, tol)

	ox, oy := v.PanFrom(10, 10, 20, 0)
	assert.InDelta(t, -3, ox, tol)
	assert.InDelta(t, 10, oy, tol)
	assert.InDelta(t, -65, v.OffsetX, tol, "PanFrom must not modify the viewport")
}

func TestVisible(t *testing.T) {
	v := New(DefaultOptions())
	v.Zoom = 2
	v.SetOffset(100, 50)

	r := v.Visible(800, 600)
	assert.InDelta(t, 50, r.MinX, tol)
	assert.InDelta(t, 25, r.MinY, tol)
	assert.InDelta(t, 450, r.MaxX, tol)
	assert.InDelta(t, 325, r.MaxY, tol)
	assert.True(t, r.Contains(100, 100))
	assert.False(t, r.Grow(10).Contains(30, 100))

	assert.True(t, r.Intersects(Rect{MinX: -5000, MinY: 100, MaxX: 5000, MaxY: 100}))
	assert.True(t, r.Intersects(Rect{MinX: 450, MinY: 325, MaxX: 500, MaxY: 400}), "touching corners overlap")
	assert.False(t, r.Intersects(Rect{MinX: -5000, MinY: 400, MaxX: 5000, MaxY: 400}))
}

func TestResetAndCenter(t *testing.T) {
	v := New(DefaultOptions())
	v.Zoom = 2
	v.SetOffset(5, 5)
	v.Reset()
	assert.Equal(t, 1.0, v.Zoom)
	assert.Zero(t, v.OffsetX)

	v.Zoom = 0.5
	v.CenterOn(Rect{0, 0, 200, 100}, 800, 600)
	sx, sy := v.WorldToScreen(100, 50)
	assert.InDelta(t, 400, sx, tol)
	assert.InDelta(t, 300, sy, tol)
}

func TestOptionsNormalized(t *testing.T) {
	v := New(Options{})
	assert.Equal(t, DefaultOptions(), v.Options())

	v = New(Options{MinZoom: 0.5, MaxZoom: 2, ZoomStep: 0.25, PanSpeed: 1})
	v.SetZoom(10)
	assert.Equal(t, 2.0, v.Zoom)
}
