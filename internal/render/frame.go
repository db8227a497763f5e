package render

import (
	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/viewport"
)

// Line is a world-space segment, used for the pointer previews.
type Line struct {
	FromX, FromY float64
	ToX, ToY     float64
}

// Frame is everything needed to draw one frame. It is built fresh by the
// engine for each draw and is not modified by the renderer.
type Frame struct {
	Width, Height float64
	Zoom          float64
	OffsetX       float64
	OffsetY       float64

	Nodes []graph.Node
	Edges []graph.Edge

	Selected     map[graph.NodeID]bool
	Primary      graph.NodeID
	SelectedEdge *graph.Edge
	Highlight    []graph.NodeID

	Marquee     *viewport.Rect
	EdgePreview *Line
	PathPreview *Line
}

// visible returns the world rectangle on screen.
func (f Frame) visible() viewport.Rect {
	z := f.zoom()
	minX, minY := f.OffsetX/z, f.OffsetY/z
	return viewport.Rect{MinX: minX, MinY: minY, MaxX: minX + f.Width/z, MaxY: minY + f.Height/z}
}

func (f Frame) zoom() float64 {
	if f.Zoom <= 0 {
		return 1
	}
	return f.Zoom
}

// highlightIndex maps each highlighted step to its position in the path.
func (f Frame) highlightIndex() map[graph.NodeID]int {
	idx := make(map[graph.NodeID]int, len(f.Highlight))
	for i, id := range f.Highlight {
		if _, seen := idx[id]; !seen {
			idx[id] = i
		}
	}
	return idx
}
