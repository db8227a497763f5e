package render

import (
	"math"
	"strings"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/viewport"
)

// Renderer draws frames with a fixed style.
type Renderer struct {
	style Style
}

// New creates a renderer. Zero sizes in s fall back to DefaultStyle.
func New(s Style) *Renderer {
	d := DefaultStyle()
	if s.NodeWidth <= 0 || s.NodeHeight <= 0 {
		s.NodeWidth, s.NodeHeight = d.NodeWidth, d.NodeHeight
	}
	if s.GridSize <= 0 {
		s.GridSize = d.GridSize
	}
	if s.MaxLines <= 0 {
		s.MaxLines = d.MaxLines
	}
	if s.LineHeight <= 0 {
		s.LineHeight = d.LineHeight
	}
	if s.Font == "" {
		s.Font = d.Font
	}
	return &Renderer{style: s}
}

// Style returns the style in use.
func (r *Renderer) Style() Style { return r.style }

// GridSpacing returns the world distance between grid lines at zoom. Lines
// spread out as the view zooms out so they never crowd together.
func (r *Renderer) GridSpacing(zoom float64) float64 {
	switch {
	case zoom >= 0.5:
		return r.style.GridSize
	case zoom >= 0.3:
		return r.style.GridSize * 2
	default:
		return r.style.GridSize * 5
	}
}

// Draw paints f onto c.
func (r *Renderer) Draw(c Canvas, f Frame) {
	z := f.zoom()

	c.Clear(f.Width, f.Height)
	c.Save()
	c.Scale(z, z)
	c.Translate(-f.OffsetX/z, -f.OffsetY/z)

	view := f.visible()
	r.drawGrid(c, view, z)

	cull := view.Grow(r.style.CullMargin / z)
	hl := f.highlightIndex()
	nodes := make(map[graph.NodeID]graph.Node, len(f.Nodes))
	for _, n := range f.Nodes {
		nodes[n.ID] = n
	}

	for _, e := range f.Edges {
		src, ok1 := nodes[e.Source]
		dst, ok2 := nodes[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		span := viewport.Rect{
			MinX: math.Min(src.X, dst.X), MinY: math.Min(src.Y, dst.Y),
			MaxX: math.Max(src.X, dst.X), MaxY: math.Max(src.Y, dst.Y),
		}
		if !span.Intersects(cull) {
			continue
		}
		si, inS := hl[e.Source]
		ti, inT := hl[e.Target]
		highlighted := len(f.Highlight) >= 2 && inS && inT && si+1 == ti
		selected := f.SelectedEdge != nil && *f.SelectedEdge == e
		r.drawEdge(c, src, dst, highlighted, selected)
	}

	if f.EdgePreview != nil {
		r.drawEdgePreview(c, *f.EdgePreview)
	}
	if f.Marquee != nil {
		r.drawMarquee(c, *f.Marquee, z)
	}
	if f.PathPreview != nil {
		r.drawPathPreview(c, *f.PathPreview)
	}

	hw, hh := r.style.NodeWidth/2, r.style.NodeHeight/2
	for _, n := range f.Nodes {
		if n.X+hw < cull.MinX || n.X-hw > cull.MaxX || n.Y+hh < cull.MinY || n.Y-hh > cull.MaxY {
			continue
		}
		_, highlighted := hl[n.ID]
		selected := n.ID == f.Primary || f.Selected[n.ID]
		r.drawNode(c, n, highlighted, selected)
	}

	c.Restore()
}

func (r *Renderer) drawGrid(c Canvas, view viewport.Rect, z float64) {
	size := r.GridSpacing(z)
	startX := math.Floor(view.MinX/size) * size
	startY := math.Floor(view.MinY/size) * size
	endX := math.Ceil(view.MaxX/size) * size
	endY := math.Ceil(view.MaxY/size) * size

	c.SetStrokeStyle(r.style.GridColor)
	c.SetLineWidth(0.5 / z)
	for x := startX; x <= endX; x += size {
		c.BeginPath()
		c.MoveTo(x, startY)
		c.LineTo(x, endY)
		c.Stroke()
	}
	for y := startY; y <= endY; y += size {
		c.BeginPath()
		c.MoveTo(startX, y)
		c.LineTo(endX, y)
		c.Stroke()
	}
}

// boxExit returns how far from a box center a ray at angle leaves the box.
func boxExit(angle, hw, hh float64) float64 {
	cos, sin := math.Abs(math.Cos(angle)), math.Abs(math.Sin(angle))
	switch {
	case cos*hh > sin*hw:
		return hw / cos
	default:
		return hh / sin
	}
}

func (r *Renderer) drawEdge(c Canvas, src, dst graph.Node, highlighted, selected bool) {
	s := r.style
	angle := math.Atan2(dst.Y-src.Y, dst.X-src.X)
	cos, sin := math.Cos(angle), math.Sin(angle)
	hw, hh := s.NodeWidth/2, s.NodeHeight/2

	t := boxExit(angle, hw, hh)
	startX, startY := src.X+cos*t, src.Y+sin*t
	endX, endY := dst.X-cos*t, dst.Y-sin*t

	color := s.EdgeColor
	switch {
	case selected:
		color = s.EdgeSelectedColor
	case highlighted:
		color = s.EdgeHighlight
	}

	// Stop the line short so its square end stays under the arrowhead.
	back := s.EdgeLineWidth / 2
	c.SetStrokeStyle(color)
	c.SetLineWidth(s.EdgeLineWidth)
	c.BeginPath()
	c.MoveTo(startX, startY)
	c.LineTo(endX-back*cos, endY-back*sin)
	c.Stroke()

	c.BeginPath()
	c.MoveTo(endX, endY)
	c.LineTo(endX-s.ArrowSize*math.Cos(angle-math.Pi/6), endY-s.ArrowSize*math.Sin(angle-math.Pi/6))
	c.LineTo(endX-s.ArrowSize*math.Cos(angle+math.Pi/6), endY-s.ArrowSize*math.Sin(angle+math.Pi/6))
	c.ClosePath()
	c.SetFillStyle(color)
	c.Fill()
}

func (r *Renderer) drawEdgePreview(c Canvas, l Line) {
	c.BeginPath()
	c.MoveTo(l.FromX, l.FromY)
	c.LineTo(l.ToX, l.ToY)
	c.SetStrokeStyle(r.style.PreviewColor)
	c.SetLineWidth(2)
	c.Stroke()

	c.BeginPath()
	c.Arc(l.ToX, l.ToY, r.style.PreviewDotRadius, 0, 2*math.Pi)
	c.SetFillStyle(r.style.HighlightFill)
	c.Fill()
}

func (r *Renderer) drawMarquee(c Canvas, m viewport.Rect, z float64) {
	w, h := m.MaxX-m.MinX, m.MaxY-m.MinY
	c.SetFillStyle(r.style.MarqueeFill)
	c.FillRect(m.MinX, m.MinY, w, h)
	c.SetStrokeStyle(r.style.MarqueeStroke)
	c.SetLineWidth(1.5 / z)
	c.StrokeRect(m.MinX, m.MinY, w, h)
}

func (r *Renderer) drawPathPreview(c Canvas, l Line) {
	c.BeginPath()
	c.MoveTo(l.FromX, l.FromY)
	c.LineTo(l.ToX, l.ToY)
	c.SetStrokeStyle(r.style.PathPreview)
	c.SetLineWidth(2)
	c.SetLineDash(r.style.PathDash)
	c.Stroke()
	c.SetLineDash(nil)
}

func (r *Renderer) drawNode(c Canvas, n graph.Node, highlighted, selected bool) {
	s := r.style
	x, y := n.X-s.NodeWidth/2, n.Y-s.NodeHeight/2
	w, h, cr := s.NodeWidth, s.NodeHeight, s.CornerRadius

	c.BeginPath()
	c.MoveTo(x+cr, y)
	c.LineTo(x+w-cr, y)
	c.QuadraticCurveTo(x+w, y, x+w, y+cr)
	c.LineTo(x+w, y+h-cr)
	c.QuadraticCurveTo(x+w, y+h, x+w-cr, y+h)
	c.LineTo(x+cr, y+h)
	c.QuadraticCurveTo(x, y+h, x, y+h-cr)
	c.LineTo(x, y+cr)
	c.QuadraticCurveTo(x, y, x+cr, y)
	c.ClosePath()

	if highlighted {
		c.SetFillStyle(s.HighlightFill)
	} else {
		c.SetFillStyle(s.NodeFill)
	}
	c.Fill()

	if selected {
		c.SetStrokeStyle(s.SelectedStroke)
		c.SetLineWidth(s.SelectedLineWidth)
	} else {
		c.SetStrokeStyle(s.NodeStroke)
		c.SetLineWidth(s.NodeLineWidth)
	}
	c.Stroke()

	c.SetFont(s.Font)
	c.SetFillStyle(s.TextColor)
	c.SetTextAlign("center")
	c.SetTextBaseline("middle")

	lines := WrapText(c.MeasureText, n.Text, w-2*s.PaddingX, s.MaxLines)
	lh := s.LineHeight
	total := float64(len(lines)) * lh
	startY := n.Y - total/2 + lh/2

	top, bottom := y+s.PaddingY, y+h-s.PaddingY
	if startY-lh/2 < top {
		startY = top + lh/2
	} else if startY+total-lh/2 > bottom {
		startY = bottom - total + lh/2
	}
	for i, line := range lines {
		c.FillText(line, n.X, startY+float64(i)*lh)
	}
}

// WrapText breaks text into lines no wider than maxWidth and keeps at most
// maxLines of them, ending the last kept line with "..." when lines were
// dropped. Explicit newlines always start a new line.
func WrapText(measure func(string) float64, text string, maxWidth float64, maxLines int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if len(lines) > 0 || para != "" {
				lines = append(lines, "")
			}
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if measure(candidate) > maxWidth {
				lines = append(lines, current)
				current = word
			} else {
				current = candidate
			}
		}
		lines = append(lines, current)
	}

	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}
	kept := lines[:maxLines]
	last := []rune(kept[maxLines-1])
	for measure(string(last)+"...") > maxWidth && len(last) > 3 {
		last = last[:len(last)-1]
	}
	kept[maxLines-1] = string(last) + "..."
	return kept
}
