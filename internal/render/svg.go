package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type svgState struct {
	sx, sy float64 // scale
	tx, ty float64 // translation, in device units
	fill   string
	stroke string
	width  float64
	dash   []float64
	font   string
	align  string
	base   string
}

// SVG is a Canvas that writes an SVG document. Transforms are applied to
// coordinates as they are emitted so the output needs no nested groups.
type SVG struct {
	w, h  float64
	body  bytes.Buffer
	path  strings.Builder
	st    svgState
	stack []svgState
}

// NewSVG creates an SVG canvas of the given pixel size.
func NewSVG(w, h float64) *SVG {
	return &SVG{
		w: w,
		h: h,
		st: svgState{
			sx: 1, sy: 1,
			fill: "#000000", stroke: "#000000", width: 1,
			font: DefaultStyle().Font, align: "start", base: "alphabetic",
		},
	}
}

// Bytes returns the complete document.
func (s *SVG) Bytes() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.w), num(s.h), num(s.w), num(s.h))
	out.Write(s.body.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func (s *SVG) pt(x, y float64) (float64, float64) {
	return x*s.st.sx + s.st.tx, y*s.st.sy + s.st.ty
}

func (s *SVG) Clear(w, h float64) {
	s.body.Reset()
	s.path.Reset()
	fmt.Fprintf(&s.body, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(w), num(h), DefaultStyle().Background)
}

func (s *SVG) Save() { s.stack = append(s.stack, s.st) }

func (s *SVG) Restore() {
	if n := len(s.stack); n > 0 {
		s.st = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *SVG) Scale(x, y float64) {
	s.st.sx *= x
	s.st.sy *= y
}

func (s *SVG) Translate(x, y float64) {
	s.st.tx += x * s.st.sx
	s.st.ty += y * s.st.sy
}

func (s *SVG) BeginPath() { s.path.Reset() }

func (s *SVG) MoveTo(x, y float64) {
	px, py := s.pt(x, y)
	fmt.Fprintf(&s.path, "M%s %s ", num(px), num(py))
}

func (s *SVG) LineTo(x, y float64) {
	px, py := s.pt(x, y)
	fmt.Fprintf(&s.path, "L%s %s ", num(px), num(py))
}

func (s *SVG) QuadraticCurveTo(cpx, cpy, x, y float64) {
	cx, cy := s.pt(cpx, cpy)
	px, py := s.pt(x, y)
	fmt.Fprintf(&s.path, "Q%s %s %s %s ", num(cx), num(cy), num(px), num(py))
}

func (s *SVG) Arc(x, y, r, start, end float64) {
	cx, cy := s.pt(x, y)
	rr := r * s.st.sx
	if end-start >= 2*math.Pi {
		fmt.Fprintf(&s.path, "M%s %s A%s %s 0 1 0 %s %s A%s %s 0 1 0 %s %s ",
			num(cx+rr), num(cy), num(rr), num(rr), num(cx-rr), num(cy), num(rr), num(rr), num(cx+rr), num(cy))
		return
	}
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	fmt.Fprintf(&s.path, "M%s %s A%s %s 0 %d 1 %s %s ",
		num(cx+rr*math.Cos(start)), num(cy+rr*math.Sin(start)), num(rr), num(rr), large,
		num(cx+rr*math.Cos(end)), num(cy+rr*math.Sin(end)))
}

func (s *SVG) ClosePath() { s.path.WriteString("Z ") }

func (s *SVG) Fill() {
	fmt.Fprintf(&s.body, `<path d="%s" fill="%s"/>`+"\n", strings.TrimSpace(s.path.String()), s.st.fill)
}

func (s *SVG) Stroke() {
	fmt.Fprintf(&s.body, `<path d="%s" fill="none"%s/>`+"\n", strings.TrimSpace(s.path.String()), s.strokeAttrs())
}

func (s *SVG) strokeAttrs() string {
	attrs := fmt.Sprintf(` stroke="%s" stroke-width="%s"`, s.st.stroke, num(s.st.width*s.st.sx))
	if len(s.st.dash) > 0 {
		parts := make([]string, len(s.st.dash))
		for i, d := range s.st.dash {
			parts[i] = num(d * s.st.sx)
		}
		attrs += fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, " "))
	}
	return attrs
}

func (s *SVG) rect(x, y, w, h float64) (float64, float64, float64, float64) {
	px, py := s.pt(x, y)
	return px, py, w * s.st.sx, h * s.st.sy
}

func (s *SVG) FillRect(x, y, w, h float64) {
	px, py, pw, ph := s.rect(x, y, w, h)
	fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(px), num(py), num(pw), num(ph), s.st.fill)
}

func (s *SVG) StrokeRect(x, y, w, h float64) {
	px, py, pw, ph := s.rect(x, y, w, h)
	fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s" fill="none"%s/>`+"\n",
		num(px), num(py), num(pw), num(ph), s.strokeAttrs())
}

func (s *SVG) FillText(text string, x, y float64) {
	px, py := s.pt(x, y)
	anchor := map[string]string{"center": "middle", "end": "end", "right": "end"}[s.st.align]
	if anchor == "" {
		anchor = "start"
	}
	baseline := map[string]string{"middle": "middle", "top": "hanging"}[s.st.base]
	if baseline == "" {
		baseline = "alphabetic"
	}
	var esc bytes.Buffer
	xml.EscapeText(&esc, []byte(text))
	fmt.Fprintf(&s.body, `<text x="%s" y="%s" font-family="Arial, sans-serif" font-size="%s" fill="%s" text-anchor="%s" dominant-baseline="%s">%s</text>`+"\n",
		num(px), num(py), num(fontSize(s.st.font)*s.st.sy), s.st.fill, anchor, baseline, esc.String())
}

func (s *SVG) MeasureText(text string) float64 { return estimateWidth(s.st.font, text) }

func (s *SVG) SetFillStyle(style string)      { s.st.fill = style }
func (s *SVG) SetStrokeStyle(style string)    { s.st.stroke = style }
func (s *SVG) SetLineWidth(w float64)         { s.st.width = w }
func (s *SVG) SetLineDash(segments []float64) { s.st.dash = append([]float64(nil), segments...) }
func (s *SVG) SetFont(font string)            { s.st.font = font }
func (s *SVG) SetTextAlign(align string)      { s.st.align = align }
func (s *SVG) SetTextBaseline(base string)    { s.st.base = base }
