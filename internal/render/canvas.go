// Package render draws a frame of the step canvas. It only reads the frame
// it is handed and never touches graph, selection or viewport state.
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Canvas is the subset of the HTML canvas 2D context the renderer uses.
type Canvas interface {
	Clear(w, h float64)
	Save()
	Restore()
	Scale(x, y float64)
	Translate(x, y float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	Arc(x, y, r, start, end float64)
	ClosePath()
	Fill()
	Stroke()
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	FillText(text string, x, y float64)
	MeasureText(text string) float64

	SetFillStyle(style string)
	SetStrokeStyle(style string)
	SetLineWidth(w float64)
	SetLineDash(segments []float64)
	SetFont(font string)
	SetTextAlign(align string)
	SetTextBaseline(baseline string)
}

// glyphWidth is the average advance of a sans-serif glyph relative to the
// font size. Canvases without real font metrics estimate text width with it.
const glyphWidth = 0.55

// estimateWidth approximates the rendered width of text in the given CSS
// font, e.g. "16px Arial".
func estimateWidth(font, text string) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize(font) * glyphWidth
}

func fontSize(font string) float64 {
	for _, part := range strings.Fields(font) {
		if px, ok := strings.CutSuffix(part, "px"); ok {
			if v, err := strconv.ParseFloat(px, 64); err == nil && v > 0 {
				return v
			}
		}
	}
	return 10
}
