package render

import "encoding/json"

// Op is one recorded canvas call. The browser host replays ops in order
// against a real 2D context.
type Op struct {
	Op   string    `json:"op"`
	Args []float64 `json:"a,omitempty"`
	Text string    `json:"t,omitempty"`
}

// Recorder is a Canvas that records every call as an Op.
type Recorder struct {
	ops  []Op
	font string
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{font: DefaultStyle().Font}
}

// Ops returns the recorded calls.
func (r *Recorder) Ops() []Op { return r.ops }

// Reset drops every recorded call so the recorder can be reused.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

// MarshalJSON encodes the op list.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.ops)
}

func (r *Recorder) add(op string, args ...float64) {
	r.ops = append(r.ops, Op{Op: op, Args: args})
}

func (r *Recorder) addText(op, text string, args ...float64) {
	r.ops = append(r.ops, Op{Op: op, Text: text, Args: args})
}

func (r *Recorder) Clear(w, h float64)     { r.add("clearRect", 0, 0, w, h) }
func (r *Recorder) Save()                  { r.add("save") }
func (r *Recorder) Restore()               { r.add("restore") }
func (r *Recorder) Scale(x, y float64)     { r.add("scale", x, y) }
func (r *Recorder) Translate(x, y float64) { r.add("translate", x, y) }
func (r *Recorder) BeginPath()             { r.add("beginPath") }
func (r *Recorder) MoveTo(x, y float64)    { r.add("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)    { r.add("lineTo", x, y) }
func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.add("quadraticCurveTo", cpx, cpy, x, y)
}
func (r *Recorder) Arc(x, y, rad, start, end float64)  { r.add("arc", x, y, rad, start, end) }
func (r *Recorder) ClosePath()                         { r.add("closePath") }
func (r *Recorder) Fill()                              { r.add("fill") }
func (r *Recorder) Stroke()                            { r.add("stroke") }
func (r *Recorder) FillRect(x, y, w, h float64)        { r.add("fillRect", x, y, w, h) }
func (r *Recorder) StrokeRect(x, y, w, h float64)      { r.add("strokeRect", x, y, w, h) }
func (r *Recorder) FillText(text string, x, y float64) { r.addText("fillText", text, x, y) }
func (r *Recorder) SetFillStyle(style string)          { r.addText("fillStyle", style) }
func (r *Recorder) SetStrokeStyle(style string)        { r.addText("strokeStyle", style) }
func (r *Recorder) SetLineWidth(w float64)             { r.add("lineWidth", w) }
func (r *Recorder) SetLineDash(segments []float64) {
	r.ops = append(r.ops, Op{Op: "setLineDash", Args: append([]float64{}, segments...)})
}
func (r *Recorder) SetTextAlign(align string)       { r.addText("textAlign", align) }
func (r *Recorder) SetTextBaseline(baseline string) { r.addText("textBaseline", baseline) }

func (r *Recorder) SetFont(font string) {
	r.font = font
	r.addText("font", font)
}

// MeasureText estimates text width from the current font size.
func (r *Recorder) MeasureText(text string) float64 {
	return estimateWidth(r.font, text)
}
