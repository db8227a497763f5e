package render

// Style holds the colors and dimensions used to draw a frame.
type Style struct {
	Background string
	GridColor  string
	GridSize   float64
	CullMargin float64 // screen pixels, divided by zoom

	NodeWidth         float64
	NodeHeight        float64
	CornerRadius      float64
	PaddingX          float64
	PaddingY          float64
	Font              string
	LineHeight        float64
	MaxLines          int
	NodeFill          string
	NodeStroke        string
	TextColor         string
	SelectedStroke    string
	HighlightFill     string
	NodeLineWidth     float64
	SelectedLineWidth float64

	EdgeColor         string
	EdgeSelectedColor string
	EdgeHighlight     string
	EdgeLineWidth     float64
	ArrowSize         float64

	PreviewColor     string
	PreviewDotRadius float64
	PathPreview      string
	PathDash         []float64
	MarqueeFill      string
	MarqueeStroke    string
}

// DefaultStyle returns the stock look.
func DefaultStyle() Style {
	return Style{
		Background: "#ffffff",
		GridColor:  "#e1e1e1",
		GridSize:   50,
		CullMargin: 200,

		NodeWidth:         200,
		NodeHeight:        75,
		CornerRadius:      10,
		PaddingX:          12,
		PaddingY:          10,
		Font:              "16px Arial",
		LineHeight:        16,
		MaxLines:          2,
		NodeFill:          "#f9fafb",
		NodeStroke:        "#656262",
		TextColor:         "#111827",
		SelectedStroke:    "#2563eb",
		HighlightFill:     "#ff8874",
		NodeLineWidth:     2,
		SelectedLineWidth: 3,

		EdgeColor:         "#9ca3af",
		EdgeSelectedColor: "#f5bf64",
		EdgeHighlight:     "#ff8874",
		EdgeLineWidth:     4,
		ArrowSize:         14,

		PreviewColor:     "#007bff",
		PreviewDotRadius: 5,
		PathPreview:      "#9333ea",
		PathDash:         []float64{5, 3},
		MarqueeFill:      "rgba(65, 105, 225, 0.2)",
		MarqueeStroke:    "rgb(65, 105, 225)",
	}
}
