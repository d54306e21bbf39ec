package scene

// Stroke describes how an outline or line is drawn.
type Stroke struct {
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Dash    string  `json:"dash,omitempty"`    // SVG dash array, e.g. "6 9"
	Opacity string  `json:"opacity,omitempty"` // number or var() reference
	Cap     string  `json:"cap,omitempty"`
	Join    string  `json:"join,omitempty"`
}

// Rect is a rounded rectangle.
type Rect struct {
	X, Y, W, H float64
	RX         float64
	Fill       string
	Stroke     Stroke
	Filter     string
	Class      string
}

// Text is a single-line label. Y is the baseline, or the vertical centre when
// Baseline is "middle".
type Text struct {
	X, Y       float64
	Content    string
	FontSize   float64
	FontWeight int
	Anchor     string
	Baseline   string
	Fill       string
	Filter     string
	Class      string
}

// Circle is a filled circle.
type Circle struct {
	CX, CY, R float64
	Fill      string
	Stroke    Stroke
	Filter    string
}

// Path is a single cubic Bézier segment from From to To.
type Path struct {
	From, C1, C2, To Point
	Fill             string
	Stroke           Stroke
	Filter           string
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Stroke
	Filter         string
}

func (Rect) Kind() Kind   { return KindRect }
func (Text) Kind() Kind   { return KindText }
func (Circle) Kind() Kind { return KindCircle }
func (Path) Kind() Kind   { return KindPath }
func (Line) Kind() Kind   { return KindLine }

func (Rect) primitive()   {}
func (Text) primitive()   {}
func (Circle) primitive() {}
func (Path) primitive()   {}
func (Line) primitive()   {}

func (r Rect) Bounds() Bounds {
	return Bounds{MinX: r.X, MinY: r.Y, MaxX: r.X + r.W, MaxY: r.Y + r.H}
}

// Bounds of a text is its anchor point; glyph extents depend on the font.
func (t Text) Bounds() Bounds {
	return Bounds{MinX: t.X, MinY: t.Y, MaxX: t.X, MaxY: t.Y}
}

func (c Circle) Bounds() Bounds {
	return Bounds{MinX: c.CX - c.R, MinY: c.CY - c.R, MaxX: c.CX + c.R, MaxY: c.CY + c.R}
}

// Bounds of a path is the hull of its control polygon, which contains the
// curve.
func (p Path) Bounds() Bounds {
	b := Bounds{MinX: p.From.X, MinY: p.From.Y, MaxX: p.From.X, MaxY: p.From.Y}
	for _, q := range []Point{p.C1, p.C2, p.To} {
		b = b.Union(Bounds{MinX: q.X, MinY: q.Y, MaxX: q.X, MaxY: q.Y})
	}
	return b
}

func (l Line) Bounds() Bounds {
	return Bounds{
		MinX: min(l.X1, l.X2), MinY: min(l.Y1, l.Y2),
		MaxX: max(l.X1, l.X2), MaxY: max(l.Y1, l.Y2),
	}
}
