package sink

import (
	"encoding/json"

	"github.com/matzehuels/roadtower/pkg/render/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	withDefs bool
}

// WithJSONDefs includes the filter and gradient definitions in the output.
func WithJSONDefs() JSONOption { return func(r *jsonRenderer) { r.withDefs = true } }

type jsonOutput struct {
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Background string         `json:"background,omitempty"`
	Defs       *scene.Defs    `json:"defs,omitempty"`
	Groups     []jsonGroup    `json:"groups"`
	Counts     map[string]int `json:"counts"`
}

type jsonGroup struct {
	ID    string          `json:"id"`
	Class string          `json:"class,omitempty"`
	Index int             `json:"index"`
	Items []jsonPrimitive `json:"items"`
}

// jsonPrimitive flattens every primitive kind into one tagged record.
type jsonPrimitive struct {
	Kind scene.Kind `json:"kind"`

	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	W  float64 `json:"width,omitempty"`
	H  float64 `json:"height,omitempty"`
	RX float64 `json:"rx,omitempty"`
	R  float64 `json:"r,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Points []scene.Point `json:"points,omitempty"` // path: from, c1, c2, to

	Content    string  `json:"content,omitempty"`
	FontSize   float64 `json:"font_size,omitempty"`
	FontWeight int     `json:"font_weight,omitempty"`
	Anchor     string  `json:"anchor,omitempty"`
	Baseline   string  `json:"baseline,omitempty"`

	Fill   string        `json:"fill,omitempty"`
	Stroke *scene.Stroke `json:"stroke,omitempty"`
	Filter string        `json:"filter,omitempty"`
	Class  string        `json:"class,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document in which
// every primitive carries a "kind" tag. It is intended for external
// renderers and for inspecting layouts in tests; it does not modify s.
func RenderJSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      s.Width,
		Height:     s.Height,
		Background: s.Background,
		Groups:     make([]jsonGroup, 0, len(s.Groups)),
		Counts:     make(map[string]int),
	}
	if r.withDefs {
		defs := s.Defs
		out.Defs = &defs
	}

	for _, g := range s.Groups {
		jg := jsonGroup{ID: g.ID, Class: g.Class, Index: g.Index, Items: make([]jsonPrimitive, 0, len(g.Items))}
		for _, p := range g.Items {
			jg.Items = append(jg.Items, toJSONPrimitive(p))
			out.Counts[string(p.Kind())]++
		}
		out.Groups = append(out.Groups, jg)
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONPrimitive(p scene.Primitive) jsonPrimitive {
	out := jsonPrimitive{Kind: p.Kind()}
	switch p := p.(type) {
	case scene.Rect:
		out.X, out.Y, out.W, out.H, out.RX = p.X, p.Y, p.W, p.H, p.RX
		out.Fill, out.Stroke, out.Filter, out.Class = p.Fill, strokeOrNil(p.Stroke), p.Filter, p.Class
	case scene.Text:
		out.X, out.Y = p.X, p.Y
		out.Content, out.FontSize, out.FontWeight = p.Content, p.FontSize, p.FontWeight
		out.Anchor, out.Baseline = p.Anchor, p.Baseline
		out.Fill, out.Filter, out.Class = p.Fill, p.Filter, p.Class
	case scene.Circle:
		out.X, out.Y, out.R = p.CX, p.CY, p.R
		out.Fill, out.Stroke, out.Filter = p.Fill, strokeOrNil(p.Stroke), p.Filter
	case scene.Path:
		out.Points = []scene.Point{p.From, p.C1, p.C2, p.To}
		out.Fill, out.Stroke, out.Filter = p.Fill, strokeOrNil(p.Stroke), p.Filter
	case scene.Line:
		out.X, out.Y, out.X2, out.Y2 = p.X1, p.Y1, p.X2, p.Y2
		out.Stroke, out.Filter = strokeOrNil(p.Stroke), p.Filter
	}
	return out
}

func strokeOrNil(s scene.Stroke) *scene.Stroke {
	if s == (scene.Stroke{}) {
		return nil
	}
	return &s
}
