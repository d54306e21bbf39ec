// Package scene defines the render engine's output: a tree of positioned,
// typed visual primitives.
//
// A [Scene] is a canvas holding static [Defs] (filters and gradients) and one
// [Group] per roadmap phase. Every group holds [Primitive] values, each one of
// the concrete kinds [Rect], [Text], [Circle], [Path] or [Line]. Coordinates
// are absolute canvas coordinates with the origin at the top-left corner and y
// growing downwards.
//
// Style fields hold references rather than literal values: fills and strokes
// are either "var(--name)" custom properties or "url(#id)" references into
// Defs. Sinks resolve them for their target surface.
//
// Scenes are values. Nothing in this package mutates a scene after it is
// built; the layout engine rebuilds one from scratch for every render.
package scene

// Kind identifies the concrete type of a [Primitive].
type Kind string

// Primitive kinds.
const (
	KindRect   Kind = "rect"
	KindText   Kind = "text"
	KindCircle Kind = "circle"
	KindPath   Kind = "path"
	KindLine   Kind = "line"
)

// Primitive is a positioned visual element. The set of implementations is
// closed: Rect, Text, Circle, Path and Line.
type Primitive interface {
	Kind() Kind
	// Bounds returns the vertical extent used for canvas sizing checks.
	Bounds() Bounds
	primitive()
}

// Bounds is an axis-aligned extent.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Union returns the smallest Bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		MinX: min(b.MinX, o.MinX), MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX), MaxY: max(b.MaxY, o.MaxY),
	}
}

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scene is the complete renderable output for one roadmap.
type Scene struct {
	Width      float64
	Height     float64
	Background string
	Defs       Defs
	Groups     []Group
}

// Group collects the primitives of one phase, in paint order.
type Group struct {
	ID    string
	Class string
	Index int
	Items []Primitive
}

// Bounds returns the union of the bounds of every primitive in the scene, and
// false when the scene holds no primitives.
func (s Scene) Bounds() (Bounds, bool) {
	var (
		out   Bounds
		found bool
	)
	for _, g := range s.Groups {
		for _, p := range g.Items {
			if !found {
				out, found = p.Bounds(), true
				continue
			}
			out = out.Union(p.Bounds())
		}
	}
	return out, found
}

// Count returns how many primitives of kind k the scene holds.
func (s Scene) Count(k Kind) int {
	n := 0
	for _, g := range s.Groups {
		for _, p := range g.Items {
			if p.Kind() == k {
				n++
			}
		}
	}
	return n
}
