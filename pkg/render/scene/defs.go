package scene

// FilterKind selects the filter pipeline a sink emits for a [Filter].
type FilterKind string

const (
	// FilterShadow blurs the source alpha, offsets it and composites a flood
	// colour underneath the graphic.
	FilterShadow FilterKind = "shadow"
	// FilterGlow blurs the source graphic itself and composites a flood
	// colour around it.
	FilterGlow FilterKind = "glow"
)

// Defs holds the static definitions primitives refer to by id.
type Defs struct {
	Filters   []Filter   `json:"filters"`
	Gradients []Gradient `json:"gradients"`
}

// Filter is a drop shadow or glow definition.
type Filter struct {
	ID           string     `json:"id"`
	Kind         FilterKind `json:"kind"`
	StdDeviation float64    `json:"std_deviation"`
	DY           float64    `json:"dy,omitempty"`
	Flood        string     `json:"flood"`
}

// Gradient is a linear gradient between two colours along a direction given
// in percent ("0%" -> "100%").
type Gradient struct {
	ID    string `json:"id"`
	X1    string `json:"x1"`
	Y1    string `json:"y1"`
	X2    string `json:"x2"`
	Y2    string `json:"y2"`
	Stops []Stop `json:"stops"`
}

// Stop is a single gradient stop.
type Stop struct {
	Offset  string  `json:"offset"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Ref returns the url(#id) reference for a definition id.
func Ref(id string) string {
	return "url(#" + id + ")"
}
