// Package styles holds the fixed visual style of roadmap diagrams.
//
// The style is data, not geometry: a set of filter and gradient definitions
// ([Defs]), ids primitives use to reference them, and a [Palette] of CSS
// custom properties. Primitives carry "var(--name)" references so that a host
// page can restyle a diagram; sinks emit the palette as fallback values so a
// standalone file renders the same way.
package styles

import (
	"maps"
	"slices"

	"github.com/matzehuels/roadtower/pkg/render/scene"
)

// Definition ids.
const (
	FilterTextShadow      = "text-shadow"
	FilterMilestoneShadow = "box-shadow-milestone"
	FilterSubtopicShadow  = "box-shadow-subtopic"
	FilterBadgeShadow     = "box-shadow-badge"
	FilterPhaseLineGlow   = "phase-line-glow"
	FilterConnectorGlow   = "connector-glow"
	GradientMilestone     = "milestone-gradient"
	GradientSubtopic      = "subtopic-gradient"
)

// Custom property names.
const (
	ColorBackground       = "background-color"
	ColorTextPrimary      = "text-primary"
	ColorTextSecondary    = "text-secondary"
	ColorBorderDark       = "border-dark"
	ColorBadgeBorder      = "badge-border"
	ColorConnector        = "connector-color"
	OpacityConnector      = "connector-opacity"
	ColorPhaseLine        = "phase-line-color"
	OpacityPhaseLine      = "phase-line-opacity"
	ColorMilestoneBgStart = "milestone-bg-start"
	ColorMilestoneBgEnd   = "milestone-bg-end"
	ColorSubtopicBgStart  = "subtopic-bg-start"
	ColorSubtopicBgEnd    = "subtopic-bg-end"
)

// Palette maps custom property names to their values.
type Palette map[string]string

// DefaultPalette returns the light theme used when no host page overrides
// the custom properties.
func DefaultPalette() Palette {
	return Palette{
		ColorBackground:       "#f7f9fc",
		ColorTextPrimary:      "#1f2a44",
		ColorTextSecondary:    "#3b4a66",
		ColorBorderDark:       "#24324f",
		ColorBadgeBorder:      "#2b78e4",
		ColorConnector:        "#2b78e4",
		OpacityConnector:      "0.7",
		ColorPhaseLine:        "#2b78e4",
		OpacityPhaseLine:      "0.35",
		ColorMilestoneBgStart: "#ffe9a8",
		ColorMilestoneBgEnd:   "#ffd166",
		ColorSubtopicBgStart:  "#ffffff",
		ColorSubtopicBgEnd:    "#e8f0fe",
	}
}

// Names returns the palette's property names in sorted order.
func (p Palette) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// Var returns the var(--name) reference for a custom property.
func Var(name string) string {
	return "var(--" + name + ")"
}

// Defs returns the static filter and gradient definitions every diagram
// carries.
func Defs() scene.Defs {
	return scene.Defs{
		Filters: []scene.Filter{
			{ID: FilterTextShadow, Kind: scene.FilterShadow, StdDeviation: 2, DY: 2, Flood: "rgba(0,0,0,0.08)"},
			{ID: FilterMilestoneShadow, Kind: scene.FilterShadow, StdDeviation: 4, DY: 4, Flood: "rgba(0,0,0,0.15)"},
			{ID: FilterSubtopicShadow, Kind: scene.FilterShadow, StdDeviation: 3, DY: 3, Flood: "rgba(0,0,0,0.12)"},
			{ID: FilterBadgeShadow, Kind: scene.FilterShadow, StdDeviation: 2, DY: 2, Flood: "rgba(0,0,0,0.2)"},
			{ID: FilterPhaseLineGlow, Kind: scene.FilterGlow, StdDeviation: 4, Flood: "rgba(43,120,228,0.2)"},
			{ID: FilterConnectorGlow, Kind: scene.FilterGlow, StdDeviation: 2, Flood: "rgba(43,120,228,0.15)"},
		},
		Gradients: []scene.Gradient{
			verticalGradient(GradientMilestone, ColorMilestoneBgStart, ColorMilestoneBgEnd),
			verticalGradient(GradientSubtopic, ColorSubtopicBgStart, ColorSubtopicBgEnd),
		},
	}
}

func verticalGradient(id, from, to string) scene.Gradient {
	return scene.Gradient{
		ID: id,
		X1: "0%", Y1: "0%", X2: "0%", Y2: "100%",
		Stops: []scene.Stop{
			{Offset: "0%", Color: Var(from), Opacity: 1},
			{Offset: "100%", Color: Var(to), Opacity: 1},
		},
	}
}
