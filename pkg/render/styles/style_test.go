package styles

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/roadtower/pkg/render/scene"
)

func TestDefs(t *testing.T) {
	d := Defs()

	var ids []string
	for _, f := range d.Filters {
		ids = append(ids, f.ID)
	}
	for _, g := range d.Gradients {
		ids = append(ids, g.ID)
	}

	want := []string{
		FilterTextShadow, FilterMilestoneShadow, FilterSubtopicShadow,
		FilterBadgeShadow, FilterPhaseLineGlow, FilterConnectorGlow,
		GradientMilestone, GradientSubtopic,
	}
	if !slices.Equal(ids, want) {
		t.Errorf("Defs() ids = %v, want %v", ids, want)
	}

	for _, f := range d.Filters {
		if f.Kind != scene.FilterShadow && f.Kind != scene.FilterGlow {
			t.Errorf("filter %s has kind %q", f.ID, f.Kind)
		}
	}
}

func TestDefsGradientsUsePalette(t *testing.T) {
	p := DefaultPalette()
	for _, g := range Defs().Gradients {
		if len(g.Stops) != 2 {
			t.Fatalf("gradient %s has %d stops, want 2", g.ID, len(g.Stops))
		}
		for _, s := range g.Stops {
			name := strings.TrimSuffix(strings.TrimPrefix(s.Color, "var(--"), ")")
			if _, ok := p[name]; !ok {
				t.Errorf("gradient %s stop colour %s not in palette", g.ID, s.Color)
			}
		}
	}
}

func TestPaletteNames(t *testing.T) {
	names := DefaultPalette().Names()
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	if len(names) != len(DefaultPalette()) {
		t.Errorf("Names() = %d entries, want %d", len(names), len(DefaultPalette()))
	}
}

func TestVar(t *testing.T) {
	if got := Var(ColorConnector); got != "var(--connector-color)" {
		t.Errorf("Var() = %q", got)
	}
}
