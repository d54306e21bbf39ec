package layout

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/roadtower/pkg/render/scene"
	"github.com/matzehuels/roadtower/pkg/roadmap"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

// makeDoc builds a document with the given subtopic counts per milestone, per
// phase. Titles are left empty so that fallback labels are exercised.
func makeDoc(phases ...[]int) *roadmap.Document {
	doc := &roadmap.Document{}
	for _, milestones := range phases {
		var p roadmap.Phase
		for _, n := range milestones {
			var ms roadmap.Milestone
			for range n {
				ms.Subtopics = append(ms.Subtopics, roadmap.Subtopic{})
			}
			p.Milestones = append(p.Milestones, ms)
		}
		doc.Roadmap.Phases = append(doc.Roadmap.Phases, p)
	}
	return doc
}

func rectsOfClass(s scene.Scene, class string) []scene.Rect {
	var out []scene.Rect
	for _, g := range s.Groups {
		for _, p := range g.Items {
			if r, ok := p.(scene.Rect); ok && r.Class == class {
				out = append(out, r)
			}
		}
	}
	return out
}

func textsOfClass(s scene.Scene, class string) []string {
	var out []string
	for _, g := range s.Groups {
		for _, p := range g.Items {
			if t, ok := p.(scene.Text); ok && t.Class == class {
				out = append(out, t.Content)
			}
		}
	}
	return out
}

func TestBuildEmpty(t *testing.T) {
	m := DefaultMetrics()

	for _, doc := range []*roadmap.Document{nil, {}, makeDoc()} {
		s := Build(doc)
		if len(s.Groups) != 0 {
			t.Errorf("Build() groups = %d, want 0", len(s.Groups))
		}
		if want := m.TopPadding + m.BottomPadding; s.Height != want {
			t.Errorf("Build() height = %v, want %v", s.Height, want)
		}
		if s.Width != m.Width {
			t.Errorf("Build() width = %v, want %v", s.Width, m.Width)
		}
	}
}

func TestBuildThreeSubtopics(t *testing.T) {
	m := DefaultMetrics()
	s := Build(makeDoc([]int{3}))

	milestones := rectsOfClass(s, "milestone")
	if len(milestones) != 1 {
		t.Fatalf("milestone boxes = %d, want 1", len(milestones))
	}
	ms := milestones[0]
	if ms.X != 575 || ms.Y != 270 {
		t.Errorf("milestone at (%v, %v), want (575, 270)", ms.X, ms.Y)
	}

	subs := rectsOfClass(s, "subtopic")
	if len(subs) != 3 {
		t.Fatalf("subtopic boxes = %d, want 3", len(subs))
	}

	wantRow0 := ms.Y + m.MilestoneH + m.SubtopicGap
	tests := []struct {
		x, y float64
	}{
		{270, wantRow0},               // row 0 left
		{910, wantRow0},               // row 0 right
		{270, wantRow0 + m.RowHeight}, // row 1 left
	}
	for i, tt := range tests {
		if subs[i].X != tt.x || subs[i].Y != tt.y {
			t.Errorf("subtopic %d at (%v, %v), want (%v, %v)", i, subs[i].X, subs[i].Y, tt.x, tt.y)
		}
	}

	if got, want := m.SectionHeight(Rows(3)), 336.0; got != want {
		t.Errorf("SectionHeight(2) = %v, want %v", got, want)
	}
	if got, want := s.Height, 706.0; got != want {
		t.Errorf("height = %v, want %v", got, want)
	}
}

func TestBuildHeightMatchesExtent(t *testing.T) {
	m := DefaultMetrics()
	docs := map[string]*roadmap.Document{
		"single empty milestone": makeDoc([]int{0}),
		"one subtopic":           makeDoc([]int{1}),
		"two subtopics":          makeDoc([]int{2}),
		"odd counts":             makeDoc([]int{3, 5, 1}),
		"many rows":              makeDoc([]int{12}),
		"phase without items":    makeDoc([]int{}),
		"trailing empty phase":   makeDoc([]int{2, 4}, []int{}),
		"mixed":                  makeDoc([]int{0, 7}, []int{1}, []int{4, 4, 4}),
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			s := Build(doc)
			b, ok := s.Bounds()
			if !ok {
				t.Fatal("scene has no primitives")
			}
			if !approx(s.Height, b.MaxY+m.BottomPadding) {
				t.Errorf("height = %v, want max Y %v + bottom padding %v", s.Height, b.MaxY, m.BottomPadding)
			}
			if b.MinY < 0 || b.MaxY > s.Height {
				t.Errorf("primitives span [%v, %v], outside canvas [0, %v]", b.MinY, b.MaxY, s.Height)
			}
			if b.MinX < 0 || b.MaxX > s.Width {
				t.Errorf("primitives span x [%v, %v], outside canvas width %v", b.MinX, b.MaxX, s.Width)
			}
			if got := Measure(doc); got != s.Height {
				t.Errorf("Measure() = %v, Build().Height = %v", got, s.Height)
			}
		})
	}
}

func TestBuildNoOverlap(t *testing.T) {
	for subtopics := range 10 {
		t.Run(fmt.Sprintf("%d subtopics", subtopics), func(t *testing.T) {
			s := Build(makeDoc([]int{subtopics, subtopics, subtopics}))
			milestones := rectsOfClass(s, "milestone")
			subs := rectsOfClass(s, "subtopic")

			// Lowest box of each milestone block must end above the next
			// milestone box.
			for i := 0; i+1 < len(milestones); i++ {
				bottom := milestones[i].Y + milestones[i].H
				for _, r := range subs[i*subtopics : (i+1)*subtopics] {
					bottom = max(bottom, r.Y+r.H)
				}
				if next := milestones[i+1].Y; bottom >= next {
					t.Errorf("milestone %d block ends at %v, next milestone starts at %v", i, bottom, next)
				}
			}
		})
	}
}

func TestBuildAlternatesSides(t *testing.T) {
	m := DefaultMetrics()
	s := Build(makeDoc([]int{7}))

	for i, r := range rectsOfClass(s, "subtopic") {
		cx := r.X + r.W/2
		wantLeft := i%2 == 0
		if isLeft := cx < m.CenterX(); isLeft != wantLeft {
			t.Errorf("subtopic %d centre x = %v, left = %v, want left = %v", i, cx, isLeft, wantLeft)
		}
		if (SideOf(i) == Left) != wantLeft {
			t.Errorf("SideOf(%d) = %v", i, SideOf(i))
		}
	}
}

func TestBuildConnectors(t *testing.T) {
	s := Build(makeDoc([]int{2}))

	var paths []scene.Path
	for _, p := range s.Groups[0].Items {
		if path, ok := p.(scene.Path); ok {
			paths = append(paths, path)
		}
	}
	if len(paths) != 2 {
		t.Fatalf("connectors = %d, want 2", len(paths))
	}

	left := paths[0]
	if !approx(left.From.X, 490) || !approx(left.To.X, 575) {
		t.Errorf("left connector x %v -> %v, want 490 -> 575", left.From.X, left.To.X)
	}
	if !approx(left.C1.X-left.From.X, 29.75) || !approx(left.To.X-left.C2.X, 29.75) {
		t.Errorf("left connector controls %v, %v not offset by 35%% of span", left.C1, left.C2)
	}
	if left.C1.Y != left.From.Y || left.C2.Y != left.To.Y {
		t.Errorf("left connector controls not level with endpoints: %+v", left)
	}

	right := paths[1]
	if !approx(right.From.X, 910) || !approx(right.To.X, 825) {
		t.Errorf("right connector x %v -> %v, want 910 -> 825", right.From.X, right.To.X)
	}
	if !approx(right.From.X-right.C1.X, 29.75) || !approx(right.C2.X-right.To.X, 29.75) {
		t.Errorf("right connector controls %v, %v not offset by 35%% of span", right.C1, right.C2)
	}

	if !approx(left.To.Y, 298) || !approx(left.From.Y, 471) {
		t.Errorf("left connector y %v -> %v, want 471 -> 298", left.From.Y, left.To.Y)
	}
}

func TestBuildPhaseLine(t *testing.T) {
	m := DefaultMetrics()
	s := Build(makeDoc([]int{1, 0}, []int{}))

	var lines []scene.Line
	for _, g := range s.Groups {
		for _, p := range g.Items {
			if l, ok := p.(scene.Line); ok {
				lines = append(lines, l)
			}
		}
	}
	if len(lines) != 1 {
		t.Fatalf("phase lines = %d, want 1 (phase without milestones draws none)", len(lines))
	}

	l := lines[0]
	start := m.TopPadding + m.PhaseTitleSpace
	end := start + m.MilestoneAdvance(1) + m.MilestoneAdvance(0) - m.PhaseLineTrail
	if l.Y1 != start || l.Y2 != end {
		t.Errorf("phase line %v -> %v, want %v -> %v", l.Y1, l.Y2, start, end)
	}
	if l.X1 != m.CenterX() || l.X2 != m.CenterX() {
		t.Errorf("phase line not centred: x %v, %v", l.X1, l.X2)
	}
}

func TestBuildFallbackLabels(t *testing.T) {
	s := Build(makeDoc([]int{2}, []int{0, 1}))

	if got, want := textsOfClass(s, "phase-title"), []string{"Phase 1", "Phase 2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("phase titles = %v, want %v", got, want)
	}
	if got, want := textsOfClass(s, "milestone-label"), []string{"Milestone 1", "Milestone 1", "Milestone 2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("milestone labels = %v, want %v", got, want)
	}
	if got, want := textsOfClass(s, "subtopic-label"), []string{"Subtopic 1", "Subtopic 2", "Subtopic 1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("subtopic labels = %v, want %v", got, want)
	}
	if got, want := textsOfClass(s, "badge"), []string{"1", "2", "1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("badges = %v, want %v", got, want)
	}
}

func TestBuildTruncatesLabels(t *testing.T) {
	doc := &roadmap.Document{Roadmap: roadmap.Roadmap{Phases: []roadmap.Phase{{
		Name: "Foundations",
		Milestones: []roadmap.Milestone{{
			Title: "An exceedingly long milestone title that overflows",
			Subtopics: []roadmap.Subtopic{
				{ID: "ST1.1.12", Title: "Short"},
				{ID: "ST1.1.3", Title: "Another subtopic title far beyond the budget"},
			},
		}},
	}}}}

	s := Build(doc)
	m := DefaultMetrics()

	labels := textsOfClass(s, "milestone-label")
	if n := len([]rune(labels[0])); n != m.MilestoneBudget {
		t.Errorf("milestone label %q has %d chars, want %d", labels[0], n, m.MilestoneBudget)
	}
	subs := textsOfClass(s, "subtopic-label")
	if subs[0] != "Short" {
		t.Errorf("short label changed to %q", subs[0])
	}
	if n := len([]rune(subs[1])); n != m.SubtopicBudget {
		t.Errorf("subtopic label %q has %d chars, want %d", subs[1], n, m.SubtopicBudget)
	}
	if got, want := textsOfClass(s, "badge"), []string{"12", "3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("badges = %v, want %v", got, want)
	}
}

func TestBuildDeterministic(t *testing.T) {
	doc := makeDoc([]int{3, 0, 5}, []int{2})
	a, b := Build(doc), Build(doc)
	if !reflect.DeepEqual(a, b) {
		t.Error("Build() is not deterministic")
	}
}

func TestBuildDoesNotMutate(t *testing.T) {
	doc := makeDoc([]int{3}, []int{1, 2})
	before := makeDoc([]int{3}, []int{1, 2})
	Build(doc)
	if !reflect.DeepEqual(doc, before) {
		t.Error("Build() modified its input document")
	}
}

func TestRows(t *testing.T) {
	tests := []struct{ n, want int }{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {9, 5}}
	for _, tt := range tests {
		if got := Rows(tt.n); got != tt.want {
			t.Errorf("Rows(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestMilestoneAdvance(t *testing.T) {
	m := DefaultMetrics()
	tests := []struct {
		rows int
		want float64
	}{
		{0, 250}, // minimum spacing
		{1, 276}, // 56 + 120 + 50 + margin
		{2, 386},
		{3, 496},
	}
	for _, tt := range tests {
		if got := m.MilestoneAdvance(tt.rows); got != tt.want {
			t.Errorf("MilestoneAdvance(%d) = %v, want %v", tt.rows, got, tt.want)
		}
	}
}

func TestWithMetrics(t *testing.T) {
	m := DefaultMetrics()
	m.Width = 800
	m.TopPadding = 10
	m.BottomPadding = 20

	s := Build(nil, WithMetrics(m))
	if s.Width != 800 || s.Height != 30 {
		t.Errorf("Build(WithMetrics) canvas = %vx%v, want 800x30", s.Width, s.Height)
	}
}
