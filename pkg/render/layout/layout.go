package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/roadtower/pkg/render/scene"
	"github.com/matzehuels/roadtower/pkg/render/styles"
	"github.com/matzehuels/roadtower/pkg/roadmap"
)

// Option configures a layout build.
type Option func(*builder)

type builder struct {
	metrics Metrics
}

// WithMetrics replaces the default geometry.
func WithMetrics(m Metrics) Option { return func(b *builder) { b.metrics = m } }

func newBuilder(opts ...Option) builder {
	b := builder{metrics: DefaultMetrics()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Build lays out doc and returns the scene to render. It is a pure function:
// the same document always yields the same scene, and doc is never modified.
//
// The canvas height comes from [Measure], which walks the document with the
// same cursor arithmetic as the placement sweep below.
func Build(doc *roadmap.Document, opts ...Option) scene.Scene {
	b := newBuilder(opts...)
	m := b.metrics

	s := scene.Scene{
		Width:      m.Width,
		Height:     b.measure(doc),
		Background: styles.Var(styles.ColorBackground),
		Defs:       styles.Defs(),
	}

	y := m.TopPadding
	for i, phase := range doc.Phases() {
		var g scene.Group
		g, y = b.placePhase(i, phase, y)
		s.Groups = append(s.Groups, g)
	}
	return s
}

// Measure returns the canvas height needed for doc: the lowest extent of any
// primitive Build would emit, plus the bottom padding. An empty document
// measures TopPadding + BottomPadding.
func Measure(doc *roadmap.Document, opts ...Option) float64 {
	b := newBuilder(opts...)
	return b.measure(doc)
}

func (b builder) measure(doc *roadmap.Document) float64 {
	m := b.metrics
	y := m.TopPadding
	bottom := m.TopPadding

	for _, phase := range doc.Phases() {
		bottom = max(bottom, y)
		y += m.PhaseTitleSpace

		for _, ms := range phase.Milestones {
			rows := Rows(len(ms.Subtopics))
			bottom = max(bottom, y+m.SectionHeight(rows))
			y += m.MilestoneAdvance(rows)
		}
		if len(phase.Milestones) > 0 {
			bottom = max(bottom, y-m.PhaseLineTrail)
		}
		y += m.PhaseGap
	}
	return bottom + m.BottomPadding
}

// placePhase emits the group for one phase starting at cursor y and returns
// the cursor position for the next phase.
func (b builder) placePhase(index int, phase roadmap.Phase, y float64) (scene.Group, float64) {
	m := b.metrics
	g := scene.Group{
		ID:    fmt.Sprintf("phase-%d", index+1),
		Class: "phase-group",
		Index: index,
	}

	g.Items = append(g.Items, scene.Text{
		X: m.CenterX(), Y: y,
		Content:    styles.WrapText(phase.Label(index), m.PhaseBudget),
		FontSize:   28,
		FontWeight: 700,
		Anchor:     "middle",
		Fill:       styles.Var(styles.ColorTextPrimary),
		Filter:     scene.Ref(styles.FilterTextShadow),
		Class:      "phase-title",
	})

	y += m.PhaseTitleSpace
	lineStart := y

	for i, ms := range phase.Milestones {
		g.Items = b.placeMilestone(g.Items, i, ms, y)
		y += m.MilestoneAdvance(Rows(len(ms.Subtopics)))
	}

	if len(phase.Milestones) > 0 {
		g.Items = append(g.Items, scene.Line{
			X1: m.CenterX(), Y1: lineStart,
			X2: m.CenterX(), Y2: y - m.PhaseLineTrail,
			Stroke: scene.Stroke{
				Color:   styles.Var(styles.ColorPhaseLine),
				Width:   5,
				Cap:     "round",
				Opacity: styles.Var(styles.OpacityPhaseLine),
			},
			Filter: scene.Ref(styles.FilterPhaseLineGlow),
		})
	}

	return g, y + m.PhaseGap
}

// placeMilestone appends the milestone box, its label and every subtopic with
// its connector. y is the milestone's top edge.
func (b builder) placeMilestone(items []scene.Primitive, index int, ms roadmap.Milestone, y float64) []scene.Primitive {
	m := b.metrics
	box := scene.Rect{
		X: m.CenterX() - m.MilestoneW/2, Y: y,
		W: m.MilestoneW, H: m.MilestoneH,
		RX:     m.CornerRadius,
		Fill:   scene.Ref(styles.GradientMilestone),
		Stroke: scene.Stroke{Color: styles.Var(styles.ColorBorderDark), Width: 3},
		Filter: scene.Ref(styles.FilterMilestoneShadow),
		Class:  "milestone",
	}
	items = append(items, box, scene.Text{
		X: m.CenterX(), Y: y + m.MilestoneH/2,
		Content:    styles.WrapText(ms.Label(index), m.MilestoneBudget),
		FontSize:   16,
		FontWeight: 600,
		Anchor:     "middle",
		Baseline:   "middle",
		Fill:       styles.Var(styles.ColorTextPrimary),
		Class:      "milestone-label",
	})

	for i, st := range ms.Subtopics {
		items = b.placeSubtopic(items, i, st, box)
	}
	return items
}

// Side reports which side of the milestone column subtopic i is placed on.
type Side int

const (
	Left Side = iota
	Right
)

// SideOf returns Left for even indices and Right for odd ones.
func SideOf(i int) Side {
	if i%2 == 0 {
		return Left
	}
	return Right
}

func (b builder) placeSubtopic(items []scene.Primitive, index int, st roadmap.Subtopic, milestone scene.Rect) []scene.Primitive {
	m := b.metrics
	side := SideOf(index)

	cx := m.CenterX() - m.SubtopicOffsetX
	if side == Right {
		cx = m.CenterX() + m.SubtopicOffsetX
	}
	box := scene.Rect{
		X: cx - m.SubtopicW/2, Y: milestone.Y + m.SubtopicOffsetY(index),
		W: m.SubtopicW, H: m.SubtopicH,
		RX:     m.CornerRadius,
		Fill:   scene.Ref(styles.GradientSubtopic),
		Stroke: scene.Stroke{Color: styles.Var(styles.ColorBorderDark), Width: 2.5},
		Filter: scene.Ref(styles.FilterSubtopicShadow),
		Class:  "subtopic",
	}
	badgeX, badgeY := box.X+m.BadgeInset, box.Y+m.BadgeInset

	return append(items,
		box,
		scene.Circle{
			CX: badgeX, CY: badgeY, R: m.BadgeRadius,
			Fill:   "white",
			Stroke: scene.Stroke{Color: styles.Var(styles.ColorBadgeBorder), Width: 3},
			Filter: scene.Ref(styles.FilterBadgeShadow),
		},
		scene.Text{
			X: badgeX, Y: badgeY,
			Content:    styles.WrapText(st.OrderNumber(index), m.BadgeBudget),
			FontSize:   13,
			FontWeight: 700,
			Anchor:     "middle",
			Baseline:   "middle",
			Fill:       styles.Var(styles.ColorBadgeBorder),
			Class:      "badge",
		},
		scene.Text{
			X: cx, Y: box.Y + m.SubtopicH/2,
			Content:    styles.WrapText(st.Label(index), m.SubtopicBudget),
			FontSize:   14,
			FontWeight: 500,
			Anchor:     "middle",
			Baseline:   "middle",
			Fill:       styles.Var(styles.ColorTextSecondary),
			Class:      "subtopic-label",
		},
		b.connector(side, box, milestone),
	)
}

// connector returns the S-curve joining a subtopic box's inner edge to the
// facing edge of its milestone. Control points sit horizontally ControlRatio
// of the span away from each endpoint, pointing towards the other end.
func (b builder) connector(side Side, sub, milestone scene.Rect) scene.Path {
	from := scene.Point{X: sub.X + sub.W, Y: sub.Y + sub.H/2}
	to := scene.Point{X: milestone.X, Y: milestone.Y + milestone.H/2}
	dir := 1.0
	if side == Right {
		from.X = sub.X
		to.X = milestone.X + milestone.W
		dir = -1
	}
	off := math.Abs(to.X-from.X) * b.metrics.ControlRatio * dir

	return scene.Path{
		From: from,
		C1:   scene.Point{X: from.X + off, Y: from.Y},
		C2:   scene.Point{X: to.X - off, Y: to.Y},
		To:   to,
		Fill: "none",
		Stroke: scene.Stroke{
			Color:   styles.Var(styles.ColorConnector),
			Width:   3,
			Dash:    "6 9",
			Opacity: styles.Var(styles.OpacityConnector),
			Cap:     "round",
			Join:    "round",
		},
		Filter: scene.Ref(styles.FilterConnectorGlow),
	}
}
