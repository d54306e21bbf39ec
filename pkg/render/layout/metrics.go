package layout

import "math"

// Metrics holds the fixed geometry of a roadmap diagram. All values are in
// canvas units (pixels at scale 1).
type Metrics struct {
	Width         float64 // canvas width
	TopPadding    float64 // space above the first phase title
	BottomPadding float64 // space below the lowest primitive

	PhaseTitleSpace float64 // distance from a phase title to its first milestone
	PhaseGap        float64 // distance added after a phase's last milestone
	PhaseLineTrail  float64 // how far above the cursor the phase line stops

	MilestoneW, MilestoneH float64
	MinMilestoneSpacing    float64 // minimum cursor advance per milestone
	MilestoneMargin        float64 // clearance below a milestone's subtopics

	SubtopicW, SubtopicH float64
	SubtopicOffsetX      float64 // horizontal distance of subtopic centres from the canvas centre
	SubtopicGap          float64 // distance from a milestone box's bottom to its first subtopic row
	RowHeight            float64 // vertical pitch of subtopic rows

	BadgeRadius float64
	BadgeInset  float64 // badge centre offset from the subtopic box's top-left corner

	ControlRatio float64 // connector control point offset as a fraction of horizontal span
	CornerRadius float64

	PhaseBudget, MilestoneBudget, SubtopicBudget, BadgeBudget int // label lengths
}

// DefaultMetrics returns the geometry of the standard roadmap diagram.
func DefaultMetrics() Metrics {
	return Metrics{
		Width:         1400,
		TopPadding:    150,
		BottomPadding: 100,

		PhaseTitleSpace: 120,
		PhaseGap:        200,
		PhaseLineTrail:  130,

		MilestoneW:          250,
		MilestoneH:          56,
		MinMilestoneSpacing: 250,
		MilestoneMargin:     50,

		SubtopicW:       220,
		SubtopicH:       50,
		SubtopicOffsetX: 320,
		SubtopicGap:     120,
		RowHeight:       110,

		BadgeRadius: 16,
		BadgeInset:  10,

		ControlRatio: 0.35,
		CornerRadius: 8,

		PhaseBudget:     60,
		MilestoneBudget: 32,
		SubtopicBudget:  28,
		BadgeBudget:     4,
	}
}

// CenterX returns the horizontal centre of the canvas.
func (m Metrics) CenterX() float64 { return m.Width / 2 }

// Rows returns the number of two-column subtopic rows needed for n subtopics.
func Rows(n int) int {
	return int(math.Ceil(float64(n) / 2))
}

// SubtopicOffsetY returns the vertical offset of subtopic index i from its
// milestone's top edge. Two subtopics share each row.
func (m Metrics) SubtopicOffsetY(i int) float64 {
	return m.MilestoneH + m.SubtopicGap + float64(i/2)*m.RowHeight
}

// SectionHeight returns the height of a milestone block, measured from the
// milestone's top edge to the bottom edge of its lowest subtopic row. A
// milestone without subtopics is just its box.
func (m Metrics) SectionHeight(rows int) float64 {
	if rows <= 0 {
		return m.MilestoneH
	}
	return m.SubtopicOffsetY(2*(rows-1)) + m.SubtopicH
}

// MilestoneAdvance returns how far the cursor moves past a milestone with the
// given number of subtopic rows. Both the measure pass and the placement
// sweep use it, which keeps consecutive milestone blocks apart by at least
// MilestoneMargin.
func (m Metrics) MilestoneAdvance(rows int) float64 {
	return max(m.MinMilestoneSpacing, m.SectionHeight(rows)+m.MilestoneMargin)
}
