// Package roadmap defines the learning roadmap document consumed by the
// layout engine.
//
// A [Document] is a fixed three-level tree: phases contain milestones, and
// milestones contain subtopics. Order is significant at every level. Titles
// are optional; the accessor methods ([Phase.Label], [Milestone.Label],
// [Subtopic.Label]) fall back to positional labels such as "Phase 2".
//
// Documents are decoded with [Parse], which accepts the three envelopes the
// roadmap service is known to produce:
//
//	{"roadmap": {"phases": [...]}}       // generate endpoint
//	{"roadmap_data": {"phases": [...]}}  // stored roadmap file
//	{"phases": [...]}                    // bare roadmap
package roadmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is the root of a roadmap payload.
type Document struct {
	Roadmap Roadmap `json:"roadmap"`
}

// Roadmap holds the ordered phases and the descriptive fields the service
// attaches to them.
type Roadmap struct {
	CareerTitle   string  `json:"career_title,omitempty"`
	TotalDuration string  `json:"total_duration,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	Phases        []Phase `json:"phases"`
}

// Phase is a top-level section of the roadmap.
type Phase struct {
	Number      int         `json:"phase_number,omitempty"`
	Name        string      `json:"phase_name,omitempty"`
	Description string      `json:"description,omitempty"`
	Duration    string      `json:"duration,omitempty"`
	Milestones  []Milestone `json:"milestones,omitempty"`
}

// Milestone is a goal within a phase.
type Milestone struct {
	ID        string     `json:"milestone_id,omitempty"`
	Title     string     `json:"milestone_title,omitempty"`
	Duration  string     `json:"duration,omitempty"`
	Subtopics []Subtopic `json:"subtopics,omitempty"`
}

// Subtopic is a leaf item under a milestone.
type Subtopic struct {
	ID       string `json:"subtopic_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// Phases returns the ordered phases. It is safe to call on a nil Document.
func (d *Document) Phases() []Phase {
	if d == nil {
		return nil
	}
	return d.Roadmap.Phases
}

// Label returns the phase name or "Phase {index+1}" when the name is empty.
func (p Phase) Label(index int) string {
	return labelOr(p.Name, "Phase", index)
}

// Label returns the milestone title or "Milestone {index+1}".
func (m Milestone) Label(index int) string {
	return labelOr(m.Title, "Milestone", index)
}

// Label returns the subtopic title or "Subtopic {index+1}".
func (s Subtopic) Label(index int) string {
	return labelOr(s.Title, "Subtopic", index)
}

// OrderNumber returns the badge number shown next to a subtopic: the last
// dot-separated segment of its ID ("ST1.2.3" -> "3"), or index+1 when the ID
// is empty.
func (s Subtopic) OrderNumber(index int) string {
	if s.ID == "" {
		return strconv.Itoa(index + 1)
	}
	return s.ID[strings.LastIndex(s.ID, ".")+1:]
}

// Counts returns the number of phases, milestones and subtopics in d.
func (d *Document) Counts() (phases, milestones, subtopics int) {
	for _, p := range d.Phases() {
		phases++
		for _, m := range p.Milestones {
			milestones++
			subtopics += len(m.Subtopics)
		}
	}
	return phases, milestones, subtopics
}

func labelOr(title, kind string, index int) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf("%s %d", kind, index+1)
}
