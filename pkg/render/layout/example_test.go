package layout_test

import (
	"fmt"

	"github.com/matzehuels/roadtower/pkg/render/layout"
	"github.com/matzehuels/roadtower/pkg/render/scene"
	"github.com/matzehuels/roadtower/pkg/roadmap"
)

func ExampleBuild() {
	doc, err := roadmap.Parse([]byte(`{"roadmap": {"phases": [
		{"phase_name": "Foundations", "milestones": [
			{"milestone_title": "Learn Go", "subtopics": [
				{"subtopic_id": "ST1.1.1", "title": "Syntax"},
				{"subtopic_id": "ST1.1.2", "title": "Goroutines"},
				{"subtopic_id": "ST1.1.3", "title": "Testing"}
			]}
		]}
	]}}`))
	if err != nil {
		panic(err)
	}

	s := layout.Build(doc)
	fmt.Printf("canvas: %.0fx%.0f\n", s.Width, s.Height)
	fmt.Println("boxes:", s.Count(scene.KindRect))
	fmt.Println("connectors:", s.Count(scene.KindPath))
	// Output:
	// canvas: 1400x706
	// boxes: 4
	// connectors: 3
}

func ExampleMeasure() {
	fmt.Println(layout.Measure(nil))
	// Output: 250
}
