// Package layout computes the geometry of a roadmap diagram.
//
// # Overview
//
// [Build] turns a [roadmap.Document] into a [scene.Scene] in two passes:
//
//  1. Measure: walk phases and milestones with the cursor arithmetic of the
//     placement pass, recording the lowest extent any primitive will reach.
//     The canvas height is that extent plus the bottom padding.
//  2. Place: sweep top to bottom with a cursor. Each phase gets a centred
//     title; each milestone a centred box; subtopics alternate left and right
//     of the milestone column, two per row, each with an order badge, a label
//     and a dashed S-curve connector to the milestone. A vertical line runs
//     down each phase behind its milestones.
//
// Both passes advance the cursor past a milestone with
// [Metrics.MilestoneAdvance], so the canvas is never too small and
// consecutive milestone blocks never overlap.
//
// # Usage
//
//	doc, err := roadmap.Parse(payload)
//	if err != nil {
//	    return err
//	}
//	s := layout.Build(doc)
//	svg := sink.RenderSVG(s)
//
// [roadmap.Document]: github.com/matzehuels/roadtower/pkg/roadmap.Document
// [scene.Scene]: github.com/matzehuels/roadtower/pkg/render/scene.Scene
package layout
