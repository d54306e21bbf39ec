// Package nodelink renders a roadmap as a node-link tree diagram.
//
// # Overview
//
// This package produces a directed tree using Graphviz: phases at the top,
// their milestones below, and each milestone's subtopics below that. It is an
// alternative to the layout engine's fixed two-column diagram when the
// roadmap is too wide to read that way.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// Node ids are positional paths ("phase-1/m-2/s-3"), so two items with the
// same title never collide.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
