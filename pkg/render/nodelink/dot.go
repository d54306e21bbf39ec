package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roadtower/pkg/render"
	"github.com/matzehuels/roadtower/pkg/roadmap"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds ids, durations and descriptions to node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// Node fill colours per tree level.
const (
	phaseFill     = "#dbe8fb"
	milestoneFill = "#ffd166"
	subtopicFill  = "white"
)

// ToDOT converts a roadmap to Graphviz DOT format. Every phase, milestone and
// subtopic becomes one node; tree edges are solid and consecutive phases are
// chained with dashed edges to keep them in reading order.
//
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(doc *roadmap.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if doc != nil && doc.Roadmap.CareerTitle != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", doc.Roadmap.CareerTitle)
	}
	buf.WriteString("\n")

	var edges []string
	prevPhase := ""
	for i, p := range doc.Phases() {
		pid := fmt.Sprintf("phase-%d", i+1)
		fmt.Fprintf(&buf, "  %q [%s];\n", pid, strings.Join(nodeAttrs(phaseLabel(p, i, opts.Detailed), phaseFill, "bold"), ", "))
		if prevPhase != "" {
			edges = append(edges, fmt.Sprintf("  %q -> %q [style=dashed];\n", prevPhase, pid))
		}
		prevPhase = pid

		for j, m := range p.Milestones {
			mid := fmt.Sprintf("%s/m-%d", pid, j+1)
			fmt.Fprintf(&buf, "  %q [%s];\n", mid, strings.Join(nodeAttrs(milestoneLabel(m, j, opts.Detailed), milestoneFill, ""), ", "))
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", pid, mid))

			for k, s := range m.Subtopics {
				sid := fmt.Sprintf("%s/s-%d", mid, k+1)
				fmt.Fprintf(&buf, "  %q [%s];\n", sid, strings.Join(nodeAttrs(subtopicLabel(s, k, opts.Detailed), subtopicFill, ""), ", "))
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", mid, sid))
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func phaseLabel(p roadmap.Phase, i int, detailed bool) string {
	label := p.Label(i)
	if !detailed {
		return label
	}
	return joinDetails(label, p.Duration, p.Description)
}

func milestoneLabel(m roadmap.Milestone, i int, detailed bool) string {
	label := m.Label(i)
	if !detailed {
		return label
	}
	return joinDetails(label, m.ID, m.Duration)
}

func subtopicLabel(s roadmap.Subtopic, i int, detailed bool) string {
	label := s.OrderNumber(i) + ". " + s.Label(i)
	if !detailed {
		return label
	}
	return joinDetails(label, s.ID, s.Duration)
}

func joinDetails(label string, details ...string) string {
	parts := []string{label}
	for _, d := range details {
		if d != "" {
			parts = append(parts, d)
		}
	}
	return strings.Join(parts, "\n")
}

func nodeAttrs(label, fill, fontStyle string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("fillcolor=%q", fill)}
	if fontStyle == "bold" {
		attrs = append(attrs, `fontname="Helvetica-Bold"`)
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales to its
// container like the layout engine's output does.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
