// Package render provides the roadmap diagram rendering pipeline.
//
// # Overview
//
// Rendering runs in three stages, each in its own subpackage:
//
//   - [layout]: roadmap document to positioned scene (pure, deterministic)
//   - [scene] and [styles]: the typed primitives and the fixed visual style
//   - [sink]: scene to SVG, JSON, PDF or PNG
//
// [nodelink] offers a second view of the same tree as a Graphviz diagram.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both sinks and nodelink use
// them.
//
//	svg := sink.RenderSVG(layout.Build(doc))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [layout]: github.com/matzehuels/roadtower/pkg/render/layout
// [scene]: github.com/matzehuels/roadtower/pkg/render/scene
// [styles]: github.com/matzehuels/roadtower/pkg/render/styles
// [sink]: github.com/matzehuels/roadtower/pkg/render/sink
// [nodelink]: github.com/matzehuels/roadtower/pkg/render/nodelink
package render
