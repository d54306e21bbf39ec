// Package sink writes a laid-out roadmap [scene.Scene] to an output format.
//
// # Overview
//
//   - SVG: standalone document with palette, filters and gradients
//   - JSON: the scene with every primitive tagged by kind
//   - PDF and PNG: SVG converted by rsvg-convert
//   - Inline errors: an HTML fragment or small SVG shown instead of a diagram
//
// # SVG Output
//
// [RenderSVG] writes primitives in scene order. Colours stay as var(--name)
// references and a <style> block scoped to the root class supplies the
// default [styles.Palette], so a host page can restyle the diagram:
//
//	svg := sink.RenderSVG(layout.Build(doc),
//	    sink.WithTitle(doc.Roadmap.CareerTitle),
//	    sink.WithPalette(palette),
//	)
//
// [WithResolvedColors] substitutes the palette values inline instead. PDF
// and PNG output always resolves, since librsvg ignores custom properties.
//
// # Errors
//
// [RenderErrorHTML] and [RenderErrorSVG] format an error as the render view
// shows it, for example "Error: no roadmap data found".
//
// [scene.Scene]: github.com/matzehuels/roadtower/pkg/render/scene.Scene
// [styles.Palette]: github.com/matzehuels/roadtower/pkg/render/styles.Palette
package sink
