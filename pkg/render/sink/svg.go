package sink

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/roadtower/pkg/render/scene"
	"github.com/matzehuels/roadtower/pkg/render/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette   styles.Palette
	resolve   bool
	title     string
	rootClass string
}

// WithPalette replaces the default custom property values emitted in the
// document's <style> block.
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithoutPalette omits the <style> block so that a host page supplies every
// custom property.
func WithoutPalette() SVGOption { return func(r *svgRenderer) { r.palette = nil } }

// WithResolvedColors substitutes palette values for var(--name) references.
// rsvg-convert does not evaluate custom properties, so PDF and PNG output
// always uses it.
func WithResolvedColors() SVGOption { return func(r *svgRenderer) { r.resolve = true } }

// WithTitle adds an accessible <title> element.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithRootClass sets the class of the root <svg> element. The palette is
// scoped to this class.
func WithRootClass(c string) SVGOption { return func(r *svgRenderer) { r.rootClass = c } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: styles.DefaultPalette(), rootClass: "roadmap-svg"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG serializes s as a standalone SVG document. Primitives are written
// in scene order, which is paint order.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" class="%s">`+"\n",
		s.Width, s.Height, s.Width, s.Height, styles.EscapeXML(r.rootClass))

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	if len(r.palette) > 0 && !r.resolve {
		r.renderPalette(&buf)
	}
	r.renderDefs(&buf, s.Defs)

	if s.Background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="100%%" height="100%%" style="fill:%s"/>`+"\n", r.value(s.Background))
	}

	for _, g := range s.Groups {
		fmt.Fprintf(&buf, `  <g id="%s" class="%s" data-index="%d">`+"\n",
			styles.EscapeXML(g.ID), styles.EscapeXML(g.Class), g.Index)
		for _, p := range g.Items {
			buf.WriteString("    ")
			r.renderPrimitive(&buf, p)
			buf.WriteByte('\n')
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderPalette(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>\n    .%s {\n", r.rootClass)
	for _, name := range r.palette.Names() {
		fmt.Fprintf(buf, "      --%s: %s;\n", name, r.palette[name])
	}
	buf.WriteString("    }\n  </style>\n")
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer, d scene.Defs) {
	if len(d.Filters) == 0 && len(d.Gradients) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, f := range d.Filters {
		renderFilter(buf, f)
	}
	for _, g := range d.Gradients {
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			g.ID, g.X1, g.Y1, g.X2, g.Y2)
		for _, s := range g.Stops {
			fmt.Fprintf(buf, `      <stop offset="%s" style="stop-color:%s;stop-opacity:%g"/>`+"\n",
				s.Offset, r.value(s.Color), s.Opacity)
		}
		buf.WriteString("    </linearGradient>\n")
	}
	buf.WriteString("  </defs>\n")
}

func renderFilter(buf *bytes.Buffer, f scene.Filter) {
	fmt.Fprintf(buf, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+"\n", f.ID)
	switch f.Kind {
	case scene.FilterGlow:
		fmt.Fprintf(buf, `      <feGaussianBlur in="SourceGraphic" stdDeviation="%g" result="blur"/>`+"\n", f.StdDeviation)
		fmt.Fprintf(buf, `      <feFlood flood-color="%s"/>`+"\n", f.Flood)
		buf.WriteString(`      <feComposite in2="blur" operator="in" result="glow"/>` + "\n")
		buf.WriteString(`      <feMerge><feMergeNode in="glow"/><feMergeNode in="SourceGraphic"/></feMerge>` + "\n")
	default:
		fmt.Fprintf(buf, `      <feGaussianBlur in="SourceAlpha" stdDeviation="%g"/>`+"\n", f.StdDeviation)
		fmt.Fprintf(buf, `      <feOffset dx="0" dy="%g" result="offsetblur"/>`+"\n", f.DY)
		fmt.Fprintf(buf, `      <feFlood flood-color="%s"/>`+"\n", f.Flood)
		buf.WriteString(`      <feComposite in2="offsetblur" operator="in"/>` + "\n")
		buf.WriteString(`      <feMerge><feMergeNode/><feMergeNode in="SourceGraphic"/></feMerge>` + "\n")
	}
	buf.WriteString("    </filter>\n")
}

func (r *svgRenderer) renderPrimitive(buf *bytes.Buffer, p scene.Primitive) {
	switch p := p.(type) {
	case scene.Rect:
		fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%g"%s%s style="%s"/>`,
			p.X, p.Y, p.W, p.H, p.RX, classAttr(p.Class), filterAttr(p.Filter), r.paint(p.Fill, p.Stroke))
	case scene.Circle:
		fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%g"%s style="%s"/>`,
			p.CX, p.CY, p.R, filterAttr(p.Filter), r.paint(p.Fill, p.Stroke))
	case scene.Line:
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s style="%s"/>`,
			p.X1, p.Y1, p.X2, p.Y2, filterAttr(p.Filter), r.paint("", p.Stroke))
	case scene.Path:
		fmt.Fprintf(buf, `<path d="M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f"%s style="%s"/>`,
			p.From.X, p.From.Y, p.C1.X, p.C1.Y, p.C2.X, p.C2.Y, p.To.X, p.To.Y,
			filterAttr(p.Filter), r.paint(p.Fill, p.Stroke))
	case scene.Text:
		r.renderText(buf, p)
	}
}

func (r *svgRenderer) renderText(buf *bytes.Buffer, t scene.Text) {
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-size="%g" font-weight="%d"`, t.X, t.Y, t.FontSize, t.FontWeight)
	if t.Anchor != "" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, t.Anchor)
	}
	if t.Baseline != "" {
		fmt.Fprintf(buf, ` dominant-baseline="%s"`, t.Baseline)
	}
	fmt.Fprintf(buf, `%s%s style="fill:%s">%s</text>`,
		classAttr(t.Class), filterAttr(t.Filter), r.value(t.Fill), styles.EscapeXML(t.Content))
}

func (r *svgRenderer) paint(fill string, s scene.Stroke) string {
	if fill == "" {
		fill = "none"
	}
	parts := []string{"fill:" + r.value(fill)}
	if s.Color != "" {
		parts = append(parts, "stroke:"+r.value(s.Color), fmt.Sprintf("stroke-width:%g", s.Width))
	}
	if s.Dash != "" {
		parts = append(parts, "stroke-dasharray:"+s.Dash)
	}
	if s.Opacity != "" {
		parts = append(parts, "stroke-opacity:"+r.value(s.Opacity))
	}
	if s.Cap != "" {
		parts = append(parts, "stroke-linecap:"+s.Cap)
	}
	if s.Join != "" {
		parts = append(parts, "stroke-linejoin:"+s.Join)
	}
	return strings.Join(parts, ";")
}

var varRe = regexp.MustCompile(`^var\(--([a-z0-9-]+)\)$`)

// value returns v, or the palette value it references when colours are
// resolved. Unknown names are left as they are.
func (r *svgRenderer) value(v string) string {
	if !r.resolve {
		return v
	}
	m := varRe.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	if resolved, ok := r.palette[m[1]]; ok {
		return resolved
	}
	return v
}

func classAttr(c string) string {
	if c == "" {
		return ""
	}
	return fmt.Sprintf(` class="%s"`, c)
}

func filterAttr(f string) string {
	if f == "" {
		return ""
	}
	return fmt.Sprintf(` filter="%s"`, f)
}
