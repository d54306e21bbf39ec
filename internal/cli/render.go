package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roadtower/pkg/controller"
	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/handoff"
	"github.com/matzehuels/roadtower/pkg/observability"
	"github.com/matzehuels/roadtower/pkg/render/nodelink"
	"github.com/matzehuels/roadtower/pkg/render/scene"
	"github.com/matzehuels/roadtower/pkg/render/sink"
	"github.com/matzehuels/roadtower/pkg/render/styles"
	"github.com/matzehuels/roadtower/pkg/roadmap"
)

const (
	vizRoadmap  = "roadmap"  // phase / milestone / subtopic diagram
	vizNodeLink = "nodelink" // Graphviz tree of the same document

	defaultPNGScale = 2.0
)

// renderOpts holds the flags shared by every command that writes diagrams.
type renderOpts struct {
	output   string   // output file (single type/format) or base path
	vizTypes []string // "roadmap", "nodelink"
	formats  []string // "svg", "json", "pdf", "png", "dot"
	detailed bool     // add ids, durations and descriptions to nodelink labels
	scale    float64  // PNG scale factor
	title    string   // accessible SVG title
}

func (o *renderOpts) addFlags(cmd *cobra.Command, vizTypes, formats *string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", o.output, "output file (single type/format) or base path (multiple)")
	cmd.Flags().StringVarP(vizTypes, "type", "t", "", "diagram type(s): roadmap (default), nodelink (comma-separated)")
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), json, pdf, png, dot (comma-separated)")
	cmd.Flags().BoolVar(&o.detailed, "detailed", false, "show ids, durations and descriptions (nodelink)")
	cmd.Flags().Float64Var(&o.scale, "scale", defaultPNGScale, "PNG scale factor")
	cmd.Flags().StringVar(&o.title, "title", "", "SVG title (default: the career title)")
}

// parse splits and validates the raw --type and --format values.
func (o *renderOpts) parse(vizTypes, formats string) error {
	o.vizTypes = parseVizTypes(vizTypes)
	o.formats = parseFormats(formats)
	if err := validateVizTypes(o.vizTypes); err != nil {
		return err
	}
	return validateFormats(o.formats)
}

// renderCommand creates the render command. Without a file argument it takes
// the roadmap waiting in the handoff slot.
func (c *CLI) renderCommand() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a roadmap file or the stored handoff payload",
		Long: `Render a roadmap document as a diagram.

With a file argument the document is read from disk. Without one, the payload
left in the handoff slot by "roadtower fetch --store" or "roadtower open
--no-render" is taken (and removed from the slot).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.parse(vizTypesStr, formatsStr); err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	opts.addFlags(cmd, &vizTypesStr, &formatsStr)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	var (
		doc  *roadmap.Document
		ctrl *controller.Controller
		err  error
	)
	if input != "" {
		logger.Infof("Rendering %s", input)
		if doc, err = roadmap.ReadFile(input); err != nil {
			return err
		}
		ctrl = controller.New(nil, handoff.NewMemory(handoff.DefaultSlot))
	} else {
		var closeSlot func()
		ctrl, closeSlot, err = c.newController(ctx)
		if err != nil {
			return err
		}
		defer closeSlot()

		logger.Infof("Rendering payload from handoff slot %q", ctrl.Slot().Name())
		if doc, err = ctrl.Take(ctx); err != nil {
			if errors.Is(err, errors.ErrCodeMissingPayload) {
				printNextStep("Fetch a roadmap first", appName+" fetch <user-id> --store")
			}
			return err
		}
		input = "roadmap"
	}

	phases, milestones, subtopics := doc.Counts()
	logger.Infof("Loaded roadmap: %d phases, %d milestones, %d subtopics", phases, milestones, subtopics)

	paths, err := c.renderAll(ctx, ctrl, doc, basePath(opts.output, input), opts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output has a
// format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// renderAll writes every requested type/format combination and returns the
// written paths. A single combination with an explicit output path is
// written to that path as is.
func (c *CLI) renderAll(ctx context.Context, ctrl *controller.Controller, doc *roadmap.Document, base string, opts *renderOpts) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var s *scene.Scene
	if slices.Contains(opts.vizTypes, vizRoadmap) {
		built := ctrl.Layout(ctx, doc)
		s = &built
	}

	single := len(opts.vizTypes) == 1 && len(opts.formats) == 1
	var paths []string
	for _, vizType := range opts.vizTypes {
		for _, format := range opts.formats {
			data, err := c.renderDocument(ctx, doc, s, vizType, format, opts)
			if stderrors.Is(err, errSkipFormat) {
				logger.Debugf("Skipping %s/%s (unsupported combination)", vizType, format)
				continue
			}
			if err != nil {
				return paths, fmt.Errorf("%s/%s: %w", vizType, format, err)
			}

			path := outputPath(base, vizType, format, opts)
			if single && opts.output != "" {
				path = opts.output
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return paths, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
			}
			paths = append(paths, path)
		}
	}
	prog.done(fmt.Sprintf("Generated %d file(s)", len(paths)))
	return paths, nil
}

// outputPath builds base.format, or base_type.format when several diagram
// types are requested.
func outputPath(base, vizType, format string, opts *renderOpts) string {
	if len(opts.vizTypes) == 1 {
		return fmt.Sprintf("%s.%s", base, format)
	}
	return fmt.Sprintf("%s_%s.%s", base, vizType, format)
}

// errSkipFormat marks a format the diagram type cannot produce.
var errSkipFormat = stderrors.New("skip unsupported format")

// renderDocument produces one format of one diagram type and reports it to
// the render hooks. s is the laid out roadmap, required for vizRoadmap.
func (c *CLI) renderDocument(ctx context.Context, doc *roadmap.Document, s *scene.Scene, vizType, format string, opts *renderOpts) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, vizType+"/"+format)
	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch vizType {
	case vizRoadmap:
		data, err = c.renderRoadmap(ctx, *s, doc, format, opts)
	case vizNodeLink:
		data, err = renderNodeLink(ctx, doc, format, opts)
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "unknown diagram type: %s", vizType)
	}

	if !stderrors.Is(err, errSkipFormat) {
		hooks.OnRenderComplete(ctx, vizType+"/"+format, len(data), time.Since(start), err)
	}
	return data, err
}

func (c *CLI) renderRoadmap(ctx context.Context, s scene.Scene, doc *roadmap.Document, format string, opts *renderOpts) ([]byte, error) {
	svgOpts := c.svgOptions(doc, opts)
	switch format {
	case "svg":
		return sink.RenderSVG(s, svgOpts...), nil
	case "json":
		return sink.RenderJSON(s, sink.WithJSONDefs())
	case "pdf":
		return sink.RenderPDF(ctx, s, sink.WithPDFSVGOptions(svgOpts...))
	case "png":
		return sink.RenderPNG(ctx, s, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.scale))
	case "dot":
		return nil, errSkipFormat
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}

func renderNodeLink(ctx context.Context, doc *roadmap.Document, format string, opts *renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.detailed})

	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return nodelink.RenderSVG(ctx, dot)
	case "pdf":
		return nodelink.RenderPDF(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot, opts.scale)
	case "json":
		return nil, errSkipFormat
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
	}
}

// svgOptions applies the configured palette overrides and the title. doc may
// be nil when the document is not known yet.
func (c *CLI) svgOptions(doc *roadmap.Document, opts *renderOpts) []sink.SVGOption {
	palette := styles.DefaultPalette()
	maps.Copy(palette, c.Config.Render.Palette)

	title := opts.title
	if title == "" && doc != nil {
		title = doc.Roadmap.CareerTitle
	}
	svgOpts := []sink.SVGOption{sink.WithPalette(palette)}
	if title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}
	return svgOpts
}

// =============================================================================
// Flag parsing
// =============================================================================

// parseVizTypes parses the --type flag. If empty, defaults to ["roadmap"].
func parseVizTypes(s string) []string {
	if s == "" {
		return []string{vizRoadmap}
	}
	return strings.Split(s, ",")
}

// parseFormats parses the --format flag. If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "json": true, "pdf": true, "png": true, "dot": true}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'json', 'pdf', 'png' or 'dot')", f)
		}
	}
	return nil
}

func validateVizTypes(types []string) error {
	for _, t := range types {
		if t != vizRoadmap && t != vizNodeLink {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid type: %s (must be 'roadmap' or 'nodelink')", t)
		}
	}
	return nil
}
