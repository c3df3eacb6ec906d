// Package pipeline provides the plot → render orchestration shared by the
// CLI and HTTP surfaces. By centralizing this logic, both entry points get
// identical behavior: the same defaults, the same artifact formats, and
// the same observability events.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"context"
	"encoding/json"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
	"github.com/slavekjurkowski2/dagviz/pkg/errors"
	"github.com/slavekjurkowski2/dagviz/pkg/observability"
	"github.com/slavekjurkowski2/dagviz/pkg/plot"
	"github.com/slavekjurkowski2/dagviz/pkg/render"
	"github.com/slavekjurkowski2/dagviz/pkg/render/metro"
	"github.com/slavekjurkowski2/dagviz/pkg/render/metro/styles"
	"github.com/slavekjurkowski2/dagviz/pkg/render/nodelink"
)

// Visualization types.
const (
	VizTypeMetro    = "metro"
	VizTypeNodelink = "nodelink"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultPNGScale is the raster scale factor used when none is given.
const DefaultPNGScale = 2.0

var validFormats = []string{FormatSVG, FormatHTML, FormatJSON, FormatDOT, FormatPNG, FormatPDF}

// Options configures a pipeline execution.
type Options struct {
	// VizType selects the visualization: metro (default) or nodelink.
	VizType string
	// Formats lists the artifact formats to produce. Defaults to ["svg"].
	Formats []string
	// Style is the metro style to render with. Defaults to the metro
	// style with default metrics. Ignored by the nodelink visualization.
	Style styles.Style
	// TargetNode and IncludeAncestors restrict the metro plot to a target
	// node plus its ancestors.
	TargetNode       string
	IncludeAncestors bool
	// Title is embedded in HTML artifacts.
	Title string
	// PNGScale is the raster scale factor; defaults to DefaultPNGScale.
	PNGScale float64
}

// Result holds the produced artifacts, keyed by format.
type Result struct {
	// RenderID uniquely identifies this execution, for logging and for
	// correlating HTTP responses with server logs.
	RenderID string
	// Artifacts maps each requested format to its bytes.
	Artifacts map[string][]byte
	// RowCount is the number of plot rows (metro) or graph nodes
	// (nodelink) that were rendered.
	RowCount int
}

// Runner executes the visualization pipeline.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil logger falls back to
// log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{logger: logger}
}

// Execute runs plot construction and rendering for the requested formats.
// Each call is independent: no state is shared or cached across
// executions, so concurrent calls are safe as long as the graph is not
// mutated during the call.
func (r *Runner) Execute(ctx context.Context, g *dag.DAG, opts Options) (*Result, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph must not be nil")
	}
	normalize(&opts)
	if err := validate(opts); err != nil {
		return nil, err
	}

	result := &Result{
		RenderID:  uuid.NewString(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	logger := r.logger.With("render_id", result.RenderID, "viz", opts.VizType)
	logger.Debug("pipeline start", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "formats", opts.Formats)

	switch opts.VizType {
	case VizTypeMetro:
		if err := r.executeMetro(ctx, g, opts, result); err != nil {
			return nil, err
		}
	case VizTypeNodelink:
		if err := r.executeNodelink(ctx, g, opts, result); err != nil {
			return nil, err
		}
	}

	logger.Debug("pipeline done", "rows", result.RowCount)
	return result, nil
}

func normalize(opts *Options) {
	if opts.VizType == "" {
		opts.VizType = VizTypeMetro
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatSVG}
	}
	if opts.Style == nil {
		opts.Style = styles.Metro{}
	}
	if opts.PNGScale <= 0 {
		opts.PNGScale = DefaultPNGScale
	}
}

func validate(opts Options) error {
	if opts.VizType != VizTypeMetro && opts.VizType != VizTypeNodelink {
		return errors.New(errors.ErrCodeInvalidInput, "invalid visualization type: %s", opts.VizType)
	}
	for _, f := range opts.Formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of svg, html, json, dot, png, pdf)", f)
		}
	}
	if opts.VizType == VizTypeNodelink && slices.Contains(opts.Formats, FormatJSON) {
		return errors.New(errors.ErrCodeUnsupported, "json artifacts are only produced by the metro visualization")
	}
	if opts.VizType == VizTypeMetro && slices.Contains(opts.Formats, FormatDOT) {
		return errors.New(errors.ErrCodeUnsupported, "dot artifacts are only produced by the nodelink visualization")
	}
	return nil
}

func (r *Runner) executeMetro(ctx context.Context, g *dag.DAG, opts Options, result *Result) error {
	hooks := observability.Pipeline()

	hooks.OnPlotStart(ctx, g.NodeCount())
	plotStart := time.Now()

	var plotOpts []plot.Option
	if opts.TargetNode != "" {
		plotOpts = append(plotOpts, plot.WithTarget(opts.TargetNode))
	}
	if opts.IncludeAncestors {
		plotOpts = append(plotOpts, plot.WithAncestors())
	}
	p, err := plot.Build(g, plotOpts...)
	hooks.OnPlotComplete(ctx, rowCountOf(p), time.Since(plotStart), err)
	if err != nil {
		return err
	}
	result.RowCount = p.RowCount()

	if err := ctx.Err(); err != nil {
		return err
	}

	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	err = r.renderMetroFormats(p, opts, result)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	return err
}

func (r *Runner) renderMetroFormats(p *plot.AbstractPlot, opts Options, result *Result) error {
	var svg []byte
	needSVG := slices.ContainsFunc(opts.Formats, func(f string) bool { return f != FormatJSON })
	if needSVG {
		var err error
		svg, err = metro.Render(p, metro.WithStyle(opts.Style))
		if err != nil {
			return err
		}
	}

	for _, f := range opts.Formats {
		switch f {
		case FormatSVG:
			result.Artifacts[f] = svg
		case FormatHTML:
			result.Artifacts[f] = render.WrapHTML(svg, opts.Title)
		case FormatJSON:
			data, err := json.MarshalIndent(p.Rows(), "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "failed to encode plot")
			}
			result.Artifacts[f] = append(data, '\n')
		case FormatPNG:
			png, err := render.ToPNG(svg, opts.PNGScale)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "png conversion failed")
			}
			result.Artifacts[f] = png
		case FormatPDF:
			pdf, err := render.ToPDF(svg)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "pdf conversion failed")
			}
			result.Artifacts[f] = pdf
		}
	}
	return nil
}

func (r *Runner) executeNodelink(ctx context.Context, g *dag.DAG, opts Options, result *Result) error {
	hooks := observability.Pipeline()
	result.RowCount = g.NodeCount()

	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	err := r.renderNodelinkFormats(g, opts, result)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	return err
}

func (r *Runner) renderNodelinkFormats(g *dag.DAG, opts Options, result *Result) error {
	dot := nodelink.ToDOT(g, nodelink.Options{})

	var svg []byte
	needSVG := slices.ContainsFunc(opts.Formats, func(f string) bool { return f != FormatDOT })
	if needSVG {
		var err error
		svg, err = nodelink.RenderSVG(dot)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "graphviz rendering failed")
		}
	}

	for _, f := range opts.Formats {
		switch f {
		case FormatDOT:
			result.Artifacts[f] = []byte(dot)
		case FormatSVG:
			result.Artifacts[f] = svg
		case FormatHTML:
			result.Artifacts[f] = render.WrapHTML(svg, opts.Title)
		case FormatPNG:
			png, err := render.ToPNG(svg, opts.PNGScale)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "png conversion failed")
			}
			result.Artifacts[f] = png
		case FormatPDF:
			pdf, err := render.ToPDF(svg)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "pdf conversion failed")
			}
			result.Artifacts[f] = pdf
		}
	}
	return nil
}

func rowCountOf(p *plot.AbstractPlot) int {
	if p == nil {
		return 0
	}
	return p.RowCount()
}
