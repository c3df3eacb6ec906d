package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	dagio "github.com/slavekjurkowski2/dagviz/pkg/io"
	"github.com/slavekjurkowski2/dagviz/pkg/pipeline"
	"github.com/slavekjurkowski2/dagviz/pkg/render/metro/styles"
)

// renderOpts holds the command-line flags for the render command.
// These options control visualization type, style metrics, and output formats.
type renderOpts struct {
	output    string   // output file path (or base path for multiple outputs)
	vizType   string   // visualization type: "metro" or "nodelink"
	formats   []string // output formats: "svg", "html", "json", "dot", "pdf", "png"
	styleFile string   // optional TOML file overriding style metrics
	target    string   // restrict the plot to this node and its ancestors
	ancestors bool     // include ancestors of the target node
	title     string   // document title for HTML output
	pngScale  float64  // raster scale factor for PNG output
}

// newRenderCmd creates the render command for generating metro-map visualizations.
// It supports metro and nodelink visualization types and multiple output formats.
//
// Default settings:
//   - type: metro
//   - format: svg
//   - png-scale: 2.0
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		vizType:  pipeline.VizTypeMetro,
		pngScale: pipeline.DefaultPNGScale,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a DAG as a metro map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization type: metro (default), nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), html, json, dot, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.styleFile, "style", "", "TOML file overriding style metrics")
	cmd.Flags().StringVar(&opts.target, "target", "", "restrict the plot to this node and its ancestors")
	cmd.Flags().BoolVar(&opts.ancestors, "ancestors", true, "include ancestors of the target node")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title for HTML output")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "raster scale factor for PNG output")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// knownExtensions is the set of format extensions stripped from base paths.
var knownExtensions = map[string]bool{
	"svg": true, "html": true, "json": true, "dot": true, "pdf": true, "png": true,
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// known format extension, that extension is stripped. This is used when
// generating multiple files (e.g., graph.svg, graph.html).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if knownExtensions[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the graph from input, runs the render pipeline, and writes
// each produced artifact to its own file.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, err := dagio.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	style, err := loadStyle(opts.styleFile)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, g, pipeline.Options{
		VizType:          opts.vizType,
		Formats:          opts.formats,
		Style:            style,
		TargetNode:       opts.target,
		IncludeAncestors: opts.ancestors,
		Title:            opts.title,
		PNGScale:         opts.pngScale,
	})
	if err != nil {
		printError("Render failed: %v", err)
		return err
	}
	p.done(fmt.Sprintf("Rendered %d rows into %d artifacts", result.RowCount, len(result.Artifacts)))

	return writeArtifacts(ctx, result, input, opts)
}

// loadStyle builds the metro style, overlaying metrics from the TOML file
// when one is given.
func loadStyle(path string) (styles.Style, error) {
	if path == "" {
		return styles.NewMetro(styles.DefaultMetrics()), nil
	}
	m, err := styles.LoadMetrics(path)
	if err != nil {
		return nil, err
	}
	return styles.NewMetro(m), nil
}

// writeArtifacts writes each artifact in the result to a file. With a single
// format the output path is used (or derived from the input); with multiple
// formats each file gets the format as its extension.
func writeArtifacts(ctx context.Context, result *pipeline.Result, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	base := basePath(opts.output, input)

	printSuccess("Rendered %s (%d rows)", input, result.RowCount)
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}

		logger.Debugf("Generated %s: %d bytes", format, len(data))
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
