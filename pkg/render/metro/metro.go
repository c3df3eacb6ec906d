package metro

import (
	"bytes"
	"slices"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
	"github.com/slavekjurkowski2/dagviz/pkg/plot"
	"github.com/slavekjurkowski2/dagviz/pkg/render/metro/styles"
)

// labelCharWidth estimates rendered label width as a fraction of the font
// size per character, for sizing the canvas.
const labelCharWidth = 0.6

// Option configures metro rendering.
type Option func(*renderer)

type renderer struct {
	style            styles.Style
	target           string
	includeAncestors bool
}

// WithStyle sets the visual style. Defaults to the zero-value
// [styles.Metro] style.
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithTargetNode designates the target node for ancestor-filtered
// rendering. Only honored by [RenderGraph]; [Render] consumes an already
// built plot.
func WithTargetNode(id string) Option { return func(r *renderer) { r.target = id } }

// WithAncestors restricts [RenderGraph] to the target node and its
// ancestors.
func WithAncestors() Option { return func(r *renderer) { r.includeAncestors = true } }

// Render turns an abstract plot into vector image text using the
// configured style. It allocates track lanes, maps rows and lanes to
// pixel coordinates, and emits drawing primitives into a buffer the
// style finally serializes.
//
// Rendering is deterministic: identical plot and style produce
// byte-identical output. Returns an INVALID_STYLE error when a style
// metric is missing and a DANGLING_EDGE error for structurally
// inconsistent plots; in both cases no partial output is produced.
func Render(p *plot.AbstractPlot, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	m := r.style.Metrics()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	assignment, err := assignLanes(p)
	if err != nil {
		return nil, err
	}

	return r.emit(p, m, assignment), nil
}

// RenderGraph builds a plot from the graph (default topological order,
// optionally ancestor-filtered) and renders it. This is the one-call
// entry point for callers holding a plain DAG.
func RenderGraph(g *dag.DAG, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)

	var plotOpts []plot.Option
	if r.target != "" {
		plotOpts = append(plotOpts, plot.WithTarget(r.target))
	}
	if r.includeAncestors {
		plotOpts = append(plotOpts, plot.WithAncestors())
	}

	p, err := plot.Build(g, plotOpts...)
	if err != nil {
		return nil, err
	}
	return Render(p, WithStyle(r.style))
}

func newRenderer(opts ...Option) renderer {
	r := renderer{style: styles.Metro{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// geometry precomputes the pixel mapping for a plot: row index to
// vertical offset, lane index to horizontal offset, and the canvas size.
type geometry struct {
	m        styles.Metrics
	maxLanes int
	labelX   float64
}

func (g geometry) rowY(i int) float64 {
	return g.m.Padding + float64(i)*g.m.RowHeight + g.m.RowHeight/2
}

func (g geometry) laneX(lane int) float64 {
	return g.m.TrunkOffset + float64(lane+1)*g.m.LaneWidth
}

func newGeometry(p *plot.AbstractPlot, m styles.Metrics, maxLanes int) geometry {
	corridorRight := m.TrunkOffset + float64(maxLanes)*m.LaneWidth
	if maxLanes == 0 {
		corridorRight = m.TrunkOffset + m.NodeRadius
	}
	return geometry{m: m, maxLanes: maxLanes, labelX: corridorRight + m.LabelGap}
}

func (g geometry) canvas(p *plot.AbstractPlot) (width, height float64) {
	maxLabel := 0.0
	for _, row := range p.Rows() {
		if w := float64(len(row.Label)) * g.m.FontSize * labelCharWidth; w > maxLabel {
			maxLabel = w
		}
	}
	width = g.labelX + maxLabel + g.m.Padding
	height = float64(p.RowCount())*g.m.RowHeight + 2*g.m.Padding
	return width, height
}

// emit writes all primitives into a buffer and serializes it. Track
// geometry goes first so node markers overpaint the line ends, matching
// the metro-map look; labels come last.
func (r renderer) emit(p *plot.AbstractPlot, m styles.Metrics, a laneAssignment) []byte {
	geo := newGeometry(p, m, a.maxLanes)
	var buf bytes.Buffer

	for _, e := range sortedEdges(a.lanes) {
		r.emitEdge(&buf, geo, e, a.lanes[e])
	}

	for i, row := range p.Rows() {
		r.style.RenderNode(&buf, styles.Node{
			ID:     row.NodeID,
			Center: styles.Point{X: m.TrunkOffset, Y: geo.rowY(i)},
			Radius: m.NodeRadius,
		})
		r.style.RenderLabel(&buf, styles.Label{
			Text:   row.Label,
			Anchor: styles.Point{X: geo.labelX, Y: geo.rowY(i)},
			Size:   m.FontSize,
		})
	}

	width, height := geo.canvas(p)
	return r.style.Serialize(&buf, width, height)
}

// emitEdge draws one edge's full track. An edge to the immediately
// following row connects the two nodes directly on the trunk; a skip
// edge fans out into its lane, runs the lane vertically past the
// intervening rows, and merges back into the destination node.
func (r renderer) emitEdge(buf *bytes.Buffer, geo geometry, e edge, lane int) {
	trunk := geo.m.TrunkOffset

	if e.dst == e.src+1 {
		r.style.RenderSegment(buf, styles.Segment{
			From: styles.Point{X: trunk, Y: geo.rowY(e.src)},
			To:   styles.Point{X: trunk, Y: geo.rowY(e.dst)},
			Lane: lane,
		})
		return
	}

	x := geo.laneX(lane)
	yOut := geo.rowY(e.src) + geo.m.RowHeight/2
	yIn := geo.rowY(e.dst) - geo.m.RowHeight/2

	r.style.RenderCurve(buf, styles.Curve{
		From: styles.Point{X: trunk, Y: geo.rowY(e.src)},
		To:   styles.Point{X: x, Y: yOut},
		Lane: lane,
	})
	r.style.RenderSegment(buf, styles.Segment{
		From: styles.Point{X: x, Y: yOut},
		To:   styles.Point{X: x, Y: yIn},
		Lane: lane,
	})
	r.style.RenderCurve(buf, styles.Curve{
		From: styles.Point{X: x, Y: yIn},
		To:   styles.Point{X: trunk, Y: geo.rowY(e.dst)},
		Lane: lane,
	})
}

func sortedEdges(lanes map[edge]int) []edge {
	edges := make([]edge, 0, len(lanes))
	for e := range lanes {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b edge) int {
		if a.src != b.src {
			return a.src - b.src
		}
		return a.dst - b.dst
	})
	return edges
}
