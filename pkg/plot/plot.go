package plot

import (
	"slices"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
	"github.com/slavekjurkowski2/dagviz/pkg/errors"
)

// Row is one horizontal slice of the plot, corresponding to exactly one
// graph node. Rows appear in visual top-to-bottom order.
type Row struct {
	// Label is the display text for the node, falling back to its ID.
	Label string `json:"label"`
	// NodeID identifies the graph node this row represents.
	NodeID string `json:"node_id"`
	// Inputs lists predecessor node IDs whose rows are part of this plot,
	// ordered by ascending source row index.
	Inputs []string `json:"inputs,omitempty"`
	// Outputs lists the destination row indices of this node's outgoing
	// edges, ascending. Edges to nodes outside the plot are omitted so a
	// filtered plot stays self-consistent.
	Outputs []int `json:"outputs,omitempty"`
}

// OutDegree returns the number of outgoing edges fanning out below this row.
func (r Row) OutDegree() int { return len(r.Outputs) }

// AbstractPlot is the structural, pixel-free intermediate representation
// consumed by the metro renderer. It is immutable after Build returns.
type AbstractPlot struct {
	rows  []Row
	index map[string]int // nodeID -> row index
}

// Rows returns the plot's rows in visual top-to-bottom order.
// The returned slice must be treated as read-only.
func (p *AbstractPlot) Rows() []Row { return p.rows }

// RowCount returns the number of rows in the plot.
func (p *AbstractPlot) RowCount() int { return len(p.rows) }

// RowIndex returns the row index of the given node and true, or 0 and
// false if the node is not part of the plot.
func (p *AbstractPlot) RowIndex(id string) (int, bool) {
	i, ok := p.index[id]
	return i, ok
}

// Option configures plot construction.
type Option func(*builder)

type builder struct {
	order            []string
	orderFunc        func(*dag.DAG) ([]string, error)
	target           string
	includeAncestors bool
}

// WithOrder supplies a static node sequence to use as the row order.
// The sequence is used as given: the builder does not verify completeness
// or topological validity. Takes precedence over WithOrderFunc.
func WithOrder(ids []string) Option {
	return func(b *builder) { b.order = ids }
}

// WithOrderFunc supplies a function that computes the row order from the
// graph. The default is [dag.DAG.TopologicalSort].
func WithOrderFunc(fn func(*dag.DAG) ([]string, error)) Option {
	return func(b *builder) { b.orderFunc = fn }
}

// WithTarget designates a target node for ancestor-filtered plots.
// Has no effect unless combined with WithAncestors.
func WithTarget(id string) Option {
	return func(b *builder) { b.target = id }
}

// WithAncestors restricts the plot to the target node and its ancestors,
// preserving their relative order. Descendants of the target are never
// included.
func WithAncestors() Option {
	return func(b *builder) { b.includeAncestors = true }
}

// Build constructs an AbstractPlot from the graph: one row per ordered
// node, carrying its label, in-plot predecessors, and the destination row
// index of every in-plot outgoing edge.
//
// Build is a pure function of its inputs and performs no validation of
// acyclicity - see [dag.DAG.Validate]. A node in the order that is absent
// from the graph produces a row with no connections, labeled by its ID.
func Build(g *dag.DAG, opts ...Option) (*AbstractPlot, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph must not be nil")
	}

	b := builder{orderFunc: func(g *dag.DAG) ([]string, error) { return g.TopologicalSort() }}
	for _, opt := range opts {
		opt(&b)
	}

	sequence, err := b.sequence(g)
	if err != nil {
		return nil, err
	}

	index := dag.PosMap(sequence)
	rows := make([]Row, len(sequence))
	for i, id := range sequence {
		rows[i] = buildRow(g, id, index)
	}

	return &AbstractPlot{rows: rows, index: index}, nil
}

// sequence resolves the final row order: static order if given, otherwise
// the order function, then ancestor filtering if requested.
func (b *builder) sequence(g *dag.DAG) ([]string, error) {
	order := b.order
	if order == nil {
		var err error
		order, err = b.orderFunc(g)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "failed to order graph")
		}
	}

	if !b.includeAncestors || b.target == "" {
		return order, nil
	}

	if _, ok := g.Node(b.target); !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "target node %s not in graph", b.target)
	}

	keep := g.Ancestors(b.target)
	filtered := make([]string, 0, len(keep)+1)
	for _, id := range order {
		if _, ok := keep[id]; ok || id == b.target {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

func buildRow(g *dag.DAG, id string, index map[string]int) Row {
	row := Row{Label: g.Label(id), NodeID: id}

	for _, pred := range g.Parents(id) {
		if _, ok := index[pred]; ok && !slices.Contains(row.Inputs, pred) {
			row.Inputs = append(row.Inputs, pred)
		}
	}
	slices.SortFunc(row.Inputs, func(a, b string) int { return index[a] - index[b] })

	for _, succ := range g.Children(id) {
		if dst, ok := index[succ]; ok && !slices.Contains(row.Outputs, dst) {
			row.Outputs = append(row.Outputs, dst)
		}
	}
	slices.Sort(row.Outputs)

	return row
}
