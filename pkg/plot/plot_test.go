package plot

import (
	"slices"
	"testing"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
	dagerrors "github.com/slavekjurkowski2/dagviz/pkg/errors"
)

func buildGraph(t *testing.T, nodes []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New(nil)
	for _, id := range nodes {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestBuildDiamond(t *testing.T) {
	// A→B, A→C, B→D, C→D with order [A,B,C,D]: four rows, D has two inputs,
	// and no edge skips more than one row except A→C (row 0 to row 2).
	g := buildGraph(t, []string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}})

	p, err := Build(g, WithOrder([]string{"A", "B", "C", "D"}))
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	if got := p.RowCount(); got != 4 {
		t.Fatalf("RowCount() = %d, want 4", got)
	}

	rows := p.Rows()
	if got := rows[3].Inputs; !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("row D inputs = %v, want [B C]", got)
	}
	if got := rows[0].Outputs; !slices.Equal(got, []int{1, 2}) {
		t.Errorf("row A outputs = %v, want [1 2]", got)
	}
	if got := rows[1].OutDegree(); got != 1 {
		t.Errorf("row B out-degree = %d, want 1", got)
	}
}

func TestBuildSkipEdge(t *testing.T) {
	// A→C skips row B; the destination index must point at row 2.
	g := buildGraph(t, []string{"A", "B", "C"},
		[][2]string{{"A", "C"}, {"A", "B"}, {"B", "C"}})

	p, err := Build(g, WithOrder([]string{"A", "B", "C"}))
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	rows := p.Rows()
	if got := rows[0].Outputs; !slices.Equal(got, []int{1, 2}) {
		t.Errorf("row A outputs = %v, want [1 2]", got)
	}
	if got := rows[2].Inputs; !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("row C inputs = %v, want [A B] (source-row order)", got)
	}
}

func TestBuildSingleNode(t *testing.T) {
	g := buildGraph(t, []string{"solo"}, nil)

	p, err := Build(g)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if got := p.RowCount(); got != 1 {
		t.Fatalf("RowCount() = %d, want 1", got)
	}
	row := p.Rows()[0]
	if len(row.Inputs) != 0 || row.OutDegree() != 0 {
		t.Errorf("single node row has connections: %+v", row)
	}
	if row.Label != "solo" {
		t.Errorf("Label = %q, want solo", row.Label)
	}
}

func TestBuildDefaultOrder(t *testing.T) {
	g := buildGraph(t, []string{"c", "a", "b"}, [][2]string{{"c", "a"}, {"a", "b"}})

	p, err := Build(g)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	var ids []string
	for _, r := range p.Rows() {
		ids = append(ids, r.NodeID)
	}
	if !slices.Equal(ids, []string{"c", "a", "b"}) {
		t.Errorf("row order = %v, want [c a b]", ids)
	}
}

func TestBuildCycleFails(t *testing.T) {
	g := buildGraph(t, []string{"x", "y"}, [][2]string{{"x", "y"}, {"y", "x"}})

	_, err := Build(g)
	if !dagerrors.Is(err, dagerrors.ErrCodeInvalidGraph) {
		t.Errorf("Build() on cycle: got %v, want INVALID_GRAPH", err)
	}
}

func TestBuildNilGraph(t *testing.T) {
	_, err := Build(nil)
	if !dagerrors.Is(err, dagerrors.ErrCodeInvalidInput) {
		t.Errorf("Build(nil): got %v, want INVALID_INPUT", err)
	}
}

func TestBuildAncestorFilter(t *testing.T) {
	// root→mid→leaf, root→side; ancestors(leaf) = {root, mid}.
	g := buildGraph(t, []string{"root", "mid", "leaf", "side"},
		[][2]string{{"root", "mid"}, {"mid", "leaf"}, {"root", "side"}})

	p, err := Build(g, WithTarget("leaf"), WithAncestors())
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	var ids []string
	for _, r := range p.Rows() {
		ids = append(ids, r.NodeID)
	}
	if !slices.Equal(ids, []string{"root", "mid", "leaf"}) {
		t.Errorf("filtered rows = %v, want [root mid leaf]", ids)
	}

	// root→side leaves the plot: it must not appear in root's outputs.
	if got := p.Rows()[0].Outputs; !slices.Equal(got, []int{1}) {
		t.Errorf("root outputs = %v, want [1]", got)
	}
}

func TestBuildAncestorFilterUnknownTarget(t *testing.T) {
	g := buildGraph(t, []string{"a"}, nil)

	_, err := Build(g, WithTarget("ghost"), WithAncestors())
	if !dagerrors.Is(err, dagerrors.ErrCodeNotFound) {
		t.Errorf("Build(): got %v, want NOT_FOUND", err)
	}
}

func TestBuildTargetWithoutAncestorsIsFullPlot(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})

	p, err := Build(g, WithTarget("b"))
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if got := p.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2 (target alone must not filter)", got)
	}
}

func TestBuildLabels(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "n1", Label: "Ingest"})
	_ = g.AddNode(dag.Node{ID: "n2"})
	_ = g.AddEdge(dag.Edge{From: "n1", To: "n2"})

	p, err := Build(g)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if got := p.Rows()[0].Label; got != "Ingest" {
		t.Errorf("label = %q, want Ingest", got)
	}
	if got := p.Rows()[1].Label; got != "n2" {
		t.Errorf("label = %q, want n2 (ID fallback)", got)
	}
}

func TestRowIndex(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	p, err := Build(g)
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}

	if i, ok := p.RowIndex("b"); !ok || i != 1 {
		t.Errorf("RowIndex(b) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := p.RowIndex("ghost"); ok {
		t.Error("RowIndex(ghost) should be false")
	}
}

func TestBuildStaticOrderUsedAsGiven(t *testing.T) {
	// A reversed (non-topological) order is accepted verbatim; the builder
	// does not police topological validity.
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})

	p, err := Build(g, WithOrder([]string{"b", "a"}))
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	if got := p.Rows()[0].NodeID; got != "b" {
		t.Errorf("first row = %s, want b", got)
	}
}
