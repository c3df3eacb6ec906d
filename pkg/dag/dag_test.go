package dag

import (
	"errors"
	"slices"
	"testing"
)

func buildDiamond(t *testing.T) *DAG {
	t.Helper()
	g := New(nil)
	for _, id := range []string{"A", "B", "C", "D"} {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range []Edge{{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "B", To: "D"}, {From: "C", To: "D"}} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e.From, e.To, err)
		}
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New(nil)

	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID: got %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate ID: got %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})

	if err := g.AddEdge(Edge{From: "missing", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("unknown source: got %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "missing"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("unknown target: got %v, want ErrUnknownTargetNode", err)
	}
}

func TestDegreesAndAdjacency(t *testing.T) {
	g := buildDiamond(t)

	if got := g.OutDegree("A"); got != 2 {
		t.Errorf("OutDegree(A) = %d, want 2", got)
	}
	if got := g.InDegree("D"); got != 2 {
		t.Errorf("InDegree(D) = %d, want 2", got)
	}
	if got := g.Children("A"); !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("Children(A) = %v", got)
	}
	if got := g.Parents("D"); !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("Parents(D) = %v", got)
	}
	if got := g.OutDegree("missing"); got != 0 {
		t.Errorf("OutDegree(missing) = %d, want 0", got)
	}
}

func TestLabelFallback(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a", Label: "Alpha"})
	_ = g.AddNode(Node{ID: "b"})

	if got := g.Label("a"); got != "Alpha" {
		t.Errorf("Label(a) = %q, want Alpha", got)
	}
	if got := g.Label("b"); got != "b" {
		t.Errorf("Label(b) = %q, want b", got)
	}
	if got := g.Label("ghost"); got != "ghost" {
		t.Errorf("Label(ghost) = %q, want ghost", got)
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := buildDiamond(t)

	sources := g.Sources()
	if len(sources) != 1 || sources[0].ID != "A" {
		t.Errorf("Sources() = %v, want [A]", sources)
	}
	sinks := g.Sinks()
	if len(sinks) != 1 || sinks[0].ID != "D" {
		t.Errorf("Sinks() = %v, want [D]", sinks)
	}
}

func TestValidate(t *testing.T) {
	g := buildDiamond(t)
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() on acyclic graph: %v", err)
	}

	// Close the loop D -> A.
	_ = g.AddEdge(Edge{From: "D", To: "A"})
	if err := g.Validate(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("Validate() on cyclic graph: got %v, want ErrGraphHasCycle", err)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := buildDiamond(t)
	g.RemoveEdge("A", "B")

	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
	if got := g.Children("A"); !slices.Equal(got, []string{"C"}) {
		t.Errorf("Children(A) = %v, want [C]", got)
	}
	if got := g.Parents("B"); len(got) != 0 {
		t.Errorf("Parents(B) = %v, want empty", got)
	}
}

func TestTopologicalSort(t *testing.T) {
	tests := []struct {
		name  string
		nodes []string
		edges []Edge
		want  []string
	}{
		{
			name:  "diamond",
			nodes: []string{"A", "B", "C", "D"},
			edges: []Edge{{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "B", To: "D"}, {From: "C", To: "D"}},
			want:  []string{"A", "B", "C", "D"},
		},
		{
			name:  "no edges sorts by ID",
			nodes: []string{"c", "a", "b"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "chain",
			nodes: []string{"z", "m", "a"},
			edges: []Edge{{From: "z", To: "m"}, {From: "m", To: "a"}},
			want:  []string{"z", "m", "a"},
		},
		{
			name:  "skip edge",
			nodes: []string{"A", "B", "C"},
			edges: []Edge{{From: "A", To: "C"}, {From: "A", To: "B"}, {From: "B", To: "C"}},
			want:  []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil)
			for _, id := range tt.nodes {
				_ = g.AddNode(Node{ID: id})
			}
			for _, e := range tt.edges {
				_ = g.AddEdge(e)
			}

			got, err := g.TopologicalSort()
			if err != nil {
				t.Fatalf("TopologicalSort(): %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("TopologicalSort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopologicalSortCycle(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "a"})

	if _, err := g.TopologicalSort(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("TopologicalSort() on cycle: got %v, want ErrGraphHasCycle", err)
	}
}

func TestAncestors(t *testing.T) {
	g := buildDiamond(t)

	anc := g.Ancestors("D")
	for _, id := range []string{"A", "B", "C"} {
		if _, ok := anc[id]; !ok {
			t.Errorf("Ancestors(D) missing %s", id)
		}
	}
	if _, ok := anc["D"]; ok {
		t.Error("Ancestors(D) must not contain the target itself")
	}
	if got := len(g.Ancestors("A")); got != 0 {
		t.Errorf("Ancestors(A) = %d entries, want 0", got)
	}
	if got := len(g.Ancestors("ghost")); got != 0 {
		t.Errorf("Ancestors(ghost) = %d entries, want 0", got)
	}
}

func TestPosMap(t *testing.T) {
	m := PosMap([]string{"x", "y", "z"})
	if m["x"] != 0 || m["y"] != 1 || m["z"] != 2 {
		t.Errorf("PosMap() = %v", m)
	}
	if got := len(PosMap(nil)); got != 0 {
		t.Errorf("PosMap(nil) has %d entries, want 0", got)
	}
}
