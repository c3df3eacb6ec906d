// Package dag provides the directed acyclic graph consumed by the dagviz
// layout and rendering pipeline.
//
// A [DAG] stores nodes keyed by string ID with optional display labels and
// metadata, plus directed edges with predecessor/successor indices. The
// package also supplies the graph algorithms the plot builder relies on:
// deterministic topological ordering ([DAG.TopologicalSort]), ancestor-set
// computation ([DAG.Ancestors]), and cycle detection ([DAG.Validate]).
//
// Acyclicity is intentionally not enforced on insertion. Callers building
// graphs from untrusted input should call Validate before plotting; the
// layout and rendering stages assume a valid DAG and do not re-check.
//
// # Example
//
//	g := dag.New(nil)
//	_ = g.AddNode(dag.Node{ID: "a"})
//	_ = g.AddNode(dag.Node{ID: "b"})
//	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
//	order, _ := g.TopologicalSort() // ["a", "b"]
package dag
