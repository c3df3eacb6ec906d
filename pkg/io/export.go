package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
)

// WriteJSON encodes a DAG as JSON and writes it to w.
// Nodes are emitted in sorted ID order so the output is deterministic;
// edges keep insertion order. The result can be re-imported with
// [ReadJSON] for round-trip processing.
func WriteJSON(g *dag.DAG, w io.Writer) error {
	ids := g.NodeIDs()
	out := graph{
		Nodes: make([]node, len(ids)),
		Edges: make([]edge, len(g.Edges())),
	}

	for i, id := range ids {
		n, _ := g.Node(id)
		nd := node{ID: n.ID, Label: n.Label}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes[i] = nd
	}
	for i, e := range g.Edges() {
		out.Edges[i] = edge{From: e.From, To: e.To}
	}
	slices.SortFunc(out.Edges, func(a, b edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a DAG to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *dag.DAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
