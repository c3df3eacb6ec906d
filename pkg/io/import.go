// Package io reads and writes the JSON interchange format for dagviz
// graphs:
//
//	{
//	  "nodes": [{"id": "a", "label": "Alpha"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// The format round-trips: anything written with [WriteJSON] can be read
// back with [ReadJSON].
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID    string       `json:"id"`
	Label string       `json:"label,omitempty"`
	Meta  dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReadJSON decodes a JSON graph from r into a DAG.
//
// Each node must have an "id" field; "label" and "meta" are optional.
// Each edge must have "from" and "to" fields referencing node IDs.
//
// ReadJSON returns an error if the JSON is malformed, a node ID is empty
// or duplicated, or an edge references an unknown node. Errors are
// wrapped with context naming the offending node or edge; use errors.Is
// to check for the dag package's sentinel errors.
//
// ReadJSON does not check for cycles - call [dag.DAG.Validate] before
// plotting when the input is untrusted. It does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New(nil)
	for _, n := range data.Nodes {
		if err := g.AddNode(dag.Node{ID: n.ID, Label: n.Label, Meta: n.Meta}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}

// ImportJSON reads a DAG from a JSON file at path.
// This is a convenience wrapper around [ReadJSON] for file-based input.
func ImportJSON(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
