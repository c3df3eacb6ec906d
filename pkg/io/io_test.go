package io

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/slavekjurkowski2/dagviz/pkg/dag"
)

const sample = `{
  "nodes": [
    {"id": "a", "label": "Alpha"},
    {"id": "b", "meta": {"tier": "base"}},
    {"id": "c"}
  ],
  "edges": [
    {"from": "a", "to": "b"},
    {"from": "a", "to": "c"}
  ]
}`

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON(): %v", err)
	}

	if got := g.NodeCount(); got != 3 {
		t.Errorf("NodeCount() = %d, want 3", got)
	}
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}
	if got := g.Label("a"); got != "Alpha" {
		t.Errorf("Label(a) = %q, want Alpha", got)
	}
	n, ok := g.Node("b")
	if !ok || n.Meta["tier"] != "base" {
		t.Errorf("node b metadata lost: %+v", n)
	}
	if got := g.Children("a"); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Children(a) = %v", got)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		sentinel error
	}{
		{
			name: "malformed JSON",
			in:   `{"nodes": [`,
		},
		{
			name:     "empty node ID",
			in:       `{"nodes": [{"id": ""}]}`,
			sentinel: dag.ErrInvalidNodeID,
		},
		{
			name:     "duplicate node",
			in:       `{"nodes": [{"id": "a"}, {"id": "a"}]}`,
			sentinel: dag.ErrDuplicateNodeID,
		},
		{
			name:     "edge to unknown node",
			in:       `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "ghost"}]}`,
			sentinel: dag.ErrUnknownTargetNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("ReadJSON() should fail")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("got %v, want %v", err, tt.sentinel)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON(): %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON(): %v", err)
	}

	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() on rewritten graph: %v", err)
	}
	if again.NodeCount() != g.NodeCount() || again.EdgeCount() != g.EdgeCount() {
		t.Errorf("round trip changed counts: %d/%d -> %d/%d",
			g.NodeCount(), g.EdgeCount(), again.NodeCount(), again.EdgeCount())
	}
	if got := again.Label("a"); got != "Alpha" {
		t.Errorf("round trip lost label: %q", got)
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	g := dag.New(nil)
	for _, id := range []string{"z", "m", "a"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "z", To: "a"})
	_ = g.AddEdge(dag.Edge{From: "m", To: "a"})

	var first bytes.Buffer
	if err := WriteJSON(g, &first); err != nil {
		t.Fatalf("WriteJSON(): %v", err)
	}
	for i := 0; i < 5; i++ {
		var again bytes.Buffer
		if err := WriteJSON(g, &again); err != nil {
			t.Fatalf("WriteJSON(): %v", err)
		}
		if !bytes.Equal(first.Bytes(), again.Bytes()) {
			t.Fatal("WriteJSON() should be deterministic")
		}
	}

	out := first.String()
	if strings.Index(out, `"id": "a"`) > strings.Index(out, `"id": "z"`) {
		t.Error("nodes should be sorted by ID")
	}
}

func TestImportExportFiles(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON(): %v", err)
	}

	path := t.TempDir() + "/graph.json"
	if err := ExportJSON(g, path); err != nil {
		t.Fatalf("ExportJSON(): %v", err)
	}
	again, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON(): %v", err)
	}
	if again.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", again.NodeCount())
	}

	if _, err := ImportJSON(path + ".missing"); err == nil {
		t.Error("ImportJSON() on missing file should fail")
	}
}
