// Package nodelink renders a DAG as a classic node-link diagram via
// Graphviz, as an alternative to the metro view. The graph is first
// serialized to DOT ([ToDOT]) and then laid out by Graphviz ([RenderSVG]).
package nodelink
