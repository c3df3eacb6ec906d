// Package plot builds the abstract row/track representation of a DAG.
//
// An [AbstractPlot] places every node of a linear (topological) order on
// its own row and records, per row, the predecessors that feed into it and
// the row indices its outgoing edges terminate at. Track lanes are not
// assigned here - lane allocation is a rendering-time concern handled by
// the metro renderer, keeping the plot purely structural.
//
// Plots can cover the whole graph or be restricted to a target node plus
// its ancestors via [WithTarget] and [WithAncestors].
package plot
