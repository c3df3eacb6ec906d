// Package metro renders an abstract plot as a metro-map diagram: nodes on
// a vertical trunk in row order, edges routed as colored tracks through a
// lane corridor, merging and splitting like subway lines.
//
// The renderer performs the lane allocation the plot deliberately leaves
// open: a single top-to-bottom pass assigns each edge the lowest free
// lane at its source row and releases it at its destination row, so lane
// indices are reused and the corridor stays as narrow as possible. All
// pixel metrics and primitive drawing come from a pluggable
// [styles.Style]; the renderer never knows the output format.
//
// # Entry points
//
//	svg, err := metro.RenderGraph(g)                    // whole graph
//	svg, err := metro.RenderGraph(g,
//	    metro.WithTargetNode("leaf"), metro.WithAncestors())
//	svg, err := metro.Render(p, metro.WithStyle(custom)) // prebuilt plot
package metro
