// Package nodelink draws undirected graphs as node-link diagrams with
// Graphviz.
//
// [ToDOT] writes an undirected DOT graph laid out by neato. Input nodes are
// circles labeled with their number; virtual nodes, the crossings a
// planarization introduced, are small filled points so each original edge
// reads as one line through them. [RenderSVG] runs the embedded Graphviz:
//
//	dot := nodelink.ToDOT(res.Graph, nodelink.Options{Highlight: res.Removed})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The layout is Graphviz's own and does not follow the graph's rotation
// system.
package nodelink
