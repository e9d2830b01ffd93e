// Package planarize turns any graph into a planar one by replacing edge
// crossings with virtual nodes.
//
// # Pipeline
//
// [Planarize] runs three stages, each also available on its own:
//
//  1. [PlanarSubgraph]: the quadratic PQ-tree sweeps every biconnected
//     block and drops the edges it cannot keep. The rest is a spanning
//     planar subgraph.
//  2. [Maximalize]: every dropped edge is offered back and kept if the
//     subgraph stays planar.
//  3. [Reinsert]: the subgraph is embedded once. Each edge still missing
//     is routed along a shortest path through the faces of the embedding;
//     every edge it crosses is split by a virtual node and the route is
//     added as a chain of segments.
//
// # Result
//
// The planarized graph keeps the node handles of the input and appends the
// virtual nodes. Every input edge maps to a chain of planarized nodes:
// its two endpoints, with the crossings it passes in between.
//
//	res, err := planarize.Planarize(ctx, g, planarize.Options{})
//	for e, chain := range res.Chains {
//	    fmt.Println(e, chain)
//	}
package planarize
