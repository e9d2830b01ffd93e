// Package planarity decides whether graphs are planar and computes planar
// embeddings with PQ-trees.
//
// # Overview
//
// Every entry point walks the nodes of a biconnected graph in an st-order
// (see [graph.STNumbering]). At each node the leaves of its incoming edges
// are reduced to a consecutive run of the tree, removed, and replaced by
// fresh leaves for its outgoing edges. The graph is planar iff every
// reduction succeeds.
//
// Two trees are available:
//
//   - [AlgorithmBL]: the linear-time Booth–Lueker tree (package bl). It fails
//     fast on the first reduction that cannot be carried out, and it is the
//     only one that can produce an embedding.
//   - [AlgorithmJTS]: the quadratic Jayakumar–Thulasiraman–Swamy tree
//     (package jts). It never fails; instead it discards the cheapest set of
//     leaves that block a reduction. The graph is planar iff nothing was
//     discarded, and the discarded edges seed planarization.
//
// # Usage
//
// Test a biconnected graph under a given st-order:
//
//	st, err := graph.STNumbering(g, s, t)
//	planar, err := planarity.IsPlanar(g, st)
//
// Test or embed any graph, block by block:
//
//	planar, err := planarity.IsPlanarGraph(g)
//	planar, err = planarity.Embed(g) // rewrites the rotations of g
//	err = planarity.VerifyEmbedding(g)
//
// [Check] reports why a sweep stopped:
//
//	v, err := planarity.Check(ctx, g, st, planarity.Options{Algorithm: planarity.AlgorithmBL})
//	if !v.Planar {
//	    fmt.Println(v.Code, "at step", v.Step)
//	}
//
// # Embeddings
//
// [FindEmbedding] runs the linear tree twice: forwards along the st-order to
// record the order in which the incoming edges of every node became
// consecutive, then backwards, hanging those orders below the tree as
// Q-nodes, to record the outgoing orders and which of them the tree flipped
// later on. The rotation of a node is its incoming order followed by its
// outgoing order, each oriented by the flips.
package planarity
