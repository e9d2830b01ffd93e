// Package graph provides the undirected graph container used by the
// planarity testers and the planarizer.
//
// # Handles
//
// Nodes and edges are addressed by dense integer handles ([NodeID], [EdgeID])
// that stay valid for the lifetime of the graph. [NilNode] and [NilEdge] are
// the reserved "none" values.
//
// # Rotations
//
// Every node keeps its incident edges in an ordered list. Before an embedding
// is computed this order is just insertion order; afterwards it is the cyclic
// clockwise order of a planar drawing. [Faces] traces the faces of such a
// rotation system and [EulerCheck] validates it.
//
// # Algorithms
//
//   - [STNumbering]: bipolar orientation between two nodes (Even–Tarjan)
//   - [Blocks]: biconnected components
//   - [Components]: connected components
//
// # Example
//
//	g := graph.New()
//	for i := int64(1); i <= 4; i++ {
//	    g.AddNode(i)
//	}
//	g.AddEdgeByLabel(1, 2)
//	g.AddEdgeByLabel(2, 3)
//	g.AddEdgeByLabel(3, 4)
//	g.AddEdgeByLabel(4, 1)
//	s, _ := g.NodeByLabel(1)
//	t, _ := g.NodeByLabel(2)
//	order, err := graph.STNumbering(g, s, t)
package graph
