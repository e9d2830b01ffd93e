// Package io reads and writes graphs in the formats the planarity tools
// exchange.
//
// # JSON Format
//
// The JSON form has two required top-level arrays. Nodes are identified by
// their integer label and edges by their position in the edges array:
//
//	{
//	  "nodes": [
//	    {"id": 1, "rotation": [0, 2]},
//	    {"id": 2},
//	    {"id": 3, "virtual": true}
//	  ],
//	  "edges": [
//	    {"from": 1, "to": 2},
//	    {"from": 2, "to": 3},
//	    {"from": 3, "to": 1}
//	  ]
//	}
//
// A node may carry a rotation: the edges around it in cyclic order, given as
// edge indices. A rotation must list every incident edge exactly once.
// Nodes without one keep the order in which their edges appear. An edge may
// carry a "label", the index of the input edge it was split from; it
// defaults to the edge's own index.
//
// Use [ImportJSON] to read a file, or [ReadJSON] to read from any
// io.Reader. [WriteJSON] and [ExportJSON] go the other way and always emit
// rotations, so an embedding survives the round trip.
//
// # Planarizer Format
//
// The planarizer input is line based. Section headers stand on their own
// line and lines starting with # are comments:
//
//	NODES
//	1
//	2
//	3
//	EDGES
//	1 2
//	2 3
//	VIRTUAL NODE START
//	1000
//
// [ReadPlanarizerInput] parses it with a participle grammar. Errors name the
// file and the line. The output written by [WritePlanarized] lists every
// node, marks the first virtual node with a VIRTUAL_NODES line, and prints
// each input edge as the chain of nodes it runs through:
//
//	NODES
//	1
//	2
//	VIRTUAL_NODES
//	1000
//	EDGES
//	1 1000 2
//
// # Edge List Format
//
// [ReadEdgeList] reads the experiment input: a header line with the node and
// edge counts followed by one edge per line, nodes numbered from 1:
//
//	3 3
//	1 2
//	2 3
//	3 1
//
// A file whose edge count differs from its header is rejected.
//
// # Concurrency
//
// Readers build independent graphs. Writers only read their argument and may
// run concurrently with other readers of the same graph.
package io
