// Package bl implements the Booth-Lueker PQ-tree used by the linear-time
// planarity test.
//
// Leaves stand for graph edges. Each reduction makes a set of leaves
// consecutive by bubble-up followed by template matching (L1, P1-P8, Q1-Q5),
// after which the pertinent subtree is cut out and replaced by an
// attachment node that new leaves hang from.
//
// Besides the plain yes/no reduction the tree can record the frontier order
// of every reduced leaf set ([CollectEdges]) and follow how later reductions
// flip the Q-nodes those orders were read from ([TrackFlips]). Together
// these drive the two-sweep embedding in package planarity.
//
// # Node identity
//
// Nodes are plain pointers. A P-node keeps its children in an unordered
// slice, and a Q-node keeps only its two end children; the rest of the
// chain is threaded through undirected sibling links. Interior Q children
// do not know their parent until bubble-up hands it to them.
//
// # Virtual roots
//
// When the pertinent leaves sit under a run of interior Q children whose
// parent bubble-up never reaches, the run is adopted by a temporary
// virtual root. Only template Q3 applies to it, and removal deletes it with
// the run.
package bl
