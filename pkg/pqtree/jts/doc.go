// Package jts implements the quadratic PQ-tree of Jayakumar, Thulasiraman
// and Swamy used to find a large planar subgraph.
//
// A reduction here never fails. Before any template runs, every pertinent
// node gets four costs, each counting the pertinent leaves that must be
// dropped for the node to end up
//
//   - W: empty, every pertinent leaf below discarded
//   - H: partial, with its kept full leaves at one end
//   - A: partial, with its kept full leaves in the middle
//   - CD: complementary, with kept full leaves at both ends
//
// Roles are then handed down from the pertinent root, leaves with role W
// are discarded and the usual templates finish the job on what is left.
// Complementary runs are only allowed at the root of the whole tree.
//
// Nodes keep their children in an ordered slice for both P- and Q-nodes,
// and every child always knows its parent, which trades the linear bound of
// package bl for much simpler bookkeeping.
package jts
