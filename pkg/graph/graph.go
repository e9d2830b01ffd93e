package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when a NodeID or node label does not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned when an EdgeID does not exist.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrDuplicateLabel is returned by [Graph.AddNode] when a node with the
	// same label already exists. Labels are the user-visible node numbers.
	ErrDuplicateLabel = errors.New("duplicate node label")

	// ErrSelfLoop is returned by [Graph.AddEdge] for an edge whose two
	// endpoints coincide. Planarity testing works on loop-free graphs.
	ErrSelfLoop = errors.New("self loop")

	// ErrNotPermutation is returned by [Graph.SetRotation] when the new
	// incidence order is not a permutation of the current one.
	ErrNotPermutation = errors.New("rotation is not a permutation of the incident edges")
)

// NodeID is a stable handle to a node. Handles are dense indices assigned in
// insertion order and never reused.
type NodeID int

// EdgeID is a stable handle to an edge.
type EdgeID int

const (
	// NilNode is the reserved "no node" handle.
	NilNode NodeID = -1
	// NilEdge is the reserved "no edge" handle.
	NilEdge EdgeID = -1
)

type node struct {
	label    int64
	virtual  bool
	incident []EdgeID
}

type edge struct {
	ends    [2]NodeID
	label   int64
	removed bool
}

// Graph is an undirected multigraph with ordered incidence lists.
//
// The incidence order of a node doubles as its rotation: once an embedding
// has been computed, Incident(n) lists the edges around n in cyclic order.
// Graph is not safe for concurrent use; give every goroutine its own copy via
// Clone.
//
// The zero value is not usable; use New.
type Graph struct {
	nodes   []node
	edges   []edge
	byLabel map[int64]NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{byLabel: make(map[int64]NodeID)}
}

// AddNode adds a node carrying the given user-visible label.
// Returns ErrDuplicateLabel if the label is already in use.
func (g *Graph) AddNode(label int64) (NodeID, error) {
	return g.addNode(label, false)
}

// AddVirtualNode adds a node that does not exist in the input graph, such as
// a crossing introduced by planarization.
func (g *Graph) AddVirtualNode(label int64) (NodeID, error) {
	return g.addNode(label, true)
}

func (g *Graph) addNode(label int64, virtual bool) (NodeID, error) {
	if _, ok := g.byLabel[label]; ok {
		return NilNode, fmt.Errorf("%w: %d", ErrDuplicateLabel, label)
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{label: label, virtual: virtual})
	g.byLabel[label] = id
	return id, nil
}

// AddEdge appends an edge between u and v to both incidence lists.
// The edge label defaults to the edge's own index.
func (g *Graph) AddEdge(u, v NodeID) (EdgeID, error) {
	if !g.validNode(u) || !g.validNode(v) {
		return NilEdge, ErrUnknownNode
	}
	if u == v {
		return NilEdge, fmt.Errorf("%w at node %d", ErrSelfLoop, g.nodes[u].label)
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge{ends: [2]NodeID{u, v}, label: int64(id)})
	g.nodes[u].incident = append(g.nodes[u].incident, id)
	g.nodes[v].incident = append(g.nodes[v].incident, id)
	return id, nil
}

// AddEdgeByLabel adds an edge between the nodes labeled a and b.
func (g *Graph) AddEdgeByLabel(a, b int64) (EdgeID, error) {
	u, ok := g.byLabel[a]
	if !ok {
		return NilEdge, fmt.Errorf("%w: %d", ErrUnknownNode, a)
	}
	v, ok := g.byLabel[b]
	if !ok {
		return NilEdge, fmt.Errorf("%w: %d", ErrUnknownNode, b)
	}
	return g.AddEdge(u, v)
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Nodes returns all node handles in insertion order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.nodes))
	for i := range out {
		out[i] = NodeID(i)
	}
	return out
}

// Edges returns all edge handles in insertion order.
func (g *Graph) Edges() []EdgeID {
	out := make([]EdgeID, len(g.edges))
	for i := range out {
		out[i] = EdgeID(i)
	}
	return out
}

// NodeByLabel looks up a node by its label.
func (g *Graph) NodeByLabel(label int64) (NodeID, bool) {
	id, ok := g.byLabel[label]
	return id, ok
}

// Label returns the user-visible label of n.
func (g *Graph) Label(n NodeID) int64 { return g.nodes[n].label }

// IsVirtual reports whether n was introduced by planarization.
func (g *Graph) IsVirtual(n NodeID) bool { return g.nodes[n].virtual }

// Incident returns the incidence list of n in its current (rotation) order.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Incident(n NodeID) []EdgeID { return g.nodes[n].incident }

// Degree returns the number of edges incident to n.
func (g *Graph) Degree(n NodeID) int { return len(g.nodes[n].incident) }

// Ends returns both endpoints of e.
func (g *Graph) Ends(e EdgeID) (NodeID, NodeID) {
	return g.edges[e].ends[0], g.edges[e].ends[1]
}

// Adjacent returns the endpoint of e that is not n.
func (g *Graph) Adjacent(e EdgeID, n NodeID) NodeID {
	if g.edges[e].ends[0] == n {
		return g.edges[e].ends[1]
	}
	return g.edges[e].ends[0]
}

// EdgeLabel returns the label of e. Edges produced by splitting keep the
// label of the edge they were split from.
func (g *Graph) EdgeLabel(e EdgeID) int64 { return g.edges[e].label }

// SetEdgeLabel overrides the label of e.
func (g *Graph) SetEdgeLabel(e EdgeID, label int64) { g.edges[e].label = label }

// IsRemoved reports the planarizer's "removed" mark on e.
func (g *Graph) IsRemoved(e EdgeID) bool { return g.edges[e].removed }

// SetRemoved sets the planarizer's "removed" mark on e.
func (g *Graph) SetRemoved(e EdgeID, removed bool) { g.edges[e].removed = removed }

// SetRotation replaces the incidence order of n. The new order must contain
// exactly the edges currently incident to n.
func (g *Graph) SetRotation(n NodeID, order []EdgeID) error {
	if !g.validNode(n) {
		return ErrUnknownNode
	}
	cur := g.nodes[n].incident
	if len(order) != len(cur) {
		return ErrNotPermutation
	}
	a := slices.Clone(cur)
	b := slices.Clone(order)
	slices.Sort(a)
	slices.Sort(b)
	if !slices.Equal(a, b) {
		return ErrNotPermutation
	}
	g.nodes[n].incident = slices.Clone(order)
	return nil
}

// NextInRotation returns the edge following e in the cyclic order around n.
func (g *Graph) NextInRotation(n NodeID, e EdgeID) EdgeID {
	inc := g.nodes[n].incident
	i := slices.Index(inc, e)
	if i < 0 {
		return NilEdge
	}
	return inc[(i+1)%len(inc)]
}

// InsertAfter places e, which must already list n as an endpoint, into n's
// rotation directly after the edge after. NilEdge appends.
func (g *Graph) InsertAfter(n NodeID, after, e EdgeID) {
	inc := g.nodes[n].incident
	if i := slices.Index(inc, e); i >= 0 {
		inc = slices.Delete(inc, i, i+1)
	}
	pos := len(inc)
	if after != NilEdge {
		if i := slices.Index(inc, after); i >= 0 {
			pos = i + 1
		}
	}
	g.nodes[n].incident = slices.Insert(inc, pos, e)
}

// ReplaceIncident puts repl at the position of old in n's rotation and
// drops old from it. repl must have n as an endpoint; if it already sits
// elsewhere in the rotation it is moved. The endpoints of old are left
// alone.
func (g *Graph) ReplaceIncident(n NodeID, old, repl EdgeID) error {
	if !g.validNode(n) {
		return ErrUnknownNode
	}
	if int(repl) < 0 || int(repl) >= len(g.edges) {
		return ErrUnknownEdge
	}
	if ends := g.edges[repl].ends; ends[0] != n && ends[1] != n {
		return ErrUnknownEdge
	}
	inc := g.nodes[n].incident
	i := slices.Index(inc, old)
	if i < 0 {
		return ErrUnknownEdge
	}
	if j := slices.Index(inc, repl); j >= 0 && j != i {
		inc = slices.Delete(inc, j, j+1)
		if j < i {
			i--
		}
	}
	inc[i] = repl
	g.nodes[n].incident = inc
	return nil
}

// AddEdgeAt adds an edge between u and v and positions it in both rotations
// directly after afterU and afterV respectively.
func (g *Graph) AddEdgeAt(u NodeID, afterU EdgeID, v NodeID, afterV EdgeID) (EdgeID, error) {
	e, err := g.AddEdge(u, v)
	if err != nil {
		return NilEdge, err
	}
	g.InsertAfter(u, afterU, e)
	g.InsertAfter(v, afterV, e)
	return e, nil
}

// Split subdivides e = {p, q} with a new virtual node x. Afterwards e
// connects p and x and the returned edge connects x and q, taking e's place in
// q's rotation. Both halves carry e's label.
func (g *Graph) Split(e EdgeID, label int64) (NodeID, EdgeID, error) {
	if int(e) < 0 || int(e) >= len(g.edges) {
		return NilNode, NilEdge, ErrUnknownEdge
	}
	x, err := g.AddVirtualNode(label)
	if err != nil {
		return NilNode, NilEdge, err
	}
	p, q := g.edges[e].ends[0], g.edges[e].ends[1]
	e2 := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge{ends: [2]NodeID{x, q}, label: g.edges[e].label})
	g.edges[e].ends = [2]NodeID{p, x}

	if err := g.ReplaceIncident(q, e, e2); err != nil {
		return NilNode, NilEdge, err
	}
	g.nodes[x].incident = []EdgeID{e, e2}
	return x, e2, nil
}

// Clone returns a deep copy of g with identical handles.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes:   make([]node, len(g.nodes)),
		edges:   slices.Clone(g.edges),
		byLabel: make(map[int64]NodeID, len(g.byLabel)),
	}
	for i, n := range g.nodes {
		c.nodes[i] = node{label: n.label, virtual: n.virtual, incident: slices.Clone(n.incident)}
	}
	for k, v := range g.byLabel {
		c.byLabel[k] = v
	}
	return c
}

// Subgraph returns a spanning subgraph with the same node handles and only
// the edges accepted by keep. Incidence order is preserved. The second
// return value maps each subgraph edge to its edge in g.
func (g *Graph) Subgraph(keep func(EdgeID) bool) (*Graph, []EdgeID) {
	s := &Graph{
		nodes:   make([]node, len(g.nodes)),
		byLabel: make(map[int64]NodeID, len(g.byLabel)),
	}
	for i, n := range g.nodes {
		s.nodes[i] = node{label: n.label, virtual: n.virtual}
		s.byLabel[n.label] = NodeID(i)
	}
	newID := make([]EdgeID, len(g.edges))
	var orig []EdgeID
	for i, e := range g.edges {
		newID[i] = NilEdge
		if !keep(EdgeID(i)) {
			continue
		}
		newID[i] = EdgeID(len(s.edges))
		s.edges = append(s.edges, edge{ends: e.ends, label: e.label})
		orig = append(orig, EdgeID(i))
	}
	for i, n := range g.nodes {
		for _, e := range n.incident {
			if id := newID[e]; id != NilEdge {
				s.nodes[i].incident = append(s.nodes[i].incident, id)
			}
		}
	}
	return s, orig
}

// Induced returns the graph formed by the given edges and their endpoints,
// with compact handles. nodeOrig and edgeOrig map the new handles back to g.
func (g *Graph) Induced(edges []EdgeID) (sub *Graph, nodeOrig []NodeID, edgeOrig []EdgeID) {
	sub = New()
	newNode := make(map[NodeID]NodeID)
	use := func(n NodeID) NodeID {
		if id, ok := newNode[n]; ok {
			return id
		}
		id, _ := sub.addNode(g.nodes[n].label, g.nodes[n].virtual)
		newNode[n] = id
		nodeOrig = append(nodeOrig, n)
		return id
	}
	inSet := make(map[EdgeID]EdgeID, len(edges))
	for _, e := range edges {
		u, v := use(g.edges[e].ends[0]), use(g.edges[e].ends[1])
		id := EdgeID(len(sub.edges))
		sub.edges = append(sub.edges, edge{ends: [2]NodeID{u, v}, label: g.edges[e].label})
		inSet[e] = id
		edgeOrig = append(edgeOrig, e)
	}
	for i, n := range nodeOrig {
		for _, e := range g.nodes[n].incident {
			if id, ok := inSet[e]; ok {
				sub.nodes[i].incident = append(sub.nodes[i].incident, id)
			}
		}
	}
	return sub, nodeOrig, edgeOrig
}

// IsSimple reports whether g has no parallel edges.
func (g *Graph) IsSimple() bool {
	seen := make(map[[2]NodeID]bool, len(g.edges))
	for _, e := range g.edges {
		k := e.ends
		if k[0] > k[1] {
			k[0], k[1] = k[1], k[0]
		}
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

func (g *Graph) validNode(n NodeID) bool {
	return int(n) >= 0 && int(n) < len(g.nodes)
}
