package planarize

import (
	"context"
	"slices"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/planarity"
)

// Result is a planarized graph.
type Result struct {
	// Graph is planar and carries a planar rotation system. Its first
	// nodes are those of the input graph, with the same handles.
	Graph *graph.Graph

	// Virtual lists the crossing nodes in creation order.
	Virtual []graph.NodeID

	// Removed lists the input edges that had to be routed across others.
	Removed []graph.EdgeID

	// Chains[e] is the path of input edge e through Graph: its two
	// endpoints with the virtual nodes it passes in between.
	Chains [][]graph.NodeID
}

// Crossings returns the number of virtual nodes.
func (r *Result) Crossings() int { return len(r.Virtual) }

// Reinsert embeds s and routes every removed edge through the embedding,
// splitting the edges it crosses. s.Graph is modified in place and becomes
// the result graph.
func Reinsert(ctx context.Context, s *Subgraph, opts Options) (*Result, error) {
	opts.SetDefaults()
	g := s.Graph
	ok, err := planarity.EmbedWith(ctx, g, opts.planarity(planarity.AlgorithmBL))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidGraph, "subgraph is not planar")
	}

	in := &inserter{g: g, next: firstVirtualLabel(g, opts.VirtualStart)}
	for _, e := range s.Removed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b := s.Source.Ends(e)
		n, err := in.insert(a, b, int64(e))
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("edge reinserted", "edge", e, "crossings", n)
	}
	return &Result{
		Graph:   g,
		Virtual: in.virtual,
		Removed: slices.Clone(s.Removed),
		Chains:  chains(g, s.Source),
	}, nil
}

// firstVirtualLabel returns the larger of start and one above the largest
// label of g.
func firstVirtualLabel(g *graph.Graph, start int64) int64 {
	next := int64(0)
	for _, n := range g.Nodes() {
		if l := g.Label(n); l >= next {
			next = l + 1
		}
	}
	return max(next, start)
}

type inserter struct {
	g       *graph.Graph
	next    int64
	virtual []graph.NodeID
}

// insert adds an edge labeled label between a and b to the embedded graph,
// crossing as few edges as the fixed embedding allows, and returns the
// number of crossings.
func (in *inserter) insert(a, b graph.NodeID, label int64) (int, error) {
	g := in.g
	cornerA, cornerB := corner(g, a), corner(g, b)
	crossed := in.route(a, b)
	if crossed != nil {
		cornerA, cornerB = crossed.cornerA, crossed.cornerB
	}

	prev, after := a, cornerA
	for _, d := range crossed.darts() {
		p, _ := g.Ends(d.Edge)
		x, half, err := g.Split(d.Edge, in.nextLabel())
		if err != nil {
			return 0, perrors.Wrap(perrors.ErrCodeInternal, err, "splitting edge %d", d.Edge)
		}
		in.virtual = append(in.virtual, x)

		// The face before the crossing holds d; after the split its corner
		// at x follows whichever half d now arrives on.
		into, out := d.Edge, half
		if d.From != p {
			into, out = half, d.Edge
		}
		if err := in.segment(prev, after, x, into, label); err != nil {
			return 0, err
		}
		prev, after = x, out
	}
	if err := in.segment(prev, after, b, cornerB, label); err != nil {
		return 0, err
	}
	return len(crossed.darts()), nil
}

func (in *inserter) nextLabel() int64 {
	for {
		l := in.next
		in.next++
		if _, taken := in.g.NodeByLabel(l); !taken {
			return l
		}
	}
}

func (in *inserter) segment(u graph.NodeID, afterU graph.EdgeID, v graph.NodeID, afterV graph.EdgeID, label int64) error {
	e, err := in.g.AddEdgeAt(u, afterU, v, afterV)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "adding segment")
	}
	in.g.SetEdgeLabel(e, label)
	return nil
}

// corner returns an edge of n after which a new edge can be placed, or
// NilEdge for an isolated node.
func corner(g *graph.Graph, n graph.NodeID) graph.EdgeID {
	if inc := g.Incident(n); len(inc) > 0 {
		return inc[0]
	}
	return graph.NilEdge
}

// path is a shortest route through the faces of an embedding.
type path struct {
	// crossings are the crossed edges, each as its dart in the face the
	// route comes from.
	crossings []graph.Dart
	// cornerA and cornerB place the route's ends in the first and the
	// last face.
	cornerA, cornerB graph.EdgeID
}

func (p *path) darts() []graph.Dart {
	if p == nil {
		return nil
	}
	return p.crossings
}

// route searches the dual of the embedding breadth first, from the faces
// around a to the faces around b. It returns nil when a and b lie in
// different components.
func (in *inserter) route(a, b graph.NodeID) *path {
	g := in.g
	faces := graph.Faces(g)
	faceOf := make(map[graph.Dart]int)
	for i, f := range faces {
		for _, d := range f {
			faceOf[d] = i
		}
	}
	target := make(map[int]bool)
	for _, e := range g.Incident(b) {
		target[faceOf[graph.Dart{Edge: e, From: b}]] = true
	}

	const unseen = -2
	prev := make([]int, len(faces))
	via := make([]graph.Dart, len(faces))
	for i := range prev {
		prev[i] = unseen
	}
	q := linkedlistqueue.New()
	for _, e := range g.Incident(a) {
		if f := faceOf[graph.Dart{Edge: e, From: a}]; prev[f] == unseen {
			prev[f] = -1
			q.Enqueue(f)
		}
	}

	found := -1
	for !q.Empty() {
		x, _ := q.Dequeue()
		f := x.(int)
		if target[f] {
			found = f
			break
		}
		for _, d := range faces[f] {
			h := faceOf[graph.Dart{Edge: d.Edge, From: g.To(d)}]
			if prev[h] == unseen {
				prev[h], via[h] = f, d
				q.Enqueue(h)
			}
		}
	}
	if found < 0 {
		return nil
	}

	p := &path{cornerB: arrivalAt(g, faces[found], b)}
	f := found
	for prev[f] >= 0 {
		p.crossings = append(p.crossings, via[f])
		f = prev[f]
	}
	slices.Reverse(p.crossings)
	p.cornerA = arrivalAt(g, faces[f], a)
	return p
}

// arrivalAt returns the edge on which face f arrives at n. The corner of f
// at n lies right after it in n's rotation.
func arrivalAt(g *graph.Graph, f graph.Face, n graph.NodeID) graph.EdgeID {
	for _, d := range f {
		if g.To(d) == n {
			return d.Edge
		}
	}
	return graph.NilEdge
}

// chains follows every edge of src through the planarized graph pg, whose
// edges are labeled with the src edges they belong to.
func chains(pg, src *graph.Graph) [][]graph.NodeID {
	segments := make([][]graph.EdgeID, src.NumEdges())
	for _, e := range pg.Edges() {
		if l := pg.EdgeLabel(e); l >= 0 && int(l) < len(segments) {
			segments[l] = append(segments[l], e)
		}
	}
	out := make([][]graph.NodeID, src.NumEdges())
	for _, e := range src.Edges() {
		a, _ := src.Ends(e)
		chain := []graph.NodeID{a}
		used := make([]bool, len(segments[e]))
		cur := a
		for step := 0; step < len(used); step++ {
			for i, s := range segments[e] {
				x, y := pg.Ends(s)
				if used[i] || (x != cur && y != cur) {
					continue
				}
				used[i] = true
				cur = pg.Adjacent(s, cur)
				chain = append(chain, cur)
				break
			}
		}
		out[e] = chain
	}
	return out
}
