package graph

// Dart is an edge traversed in one direction, starting at From.
type Dart struct {
	Edge EdgeID
	From NodeID
}

// Face is a closed walk of darts. The dart following d = (a→b via e) is the
// dart leaving b along the edge that follows e in b's rotation.
type Face []Dart

// To returns the node a dart points at.
func (g *Graph) To(d Dart) NodeID { return g.Adjacent(d.Edge, d.From) }

// NextDart returns the dart following d on its face.
func (g *Graph) NextDart(d Dart) Dart {
	b := g.To(d)
	return Dart{Edge: g.NextInRotation(b, d.Edge), From: b}
}

func dartIndex(g *Graph, d Dart) int {
	if g.edges[d.Edge].ends[0] == d.From {
		return 2 * int(d.Edge)
	}
	return 2*int(d.Edge) + 1
}

// Faces traces every face of the rotation system currently stored in g.
// Each dart appears in exactly one face.
func Faces(g *Graph) []Face {
	// pos[2e+side] is the index of e in the rotation of its endpoint ends[side].
	pos := make([]int, 2*g.NumEdges())
	for v, nd := range g.nodes {
		for i, e := range nd.incident {
			if g.edges[e].ends[0] == NodeID(v) {
				pos[2*int(e)] = i
			} else {
				pos[2*int(e)+1] = i
			}
		}
	}
	next := func(d Dart) Dart {
		b := g.To(d)
		side := 0
		if g.edges[d.Edge].ends[0] != b {
			side = 1
		}
		inc := g.nodes[b].incident
		return Dart{Edge: inc[(pos[2*int(d.Edge)+side]+1)%len(inc)], From: b}
	}

	seen := make([]bool, 2*g.NumEdges())
	var faces []Face
	for e := range g.NumEdges() {
		for side := range 2 {
			start := Dart{Edge: EdgeID(e), From: g.edges[e].ends[side]}
			if seen[dartIndex(g, start)] {
				continue
			}
			var f Face
			for d := start; !seen[dartIndex(g, d)]; d = next(d) {
				seen[dartIndex(g, d)] = true
				f = append(f, d)
			}
			faces = append(faces, f)
		}
	}
	return faces
}

// EulerCheck reports whether the rotation system of g is planar, i.e. every
// connected component with at least one edge satisfies V − E + F = 2.
func EulerCheck(g *Graph) bool {
	comp := make([]int, g.NumNodes())
	comps := Components(g)
	for i, c := range comps {
		for _, v := range c {
			comp[v] = i
		}
	}
	v := make([]int, len(comps))
	e := make([]int, len(comps))
	f := make([]int, len(comps))
	for i, c := range comps {
		v[i] = len(c)
	}
	for id := range g.NumEdges() {
		e[comp[g.edges[id].ends[0]]]++
	}
	for _, face := range Faces(g) {
		f[comp[face[0].From]]++
	}
	for i := range comps {
		if e[i] == 0 {
			continue
		}
		if v[i]-e[i]+f[i] != 2 {
			return false
		}
	}
	return true
}
