package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/planarity/pkg/graph"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID       int64   `json:"id"`
	Virtual  bool    `json:"virtual,omitempty"`
	Rotation []int32 `json:"rotation,omitempty"`
}

type edge struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
	// Label is written only when it differs from the edge index.
	Label *int64 `json:"label,omitempty"`
}

// WriteJSON encodes g as JSON and writes it to w, rotations included.
// Edge indices in the output are the graph's edge handles.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Nodes: make([]node, g.NumNodes()),
		Edges: make([]edge, g.NumEdges()),
	}
	for _, n := range g.Nodes() {
		nd := node{ID: g.Label(n), Virtual: g.IsVirtual(n)}
		for _, e := range g.Incident(n) {
			nd.Rotation = append(nd.Rotation, int32(e))
		}
		out.Nodes[n] = nd
	}
	for _, e := range g.Edges() {
		u, v := g.Ends(e)
		out.Edges[e] = edge{From: g.Label(u), To: g.Label(v)}
		if l := g.EdgeLabel(e); l != int64(e) {
			out.Edges[e].Label = &l
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
