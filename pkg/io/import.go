package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// Every node needs a unique id and every edge must join two distinct known
// nodes. A rotation, when present, must be a permutation of the node's
// edges; see the package documentation for the layout.
//
// Errors carry [perrors.ErrCodeInvalidFormat] for malformed JSON and
// [perrors.ErrCodeInvalidGraph] for structural problems. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "decode")
	}

	g := graph.New()
	for _, n := range data.Nodes {
		add := g.AddNode
		if n.Virtual {
			add = g.AddVirtualNode
		}
		if _, err := add(n.ID); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidGraph, err, "node %d", n.ID)
		}
	}
	for i, e := range data.Edges {
		id, err := g.AddEdgeByLabel(e.From, e.To)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidGraph, err, "edge %d (%d-%d)", i, e.From, e.To)
		}
		if e.Label != nil {
			g.SetEdgeLabel(id, *e.Label)
		}
	}
	for i, n := range data.Nodes {
		if len(n.Rotation) == 0 {
			continue
		}
		order := make([]graph.EdgeID, len(n.Rotation))
		for k, e := range n.Rotation {
			if e < 0 || int(e) >= g.NumEdges() {
				return nil, perrors.New(perrors.ErrCodeInvalidGraph, "node %d: rotation names unknown edge %d", n.ID, e)
			}
			order[k] = graph.EdgeID(e)
		}
		if err := g.SetRotation(graph.NodeID(i), order); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidGraph, err, "node %d", n.ID)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
