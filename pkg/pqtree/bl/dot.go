package bl

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Frontier returns the edges of the leaves below the root of anchor's tree
// from left to right.
func (t *Tree) Frontier(anchor *Node) []graph.EdgeID {
	var out []graph.EdgeID
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.kind == KindL {
			out = append(out, n.edge)
			return
		}
		for _, c := range n.Children() {
			visit(c)
		}
	}
	visit(t.Root(anchor))
	return out
}

// Format renders the tree containing anchor in nested notation: P-nodes in
// braces, Q-nodes in brackets and leaves as their edge numbers. A childless
// attachment prints as "{}".
func (t *Tree) Format(anchor *Node) string {
	var sb strings.Builder
	var visit func(n *Node)
	visit = func(n *Node) {
		switch n.kind {
		case KindL:
			sb.WriteString(strconv.Itoa(int(n.edge)))
			return
		case KindQ:
			sb.WriteByte('[')
		default:
			sb.WriteByte('{')
		}
		for i, c := range n.Children() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			visit(c)
		}
		if n.kind == KindQ {
			sb.WriteByte(']')
		} else {
			sb.WriteByte('}')
		}
	}
	visit(t.Root(anchor))
	return sb.String()
}

// ToDOT returns a Graphviz DOT digraph of the tree containing anchor. Leaves
// are labeled by label(edge), or by the edge number when label is nil.
func (t *Tree) ToDOT(anchor *Node, label func(graph.EdgeID) string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph PQTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")
	if anchor != nil {
		t.walk(t.Root(anchor), func(n *Node) {
			id := fmt.Sprintf("n%d", n.id)
			switch n.kind {
			case KindL:
				text := strconv.Itoa(int(n.edge))
				if label != nil {
					text = label(n.edge)
				}
				fmt.Fprintf(&buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", id, text)
			case KindQ:
				fmt.Fprintf(&buf, "  %s [label=\"Q\", shape=box];\n", id)
			default:
				fmt.Fprintf(&buf, "  %s [label=\"P\", shape=ellipse];\n", id)
			}
			for _, c := range n.Children() {
				fmt.Fprintf(&buf, "  %s -> n%d;\n", id, c.id)
			}
		})
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders [Tree.ToDOT] to SVG with the embedded Graphviz.
func (t *Tree) RenderSVG(ctx context.Context, anchor *Node, label func(graph.EdgeID) string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(t.ToDOT(anchor, label)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
