package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planarity/pkg/graph"
)

// Options configures diagram generation.
type Options struct {
	// Highlight lists edge labels to draw dashed and red, such as the edges
	// a planarization had to reroute.
	Highlight []graph.EdgeID
	// ShowEdgeLabels prints each edge's label next to it.
	ShowEdgeLabels bool
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *graph.Graph, opts Options) string {
	hl := make(map[int64]bool, len(opts.Highlight))
	for _, e := range opts.Highlight {
		hl[int64(e)] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.4, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		id := g.Label(n)
		if g.IsVirtual(n) {
			fmt.Fprintf(&buf, "  %d [label=\"\", shape=point, width=0.08, fillcolor=black];\n", id)
			continue
		}
		fmt.Fprintf(&buf, "  %d [label=%q];\n", id, strconv.FormatInt(id, 10))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		u, v := g.Ends(e)
		var attrs []string
		if hl[g.EdgeLabel(e)] {
			attrs = append(attrs, "style=dashed", "color=\"#c0392b\"")
		}
		if opts.ShowEdgeLabels {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatInt(g.EdgeLabel(e), 10)), "fontsize=10")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %d -- %d;\n", g.Label(u), g.Label(v))
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", g.Label(u), g.Label(v), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// whose viewBox starts at the origin, so the picture scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	head := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(head))
}
