// Package render turns graphs into pictures.
//
// The [nodelink] subpackage writes Graphviz DOT for a graph, with virtual
// crossing nodes drawn as points, and renders it to SVG in process. [ToPDF]
// and [ToPNG] convert any SVG with the external rsvg-convert tool:
//
//	dot := nodelink.ToDOT(res.Graph, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/planarity/pkg/render/nodelink
package render
