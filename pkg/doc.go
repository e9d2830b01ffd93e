// Package pkg holds the libraries behind the planarity command.
//
// # Overview
//
// Planarity decides whether a graph can be drawn in the plane without
// crossings. It does so with PQ-trees: a sweep visits the nodes in an
// st-order and, at every node, reduces the tree so that the edges entering
// the node become consecutive. A failed reduction proves the graph
// non-planar. The packages are layered:
//
//  1. [graph] - the graph container, st-numbering, blocks, faces
//  2. [pqtree/bl] and [pqtree/jts] - the Booth-Lueker linear tree and the
//     Jayakumar-Thulasiraman-Swamy quadratic tree
//  3. [planarity] - testing and embedding drivers over both trees
//  4. [planarize] - planar subgraphs and edge reinsertion with crossings
//  5. [io], [render] - file formats and drawings
//  6. [pipeline], [cache], [store], [observability] - cached, recorded runs
//
// # Data Flow
//
//	planarizer file / edge list / JSON
//	         ↓
//	    [io] package (parse into a graph)
//	         ↓
//	    [planarity] package (st-order + PQ-tree sweep per block)
//	         ↓
//	    [planarize] package (planar subgraph, maximalize, reinsert)
//	         ↓
//	    planarizer output / JSON / SVG
//
// # Quick Start
//
//	in, err := io.ImportPlanarizerInput("k5.txt")
//	if err != nil {
//	    return err
//	}
//	planar, err := planarity.IsPlanarGraph(in.Graph)
//	if err != nil || planar {
//	    return err
//	}
//	res, err := planarize.Planarize(ctx, in.Graph, planarize.Options{VirtualStart: in.VirtualStart})
//	if err != nil {
//	    return err
//	}
//	return io.WritePlanarized(os.Stdout, res, in.VirtualStart)
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/graph
// [pqtree/bl]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/pqtree/bl
// [pqtree/jts]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/pqtree/jts
// [planarity]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/planarity
// [planarize]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/planarize
// [io]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/planarity/pkg/observability
package pkg
