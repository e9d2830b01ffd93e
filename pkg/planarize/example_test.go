package planarize_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/planarize"
)

func ExamplePlanarize() {
	g := graph.New()
	for i := int64(1); i <= 5; i++ {
		g.AddNode(i)
	}
	for i := int64(1); i <= 5; i++ {
		for j := i + 1; j <= 5; j++ {
			g.AddEdgeByLabel(i, j)
		}
	}

	res, err := planarize.Planarize(context.Background(), g, planarize.Options{})
	if err != nil {
		panic(err)
	}
	fmt.Println("nodes:", res.Graph.NumNodes())
	fmt.Println("edges:", res.Graph.NumEdges())
	fmt.Println("crossings:", res.Crossings())
	// Output:
	// nodes: 6
	// edges: 12
	// crossings: 1
}
