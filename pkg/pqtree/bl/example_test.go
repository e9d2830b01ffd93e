package bl_test

import (
	"fmt"

	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/pqtree/bl"
)

func ExampleTree_Reduce() {
	t := bl.New(4)
	a := t.NewAttachment()
	t.FanOut(a, []graph.EdgeID{0, 1, 2, 3})

	for _, set := range [][]graph.EdgeID{{0, 1}, {1, 2}, {2, 3}} {
		if _, err := t.Reduce(set); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(t.Format(t.Leaf(0)))
	}
	_, err := t.Reduce([]graph.EdgeID{0, 2})
	fmt.Println(err)
	// Output:
	// {3 2 {0 1}}
	// {3 [2 1 0]}
	// [3 2 1 0]
	// bubble-up found disjoint pertinent blocks
}

func ExampleTree_Collect() {
	t := bl.New(6, bl.CollectEdges())
	a := t.NewAttachment()
	t.FanOut(a, []graph.EdgeID{0, 1, 2, 3})
	for _, set := range [][]graph.EdgeID{{0, 1}, {1, 2}, {2, 3}} {
		r, _ := t.Reduce(set)
		t.Collect(r, 0)
	}

	r, _ := t.Reduce([]graph.EdgeID{3, 2})
	fmt.Println(t.Collect(r, 0))
	a = t.Remove(r)
	t.FanOut(a, []graph.EdgeID{4, 5})
	fmt.Println(t.Format(t.Leaf(0)))
	// Output:
	// [3 2]
	// [{4 5} 1 0]
}
