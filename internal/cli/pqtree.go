package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/pqtree/bl"
)

// pqtreeCommand creates the pqtree command for visualizing PQ-tree reductions.
func (c *CLI) pqtreeCommand() *cobra.Command {
	var (
		output string
		labels string
		dot    bool
	)

	cmd := &cobra.Command{
		Use:   "pqtree [constraints...]",
		Short: "Reduce a PQ-tree by consecutiveness constraints (debug tool)",
		Long: `Build a Booth-Lueker PQ-tree over a set of leaves and reduce it by each
constraint in turn. A constraint is a comma-separated list of leaf indices
that must end up consecutive in every permitted order.

The tree is printed in nested notation: P-nodes in braces, Q-nodes in
brackets. A constraint that cannot be met stops the command with the
reduction failure.`,
		Example: `  # Universal tree with 4 leaves
  planarity pqtree --labels A,B,C,D

  # A,B must be adjacent, then B,C
  planarity pqtree --labels A,B,C,D -o tree.svg 0,1 1,2

  # Print the Graphviz source instead of rendering
  planarity pqtree --dot 0,1 2,3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			labelList := strings.Split(labels, ",")
			n := len(labelList)
			label := func(e graph.EdgeID) string { return labelList[e] }

			tree := bl.New(n)
			leaves := make([]graph.EdgeID, n)
			for i := range leaves {
				leaves[i] = graph.EdgeID(i)
			}
			tree.FanOut(tree.NewAttachment(), leaves)

			for _, arg := range args {
				constraint, err := parseConstraint(arg, n)
				if err != nil {
					return fmt.Errorf("invalid constraint %q: %w", arg, err)
				}
				if _, err := tree.Reduce(constraint); err != nil {
					return fmt.Errorf("constraint %q: %w", arg, err)
				}
				c.Logger.Debug("reduced", "constraint", arg, "tree", tree.Format(tree.Leaf(0)))
			}

			anchor := tree.Leaf(0)
			if dot {
				fmt.Fprint(cmd.OutOrStdout(), tree.ToDOT(anchor, label))
				return nil
			}

			printSuccess("PQ-tree reduced by %d constraints", len(args))
			printKeyValue("Tree", tree.Format(anchor))
			frontier := tree.Frontier(anchor)
			names := make([]string, len(frontier))
			for i, e := range frontier {
				names[i] = label(e)
			}
			printKeyValue("Frontier", strings.Join(names, " "))

			if output != "" {
				svg, err := tree.RenderSVG(cmd.Context(), anchor, label)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				if err := writeImage(cmd.Context(), svg, output); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write a drawing to this .svg, .png or .pdf file")
	cmd.Flags().StringVar(&labels, "labels", "A,B,C,D", "comma-separated leaf labels")
	cmd.Flags().BoolVar(&dot, "dot", false, "print the Graphviz DOT source to stdout")

	return cmd
}

// parseConstraint parses a constraint like "0,1,2" over leaves [0, n).
func parseConstraint(s string, n int) ([]graph.EdgeID, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("need at least 2 indices")
	}
	seen := make(map[int]bool, len(parts))
	result := make([]graph.EdgeID, len(parts))
	for i, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", p)
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("index %d out of range [0, %d)", idx, n)
		}
		if seen[idx] {
			return nil, fmt.Errorf("index %d repeated", idx)
		}
		seen[idx] = true
		result[i] = graph.EdgeID(idx)
	}
	return result, nil
}
