package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planarity/pkg/pipeline"
	"github.com/matzehuels/planarity/pkg/render/nodelink"
)

// planarizeCommand creates the planarize command.
func (c *CLI) planarizeCommand() *cobra.Command {
	var (
		flags        commonFlags
		output       string
		image        string
		virtualStart int64
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "planarize <file>",
		Short: "Replace edge crossings with virtual nodes",
		Long: `Planarize a graph: keep a maximal planar subgraph, then route every
remaining edge through the embedding, placing a virtual node wherever it
crosses another edge.

The output lists the input nodes, the virtual nodes after a VIRTUAL_NODES
line, and for every input edge the chain of nodes it passes:

  NODES
  1
  ...
  VIRTUAL_NODES
  100
  EDGES
  1 100 3
  ...

Virtual nodes are numbered from the larger of --virtual-start (or the
file's VIRTUAL NODE START section) and one above the largest node.`,
		Example: `  # Planarize K5, numbering crossings from 100
  planarity planarize k5.txt --virtual-start 100

  # Draw the result with the reinserted edges dashed
  planarity planarize k5.txt -o k5.out --image k5.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := readInput(args[0], flags.format, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts := pipeline.Options{Refresh: flags.refresh, VirtualStart: in.VirtualStart, Logger: c.Logger, Hooks: c.sweepHooks()}
			if cmd.Flags().Changed("virtual-start") {
				opts.VirtualStart = virtualStart
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			spinner := newSpinnerWithContext(ctx, "Planarizing "+in.Name+"...")
			spinner.Start()
			prog := newProgress(c.Logger)
			res, cached, err := runner.Planarize(ctx, in.Graph, opts)
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done("planarized "+in.Name, "crossings", res.Crossings, "cached", cached)

			data := []byte(res.Output)
			if asJSON {
				if data, err = json.MarshalIndent(res, "", "  "); err != nil {
					return err
				}
				data = append(data, '\n')
			}
			if err := writeOutput(cmd.OutOrStdout(), data, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if res.Crossings == 0 {
				printSuccess("%s is planar, no crossings needed", in.Name)
			} else {
				printSuccess("Planarized %s with %s crossings", in.Name, StyleNumber.Render(fmt.Sprint(res.Crossings)))
				printDetail("%d edges reinserted", len(res.Removed))
			}
			printStats(res.Nodes, res.Edges, cached)
			if output != "" {
				printFile(output)
			}
			if image != "" {
				g, err := res.Planarized()
				if err != nil {
					return err
				}
				if err := writeDrawing(ctx, g, nodelink.Options{Highlight: res.Removed}, image); err != nil {
					return err
				}
				printFile(image)
			}
			if res.ReportID != "" {
				printKeyValue("Report", res.ReportID)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&image, "image", "", "also draw the planarized graph to this .svg, .png or .pdf file")
	cmd.Flags().Int64Var(&virtualStart, "virtual-start", 0, "first virtual node number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")

	return cmd
}
