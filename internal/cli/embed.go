package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/pipeline"
	"github.com/matzehuels/planarity/pkg/render/nodelink"
)

// embedCommand creates the embed command.
func (c *CLI) embedCommand() *cobra.Command {
	var (
		flags  commonFlags
		output string
		image  string
	)

	cmd := &cobra.Command{
		Use:   "embed <file>",
		Short: "Compute a planar embedding",
		Long: `Compute a planar embedding of a graph and write it as a JSON graph whose
nodes carry their rotation: the incident edges in clockwise order.

A non-planar graph is reported as an error.`,
		Example: `  # Print the embedding of a graph
  planarity embed cube.txt

  # Save the embedding and a drawing
  planarity embed cube.txt -o cube.json --image cube.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := readInput(args[0], flags.format, cmd.InOrStdin())
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			spinner := newSpinnerWithContext(ctx, "Embedding "+in.Name+"...")
			spinner.Start()
			res, cached, err := runner.Embed(ctx, in.Graph, pipeline.Options{Refresh: flags.refresh, Logger: c.Logger, Hooks: c.sweepHooks()})
			spinner.Stop()
			if err != nil {
				return err
			}
			if !res.Planar {
				printError("%s is not planar", in.Name)
				printStats(res.Nodes, res.Edges, cached)
				return perrors.New(perrors.ErrCodeInvalidGraph, "%s is not planar", in.Name)
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, res.Graph, "", "  "); err != nil {
				return fmt.Errorf("format embedding: %w", err)
			}
			buf.WriteByte('\n')
			if err := writeOutput(cmd.OutOrStdout(), buf.Bytes(), output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			printSuccess("Embedded %s", in.Name)
			printStats(res.Nodes, res.Edges, cached)
			if output != "" {
				printFile(output)
			}
			if image != "" {
				g, err := res.Embedding()
				if err != nil {
					return err
				}
				if err := writeDrawing(ctx, g, nodelink.Options{}, image); err != nil {
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
	cmd.Flags().StringVar(&image, "image", "", "also draw the graph to this .svg, .png or .pdf file")

	return cmd
}
