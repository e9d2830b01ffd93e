package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/planarity/internal/experiment"
	"github.com/matzehuels/planarity/pkg/cache"
	"github.com/matzehuels/planarity/pkg/graph"
	"github.com/matzehuels/planarity/pkg/store"
)

// experimentCommand creates the experiment command.
func (c *CLI) experimentCommand() *cobra.Command {
	var (
		format   string
		workers  int
		maxPairs int
		seed     uint64
		noTUI    bool
	)

	cmd := &cobra.Command{
		Use:   "experiment <file>",
		Short: "Cross-check both testers over many st-orientations",
		Long: `Run the planarity testers on one graph under many st-orientations and
check that they agree.

For graphs with up to 32 nodes every ordered (s,t) pair is tried; larger
graphs use a random sample of --max-pairs pairs (1000 by default, 100 above
10000 nodes). For every pair the linear and the quadratic tree must give
the same verdict, and a planar verdict must yield an embedding that passes
the Euler check. The graph must be biconnected.

The summary line "nodes edges attempts non-planar" is printed to stdout.
The input is normally an edge list: a "<nodes> <edges>" header followed by
one "i j" line per edge, nodes numbered from 1.`,
		Example: `  planarity experiment wheel.el
  planarity experiment --workers 4 --max-pairs 200 --seed 7 big.el`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, err := readInput(args[0], format, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts := experiment.Options{
				Workers:  c.Config.Experiment.Workers,
				MaxPairs: c.Config.Experiment.MaxPairs,
				Seed:     seed,
				Logger:   c.Logger,
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("max-pairs") {
				opts.MaxPairs = maxPairs
			}

			useTUI := !noTUI && isatty.IsTerminal(os.Stderr.Fd())
			var res experiment.Result
			if useTUI {
				res, err = runExperimentTUI(ctx, in, opts)
			} else {
				res, err = experiment.Run(ctx, in.Graph, opts)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			fmt.Fprintln(statusOut, experimentTable(in.Name, res))
			return c.saveExperiment(ctx, in.Graph, res)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "input format")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "pairs tested at once (default: number of CPUs)")
	cmd.Flags().IntVar(&maxPairs, "max-pairs", 0, "sample size for graphs above 32 nodes")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed for the pair sample")
	cmd.Flags().BoolVar(&noTUI, "no-progress", false, "do not draw a progress bar")

	return cmd
}

// runExperimentTUI runs the experiment in the background and draws its
// progress until it ends.
func runExperimentTUI(ctx context.Context, in *input, opts experiment.Options) (experiment.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := len(experiment.Pairs(in.Graph, opts.MaxPairs, opts.Seed))
	p := tea.NewProgram(NewExperimentModel(in.Name, total, cancel),
		tea.WithContext(ctx),
		tea.WithOutput(statusOut),
	)
	step := max(total/200, 1)
	opts.Progress = func(done, total int) {
		if done%step == 0 || done == total {
			p.Send(experimentProgressMsg{done: done, total: total})
		}
	}
	go func() {
		res, err := experiment.Run(ctx, in.Graph, opts)
		p.Send(experimentDoneMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return experiment.Result{}, ctx.Err()
		}
		return experiment.Result{}, fmt.Errorf("progress display: %w", err)
	}
	m := final.(ExperimentModel)
	if m.Err != nil {
		return experiment.Result{}, m.Err
	}
	return *m.Result, nil
}

// saveExperiment stores the result as a report when a store is configured.
func (c *CLI) saveExperiment(ctx context.Context, g *graph.Graph, res experiment.Result) error {
	st, err := c.openStore(ctx)
	if err != nil || st == nil {
		return err
	}
	defer st.Close(ctx)

	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	rep := &store.Report{
		Kind:      store.KindExperiment,
		GraphHash: cache.GraphHash(g),
		Nodes:     res.Nodes,
		Edges:     res.Edges,
		Planar:    res.NonPlanar == 0,
		Result:    data,
	}
	if err := st.Save(ctx, rep); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	printKeyValue("Report", rep.ID)
	return nil
}
