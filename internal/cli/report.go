package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/store"
)

// reportCommand creates the report command for browsing stored reports.
func (c *CLI) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Browse reports in the configured store",
		Long: `List and show the reports saved by check, embed, planarize and experiment
runs. Needs store.mongo_uri in the config file.`,
	}

	cmd.AddCommand(c.reportListCommand())
	cmd.AddCommand(c.reportShowCommand())

	return cmd
}

func (c *CLI) reportListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the newest reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				reports, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(reports) == 0 {
					printInfo("No reports")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), reportTable(reports))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of reports")

	return cmd
}

func (c *CLI) reportShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := perrors.ValidateReportID(args[0]); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(st store.Store) error {
				r, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				return writeOutput(cmd.OutOrStdout(), append(data, '\n'), "")
			})
		},
	}
}

// withStore opens the configured store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return perrors.New(perrors.ErrCodeUnsupported, "no report store configured (set store.mongo_uri)")
	}
	defer func() {
		if err := st.Close(context.WithoutCancel(ctx)); err != nil {
			c.Logger.Warn("close store", "error", err)
		}
	}()
	return fn(st)
}

func reportTable(reports []*store.Report) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Kind", "Created", "Algorithm", "Nodes", "Edges", "Planar")
	for _, r := range reports {
		t.Row(r.ID,
			r.Kind,
			r.CreatedAt.Local().Format(time.DateTime),
			r.Algorithm,
			fmt.Sprint(r.Nodes),
			fmt.Sprint(r.Edges),
			fmt.Sprint(r.Planar))
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == -1 {
			return headerStyle
		}
		base := lipgloss.NewStyle().Padding(0, 1)
		if col == 6 {
			if reports[row].Planar {
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorRed)
		}
		return base.Foreground(colorGray)
	})
	return t.Render()
}
