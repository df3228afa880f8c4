package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/render"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
	"github.com/Barritosaurus/schedsim/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved runs",
	}
	cmd.AddCommand(newRunsListCmd(), newRunsShowCmd())
	return cmd
}

func newRunsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Label", "Policy", "Processes", "Avg Wait", "Avg Turnaround", "Created"})
			for _, r := range runs {
				table.Append([]string{
					r.ID,
					r.Label,
					string(r.Policy),
					fmt.Sprint(r.Summary.Count),
					fmt.Sprintf("%.2f", r.Summary.AverageWaiting),
					fmt.Sprintf("%.2f", r.Summary.AverageTurnaround),
					r.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "Maximum number of runs to list")

	return cmd
}

func newRunsShowCmd() *cobra.Command {
	var (
		output string
		chart  bool
		bars   bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			if run == nil {
				return fmt.Errorf("%w: run %q not found", process.ErrInvalidParameter, args[0])
			}

			if output == "json" {
				return render.JSON(cmd.OutOrStdout(), run)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Run %s (%s) saved %s\n", run.ID, run.Label, run.CreatedAt.Format("2006-01-02 15:04:05"))
			return writeResults(cmd.OutOrStdout(), output, []*scheduler.Result{run.Result}, render.Options{Chart: chart, Bars: bars})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, csv")
	cmd.Flags().BoolVar(&chart, "chart", false, "Draw the ASCII Gantt bar")
	cmd.Flags().BoolVar(&bars, "bars", false, "Draw waiting and turnaround bar charts")

	return cmd
}
