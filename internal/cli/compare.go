package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/render"
	"github.com/Barritosaurus/schedsim/internal/report"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

func newCompareCmd() *cobra.Command {
	var (
		policies []string
		quantum  int64
		output   string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "compare <dataset>",
		Short: "Rank policies by their average metrics over a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pols, err := resolvePolicies(policies)
			if err != nil {
				return err
			}
			set, err := loadDataset(args[0], format)
			if err != nil {
				return err
			}

			var q *int64
			if cmd.Flags().Changed("quantum") {
				q = &quantum
			}
			results, err := scheduler.RunAll(pols, set, runOptions(q)...)
			if err != nil {
				return err
			}
			cmp, err := report.Compare(results)
			if err != nil {
				return err
			}

			switch output {
			case "table":
				render.Comparison(cmd.OutOrStdout(), cmp)
				return nil
			case "json":
				return render.JSON(cmd.OutOrStdout(), cmp)
			}
			return fmt.Errorf("%w: unknown output format %q", process.ErrInvalidParameter, output)
		},
	}

	cmd.Flags().StringSliceVarP(&policies, "policy", "p", nil, "Policies to compare (default from config)")
	cmd.Flags().Int64VarP(&quantum, "quantum", "q", 0, "Round Robin time slice (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json")
	cmd.Flags().StringVar(&format, "format", "", "Dataset format: text, csv (default by extension)")

	return cmd
}
