package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/render"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
	"github.com/Barritosaurus/schedsim/internal/store"
)

func newRunCmd() *cobra.Command {
	var (
		policies []string
		quantum  int64
		output   string
		format   string
		label    string
		chart    bool
		bars     bool
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "run <dataset>",
		Short: "Simulate one or more policies over a dataset",
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

			if err := writeResults(cmd.OutOrStdout(), output, results, render.Options{Chart: chart, Bars: bars}); err != nil {
				return err
			}
			if !save {
				return nil
			}

			if label == "" {
				label = filepath.Base(args[0])
			}
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			for _, res := range results {
				run, err := store.NewRun(label, res)
				if err != nil {
					return err
				}
				if err := st.SaveRun(cmd.Context(), run); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s run %s\n", run.Policy, run.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&policies, "policy", "p", nil, "Policies to run (repeatable, \"all\" for every policy)")
	cmd.Flags().Int64VarP(&quantum, "quantum", "q", 0, "Round Robin time slice (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, csv")
	cmd.Flags().StringVar(&format, "format", "", "Dataset format: text, csv (default by extension)")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with saved runs (default dataset file name)")
	cmd.Flags().BoolVar(&chart, "chart", false, "Draw the ASCII Gantt bar")
	cmd.Flags().BoolVar(&bars, "bars", false, "Draw waiting and turnaround bar charts")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the runs to the results database")

	return cmd
}

func writeResults(w io.Writer, output string, results []*scheduler.Result, opts render.Options) error {
	switch output {
	case "table":
		for _, res := range results {
			if err := render.Report(w, res, opts); err != nil {
				return err
			}
		}
		return nil
	case "json":
		docs := make([]render.Document, 0, len(results))
		for _, res := range results {
			doc, err := render.NewDocument(res)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		if len(docs) == 1 {
			return render.JSON(w, docs[0])
		}
		return render.JSON(w, docs)
	case "csv":
		return render.CSV(w, results...)
	}
	return fmt.Errorf("%w: unknown output format %q", process.ErrInvalidParameter, output)
}
