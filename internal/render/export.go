package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Barritosaurus/schedsim/internal/report"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

// Document is the machine-readable form of one run.
type Document struct {
	Result   *scheduler.Result `json:"result"`
	Timeline []report.Interval `json:"timeline"`
	Summary  report.Summary    `json:"summary"`
}

// NewDocument bundles a result with its derived timeline and summary.
func NewDocument(res *scheduler.Result) (Document, error) {
	summary, err := report.Summarize(res)
	if err != nil {
		return Document{}, err
	}
	return Document{Result: res, Timeline: report.Timeline(res), Summary: summary}, nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var csvHeader = []string{
	"policy", "name", "arrival_time", "burst_time", "priority",
	"start_time", "completion_time", "turnaround_time", "waiting_time",
}

// CSV writes one row per process for every result, under a single header.
func CSV(w io.Writer, results ...*scheduler.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, res := range results {
		for _, p := range res.Processes {
			row := []string{
				string(res.Policy),
				p.Name,
				fmt.Sprint(p.ArrivalTime),
				fmt.Sprint(p.BurstTime),
				priorityCell(p),
				fmt.Sprint(p.StartTime),
				fmt.Sprint(p.CompletionTime),
				fmt.Sprint(p.TurnaroundTime),
				fmt.Sprint(p.WaitingTime),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write CSV row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
