package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/report"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

// Options toggles the optional sections of a text report.
type Options struct {
	Chart bool // ASCII Gantt bar
	Bars  bool // waiting/turnaround bar charts
}

// Report writes the full text report of one run: title, Gantt line, schedule
// table and performance metrics.
func Report(w io.Writer, res *scheduler.Result, opts Options) error {
	summary, err := report.Summarize(res)
	if err != nil {
		return err
	}
	timeline := report.Timeline(res)

	title := res.Policy.Title()
	if res.Quantum > 0 {
		title = fmt.Sprintf("%s (quantum %d)", title, res.Quantum)
	}
	Title(w, title)
	GanttLine(w, timeline)
	if opts.Chart {
		GanttBar(w, timeline)
	}
	Schedule(w, res.Processes, summary)
	Metrics(w, summary)
	if opts.Bars {
		BarChart(w, "Waiting time", res.Processes, func(p process.Process) int64 { return p.WaitingTime })
		BarChart(w, "Turnaround time", res.Processes, func(p process.Process) int64 { return p.TurnaroundTime })
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// GanttLine prints one cell per interval followed by the boundary times.
func GanttLine(w io.Writer, timeline []report.Interval) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, iv := range timeline {
		name := iv.Name
		if iv.Idle {
			name = "-"
		}
		padding := strings.Repeat(" ", max(8-len(name), 0)/2)
		_, _ = fmt.Fprint(w, padding, name, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, iv := range timeline {
		_, _ = fmt.Fprint(w, iv.Start, "\t")
		if len(timeline)-1 == i {
			_, _ = fmt.Fprint(w, iv.End)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// ganttBarMaxUnits is the longest timeline GanttBar draws.
const ganttBarMaxUnits = 120

// GanttBar draws the timeline at two characters per time unit with a time
// ruler underneath. Idle units are drawn as "..". Timelines longer than
// ganttBarMaxUnits get a notice instead.
func GanttBar(w io.Writer, timeline []report.Interval) {
	if len(timeline) == 0 {
		return
	}
	end := timeline[len(timeline)-1].End
	if end > ganttBarMaxUnits {
		_, _ = fmt.Fprintf(w, "Gantt bar omitted: schedule spans %d time units (limit %d)\n\n", end, ganttBarMaxUnits)
		return
	}
	border := "+" + strings.Repeat("-", int(2*end)) + "+"

	var bar strings.Builder
	bar.WriteString("|")
	for _, iv := range timeline {
		cell := ".."
		if !iv.Idle {
			cell = fmt.Sprintf("%-2.2s", iv.Name)
		}
		bar.WriteString(strings.Repeat(cell, int(iv.Len())))
	}
	bar.WriteString("|")

	_, _ = fmt.Fprintln(w, border)
	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, border)
	_, _ = fmt.Fprintln(w, ruler(timeline))
	_, _ = fmt.Fprintln(w)
}

// ruler places each interval boundary t at column 2t, dropping labels that
// would collide with the previous one.
func ruler(timeline []report.Interval) string {
	end := timeline[len(timeline)-1].End
	line := []byte(strings.Repeat(" ", int(2*end)+len(fmt.Sprint(end))+1))
	next := 0
	place := func(t int64) {
		col := int(2 * t)
		if col < next {
			return
		}
		label := fmt.Sprint(t)
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	for _, iv := range timeline {
		place(iv.Start)
	}
	place(end)
	return strings.TrimRight(string(line), " ")
}

// Schedule renders the per-process table with averages in the footer.
func Schedule(w io.Writer, procs []process.Process, s report.Summary) {
	rows := make([][]string, len(procs))
	for i, p := range procs {
		rows[i] = []string{
			p.Name,
			priorityCell(p),
			fmt.Sprint(p.BurstTime),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.StartTime),
			fmt.Sprint(p.WaitingTime),
			fmt.Sprint(p.TurnaroundTime),
			fmt.Sprint(p.CompletionTime),
		}
	}

	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Start", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Response\n%.2f", s.AverageResponse),
		fmt.Sprintf("Average\n%.2f", s.AverageWaiting),
		fmt.Sprintf("Average\n%.2f", s.AverageTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", s.Throughput)})
	table.Render()
}

// Metrics prints the aggregate figures below the table.
func Metrics(w io.Writer, s report.Summary) {
	_, _ = fmt.Fprintln(w, "Performance metrics")
	_, _ = fmt.Fprintf(w, "Total turnaround time:   %d\n", s.TotalTurnaround)
	_, _ = fmt.Fprintf(w, "Average turnaround time: %.2f\n", s.AverageTurnaround)
	_, _ = fmt.Fprintf(w, "Total waiting time:      %d\n", s.TotalWaiting)
	_, _ = fmt.Fprintf(w, "Average waiting time:    %.2f\n", s.AverageWaiting)
	_, _ = fmt.Fprintf(w, "Average response time:   %.2f\n", s.AverageResponse)
	_, _ = fmt.Fprintf(w, "CPU utilization:         %.2f%%\n", s.Utilization*100)
	_, _ = fmt.Fprintf(w, "Context switches:        %d\n", s.ContextSwitches)
}

// Comparison renders one row per policy and names the best performers.
func Comparison(w io.Writer, c report.Comparison) {
	rows := make([][]string, len(c.Summaries))
	for i, s := range c.Summaries {
		name := s.Policy.Title()
		if s.Quantum > 0 {
			name = fmt.Sprintf("%s q=%d", name, s.Quantum)
		}
		rows[i] = []string{
			name,
			fmt.Sprintf("%.2f", s.AverageWaiting),
			fmt.Sprintf("%.2f", s.AverageTurnaround),
			fmt.Sprintf("%.2f", s.AverageResponse),
			fmt.Sprint(s.Makespan),
			fmt.Sprintf("%.2f%%", s.Utilization*100),
			fmt.Sprintf("%.2f/t", s.Throughput),
			fmt.Sprint(s.ContextSwitches),
		}
	}

	Title(w, "Policy comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Avg Wait", "Avg Turnaround", "Avg Response", "Makespan", "Utilization", "Throughput", "Switches"})
	table.AppendBulk(rows)
	table.Render()
	_, _ = fmt.Fprintf(w, "Lowest average waiting time:    %s\n", c.BestWaiting.Title())
	_, _ = fmt.Fprintf(w, "Lowest average turnaround time: %s\n", c.BestTurnaround.Title())
	_, _ = fmt.Fprintf(w, "Lowest average response time:   %s\n", c.BestResponse.Title())
}

const barWidth = 40

// BarChart draws one horizontal bar per process, scaled to fit barWidth.
func BarChart(w io.Writer, title string, procs []process.Process, value func(process.Process) int64) {
	var (
		widest int
		top    int64
	)
	for _, p := range procs {
		widest = max(widest, len(p.Name))
		top = max(top, value(p))
	}

	_, _ = fmt.Fprintln(w, title)
	for _, p := range procs {
		v := value(p)
		bars := v
		if top > barWidth {
			bars = int64(float64(v) / float64(top) * barWidth)
		}
		_, _ = fmt.Fprintf(w, "%-*s |%s %d\n", widest, p.Name, strings.Repeat("█", int(bars)), v)
	}
	_, _ = fmt.Fprintln(w)
}

func priorityCell(p process.Process) string {
	if !p.HasPriority() {
		return "-"
	}
	return fmt.Sprint(p.Priority)
}
