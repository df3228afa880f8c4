package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/report"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

func fcfsWithGap(t *testing.T) *scheduler.Result {
	t.Helper()
	set := process.FromProcesses(
		process.New("A", 0, 5, 2),
		process.New("B", 1, 3, 1),
		process.New("C", 10, 4, process.NoPriority),
	)
	res, err := scheduler.Run(scheduler.FCFS, set)
	require.NoError(t, err)
	return res
}

func loadFixture(t *testing.T, p ...string) string {
	b, err := os.ReadFile(path.Join(p...))
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}

func TestGanttLine(t *testing.T) {
	t.Parallel()
	var w bytes.Buffer
	GanttLine(&w, report.Timeline(fcfsWithGap(t)))
	assert.Equal(t, loadFixture(t, "testdata", "gantt_line.txt"), w.String())
}

func TestGanttBar(t *testing.T) {
	t.Parallel()
	var w bytes.Buffer
	GanttBar(&w, report.Timeline(fcfsWithGap(t)))
	assert.Equal(t, loadFixture(t, "testdata", "gantt_bar.txt"), w.String())

	w.Reset()
	GanttBar(&w, nil)
	assert.Empty(t, w.String())
}

func TestGanttBar_LongTimeline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		end  int64
		want string
	}{
		{"huge", 1 << 62, "Gantt bar omitted: schedule spans 4611686018427387904 time units (limit 120)\n\n"},
		{"just past limit", 121, "Gantt bar omitted: schedule spans 121 time units (limit 120)\n\n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var w bytes.Buffer
			GanttBar(&w, []report.Interval{
				{Name: report.IdleLabel, Start: 0, End: tt.end - 1, Idle: true},
				{Name: "A", Start: tt.end - 1, End: tt.end},
			})
			assert.Equal(t, tt.want, w.String())
		})
	}

	var w bytes.Buffer
	GanttBar(&w, []report.Interval{{Name: "A", Start: 0, End: ganttBarMaxUnits}})
	lines := strings.Split(w.String(), "\n")
	assert.Len(t, lines[0], 2*ganttBarMaxUnits+2, "limit itself is still drawn")
}

func TestRuler_DropsCollidingLabels(t *testing.T) {
	t.Parallel()
	got := ruler([]report.Interval{
		{Name: "A", Start: 0, End: 1},
		{Name: "B", Start: 1, End: 12},
		{Name: "C", Start: 12, End: 13},
	})
	// 13 would start at column 26, right after "12" at 24-25, so it is dropped.
	assert.Equal(t, "0 1                     12", got)
}

func TestReport(t *testing.T) {
	t.Parallel()
	set := process.FromProcesses(process.New("A", 0, 8, 1), process.New("B", 1, 4, 2))
	res, err := scheduler.Run(scheduler.RoundRobin, set, scheduler.WithQuantum(3))
	require.NoError(t, err)

	var w bytes.Buffer
	require.NoError(t, Report(&w, res, Options{Chart: true, Bars: true}))
	out := w.String()

	for _, want := range []string{
		"Round-robin (quantum 3)",
		"Gantt schedule",
		"Schedule table",
		"TURNAROUND",
		"Performance metrics",
		"Total waiting time:",
		"Context switches:",
		"Waiting time",
		"Turnaround time",
		"|A A A B B B A A A B A A |",
	} {
		assert.Contains(t, out, want)
	}

	err = Report(&w, &scheduler.Result{Policy: scheduler.FCFS}, Options{})
	assert.ErrorIs(t, err, process.ErrEmptyInput)
}

func TestSchedule_NoPriorityCell(t *testing.T) {
	t.Parallel()
	res := fcfsWithGap(t)
	s, err := report.Summarize(res)
	require.NoError(t, err)

	var w bytes.Buffer
	Schedule(&w, res.Processes, s)
	lines := strings.Split(w.String(), "\n")
	var cRow string
	for _, l := range lines {
		if strings.Contains(l, " C ") {
			cRow = l
		}
	}
	require.NotEmpty(t, cRow)
	assert.Contains(t, cRow, " - ")
}

func TestBarChart(t *testing.T) {
	t.Parallel()
	procs := []process.Process{
		{Name: "short", WaitingTime: 0},
		{Name: "B", WaitingTime: 80},
		{Name: "C", WaitingTime: 20},
	}
	var w bytes.Buffer
	BarChart(&w, "Waiting time", procs, func(p process.Process) int64 { return p.WaitingTime })

	assert.Equal(t, "Waiting time\n"+
		"short | 0\n"+
		"B     |"+strings.Repeat("█", 40)+" 80\n"+
		"C     |"+strings.Repeat("█", 10)+" 20\n\n", w.String())
}

func TestBarChart_HugeValues(t *testing.T) {
	t.Parallel()
	procs := []process.Process{
		{Name: "A", WaitingTime: math.MaxInt64},
		{Name: "B", WaitingTime: math.MaxInt64 / 2},
	}
	var w bytes.Buffer
	BarChart(&w, "Waiting time", procs, func(p process.Process) int64 { return p.WaitingTime })

	assert.Equal(t, "Waiting time\n"+
		"A |"+strings.Repeat("█", 40)+" 9223372036854775807\n"+
		"B |"+strings.Repeat("█", 20)+" 4611686018427387903\n\n", w.String())
}

func TestComparison(t *testing.T) {
	t.Parallel()
	set := process.FromProcesses(process.New("A", 0, 6, 2), process.New("B", 2, 4, 1), process.New("C", 2, 2, 3))
	results, err := scheduler.RunAll(scheduler.Policies(), set, scheduler.WithQuantum(2))
	require.NoError(t, err)
	c, err := report.Compare(results)
	require.NoError(t, err)

	var w bytes.Buffer
	Comparison(&w, c)
	out := w.String()
	for _, p := range scheduler.Policies() {
		assert.Contains(t, out, p.Title())
	}
	assert.Contains(t, out, "q=2")
	assert.Contains(t, out, "Lowest average waiting time:    "+c.BestWaiting.Title())
}

func TestJSON(t *testing.T) {
	t.Parallel()
	doc, err := NewDocument(fcfsWithGap(t))
	require.NoError(t, err)

	var w bytes.Buffer
	require.NoError(t, JSON(&w, doc))

	var got struct {
		Result struct {
			Policy    string `json:"policy"`
			Processes []struct {
				Name           string `json:"name"`
				CompletionTime int64  `json:"completion_time"`
			} `json:"processes"`
		} `json:"result"`
		Timeline []report.Interval `json:"timeline"`
		Summary  report.Summary    `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Bytes(), &got))
	assert.Equal(t, "fcfs", got.Result.Policy)
	require.Len(t, got.Result.Processes, 3)
	assert.Equal(t, int64(14), got.Result.Processes[2].CompletionTime)
	assert.Len(t, got.Timeline, 4)
	assert.Equal(t, int64(14), got.Summary.Makespan)

	_, err = NewDocument(nil)
	assert.ErrorIs(t, err, process.ErrEmptyInput)
}

func TestCSV(t *testing.T) {
	t.Parallel()
	var w bytes.Buffer
	require.NoError(t, CSV(&w, fcfsWithGap(t)))

	rows, err := csv.NewReader(&w).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"fcfs", "A", "0", "5", "2", "0", "5", "5", "0"}, rows[1])
	assert.Equal(t, []string{"fcfs", "C", "10", "4", "-", "10", "14", "4", "0"}, rows[3])
}
