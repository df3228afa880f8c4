package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/render"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

const procsText = `name arrival_time burst_time priority
A 0 5 2
B 1 3 1
C 2 1 3
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestPolicies(t *testing.T) {
	out, _, err := execute(t, "policies")
	require.NoError(t, err)
	for _, p := range scheduler.Policies() {
		assert.Contains(t, out, p.Title())
	}
}

func TestRun_Table(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	out, _, err := execute(t, "run", path, "-p", "fcfs", "--chart", "--bars")
	require.NoError(t, err)
	assert.Contains(t, out, "First-come, first-serve")
	assert.Contains(t, out, "Gantt schedule")
	assert.Contains(t, out, "Waiting time")
	assert.NotContains(t, out, "Round-robin")
}

func TestRun_AllPoliciesByDefault(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	out, _, err := execute(t, "run", path)
	require.NoError(t, err)
	for _, p := range scheduler.Policies() {
		assert.Contains(t, out, p.Title())
	}
}

func TestRun_JSON(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	out, _, err := execute(t, "run", path, "-p", "fcfs", "-o", "json")
	require.NoError(t, err)

	var doc render.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []scheduler.Slice{
		{Name: "A", Start: 0, End: 5},
		{Name: "B", Start: 5, End: 8},
		{Name: "C", Start: 8, End: 9},
	}, doc.Result.Slices)
	assert.Equal(t, int64(9), doc.Summary.Makespan)
}

func TestRun_CSV(t *testing.T) {
	path := writeFile(t, "procs.csv", "A,0,5,2\nB,1,3,1\nC,2,1,3\n")
	out, _, err := execute(t, "run", path, "-p", "fcfs", "-p", "sjf", "-o", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "policy,name"))
	assert.True(t, strings.HasPrefix(lines[4], "sjf,"))
}

func TestRun_QuantumFlag(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	out, _, err := execute(t, "run", path, "-p", "rr", "-q", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Round-robin (quantum 4)")
}

func TestRun_Errors(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown policy", []string{"run", path, "-p", "lottery"}, process.ErrInvalidParameter},
		{"zero quantum", []string{"run", path, "-p", "rr", "-q", "0"}, process.ErrInvalidParameter},
		{"unknown output", []string{"run", path, "-o", "xml"}, process.ErrInvalidParameter},
		{"unknown format", []string{"run", path, "--format", "xlsx"}, process.ErrInvalidParameter},
		{"empty dataset", []string{"run", writeFile(t, "empty.txt", "name arrival burst\n")}, process.ErrEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestRun_CapacityOverflowWarns(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	cfgPath := writeFile(t, "schedsim.yaml", "max_processes: 2\n")

	out, errOut, err := execute(t, "--config", cfgPath, "run", path, "-p", "fcfs")
	require.NoError(t, err)
	assert.Contains(t, errOut, "dataset truncated")
	assert.Contains(t, errOut, "rejected=1")
	assert.Contains(t, out, "First-come, first-serve")
}

func TestRun_DebugLogging(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	_, errOut, err := execute(t, "--debug", "run", path, "-p", "fcfs")
	require.NoError(t, err)
	assert.Contains(t, errOut, "dataset loaded")

	_, errOut, err = execute(t, "run", path, "-p", "fcfs")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "dataset loaded")
}

func TestCompare(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	out, _, err := execute(t, "compare", path, "-p", "fcfs,sjf")
	require.NoError(t, err)
	assert.Contains(t, out, "Policy comparison")
	assert.Contains(t, out, "Lowest average waiting time:    Shortest-job-first")
}

func TestCompare_JSON(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	out, _, err := execute(t, "compare", path, "-o", "json")
	require.NoError(t, err)

	var cmp struct {
		Summaries []json.RawMessage `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	assert.Len(t, cmp.Summaries, len(scheduler.Policies()))
}

func TestRuns_SaveListShow(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	db := filepath.Join(t.TempDir(), "runs.db")

	_, errOut, err := execute(t, "--db", db, "run", path, "-p", "fcfs", "--save")
	require.NoError(t, err)
	id := regexp.MustCompile(`run_[0-9a-f-]{36}`).FindString(errOut)
	require.NotEmpty(t, id, "stderr: %s", errOut)

	out, _, err := execute(t, "--db", db, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "procs.txt")
	assert.Contains(t, out, "fcfs")

	out, _, err = execute(t, "--db", db, "runs", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "First-come, first-serve")

	_, _, err = execute(t, "--db", db, "runs", "show", "run_missing")
	assert.Error(t, err)
}

func TestRuns_RequireDatabase(t *testing.T) {
	_, _, err := execute(t, "runs", "list")
	assert.ErrorContains(t, err, "no results database configured")
}

func TestRunsList_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	out, _, err := execute(t, "--db", db, "runs", "list")
	require.NoError(t, err)
	assert.Equal(t, "No runs found.\n", out)
}

func TestRun_MaxTimeFromConfig(t *testing.T) {
	path := writeFile(t, "procs.txt", procsText)
	cfgPath := writeFile(t, "schedsim.yaml", "max_time: 5\n")

	_, _, err := execute(t, "--config", cfgPath, "run", path, "-p", "srtf")
	assert.ErrorIs(t, err, process.ErrInvalidParameter)
}
