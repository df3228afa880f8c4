package report

import (
	"fmt"

	"github.com/Barritosaurus/schedsim/internal/process"
	"github.com/Barritosaurus/schedsim/internal/scheduler"
)

// Summary holds the aggregate performance figures of one run.
type Summary struct {
	Policy            scheduler.Policy `json:"policy"`
	Quantum           int64            `json:"quantum,omitempty"`
	Count             int              `json:"count"`
	TotalTurnaround   int64            `json:"total_turnaround"`
	AverageTurnaround float64          `json:"average_turnaround"`
	TotalWaiting      int64            `json:"total_waiting"`
	AverageWaiting    float64          `json:"average_waiting"`
	TotalResponse     int64            `json:"total_response"`
	AverageResponse   float64          `json:"average_response"`
	Makespan          int64            `json:"makespan"`
	BusyTime          int64            `json:"busy_time"`
	IdleTime          int64            `json:"idle_time"`
	Utilization       float64          `json:"utilization"`
	Throughput        float64          `json:"throughput"`
	ContextSwitches   int              `json:"context_switches"`
}

// Summarize derives totals and averages from a finished run.
func Summarize(res *scheduler.Result) (Summary, error) {
	if res == nil || len(res.Processes) == 0 {
		return Summary{}, fmt.Errorf("%w: no processes to summarize", process.ErrEmptyInput)
	}

	s := Summary{
		Policy:   res.Policy,
		Quantum:  res.Quantum,
		Count:    len(res.Processes),
		Makespan: res.EndTime,
	}
	for _, p := range res.Processes {
		s.TotalTurnaround += p.TurnaroundTime
		s.TotalWaiting += p.WaitingTime
		s.TotalResponse += p.ResponseTime()
		s.BusyTime += p.BurstTime
	}
	for i := 1; i < len(res.Slices); i++ {
		if res.Slices[i].Name != res.Slices[i-1].Name {
			s.ContextSwitches++
		}
	}

	count := float64(s.Count)
	s.AverageTurnaround = float64(s.TotalTurnaround) / count
	s.AverageWaiting = float64(s.TotalWaiting) / count
	s.AverageResponse = float64(s.TotalResponse) / count
	s.IdleTime = s.Makespan - s.BusyTime
	if s.Makespan > 0 {
		s.Utilization = float64(s.BusyTime) / float64(s.Makespan)
		s.Throughput = count / float64(s.Makespan)
	}
	return s, nil
}

// Comparison ranks several runs over the same process set.
type Comparison struct {
	Summaries      []Summary        `json:"summaries"`
	BestWaiting    scheduler.Policy `json:"best_waiting"`
	BestTurnaround scheduler.Policy `json:"best_turnaround"`
	BestResponse   scheduler.Policy `json:"best_response"`
}

// Compare summarizes each result and picks the policy with the lowest average
// for each metric. Ties go to the earlier result.
func Compare(results []*scheduler.Result) (Comparison, error) {
	if len(results) == 0 {
		return Comparison{}, fmt.Errorf("%w: no results to compare", process.ErrEmptyInput)
	}
	c := Comparison{Summaries: make([]Summary, 0, len(results))}
	for _, res := range results {
		s, err := Summarize(res)
		if err != nil {
			return Comparison{}, err
		}
		c.Summaries = append(c.Summaries, s)
	}
	c.BestWaiting = best(c.Summaries, func(s Summary) float64 { return s.AverageWaiting })
	c.BestTurnaround = best(c.Summaries, func(s Summary) float64 { return s.AverageTurnaround })
	c.BestResponse = best(c.Summaries, func(s Summary) float64 { return s.AverageResponse })
	return c, nil
}

func best(summaries []Summary, metric func(Summary) float64) scheduler.Policy {
	idx := 0
	for i := 1; i < len(summaries); i++ {
		if metric(summaries[i]) < metric(summaries[idx]) {
			idx = i
		}
	}
	return summaries[idx].Policy
}
