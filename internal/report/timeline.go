package report

import "github.com/Barritosaurus/schedsim/internal/scheduler"

// IdleLabel names the intervals where no process held the CPU.
const IdleLabel = "idle"

// Interval is one entry of the Gantt timeline.
type Interval struct {
	Name  string `json:"name"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Idle  bool   `json:"idle,omitempty"`
}

// Len is the duration of the interval.
func (iv Interval) Len() int64 {
	return iv.End - iv.Start
}

// Timeline lays the dispatch slices of res over [0, EndTime], filling the gaps
// with idle intervals. Preempted processes show up once per slice.
func Timeline(res *scheduler.Result) []Interval {
	if res == nil {
		return nil
	}
	out := make([]Interval, 0, len(res.Slices)+1)
	var cursor int64
	for _, s := range res.Slices {
		if s.Start > cursor {
			out = append(out, Interval{Name: IdleLabel, Start: cursor, End: s.Start, Idle: true})
		}
		out = append(out, Interval{Name: s.Name, Start: s.Start, End: s.End})
		cursor = s.End
	}
	if res.EndTime > cursor {
		out = append(out, Interval{Name: IdleLabel, Start: cursor, End: res.EndTime, Idle: true})
	}
	return out
}
