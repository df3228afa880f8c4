package process

import (
	"fmt"
	"math"
)

// NoPriority is assigned when a dataset record omits the priority column.
// Lower values mean higher priority, so such processes sort last.
const NoPriority int64 = math.MaxInt64

// Unset marks an output time field that has not been computed yet.
const Unset int64 = -1

// Process is one schedulable unit: immutable inputs plus the timing outputs
// a policy fills in.
type Process struct {
	Name        string `json:"name"`
	ArrivalTime int64  `json:"arrival_time"`
	BurstTime   int64  `json:"burst_time"`
	Priority    int64  `json:"priority"`

	RemainingTime  int64 `json:"remaining_time"`
	StartTime      int64 `json:"start_time"`
	CompletionTime int64 `json:"completion_time"`
	TurnaroundTime int64 `json:"turnaround_time"`
	WaitingTime    int64 `json:"waiting_time"`
	State          State `json:"state"`
}

// New returns a process with its inputs set and its outputs cleared.
func New(name string, arrival, burst, priority int64) Process {
	p := Process{
		Name:        name,
		ArrivalTime: arrival,
		BurstTime:   burst,
		Priority:    priority,
	}
	p.Reset()
	return p
}

// Reset restores the baseline a policy expects: full remaining time,
// cleared outputs and PENDING state.
func (p *Process) Reset() {
	p.RemainingTime = p.BurstTime
	p.StartTime = Unset
	p.CompletionTime = Unset
	p.TurnaroundTime = Unset
	p.WaitingTime = Unset
	p.State = StatePending
}

// Validate checks the input fields.
func (p Process) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: process name is empty", ErrInvalidParameter)
	case p.ArrivalTime < 0:
		return fmt.Errorf("%w: process %s has negative arrival time %d", ErrInvalidParameter, p.Name, p.ArrivalTime)
	case p.BurstTime <= 0:
		return fmt.Errorf("%w: process %s has non-positive burst time %d", ErrInvalidParameter, p.Name, p.BurstTime)
	}
	return nil
}

// HasPriority reports whether the dataset supplied a priority for p.
func (p Process) HasPriority() bool {
	return p.Priority != NoPriority
}

// Arrived reports whether p is eligible at time now.
func (p Process) Arrived(now int64) bool {
	return p.ArrivalTime <= now
}

// Dispatch puts p on the CPU at time now. StartTime is only recorded on the
// first dispatch; resuming a preempted process leaves it alone.
// It reports whether this was the first dispatch.
func (p *Process) Dispatch(now int64) bool {
	if !p.State.CanTransitionTo(StateRunning) {
		return false
	}
	p.StartTime = now
	p.State = StateRunning
	return true
}

// Execute consumes up to units of CPU time and returns how much was used.
func (p *Process) Execute(units int64) int64 {
	if units > p.RemainingTime {
		units = p.RemainingTime
	}
	p.RemainingTime -= units
	return units
}

// Complete finalizes the timing outputs once the remaining time hits zero.
// Only a RUNNING process with no work left can complete; otherwise p is left
// untouched and Complete returns false.
func (p *Process) Complete(now int64) bool {
	if p.RemainingTime != 0 || !p.State.CanTransitionTo(StateCompleted) {
		return false
	}
	p.CompletionTime = now
	p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstTime
	p.State = StateCompleted
	return true
}

// ResponseTime is the delay between arrival and first dispatch.
func (p Process) ResponseTime() int64 {
	if p.StartTime == Unset {
		return Unset
	}
	return p.StartTime - p.ArrivalTime
}
