package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/Barritosaurus/schedsim/internal/process"
)

// Result is the structured record of one policy run.
type Result struct {
	Policy  Policy `json:"policy"`
	Quantum int64  `json:"quantum,omitempty"`
	// Processes is a snapshot in the order the policy left the set.
	Processes []process.Process `json:"processes"`
	// Slices lists every dispatch interval in time order.
	Slices  []Slice `json:"slices"`
	EndTime int64   `json:"end_time"`
}

type options struct {
	quantum  int64
	maxTime  int64
	idleJump bool
	logger   *slog.Logger
}

// Option configures a run.
type Option func(*options)

// WithQuantum sets the Round Robin time slice. Other policies ignore it.
func WithQuantum(q int64) Option {
	return func(o *options) {
		o.quantum = q
	}
}

// WithMaxTime rejects sets whose latest possible completion, the latest
// arrival plus the total burst, lies past t. Zero means no limit.
func WithMaxTime(t int64) Option {
	return func(o *options) {
		o.maxTime = t
	}
}

// WithIdleJump selects how the clock crosses idle gaps: jump straight to the
// next arrival (true, the default) or step one unit at a time. Both yield the
// same schedule.
func WithIdleJump(jump bool) Option {
	return func(o *options) {
		o.idleJump = jump
	}
}

// WithLogger sets the logger for dispatch decisions (DEBUG level).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

type policyFunc func(*simulation)

var policyFuncs = map[Policy]policyFunc{
	FCFS:                  fcfs,
	SJF:                   nonPreemptive(byBurst),
	SRTF:                  preemptive(byRemaining),
	RoundRobin:            roundRobin,
	PriorityPreemptive:    preemptive(byPriority),
	PriorityNonPreemptive: nonPreemptive(byPriority),
}

// Run validates set, resets it to a fresh baseline and simulates policy over it.
// On a validation error the set is left untouched. On success every process in
// set has its output fields populated and the set is ordered by arrival time.
func Run(policy Policy, set *process.Set, opts ...Option) (*Result, error) {
	o := options{idleJump: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	fn, ok := policyFuncs[policy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown policy %q", process.ErrInvalidParameter, policy)
	}
	if set == nil {
		return nil, fmt.Errorf("%w: nil process set", process.ErrEmptyInput)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if policy.NeedsQuantum() && o.quantum <= 0 {
		return nil, fmt.Errorf("%w: quantum must be positive, got %d", process.ErrInvalidParameter, o.quantum)
	}
	if horizon, _ := set.Horizon(); o.maxTime > 0 && horizon > o.maxTime {
		return nil, fmt.Errorf("%w: schedule may run until %d, past the limit of %d",
			process.ErrInvalidParameter, horizon, o.maxTime)
	}

	set.Reset()
	set.SortByArrival()

	sim := &simulation{
		set:      set,
		quantum:  o.quantum,
		idleJump: o.idleJump,
		logger:   o.logger.With("component", "scheduler", "policy", string(policy)),
	}
	fn(sim)

	res := &Result{
		Policy:    policy,
		Processes: set.Snapshot(),
		Slices:    sim.trace.slices,
		EndTime:   sim.now,
	}
	if policy.NeedsQuantum() {
		res.Quantum = o.quantum
	}
	return res, nil
}

// RunAll runs each policy on its own copy of set, so set keeps its order and outputs.
func RunAll(policies []Policy, set *process.Set, opts ...Option) ([]*Result, error) {
	results := make([]*Result, 0, len(policies))
	for _, p := range policies {
		res, err := Run(p, set.Clone(), opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		results = append(results, res)
	}
	return results, nil
}
