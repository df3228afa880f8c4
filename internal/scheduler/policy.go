package scheduler

import (
	"fmt"
	"strings"

	"github.com/Barritosaurus/schedsim/internal/process"
)

// Policy names one of the scheduling algorithms.
type Policy string

const (
	FCFS                  Policy = "fcfs"
	SJF                   Policy = "sjf"
	SRTF                  Policy = "srtf"
	RoundRobin            Policy = "rr"
	PriorityPreemptive    Policy = "priority-preemptive"
	PriorityNonPreemptive Policy = "priority"
)

var policyTitles = map[Policy]string{
	FCFS:                  "First-come, first-serve",
	SJF:                   "Shortest-job-first",
	SRTF:                  "Shortest-remaining-time-first",
	RoundRobin:            "Round-robin",
	PriorityPreemptive:    "Priority (preemptive)",
	PriorityNonPreemptive: "Priority (non-preemptive)",
}

var policyAliases = map[string]Policy{
	"fcfs":                    FCFS,
	"fifo":                    FCFS,
	"sjf":                     SJF,
	"srtf":                    SRTF,
	"srt":                     SRTF,
	"rr":                      RoundRobin,
	"round-robin":             RoundRobin,
	"roundrobin":              RoundRobin,
	"priority-preemptive":     PriorityPreemptive,
	"pp":                      PriorityPreemptive,
	"priority":                PriorityNonPreemptive,
	"priority-non-preemptive": PriorityNonPreemptive,
	"pnp":                     PriorityNonPreemptive,
}

// Policies returns every policy in presentation order.
func Policies() []Policy {
	return []Policy{FCFS, SJF, SRTF, RoundRobin, PriorityPreemptive, PriorityNonPreemptive}
}

// ParsePolicy resolves a policy name or alias, ignoring case and surrounding space.
func ParsePolicy(s string) (Policy, error) {
	p, ok := policyAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: unknown policy %q", process.ErrInvalidParameter, s)
	}
	return p, nil
}

// ParsePolicies resolves a list of names; "all" expands to every policy.
func ParsePolicies(names []string) ([]Policy, error) {
	var out []Policy
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), "all") {
			return Policies(), nil
		}
		p, err := ParsePolicy(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (p Policy) String() string {
	return string(p)
}

// Title is the human-readable name used in reports.
func (p Policy) Title() string {
	if t, ok := policyTitles[p]; ok {
		return t
	}
	return string(p)
}

// Preemptive reports whether a running process can lose the CPU before it finishes.
func (p Policy) Preemptive() bool {
	switch p {
	case SRTF, RoundRobin, PriorityPreemptive:
		return true
	}
	return false
}

// NeedsQuantum reports whether the policy requires a time quantum.
func (p Policy) NeedsQuantum() bool {
	return p == RoundRobin
}

// UsesPriority reports whether selection depends on the priority field.
func (p Policy) UsesPriority() bool {
	return p == PriorityPreemptive || p == PriorityNonPreemptive
}
