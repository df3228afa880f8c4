package process

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Set is the ordered collection of processes handed to one policy run.
// A policy may reorder it. The zero capacity means unbounded.
type Set struct {
	procs    []*Process
	capacity int
}

// NewSet returns an empty set that accepts at most capacity processes.
func NewSet(capacity int) *Set {
	return &Set{capacity: capacity}
}

// FromProcesses builds an unbounded set, resetting every process.
func FromProcesses(procs ...Process) *Set {
	s := &Set{procs: make([]*Process, 0, len(procs))}
	for i := range procs {
		p := procs[i]
		p.Reset()
		s.procs = append(s.procs, &p)
	}
	return s
}

// Add appends p after checking capacity and name uniqueness.
func (s *Set) Add(p Process) error {
	if s.capacity > 0 && len(s.procs) >= s.capacity {
		return fmt.Errorf("%w: set holds at most %d processes, rejected %s", ErrCapacityExceeded, s.capacity, p.Name)
	}
	if _, ok := s.Lookup(p.Name); ok {
		return fmt.Errorf("%w: duplicate process name %s", ErrInvalidParameter, p.Name)
	}
	p.Reset()
	s.procs = append(s.procs, &p)
	return nil
}

func (s *Set) Len() int { return len(s.procs) }

func (s *Set) Cap() int { return s.capacity }

// All returns the processes in the current order. The slice is a copy but the
// pointers are shared with the set.
func (s *Set) All() []*Process {
	out := make([]*Process, len(s.procs))
	copy(out, s.procs)
	return out
}

// Snapshot returns value copies in the current order.
func (s *Set) Snapshot() []Process {
	out := make([]Process, len(s.procs))
	for i, p := range s.procs {
		out[i] = *p
	}
	return out
}

// Lookup finds a process by name.
func (s *Set) Lookup(name string) (*Process, bool) {
	for _, p := range s.procs {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Reset gives every process a fresh baseline so the set can be re-run.
func (s *Set) Reset() {
	for _, p := range s.procs {
		p.Reset()
	}
}

// Validate fails with ErrEmptyInput on an empty set and joins every
// ErrInvalidParameter found among the processes.
func (s *Set) Validate() error {
	if len(s.procs) == 0 {
		return fmt.Errorf("%w: no processes to schedule", ErrEmptyInput)
	}
	var errs []error
	for _, p := range s.procs {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if _, ok := s.Horizon(); !ok {
		return fmt.Errorf("%w: latest arrival plus total burst overflows the clock", ErrInvalidParameter)
	}
	return nil
}

// Clone deep-copies the set, keeping the order and the output fields.
func (s *Set) Clone() *Set {
	c := &Set{procs: make([]*Process, len(s.procs)), capacity: s.capacity}
	for i, p := range s.procs {
		cp := *p
		c.procs[i] = &cp
	}
	return c
}

// Horizon bounds every completion time: the latest arrival plus the CPU time
// the whole set needs. ok is false when that sum does not fit in an int64.
func (s *Set) Horizon() (horizon int64, ok bool) {
	var latest, total int64
	for _, p := range s.procs {
		if p.BurstTime > math.MaxInt64-total {
			return 0, false
		}
		total += p.BurstTime
		latest = max(latest, p.ArrivalTime)
	}
	if latest > math.MaxInt64-total {
		return 0, false
	}
	return latest + total, true
}

//region Sort accessors

// SortByArrival orders the set by arrival time. The sort is stable, so ties
// keep the current (input) order.
func (s *Set) SortByArrival() {
	sort.SliceStable(s.procs, func(i, j int) bool {
		return s.procs[i].ArrivalTime < s.procs[j].ArrivalTime
	})
}

//endregion
