package scheduler

import (
	"log/slog"

	"github.com/Barritosaurus/schedsim/internal/process"
)

// simulation is the virtual clock shared by all policies for one run.
type simulation struct {
	set      *process.Set
	now      int64
	quantum  int64
	idleJump bool
	trace    trace
	logger   *slog.Logger
}

// idle moves the clock forward when nothing is eligible.
func (s *simulation) idle() {
	if s.idleJump {
		if next, ok := s.nextArrival(); ok {
			s.logger.Debug("idle", "from", s.now, "to", next)
			s.now = next
			return
		}
	}
	s.now++
}

// nextArrival is the earliest arrival among processes that have not arrived yet.
func (s *simulation) nextArrival() (int64, bool) {
	var (
		next  int64
		found bool
	)
	for _, p := range s.set.All() {
		if p.State != process.StatePending || p.Arrived(s.now) {
			continue
		}
		if !found || p.ArrivalTime < next {
			next, found = p.ArrivalTime, true
		}
	}
	return next, found
}

// execute runs p for up to units of time starting now, records the slice and
// completes p when its remaining time reaches zero.
func (s *simulation) execute(p *process.Process, units int64) {
	if p.Dispatch(s.now) {
		s.logger.Debug("dispatch", "process", p.Name, "time", s.now)
	}
	start := s.now
	s.now += p.Execute(units)
	s.trace.record(p.Name, start, s.now)
	if p.Complete(s.now) {
		s.logger.Debug("complete", "process", p.Name, "time", s.now,
			"turnaround", p.TurnaroundTime, "waiting", p.WaitingTime)
	}
}

// untilArrival caps units so a slice started now ends no later than the
// arrival of procs[next], the first process not yet admitted.
func (s *simulation) untilArrival(units int64, procs []*process.Process, next int) int64 {
	if next < len(procs) {
		units = min(units, procs[next].ArrivalTime-s.now)
	}
	return units
}

// admit pushes every process from procs[next:] that has arrived by now onto q
// and returns the new cursor. procs must be sorted by arrival.
func (s *simulation) admit(q *readyQueue, procs []*process.Process, next int) int {
	for next < len(procs) && procs[next].Arrived(s.now) {
		q.push(procs[next], next)
		next++
	}
	return next
}
