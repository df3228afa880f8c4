package scheduler

import "github.com/Barritosaurus/schedsim/internal/process"

//region Non-preemptive

// fcfs runs processes to completion in arrival order.
func fcfs(s *simulation) {
	for _, p := range s.set.All() {
		if s.now < p.ArrivalTime {
			s.now = p.ArrivalTime
		}
		s.execute(p, p.BurstTime)
	}
}

// nonPreemptive picks the smallest key among arrived processes whenever the
// CPU is free and runs it to completion. SJF keys on burst time, priority
// scheduling on the priority value.
func nonPreemptive(key keyFunc) policyFunc {
	return func(s *simulation) {
		procs := s.set.All()
		q := newReadyQueue(key)
		next := 0
		for done := 0; done < len(procs); {
			next = s.admit(q, procs, next)
			if q.Len() == 0 {
				s.idle()
				continue
			}
			p := q.pop()
			s.execute(p, p.RemainingTime)
			done++
		}
	}
}

//endregion

//region Preemptive

// preemptive re-selects the smallest key whenever a process arrives or
// completes. SRTF keys on remaining time, preemptive priority on the priority
// value. Between those events the waiting keys are fixed and the running key
// never grows, so the head of the queue runs until the next one. Ties go to the
// earliest arrival, then input order, so a running process keeps the CPU
// against a later arrival with an equal key.
func preemptive(key keyFunc) policyFunc {
	return func(s *simulation) {
		procs := s.set.All()
		q := newReadyQueue(key)
		next := 0
		var prev *process.Process
		for done := 0; done < len(procs); {
			next = s.admit(q, procs, next)
			if q.Len() == 0 {
				s.idle()
				continue
			}
			p := q.peek()
			if p != prev {
				if prev != nil && !prev.State.IsTerminal() {
					s.logger.Debug("preempt", "process", prev.Name, "by", p.Name, "time", s.now,
						"remaining", prev.RemainingTime)
				}
				prev = p
			}
			s.execute(p, s.untilArrival(p.RemainingTime, procs, next))
			if p.State.IsTerminal() {
				q.pop()
				done++
				continue
			}
			q.fixTop()
		}
	}
}

// roundRobin serves a FIFO queue in quantum-sized slices. Processes that
// arrive during a slice are queued ahead of the process that was just preempted.
func roundRobin(s *simulation) {
	procs := s.set.All()
	queue := make([]*process.Process, 0, len(procs))
	next := 0
	enqueueArrived := func() {
		for next < len(procs) && procs[next].Arrived(s.now) {
			queue = append(queue, procs[next])
			next++
		}
	}

	enqueueArrived()
	for done := 0; done < len(procs); {
		if len(queue) == 0 {
			s.idle()
			enqueueArrived()
			continue
		}
		p := queue[0]
		queue = queue[1:]
		s.execute(p, s.quantum)
		enqueueArrived()
		if p.State.IsTerminal() {
			done++
			continue
		}
		queue = append(queue, p)
	}
}

//endregion
