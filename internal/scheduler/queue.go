package scheduler

import (
	"container/heap"

	"github.com/Barritosaurus/schedsim/internal/process"
)

// keyFunc extracts the selection key; the smallest key runs first.
type keyFunc func(*process.Process) int64

func byBurst(p *process.Process) int64     { return p.BurstTime }
func byRemaining(p *process.Process) int64 { return p.RemainingTime }
func byPriority(p *process.Process) int64  { return p.Priority }

type entry struct {
	proc *process.Process
	// seq is the admission order. Processes are admitted in arrival order,
	// so equal keys fall back to earliest arrival, then input order.
	seq int
}

// readyQueue is a min-heap of arrived, unfinished processes. Keys are read
// live from the process, so a running process whose key changed must be fixed.
type readyQueue struct {
	items []entry
	key   keyFunc
}

func newReadyQueue(key keyFunc) *readyQueue {
	return &readyQueue{key: key}
}

func (q *readyQueue) Len() int { return len(q.items) }

func (q *readyQueue) Less(i, j int) bool {
	ki, kj := q.key(q.items[i].proc), q.key(q.items[j].proc)
	if ki != kj {
		return ki < kj
	}
	return q.items[i].seq < q.items[j].seq
}

func (q *readyQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *readyQueue) Push(x any) { q.items = append(q.items, x.(entry)) }

func (q *readyQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = entry{} // avoid memory leak
	q.items = old[:n-1]
	return item
}

func (q *readyQueue) push(p *process.Process, seq int) {
	heap.Push(q, entry{proc: p, seq: seq})
}

func (q *readyQueue) peek() *process.Process {
	return q.items[0].proc
}

func (q *readyQueue) pop() *process.Process {
	return heap.Pop(q).(entry).proc
}

// fixTop restores heap order after the head's key changed.
func (q *readyQueue) fixTop() {
	heap.Fix(q, 0)
}
