package planner

import (
	"container/heap"

	"github.com/samuelfneumann/mbrl/agent/tabular"
)

// entry is a single element of a priorityQueue. The seq field records
// the order entries were pushed in.
type entry struct {
	priority float64
	pair     tabular.Pair
	seq      uint64
}

// entries implements heap.Interface as a max-heap on priority. Equal
// priorities are popped in the order they were pushed.
type entries []entry

func (e entries) Len() int { return len(e) }

func (e entries) Less(i, j int) bool {
	if e[i].priority == e[j].priority {
		return e[i].seq < e[j].seq
	}
	return e[i].priority > e[j].priority
}

func (e entries) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries) Push(x interface{}) {
	*e = append(*e, x.(entry))
}

func (e *entries) Pop() interface{} {
	old := *e
	n := len(old)
	item := old[n-1]
	*e = old[:n-1]
	return item
}

// priorityQueue is a max-priority queue of state action pairs. Entries
// are never updated in place, so the same pair may be queued more than
// once with different priorities.
type priorityQueue struct {
	heap entries
	seq  uint64
}

func newPriorityQueue() *priorityQueue {
	return &priorityQueue{}
}

// push adds pair with the given priority and returns the sequence
// number assigned to the entry
func (q *priorityQueue) push(pair tabular.Pair, priority float64) uint64 {
	q.seq++
	heap.Push(&q.heap, entry{priority: priority, pair: pair, seq: q.seq})
	return q.seq
}

// pop removes and returns the entry of highest priority
func (q *priorityQueue) pop() (entry, bool) {
	if q.heap.Len() == 0 {
		return entry{}, false
	}
	return heap.Pop(&q.heap).(entry), true
}

// lastSeq returns the sequence number of the most recent push
func (q *priorityQueue) lastSeq() uint64 {
	return q.seq
}

func (q *priorityQueue) len() int {
	return q.heap.Len()
}
