package logfeed

import (
	"container/heap"
	"sync"

	"go.uber.org/zap"
)

// LogicalExecutor is a deterministic group.Executor: it has no notion of
// wall-clock time at all. Callbacks are ordered by a caller-driven
// logical clock (Advance), so the same sequence of commands and Advance
// calls produces the same callback firing order on every replica.
type LogicalExecutor struct {
	mu     sync.Mutex
	now    uint64
	seq    uint64
	queue  taskHeap
	logger *zap.SugaredLogger
}

type task struct {
	deadline uint64
	seq      uint64
	fn       func()
}

type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x any)   { *h = append(*h, x.(*task)) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// NewLogicalExecutor creates an executor whose logical clock starts at 0.
func NewLogicalExecutor(logger *zap.SugaredLogger) *LogicalExecutor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LogicalExecutor{logger: logger}
}

// Schedule registers fn to fire once the logical clock reaches the
// current time plus delayMS. It never fails; the error return exists so
// a real deployment's executor can reject schedules.
func (e *LogicalExecutor) Schedule(delayMS uint64, fn func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	heap.Push(&e.queue, &task{deadline: e.now + delayMS, seq: e.seq, fn: fn})
	return nil
}

// Advance moves the logical clock forward by deltaMS and fires, in
// deadline order (ties broken by schedule order), every task whose
// deadline is now at or before the new time.
func (e *LogicalExecutor) Advance(deltaMS uint64) {
	e.mu.Lock()
	e.now += deltaMS
	now := e.now
	var due []*task
	for e.queue.Len() > 0 && e.queue[0].deadline <= now {
		due = append(due, heap.Pop(&e.queue).(*task))
	}
	e.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	if len(due) > 0 {
		e.logger.Debugw("fired scheduled callbacks", "count", len(due), "now", now)
	}
}

// Now returns the current logical time.
func (e *LogicalExecutor) Now() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// Pending returns the number of callbacks still waiting to fire.
func (e *LogicalExecutor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}
