package tasks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Queue is an unbounded task backlog feeding a buffered output channel
// through a background broker.
type Queue struct {
	mu           sync.Mutex
	backlog      []Task
	notify       chan struct{}
	out          chan Task
	shuttingDown atomic.Bool

	enqueued  atomic.Uint64
	processed atomic.Uint64
}

func NewQueue(outBuffer int) *Queue {
	if outBuffer <= 0 {
		outBuffer = 64
	}
	return &Queue{
		notify: make(chan struct{}, 1),
		out:    make(chan Task, outBuffer),
	}
}

// Start runs the broker loop until ctx is done.
func (q *Queue) Start(ctx context.Context) {
	go q.broker(ctx)
}

func (q *Queue) broker(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		q.flushOnce()
		select {
		case <-ctx.Done():
			return
		case <-q.notify:
		case <-ticker.C:
		}
	}
}

// flushOnce moves as much of the backlog as fits into the output buffer.
func (q *Queue) flushOnce() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.backlog) > 0 && len(q.out) < cap(q.out) {
		item := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.out <- item
	}
}

func (q *Queue) Enqueue(task Task) bool {
	if q.shuttingDown.Load() {
		return false
	}
	q.push(task)
	return true
}

// requeue puts a failed task back even after intake was closed so that a
// draining shutdown still retries it.
func (q *Queue) requeue(task Task) {
	q.push(task)
}

func (q *Queue) push(task Task) {
	q.enqueued.Add(1)
	q.mu.Lock()
	q.backlog = append(q.backlog, task)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *Queue) Out() <-chan Task { return q.out }

func (q *Queue) BacklogSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}

// Depth returns backlog plus buffered output items.
func (q *Queue) Depth() int {
	q.mu.Lock()
	bl := len(q.backlog)
	q.mu.Unlock()
	return bl + len(q.out)
}

func (q *Queue) MarkProcessed() { q.processed.Add(1) }

func (q *Queue) Metrics() (enq, proc uint64, backlog, depth int) {
	enq = q.enqueued.Load()
	proc = q.processed.Load()
	backlog = q.BacklogSize()
	depth = q.Depth()
	return enq, proc, backlog, depth
}

// CloseIntake rejects every later Enqueue.
func (q *Queue) CloseIntake() { q.shuttingDown.Store(true) }

func (q *Queue) IsShuttingDown() bool { return q.shuttingDown.Load() }
