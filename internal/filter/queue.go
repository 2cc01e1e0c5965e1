package filter

import "sync"

// Queue is an unbounded FIFO of signals. Push never blocks on the consumer;
// the consumer waits on Ready and takes everything with Drain.
type Queue struct {
	mu    sync.Mutex
	items []Signal
	ready chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends s and wakes the consumer.
func (q *Queue) Push(s Signal) {
	q.mu.Lock()
	q.items = append(q.items, s)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready fires at least once after one or more pushes.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Drain removes and returns all queued signals in arrival order.
func (q *Queue) Drain() []Signal {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued signals.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
