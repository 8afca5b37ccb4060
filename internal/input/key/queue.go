package key

import "sync"

// Queue is a FIFO of key events pushed from the windowing framework's UI
// callbacks and drained by the render loop each tick. It is safe for one
// producer and one consumer.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in arrival order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
