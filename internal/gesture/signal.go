package gesture

import (
	"sync"

	"github.com/keyleap/keyleap/internal/geom"
)

// SignalKind enumerates detector-to-navigator messages.
type SignalKind int

const (
	// SignalShow asks the navigator to show the overlay.
	SignalShow SignalKind = iota
)

// Signal is sent exactly once per completed gesture. Cursor carries the
// pointer position at tap time when it could be read; nil otherwise.
type Signal struct {
	Kind   SignalKind
	Cursor *geom.Point
}

// Queue is an unbounded FIFO of signals with a single producer (the
// detector goroutine) and a single consumer (the render loop). The producer
// never blocks; the consumer polls non-blockingly.
type Queue struct {
	mu      sync.Mutex
	signals []Signal
}

// NewQueue returns an empty signal queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a signal.
func (q *Queue) Push(s Signal) {
	q.mu.Lock()
	q.signals = append(q.signals, s)
	q.mu.Unlock()
}

// TryPop removes and returns the oldest signal, if any.
func (q *Queue) TryPop() (Signal, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.signals) == 0 {
		return Signal{}, false
	}
	s := q.signals[0]
	q.signals = q.signals[1:]
	if len(q.signals) == 0 {
		q.signals = nil
	}
	return s, true
}

// Len returns the number of queued signals.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.signals)
}
