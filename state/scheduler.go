package state

import "sync"

// Scheduler dispatches subscription callbacks. Bindings use a scheduler to
// move re-renders off the mutating call stack, typically onto a frame queue.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(func())

// Schedule dispatches fn using the wrapped function.
func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// Direct runs callbacks immediately in the caller goroutine, the same as
// subscribing with a nil scheduler.
var Direct Scheduler = SchedulerFunc(func(fn func()) {
	if fn != nil {
		fn()
	}
})

// Async runs callbacks in a new goroutine.
type Async struct{}

// Schedule dispatches fn asynchronously.
func (Async) Schedule(fn func()) {
	if fn == nil {
		return
	}
	go fn()
}

// Queue batches callbacks for explicit flushing, in arrival order. It is the
// cooperative dispatch loop for single-threaded consumers: mutate notifiers
// freely, then Flush once per frame.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule enqueues a callback for later flushing.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Flush executes queued callbacks and returns the count. Callbacks enqueued
// during a flush run on the next one.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Len returns the number of callbacks waiting to be flushed.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	n := len(q.pending)
	q.mu.Unlock()
	return n
}
