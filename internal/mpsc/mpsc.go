// Package mpsc provides an unbounded multi-producer single-consumer queue
// with blocking pops and graceful close-then-drain semantics.
package mpsc

import (
	"sync"

	eq "github.com/eapache/queue"
)

// Queue is an unbounded FIFO queue. Any number of goroutines may Push;
// a single consumer goroutine calls Pop. After Close, pushes are dropped
// and Pop drains the remaining elements before reporting closure.
type Queue[T any] struct {
	mu     sync.Mutex
	notify *sync.Cond
	items  *eq.Queue
	closed bool
}

func New[T any]() *Queue[T] {
	q := &Queue[T]{items: eq.New()}
	q.notify = sync.NewCond(&q.mu)
	return q
}

// Push appends v and reports whether it was accepted. It returns false
// once the queue is closed, making held references safe to push through
// at any time.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items.Add(v)
	q.notify.Signal()
	return true
}

// Pop blocks until an element is available and returns it. After Close,
// it keeps returning the remaining elements in order; once the queue is
// empty it returns the zero value and false.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.Length() == 0 {
		if q.closed {
			var zero T
			return zero, false
		}
		q.notify.Wait()
	}
	return q.items.Remove().(T), true
}

// Close stops accepting new elements. Elements pushed before Close stay
// available to Pop. Close is idempotent.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.notify.Broadcast()
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}
