// Package frame provides animation-frame scheduling for scroll animations.
//
// A Scheduler hands out one-shot frame requests. Requests made while frames
// are being delivered run on the following frame, and a cancelled request is
// never delivered. Queue implements the bookkeeping; Loop drives a Queue from
// a wall-clock ticker and Manual drives it from a clock advanced by tests.
package frame

import (
	"slices"
	"sync"
	"time"
)

// Func is a frame callback. now is the scheduler clock at delivery time.
type Func func(now time.Duration)

// ID identifies an outstanding frame request. The zero ID is never issued.
type ID uint64

// Scheduler requests and revokes frame callbacks.
type Scheduler interface {
	// Request schedules fn to run once on the next frame.
	Request(fn Func) ID
	// Cancel revokes a pending request. Unknown or delivered IDs are ignored.
	Cancel(id ID)
	// Now returns the scheduler clock.
	Now() time.Duration
}

// Queue holds pending frame requests in request order.
// It is safe for concurrent use; callbacks run without the lock held.
type Queue struct {
	mu      sync.Mutex
	next    ID
	pending map[ID]Func
	order   []ID
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[ID]Func)}
}

// Request adds fn to the queue and returns its ID.
func (q *Queue) Request(fn Func) ID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	id := q.next
	q.pending[id] = fn
	q.order = append(q.order, id)
	return id
}

// Cancel removes a pending request.
func (q *Queue) Cancel(id ID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.pending, id)
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Flush delivers every request that was pending when Flush was called and
// returns how many callbacks ran. Requests made by those callbacks stay
// queued for the next flush. A request cancelled mid-flush is skipped.
func (q *Queue) Flush(now time.Duration) int {
	q.mu.Lock()
	batch := q.order
	q.order = nil
	q.mu.Unlock()

	// If a callback panics, the rest of the batch goes back to the front of
	// the queue.
	seen := 0
	defer func() {
		if seen < len(batch) {
			q.mu.Lock()
			q.order = append(slices.Clip(batch[seen+1:]), q.order...)
			q.mu.Unlock()
		}
	}()

	ran := 0
	for _, id := range batch {
		q.mu.Lock()
		fn, ok := q.pending[id]
		delete(q.pending, id)
		q.mu.Unlock()

		if ok {
			fn(now)
			ran++
		}
		seen++
	}
	return ran
}
