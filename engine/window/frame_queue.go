package window

import (
	"sync"
)

// frameQueue holds callbacks registered for the next frame. Callbacks registered while a
// batch is running land in the following batch.
type frameQueue struct {
	mu      sync.Mutex
	pending []func()
}

// push registers fn for the next batch.
//
// Parameters:
//   - fn: the callback to queue
func (q *frameQueue) push(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// empty reports whether nothing is queued.
//
// Returns:
//   - bool: true if no callback is waiting
func (q *frameQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) == 0
}

// run executes the callbacks queued before the call, each exactly once.
//
// Returns:
//   - int: the number of callbacks run
func (q *frameQueue) run() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
