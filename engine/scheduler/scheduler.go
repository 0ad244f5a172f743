// Package scheduler coalesces render requests into at most one draw per display frame.
package scheduler

import (
	"sync"
)

// FrameClock schedules a callback for the next display refresh. Each registered callback
// must eventually run exactly once.
type FrameClock interface {
	// OnNextFrame registers fn to run on the next frame.
	//
	// Parameters:
	//   - fn: the callback to run
	OnNextFrame(fn func())
}

// Stats counts render requests against the draws they produced.
type Stats struct {
	Requested uint64
	Drawn     uint64
}

type schedulerImpl struct {
	mu *sync.Mutex

	clock FrameClock
	draw  func()

	pending bool
	stats   Stats
}

// Scheduler defines the interface for render request coalescing.
type Scheduler interface {
	// RequestRender asks for a draw on the next frame. Calls made while a frame is already
	// pending are absorbed by that frame.
	RequestRender()

	// Pending reports whether a frame callback is scheduled and has not fired yet.
	//
	// Returns:
	//   - bool: true if a draw is pending
	Pending() bool

	// Stats returns the request and draw counters.
	//
	// Returns:
	//   - Stats: the current counters
	Stats() Stats
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a new Scheduler that runs draw from clock callbacks.
// It panics if clock or draw is nil.
//
// Parameters:
//   - clock: the frame clock used to schedule draws
//   - draw: the recompute-and-draw step
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler(clock FrameClock, draw func()) Scheduler {
	if clock == nil || draw == nil {
		panic("scheduler: NewScheduler requires a frame clock and a draw func")
	}
	return &schedulerImpl{
		mu:    &sync.Mutex{},
		clock: clock,
		draw:  draw,
	}
}

func (s *schedulerImpl) RequestRender() {
	s.mu.Lock()
	s.stats.Requested++
	if s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()

	s.clock.OnNextFrame(s.frame)
}

func (s *schedulerImpl) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

func (s *schedulerImpl) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// frame is the clock callback. The pending flag is cleared before drawing so a request
// made from inside draw schedules a fresh frame.
func (s *schedulerImpl) frame() {
	s.mu.Lock()
	s.pending = false
	s.stats.Drawn++
	s.mu.Unlock()

	s.draw()
}
