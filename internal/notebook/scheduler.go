package notebook

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last edit before an
// evaluation round is issued.
const DefaultDebounce = 250 * time.Millisecond

// Scheduler coalesces bursts of edits into a single evaluation per quiet
// period. Every Trigger restarts the delay timer; when it elapses
// uninterrupted, fire is called once with the divergence index of the most
// recent edit in the burst. Each edit commits its content before triggering,
// so that index is always relative to the immediately preceding committed
// state.
type Scheduler struct {
	delay time.Duration
	fire  func(startIndex int)

	mu    sync.Mutex
	timer *time.Timer
	start int
}

func NewScheduler(delay time.Duration, fire func(startIndex int)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{delay: delay, fire: fire}
}

// Trigger records the divergence index of an edit and (re)starts the delay
// timer. fire runs on the timer goroutine.
func (s *Scheduler) Trigger(startIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start = startIndex
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		idx := s.start
		s.mu.Unlock()
		s.fire(idx)
	})
}

// Stop cancels any pending evaluation. A round already handed to fire is not
// affected.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
