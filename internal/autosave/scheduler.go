// Package autosave signals when the active map should be saved and when the
// cache should be flushed. The receiver does the actual work on its own
// goroutine.
package autosave

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

type Scheduler struct {
	// Ticks receives once per interval
	Ticks <-chan struct{}
	// Flushes receives once changes have settled
	Flushes <-chan struct{}

	ticks   chan struct{}
	flushes chan struct{}

	debounced func(func())

	mu         sync.Mutex
	interval   time.Duration
	generation uint64
	timer      *time.Timer
	stopped    bool
}

// New returns a scheduler that is not armed yet. An interval of 0 never
// ticks.
func New(interval, settle time.Duration) *Scheduler {
	ticks := make(chan struct{}, 1)
	flushes := make(chan struct{}, 1)
	return &Scheduler{
		Ticks:     ticks,
		Flushes:   flushes,
		ticks:     ticks,
		flushes:   flushes,
		debounced: debounce.New(settle),
		interval:  interval,
	}
}

// Rearm restarts the interval. Ticks from earlier arms are dropped.
func (s *Scheduler) Rearm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arm()
}

func (s *Scheduler) SetInterval(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = interval
	s.arm()
}

// arm must be called with mu held.
func (s *Scheduler) arm() {
	s.generation++
	if nil != s.timer {
		s.timer.Stop()
		s.timer = nil
	}
	if s.stopped || s.interval <= 0 {
		return
	}
	gen := s.generation
	s.timer = time.AfterFunc(s.interval, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.generation || s.stopped {
		s.mu.Unlock()
		return
	}
	s.timer = time.AfterFunc(s.interval, func() { s.fire(gen) })
	s.mu.Unlock()
	TrySend(s.ticks, struct{}{})
}

// Touch records a change. Flushes receives once no change has happened for
// the settle time.
func (s *Scheduler) Touch() {
	s.debounced(func() {
		s.mu.Lock()
		stopped := s.stopped
		s.mu.Unlock()
		if !stopped {
			TrySend(s.flushes, struct{}{})
		}
	})
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.arm()
}

// TrySend is a non-blocking send. It reports whether v was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
