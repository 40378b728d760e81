package timer

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultInterval is the breathing timer tick
const DefaultInterval = time.Second

// Session is a running practice timer. Elapsed time only advances while
// the session is not paused. The ticker goroutine exits when Stop is
// called or the parent context is done, whichever happens first.
type Session struct {
	interval time.Duration
	cancel   context.CancelFunc
	ticks    chan time.Duration
	done     chan struct{}

	mu      sync.Mutex
	elapsed time.Duration
	paused  bool
	stopped bool
}

// Start begins a session that ticks every interval
func Start(ctx context.Context, interval time.Duration) *Session {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)

	s := &Session{
		interval: interval,
		cancel:   cancel,
		ticks:    make(chan time.Duration, 1),
		done:     make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *Session) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		close(s.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.paused {
				s.mu.Unlock()
				continue
			}
			s.elapsed += s.interval
			elapsed := s.elapsed
			s.mu.Unlock()

			// latest value wins; a slow reader never blocks the ticker
			select {
			case <-s.ticks:
			default:
			}
			s.ticks <- elapsed
		}
	}
}

// Ticks delivers the elapsed time after each counted tick
func (s *Session) Ticks() <-chan time.Duration {
	return s.ticks
}

// Done is closed once the ticker goroutine has exited
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Pause stops elapsed time from advancing
func (s *Session) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume continues a paused session
func (s *Session) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Toggle flips between paused and running and reports whether it is now paused
func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = !s.paused
	return s.paused
}

// Paused reports whether the session is paused
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Running reports whether the ticker goroutine is still alive
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped
}

// Elapsed returns the counted practice time
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Stop ends the session and waits for the ticker to be released.
// It is safe to call more than once.
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

// FormatElapsed renders d as m:ss
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
