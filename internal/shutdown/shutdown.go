// Package shutdown provides the process-wide shutdown signal shared by the
// transport listeners, and completion tracking so a supervisor can observe
// when every holder has fully stopped.
package shutdown

import (
	"context"
	"sync"
)

// Shutdown is a broadcast notification created once at startup. Trigger may
// be called any number of times from any goroutine; every receiver observes
// the signal exactly once.
type Shutdown struct {
	once sync.Once
	ch   chan struct{}
}

// New creates an untriggered shutdown signal.
func New() *Shutdown {
	return &Shutdown{ch: make(chan struct{})}
}

// Trigger fires the signal. Safe for repeated calls.
func (s *Shutdown) Trigger() {
	s.once.Do(func() { close(s.ch) })
}

// Done returns a channel closed when the signal fires. Each listener selects
// on its own receive; a close broadcast wakes all of them.
func (s *Shutdown) Done() <-chan struct{} {
	return s.ch
}

// Triggered reports whether the signal has fired.
func (s *Shutdown) Triggered() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// Tracker accounts for components that must finish before the process exits.
// Each component holds a Token for its lifetime and releases it on stop.
type Tracker struct {
	wg sync.WaitGroup
}

// Token registers a new component with the tracker.
func (t *Tracker) Token() *Token {
	t.wg.Add(1)
	return &Token{wg: &t.wg}
}

// Wait blocks until every token is released or ctx is cancelled.
func (t *Tracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Token marks one component as still running. Release is idempotent.
type Token struct {
	once sync.Once
	wg   *sync.WaitGroup
}

// Release marks the component as fully stopped.
func (tk *Token) Release() {
	tk.once.Do(tk.wg.Done)
}
