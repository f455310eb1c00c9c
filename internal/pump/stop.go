package pump

import (
	"context"

	"go.uber.org/atomic"
)

// Stopper is the pump's stop signal.
//
// Stopped is a single atomic load, cheap enough to check on every poll.
// Stop may be called from any goroutine, typically a signal handler.
type Stopper struct {
	done atomic.Bool
}

// Stopped reports whether Stop has been called.
func (s *Stopper) Stopped() bool {
	return s.done.Load()
}

// Stop sets the stop flag. Safe to call multiple times.
func (s *Stopper) Stop() {
	s.done.Store(true)
}

// Reset clears the stop flag.
// Not safe to call concurrently with Stop.
func (s *Stopper) Reset() {
	s.done.Store(false)
}

// Bind makes ctx cancellation set the stop flag. The returned func detaches
// ctx again and reports whether it did so before ctx was done.
func (s *Stopper) Bind(ctx context.Context) (release func() bool) {
	return context.AfterFunc(ctx, s.Stop)
}
