// Package latch provides a one-shot broadcast flag.
package latch

import "sync"

// Latch is a flag, which can be set exactly once and never reset. Setting it
// releases every current and future waiter at once. The zero value is ready
// to use.
type Latch struct {
	mu  sync.Mutex
	ch  chan struct{}
	set bool
}

// Set raises the flag. Calls after the first one are no-ops.
func (l *Latch) Set() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.set {
		return
	}

	l.set = true
	if l.ch != nil {
		close(l.ch)
	}
}

// IsSet reports whether the flag has been raised.
func (l *Latch) IsSet() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.set
}

// Done returns a channel, which is closed once the flag is raised. The same
// channel is returned on every call.
func (l *Latch) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ch == nil {
		l.ch = make(chan struct{})
		if l.set {
			close(l.ch)
		}
	}

	return l.ch
}

// Wait blocks until the flag is raised.
func (l *Latch) Wait() {
	<-l.Done()
}
