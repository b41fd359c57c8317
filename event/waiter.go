package event

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// WaitResult classifies the outcome of a Waiter.Wait call.
type WaitResult int

const (
	WaitReady WaitResult = iota
	WaitTimeout
	WaitHangup
)

// Waiter multiplexes a set of Events, returning exactly one signalled
// index per call and round-robining across ready events on successive
// calls to avoid starving any one of them (§4.9). timeoutMs == -1 means
// wait indefinitely.
type Waiter struct {
	mu        sync.Mutex
	nextStart int
}

// NewWaiter returns an empty Waiter.
func NewWaiter() *Waiter { return &Waiter{} }

// Wait blocks until one of events is ready, timeoutMs elapses, or one of
// them hangs up. On a spurious wake (EINTR) it restarts with whatever
// timeout remains, per §4.9/§5.
func (w *Waiter) Wait(events []*Event, timeoutMs int) (int, WaitResult, error) {
	if len(events) == 0 {
		return -1, WaitTimeout, fmt.Errorf("event: Wait called with no events")
	}
	pfds := make([]unix.PollFd, len(events))
	for i, e := range events {
		pfds[i] = unix.PollFd{Fd: int32(e.fd().Fd()), Events: unix.POLLIN}
	}

	var deadline time.Time
	hasDeadline := timeoutMs >= 0
	if hasDeadline {
		deadline = time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)
	}

	for {
		remaining := -1
		if hasDeadline {
			remaining = int(time.Until(deadline) / time.Millisecond)
			if remaining < 0 {
				remaining = 0
			}
		}
		for i := range pfds {
			pfds[i].Revents = 0
		}
		n, err := unix.Poll(pfds, remaining)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return -1, WaitTimeout, fmt.Errorf("event: poll: %w", err)
		}
		if n == 0 {
			return -1, WaitTimeout, nil
		}

		w.mu.Lock()
		start := w.nextStart % len(pfds)
		w.mu.Unlock()

		for i := 0; i < len(pfds); i++ {
			idx := (start + i) % len(pfds)
			rev := pfds[idx].Revents
			if rev&(unix.POLLHUP|unix.POLLERR) != 0 {
				w.advance(idx, len(pfds))
				return idx, WaitHangup, nil
			}
			if rev&unix.POLLIN != 0 {
				w.advance(idx, len(pfds))
				return idx, WaitReady, nil
			}
		}
		// Every poll wake should match at least one fd; if not, the
		// syscall spuriously returned ready with no matching revents —
		// treat it the same as EINTR and restart.
	}
}

func (w *Waiter) advance(idx, n int) {
	w.mu.Lock()
	w.nextStart = (idx + 1) % n
	w.mu.Unlock()
}
