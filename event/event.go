// Package event implements the two waitable primitives from §4.9 (C9):
// a file-readable event backed by a descriptor owned elsewhere, and a
// user-signalable event backed by a self-pipe. Both are multiplexed by a
// Waiter with round-robin fairness.
package event

import (
	"fmt"
	"os"
	"sync"
)

// Event is something a Waiter can block on: either a caller-owned
// readable file descriptor, or a self-signalled manual-reset flag.
type Event struct {
	mu        sync.Mutex // guards signalled/registration per §5
	file      *os.File   // non-nil for a file-readable event
	pipeR     *os.File   // self-pipe read end, for user-signalable events
	pipeW     *os.File
	signalled bool
}

// NewFileEvent wraps an existing readable file descriptor (e.g. a
// subprocess's stdout) as an Event. The Event does not own f and never
// closes it.
func NewFileEvent(f *os.File) *Event {
	return &Event{file: f}
}

// NewManualResetEvent returns a user-signalable event backed by a
// self-pipe, matching the teacher corpus's common self-pipe trick for
// waking a poll/kqueue loop from another goroutine.
func NewManualResetEvent() (*Event, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("event: self-pipe: %w", err)
	}
	return &Event{pipeR: r, pipeW: w}, nil
}

// Set signals the event.
func (e *Event) Set() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file != nil {
		return fmt.Errorf("event: cannot Set a file-readable event")
	}
	if e.signalled {
		return nil
	}
	e.signalled = true
	_, err := e.pipeW.Write([]byte{1})
	return err
}

// Reset clears the event's signalled state.
func (e *Event) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file != nil {
		return nil // readability is driven by the OS, not by us
	}
	if !e.signalled {
		return nil
	}
	buf := make([]byte, 1)
	if _, err := e.pipeR.Read(buf); err != nil {
		return err
	}
	e.signalled = false
	return nil
}

// fd returns the descriptor a Waiter should poll for readability.
func (e *Event) fd() *os.File {
	if e.file != nil {
		return e.file
	}
	return e.pipeR
}

// Close releases any resources the event owns (the self-pipe). It never
// closes a caller-supplied file-readable descriptor.
func (e *Event) Close() error {
	if e.pipeW != nil {
		e.pipeW.Close()
	}
	if e.pipeR != nil {
		return e.pipeR.Close()
	}
	return nil
}
