package uciengine

import (
	"sync"

	"github.com/rookwing/chesscore/event"
)

// MessageQueue is a many-producer, single-consumer FIFO with an attached
// manual-reset event, so a single-threaded I/O loop can block on it
// alongside other waitable sources via event.Waiter (§4.9/§4.11).
type MessageQueue struct {
	mu    sync.Mutex
	items []interface{}
	evt   *event.Event
}

// NewMessageQueue returns an empty queue with a fresh manual-reset event.
func NewMessageQueue() (*MessageQueue, error) {
	evt, err := event.NewManualResetEvent()
	if err != nil {
		return nil, err
	}
	return &MessageQueue{evt: evt}, nil
}

// Event returns the queue's readiness event, signalled while non-empty.
func (q *MessageQueue) Event() *event.Event { return q.evt }

// Push appends msg and signals the queue's event. Safe for concurrent
// callers (multi-producer).
func (q *MessageQueue) Push(msg interface{}) {
	q.mu.Lock()
	q.items = append(q.items, msg)
	q.mu.Unlock()
	_ = q.evt.Set()
}

// Pop removes and returns the oldest message, resetting the event once the
// queue drains. Must be called by a single consumer.
func (q *MessageQueue) Pop() (interface{}, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	msg := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		_ = q.evt.Reset()
	}
	return msg, true
}

// DrainAll removes and returns every currently queued message, in order.
func (q *MessageQueue) DrainAll() []interface{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	_ = q.evt.Reset()
	return items
}
