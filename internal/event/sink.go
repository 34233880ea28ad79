package event

import (
	"errors"
	"sync"
)

// Sink accepts events from background runs. Implementations must be safe for
// use from multiple goroutines.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(Event)

// Emit calls f(e)
func (f SinkFunc) Emit(e Event) {
	f(e)
}

// Discard drops every event
var Discard Sink = SinkFunc(func(Event) {})

// ErrQueueClosed is returned by TryEmit after Close
var ErrQueueClosed = errors.New("event queue closed")

// DefaultQueueSize is the buffer used by NewQueue when size <= 0
const DefaultQueueSize = 256

// Queue is a buffered, multi-writer single-reader sink. Emit blocks while the
// buffer is full, so no event is ever dropped; the UI drains Events().
type Queue struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
}

// NewQueue creates a queue with the given buffer size
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

// Emit posts an event. Events emitted after Close are discarded.
func (q *Queue) Emit(e Event) {
	_ = q.TryEmit(e)
}

// TryEmit posts an event and reports ErrQueueClosed after Close
func (q *Queue) TryEmit(e Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.ch <- e
	return nil
}

// Events returns the receive side for the single reader
func (q *Queue) Events() <-chan Event {
	return q.ch
}

// Close stops accepting events and closes the channel once pending writers return
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Fanout forwards every event to all sinks in order
type Fanout []Sink

// Emit forwards e to each sink
func (f Fanout) Emit(e Event) {
	for _, s := range f {
		if s != nil {
			s.Emit(e)
		}
	}
}
