package rotary

import "sync/atomic"

// Queue is a bounded FIFO between the edge context and the application loop.
// Offer never blocks: when the queue is full the event is dropped and counted, the same
// tradeoff as a missed edge.
type Queue struct {
	ch      chan Event
	dropped atomic.Uint64
}

// NewQueue creates a queue holding at most size events.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Event, size)}
}

// Offer enqueues ev without blocking. Returns false if the event was dropped.
func (q *Queue) Offer(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// C returns the receive side for use in a select loop.
func (q *Queue) C() <-chan Event {
	return q.ch
}

// Drain delivers every event already queued to fn, in FIFO order, without waiting for
// more. Returns the number delivered.
func (q *Queue) Drain(fn func(Event)) int {
	n := 0
	for {
		select {
		case ev := <-q.ch:
			fn(ev)
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped returns how many events were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
