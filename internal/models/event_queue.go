package models

import (
	"container/heap"
)

// StreamEvent is one record of the merged output stream: a typed event
// payload tagged with the feed it belongs to. Seq is the position within the
// feed's emission order and breaks processing-time ties so merging stays
// deterministic.
type StreamEvent struct {
	Feed                string
	Seq                 int
	ProcessingTimestamp int64
	Payload             interface{}
}

// EventQueue merges the two feeds into a single arrival-ordered stream for
// the emitter. It is a min-heap keyed on (processing timestamp, feed, seq).
type EventQueue struct {
	events eventHeap
}

type eventHeap []*StreamEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].ProcessingTimestamp != h[j].ProcessingTimestamp {
		return h[i].ProcessingTimestamp < h[j].ProcessingTimestamp
	}
	if h[i].Feed != h[j].Feed {
		return h[i].Feed < h[j].Feed
	}
	return h[i].Seq < h[j].Seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*StreamEvent))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

// Enqueue adds a stream event to the queue.
func (eq *EventQueue) Enqueue(event *StreamEvent) {
	heap.Push(&eq.events, event)
}

// Dequeue removes and returns the earliest stream event, or nil when empty.
func (eq *EventQueue) Dequeue() *StreamEvent {
	if len(eq.events) == 0 {
		return nil
	}
	return heap.Pop(&eq.events).(*StreamEvent)
}

// Peek returns the earliest stream event without removing it.
func (eq *EventQueue) Peek() *StreamEvent {
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

// Len returns the number of queued events.
func (eq *EventQueue) Len() int {
	return len(eq.events)
}
