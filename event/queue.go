// Package event implements the time-ordered queue of discrete synaptic
// events the cell integrator drains between fixed sub-steps. There is
// no priority-queue library anywhere in the retrieved example corpus,
// so this is built on the standard library's container/heap, the one
// ambient concern in this module carried on the standard library
// rather than a third-party dependency (see DESIGN.md).
package event

import "container/heap"

// Event is a single scheduled synaptic delivery. Mechanism is the
// index, in the integrator's mechanism list, of the point-process
// mechanism to dispatch to; -1 selects the integrator's single
// designated synapse mechanism (the common case, and the fast path
// kept for when only one synapse kind exists in the cell). Target is
// that mechanism's local target index, never a global CV.
type Event struct {
	Time      float64
	Mechanism int
	Target    int
	Weight    float64
}

// Queue is a min-heap of Events ordered by Time, with ties broken by
// (Target, Weight) for determinism across otherwise-equal events.
type Queue struct {
	h eventHeap
}

// NewQueue returns an empty event queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push inserts an event.
func (q *Queue) Push(e Event) {
	heap.Push(&q.h, e)
}

// Reset clears the queue. The teacher's own event-carrying structures
// do not clear themselves between runs; this queue does so explicitly
// so a caller re-using an integrator never sees stale events.
func (q *Queue) Reset() {
	q.h = q.h[:0]
}

// Len reports the number of pending events.
func (q *Queue) Len() int { return len(q.h) }

// PopIfBefore pops and returns the earliest event if its time is
// strictly less than t; otherwise it leaves the queue untouched and
// returns ok == false. This is an atomic test-and-pop: callers must
// not peek separately, since the queue gives no other way to inspect
// the earliest event without removing it.
func (q *Queue) PopIfBefore(t float64) (e Event, ok bool) {
	if len(q.h) == 0 {
		return Event{}, false
	}
	if q.h[0].Time >= t {
		return Event{}, false
	}
	return heap.Pop(&q.h).(Event), true
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	if h[i].Target != h[j].Target {
		return h[i].Target < h[j].Target
	}
	return h[i].Weight < h[j].Weight
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
