package midi

import (
	"cmp"
	"slices"
	"sort"
	"sync"
)

// EventQueue holds events ordered by frame. Events with equal frames keep
// their insertion order.
type EventQueue struct {
	events []Event
	mu     sync.RWMutex
	sorted bool
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
	q.sorted = false
}

func (q *EventQueue) AddMultiple(events []Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	q.sorted = false
}

// ensureSorted must be called without holding the lock.
func (q *EventQueue) ensureSorted() {
	q.mu.RLock()
	sorted := q.sorted
	q.mu.RUnlock()
	if sorted {
		return
	}

	q.mu.Lock()
	if !q.sorted {
		q.sortEvents()
	}
	q.mu.Unlock()
}

// AppendRange appends the events with startFrame <= frame < endFrame to dst
// and returns the extended slice.
func (q *EventQueue) AppendRange(dst []Event, startFrame, endFrame int64) []Event {
	q.ensureSorted()

	q.mu.RLock()
	defer q.mu.RUnlock()

	startIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Frame() >= startFrame
	})
	for i := startIdx; i < len(q.events) && q.events[i].Frame() < endFrame; i++ {
		dst = append(dst, q.events[i])
	}
	return dst
}

// LastFrame returns the frame of the latest event, or -1 when empty.
func (q *EventQueue) LastFrame() int64 {
	q.ensureSorted()

	q.mu.RLock()
	defer q.mu.RUnlock()

	if len(q.events) == 0 {
		return -1
	}
	return q.events[len(q.events)-1].Frame()
}

func (q *EventQueue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.events)
}

func (q *EventQueue) IsEmpty() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.events) == 0
}

func (q *EventQueue) sortEvents() {
	slices.SortStableFunc(q.events, func(a, b Event) int {
		return cmp.Compare(a.Frame(), b.Frame())
	})
	q.sorted = true
}
