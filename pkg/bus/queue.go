package bus

import "github.com/aretw0/autocore/pkg/domain"

// queue is an unbounded FIFO of pending events for one subscriber.
type queue struct {
	events []domain.Event
}

func (q *queue) push(e domain.Event) {
	q.events = append(q.events, e)
}

func (q *queue) pop() (domain.Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	// Release the slot so the backing array does not pin the event.
	q.events[0] = nil
	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}
	return e, true
}

func (q *queue) drain() []domain.Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]domain.Event, len(q.events))
	copy(out, q.events)
	clear(q.events)
	q.events = q.events[:0]
	return out
}

func (q *queue) len() int {
	return len(q.events)
}
