package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventContactStarted is pushed by the physics system when two shapes begin
// touching. Data is a ContactStarted.
const EventContactStarted = "contact_started"

// ContactStarted names the two entities whose shapes began touching.
type ContactStarted struct {
	A Entity
	B Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Take removes and returns the events of one type, keeping the rest in order.
func (q *EventQueue) Take(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Event{}
	}
	q.items = kept
	return out
}
