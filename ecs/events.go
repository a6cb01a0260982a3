package ecs

// Event is a frame-scoped notification. Data carries a typed payload
// owned by the producing package.
type Event struct {
	Type string
	Data any
}

// EventQueue is a FIFO of events pushed during the current tick. Consumer
// systems read Pending; the world clears the queue at the end of Update.
type EventQueue struct {
	items []Event
}

// Push appends an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Pending returns the events pushed so far this tick, in push order.
// Multiple systems may read the same events; none of them consume.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
