package event

// Source is the capability of an entity to accumulate domain events it has
// raised. The unit of work reads the pending events once per execution and
// clears them in a guaranteed cleanup step; it never modifies their contents.
type Source interface {
	// Events returns all uncommitted domain events in raise order.
	Events() []Event
	// ClearEvents clears all domain events after dispatch.
	ClearEvents()
}

// Compile-time interface check
var _ Source = (*Recorder)(nil)

// Recorder is an embeddable event accumulator. Aggregates embed it to gain
// the Source capability without hand-rolling the bookkeeping.
type Recorder struct {
	events []Event
}

// Raise appends an event to the pending sequence, preserving raise order.
func (r *Recorder) Raise(e Event) {
	r.events = append(r.events, e)
}

// Events returns all uncommitted domain events.
func (r *Recorder) Events() []Event {
	return r.events
}

// ClearEvents clears all pending events. Idempotent.
func (r *Recorder) ClearEvents() {
	r.events = nil
}
