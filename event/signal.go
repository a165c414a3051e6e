// Package event provides the invalidation signals controls hand to the
// host. The host subscribes a redraw callback to every signal returned
// by Control.InvalidateEvents and repaints whenever one fires.
//
// Signals are unsynchronized; emission and subscription both happen on
// the host's event-loop goroutine.
package event

// Signal is a named event source with synchronous fan-out.
type Signal struct {
	// Name identifies the signal in diagnostics ("buffer.text-changed").
	Name string

	nextID   int
	handlers map[int]func()
}

// NewSignal creates a signal with the given diagnostic name.
func NewSignal(name string) *Signal {
	return &Signal{Name: name}
}

// Subscribe registers fn and returns a function that removes it again.
func (s *Signal) Subscribe(fn func()) (unsubscribe func()) {
	if s.handlers == nil {
		s.handlers = make(map[int]func())
	}
	id := s.nextID
	s.nextID++
	s.handlers[id] = fn
	return func() {
		delete(s.handlers, id)
	}
}

// Emit invokes every subscribed handler synchronously.
func (s *Signal) Emit() {
	for _, fn := range s.handlers {
		fn()
	}
}

// HandlerCount returns the number of active subscriptions.
func (s *Signal) HandlerCount() int {
	return len(s.handlers)
}
