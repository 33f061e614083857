package store

import "github.com/wbrown/janus-rdf/rdf"

// Event is a store lifecycle notification.
type Event interface {
	event()
}

// StoreCreatedEvent fires when a store is created.
type StoreCreatedEvent struct {
	Configuration string
}

// TripleAddedEvent fires after a successful insert.
type TripleAddedEvent struct {
	Triple  rdf.Triple
	Context rdf.Term
}

// TripleRemovedEvent fires per statement removed.
type TripleRemovedEvent struct {
	Triple  rdf.Triple
	Context rdf.Term
}

func (StoreCreatedEvent) event()  {}
func (TripleAddedEvent) event()   {}
func (TripleRemovedEvent) event() {}

// Handler receives dispatched events.
type Handler func(Event)

// Dispatcher fans events out to subscribed handlers, synchronously and in
// subscription order. The zero value is ready to use.
type Dispatcher struct {
	handlers []Handler
}

// Subscribe registers a handler.
func (d *Dispatcher) Subscribe(h Handler) {
	d.handlers = append(d.handlers, h)
}

// Dispatch delivers an event to every handler.
func (d *Dispatcher) Dispatch(e Event) {
	for _, h := range d.handlers {
		h(e)
	}
}
