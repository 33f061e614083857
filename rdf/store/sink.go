package store

import "github.com/wbrown/janus-rdf/rdf"

// Sink adapts a Store to the parser's sink interface, inserting every
// parsed triple under a fixed context.
type Sink struct {
	Store   Store
	Context rdf.Term // nil targets the default graph
	Count   int
}

// NewSink creates a parser sink feeding s under context.
func NewSink(s Store, context rdf.Term) *Sink {
	return &Sink{Store: s, Context: context}
}

// Triple inserts one parsed triple.
func (s *Sink) Triple(subject, predicate, object rdf.Term) error {
	t := rdf.Triple{Subject: subject, Predicate: predicate, Object: object}
	if err := s.Store.Add(t, s.Context, false); err != nil {
		return err
	}
	s.Count++
	return nil
}
