package store

import (
	"sync"

	"github.com/wbrown/janus-rdf/rdf"
)

// MemoryStore is the in-memory reference backend: context-aware and
// formula-aware, no transactions (Commit and Rollback are no-ops). It guards
// its maps with an RWMutex; queries snapshot their results, so iterators
// stay valid across later writes.
type MemoryStore struct {
	Base
	mu       sync.RWMutex
	contexts map[string]*memoryGraph
	open     bool
}

// memoryGraph holds one context's statements, keyed by the triple's
// canonical text.
type memoryGraph struct {
	id         rdf.Term // nil for the default graph
	statements map[string]memoryEntry
}

type memoryEntry struct {
	triple rdf.Triple
	quoted bool
}

// NewMemoryStore creates an open, empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contexts: map[string]*memoryGraph{},
		open:     true,
	}
}

func (s *MemoryStore) Capabilities() Capabilities {
	return Capabilities{ContextAware: true, FormulaAware: true}
}

// Open accepts any configuration; the store lives entirely in memory.
func (s *MemoryStore) Open(configuration string, create bool) (OpenState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contexts == nil {
		s.contexts = map[string]*memoryGraph{}
	}
	s.open = true
	return StoreValid, nil
}

func (s *MemoryStore) Close(commitPending bool) error {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
	return nil
}

// Destroy drops all statements.
func (s *MemoryStore) Destroy(configuration string) error {
	s.mu.Lock()
	s.contexts = map[string]*memoryGraph{}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Add(t rdf.Triple, context rdf.Term, quoted bool) error {
	if err := checkAdd(s.Capabilities(), context, quoted); err != nil {
		return err
	}

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	g := s.graphFor(context)
	g.statements[tripleKey(t)] = memoryEntry{triple: t, quoted: quoted}
	s.mu.Unlock()

	s.Dispatch(TripleAddedEvent{Triple: t, Context: context})
	return nil
}

func (s *MemoryStore) AddBatch(statements []rdf.Statement) error {
	return addBatch(s, statements)
}

func (s *MemoryStore) Remove(p Pattern, context rdf.Term) error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	var removed []rdf.Statement
	for _, g := range s.matchingGraphs(context) {
		for key, entry := range g.statements {
			if p.Matches(entry.triple) {
				delete(g.statements, key)
				removed = append(removed, statementOf(entry.triple, g.id))
			}
		}
	}
	s.mu.Unlock()

	for _, st := range removed {
		s.Dispatch(TripleRemovedEvent{Triple: st.Triple(), Context: st.Context})
	}
	return nil
}

// Triples matches the pattern within one context, or conjunctively across
// all contexts when context is nil. Conjunctive queries exclude quoted
// statements; naming a formula's context explicitly includes them.
func (s *MemoryStore) Triples(p Pattern, context rdf.Term) (Iterator, error) {
	conjunctive := context == nil

	s.mu.RLock()
	if !s.open {
		s.mu.RUnlock()
		return nil, ErrNotOpen
	}
	var matched []rdf.Statement
	for _, g := range s.matchingGraphs(context) {
		for _, entry := range g.statements {
			if conjunctive && entry.quoted {
				continue
			}
			if p.Matches(entry.triple) {
				matched = append(matched, statementOf(entry.triple, g.id))
			}
		}
	}
	s.mu.RUnlock()

	return newSliceIterator(matched), nil
}

func (s *MemoryStore) TriplesChoices(p ChoicePattern, context rdf.Term) (Iterator, error) {
	return triplesChoices(s, p, context)
}

func (s *MemoryStore) Len(context rdf.Term) (int, error) {
	conjunctive := context == nil

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return 0, ErrNotOpen
	}
	count := 0
	for _, g := range s.matchingGraphs(context) {
		if !conjunctive {
			count += len(g.statements)
			continue
		}
		for _, entry := range g.statements {
			if !entry.quoted {
				count++
			}
		}
	}
	return count, nil
}

func (s *MemoryStore) Contexts(t *rdf.Triple) (TermIterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, ErrNotOpen
	}
	var out []rdf.Term
	for _, g := range s.contexts {
		if g.id == nil {
			continue
		}
		if t != nil {
			if _, ok := g.statements[tripleKey(*t)]; !ok {
				continue
			}
		}
		out = append(out, g.id)
	}
	return newTermSliceIterator(out), nil
}

// graphFor returns the graph for a context, creating it on first use.
// Callers hold the write lock.
func (s *MemoryStore) graphFor(context rdf.Term) *memoryGraph {
	key := contextKey(context)
	g, ok := s.contexts[key]
	if !ok {
		g = &memoryGraph{id: context, statements: map[string]memoryEntry{}}
		s.contexts[key] = g
	}
	return g
}

// matchingGraphs returns the graphs a query or removal touches: one graph
// for a named context, every graph for nil. Callers hold a lock.
func (s *MemoryStore) matchingGraphs(context rdf.Term) []*memoryGraph {
	if context != nil {
		if g, ok := s.contexts[contextKey(context)]; ok {
			return []*memoryGraph{g}
		}
		return nil
	}
	out := make([]*memoryGraph, 0, len(s.contexts))
	for _, g := range s.contexts {
		out = append(out, g)
	}
	return out
}

func statementOf(t rdf.Triple, context rdf.Term) rdf.Statement {
	return rdf.Statement{
		Subject:   t.Subject,
		Predicate: t.Predicate,
		Object:    t.Object,
		Context:   context,
	}
}

func tripleKey(t rdf.Triple) string {
	return t.Subject.N3() + " " + t.Predicate.N3() + " " + t.Object.N3()
}

func contextKey(context rdf.Term) string {
	if context == nil {
		return ""
	}
	return context.N3()
}
