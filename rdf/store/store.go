// Package store defines the triple-store contract that parsed RDF flows
// into, plus two backends honoring it: an in-memory formula-aware store and
// a BadgerDB-backed persistent store.
package store

import (
	"errors"

	"github.com/wbrown/janus-rdf/rdf"
)

// Contract violations. These are always hard failures, never warnings.
var (
	ErrQuotedWithoutContext  = errors.New("quoted statement requires a context")
	ErrQuotedNotFormulaAware = errors.New("store is not formula-aware, cannot hold quoted statements")
	ErrNilContextInBatch     = errors.New("batch add requires a context on every statement")
	ErrMultipleChoiceSlots   = errors.New("at most one pattern slot may hold alternatives")
	ErrNotOpen               = errors.New("store is not open")
)

// Capabilities are fixed per store implementation; a zero value declares
// none of them.
type Capabilities struct {
	// ContextAware stores partition statements into named sub-graphs.
	ContextAware bool
	// FormulaAware stores distinguish asserted from quoted (hypothetical)
	// statements, Notation3 style.
	FormulaAware bool
	// TransactionAware stores give Commit and Rollback real semantics.
	TransactionAware bool
	// BatchUnification stores can answer list-valued pattern queries
	// natively rather than by decomposition.
	BatchUnification bool
}

// OpenState is the outcome of opening a store.
type OpenState int

const (
	StoreUnknown OpenState = iota
	StoreValid
	StoreCorrupted
	NoStore
)

func (s OpenState) String() string {
	switch s {
	case StoreValid:
		return "valid"
	case StoreCorrupted:
		return "corrupted"
	case NoStore:
		return "no store"
	default:
		return "unknown"
	}
}

// Pattern is a triple pattern. A nil slot is a wildcard matching every term
// in that position.
type Pattern struct {
	Subject   rdf.Term
	Predicate rdf.Term
	Object    rdf.Term
}

// Matches reports whether the pattern's bound slots all equal the triple's.
func (p Pattern) Matches(t rdf.Triple) bool {
	if p.Subject != nil && !p.Subject.Equal(t.Subject) {
		return false
	}
	if p.Predicate != nil && !p.Predicate.Equal(t.Predicate) {
		return false
	}
	if p.Object != nil && !p.Object.Equal(t.Object) {
		return false
	}
	return true
}

// Store is the abstract triple-store contract. A nil context argument means
// the default graph for writes and a conjunctive query (all contexts, quoted
// statements excluded) for reads.
//
// The contract says nothing about a store's internal locking; each backend
// defines its own discipline. Commit and Rollback must be safe to call on
// any store, as no-ops when the backend keeps no transaction log.
type Store interface {
	Capabilities() Capabilities

	// Open opens the store described by the configuration string, creating
	// it first when create is set and it does not exist.
	Open(configuration string, create bool) (OpenState, error)
	// Close closes the store, committing any pending transaction first
	// when commitPending is set.
	Close(commitPending bool) error
	// Create creates the store described by the configuration string and
	// fires a StoreCreatedEvent.
	Create(configuration string) error
	// Destroy removes the store described by the configuration string.
	Destroy(configuration string) error

	// Add inserts one triple. Quoted inserts require a context and a
	// formula-aware store; violating either is an error regardless of
	// capability flags. Fires a TripleAddedEvent on success.
	Add(t rdf.Triple, context rdf.Term, quoted bool) error
	// AddBatch inserts statements in order. Every statement must carry a
	// context; this operation never falls back to the default graph.
	AddBatch(statements []rdf.Statement) error
	// Remove deletes all statements matching the pattern, firing a
	// TripleRemovedEvent per deletion.
	Remove(p Pattern, context rdf.Term) error

	// Triples returns a lazy iterator over statements matching the
	// pattern. The iterator is bound to the query's lifetime; callers
	// must Close it.
	Triples(p Pattern, context rdf.Term) (Iterator, error)
	// TriplesChoices answers a pattern where exactly one slot carries a
	// list of alternatives, producing the union of the per-alternative
	// queries in list order.
	TriplesChoices(p ChoicePattern, context rdf.Term) (Iterator, error)
	// Len counts asserted (non-quoted) statements, or the statements of
	// one context/formula when context is non-nil.
	Len(context rdf.Term) (int, error)
	// Contexts iterates all context identifiers, or only those containing
	// the given triple.
	Contexts(t *rdf.Triple) (TermIterator, error)

	// Commit and Rollback end the current transaction. No-ops on
	// non-transactional stores.
	Commit() error
	Rollback() error

	// Subscribe registers a handler for lifecycle events.
	Subscribe(h Handler)

	// Bind associates a prefix with a namespace IRI for serialization,
	// replacing any existing binding in either direction.
	Bind(prefix string, namespace rdf.IRI)
	// Prefix returns the prefix bound to a namespace.
	Prefix(namespace rdf.IRI) (string, bool)
	// Namespace returns the namespace bound to a prefix.
	Namespace(prefix string) (rdf.IRI, bool)
	// Namespaces lists every binding, ordered by prefix.
	Namespaces() []PrefixBinding
}

// Base carries the pieces every backend shares: the event dispatcher, the
// prefix registry, and no-op lifecycle and transaction defaults. Embed it
// and override what the backend actually supports.
type Base struct {
	dispatcher Dispatcher
	namespaces prefixRegistry
}

func (b *Base) Capabilities() Capabilities { return Capabilities{} }

func (b *Base) Open(configuration string, create bool) (OpenState, error) {
	return StoreUnknown, nil
}

func (b *Base) Close(commitPending bool) error { return nil }

// Create fires the StoreCreatedEvent; backends doing real work call it
// after theirs succeeds.
func (b *Base) Create(configuration string) error {
	b.dispatcher.Dispatch(StoreCreatedEvent{Configuration: configuration})
	return nil
}

func (b *Base) Destroy(configuration string) error { return nil }

func (b *Base) Commit() error { return nil }

func (b *Base) Rollback() error { return nil }

func (b *Base) Subscribe(h Handler) { b.dispatcher.Subscribe(h) }

func (b *Base) Bind(prefix string, namespace rdf.IRI) { b.namespaces.bind(prefix, namespace) }

func (b *Base) Prefix(namespace rdf.IRI) (string, bool) { return b.namespaces.prefix(namespace) }

func (b *Base) Namespace(prefix string) (rdf.IRI, bool) { return b.namespaces.namespace(prefix) }

func (b *Base) Namespaces() []PrefixBinding { return b.namespaces.all() }

// Dispatch exposes the dispatcher to the embedding backend.
func (b *Base) Dispatch(e Event) { b.dispatcher.Dispatch(e) }

// checkAdd enforces the quoted-statement preconditions shared by all
// backends.
func checkAdd(caps Capabilities, context rdf.Term, quoted bool) error {
	if quoted && context == nil {
		return ErrQuotedWithoutContext
	}
	if quoted && !caps.FormulaAware {
		return ErrQuotedNotFormulaAware
	}
	return nil
}

// addBatch is the default bulk path: validate contexts, then forward each
// statement to Add in order.
func addBatch(s Store, statements []rdf.Statement) error {
	for _, st := range statements {
		if st.Context == nil {
			return ErrNilContextInBatch
		}
	}
	for _, st := range statements {
		if err := s.Add(st.Triple(), st.Context, false); err != nil {
			return err
		}
	}
	return nil
}
