package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-rdf/rdf"
)

func openBadger(t *testing.T) (*BadgerStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store")
	s, err := NewBadgerStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(false) })
	return s, path
}

func TestBadgerAddAndQuery(t *testing.T) {
	s, _ := openBadger(t)
	require.NoError(t, s.Add(triple(alice, knows, bob), nil, false))
	require.NoError(t, s.Add(triple(bob, knows, carol), ctx1, false))
	require.NoError(t, s.Add(triple(alice, name, rdf.NewLangLiteral("Alice", "en")), ctx1, false))

	// Uncommitted writes are visible to the store's own reads.
	it, err := s.Triples(Pattern{Subject: alice}, nil)
	require.NoError(t, err)
	require.Len(t, drain(t, it), 2)

	it, err = s.Triples(Pattern{}, ctx1)
	require.NoError(t, err)
	got := drain(t, it)
	require.Len(t, got, 2)
	for _, st := range got {
		require.True(t, ctx1.Equal(st.Context))
	}

	// Literal survives the codec round trip through the value log.
	it, err = s.Triples(Pattern{Predicate: name}, nil)
	require.NoError(t, err)
	got = drain(t, it)
	require.Len(t, got, 1)
	lit, ok := got[0].Object.(rdf.Literal)
	require.True(t, ok)
	require.Equal(t, "Alice", lit.String())
	require.Equal(t, "en", lit.Language())
}

func TestBadgerPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")

	s, err := NewBadgerStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(triple(alice, knows, bob), ctx1, false))
	require.NoError(t, s.Close(true))

	reopened, err := NewBadgerStore(path)
	require.NoError(t, err)
	defer reopened.Close(false)

	n, err := reopened.Len(nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	it, err := reopened.Triples(Pattern{}, ctx1)
	require.NoError(t, err)
	got := drain(t, it)
	require.Len(t, got, 1)
	require.True(t, got[0].Triple().Equal(triple(alice, knows, bob)))
}

func TestBadgerOpenMissingWithoutCreate(t *testing.T) {
	s := &BadgerStore{}
	state, err := s.Open(filepath.Join(t.TempDir(), "absent"), false)
	require.NoError(t, err)
	require.Equal(t, NoStore, state)
}

func TestBadgerRollback(t *testing.T) {
	s, _ := openBadger(t)
	require.NoError(t, s.Add(triple(alice, knows, bob), nil, false))
	require.NoError(t, s.Rollback())

	n, err := s.Len(nil)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	// The store stays usable after a rollback.
	require.NoError(t, s.Add(triple(bob, knows, carol), nil, false))
	require.NoError(t, s.Commit())
	n, err = s.Len(nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestBadgerCloseDiscardsPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")

	s, err := NewBadgerStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(triple(alice, knows, bob), nil, false))
	require.NoError(t, s.Close(false))

	reopened, err := NewBadgerStore(path)
	require.NoError(t, err)
	defer reopened.Close(false)

	n, err := reopened.Len(nil)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestBadgerCreateEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")
	s := &BadgerStore{}

	var created []StoreCreatedEvent
	s.Subscribe(func(e Event) {
		if ev, ok := e.(StoreCreatedEvent); ok {
			created = append(created, ev)
		}
	})

	// Opening a missing path with create set creates the store and fires
	// the event with the configuration that was created.
	state, err := s.Open(path, true)
	require.NoError(t, err)
	require.Equal(t, StoreValid, state)
	defer s.Close(false)

	require.Len(t, created, 1)
	require.Equal(t, path, created[0].Configuration)
}

func TestBadgerRejectsQuoted(t *testing.T) {
	s, _ := openBadger(t)

	err := s.Add(triple(alice, knows, bob), ctx1, true)
	require.ErrorIs(t, err, ErrQuotedNotFormulaAware)

	// Missing context is reported first, regardless of capabilities.
	err = s.Add(triple(alice, knows, bob), nil, true)
	require.ErrorIs(t, err, ErrQuotedWithoutContext)
}

func TestBadgerRemove(t *testing.T) {
	s, _ := openBadger(t)
	require.NoError(t, s.Add(triple(alice, knows, bob), ctx1, false))
	require.NoError(t, s.Add(triple(alice, knows, carol), ctx1, false))
	require.NoError(t, s.Add(triple(alice, knows, bob), ctx2, false))

	var removed int
	s.Subscribe(func(e Event) {
		if _, ok := e.(TripleRemovedEvent); ok {
			removed++
		}
	})

	require.NoError(t, s.Remove(Pattern{Object: bob}, ctx1))
	require.Equal(t, 1, removed)

	n, err := s.Len(nil)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// The same triple in another context is untouched.
	it, err := s.Triples(Pattern{Object: bob}, ctx2)
	require.NoError(t, err)
	require.Len(t, drain(t, it), 1)
}

func TestBadgerContexts(t *testing.T) {
	s, _ := openBadger(t)
	require.NoError(t, s.Add(triple(alice, knows, bob), nil, false))
	require.NoError(t, s.Add(triple(alice, knows, bob), ctx1, false))
	require.NoError(t, s.Add(triple(bob, knows, carol), ctx2, false))

	it, err := s.Contexts(nil)
	require.NoError(t, err)
	require.Len(t, drainTerms(t, it), 2)

	tr := triple(bob, knows, carol)
	it, err = s.Contexts(&tr)
	require.NoError(t, err)
	got := drainTerms(t, it)
	require.Len(t, got, 1)
	require.True(t, ctx2.Equal(got[0]))
}

func TestBadgerTriplesChoices(t *testing.T) {
	s, _ := openBadger(t)
	require.NoError(t, s.Add(triple(alice, knows, bob), nil, false))
	require.NoError(t, s.Add(triple(alice, name, rdf.NewLiteral("Alice")), nil, false))
	require.NoError(t, s.Add(triple(bob, knows, carol), nil, false))

	it, err := s.TriplesChoices(ChoicePattern{
		Pattern:          Pattern{Subject: alice},
		PredicateChoices: []rdf.Term{knows, name},
	}, nil)
	require.NoError(t, err)
	require.Len(t, drain(t, it), 2)
}

func TestBadgerDestroy(t *testing.T) {
	s, path := openBadger(t)
	require.NoError(t, s.Add(triple(alice, knows, bob), nil, false))
	require.NoError(t, s.Destroy(path))

	// Destroyed store path reads as absent.
	fresh := &BadgerStore{}
	state, err := fresh.Open(path, false)
	require.NoError(t, err)
	require.Equal(t, NoStore, state)
}
