package store

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/wbrown/janus-rdf/rdf"
)

// BadgerStore is the persistent backend: context-aware and
// transaction-aware, backed by BadgerDB. Statements are written under four
// index orderings (SPOC, POSC, OSPC, CSPO) keyed by term hashes, with the
// codec-encoded statement as the value.
//
// It is not formula-aware; quoted inserts fail per the contract.
//
// Writes accumulate in a pending badger transaction until Commit or
// Rollback. Reads go through the same transaction, so a query sees the
// store's own uncommitted writes.
type BadgerStore struct {
	Base
	db    *badger.DB
	txn   *badger.Txn
	codec *rdf.TermCodec
	path  string
}

// NewBadgerStore opens (creating if needed) a badger-backed store at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	s := &BadgerStore{codec: rdf.NewTermCodec()}
	state, err := s.Open(path, true)
	if err != nil {
		return nil, err
	}
	if state != StoreValid {
		return nil, fmt.Errorf("open store at %s: %s", path, state)
	}
	return s, nil
}

func (s *BadgerStore) Capabilities() Capabilities {
	return Capabilities{ContextAware: true, TransactionAware: true}
}

// Open opens the store rooted at the configuration path. Opening a missing
// path without create reports NoStore; a path badger refuses to open
// reports StoreCorrupted.
func (s *BadgerStore) Open(configuration string, create bool) (OpenState, error) {
	if s.db != nil {
		return StoreValid, nil
	}
	if s.codec == nil {
		s.codec = rdf.NewTermCodec()
	}
	if _, err := os.Stat(configuration); os.IsNotExist(err) {
		if !create {
			return NoStore, nil
		}
		if err := s.Create(configuration); err != nil {
			return StoreUnknown, err
		}
	}

	opts := badger.DefaultOptions(configuration)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return StoreCorrupted, fmt.Errorf("open badger at %s: %w", configuration, err)
	}
	s.db = db
	s.txn = db.NewTransaction(true)
	s.path = configuration
	return StoreValid, nil
}

// Create makes the store directory and fires StoreCreated.
func (s *BadgerStore) Create(configuration string) error {
	if err := os.MkdirAll(configuration, 0o755); err != nil {
		return fmt.Errorf("create store at %s: %w", configuration, err)
	}
	return s.Base.Create(configuration)
}

// Close ends the pending transaction, committing it first when
// commitPending is set, and closes the database.
func (s *BadgerStore) Close(commitPending bool) error {
	if s.db == nil {
		return nil
	}
	if s.txn != nil {
		if commitPending {
			if err := s.txn.Commit(); err != nil {
				s.txn.Discard()
				return fmt.Errorf("commit pending transaction: %w", err)
			}
		} else {
			s.txn.Discard()
		}
		s.txn = nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Destroy closes the store if open and removes its directory.
func (s *BadgerStore) Destroy(configuration string) error {
	if s.db != nil && configuration == s.path {
		if err := s.Close(false); err != nil {
			return err
		}
	}
	return os.RemoveAll(configuration)
}

func (s *BadgerStore) Add(t rdf.Triple, context rdf.Term, quoted bool) error {
	if err := checkAdd(s.Capabilities(), context, quoted); err != nil {
		return err
	}
	if s.db == nil {
		return ErrNotOpen
	}

	st := statementOf(t, context)
	value, err := s.codec.EncodeStatement(st)
	if err != nil {
		return err
	}
	for _, idx := range allIndexes {
		if err := s.set(statementKey(idx, st), value); err != nil {
			return fmt.Errorf("write %v index: %w", idx, err)
		}
	}

	s.Dispatch(TripleAddedEvent{Triple: t, Context: context})
	return nil
}

func (s *BadgerStore) AddBatch(statements []rdf.Statement) error {
	return addBatch(s, statements)
}

func (s *BadgerStore) Remove(p Pattern, context rdf.Term) error {
	if s.db == nil {
		return ErrNotOpen
	}
	matched, err := s.scan(p, context)
	if err != nil {
		return err
	}
	for _, st := range matched {
		for _, idx := range allIndexes {
			if err := s.delete(statementKey(idx, st)); err != nil {
				return fmt.Errorf("delete from %v index: %w", idx, err)
			}
		}
		s.Dispatch(TripleRemovedEvent{Triple: st.Triple(), Context: st.Context})
	}
	return nil
}

func (s *BadgerStore) Triples(p Pattern, context rdf.Term) (Iterator, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	matched, err := s.scan(p, context)
	if err != nil {
		return nil, err
	}
	return newSliceIterator(matched), nil
}

func (s *BadgerStore) TriplesChoices(p ChoicePattern, context rdf.Term) (Iterator, error) {
	return triplesChoices(s, p, context)
}

func (s *BadgerStore) Len(context rdf.Term) (int, error) {
	if s.db == nil {
		return 0, ErrNotOpen
	}
	matched, err := s.scan(Pattern{}, context)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (s *BadgerStore) Contexts(t *rdf.Triple) (TermIterator, error) {
	if s.db == nil {
		return nil, ErrNotOpen
	}
	p := Pattern{}
	if t != nil {
		p = Pattern{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}
	}
	matched, err := s.scan(p, nil)
	if err != nil {
		return nil, err
	}

	seen := map[[hashLen]byte]bool{}
	var out []rdf.Term
	for _, st := range matched {
		if st.Context == nil {
			continue
		}
		h := st.Context.Hash()
		if !seen[h] {
			seen[h] = true
			out = append(out, st.Context)
		}
	}
	return newTermSliceIterator(out), nil
}

// Commit commits the pending transaction and begins a fresh one.
func (s *BadgerStore) Commit() error {
	if s.txn == nil {
		return nil
	}
	if err := s.txn.Commit(); err != nil {
		s.txn.Discard()
		s.txn = s.db.NewTransaction(true)
		return fmt.Errorf("commit: %w", err)
	}
	s.txn = s.db.NewTransaction(true)
	return nil
}

// Rollback discards the pending transaction and begins a fresh one.
func (s *BadgerStore) Rollback() error {
	if s.txn == nil {
		return nil
	}
	s.txn.Discard()
	s.txn = s.db.NewTransaction(true)
	return nil
}

// set writes through the pending transaction, committing and retrying once
// when the transaction outgrows badger's limits.
func (s *BadgerStore) set(key, value []byte) error {
	err := s.txn.Set(key, value)
	if err == badger.ErrTxnTooBig {
		if err := s.Commit(); err != nil {
			return err
		}
		err = s.txn.Set(key, value)
	}
	return err
}

func (s *BadgerStore) delete(key []byte) error {
	err := s.txn.Delete(key)
	if err == badger.ErrTxnTooBig {
		if err := s.Commit(); err != nil {
			return err
		}
		err = s.txn.Delete(key)
	}
	return err
}

// scan materializes the statements matching a pattern. The chosen index
// prefix narrows the walk; the decoded statement is checked against the
// full pattern, which also screens out the vanishingly unlikely hash-prefix
// collision.
func (s *BadgerStore) scan(p Pattern, context rdf.Term) ([]rdf.Statement, error) {
	prefix := scanPrefix(p, context)

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := s.txn.NewIterator(opts)
	defer it.Close()

	var matched []rdf.Statement
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var st rdf.Statement
		err := it.Item().Value(func(val []byte) error {
			var err error
			st, err = s.codec.DecodeStatement(val)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("decode statement: %w", err)
		}
		if !p.Matches(st.Triple()) {
			continue
		}
		if context != nil && (st.Context == nil || !context.Equal(st.Context)) {
			continue
		}
		matched = append(matched, st)
	}
	return matched, nil
}
