package store

import "github.com/wbrown/janus-rdf/rdf"

// Iterator provides sequential access to the statements a query matched.
// It is lazy, not restartable, and bound to the query's lifetime.
type Iterator interface {
	Next() bool
	Statement() (rdf.Statement, error)
	Close() error
}

// TermIterator provides sequential access to a sequence of terms, such as
// the contexts of a store.
type TermIterator interface {
	Next() bool
	Term() rdf.Term
	Close() error
}

// sliceIterator walks an already-materialized snapshot.
type sliceIterator struct {
	statements []rdf.Statement
	pos        int
}

func newSliceIterator(statements []rdf.Statement) *sliceIterator {
	return &sliceIterator{statements: statements, pos: -1}
}

func (i *sliceIterator) Next() bool {
	i.pos++
	return i.pos < len(i.statements)
}

func (i *sliceIterator) Statement() (rdf.Statement, error) {
	return i.statements[i.pos], nil
}

func (i *sliceIterator) Close() error { return nil }

// termSliceIterator walks a snapshot of terms.
type termSliceIterator struct {
	terms []rdf.Term
	pos   int
}

func newTermSliceIterator(terms []rdf.Term) *termSliceIterator {
	return &termSliceIterator{terms: terms, pos: -1}
}

func (i *termSliceIterator) Next() bool {
	i.pos++
	return i.pos < len(i.terms)
}

func (i *termSliceIterator) Term() rdf.Term { return i.terms[i.pos] }

func (i *termSliceIterator) Close() error { return nil }

// chainIterator concatenates sub-queries, issuing each one lazily as the
// previous is exhausted.
type chainIterator struct {
	queries []func() (Iterator, error)
	current Iterator
	err     error
}

func (c *chainIterator) Next() bool {
	for {
		if c.current != nil {
			if c.current.Next() {
				return true
			}
			if err := c.current.Close(); err != nil && c.err == nil {
				c.err = err
			}
			c.current = nil
		}
		if len(c.queries) == 0 || c.err != nil {
			return false
		}
		it, err := c.queries[0]()
		c.queries = c.queries[1:]
		if err != nil {
			c.err = err
			return false
		}
		c.current = it
	}
}

func (c *chainIterator) Statement() (rdf.Statement, error) {
	if c.err != nil {
		return rdf.Statement{}, c.err
	}
	return c.current.Statement()
}

func (c *chainIterator) Close() error {
	if c.current != nil {
		if err := c.current.Close(); err != nil && c.err == nil {
			c.err = err
		}
		c.current = nil
	}
	c.queries = nil
	return c.err
}
