package store

import "github.com/wbrown/janus-rdf/rdf"

// ChoicePattern is a triple pattern where at most one slot holds a list of
// alternative terms. An empty, non-nil list degrades to a wildcard in that
// slot, matching the single-value Pattern semantics.
type ChoicePattern struct {
	Pattern

	SubjectChoices   []rdf.Term
	PredicateChoices []rdf.Term
	ObjectChoices    []rdf.Term
}

// validate fails fast when more than one slot carries alternatives.
func (p ChoicePattern) validate() error {
	slots := 0
	if p.SubjectChoices != nil {
		slots++
	}
	if p.PredicateChoices != nil {
		slots++
	}
	if p.ObjectChoices != nil {
		slots++
	}
	if slots > 1 {
		return ErrMultipleChoiceSlots
	}
	return nil
}

// triplesChoices is the default decomposition shared by backends without
// native batch unification: one Triples query per alternative, results
// concatenated in list order.
func triplesChoices(s Store, p ChoicePattern, context rdf.Term) (Iterator, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	var alternatives []rdf.Term
	patternFor := func(alt rdf.Term) Pattern { return p.Pattern }
	switch {
	case p.SubjectChoices != nil:
		alternatives = p.SubjectChoices
		patternFor = func(alt rdf.Term) Pattern {
			q := p.Pattern
			q.Subject = alt
			return q
		}
	case p.PredicateChoices != nil:
		alternatives = p.PredicateChoices
		patternFor = func(alt rdf.Term) Pattern {
			q := p.Pattern
			q.Predicate = alt
			return q
		}
	case p.ObjectChoices != nil:
		alternatives = p.ObjectChoices
		patternFor = func(alt rdf.Term) Pattern {
			q := p.Pattern
			q.Object = alt
			return q
		}
	}

	if len(alternatives) == 0 {
		// No alternatives listed: the slot is unconstrained.
		return s.Triples(patternFor(nil), context)
	}

	queries := make([]func() (Iterator, error), 0, len(alternatives))
	for _, alt := range alternatives {
		q := patternFor(alt)
		queries = append(queries, func() (Iterator, error) {
			return s.Triples(q, context)
		})
	}
	return &chainIterator{queries: queries}, nil
}
