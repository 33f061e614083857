package rdf

import (
	"crypto/sha1"
	"fmt"
	"net/url"
	"strings"
)

// TermKind identifies the concrete variant behind a Term.
type TermKind uint8

const (
	KindIRI TermKind = iota
	KindBlankNode
	KindLiteral
	KindVariable
)

// Discriminant bytes mixed into term hashes so that equal strings held by
// different variants never hash alike.
const (
	hashTagIRI       = 'U'
	hashTagBlankNode = 'B'
	hashTagLiteral   = 'L'
	hashTagVariable  = 'V'
)

// Term is a node in an RDF graph: an IRI reference, a blank node, a literal,
// or a query variable. The set of variants is closed; code that dispatches on
// Kind can switch exhaustively.
//
// Terms are immutable value types. Compare them with Equal, not with ==;
// literal equality is defined over lexical form, language, and datatype.
type Term interface {
	Kind() TermKind

	// String returns the raw payload: the IRI text, the blank node label,
	// the literal's lexical form, or the variable name.
	String() string

	// N3 returns the canonical short-form serialization of the term.
	N3() string

	// Hash returns a stable content hash: a SHA-1 digest over the term's
	// defining fields plus a variant discriminant byte. Equal terms always
	// hash identically.
	Hash() [20]byte

	// Equal reports structural equality with another term.
	Equal(other Term) bool
}

// IRI is an RDF URI reference.
// http://www.w3.org/TR/rdf-concepts/#section-Graph-URIref
type IRI struct {
	value string
}

// NewIRI creates an IRI from an absolute or relative URI string.
func NewIRI(value string) IRI {
	return IRI{value: value}
}

// ResolveIRI creates an IRI by resolving value against base per standard
// URI-join rules. A trailing fragment marker on the input survives
// resolution even when the joined form drops it.
func ResolveIRI(value, base string) (IRI, error) {
	b, err := url.Parse(base)
	if err != nil {
		return IRI{}, fmt.Errorf("invalid base IRI %q: %w", base, err)
	}
	ref, err := url.Parse(value)
	if err != nil {
		return IRI{}, fmt.Errorf("invalid IRI reference %q: %w", value, err)
	}
	resolved := b.ResolveReference(ref).String()
	if strings.HasSuffix(value, "#") && !strings.HasSuffix(resolved, "#") {
		resolved += "#"
	}
	return IRI{value: resolved}, nil
}

func (i IRI) Kind() TermKind { return KindIRI }

func (i IRI) String() string { return i.value }

// N3 returns the angle-bracketed form.
func (i IRI) N3() string { return "<" + i.value + ">" }

func (i IRI) Hash() [20]byte { return termHash(hashTagIRI, i.value) }

func (i IRI) Equal(other Term) bool {
	o, ok := other.(IRI)
	return ok && o.value == i.value
}

// Defrag returns the IRI with any fragment stripped.
func (i IRI) Defrag() IRI {
	if idx := strings.Index(i.value, "#"); idx >= 0 {
		return IRI{value: i.value[:idx]}
	}
	return i
}

// BlankNode is an RDF identifier with only local significance.
// http://www.w3.org/TR/rdf-concepts/#section-blank-nodes
type BlankNode struct {
	label string
}

// NewBlankNodeID creates a blank node with an explicit label. Only parsers
// and stores deserializing previously-assigned nodes should supply one;
// everything else should use NewBlankNode.
func NewBlankNodeID(label string) BlankNode {
	return BlankNode{label: label}
}

func (b BlankNode) Kind() TermKind { return KindBlankNode }

func (b BlankNode) String() string { return b.label }

// N3 returns the _:label form.
func (b BlankNode) N3() string { return "_:" + b.label }

func (b BlankNode) Hash() [20]byte { return termHash(hashTagBlankNode, b.label) }

func (b BlankNode) Equal(other Term) bool {
	o, ok := other.(BlankNode)
	return ok && o.label == b.label
}

// Variable is a query variable. The leading '?' is stripped at construction.
type Variable struct {
	name string
}

// NewVariable creates a variable, accepting names with or without a
// leading '?'.
func NewVariable(name string) Variable {
	return Variable{name: strings.TrimPrefix(name, "?")}
}

func (v Variable) Kind() TermKind { return KindVariable }

func (v Variable) String() string { return v.name }

// N3 returns the ?name form.
func (v Variable) N3() string { return "?" + v.name }

func (v Variable) Hash() [20]byte { return termHash(hashTagVariable, v.name) }

func (v Variable) Equal(other Term) bool {
	o, ok := other.(Variable)
	return ok && o.name == v.name
}

// Triple is a single (subject, predicate, object) assertion.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject.N3(), t.Predicate.N3(), t.Object.N3())
}

// Equal reports fieldwise term equality.
func (t Triple) Equal(other Triple) bool {
	return t.Subject.Equal(other.Subject) &&
		t.Predicate.Equal(other.Predicate) &&
		t.Object.Equal(other.Object)
}

// Statement is a triple paired with the context it was asserted in. A nil
// Context means the default graph.
type Statement struct {
	Subject   Term
	Predicate Term
	Object    Term
	Context   Term
}

// Triple returns the statement's triple without its context.
func (s Statement) Triple() Triple {
	return Triple{Subject: s.Subject, Predicate: s.Predicate, Object: s.Object}
}

func (s Statement) String() string {
	if s.Context == nil {
		return s.Triple().String()
	}
	return fmt.Sprintf("%s %s %s %s .", s.Subject.N3(), s.Predicate.N3(), s.Object.N3(), s.Context.N3())
}

func termHash(tag byte, fields ...string) [20]byte {
	h := sha1.New()
	for _, f := range fields {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	h.Write([]byte{tag})
	var sum [20]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
