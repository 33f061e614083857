// Package trix serializes the contents of a store to the TriX XML format.
// https://www.w3.org/2004/03/trix/
package trix

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/wbrown/janus-rdf/rdf"
	"github.com/wbrown/janus-rdf/rdf/store"
)

// Namespace is the TriX XML namespace.
const Namespace = "http://www.w3.org/2004/03/trix/trix-1/"

type trixDoc struct {
	XMLName xml.Name    `xml:"TriX"`
	XMLNS   string      `xml:"xmlns,attr"`
	Graphs  []trixGraph `xml:"graph"`
}

type trixGraph struct {
	URI     *string      `xml:"uri,omitempty"`
	Triples []trixTriple `xml:"triple"`
}

type trixTriple struct {
	Terms []trixTerm
}

type trixTerm struct {
	XMLName  xml.Name
	Content  string `xml:",chardata"`
	Datatype string `xml:"datatype,attr,omitempty"`
	Lang     string `xml:"xml:lang,attr,omitempty"`
}

func (t trixTriple) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "triple"}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, term := range t.Terms {
		if err := e.Encode(term); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Write serializes every graph of s, the default graph first, then each
// named context.
func Write(w io.Writer, s store.Store) error {
	doc := trixDoc{XMLNS: Namespace}

	defaultGraph, err := collectGraph(s, nil)
	if err != nil {
		return err
	}
	if len(defaultGraph.Triples) > 0 {
		doc.Graphs = append(doc.Graphs, defaultGraph)
	}

	contexts, err := s.Contexts(nil)
	if err != nil {
		return err
	}
	defer contexts.Close()
	for contexts.Next() {
		g, err := collectGraph(s, contexts.Term())
		if err != nil {
			return err
		}
		doc.Graphs = append(doc.Graphs, g)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode TriX: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func collectGraph(s store.Store, context rdf.Term) (trixGraph, error) {
	var g trixGraph
	if iri, ok := context.(rdf.IRI); ok {
		uri := iri.String()
		g.URI = &uri
	}

	var it store.Iterator
	var err error
	if context == nil {
		// Only the default graph's own statements, not a conjunctive walk.
		it, err = defaultGraphTriples(s)
	} else {
		it, err = s.Triples(store.Pattern{}, context)
	}
	if err != nil {
		return g, err
	}
	defer it.Close()

	for it.Next() {
		st, err := it.Statement()
		if err != nil {
			return g, err
		}
		g.Triples = append(g.Triples, trixTriple{Terms: []trixTerm{
			termElement(st.Subject),
			termElement(st.Predicate),
			termElement(st.Object),
		}})
	}
	return g, nil
}

// defaultGraphTriples filters a conjunctive query down to statements with
// no context.
func defaultGraphTriples(s store.Store) (store.Iterator, error) {
	it, err := s.Triples(store.Pattern{}, nil)
	if err != nil {
		return nil, err
	}
	return &defaultOnlyIterator{inner: it}, nil
}

type defaultOnlyIterator struct {
	inner   store.Iterator
	current rdf.Statement
	err     error
}

func (i *defaultOnlyIterator) Next() bool {
	for i.inner.Next() {
		st, err := i.inner.Statement()
		if err != nil {
			i.err = err
			return false
		}
		if st.Context == nil {
			i.current = st
			return true
		}
	}
	return false
}

func (i *defaultOnlyIterator) Statement() (rdf.Statement, error) {
	return i.current, i.err
}

func (i *defaultOnlyIterator) Close() error { return i.inner.Close() }

func termElement(t rdf.Term) trixTerm {
	switch v := t.(type) {
	case rdf.IRI:
		return trixTerm{XMLName: xml.Name{Local: "uri"}, Content: v.String()}
	case rdf.BlankNode:
		return trixTerm{XMLName: xml.Name{Local: "id"}, Content: v.String()}
	case rdf.Literal:
		if dt, ok := v.Datatype(); ok {
			return trixTerm{
				XMLName:  xml.Name{Local: "typedLiteral"},
				Content:  v.String(),
				Datatype: dt.String(),
			}
		}
		return trixTerm{
			XMLName: xml.Name{Local: "plainLiteral"},
			Content: v.String(),
			Lang:    v.Language(),
		}
	default:
		return trixTerm{XMLName: xml.Name{Local: "uri"}, Content: t.String()}
	}
}
