// Package ntriples is a streaming, fail-fast parser for the N-Triples line
// syntax: one statement per line, terms limited to IRI references, blank
// nodes, and literals.
//
// Usage:
//
//	sink := &ntriples.CountingSink{}
//	p := ntriples.NewParser(sink)
//	if err := p.Parse(f); err != nil { ... }
package ntriples

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/wbrown/janus-rdf/rdf"
)

// Sink consumes parsed triples. A Store adapter is the usual implementation;
// CountingSink is the minimal default.
type Sink interface {
	Triple(subject, predicate, object rdf.Term) error
}

// CountingSink counts the triples it receives and optionally prints them.
type CountingSink struct {
	Length int
	Out    io.Writer // nil disables printing
}

// Triple implements Sink.
func (s *CountingSink) Triple(subject, predicate, object rdf.Term) error {
	s.Length++
	if s.Out != nil {
		_, err := io.WriteString(s.Out,
			subject.N3()+" "+predicate.N3()+" "+object.N3()+" .\n")
		return err
	}
	return nil
}

// Parser parses N-Triples input line by line, emitting each completed triple
// to its sink. The first syntax error aborts the whole parse.
//
// A Parser is single-threaded and blocks only on reads from the underlying
// source; cancellation is the caller's concern (close the source).
type Parser struct {
	sink Sink
	line string // unconsumed remainder of the current line
	raw  string // the current line as read, for diagnostics
}

// NewParser creates a parser emitting to sink. A nil sink gets a
// CountingSink.
func NewParser(sink Sink) *Parser {
	if sink == nil {
		sink = &CountingSink{}
	}
	return &Parser{sink: sink}
}

// Sink returns the parser's sink, for callers that want the accumulated
// result after Parse.
func (p *Parser) Sink() Sink { return p.sink }

// Parse consumes src to exhaustion. On success every well-formed line has
// been emitted to the sink; on failure the returned error is a *ParseError
// carrying the offending raw line.
func (p *Parser) Parse(src io.Reader) error {
	return p.ParseBuffered(NewLineReader(src))
}

// ParseString parses s as complete N-Triples input.
func (p *Parser) ParseString(s string) error {
	return p.Parse(strings.NewReader(s))
}

// ParseBuffered consumes lines from an explicitly configured LineReader.
func (p *Parser) ParseBuffered(lines *LineReader) error {
	for {
		line, ok, err := lines.ReadLine()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := p.parseLine(line); err != nil {
			var pe *ParseError
			if errors.As(err, &pe) && pe.Line == "" {
				pe.Line = p.raw
			}
			return err
		}
	}
}

// parseLine runs the per-line state machine: optional leading whitespace,
// comment/blank skip, subject, mandatory gap, predicate, mandatory gap,
// object, terminator, trailing-garbage check, emit.
func (p *Parser) parseLine(line string) error {
	p.raw = line
	p.line = line

	p.eat(reWspace)
	if p.line == "" || strings.HasPrefix(p.line, "#") {
		return nil
	}

	subject, err := p.subject()
	if err != nil {
		return err
	}
	if p.eat(reWspaces) == "" {
		return parseErr(ErrMalformedPredicate, "", "expected whitespace before predicate")
	}

	predicate, err := p.predicate()
	if err != nil {
		return err
	}
	if p.eat(reWspaces) == "" {
		return parseErr(ErrMalformedObject, "", "expected whitespace before object")
	}

	object, err := p.object()
	if err != nil {
		return err
	}
	if p.eat(reTail) == "" {
		return parseErr(ErrMissingTerminator, "", "")
	}
	if p.line != "" {
		return parseErr(ErrTrailingGarbage, "", p.line)
	}

	return p.sink.Triple(subject, predicate, object)
}

// eat consumes a leading match of pattern from the current line and returns
// the matched text, "" when the pattern does not match at the current
// position.
func (p *Parser) eat(pattern *regexp.Regexp) string {
	m := pattern.FindStringSubmatch(p.line)
	if m == nil {
		return ""
	}
	p.line = p.line[len(m[0]):]
	return m[0]
}

func (p *Parser) subject() (rdf.Term, error) {
	if t, err := p.uriref(); t != nil || err != nil {
		return t, err
	}
	if t := p.nodeid(); t != nil {
		return t, nil
	}
	return nil, parseErr(ErrMalformedSubject, "", "")
}

func (p *Parser) predicate() (rdf.Term, error) {
	t, err := p.uriref()
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, parseErr(ErrMalformedPredicate, "", "")
	}
	return t, nil
}

func (p *Parser) object() (rdf.Term, error) {
	if t, err := p.uriref(); t != nil || err != nil {
		return t, err
	}
	if t := p.nodeid(); t != nil {
		return t, nil
	}
	if t, err := p.literal(); t != nil || err != nil {
		return t, err
	}
	return nil, parseErr(ErrMalformedObject, "", "")
}

// uriref matches an IRI reference at the current position. A nil, nil
// return means the position does not start one.
func (p *Parser) uriref() (rdf.Term, error) {
	if !strings.HasPrefix(p.line, "<") {
		return nil, nil
	}
	m := reURIRef.FindStringSubmatch(p.line)
	if m == nil {
		return nil, nil
	}
	p.line = p.line[len(m[0]):]
	uri, err := Unquote(m[1])
	if err != nil {
		return nil, err
	}
	return rdf.NewIRI(uri), nil
}

func (p *Parser) nodeid() rdf.Term {
	if !strings.HasPrefix(p.line, "_") {
		return nil
	}
	m := reNodeID.FindStringSubmatch(p.line)
	if m == nil {
		return nil
	}
	p.line = p.line[len(m[0]):]
	return rdf.NewBlankNodeID(m[1])
}

// literal matches a quoted literal with its optional language or datatype
// suffix. Input carrying both suffix markers fails with ErrTypeConflict
// rather than silently preferring one.
func (p *Parser) literal() (rdf.Term, error) {
	if !strings.HasPrefix(p.line, `"`) {
		return nil, nil
	}
	m := reLiteral.FindStringSubmatch(p.line)
	if m == nil {
		return nil, nil
	}
	p.line = p.line[len(m[0]):]
	body := m[1]

	var language, datatype string
	if lm := reLang.FindStringSubmatch(p.line); lm != nil {
		p.line = p.line[len(lm[0]):]
		language = lm[1]
	}
	if dm := reDType.FindStringSubmatch(p.line); dm != nil {
		p.line = p.line[len(dm[0]):]
		datatype = dm[1]
	}
	if language != "" && datatype != "" {
		return nil, parseErr(ErrTypeConflict, "", "")
	}
	if datatype != "" && strings.HasPrefix(p.line, "@") {
		// "^^<dt>@lang": both markers present, in the other order.
		return nil, parseErr(ErrTypeConflict, "", "")
	}

	value, err := Unquote(body)
	if err != nil {
		return nil, err
	}
	if language != "" {
		return rdf.NewLangLiteral(value, language), nil
	}
	if datatype != "" {
		dt, err := Unquote(datatype)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(value, rdf.NewIRI(dt)), nil
	}
	return rdf.NewLiteral(value), nil
}
