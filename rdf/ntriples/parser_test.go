package ntriples

import (
	"errors"
	"strings"
	"testing"

	"github.com/wbrown/janus-rdf/rdf"
)

// collectSink records every triple it receives.
type collectSink struct {
	triples []rdf.Triple
}

func (s *collectSink) Triple(subject, predicate, object rdf.Term) error {
	s.triples = append(s.triples, rdf.Triple{Subject: subject, Predicate: predicate, Object: object})
	return nil
}

func parseOne(t *testing.T, line string) rdf.Triple {
	t.Helper()
	sink := &collectSink{}
	if err := NewParser(sink).ParseString(line + "\n"); err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	if len(sink.triples) != 1 {
		t.Fatalf("parse %q: got %d triples, want 1", line, len(sink.triples))
	}
	return sink.triples[0]
}

func TestParseIRITriple(t *testing.T) {
	got := parseOne(t, `<http://example.org/s> <http://example.org/p> <http://example.org/o> .`)

	want := rdf.Triple{
		Subject:   rdf.NewIRI("http://example.org/s"),
		Predicate: rdf.NewIRI("http://example.org/p"),
		Object:    rdf.NewIRI("http://example.org/o"),
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseLiteralEscapes(t *testing.T) {
	got := parseOne(t, `<http://a> <http://b> "hi\tthere" .`)

	lit, isLit := got.Object.(rdf.Literal)
	if !isLit {
		t.Fatalf("object is %T, want Literal", got.Object)
	}
	if lit.String() != "hi\tthere" {
		t.Errorf("literal value %q, want %q", lit.String(), "hi\tthere")
	}
}

func TestParseBlankNodes(t *testing.T) {
	got := parseOne(t, `_:n1 <http://b> _:n2 .`)

	s, isBNode := got.Subject.(rdf.BlankNode)
	if !isBNode || s.String() != "n1" {
		t.Errorf("subject %v (%T), want blank node n1", got.Subject, got.Subject)
	}
	o, isBNode := got.Object.(rdf.BlankNode)
	if !isBNode || o.String() != "n2" {
		t.Errorf("object %v (%T), want blank node n2", got.Object, got.Object)
	}
}

func TestParseLangLiteral(t *testing.T) {
	got := parseOne(t, `<http://a> <http://b> "bonjour"@fr .`)

	lit := got.Object.(rdf.Literal)
	if lang, bound := lit.Language(), lit.String(); lang != "fr" || bound != "bonjour" {
		t.Errorf("got %q@%s", bound, lang)
	}
}

func TestParseTypedLiteral(t *testing.T) {
	got := parseOne(t, `<http://a> <http://b> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .`)

	lit := got.Object.(rdf.Literal)
	dt, bound := lit.Datatype()
	if !bound || dt.String() != "http://www.w3.org/2001/XMLSchema#integer" {
		t.Fatalf("datatype %v bound=%v", dt, bound)
	}
	if native, isInt := lit.Native().(int64); !isInt || native != 1 {
		t.Errorf("native %v (%T), want int64(1)", lit.Native(), lit.Native())
	}
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	input := "# a comment\n" +
		"\n" +
		"   \t\n" +
		"  # indented comment\n" +
		"<http://a> <http://b> <http://c> .\n"

	sink := &collectSink{}
	if err := NewParser(sink).ParseString(input); err != nil {
		t.Fatal(err)
	}
	if len(sink.triples) != 1 {
		t.Errorf("got %d triples, want 1", len(sink.triples))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"missing terminator", `<http://a> <http://b> <http://c>`, ErrMissingTerminator},
		{"trailing garbage", `<http://a> <http://b> <http://c> . extra`, ErrTrailingGarbage},
		{"bad subject", `<no-scheme> <http://b> <http://c> .`, ErrMalformedSubject},
		{"literal subject", `"s" <http://b> <http://c> .`, ErrMalformedSubject},
		{"blank node predicate", `<http://a> _:p <http://c> .`, ErrMalformedPredicate},
		{"no space before predicate", `<http://a><http://b> <http://c> .`, ErrMalformedPredicate},
		{"bad object", `<http://a> <http://b> p .`, ErrMalformedObject},
		{"lang and datatype", `<http://a> <http://b> "x"@en^^<http://t> .`, ErrTypeConflict},
		{"datatype then lang", `<http://a> <http://b> "x"^^<http://t>@en .`, ErrTypeConflict},
		{"unterminated line", `<http://a> <http://b> <http://c> .`, ErrEOFInLine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.line + "\n"
			if tt.want == ErrEOFInLine {
				input = tt.line // no terminator at all
			}
			err := NewParser(nil).ParseString(input)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseErrorCarriesLine(t *testing.T) {
	bad := `<http://a> <http://b> <http://c>`
	err := NewParser(nil).ParseString(bad + "\n")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a ParseError", err)
	}
	if pe.Line != bad {
		t.Errorf("ParseError.Line = %q, want %q", pe.Line, bad)
	}
}

func TestParseCountingSink(t *testing.T) {
	input := "<http://a> <http://b> <http://c> .\n" +
		"<http://a> <http://b> \"two\" .\n"

	p := NewParser(nil)
	if err := p.Parse(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	sink, isCounting := p.Sink().(*CountingSink)
	if !isCounting {
		t.Fatalf("default sink is %T", p.Sink())
	}
	if sink.Length != 2 {
		t.Errorf("counted %d triples, want 2", sink.Length)
	}
}

func TestParseRoundTrip(t *testing.T) {
	// Re-serializing via N3 and reparsing yields equal triples.
	lines := []string{
		`<http://example.org/s> <http://example.org/p> <http://example.org/o> .`,
		`_:b0 <http://example.org/p> "plain" .`,
		`<http://example.org/s> <http://example.org/p> "v\"quoted\""@en .`,
		`<http://example.org/s> <http://example.org/p> "3.14"^^<http://www.w3.org/2001/XMLSchema#double> .`,
	}

	first := &collectSink{}
	if err := NewParser(first).ParseString(strings.Join(lines, "\n") + "\n"); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	for _, tr := range first.triples {
		out.WriteString(tr.Subject.N3() + " " + tr.Predicate.N3() + " " + tr.Object.N3() + " .\n")
	}

	second := &collectSink{}
	if err := NewParser(second).ParseString(out.String()); err != nil {
		t.Fatalf("reparse: %v\ninput:\n%s", err, out.String())
	}
	if len(second.triples) != len(first.triples) {
		t.Fatalf("reparse produced %d triples, want %d", len(second.triples), len(first.triples))
	}
	for i := range first.triples {
		if !first.triples[i].Equal(second.triples[i]) {
			t.Errorf("triple %d: %v != %v", i, first.triples[i], second.triples[i])
		}
	}
}
