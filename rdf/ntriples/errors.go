package ntriples

import (
	"errors"
	"fmt"
)

// Per-kind parse failures. ParseError wraps exactly one of these, so callers
// can classify with errors.Is.
var (
	ErrMalformedSubject   = errors.New("subject must be an IRI reference or blank node")
	ErrMalformedPredicate = errors.New("predicate must be an IRI reference")
	ErrMalformedObject    = errors.New("object must be an IRI reference, blank node, or literal")
	ErrMissingTerminator  = errors.New("missing statement terminator")
	ErrTrailingGarbage    = errors.New("trailing garbage after statement terminator")
	ErrTypeConflict       = errors.New("literal cannot have both a language tag and a datatype")
	ErrInvalidCodepoint   = errors.New("escape names a codepoint beyond U+10FFFF")
	ErrMalformedEscape    = errors.New("illegal escape sequence")
	ErrIllegalCharacter   = errors.New("illegal literal character")
	ErrEOFInLine          = errors.New("end of input inside an unterminated line")
)

// ParseError is a fatal syntax failure. The whole parse aborts on the first
// one; there is no skip-and-continue mode.
type ParseError struct {
	Err    error  // the per-kind sentinel
	Line   string // offending raw line, "" for stream-level failures
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Line != "" {
		msg = fmt.Sprintf("%s (line %q)", msg, e.Line)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(kind error, line, detail string) *ParseError {
	return &ParseError{Err: kind, Line: line, Detail: detail}
}
