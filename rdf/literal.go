package rdf

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrTypeConflict is returned when a literal is constructed with both a
// language tag and a datatype. Per RDF concepts a literal carries at most
// one of the two.
// http://www.w3.org/TR/rdf-concepts/#section-Graph-Literal
var ErrTypeConflict = errors.New("literal cannot have both a language tag and a datatype")

// XSDNamespace is the XML Schema datatype namespace.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

// XSD returns the IRI for a local name in the XML Schema namespace.
func XSD(local string) IRI {
	return IRI{value: XSDNamespace + local}
}

// Literal is an RDF literal: a lexical form plus at most one of a language
// tag or a datatype IRI. The native comparison value is derived once at
// construction and never recomputed.
type Literal struct {
	value    string
	language string
	datatype IRI // zero value means no datatype
	native   any // converted value, or nil when no conversion is registered
}

// NewLiteral creates a plain literal with no language tag or datatype.
func NewLiteral(value string) Literal {
	return Literal{value: value}
}

// NewLangLiteral creates a literal tagged with a language.
func NewLangLiteral(value, language string) Literal {
	return Literal{value: value, language: language}
}

// NewTypedLiteral creates a literal with a datatype IRI. The native value is
// derived immediately from the registered conversion, if any; a lexical form
// the conversion rejects leaves the literal with no native value.
func NewTypedLiteral(value string, datatype IRI) Literal {
	l := Literal{value: value, datatype: datatype}
	if fn := lookupDatatype(datatype); fn != nil {
		native, err := fn(value)
		if err != nil {
			logger().Warn("literal does not convert to a native value",
				zap.String("value", value),
				zap.String("datatype", datatype.String()),
				zap.Error(err))
		} else {
			l.native = native
		}
	}
	return l
}

// MakeLiteral creates a literal from a lexical form and optional language
// and datatype. Supplying both fails with ErrTypeConflict; it is never
// resolved silently.
func MakeLiteral(value, language string, datatype *IRI) (Literal, error) {
	if language != "" && datatype != nil {
		return Literal{}, ErrTypeConflict
	}
	if language != "" {
		return NewLangLiteral(value, language), nil
	}
	if datatype != nil {
		return NewTypedLiteral(value, *datatype), nil
	}
	return NewLiteral(value), nil
}

func (l Literal) Kind() TermKind { return KindLiteral }

// String returns the lexical form.
func (l Literal) String() string { return l.value }

// Language returns the language tag, or "" when absent.
func (l Literal) Language() string { return l.language }

// Datatype returns the datatype IRI and whether one is present.
func (l Literal) Datatype() (IRI, bool) {
	return l.datatype, l.datatype != IRI{}
}

// Native returns the converted native value when the datatype has a
// registered conversion, otherwise the literal itself.
func (l Literal) Native() any {
	if l.native != nil {
		return l.native
	}
	return l
}

// N3 returns the quoted short form, with an @lang or ^^<datatype> suffix
// when present. The body is escaped such that parsing it back yields an
// equal literal.
func (l Literal) N3() string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(escapeLiteral(l.value))
	b.WriteByte('"')
	if l.language != "" {
		b.WriteByte('@')
		b.WriteString(l.language)
	} else if (l.datatype != IRI{}) {
		b.WriteString("^^")
		b.WriteString(l.datatype.N3())
	}
	return b.String()
}

func (l Literal) Hash() [20]byte {
	return termHash(hashTagLiteral, l.value, l.language, l.datatype.value)
}

// Equal reports literal equality per RDF concepts: equal lexical forms,
// both or neither tagged with equal languages, both or neither typed with
// equal datatypes.
func (l Literal) Equal(other Term) bool {
	o, ok := other.(Literal)
	return ok && o.value == l.value && o.language == l.language && o.datatype == l.datatype
}

// Less orders two literals. Literals with matching language and datatype
// compare by native value; otherwise only numeric-likes compare across
// datatypes. Everything else is unordered and reports false.
func (l Literal) Less(other Literal) bool {
	if l.language == other.language && l.datatype == other.datatype {
		return compareNative(l.cmpValue(), other.cmpValue()) < 0
	}
	lf, lok := asFloat(l.cmpValue())
	rf, rok := asFloat(other.cmpValue())
	if lok && rok {
		return lf < rf
	}
	return false
}

func (l Literal) cmpValue() any {
	if l.native != nil {
		return l.native
	}
	return l.value
}

// compareNative compares two converted values of the same shape. Unordered
// pairs report 0.
func compareNative(a, b any) int {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case !av && bv:
				return -1
			case av && !bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ConvertFunc turns a lexical form into a native value.
type ConvertFunc func(lexical string) (any, error)

// The datatype conversion table is process-wide shared state with documented
// last-writer-wins semantics: the built-ins are installed at init and Bind
// mutates the single shared table.
var (
	datatypeMu    sync.RWMutex
	datatypeTable = builtinDatatypes()
)

// Bind registers a conversion function for a datatype IRI, replacing any
// existing binding. Rebinding is a logged event, not an error.
func Bind(datatype IRI, fn ConvertFunc) {
	datatypeMu.Lock()
	if _, exists := datatypeTable[datatype.value]; exists {
		logger().Warn("datatype was already bound, rebinding",
			zap.String("datatype", datatype.value))
	}
	datatypeTable[datatype.value] = fn
	datatypeMu.Unlock()
}

func lookupDatatype(datatype IRI) ConvertFunc {
	datatypeMu.RLock()
	fn := datatypeTable[datatype.value]
	datatypeMu.RUnlock()
	return fn
}

func builtinDatatypes() map[string]ConvertFunc {
	table := map[string]ConvertFunc{}
	for _, local := range []string{
		"integer", "nonPositiveInteger", "long", "nonNegativeInteger",
		"negativeInteger", "int", "unsignedLong", "positiveInteger",
		"short", "unsignedInt", "byte", "unsignedShort", "unsignedByte",
	} {
		table[XSDNamespace+local] = convertInteger
	}
	for _, local := range []string{"float", "double", "decimal"} {
		table[XSDNamespace+local] = convertFloat
	}
	table[XSDNamespace+"boolean"] = convertBoolean
	table[XSDNamespace+"date"] = convertDate
	table[XSDNamespace+"time"] = convertTime
	table[XSDNamespace+"dateTime"] = convertDateTime
	table[XSDNamespace+"base64Binary"] = convertBase64
	return table
}

func convertInteger(lexical string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(lexical), 10, 64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func convertFloat(lexical string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(lexical), 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func convertBoolean(lexical string) (any, error) {
	switch strings.TrimSpace(lexical) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return nil, errors.New("not a boolean lexical form")
}

func convertDate(lexical string) (any, error) {
	t, err := time.Parse("2006-01-02", lexical)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func convertTime(lexical string) (any, error) {
	t, err := time.Parse("15:04:05", lexical)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func convertDateTime(lexical string) (any, error) {
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05.999999999",
	} {
		if t, err := time.Parse(layout, lexical); err == nil {
			return t, nil
		}
	}
	return nil, errors.New("not a dateTime lexical form")
}

func convertBase64(lexical string) (any, error) {
	data, err := base64.StdEncoding.DecodeString(lexical)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// escapeLiteral is the canonical re-escape: the exact right inverse of the
// parser's unescape for the characters it would reject raw.
func escapeLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				b.WriteString(strings.ToUpper(hex))
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
