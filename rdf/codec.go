package rdf

import (
	"encoding/binary"
	"fmt"
)

// Wire tags for encoded terms. Tag zero marks an absent term (the default
// graph slot of a statement).
const (
	tagNone      byte = 0
	tagIRI       byte = 'U'
	tagBlankNode byte = 'B'
	tagLiteral   byte = 'L'
	tagVariable  byte = 'V'
)

// TermCodec serializes terms and statements to bytes for storage. It is an
// explicit registry of per-variant decoders: a store that needs to persist
// nodes creates one codec for the session and passes it by reference, rather
// than reaching into ambient process state.
type TermCodec struct {
	decoders map[byte]func(payload []byte) (Term, error)
}

// NewTermCodec creates a codec with the four built-in term variants
// registered.
func NewTermCodec() *TermCodec {
	c := &TermCodec{decoders: map[byte]func([]byte) (Term, error){}}
	c.register(tagIRI, func(p []byte) (Term, error) {
		return NewIRI(string(p)), nil
	})
	c.register(tagBlankNode, func(p []byte) (Term, error) {
		return NewBlankNodeID(string(p)), nil
	})
	c.register(tagVariable, func(p []byte) (Term, error) {
		return NewVariable(string(p)), nil
	})
	c.register(tagLiteral, decodeLiteralPayload)
	return c
}

func (c *TermCodec) register(tag byte, fn func([]byte) (Term, error)) {
	c.decoders[tag] = fn
}

// Encode serializes a term as a tag byte followed by the variant payload.
func (c *TermCodec) Encode(t Term) ([]byte, error) {
	switch v := t.(type) {
	case IRI:
		return append([]byte{tagIRI}, v.value...), nil
	case BlankNode:
		return append([]byte{tagBlankNode}, v.label...), nil
	case Variable:
		return append([]byte{tagVariable}, v.name...), nil
	case Literal:
		payload := appendLenPrefixed(nil, v.value)
		payload = appendLenPrefixed(payload, v.language)
		payload = appendLenPrefixed(payload, v.datatype.value)
		return append([]byte{tagLiteral}, payload...), nil
	default:
		return nil, fmt.Errorf("cannot encode term kind %T", t)
	}
}

// Decode deserializes a term previously produced by Encode.
func (c *TermCodec) Decode(data []byte) (Term, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty term encoding")
	}
	fn, ok := c.decoders[data[0]]
	if !ok {
		return nil, fmt.Errorf("unknown term tag 0x%02x", data[0])
	}
	return fn(data[1:])
}

// EncodeStatement serializes a statement as four length-prefixed term
// encodings. A nil context is written as a single tagNone byte.
func (c *TermCodec) EncodeStatement(st Statement) ([]byte, error) {
	var out []byte
	for _, t := range []Term{st.Subject, st.Predicate, st.Object, st.Context} {
		var enc []byte
		if t == nil {
			enc = []byte{tagNone}
		} else {
			var err error
			enc, err = c.Encode(t)
			if err != nil {
				return nil, err
			}
		}
		out = binary.AppendUvarint(out, uint64(len(enc)))
		out = append(out, enc...)
	}
	return out, nil
}

// DecodeStatement deserializes a statement produced by EncodeStatement.
func (c *TermCodec) DecodeStatement(data []byte) (Statement, error) {
	terms := make([]Term, 0, 4)
	for i := 0; i < 4; i++ {
		n, sz := binary.Uvarint(data)
		if sz <= 0 || uint64(len(data)-sz) < n {
			return Statement{}, fmt.Errorf("truncated statement encoding")
		}
		enc := data[sz : sz+int(n)]
		data = data[sz+int(n):]
		if len(enc) == 1 && enc[0] == tagNone {
			terms = append(terms, nil)
			continue
		}
		t, err := c.Decode(enc)
		if err != nil {
			return Statement{}, err
		}
		terms = append(terms, t)
	}
	return Statement{
		Subject:   terms[0],
		Predicate: terms[1],
		Object:    terms[2],
		Context:   terms[3],
	}, nil
}

func decodeLiteralPayload(p []byte) (Term, error) {
	var fields [3]string
	for i := range fields {
		n, sz := binary.Uvarint(p)
		if sz <= 0 || uint64(len(p)-sz) < n {
			return nil, fmt.Errorf("truncated literal encoding")
		}
		fields[i] = string(p[sz : sz+int(n)])
		p = p[sz+int(n):]
	}
	value, language, datatype := fields[0], fields[1], fields[2]
	if language != "" {
		return NewLangLiteral(value, language), nil
	}
	if datatype != "" {
		return NewTypedLiteral(value, NewIRI(datatype)), nil
	}
	return NewLiteral(value), nil
}

func appendLenPrefixed(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}
