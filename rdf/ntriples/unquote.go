package ntriples

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var shortEscapes = map[byte]byte{
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
}

// Unquote decodes the escaped body of an N-Triples literal. The scan is
// strict: it never drops or substitutes invalid input. Raw characters other
// than backslash, quote, and the control range below 0x20 pass through
// verbatim; everything else must arrive as a recognized escape.
func Unquote(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c == '\\' {
			n, err := unescapeAt(&b, s[i:])
			if err != nil {
				return "", err
			}
			i += n
			continue
		}
		if c == '"' || c < 0x20 {
			return "", parseErr(ErrIllegalCharacter, "", strconv.QuoteRune(rune(c)))
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String(), nil
}

// unescapeAt decodes one escape sequence at the start of s (which begins
// with a backslash) and reports how many input bytes it consumed.
func unescapeAt(b *strings.Builder, s string) (int, error) {
	if len(s) < 2 {
		return 0, parseErr(ErrMalformedEscape, "", "dangling backslash")
	}
	if out, ok := shortEscapes[s[1]]; ok {
		b.WriteByte(out)
		return 2, nil
	}

	var digits int
	switch s[1] {
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	default:
		return 0, parseErr(ErrMalformedEscape, "", "\\"+string(s[1]))
	}
	if len(s) < 2+digits {
		return 0, parseErr(ErrMalformedEscape, "", "truncated \\"+string(s[1])+" escape")
	}
	hex := s[2 : 2+digits]
	codepoint, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || hex != strings.ToUpper(hex) {
		return 0, parseErr(ErrMalformedEscape, "", "\\"+string(s[1])+hex)
	}
	if codepoint > 0x10FFFF || (codepoint >= 0xD800 && codepoint <= 0xDFFF) {
		// Surrogate halves cannot be carried in a UTF-8 string without
		// silent substitution, so they are rejected too.
		return 0, parseErr(ErrInvalidCodepoint, "", "U+"+hex)
	}
	b.WriteRune(rune(codepoint))
	return 2 + digits, nil
}
