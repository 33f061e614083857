package rdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMakeLiteralTypeConflict(t *testing.T) {
	dt := XSD("integer")
	for _, lang := range []string{"en", "de", "en-us"} {
		_, err := MakeLiteral("x", lang, &dt)
		require.ErrorIs(t, err, ErrTypeConflict, "lang=%s", lang)
	}

	// Either alone is fine.
	_, err := MakeLiteral("x", "en", nil)
	require.NoError(t, err)
	_, err = MakeLiteral("1", "", &dt)
	require.NoError(t, err)
}

func TestLiteralNativeConversion(t *testing.T) {
	tests := []struct {
		value    string
		datatype string
		want     any
	}{
		{"1", "integer", int64(1)},
		{"-42", "int", int64(-42)},
		{"1.5", "float", 1.5},
		{"2.5", "double", 2.5},
		{"true", "boolean", true},
		{"false", "boolean", false},
		{"aGVsbG8=", "base64Binary", []byte("hello")},
	}

	for _, tt := range tests {
		lit := NewTypedLiteral(tt.value, XSD(tt.datatype))
		require.Equal(t, tt.want, lit.Native(), "%s^^%s", tt.value, tt.datatype)
	}
}

func TestLiteralDateTimeConversion(t *testing.T) {
	lit := NewTypedLiteral("2006-01-01", XSD("date"))
	native, ok := lit.Native().(time.Time)
	require.True(t, ok)
	require.Equal(t, 2006, native.Year())

	lit = NewTypedLiteral("2007-01-01T10:00:00", XSD("dateTime"))
	native, ok = lit.Native().(time.Time)
	require.True(t, ok)
	require.Equal(t, 10, native.Hour())
}

func TestLiteralNativeFallback(t *testing.T) {
	// Unregistered datatype: the literal is its own native value.
	lit := NewTypedLiteral("1", NewIRI("http://example.org/ns#foo"))
	require.Equal(t, lit, lit.Native())
}

func TestLiteralEquality(t *testing.T) {
	require.True(t, NewLiteral("a").Equal(NewLiteral("a")))
	require.False(t, NewLiteral("a").Equal(NewLiteral("b")))

	require.True(t, NewLangLiteral("one", "en").Equal(NewLangLiteral("one", "en")))
	require.False(t, NewLangLiteral("hast", "en").Equal(NewLangLiteral("hast", "de")))

	integer := XSD("integer")
	require.True(t, NewTypedLiteral("1", integer).Equal(NewTypedLiteral("1", integer)))
	require.False(t, NewTypedLiteral("1", integer).Equal(NewTypedLiteral("1", XSD("double"))))
	require.False(t, NewTypedLiteral("1", integer).Equal(NewLiteral("1")))
	require.False(t, NewLangLiteral("a", "en").Equal(NewLiteral("a")))
}

func TestLiteralOrdering(t *testing.T) {
	one := NewTypedLiteral("1", XSD("integer"))
	two := NewTypedLiteral("2", XSD("integer"))
	twoFloat := NewTypedLiteral("2.0", XSD("float"))

	require.True(t, one.Less(two))
	require.False(t, two.Less(one))
	// Numeric-likes compare across datatypes.
	require.True(t, one.Less(twoFloat))

	// Non-numeric cross-type pairs are unordered.
	require.False(t, NewLiteral("1").Less(one))
	require.False(t, one.Less(NewLiteral("2")))
	require.False(t, NewLangLiteral("a", "en").Less(NewLangLiteral("b", "de")))

	// Same shape, lexicographic.
	require.True(t, NewLiteral("a").Less(NewLiteral("b")))

	d1 := NewTypedLiteral("2006-01-01", XSD("date"))
	d2 := NewTypedLiteral("2007-01-01", XSD("date"))
	require.True(t, d1.Less(d2))
	require.False(t, d2.Less(d1))
}

func TestBindDatatype(t *testing.T) {
	dt := NewIRI("http://example.org/ns#celsius")
	Bind(dt, func(lexical string) (any, error) {
		return "celsius:" + lexical, nil
	})
	require.Equal(t, "celsius:20", NewTypedLiteral("20", dt).Native())

	// Rebinding wins silently; it is logged, never an error.
	Bind(dt, func(lexical string) (any, error) {
		return "rebound:" + lexical, nil
	})
	require.Equal(t, "rebound:20", NewTypedLiteral("20", dt).Native())
}
