package rdf

import (
	"sync"
	"testing"
)

func TestIRIEquality(t *testing.T) {
	a := NewIRI("http://example.org/a")
	b := NewIRI("http://example.org/a")
	c := NewIRI("http://example.org/c")

	if !a.Equal(b) {
		t.Error("IRIs with equal strings must be equal")
	}
	if a.Equal(c) {
		t.Error("IRIs with different strings must not be equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal IRIs must hash identically")
	}
}

func TestCrossVariantEquality(t *testing.T) {
	iri := NewIRI("foo")
	bnode := NewBlankNodeID("foo")

	if iri.Equal(bnode) || bnode.Equal(iri) {
		t.Error("IRI and blank node with the same text must not be equal")
	}
	if iri.Hash() == bnode.Hash() {
		t.Error("IRI and blank node with the same text must not hash alike")
	}
}

func TestResolveIRI(t *testing.T) {
	tests := []struct {
		name  string
		value string
		base  string
		want  string
	}{
		{
			name:  "relative path",
			value: "g",
			base:  "http://example.org/b/c",
			want:  "http://example.org/b/g",
		},
		{
			name:  "absolute wins",
			value: "http://other.org/x",
			base:  "http://example.org/",
			want:  "http://other.org/x",
		},
		{
			name:  "trailing hash survives",
			value: "ns#",
			base:  "http://example.org/",
			want:  "http://example.org/ns#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveIRI(tt.value, tt.base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestIRIDefrag(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"http://example.org/ns#thing", "http://example.org/ns"},
		{"http://example.org/ns#", "http://example.org/ns"},
		{"http://example.org/ns", "http://example.org/ns"},
	}

	for _, tt := range tests {
		if got := NewIRI(tt.value).Defrag().String(); got != tt.want {
			t.Errorf("Defrag of %q = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestN3Forms(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{NewIRI("http://example.org/a"), "<http://example.org/a>"},
		{NewBlankNodeID("n1"), "_:n1"},
		{NewVariable("x"), "?x"},
		{NewVariable("?x"), "?x"},
		{NewLiteral("hi"), `"hi"`},
		{NewLangLiteral("hi", "en"), `"hi"@en`},
		{NewTypedLiteral("1", XSD("integer")), `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`},
	}

	for _, tt := range tests {
		if got := tt.term.N3(); got != tt.want {
			t.Errorf("N3() = %q, want %q", got, tt.want)
		}
	}
}

func TestBlankNodeGeneration(t *testing.T) {
	const n = 1000
	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		label := NewBlankNode().String()
		if seen[label] {
			t.Fatalf("duplicate generated label %q", label)
		}
		seen[label] = true
	}
}

func TestBlankNodeGenerationConcurrent(t *testing.T) {
	const workers = 8
	const perWorker = 500

	var wg sync.WaitGroup
	labels := make(chan string, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				labels <- NewBlankNode().String()
			}
		}()
	}
	wg.Wait()
	close(labels)

	seen := map[string]bool{}
	for label := range labels {
		if seen[label] {
			t.Fatalf("duplicate generated label %q", label)
		}
		seen[label] = true
	}
	if len(seen) != workers*perWorker {
		t.Errorf("expected %d distinct labels, got %d", workers*perWorker, len(seen))
	}
}
