package store

import (
	"sort"
	"sync"

	"github.com/wbrown/janus-rdf/rdf"
)

// PrefixBinding pairs a prefix with the namespace IRI bound to it.
type PrefixBinding struct {
	Prefix    string
	Namespace rdf.IRI
}

// prefixRegistry is the prefix<->namespace table every backend carries via
// Base. Bind keeps both lookup directions consistent: rebinding either side
// drops the stale pairing.
type prefixRegistry struct {
	mu      sync.RWMutex
	forward map[string]rdf.IRI // prefix -> namespace
	reverse map[string]string  // namespace -> prefix
}

func (r *prefixRegistry) bind(prefix string, namespace rdf.IRI) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forward == nil {
		r.forward = map[string]rdf.IRI{}
		r.reverse = map[string]string{}
	}
	if old, ok := r.forward[prefix]; ok {
		delete(r.reverse, old.String())
	}
	if old, ok := r.reverse[namespace.String()]; ok {
		delete(r.forward, old)
	}
	r.forward[prefix] = namespace
	r.reverse[namespace.String()] = prefix
}

func (r *prefixRegistry) prefix(namespace rdf.IRI) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.reverse[namespace.String()]
	return p, ok
}

func (r *prefixRegistry) namespace(prefix string) (rdf.IRI, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ns, ok := r.forward[prefix]
	return ns, ok
}

func (r *prefixRegistry) all() []PrefixBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PrefixBinding, 0, len(r.forward))
	for prefix, ns := range r.forward {
		out = append(out, PrefixBinding{Prefix: prefix, Namespace: ns})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}
