package store

import "github.com/wbrown/janus-rdf/rdf"

// Index orderings for the badger key layout. Every statement is written
// under all four, so any single bound slot (or a bound context) has an index
// whose prefix serves it.
type indexType byte

const (
	idxSPOC indexType = iota + 1 // Subject-Predicate-Object-Context
	idxPOSC                      // Predicate-Object-Subject-Context
	idxOSPC                      // Object-Subject-Predicate-Context
	idxCSPO                      // Context-Subject-Predicate-Object
)

var allIndexes = []indexType{idxSPOC, idxPOSC, idxOSPC, idxCSPO}

const hashLen = 20

// zeroHash stands in for the default graph in the context slot.
var zeroHash [hashLen]byte

func hashOf(t rdf.Term) [hashLen]byte {
	if t == nil {
		return zeroHash
	}
	return t.Hash()
}

// statementKey builds the full key for one statement under one index:
// the index byte followed by the four term hashes in index order.
func statementKey(idx indexType, st rdf.Statement) []byte {
	s, p, o, c := hashOf(st.Subject), hashOf(st.Predicate), hashOf(st.Object), hashOf(st.Context)
	key := make([]byte, 0, 1+4*hashLen)
	key = append(key, byte(idx))
	for _, h := range keyOrder(idx, s, p, o, c) {
		key = append(key, h[:]...)
	}
	return key
}

func keyOrder(idx indexType, s, p, o, c [hashLen]byte) [4][hashLen]byte {
	switch idx {
	case idxPOSC:
		return [4][hashLen]byte{p, o, s, c}
	case idxOSPC:
		return [4][hashLen]byte{o, s, p, c}
	case idxCSPO:
		return [4][hashLen]byte{c, s, p, o}
	default:
		return [4][hashLen]byte{s, p, o, c}
	}
}

// scanPrefix picks the index whose leading slots cover the most bound
// pattern positions and returns its key prefix. Unbound trailing slots are
// filtered after decoding, as is any slot the chosen prefix cannot express.
func scanPrefix(p Pattern, context rdf.Term) []byte {
	prefix := func(idx indexType, hashes ...[hashLen]byte) []byte {
		out := make([]byte, 0, 1+len(hashes)*hashLen)
		out = append(out, byte(idx))
		for _, h := range hashes {
			out = append(out, h[:]...)
		}
		return out
	}

	if context != nil {
		hashes := [][hashLen]byte{hashOf(context)}
		if p.Subject != nil {
			hashes = append(hashes, hashOf(p.Subject))
			if p.Predicate != nil {
				hashes = append(hashes, hashOf(p.Predicate))
				if p.Object != nil {
					hashes = append(hashes, hashOf(p.Object))
				}
			}
		}
		return prefix(idxCSPO, hashes...)
	}

	switch {
	case p.Subject != nil:
		hashes := [][hashLen]byte{hashOf(p.Subject)}
		if p.Predicate != nil {
			hashes = append(hashes, hashOf(p.Predicate))
			if p.Object != nil {
				hashes = append(hashes, hashOf(p.Object))
			}
		}
		return prefix(idxSPOC, hashes...)
	case p.Predicate != nil:
		hashes := [][hashLen]byte{hashOf(p.Predicate)}
		if p.Object != nil {
			hashes = append(hashes, hashOf(p.Object))
		}
		return prefix(idxPOSC, hashes...)
	case p.Object != nil:
		return prefix(idxOSPC, hashOf(p.Object))
	default:
		return prefix(idxSPOC)
	}
}
