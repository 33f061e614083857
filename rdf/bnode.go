package rdf

import (
	"math/rand"
	"strconv"
	"sync"
)

// Generated blank node labels are a process-wide random prefix followed by a
// serial number, so labels minted by concurrent parsers in one process never
// collide, and labels minted by separate processes are unlikely to.
var (
	bnodeMu     sync.Mutex
	bnodeSerial uint64
	bnodePrefix = randomPrefix(8)
)

// NewBlankNode creates a blank node with a generated label that is unique
// for the lifetime of the process.
func NewBlankNode() BlankNode {
	bnodeMu.Lock()
	n := bnodeSerial
	bnodeSerial++
	bnodeMu.Unlock()
	return BlankNode{label: bnodePrefix + strconv.FormatUint(n, 10)}
}

func randomPrefix(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = letters[rand.Intn(len(letters))]
	}
	return string(buf)
}
