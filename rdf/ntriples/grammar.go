package ntriples

import "regexp"

// The fixed grammar of the N-Triples line syntax. The whitespace split
// between reWspace and reWspaces is load-bearing: leading whitespace on a
// line is optional, the gaps between subject, predicate, and object require
// at least one space or tab.
const (
	patURIRef  = `<([^:]+:[^\s"<>]+)>`
	patLiteral = `"([^"\\]*(?:\\.[^"\\]*)*)"`
)

var (
	reLine    = regexp.MustCompile(`^([^\r\n]*)(?:\r\n|\r|\n)`)
	reWspace  = regexp.MustCompile(`^[ \t]*`)
	reWspaces = regexp.MustCompile(`^[ \t]+`)
	reTail    = regexp.MustCompile(`^[ \t]*\.[ \t]*`)
	reURIRef  = regexp.MustCompile(`^` + patURIRef)
	reNodeID  = regexp.MustCompile(`^_:([A-Za-z][A-Za-z0-9]*)`)
	reLiteral = regexp.MustCompile(`^` + patLiteral)
	reLang    = regexp.MustCompile(`^@([a-z]+(?:-[a-z0-9]+)*)`)
	reDType   = regexp.MustCompile(`^\^\^` + patURIRef)
)
