package mesh

import (
	"fmt"
	"strconv"
	"strings"
)

// Edge is an undirected edge between two vertex indices. NewEdge
// canonicalizes the order, so an Edge value is usable directly as a map key
// without string allocation on hot paths.
type Edge struct {
	V0, V1 int
}

// NewEdge returns the canonical edge for the pair, with V0 <= V1.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{V0: a, V1: b}
}

// Key returns the canonical string form "v0-v1", with v0 <= v1. Key(a,b)
// and Key(b,a) are identical.
func (e Edge) Key() string {
	return fmt.Sprintf("%d-%d", e.V0, e.V1)
}

// ParseEdgeKey parses a canonical edge key back into an Edge. Returns false
// for malformed input.
func ParseEdgeKey(key string) (Edge, bool) {
	sep := strings.IndexByte(key, '-')
	if sep <= 0 || sep == len(key)-1 {
		return Edge{}, false
	}
	v0, err0 := strconv.Atoi(key[:sep])
	v1, err1 := strconv.Atoi(key[sep+1:])
	if err0 != nil || err1 != nil || v0 < 0 || v1 < 0 {
		return Edge{}, false
	}
	return NewEdge(v0, v1), true
}
