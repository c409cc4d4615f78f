package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Edges derives the unique edge set of the mesh from its triangle index
// buffer. Deduplication runs on Epsilon-quantized position pairs, so the
// colocated copies of a shared edge on adjacent faces collapse to one edge;
// the first index pair seen is kept as the representative. Degenerate
// triangles (two identical indices) contribute only their single real edge.
// When skipQuadDiagonals is true, edges matching the triangulation seams of
// quad/n-gon faces are suppressed.
func Edges(m *Mesh, skipQuadDiagonals bool) []Edge {
	var diagonals map[posPair]struct{}
	if skipQuadDiagonals {
		diagonals = diagonalPairs(m)
	}

	seen := make(map[posPair]struct{})
	var edges []Edge

	emit := func(a, b int) {
		if a == b {
			return
		}
		pp := newPosPair(m.Vertices[a].Position, m.Vertices[b].Position)
		if _, ok := seen[pp]; ok {
			return
		}
		if diagonals != nil {
			if _, diag := diagonals[pp]; diag {
				return
			}
		}
		seen[pp] = struct{}{}
		edges = append(edges, NewEdge(a, b))
	}

	for ti := 0; ti < m.TriangleCount(); ti++ {
		i0, i1, i2 := m.Triangle(ti)
		emit(i0, i1)
		emit(i1, i2)
		emit(i2, i0)
	}
	return edges
}

// ColocatedVertices returns every vertex index, including idx itself, whose
// position is within Epsilon of vertex idx on all three axes.
func ColocatedVertices(m *Mesh, idx int) []int {
	if idx < 0 || idx >= len(m.Vertices) {
		return nil
	}
	p := m.Vertices[idx].Position
	var out []int
	for i, v := range m.Vertices {
		if math32.Abs(v.Position[0]-p[0]) < Epsilon &&
			math32.Abs(v.Position[1]-p[1]) < Epsilon &&
			math32.Abs(v.Position[2]-p[2]) < Epsilon {
			out = append(out, i)
		}
	}
	return out
}

// AdjacentFaces returns, for every vertex index, the logical faces touching
// that vertex's position. Adjacency is computed under colocation, so each of
// the duplicated copies of a corner lists all faces meeting there.
func AdjacentFaces(m *Mesh) [][]int {
	byPos := make(map[string][]int)
	for fi, f := range m.Faces {
		for _, vi := range f.Vertices {
			k := posKey(m.Vertices[vi].Position)
			faces := byPos[k]
			if n := len(faces); n == 0 || faces[n-1] != fi {
				byPos[k] = append(faces, fi)
			}
		}
	}

	out := make([][]int, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = byPos[posKey(v.Position)]
	}
	return out
}

// posPair is an unordered pair of Epsilon-quantized positions.
type posPair struct {
	a, b string
}

func newPosPair(pa, pb mgl32.Vec3) posPair {
	ka, kb := posKey(pa), posKey(pb)
	if ka > kb {
		ka, kb = kb, ka
	}
	return posPair{a: ka, b: kb}
}

// posKey quantizes a position to the Epsilon grid.
func posKey(p mgl32.Vec3) string {
	return fmt.Sprintf("%d,%d,%d",
		int64(math32.Round(p[0]/Epsilon)),
		int64(math32.Round(p[1]/Epsilon)),
		int64(math32.Round(p[2]/Epsilon)))
}

// diagonalPairs collects the position pairs of every fan-triangulation seam:
// for a face loop v0..vn-1 split into (v0,vi,vi+1), the internal edges are
// v0-vi for 1 < i < n-1.
func diagonalPairs(m *Mesh) map[posPair]struct{} {
	pairs := make(map[posPair]struct{})
	for _, f := range m.Faces {
		n := len(f.Vertices)
		if n <= 3 {
			continue
		}
		p0 := m.Vertices[f.Vertices[0]].Position
		for i := 2; i < n-1; i++ {
			pi := m.Vertices[f.Vertices[i]].Position
			pairs[newPosPair(p0, pi)] = struct{}{}
		}
	}
	return pairs
}
