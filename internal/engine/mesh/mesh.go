// Package mesh provides the editable mesh data model: vertices, a flat
// triangle index buffer, and the logical face list that picking and
// selection operate on.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/pkg/geom"
)

// Epsilon is the shared colocation tolerance. Quad-diagonal position keys
// and colocated-vertex queries must use the same value, otherwise merge
// decisions diverge between topology and selection.
const Epsilon = 1e-4

// Vertex is a single mesh vertex. Positions are duplicated per face for
// hard normals, so several vertices may share one position.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Face is a logical face (triangle, quad or n-gon). Vertices lists the
// corner vertex indices in loop order; Triangles lists the triangle indices
// produced when the face was fan-triangulated into the index buffer.
type Face struct {
	Vertices  []int
	Triangles []int
}

// Mesh holds vertices, the triangle index buffer, and logical faces.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Faces    []Face

	faceOfTriangle []int
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle ti.
func (m *Mesh) Triangle(ti int) (int, int, int) {
	return int(m.Indices[ti*3]), int(m.Indices[ti*3+1]), int(m.Indices[ti*3+2])
}

// GetTrianglesForFace returns the triangle indices owned by logical face fi,
// or nil when fi is out of range.
func (m *Mesh) GetTrianglesForFace(fi int) []int {
	if fi < 0 || fi >= len(m.Faces) {
		return nil
	}
	return m.Faces[fi].Triangles
}

// GetFaceForTriangle returns the logical face owning triangle ti, or -1.
func (m *Mesh) GetFaceForTriangle(ti int) int {
	if m.faceOfTriangle == nil {
		m.faceOfTriangle = make([]int, m.TriangleCount())
		for i := range m.faceOfTriangle {
			m.faceOfTriangle[i] = -1
		}
		for fi := range m.Faces {
			for _, t := range m.Faces[fi].Triangles {
				if t >= 0 && t < len(m.faceOfTriangle) {
					m.faceOfTriangle[t] = fi
				}
			}
		}
	}
	if ti < 0 || ti >= len(m.faceOfTriangle) {
		return -1
	}
	return m.faceOfTriangle[ti]
}

// Bounds returns the local-space AABB of all vertices. An empty mesh yields
// a zero box.
func (m *Mesh) Bounds() geom.AABB {
	if len(m.Vertices) == 0 {
		return geom.AABB{}
	}
	b := geom.AABB{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b.Extend(v.Position)
	}
	return b
}

// FaceCenter returns the mean of the face's corner positions.
func (m *Mesh) FaceCenter(fi int) mgl32.Vec3 {
	f := m.Faces[fi]
	var c mgl32.Vec3
	if len(f.Vertices) == 0 {
		return c
	}
	for _, vi := range f.Vertices {
		c = c.Add(m.Vertices[vi].Position)
	}
	return c.Mul(1 / float32(len(f.Vertices)))
}

// FaceNormal returns the geometric normal of face fi from its first
// triangle's corners.
func (m *Mesh) FaceNormal(fi int) mgl32.Vec3 {
	f := m.Faces[fi]
	if len(f.Vertices) < 3 {
		return mgl32.Vec3{}
	}
	return geom.TriangleNormal(
		m.Vertices[f.Vertices[0]].Position,
		m.Vertices[f.Vertices[1]].Position,
		m.Vertices[f.Vertices[2]].Position,
	)
}

// addFace appends a logical face loop, fan-triangulating it into the index
// buffer. The vertex indices must already exist.
func (m *Mesh) addFace(loop ...int) {
	face := Face{Vertices: loop}
	for i := 1; i+1 < len(loop); i++ {
		face.Triangles = append(face.Triangles, m.TriangleCount())
		m.Indices = append(m.Indices, uint32(loop[0]), uint32(loop[i]), uint32(loop[i+1]))
	}
	m.Faces = append(m.Faces, face)
	m.faceOfTriangle = nil
}
