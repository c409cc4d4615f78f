package mesh

import "github.com/go-gl/mathgl/mgl32"

// NewTriangle builds a mesh containing a single triangle face.
func NewTriangle(a, b, c mgl32.Vec3) *Mesh {
	m := &Mesh{}
	n := normalOf(a, b, c)
	m.Vertices = append(m.Vertices,
		Vertex{Position: a, Normal: n, TexCoord: mgl32.Vec2{0, 0}},
		Vertex{Position: b, Normal: n, TexCoord: mgl32.Vec2{1, 0}},
		Vertex{Position: c, Normal: n, TexCoord: mgl32.Vec2{0, 1}},
	)
	m.addFace(0, 1, 2)
	return m
}

// NewPlane builds a single quad face in the XZ plane, centered at origin.
func NewPlane(width, depth float32) *Mesh {
	w, d := width/2, depth/2
	m := &Mesh{}
	up := mgl32.Vec3{0, 1, 0}
	m.Vertices = append(m.Vertices,
		Vertex{Position: mgl32.Vec3{-w, 0, -d}, Normal: up, TexCoord: mgl32.Vec2{0, 0}},
		Vertex{Position: mgl32.Vec3{-w, 0, d}, Normal: up, TexCoord: mgl32.Vec2{0, 1}},
		Vertex{Position: mgl32.Vec3{w, 0, d}, Normal: up, TexCoord: mgl32.Vec2{1, 1}},
		Vertex{Position: mgl32.Vec3{w, 0, -d}, Normal: up, TexCoord: mgl32.Vec2{1, 0}},
	)
	m.addFace(0, 1, 2, 3)
	return m
}

// NewCube builds an axis-aligned cube of the given edge length, centered at
// the origin. Six quad faces with per-face vertex duplication (24 vertices,
// 12 triangles), so each corner position is shared by three colocated
// vertices.
func NewCube(size float32) *Mesh {
	h := size / 2
	m := &Mesh{}

	quads := [6]struct {
		corners [4]mgl32.Vec3
		normal  mgl32.Vec3
	}{
		{ // +Z front
			[4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}},
			mgl32.Vec3{0, 0, 1},
		},
		{ // -Z back
			[4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}},
			mgl32.Vec3{0, 0, -1},
		},
		{ // +X right
			[4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}},
			mgl32.Vec3{1, 0, 0},
		},
		{ // -X left
			[4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}},
			mgl32.Vec3{-1, 0, 0},
		},
		{ // +Y top
			[4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}},
			mgl32.Vec3{0, 1, 0},
		},
		{ // -Y bottom
			[4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}},
			mgl32.Vec3{0, -1, 0},
		},
	}

	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, q := range quads {
		base := len(m.Vertices)
		for i, p := range q.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: q.normal, TexCoord: uvs[i]})
		}
		m.addFace(base, base+1, base+2, base+3)
	}
	return m
}

func normalOf(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return mgl32.Vec3{}
}
