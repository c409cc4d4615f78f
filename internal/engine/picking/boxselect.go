package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/internal/engine/scene"
	"github.com/Faultbox/meshedit/pkg/geom"
)

// Box select uses inclusive rectangle bounds, unlike the strict radii of
// point picking. Element selection excludes geometry whose every adjacent
// logical face points away from the camera, so a marquee over a closed mesh
// does not grab its far side.

func inBox(p mgl32.Vec2, minX, minY, maxX, maxY float32) bool {
	return p[0] >= minX && p[0] <= maxX && p[1] >= minY && p[1] <= maxY
}

// BoxSelectObjects returns every visible object whose projected world
// bounds overlap the screen rectangle.
func (p *Picker) BoxSelectObjects(minX, minY, maxX, maxY float32, objects []*scene.Object, ctx Context) []*scene.Object {
	var out []*scene.Object
	for _, obj := range objects {
		if !obj.Visible {
			continue
		}

		projMinX := float32(0)
		projMinY := float32(0)
		projMaxX := float32(0)
		projMaxY := float32(0)
		any := false
		for _, corner := range obj.WorldBounds().Corners() {
			sp, ok := ProjectToScreen(corner, ctx)
			if !ok {
				continue
			}
			if !any {
				projMinX, projMaxX = sp.X, sp.X
				projMinY, projMaxY = sp.Y, sp.Y
				any = true
				continue
			}
			if sp.X < projMinX {
				projMinX = sp.X
			}
			if sp.X > projMaxX {
				projMaxX = sp.X
			}
			if sp.Y < projMinY {
				projMinY = sp.Y
			}
			if sp.Y > projMaxY {
				projMaxY = sp.Y
			}
		}
		if !any {
			continue
		}

		if projMinX <= maxX && projMaxX >= minX && projMinY <= maxY && projMaxY >= minY {
			out = append(out, obj)
		}
	}
	return out
}

// BoxSelectVertices returns the vertices projecting inside the rectangle,
// excluding fully backfacing ones.
func (p *Picker) BoxSelectVertices(minX, minY, maxX, maxY float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) []int {
	facing := faceFacings(m, model, ctx)
	adjacency := mesh.AdjacentFaces(m)

	var out []int
	for i := range m.Vertices {
		sp, ok := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[i].Position, model), ctx)
		if !ok || !inBox(sp.Vec2(), minX, minY, maxX, maxY) {
			continue
		}
		if fullyBackfacing(adjacency[i], facing) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// BoxSelectEdges returns the edges whose both endpoints project inside the
// rectangle, excluding fully backfacing ones.
func (p *Picker) BoxSelectEdges(minX, minY, maxX, maxY float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) []mesh.Edge {
	facing := faceFacings(m, model, ctx)
	adjacency := mesh.AdjacentFaces(m)

	var out []mesh.Edge
	for _, e := range mesh.Edges(m, true) {
		sp0, ok0 := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[e.V0].Position, model), ctx)
		sp1, ok1 := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[e.V1].Position, model), ctx)
		if !ok0 || !ok1 {
			continue
		}
		if !inBox(sp0.Vec2(), minX, minY, maxX, maxY) || !inBox(sp1.Vec2(), minX, minY, maxX, maxY) {
			continue
		}
		if fullyBackfacing(edgeFaces(adjacency, e), facing) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// BoxSelectFaces returns the logical faces all of whose corners project
// inside the rectangle, excluding backfacing ones.
func (p *Picker) BoxSelectFaces(minX, minY, maxX, maxY float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) []int {
	facing := faceFacings(m, model, ctx)

	var out []int
	for fi, f := range m.Faces {
		inside := len(f.Vertices) > 0
		for _, vi := range f.Vertices {
			sp, ok := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[vi].Position, model), ctx)
			if !ok || !inBox(sp.Vec2(), minX, minY, maxX, maxY) {
				inside = false
				break
			}
		}
		if inside && facing[fi] {
			out = append(out, fi)
		}
	}
	return out
}

// faceFacings reports, per logical face, whether its world-space normal
// faces the camera.
func faceFacings(m *mesh.Mesh, model mgl32.Mat4, ctx Context) []bool {
	camPos := ctx.Camera.Position()
	facing := make([]bool, len(m.Faces))

	for fi, f := range m.Faces {
		if len(f.Vertices) < 3 {
			facing[fi] = true // Degenerate faces are never culled
			continue
		}
		a := mgl32.TransformCoordinate(m.Vertices[f.Vertices[0]].Position, model)
		b := mgl32.TransformCoordinate(m.Vertices[f.Vertices[1]].Position, model)
		c := mgl32.TransformCoordinate(m.Vertices[f.Vertices[2]].Position, model)

		normal := geom.TriangleNormal(a, b, c)
		center := mgl32.TransformCoordinate(m.FaceCenter(fi), model)
		facing[fi] = normal.Dot(camPos.Sub(center)) > 0
	}
	return facing
}

// fullyBackfacing reports whether the element has adjacent faces and none
// of them faces the camera. Elements with no face adjacency (loose points)
// are never excluded.
func fullyBackfacing(faces []int, facing []bool) bool {
	if len(faces) == 0 {
		return false
	}
	for _, fi := range faces {
		if facing[fi] {
			return false
		}
	}
	return true
}

// edgeFaces returns the faces adjacent to both endpoints of the edge, which
// are the faces the edge itself borders.
func edgeFaces(adjacency [][]int, e mesh.Edge) []int {
	var out []int
	for _, fa := range adjacency[e.V0] {
		for _, fb := range adjacency[e.V1] {
			if fa == fb {
				out = append(out, fa)
				break
			}
		}
	}
	return out
}
