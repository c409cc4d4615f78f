package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/internal/engine/scene"
	"github.com/Faultbox/meshedit/pkg/geom"
)

// Default pick tolerances, in pixels and NDC depth.
const (
	DefaultVertexPickRadius = 25.0
	DefaultEdgePickRadius   = 30.0
	DefaultDepthTolerance   = 0.01
)

// Picker resolves screen-space clicks against scene geometry. Radii are
// strict upper bounds: a candidate exactly on the boundary is rejected.
type Picker struct {
	VertexPickRadius float32
	EdgePickRadius   float32
	DepthTolerance   float32
}

// NewPicker returns a picker with the default tolerances.
func NewPicker() *Picker {
	return &Picker{
		VertexPickRadius: DefaultVertexPickRadius,
		EdgePickRadius:   DefaultEdgePickRadius,
		DepthTolerance:   DefaultDepthTolerance,
	}
}

// PickObject returns the visible object whose surface is nearest along the
// click ray, or nil. Objects are prefiltered by a ray/AABB slab test before
// exact triangle intersection. Exact distance ties keep the first object in
// iteration order.
func (p *Picker) PickObject(x, y float32, objects []*scene.Object, ctx Context) *scene.Object {
	ray := ScreenToRay(x, y, ctx)

	var best *scene.Object
	bestDist := float32(math32.MaxFloat32)

	for _, obj := range objects {
		if !obj.Visible || obj.Mesh == nil {
			continue
		}
		if _, hit := ray.IntersectAABB(obj.WorldBounds()); !hit {
			continue
		}

		model := obj.ModelMatrix()
		for ti := 0; ti < obj.Mesh.TriangleCount(); ti++ {
			i0, i1, i2 := obj.Mesh.Triangle(ti)
			a := mgl32.TransformCoordinate(obj.Mesh.Vertices[i0].Position, model)
			b := mgl32.TransformCoordinate(obj.Mesh.Vertices[i1].Position, model)
			c := mgl32.TransformCoordinate(obj.Mesh.Vertices[i2].Position, model)

			if t, hit := ray.IntersectTriangle(a, b, c); hit && t < bestDist {
				bestDist = t
				best = obj
			}
		}
	}
	return best
}

// PickVertex returns the index of the closest vertex within the vertex pick
// radius, or -1, false.
func (p *Picker) PickVertex(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (int, bool) {
	idx, _, ok := p.PickVertexWithDistance(x, y, m, model, ctx)
	return idx, ok
}

// PickVertexWithDistance is PickVertex plus the winning screen distance, for
// callers that need confidence information.
func (p *Picker) PickVertexWithDistance(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (int, float32, bool) {
	idx, dist := p.nearestVertex(x, y, m, model, ctx, nil)
	if idx < 0 || dist >= p.VertexPickRadius {
		return -1, 0, false
	}
	return idx, dist, true
}

// nearestVertex finds the closest projected vertex to the click. When gate
// is non-nil, vertices deeper than *gate plus the depth tolerance are
// excluded.
func (p *Picker) nearestVertex(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context, gate *float32) (int, float32) {
	click := mgl32.Vec2{x, y}
	best := -1
	bestDist := float32(math32.MaxFloat32)

	for i := range m.Vertices {
		sp, ok := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[i].Position, model), ctx)
		if !ok {
			continue
		}
		if gate != nil && sp.Z > *gate+p.DepthTolerance {
			continue
		}
		if d := click.Sub(sp.Vec2()).Len(); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, bestDist
}

// PickEdge returns the closest edge within the edge pick radius. Quad
// triangulation seams are never pickable.
func (p *Picker) PickEdge(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (mesh.Edge, bool) {
	e, _, ok := p.PickEdgeWithDistance(x, y, m, model, ctx)
	return e, ok
}

// PickEdgeWithDistance is PickEdge plus the winning screen distance.
func (p *Picker) PickEdgeWithDistance(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (mesh.Edge, float32, bool) {
	e, dist := p.nearestEdge(x, y, m, model, ctx, nil)
	if dist >= p.EdgePickRadius {
		return mesh.Edge{}, 0, false
	}
	return e, dist, true
}

func (p *Picker) nearestEdge(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context, gate *float32) (mesh.Edge, float32) {
	click := mgl32.Vec2{x, y}
	var best mesh.Edge
	bestDist := float32(math32.MaxFloat32)

	for _, e := range mesh.Edges(m, true) {
		sp0, ok0 := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[e.V0].Position, model), ctx)
		sp1, ok1 := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[e.V1].Position, model), ctx)
		if !ok0 || !ok1 {
			continue
		}
		if gate != nil && (sp0.Z+sp1.Z)/2 > *gate+p.DepthTolerance {
			continue
		}
		if d := geom.PointSegmentDistance2D(click, sp0.Vec2(), sp1.Vec2()); d < bestDist {
			bestDist = d
			best = e
		}
	}
	return best, bestDist
}

// PickFace returns the logical face under the click, or -1, false.
func (p *Picker) PickFace(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (int, bool) {
	fi, _, ok := p.PickFaceWithDepth(x, y, m, model, ctx)
	return fi, ok
}

// PickFaceWithDepth tests the click against every projected triangle and,
// among the containing ones, returns the logical face with the smallest
// average NDC depth.
func (p *Picker) PickFaceWithDepth(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (int, float32, bool) {
	click := mgl32.Vec2{x, y}
	bestTri := -1
	bestDepth := float32(math32.MaxFloat32)

	for ti := 0; ti < m.TriangleCount(); ti++ {
		i0, i1, i2 := m.Triangle(ti)
		sp0, ok0 := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[i0].Position, model), ctx)
		sp1, ok1 := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[i1].Position, model), ctx)
		sp2, ok2 := ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[i2].Position, model), ctx)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		if !geom.PointInTriangle2D(click, sp0.Vec2(), sp1.Vec2(), sp2.Vec2()) {
			continue
		}
		if depth := (sp0.Z + sp1.Z + sp2.Z) / 3; depth < bestDepth {
			bestDepth = depth
			bestTri = ti
		}
	}

	if bestTri < 0 {
		return -1, 0, false
	}
	return m.GetFaceForTriangle(bestTri), bestDepth, true
}

// PickVertexSmart emulates "click a face, select its nearest vertex". When
// the click lands on a face, the search is restricted to vertices no deeper
// than the hit face (plus the depth tolerance), ungated by radius; when the
// click lands in empty space it falls back to the ordinary radius-gated
// pick.
func (p *Picker) PickVertexSmart(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (int, bool) {
	_, depth, hit := p.PickFaceWithDepth(x, y, m, model, ctx)
	if !hit {
		return p.PickVertex(x, y, m, model, ctx)
	}
	idx, _ := p.nearestVertex(x, y, m, model, ctx, &depth)
	return idx, idx >= 0
}

// PickEdgeSmart is the edge variant of PickVertexSmart, gating on the mean
// depth of each edge's projected endpoints.
func (p *Picker) PickEdgeSmart(x, y float32, m *mesh.Mesh, model mgl32.Mat4, ctx Context) (mesh.Edge, bool) {
	_, depth, hit := p.PickFaceWithDepth(x, y, m, model, ctx)
	if !hit {
		return p.PickEdge(x, y, m, model, ctx)
	}
	e, dist := p.nearestEdge(x, y, m, model, ctx, &depth)
	if dist == float32(math32.MaxFloat32) {
		return mesh.Edge{}, false
	}
	return e, true
}
