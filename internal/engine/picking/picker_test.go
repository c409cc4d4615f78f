package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/internal/engine/scene"
)

func frontCorner(t *testing.T, ctx Context, m *mesh.Mesh, model mgl32.Mat4, corner mgl32.Vec3) ScreenPoint {
	t.Helper()
	sp, ok := ProjectToScreen(mgl32.TransformCoordinate(corner, model), ctx)
	if !ok {
		t.Fatalf("corner %v should project", corner)
	}
	return sp
}

func TestPickVertex(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	corner := mgl32.Vec3{0.5, 0.5, 0.5}
	sp := frontCorner(t, ctx, m, model, corner)

	idx, dist, ok := p.PickVertexWithDistance(sp.X, sp.Y, m, model, ctx)
	if !ok {
		t.Fatal("expected a vertex hit")
	}
	if dist > 0.01 {
		t.Errorf("distance at exact projection: got %f, want ~0", dist)
	}
	if m.Vertices[idx].Position != corner {
		t.Errorf("picked vertex at %v, want %v", m.Vertices[idx].Position, corner)
	}
}

func TestPickVertexOutsideRadius(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)

	// Far corner of the viewport, nowhere near the cube.
	if _, ok := p.PickVertex(5, 5, m, mgl32.Ident4(), ctx); ok {
		t.Error("click far from all vertices should miss")
	}
}

func TestPickVertexRadiusIsStrict(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	p.VertexPickRadius = 0
	m := mesh.NewCube(1)
	sp := frontCorner(t, ctx, m, mgl32.Ident4(), mgl32.Vec3{0.5, 0.5, 0.5})

	// Strict comparison: distance 0 is not < 0.
	if _, ok := p.PickVertex(sp.X, sp.Y, m, mgl32.Ident4(), ctx); ok {
		t.Error("zero radius excludes even exact hits")
	}
}

func TestPickEdge(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	// Midpoint of the top front edge.
	a := frontCorner(t, ctx, m, model, mgl32.Vec3{-0.5, 0.5, 0.5})
	b := frontCorner(t, ctx, m, model, mgl32.Vec3{0.5, 0.5, 0.5})

	e, ok := p.PickEdge((a.X+b.X)/2, (a.Y+b.Y)/2, m, model, ctx)
	if !ok {
		t.Fatal("expected an edge hit")
	}

	p0 := m.Vertices[e.V0].Position
	p1 := m.Vertices[e.V1].Position
	mid := p0.Add(p1).Mul(0.5)
	if mid.Sub(mgl32.Vec3{0, 0.5, 0.5}).Len() > 1e-5 {
		t.Errorf("picked edge midpoint %v, want (0, 0.5, 0.5)", mid)
	}
}

func TestPickEdgeSkipsQuadDiagonals(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	// Click the center of the front face: the nearest real edge is half a
	// face away, but the triangulation diagonal passes through this point.
	sp := frontCorner(t, ctx, m, model, mgl32.Vec3{0, 0, 0.5})
	if e, ok := p.PickEdge(sp.X, sp.Y, m, model, ctx); ok {
		p0 := m.Vertices[e.V0].Position
		p1 := m.Vertices[e.V1].Position
		if p0.Sub(p1).Len() > 1.01 {
			t.Errorf("picked a diagonal edge %v-%v", p0, p1)
		}
	}
}

func TestPickFaceNearestWins(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	// Center click passes through both front and back faces.
	fi, _, ok := p.PickFaceWithDepth(400, 300, m, model, ctx)
	if !ok {
		t.Fatal("expected a face hit")
	}
	if n := m.FaceNormal(fi); n.Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-5 {
		t.Errorf("picked face normal %v, want +Z (nearest face)", n)
	}
}

func TestPickFaceMiss(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)

	if fi, ok := p.PickFace(5, 5, m, mgl32.Ident4(), ctx); ok {
		t.Errorf("empty-space click hit face %d", fi)
	}
}

func TestPickObject(t *testing.T) {
	ctx := testContext()
	p := NewPicker()

	near := scene.NewObject("near", mesh.NewCube(1))
	near.Position = mgl32.Vec3{0, 0, 2}
	far := scene.NewObject("far", mesh.NewCube(1))

	// The far cube is listed first; the near one must still win.
	got := p.PickObject(400, 300, []*scene.Object{far, near}, ctx)
	if got != near {
		t.Errorf("picked %v, want near cube", got)
	}
}

func TestPickObjectIgnoresInvisible(t *testing.T) {
	ctx := testContext()
	p := NewPicker()

	near := scene.NewObject("near", mesh.NewCube(1))
	near.Position = mgl32.Vec3{0, 0, 2}
	near.Visible = false
	far := scene.NewObject("far", mesh.NewCube(1))

	got := p.PickObject(400, 300, []*scene.Object{far, near}, ctx)
	if got != far {
		t.Error("invisible near cube should be skipped even though nearer")
	}
}

func TestPickObjectMiss(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	obj := scene.NewObject("cube", mesh.NewCube(1))

	if got := p.PickObject(5, 5, []*scene.Object{obj}, ctx); got != nil {
		t.Errorf("empty-space click picked %s", got.Name)
	}
}

func TestPickVertexSmartDepthGate(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	// Click slightly off the face center so one front corner is nearest.
	idx, ok := p.PickVertexSmart(410, 290, m, model, ctx)
	if !ok {
		t.Fatal("expected a smart vertex hit")
	}
	if m.Vertices[idx].Position[2] != 0.5 {
		t.Errorf("smart pick returned vertex at %v, behind the clicked face", m.Vertices[idx].Position)
	}

	// The winning vertex depth must respect the face depth gate.
	_, faceDepth, _ := p.PickFaceWithDepth(410, 290, m, model, ctx)
	sp, _ := ProjectToScreen(m.Vertices[idx].Position, ctx)
	if sp.Z > faceDepth+p.DepthTolerance {
		t.Errorf("vertex depth %f exceeds face depth %f + tolerance", sp.Z, faceDepth)
	}
}

func TestPickVertexSmartEmptySpaceFallback(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)

	// Off the mesh entirely: falls back to the radius-gated pick and misses.
	if _, ok := p.PickVertexSmart(5, 5, m, mgl32.Ident4(), ctx); ok {
		t.Error("smart pick in empty space should miss")
	}
}

func TestPickEdgeSmartDepthGate(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	e, ok := p.PickEdgeSmart(420, 300, m, model, ctx)
	if !ok {
		t.Fatal("expected a smart edge hit")
	}
	p0 := m.Vertices[e.V0].Position
	p1 := m.Vertices[e.V1].Position
	if p0[2] != 0.5 || p1[2] != 0.5 {
		t.Errorf("smart edge %v-%v is not on the clicked front face", p0, p1)
	}
}
