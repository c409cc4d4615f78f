package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/internal/engine/scene"
)

func TestBoxSelectVerticesExcludesBackface(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	// Marquee over the whole viewport, camera on +Z: only vertices touching
	// the front (+Z) face survive backface exclusion. Each front corner has
	// three colocated copies.
	got := p.BoxSelectVertices(0, 0, 800, 600, m, model, ctx)
	if len(got) != 12 {
		t.Fatalf("selected %d vertices, want 12", len(got))
	}
	for _, vi := range got {
		if m.Vertices[vi].Position[2] != 0.5 {
			t.Errorf("vertex %d at %v is on the far side", vi, m.Vertices[vi].Position)
		}
	}
}

func TestBoxSelectEdgesExcludesBackface(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	got := p.BoxSelectEdges(0, 0, 800, 600, m, model, ctx)
	if len(got) != 4 {
		t.Fatalf("selected %d edges, want the 4 front-face boundary edges", len(got))
	}
	for _, e := range got {
		if m.Vertices[e.V0].Position[2] != 0.5 || m.Vertices[e.V1].Position[2] != 0.5 {
			t.Errorf("edge %v is not on the front face", e)
		}
	}
}

func TestBoxSelectFacesExcludesBackface(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	got := p.BoxSelectFaces(0, 0, 800, 600, m, model, ctx)
	if len(got) != 1 {
		t.Fatalf("selected %d faces, want 1", len(got))
	}
	if n := m.FaceNormal(got[0]); n.Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-5 {
		t.Errorf("selected face normal %v, want +Z", n)
	}
}

func TestBoxSelectFacesRequiresAllCorners(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	// Rectangle covering only the left half of the front face.
	if got := p.BoxSelectFaces(0, 0, 400, 600, m, model, ctx); len(got) != 0 {
		t.Errorf("partially covered face should not be selected, got %v", got)
	}
}

func TestBoxSelectVerticesPartialRect(t *testing.T) {
	ctx := testContext()
	p := NewPicker()
	m := mesh.NewCube(1)
	model := mgl32.Ident4()

	// Left half of the viewport: only the two left front corners (and their
	// colocated copies).
	got := p.BoxSelectVertices(0, 0, 400, 600, m, model, ctx)
	if len(got) != 6 {
		t.Fatalf("selected %d vertices, want 6", len(got))
	}
	for _, vi := range got {
		pos := m.Vertices[vi].Position
		if pos[0] != -0.5 || pos[2] != 0.5 {
			t.Errorf("vertex %d at %v outside left front edge", vi, pos)
		}
	}
}

func TestBoxSelectObjects(t *testing.T) {
	ctx := testContext()
	p := NewPicker()

	left := scene.NewObject("left", mesh.NewCube(1))
	left.Position = mgl32.Vec3{-2, 0, 0}
	right := scene.NewObject("right", mesh.NewCube(1))
	right.Position = mgl32.Vec3{2, 0, 0}
	hidden := scene.NewObject("hidden", mesh.NewCube(1))
	hidden.Position = mgl32.Vec3{-2, 0, 0}
	hidden.Visible = false

	objs := []*scene.Object{left, right, hidden}

	got := p.BoxSelectObjects(0, 0, 400, 600, objs, ctx)
	if len(got) != 1 || got[0] != left {
		t.Errorf("left-half marquee: got %v, want only the left cube", names(got))
	}

	got = p.BoxSelectObjects(0, 0, 800, 600, objs, ctx)
	if len(got) != 2 {
		t.Errorf("full marquee: got %v, want both visible cubes", names(got))
	}
}

func names(objs []*scene.Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name
	}
	return out
}
