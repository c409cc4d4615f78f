package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
)

func TestNewObjectDefaults(t *testing.T) {
	o := NewObject("cube", mesh.NewCube(1))
	if !o.Visible {
		t.Error("new object should be visible")
	}
	if o.Selected {
		t.Error("new object should not be selected")
	}
	if o.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("scale: got %v, want identity", o.Scale)
	}
}

func TestModelMatrixTranslation(t *testing.T) {
	o := NewObject("cube", mesh.NewCube(1))
	o.Position = mgl32.Vec3{10, 20, 30}

	p := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, o.ModelMatrix())
	if p != (mgl32.Vec3{10, 20, 30}) {
		t.Errorf("origin transform: got %v, want (10,20,30)", p)
	}
}

func TestModelMatrixCompositionOrder(t *testing.T) {
	o := NewObject("cube", mesh.NewCube(1))
	o.Position = mgl32.Vec3{5, 0, 0}
	o.Scale = mgl32.Vec3{2, 2, 2}
	o.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}

	// Local +X under scale 2 then yaw 90 lands on -Z, then translates.
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, o.ModelMatrix())
	want := mgl32.Vec3{5, 0, -2}
	if p.Sub(want).Len() > 1e-5 {
		t.Errorf("composed transform: got %v, want %v", p, want)
	}
}

func TestWorldBounds(t *testing.T) {
	o := NewObject("cube", mesh.NewCube(2))
	o.Position = mgl32.Vec3{10, 0, 0}
	o.Scale = mgl32.Vec3{2, 1, 1}

	b := o.WorldBounds()
	if b.Min.Sub(mgl32.Vec3{8, -1, -1}).Len() > 1e-5 {
		t.Errorf("bounds min: got %v, want (8,-1,-1)", b.Min)
	}
	if b.Max.Sub(mgl32.Vec3{12, 1, 1}).Len() > 1e-5 {
		t.Errorf("bounds max: got %v, want (12,1,1)", b.Max)
	}
}

func TestWorldBoundsRotated(t *testing.T) {
	o := NewObject("cube", mesh.NewCube(2))
	o.Rotation = mgl32.Vec3{0, mgl32.DegToRad(45), 0}

	b := o.WorldBounds()
	// A yawed unit cube widens along X and Z.
	if b.Max[0] < 1.2 || b.Max[2] < 1.2 {
		t.Errorf("rotated bounds should widen: got %v..%v", b.Min, b.Max)
	}
	if mgl32.Abs(b.Max[1]-1) > 1e-5 {
		t.Errorf("Y extent should be unchanged, got %f", b.Max[1])
	}
}
