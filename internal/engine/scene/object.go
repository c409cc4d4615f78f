// Package scene provides scene objects: a mesh plus an independent
// transform, visibility and selection flag.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/pkg/geom"
)

// Object is a mesh instance placed in the scene. Rotation is Euler angles
// in radians, applied in XYZ intrinsic order via the fixed Y*X*Z matrix
// composition.
type Object struct {
	Name     string
	Mesh     *mesh.Mesh
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool
	Selected bool
}

// NewObject creates a visible object with identity transform.
func NewObject(name string, m *mesh.Mesh) *Object {
	return &Object{
		Name:    name,
		Mesh:    m,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
}

// ModelMatrix composes translate * rotY * rotX * rotZ * scale.
func (o *Object) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
		Mul4(o.RotationMatrix()).
		Mul4(mgl32.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2]))
}

// RotationMatrix returns the rotation part only (rotY * rotX * rotZ), used
// as the basis for local-space axis constraints.
func (o *Object) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(o.Rotation[1]).
		Mul4(mgl32.HomogRotate3DX(o.Rotation[0])).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation[2]))
}

// WorldBounds returns the world-space AABB of the mesh under the current
// transform, computed from the eight corners of the local bounds.
func (o *Object) WorldBounds() geom.AABB {
	if o.Mesh == nil {
		return geom.AABB{Min: o.Position, Max: o.Position}
	}
	return o.Mesh.Bounds().Transform(o.ModelMatrix())
}
