// Package transform implements the modal grab/rotate/scale protocol over
// scene objects and mesh vertices. A transform starts by snapshotting the
// baseline of its targets, applies placements relative to that baseline on
// every movement event, and either commits (callback fires, baseline
// dropped) or cancels (baseline restored exactly).
package transform

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/internal/engine/scene"
)

// Mode is the active modal operation.
type Mode int

const (
	ModeNone Mode = iota
	ModeGrab
	ModeRotate
	ModeScale
)

// String implements fmt.Stringer for logs and UI labels.
func (m Mode) String() string {
	switch m {
	case ModeGrab:
		return "grab"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	}
	return "none"
}

// Axis restricts delta application to an axis or plane.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
	AxisXY
	AxisXZ
	AxisYZ
)

// mask returns the per-component multipliers for the constraint.
func (a Axis) mask() mgl32.Vec3 {
	switch a {
	case AxisX:
		return mgl32.Vec3{1, 0, 0}
	case AxisY:
		return mgl32.Vec3{0, 1, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, 1}
	case AxisXY:
		return mgl32.Vec3{1, 1, 0}
	case AxisXZ:
		return mgl32.Vec3{1, 0, 1}
	case AxisYZ:
		return mgl32.Vec3{0, 1, 1}
	}
	return mgl32.Vec3{1, 1, 1}
}

// vector returns the rotation axis for the constraint: the axis itself for
// single axes, the plane normal for planes, and the zero vector for none.
func (a Axis) vector() mgl32.Vec3 {
	switch a {
	case AxisX, AxisYZ:
		return mgl32.Vec3{1, 0, 0}
	case AxisY, AxisXZ:
		return mgl32.Vec3{0, 1, 0}
	case AxisZ, AxisXY:
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{}
}

// String implements fmt.Stringer for logs and UI labels.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	case AxisXY:
		return "xy"
	case AxisXZ:
		return "xz"
	case AxisYZ:
		return "yz"
	}
	return "none"
}

// Space selects the basis in which constraints apply.
type Space int

const (
	SpaceWorld Space = iota
	SpaceLocal
)

// String implements fmt.Stringer for logs and UI labels.
func (s Space) String() string {
	if s == SpaceLocal {
		return "local"
	}
	return "world"
}

// Manager is the modal transform state machine. Not safe for concurrent
// use; the editor drives it from the input-event loop.
type Manager struct {
	mode  Mode
	axis  Axis
	space Space

	origin    mgl32.Vec3
	hasOrigin bool
	viewAxis  mgl32.Vec3

	objects        []*scene.Object
	startPositions map[string]mgl32.Vec3
	startRotations map[string]mgl32.Vec3
	startScales    map[string]mgl32.Vec3

	mesh          *mesh.Mesh
	startVertices map[int]mgl32.Vec3
	model         mgl32.Mat4
	invModel      mgl32.Mat4

	onComplete func()
}

// NewManager creates an idle transform manager.
func NewManager() *Manager {
	return &Manager{viewAxis: mgl32.Vec3{0, 1, 0}}
}

// IsActive reports whether a modal transform is running.
func (t *Manager) IsActive() bool {
	return t.mode != ModeNone
}

// Mode returns the active modal mode.
func (t *Manager) Mode() Mode {
	return t.mode
}

// Axis returns the current axis constraint.
func (t *Manager) Axis() Axis {
	return t.axis
}

// Space returns the current constraint space.
func (t *Manager) Space() Space {
	return t.space
}

// Origin returns the pivot point, valid only while a transform is active.
func (t *Manager) Origin() (mgl32.Vec3, bool) {
	return t.origin, t.hasOrigin
}

// SetOnComplete registers the commit callback; nil clears it. The callback
// fires exactly once per successful commit, never on cancel or start.
func (t *Manager) SetOnComplete(fn func()) {
	t.onComplete = fn
}

// SetViewAxis sets the rotation axis used while no constraint is active,
// typically the camera view direction.
func (t *Manager) SetViewAxis(v mgl32.Vec3) {
	if v.Len() > 0 {
		t.viewAxis = v.Normalize()
	}
}

// SetAxisConstraint restricts delta application to the given axis or plane,
// keeping the current space. Accepted while idle but has no effect then.
func (t *Manager) SetAxisConstraint(a Axis) {
	t.axis = a
}

// SetAxisConstraintSpace sets the constraint and its space together.
func (t *Manager) SetAxisConstraintSpace(a Axis, sp Space) {
	t.axis = a
	t.space = sp
}

// reset clears all modal state. Baseline maps are dropped atomically with
// the mode.
func (t *Manager) reset() {
	t.mode = ModeNone
	t.axis = AxisNone
	t.space = SpaceWorld
	t.origin = mgl32.Vec3{}
	t.hasOrigin = false
	t.objects = nil
	t.startPositions = nil
	t.startRotations = nil
	t.startScales = nil
	t.mesh = nil
	t.startVertices = nil
}

// beginObjects snapshots the baseline for an object transform. Starting
// while another transform is active restarts cleanly.
func (t *Manager) beginObjects(mode Mode, objs []*scene.Object) bool {
	if len(objs) == 0 {
		return false
	}
	t.reset()
	t.mode = mode
	t.objects = objs

	t.startPositions = make(map[string]mgl32.Vec3, len(objs))
	var sum mgl32.Vec3
	for _, o := range objs {
		t.startPositions[o.Name] = o.Position
		sum = sum.Add(o.Position)
	}
	t.origin = sum.Mul(1 / float32(len(objs)))
	t.hasOrigin = true

	switch mode {
	case ModeRotate:
		t.startRotations = make(map[string]mgl32.Vec3, len(objs))
		for _, o := range objs {
			t.startRotations[o.Name] = o.Rotation
		}
	case ModeScale:
		t.startScales = make(map[string]mgl32.Vec3, len(objs))
		for _, o := range objs {
			t.startScales[o.Name] = o.Scale
		}
	}
	return true
}

// StartObjectGrab begins moving a single object. The pivot is the object's
// current position.
func (t *Manager) StartObjectGrab(obj *scene.Object) {
	t.beginObjects(ModeGrab, []*scene.Object{obj})
}

// StartObjectRotate begins rotating a single object about its position.
func (t *Manager) StartObjectRotate(obj *scene.Object) {
	t.beginObjects(ModeRotate, []*scene.Object{obj})
}

// StartObjectScale begins scaling a single object about its position.
func (t *Manager) StartObjectScale(obj *scene.Object) {
	t.beginObjects(ModeScale, []*scene.Object{obj})
}

// StartMultiObjectGrab begins moving several objects. Returns false, with
// no state change, for an empty slice.
func (t *Manager) StartMultiObjectGrab(objs []*scene.Object) bool {
	return t.beginObjects(ModeGrab, objs)
}

// StartMultiObjectRotate begins rotating several objects about their mean
// position.
func (t *Manager) StartMultiObjectRotate(objs []*scene.Object) bool {
	return t.beginObjects(ModeRotate, objs)
}

// StartMultiObjectScale begins scaling several objects about their mean
// position.
func (t *Manager) StartMultiObjectScale(objs []*scene.Object) bool {
	return t.beginObjects(ModeScale, objs)
}

// beginVertices snapshots the baseline for a vertex transform.
func (t *Manager) beginVertices(mode Mode, m *mesh.Mesh, indices []int, model mgl32.Mat4) bool {
	if m == nil || len(indices) == 0 {
		return false
	}
	t.reset()
	t.mode = mode
	t.mesh = m
	t.model = model
	t.invModel = model.Inv()

	t.startVertices = make(map[int]mgl32.Vec3, len(indices))
	var sum mgl32.Vec3
	count := 0
	for _, idx := range indices {
		if idx < 0 || idx >= len(m.Vertices) {
			continue
		}
		if _, ok := t.startVertices[idx]; ok {
			continue
		}
		pos := m.Vertices[idx].Position
		t.startVertices[idx] = pos
		sum = sum.Add(mgl32.TransformCoordinate(pos, model))
		count++
	}
	if count == 0 {
		t.reset()
		return false
	}

	t.origin = sum.Mul(1 / float32(count))
	t.hasOrigin = true
	return true
}

// StartVertexGrab begins moving the given vertices of a mesh. The pivot is
// the mean of their world (model-transformed) positions. Returns false for
// an empty set.
func (t *Manager) StartVertexGrab(m *mesh.Mesh, indices []int, model mgl32.Mat4) bool {
	return t.beginVertices(ModeGrab, m, indices, model)
}

// StartVertexRotate begins rotating the given vertices about their mean.
func (t *Manager) StartVertexRotate(m *mesh.Mesh, indices []int, model mgl32.Mat4) bool {
	return t.beginVertices(ModeRotate, m, indices, model)
}

// StartVertexScale begins scaling the given vertices about their mean.
func (t *Manager) StartVertexScale(m *mesh.Mesh, indices []int, model mgl32.Mat4) bool {
	return t.beginVertices(ModeScale, m, indices, model)
}

// Cancel restores every captured entity from its baseline and clears all
// modal state. Safe to call while idle.
func (t *Manager) Cancel() {
	for _, o := range t.objects {
		if pos, ok := t.startPositions[o.Name]; ok {
			o.Position = pos
		}
		if rot, ok := t.startRotations[o.Name]; ok {
			o.Rotation = rot
		}
		if scale, ok := t.startScales[o.Name]; ok {
			o.Scale = scale
		}
	}
	if t.mesh != nil {
		for idx, pos := range t.startVertices {
			t.mesh.Vertices[idx].Position = pos
		}
	}
	t.reset()
}

// Commit keeps the applied placement, clears all modal state, then fires
// the completion callback once. A commit while idle does nothing.
func (t *Manager) Commit() {
	if t.mode == ModeNone {
		return
	}
	t.reset()
	if t.onComplete != nil {
		t.onComplete()
	}
}

// constrain masks a world-space delta by the active constraint. For local
// space the delta is expressed in the local frame via toLocal, masked
// there, and mapped back via fromLocal. For pure-rotation frames toLocal
// is the transpose; the vertex path passes the true model inverse.
func (t *Manager) constrain(delta mgl32.Vec3, toLocal, fromLocal mgl32.Mat4) mgl32.Vec3 {
	if t.axis == AxisNone {
		return delta
	}
	mask := t.axis.mask()
	if t.space == SpaceWorld {
		return mulComponents(delta, mask)
	}
	local := toLocal.Mul4x1(delta.Vec4(0)).Vec3()
	return fromLocal.Mul4x1(mulComponents(local, mask).Vec4(0)).Vec3()
}

// axisVector resolves the rotation axis in world space for the given
// object basis: constraint axis, or the view axis when unconstrained.
func (t *Manager) axisVector(basis mgl32.Mat4) mgl32.Vec3 {
	v := t.axis.vector()
	if v == (mgl32.Vec3{}) {
		return t.viewAxis
	}
	if t.space == SpaceLocal {
		return basis.Mul4x1(v.Vec4(0)).Vec3().Normalize()
	}
	return v
}

// UpdateGrab applies a world-space translation delta relative to the
// baseline. Ignored while idle or in another mode.
func (t *Manager) UpdateGrab(delta mgl32.Vec3) {
	if t.mode != ModeGrab {
		return
	}
	for _, o := range t.objects {
		basis := o.RotationMatrix()
		d := t.constrain(delta, basis.Transpose(), basis)
		o.Position = t.startPositions[o.Name].Add(d)
	}
	if t.mesh != nil {
		d := t.constrain(delta, t.invModel, t.model)
		for idx, start := range t.startVertices {
			world := mgl32.TransformCoordinate(start, t.model).Add(d)
			t.mesh.Vertices[idx].Position = mgl32.TransformCoordinate(world, t.invModel)
		}
	}
}

// UpdateRotate applies a rotation by angle (radians) about the origin,
// relative to the baseline. Positions orbit the pivot; single-axis object
// rotations also turn the matching Euler component.
func (t *Manager) UpdateRotate(angle float32) {
	if t.mode != ModeRotate {
		return
	}
	for _, o := range t.objects {
		axis := t.axisVector(o.RotationMatrix())
		rot := mgl32.HomogRotate3D(angle, axis)

		offset := t.startPositions[o.Name].Sub(t.origin)
		o.Position = t.origin.Add(rot.Mul4x1(offset.Vec4(0)).Vec3())

		if comp := t.axis.eulerComponent(); comp >= 0 {
			r := t.startRotations[o.Name]
			r[comp] += angle
			o.Rotation = r
		}
	}
	if t.mesh != nil {
		// Rotate in world space about the pivot, then map back to model
		// space, so non-uniform model transforms stay exact.
		rot := mgl32.HomogRotate3D(angle, t.axisVector(t.model))
		for idx, start := range t.startVertices {
			offset := mgl32.TransformCoordinate(start, t.model).Sub(t.origin)
			world := t.origin.Add(rot.Mul4x1(offset.Vec4(0)).Vec3())
			t.mesh.Vertices[idx].Position = mgl32.TransformCoordinate(world, t.invModel)
		}
	}
}

// eulerComponent maps single-axis constraints to the Euler component they
// turn; planes and none return -1 (orbit only).
func (a Axis) eulerComponent() int {
	switch a {
	case AxisX:
		return 0
	case AxisY:
		return 1
	case AxisZ:
		return 2
	}
	return -1
}

// UpdateScale applies a scale factor about the origin, relative to the
// baseline. Constrained components scale; the rest keep their baseline.
func (t *Manager) UpdateScale(factor float32) {
	if t.mode != ModeScale {
		return
	}
	for _, o := range t.objects {
		basis := o.RotationMatrix()
		start := t.startPositions[o.Name]
		offset := t.scaleOffset(start.Sub(t.origin), basis.Transpose(), basis, factor)
		o.Position = t.origin.Add(offset)

		s := t.startScales[o.Name]
		mask := t.axis.mask()
		for i := 0; i < 3; i++ {
			if mask[i] != 0 {
				s[i] *= factor
			}
		}
		o.Scale = s
	}
	if t.mesh != nil {
		for idx, start := range t.startVertices {
			offset := mgl32.TransformCoordinate(start, t.model).Sub(t.origin)
			world := t.origin.Add(t.scaleOffset(offset, t.invModel, t.model, factor))
			t.mesh.Vertices[idx].Position = mgl32.TransformCoordinate(world, t.invModel)
		}
	}
}

// scaleOffset scales the constrained components of an offset from the
// pivot, leaving the remaining components untouched.
func (t *Manager) scaleOffset(offset mgl32.Vec3, toLocal, fromLocal mgl32.Mat4, factor float32) mgl32.Vec3 {
	mask := t.axis.mask()
	scaleMasked := func(v mgl32.Vec3) mgl32.Vec3 {
		for i := 0; i < 3; i++ {
			if mask[i] != 0 {
				v[i] *= factor
			}
		}
		return v
	}

	if t.axis == AxisNone || t.space == SpaceWorld {
		return scaleMasked(offset)
	}
	local := toLocal.Mul4x1(offset.Vec4(0)).Vec3()
	return fromLocal.Mul4x1(scaleMasked(local).Vec4(0)).Vec3()
}

func mulComponents(v, mask mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0] * mask[0], v[1] * mask[1], v[2] * mask[2]}
}
