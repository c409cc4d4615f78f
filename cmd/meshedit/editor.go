package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Faultbox/meshedit/internal/config"
	"github.com/Faultbox/meshedit/internal/engine/camera"
	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/internal/engine/picking"
	"github.com/Faultbox/meshedit/internal/engine/scene"
	"github.com/Faultbox/meshedit/internal/engine/selection"
	"github.com/Faultbox/meshedit/internal/engine/transform"
	"github.com/Faultbox/meshedit/internal/logger"
	"github.com/Faultbox/meshedit/pkg/geom"
)

// Editor is the interactive wireframe editor. It owns the scene, drives the
// picking, selection and transform managers from input events, and renders
// everything as projected lines.
type Editor struct {
	cfg *config.Config

	cam     *camera.OrbitCamera
	objects []*scene.Object
	active  *scene.Object

	picker *picking.Picker
	sel    *selection.Selection
	xform  *transform.Manager

	width  int
	height int

	// objectMode selects whole objects instead of mesh elements.
	objectMode bool

	// localSpace applies axis constraints in the target's local frame.
	localSpace bool

	lastX, lastY int
	orbiting     bool
	panning      bool

	boxing               bool
	boxStartX, boxStartY int

	// Accumulated modal input since the transform started.
	grabDelta   mgl32.Vec3
	rotAngle    float32
	scaleFactor float32
}

// NewEditor builds the editor with a small starter scene.
func NewEditor(cfg *config.Config) *Editor {
	e := &Editor{
		cfg:        cfg,
		cam:        camera.NewOrbitCamera(),
		picker:     picking.NewPicker(),
		sel:        selection.New(),
		xform:      transform.NewManager(),
		width:      cfg.Graphics.Width,
		height:     cfg.Graphics.Height,
		objectMode: true,
	}

	if cfg.Editor.VertexPickRadius > 0 {
		e.picker.VertexPickRadius = cfg.Editor.VertexPickRadius
	}
	if cfg.Editor.EdgePickRadius > 0 {
		e.picker.EdgePickRadius = cfg.Editor.EdgePickRadius
	}

	cube := scene.NewObject("cube", mesh.NewCube(2))
	cube.Position = mgl32.Vec3{-1.5, 1, 0}

	small := scene.NewObject("cube.small", mesh.NewCube(1))
	small.Position = mgl32.Vec3{1.5, 0.5, 0.5}
	small.Rotation = mgl32.Vec3{0, mgl32.DegToRad(30), 0}

	ground := scene.NewObject("ground", mesh.NewPlane(8, 8))

	e.objects = []*scene.Object{cube, small, ground}
	e.active = cube

	e.sel.SetOnChange(func() {
		logger.Sugar.Debugf("selection changed: mode=%s count=%d", e.sel.Mode(), e.sel.Count())
	})
	e.xform.SetOnComplete(func() {
		logger.Sugar.Debug("transform committed")
	})

	e.cam.FitToBounds(e.sceneBounds())
	return e
}

func (e *Editor) context() picking.Context {
	return picking.Context{
		Camera: e.cam,
		Width:  float32(e.width),
		Height: float32(e.height),
	}
}

func (e *Editor) sceneBounds() geom.AABB {
	var b geom.AABB
	first := true
	for _, obj := range e.objects {
		if !obj.Visible {
			continue
		}
		wb := obj.WorldBounds()
		if first {
			b = wb
			first = false
			continue
		}
		b.Extend(wb.Min)
		b.Extend(wb.Max)
	}
	return b
}

func (e *Editor) selectedObjects() []*scene.Object {
	var out []*scene.Object
	for _, obj := range e.objects {
		if obj.Selected {
			out = append(out, obj)
		}
	}
	return out
}

// selectedVertexIndices flattens the active selection to vertex indices for
// the transform manager: edges contribute both endpoints, faces their whole
// vertex loop.
func (e *Editor) selectedVertexIndices() []int {
	set := make(map[int]struct{})
	switch e.sel.Mode() {
	case selection.ModeVertex:
		for _, idx := range e.sel.Vertices() {
			set[idx] = struct{}{}
		}
	case selection.ModeEdge:
		for _, ed := range e.sel.Edges() {
			set[ed.V0] = struct{}{}
			set[ed.V1] = struct{}{}
		}
	case selection.ModeFace:
		for _, fi := range e.sel.Faces() {
			if fi < 0 || fi >= len(e.active.Mesh.Faces) {
				continue
			}
			for _, vi := range e.active.Mesh.Faces[fi].Vertices {
				set[vi] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	return out
}

// Update implements ebiten.Game.
func (e *Editor) Update() error {
	x, y := ebiten.CursorPosition()
	dx := float32(x - e.lastX)
	dy := float32(y - e.lastY)

	if e.xform.IsActive() {
		e.updateModal(x, y, dx, dy)
		e.lastX, e.lastY = x, y
		return nil
	}

	e.handleCamera(x, y, dx, dy)
	e.handleModeKeys()
	e.handleSelectionKeys()
	e.handleTransformStart()
	e.handlePick(x, y)

	e.lastX, e.lastY = x, y
	return nil
}

// updateModal drives an active transform from mouse movement and resolves
// axis keys, commit and cancel.
func (e *Editor) updateModal(x, y int, dx, dy float32) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		e.localSpace = !e.localSpace
		e.xform.SetAxisConstraintSpace(e.xform.Axis(), e.space())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		e.setConstraint(transform.AxisX, transform.AxisYZ, shift)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyY) {
		e.setConstraint(transform.AxisY, transform.AxisXZ, shift)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		e.setConstraint(transform.AxisZ, transform.AxisXY, shift)
	}

	switch e.xform.Mode() {
	case transform.ModeGrab:
		view := e.cam.ViewMatrix()
		right := mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)}
		up := mgl32.Vec3{view.At(1, 0), view.At(1, 1), view.At(1, 2)}
		speed := e.cam.Distance * 0.002
		e.grabDelta = e.grabDelta.Add(right.Mul(dx * speed)).Add(up.Mul(-dy * speed))
		e.xform.UpdateGrab(e.grabDelta)
	case transform.ModeRotate:
		e.rotAngle += dx * 0.01
		e.xform.UpdateRotate(e.rotAngle)
	case transform.ModeScale:
		e.scaleFactor += dx * 0.01
		if e.scaleFactor < 0.01 {
			e.scaleFactor = 0.01
		}
		e.xform.UpdateScale(e.scaleFactor)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.xform.Commit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		e.xform.Cancel()
		logger.Sugar.Debug("transform cancelled")
	}
}

func (e *Editor) space() transform.Space {
	if e.localSpace {
		return transform.SpaceLocal
	}
	return transform.SpaceWorld
}

func (e *Editor) setConstraint(axis, plane transform.Axis, shift bool) {
	a := axis
	if shift {
		a = plane
	}
	e.xform.SetAxisConstraintSpace(a, e.space())
}

func (e *Editor) handleCamera(x, y int, dx, dy float32) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		e.orbiting = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		e.orbiting = false
	}
	if e.orbiting {
		e.cam.HandleDrag(dx, dy)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		e.panning = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		e.panning = false
	}
	if e.panning {
		e.cam.HandlePan(dx, dy)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		e.cam.HandleZoom(float32(wy))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		e.cam.FitToBounds(e.sceneBounds())
	}
}

func (e *Editor) handleModeKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		e.objectMode = true
		e.sel.ClearAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if e.objectMode {
			e.objectMode = false
			e.sel.SetMode(selection.ModeVertex)
		} else {
			switch e.sel.Mode() {
			case selection.ModeVertex:
				e.sel.SetMode(selection.ModeEdge)
			case selection.ModeEdge:
				e.sel.SetMode(selection.ModeFace)
			case selection.ModeFace:
				e.sel.SetMode(selection.ModeVertex)
			}
		}
		logger.Sugar.Debugf("edit mode: object=%v element=%s", e.objectMode, e.sel.Mode())
	}
}

func (e *Editor) handleSelectionKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if e.objectMode {
			for _, obj := range e.objects {
				obj.Selected = obj.Visible
			}
		} else if e.active != nil {
			e.sel.SelectAll(e.active.Mesh)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if e.objectMode {
			for _, obj := range e.objects {
				obj.Selected = false
			}
		} else {
			e.sel.ClearAll()
		}
	}
}

func (e *Editor) handleTransformStart() {
	grab := inpututil.IsKeyJustPressed(ebiten.KeyG)
	rotate := inpututil.IsKeyJustPressed(ebiten.KeyR)
	scale := inpututil.IsKeyJustPressed(ebiten.KeyS)
	if !grab && !rotate && !scale {
		return
	}

	e.grabDelta = mgl32.Vec3{}
	e.rotAngle = 0
	e.scaleFactor = 1
	e.xform.SetViewAxis(e.cam.Target().Sub(e.cam.Position()))

	started := false
	if e.objectMode {
		objs := e.selectedObjects()
		switch {
		case grab:
			started = e.xform.StartMultiObjectGrab(objs)
		case rotate:
			started = e.xform.StartMultiObjectRotate(objs)
		case scale:
			started = e.xform.StartMultiObjectScale(objs)
		}
	} else if e.active != nil {
		indices := e.selectedVertexIndices()
		model := e.active.ModelMatrix()
		switch {
		case grab:
			started = e.xform.StartVertexGrab(e.active.Mesh, indices, model)
		case rotate:
			started = e.xform.StartVertexRotate(e.active.Mesh, indices, model)
		case scale:
			started = e.xform.StartVertexScale(e.active.Mesh, indices, model)
		}
	}
	if started {
		logger.Sugar.Debugf("transform started: mode=%s object=%v", e.xform.Mode(), e.objectMode)
	}
}

// handlePick resolves left clicks: a drag with B held is a box select,
// anything else is a point pick.
func (e *Editor) handlePick(x, y int) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ebiten.IsKeyPressed(ebiten.KeyB) {
			e.boxing = true
			e.boxStartX, e.boxStartY = x, y
		}
		return
	}
	if !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if e.boxing {
		e.boxing = false
		e.applyBoxSelect(float32(e.boxStartX), float32(e.boxStartY), float32(x), float32(y), shift)
		return
	}
	e.applyPick(float32(x), float32(y), shift)
}

func (e *Editor) applyPick(x, y float32, shift bool) {
	ctx := e.context()

	if e.objectMode {
		hit := e.picker.PickObject(x, y, e.objects, ctx)
		if hit == nil {
			if !shift {
				for _, obj := range e.objects {
					obj.Selected = false
				}
			}
			return
		}
		if shift {
			hit.Selected = !hit.Selected
		} else {
			for _, obj := range e.objects {
				obj.Selected = obj == hit
			}
		}
		e.active = hit
		return
	}

	if e.active == nil {
		return
	}
	m := e.active.Mesh
	model := e.active.ModelMatrix()

	switch e.sel.Mode() {
	case selection.ModeVertex:
		idx, ok := e.picker.PickVertexSmart(x, y, m, model, ctx)
		if !ok {
			if !shift {
				e.sel.ClearAll()
			}
			return
		}
		if shift {
			e.sel.ToggleVertex(idx)
		} else {
			e.sel.SetVertices([]int{idx})
		}
	case selection.ModeEdge:
		ed, ok := e.picker.PickEdgeSmart(x, y, m, model, ctx)
		if !ok {
			if !shift {
				e.sel.ClearAll()
			}
			return
		}
		if shift {
			e.sel.ToggleEdge(ed.V0, ed.V1)
		} else {
			e.sel.ClearAll()
			e.sel.AddEdge(ed.V0, ed.V1)
		}
	case selection.ModeFace:
		fi, ok := e.picker.PickFace(x, y, m, model, ctx)
		if !ok {
			if !shift {
				e.sel.ClearAll()
			}
			return
		}
		if shift {
			e.sel.ToggleFace(fi)
		} else {
			e.sel.SetFaces([]int{fi})
		}
	}
}

func (e *Editor) applyBoxSelect(x0, y0, x1, y1 float32, shift bool) {
	minX, maxX := x0, x1
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := y0, y1
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	ctx := e.context()

	if e.objectMode {
		hits := e.picker.BoxSelectObjects(minX, minY, maxX, maxY, e.objects, ctx)
		if !shift {
			for _, obj := range e.objects {
				obj.Selected = false
			}
		}
		for _, obj := range hits {
			obj.Selected = true
		}
		return
	}

	if e.active == nil {
		return
	}
	m := e.active.Mesh
	model := e.active.ModelMatrix()

	switch e.sel.Mode() {
	case selection.ModeVertex:
		hits := e.picker.BoxSelectVertices(minX, minY, maxX, maxY, m, model, ctx)
		if shift {
			e.sel.AddVertices(hits)
		} else {
			e.sel.SetVertices(hits)
		}
	case selection.ModeEdge:
		hits := e.picker.BoxSelectEdges(minX, minY, maxX, maxY, m, model, ctx)
		if !shift {
			e.sel.ClearAll()
		}
		for _, ed := range hits {
			e.sel.AddEdge(ed.V0, ed.V1)
		}
	case selection.ModeFace:
		hits := e.picker.BoxSelectFaces(minX, minY, maxX, maxY, m, model, ctx)
		if shift {
			e.sel.AddFaces(hits)
		} else {
			e.sel.SetFaces(hits)
		}
	}
}

// Layout implements ebiten.Game.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		e.width, e.height = outsideWidth, outsideHeight
	}
	return e.width, e.height
}
