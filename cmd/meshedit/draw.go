package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Faultbox/meshedit/internal/engine/mesh"
	"github.com/Faultbox/meshedit/internal/engine/picking"
	"github.com/Faultbox/meshedit/internal/engine/scene"
	"github.com/Faultbox/meshedit/internal/engine/selection"
)

var (
	backgroundColor = color.RGBA{28, 28, 32, 255}
	wireColor       = color.RGBA{160, 160, 170, 255}
	activeWireColor = color.RGBA{220, 220, 230, 255}
	selectedColor   = color.RGBA{255, 160, 40, 255}
	vertexColor     = color.RGBA{90, 120, 220, 255}
	faceDotColor    = color.RGBA{255, 200, 90, 255}
	boxColor        = color.RGBA{120, 180, 255, 255}
)

// Draw implements ebiten.Game.
func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	ctx := e.context()

	for _, obj := range e.objects {
		if !obj.Visible || obj.Mesh == nil {
			continue
		}
		e.drawObject(screen, obj, ctx)
	}

	if e.boxing {
		x, y := ebiten.CursorPosition()
		e.drawBox(screen, float32(e.boxStartX), float32(e.boxStartY), float32(x), float32(y))
	}

	if e.cfg.Editor.ShowStats {
		e.drawStats(screen)
	}
}

func (e *Editor) drawObject(screen *ebiten.Image, obj *scene.Object, ctx picking.Context) {
	m := obj.Mesh
	model := obj.ModelMatrix()
	isActive := !e.objectMode && obj == e.active

	wire := wireColor
	if obj.Selected {
		wire = selectedColor
	} else if isActive {
		wire = activeWireColor
	}

	for _, ed := range mesh.Edges(m, true) {
		sp0, ok0 := picking.ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[ed.V0].Position, model), ctx)
		sp1, ok1 := picking.ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[ed.V1].Position, model), ctx)
		if !ok0 || !ok1 {
			continue
		}

		col := wire
		width := float32(1)
		if isActive && e.sel.Mode() == selection.ModeEdge && e.sel.HasEdge(ed.V0, ed.V1) {
			col = selectedColor
			width = 2
		}
		vector.StrokeLine(screen, sp0.X, sp0.Y, sp1.X, sp1.Y, width, col, true)
	}

	if isActive && e.sel.Mode() == selection.ModeVertex {
		for i := range m.Vertices {
			sp, ok := picking.ProjectToScreen(mgl32.TransformCoordinate(m.Vertices[i].Position, model), ctx)
			if !ok {
				continue
			}
			col := vertexColor
			r := float32(2.5)
			if e.sel.HasVertex(i) {
				col = selectedColor
				r = 4
			}
			vector.DrawFilledCircle(screen, sp.X, sp.Y, r, col, true)
		}
	}

	if isActive && e.sel.Mode() == selection.ModeFace {
		for _, fi := range e.sel.Faces() {
			sp, ok := picking.ProjectToScreen(mgl32.TransformCoordinate(m.FaceCenter(fi), model), ctx)
			if !ok {
				continue
			}
			vector.DrawFilledCircle(screen, sp.X, sp.Y, 5, faceDotColor, true)
		}
	}
}

func (e *Editor) drawBox(screen *ebiten.Image, x0, y0, x1, y1 float32) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, boxColor, false)
}

func (e *Editor) drawStats(screen *ebiten.Image) {
	mode := "object"
	count := len(e.selectedObjects())
	if !e.objectMode {
		mode = e.sel.Mode().String()
		count = e.sel.Count()
	}

	status := fmt.Sprintf("FPS %0.1f | mode: %s | selected: %d", ebiten.ActualFPS(), mode, count)
	if e.xform.IsActive() {
		status += fmt.Sprintf(" | %s axis=%s space=%s",
			e.xform.Mode(), e.xform.Axis(), e.xform.Space())
	}
	ebitenutil.DebugPrint(screen, status)
}
