// Package picking resolves screen clicks to objects, vertices, edges and
// faces, and provides the screen/world projection utilities the rest of the
// editor builds on.
package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshedit/pkg/geom"
)

// Camera is the view collaborator consumed by picking.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix(aspect float32) mgl32.Mat4
	Position() mgl32.Vec3
	Target() mgl32.Vec3
}

// Context carries the per-event view parameters. Construct one per input
// event and discard it.
type Context struct {
	Camera Camera
	Width  float32
	Height float32
}

// ScreenPoint is a projected point: pixel coordinates plus NDC depth in
// [-1, 1] for depth comparisons.
type ScreenPoint struct {
	X, Y float32
	Z    float32
}

// Vec2 returns the pixel coordinates as a vector.
func (p ScreenPoint) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{p.X, p.Y}
}

func (c Context) viewProjection() mgl32.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = c.Width / c.Height
	}
	return c.Camera.ProjectionMatrix(aspect).Mul4(c.Camera.ViewMatrix())
}

// ScreenToRay converts pixel coordinates to a world-space ray through the
// near and far planes. A singular view-projection matrix falls back to a
// ray from the camera position toward its target; the function never fails.
func ScreenToRay(x, y float32, ctx Context) geom.Ray {
	vp := ctx.viewProjection()
	if vp.Det() == 0 {
		return geom.NewRay(ctx.Camera.Position(), ctx.Camera.Target())
	}
	inv := vp.Inv()

	ndcX := 2*x/ctx.Width - 1
	ndcY := 1 - 2*y/ctx.Height

	near := unproject(inv, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(inv, mgl32.Vec4{ndcX, ndcY, 1, 1})
	return geom.NewRay(near, far)
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	w := inv.Mul4x1(ndc)
	if w[3] != 0 {
		return mgl32.Vec3{w[0] / w[3], w[1] / w[3], w[2] / w[3]}
	}
	return mgl32.Vec3{w[0], w[1], w[2]}
}

// ProjectToScreen maps a world point into pixel coordinates. Returns false
// when the point is behind the near plane or beyond the far plane (NDC z
// outside [-1, 1]) or the projection degenerates.
func ProjectToScreen(p mgl32.Vec3, ctx Context) (ScreenPoint, bool) {
	clip := ctx.viewProjection().Mul4x1(p.Vec4(1))
	if clip[3] == 0 {
		return ScreenPoint{}, false
	}

	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	ndcZ := clip[2] / clip[3]
	if ndcZ < -1 || ndcZ > 1 {
		return ScreenPoint{}, false
	}

	return ScreenPoint{
		X: (ndcX + 1) / 2 * ctx.Width,
		Y: (1 - ndcY) / 2 * ctx.Height, // Screen origin is top-left
		Z: ndcZ,
	}, true
}
