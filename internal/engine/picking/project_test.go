package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// fixedCamera is a minimal Camera for tests. Near/far are chosen so NDC
// depth differences across a unit cube are well above the depth tolerance.
type fixedCamera struct {
	pos    mgl32.Vec3
	target mgl32.Vec3
}

func (c fixedCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.pos, c.target, mgl32.Vec3{0, 1, 0})
}

func (c fixedCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.5, 20)
}

func (c fixedCamera) Position() mgl32.Vec3 { return c.pos }
func (c fixedCamera) Target() mgl32.Vec3   { return c.target }

// singularCamera returns a degenerate projection to exercise the fallback.
type singularCamera struct{ fixedCamera }

func (c singularCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Mat4{}
}

func testContext() Context {
	return Context{
		Camera: fixedCamera{pos: mgl32.Vec3{0, 0, 5}, target: mgl32.Vec3{0, 0, 0}},
		Width:  800,
		Height: 600,
	}
}

func TestProjectTargetToViewportCenter(t *testing.T) {
	ctx := testContext()
	sp, ok := ProjectToScreen(ctx.Camera.Target(), ctx)
	if !ok {
		t.Fatal("camera target should project")
	}
	if mgl32.Abs(sp.X-400) > 0.5 || mgl32.Abs(sp.Y-300) > 0.5 {
		t.Errorf("target projection: got (%f, %f), want viewport center (400, 300)", sp.X, sp.Y)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	ctx := testContext()
	if _, ok := ProjectToScreen(mgl32.Vec3{0, 0, 10}, ctx); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestProjectBeyondFarPlane(t *testing.T) {
	ctx := testContext()
	if _, ok := ProjectToScreen(mgl32.Vec3{0, 0, -100}, ctx); ok {
		t.Error("point beyond the far plane should not project")
	}
}

func TestScreenToRayCenterPointsAtTarget(t *testing.T) {
	ctx := testContext()
	ray := ScreenToRay(400, 300, ctx)

	want := ctx.Camera.Target().Sub(ctx.Camera.Position()).Normalize()
	if ray.Direction.Sub(want).Len() > 1e-3 {
		t.Errorf("center ray direction: got %v, want %v", ray.Direction, want)
	}
}

func TestScreenToRayRoundTrip(t *testing.T) {
	ctx := testContext()
	world := mgl32.Vec3{1.5, -0.5, 0}
	sp, ok := ProjectToScreen(world, ctx)
	if !ok {
		t.Fatal("point should project")
	}

	ray := ScreenToRay(sp.X, sp.Y, ctx)
	// The unprojected ray must pass close by the original point.
	toPoint := world.Sub(ray.Origin)
	along := ray.Direction.Mul(toPoint.Dot(ray.Direction))
	if toPoint.Sub(along).Len() > 1e-2 {
		t.Errorf("ray misses round-tripped point by %f", toPoint.Sub(along).Len())
	}
}

func TestScreenToRaySingularFallback(t *testing.T) {
	cam := singularCamera{fixedCamera{pos: mgl32.Vec3{0, 0, 5}, target: mgl32.Vec3{0, 0, 0}}}
	ctx := Context{Camera: cam, Width: 800, Height: 600}

	ray := ScreenToRay(123, 456, ctx)
	if ray.Origin != cam.pos {
		t.Errorf("fallback origin: got %v, want camera position", ray.Origin)
	}
	want := cam.target.Sub(cam.pos).Normalize()
	if ray.Direction.Sub(want).Len() > 1e-5 {
		t.Errorf("fallback direction: got %v, want toward target", ray.Direction)
	}
}
