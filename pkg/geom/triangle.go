package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PointSegmentDistance2D returns the distance from point p to the segment
// ab, clamping the projection parameter to [0, 1]. A zero-length segment
// degrades to plain point distance.
func PointSegmentDistance2D(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Sub(a).Len()
	}

	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Mul(t))
	return p.Sub(closest).Len()
}

// PointInTriangle2D reports whether p lies inside triangle abc using a
// sign-based barycentric test. Points on an edge count as inside.
func PointInTriangle2D(p, a, b, c mgl32.Vec2) bool {
	d1 := edgeSign(p, a, b)
	d2 := edgeSign(p, b, c)
	d3 := edgeSign(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b mgl32.Vec2) float32 {
	return (p[0]-b[0])*(a[1]-b[1]) - (a[0]-b[0])*(p[1]-b[1])
}

// TriangleNormal returns the normalized normal of triangle abc, or the zero
// vector for degenerate input.
func TriangleNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Len()
	if l < 1e-12 || math32.IsNaN(l) {
		return mgl32.Vec3{}
	}
	return n.Mul(1 / l)
}
