// Package collision implements separating-axis tests between convex shapes
// lying on the ground (XZ) plane, plus contact clipping and a broad-phase
// grid.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/geom"
)

// BroadPhaseRange is the per-axis center distance on X and Z beyond which
// two shapes are never tested.
const BroadPhaseRange = 500

// Collider is a convex shape positioned in world space.
type Collider interface {
	Center() mgl32.Vec3
	// WorldAxes are the candidate separating axes contributed by the shape.
	// They need not be unit length.
	WorldAxes() []mgl32.Vec3
	// Project returns the extent of the shape along axis, scaled by |axis|.
	Project(axis mgl32.Vec3) (min, max float32)
}

// Polygonal colliders expose their world-space vertices.
type Polygonal interface {
	Collider
	WorldVertices() []mgl32.Vec3
}

// InRange is the broad-phase test on the ground plane.
func InRange(a, b mgl32.Vec3) bool {
	if geom.Floor32(mgl32.Abs(a[0]-b[0])) > BroadPhaseRange {
		return false
	}
	return geom.Floor32(mgl32.Abs(a[2]-b[2])) <= BroadPhaseRange
}

// Collide reports whether a and b overlap.
func Collide(a, b Collider) bool {
	_, _, ok := sat(a, b, false)
	return ok
}

// Penetration reports whether a and b overlap and, if they do, the unit axis
// of least penetration pointing from b toward a and the depth along it.
func Penetration(a, b Collider) (axis mgl32.Vec3, depth float32, ok bool) {
	return sat(a, b, true)
}

func sat(a, b Collider, measure bool) (best mgl32.Vec3, depth float32, ok bool) {
	ca, cb := a.Center(), b.Center()
	if !InRange(ca, cb) {
		return mgl32.Vec3{}, 0, false
	}

	depth = math.MaxFloat32
	separated := func(axis mgl32.Vec3) bool {
		l := axis.Len()
		if l == 0 {
			return false
		}
		aMin, aMax := a.Project(axis)
		bMin, bMax := b.Project(axis)
		if aMin > bMax || aMax < bMin {
			return true
		}
		if measure {
			d := min(mgl32.Abs(aMin-bMax), mgl32.Abs(aMax-bMin)) / l
			if d < depth {
				depth = d
				best = axis.Mul(1 / l)
			}
		}
		return false
	}

	connecting := ca.Sub(cb)
	if separated(geom.Unit(connecting)) {
		return mgl32.Vec3{}, 0, false
	}
	for _, axis := range a.WorldAxes() {
		if separated(axis) {
			return mgl32.Vec3{}, 0, false
		}
	}
	for _, axis := range b.WorldAxes() {
		if separated(axis) {
			return mgl32.Vec3{}, 0, false
		}
	}
	if axis, has := roundAxis(a, b); has && separated(axis) {
		return mgl32.Vec3{}, 0, false
	}

	if !measure {
		return mgl32.Vec3{}, 0, true
	}
	if depth == math.MaxFloat32 {
		// Coincident circles have no usable axis.
		return mgl32.Vec3{}, 0, true
	}
	if best.Dot(connecting) < 0 {
		best = best.Mul(-1)
	}
	return best, depth, true
}

// roundAxis supplies the axis from a circle's center to the nearest vertex of
// a polygon, which circle-polygon pairs need beyond the edge normals.
func roundAxis(a, b Collider) (mgl32.Vec3, bool) {
	c, ok := a.(*Circle)
	other := b
	if !ok {
		c, ok = b.(*Circle)
		other = a
	}
	if !ok {
		return mgl32.Vec3{}, false
	}
	p, ok := other.(Polygonal)
	if !ok {
		return mgl32.Vec3{}, false
	}
	verts := p.WorldVertices()
	if len(verts) == 0 {
		return mgl32.Vec3{}, false
	}
	center := geom.FlattenY(c.Center())
	nearest := verts[0]
	for _, v := range verts[1:] {
		if v.Sub(center).LenSqr() < nearest.Sub(center).LenSqr() {
			nearest = v
		}
	}
	return center.Sub(nearest), true
}
