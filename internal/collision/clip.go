package collision

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/geom"
)

// Edge is a polygon edge together with the vertex furthest along the
// direction it was selected for.
type Edge struct {
	Max mgl32.Vec3
	A   mgl32.Vec3
	B   mgl32.Vec3
}

// Vector is B - A.
func (e Edge) Vector() mgl32.Vec3 { return e.B.Sub(e.A) }

// Contact is one point of a contact manifold and how deep it sits behind the
// reference face.
type Contact struct {
	Point mgl32.Vec3
	Depth float32
}

// BestEdge finds the edge of a convex polygon most involved in a collision
// along n: the vertex furthest along n, joined to whichever neighbour gives
// the edge most perpendicular to n.
func BestEdge(vertices []mgl32.Vec3, n mgl32.Vec3) Edge {
	count := len(vertices)
	idx := 0
	best := vertices[0].Dot(n)
	for i := 1; i < count; i++ {
		if d := vertices[i].Dot(n); d > best {
			best = d
			idx = i
		}
	}

	v := vertices[idx]
	prev := vertices[(idx+count-1)%count]
	next := vertices[(idx+1)%count]

	left := geom.Unit(v.Sub(next))
	right := geom.Unit(v.Sub(prev))
	if right.Dot(n) <= left.Dot(n) {
		return Edge{Max: v, A: prev, B: v}
	}
	return Edge{Max: v, A: v, B: next}
}

// Clip clips the segment v1-v2 against the plane n·p = o, keeping the part
// on the positive side. The test is d >= 0 rather than a strict d > 0:
// endpoints lying on the plane are kept, so equal-width faces in flush
// contact still yield both corners. A segment crossing the plane gains the
// intersection point.
func Clip(v1, v2, n mgl32.Vec3, o float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, 2)
	d1 := n.Dot(v1) - o
	d2 := n.Dot(v2) - o
	if d1 >= 0 {
		out = append(out, v1)
	}
	if d2 >= 0 {
		out = append(out, v2)
	}
	if d1*d2 < 0 {
		u := d1 / (d1 - d2)
		out = append(out, v2.Sub(v1).Mul(u).Add(v1))
	}
	return out
}

// Manifold returns up to two contact points between overlapping polygons a
// and b. n is the collision normal pointing from a toward b.
func Manifold(a, b Polygonal, n mgl32.Vec3) []Contact {
	e1 := BestEdge(a.WorldVertices(), n)
	e2 := BestEdge(b.WorldVertices(), n.Mul(-1))

	ref, inc := e1, e2
	outward := n
	if mgl32.Abs(e1.Vector().Dot(n)) > mgl32.Abs(e2.Vector().Dot(n)) {
		ref, inc = e2, e1
		outward = n.Mul(-1)
	}

	refv := geom.Unit(ref.Vector())

	cp := Clip(inc.A, inc.B, refv, refv.Dot(ref.A))
	if len(cp) < 2 {
		return nil
	}
	cp = Clip(cp[0], cp[1], refv.Mul(-1), -refv.Dot(ref.B))
	if len(cp) < 2 {
		return nil
	}

	normal := geom.Unit(mgl32.Vec3{refv[2], 0, -refv[0]})
	if normal.Dot(outward) < 0 {
		normal = normal.Mul(-1)
	}
	face := normal.Dot(ref.Max)

	contacts := make([]Contact, 0, 2)
	for _, p := range cp {
		if depth := face - normal.Dot(p); depth >= 0 {
			contacts = append(contacts, Contact{Point: p, Depth: depth})
		}
	}
	return contacts
}
