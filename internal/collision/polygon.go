package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/geom"
)

// Polygon is a convex N-gon defined in body space. Update places it in the
// world for the current tick.
type Polygon struct {
	center        mgl32.Vec3
	vertices      []mgl32.Vec3
	axes          []mgl32.Vec3
	worldVertices []mgl32.Vec3
	worldAxes     []mgl32.Vec3
}

// NewPolygon builds a polygon from body-space vertices in winding order.
func NewPolygon(vertices ...mgl32.Vec3) *Polygon {
	n := len(vertices)
	p := &Polygon{
		vertices:      append([]mgl32.Vec3(nil), vertices...),
		axes:          make([]mgl32.Vec3, n),
		worldVertices: make([]mgl32.Vec3, n),
		worldAxes:     make([]mgl32.Vec3, n),
	}
	for i := range p.vertices {
		edge := p.vertices[i].Sub(p.vertices[(i+1)%n])
		p.axes[i] = mgl32.Vec3{-edge[2], 0, edge[0]}
	}
	copy(p.worldVertices, p.vertices)
	copy(p.worldAxes, p.axes)
	return p
}

// Box returns a rectangle with the given half extents on X and Z.
func Box(halfX, halfZ float32) *Polygon {
	return NewPolygon(
		mgl32.Vec3{-halfX, 0, -halfZ},
		mgl32.Vec3{halfX, 0, -halfZ},
		mgl32.Vec3{halfX, 0, halfZ},
		mgl32.Vec3{-halfX, 0, halfZ},
	)
}

// Regular returns an n-sided regular polygon inscribed in radius.
func Regular(n int, radius float32) *Polygon {
	verts := make([]mgl32.Vec3, n)
	for i := range verts {
		a := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = mgl32.Vec3{radius * float32(math.Cos(a)), 0, radius * float32(math.Sin(a))}
	}
	return NewPolygon(verts...)
}

// Update recomputes the world-space center, vertices and axes from m.
// Vertices are flattened onto the ground plane.
func (p *Polygon) Update(m mgl32.Mat4) {
	p.center = geom.Point(m, geom.Origin)
	for i, v := range p.vertices {
		p.worldVertices[i] = geom.FlattenY(geom.Point(m, v))
	}
	for i, axis := range p.axes {
		p.worldAxes[i] = geom.Point(m, axis).Sub(p.center)
	}
}

func (p *Polygon) Center() mgl32.Vec3          { return p.center }
func (p *Polygon) WorldAxes() []mgl32.Vec3     { return p.worldAxes }
func (p *Polygon) WorldVertices() []mgl32.Vec3 { return p.worldVertices }
func (p *Polygon) Vertices() []mgl32.Vec3      { return p.vertices }

func (p *Polygon) Project(axis mgl32.Vec3) (float32, float32) {
	lo := float32(math.MaxFloat32)
	hi := float32(-math.MaxFloat32)
	for _, v := range p.worldVertices {
		d := v.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}
	return lo, hi
}
