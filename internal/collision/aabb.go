package collision

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned box on the ground plane. A disabled box never
// overlaps anything.
type AABB struct {
	W, H    float32
	x1, z1  float32
	x2, z2  float32
	enabled bool
}

// Enable turns the box on with width w (X) and height h (Z).
func (b *AABB) Enable(w, h float32) {
	b.enabled = true
	b.W = w
	b.H = h
}

func (b *AABB) Enabled() bool { return b.enabled }

// Update centers the box on position.
func (b *AABB) Update(position mgl32.Vec3) {
	if !b.enabled {
		return
	}
	b.x1 = position[0] - b.W/2
	b.z1 = position[2] - b.H/2
	b.x2 = position[0] + b.W/2
	b.z2 = position[2] + b.H/2
}

// Overlaps reports whether the two boxes intersect.
func (b *AABB) Overlaps(o *AABB) bool {
	if !b.enabled || !o.enabled {
		return false
	}
	if b.x2 < o.x1 || b.x1 > o.x2 {
		return false
	}
	return !(b.z2 < o.z1 || b.z1 > o.z2)
}

// Bounds is the enabled box enclosing c on the ground plane.
func Bounds(c Collider) AABB {
	x1, x2 := c.Project(mgl32.Vec3{1, 0, 0})
	z1, z2 := c.Project(mgl32.Vec3{0, 0, 1})
	var b AABB
	b.Enable(x2-x1, z2-z1)
	b.Update(mgl32.Vec3{(x1 + x2) / 2, 0, (z1 + z2) / 2})
	return b
}
