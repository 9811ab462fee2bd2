package physics

// MomentCube is the moment of inertia of a solid cube of mass m and side s
// about an axis through its center.
func MomentCube(m, s float32) float32 {
	return m * s * s / 6
}

// MomentCuboid is the moment of inertia of a cuboid of mass m about the axis
// perpendicular to the face with sides a and b.
func MomentCuboid(m, a, b float32) float32 {
	return m * (a*a + b*b) / 12
}
