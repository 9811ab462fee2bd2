package geom

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera looking at a target point.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
}

// NewCamera builds a camera with a vertical field of view in degrees.
func NewCamera(pos, target mgl32.Vec3, fovDeg, aspect, near, far float32) *Camera {
	return &Camera{
		Position:   pos,
		Target:     target,
		Up:         mgl32.Vec3{0, 1, 0},
		projection: mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far),
	}
}

// LookAt retargets the camera.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// View is the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// ViewProjection is Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.View())
}
