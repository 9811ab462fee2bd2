package collision

import "github.com/go-gl/mathgl/mgl32"

// Circle is a disc on the ground plane. It contributes no axes of its own.
type Circle struct {
	center mgl32.Vec3
	Radius float32
}

func NewCircle(radius float32) *Circle {
	return &Circle{Radius: radius}
}

// Update moves the circle to position.
func (c *Circle) Update(position mgl32.Vec3) {
	c.center = position
}

func (c *Circle) Center() mgl32.Vec3      { return c.center }
func (c *Circle) WorldAxes() []mgl32.Vec3 { return nil }

func (c *Circle) Project(axis mgl32.Vec3) (float32, float32) {
	d := c.center.Dot(axis)
	r := c.Radius * axis.Len()
	return d - r, d + r
}
