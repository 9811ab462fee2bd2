package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/geom"
	"github.com/voidrift/simcore/internal/physics"
)

// PlumeOffset is how far along the exhaust a firing engine's plume is drawn,
// in body units.
const PlumeOffset = 4

// Engine is a thruster mounted on a body. Direction is the way the exhaust
// leaves the nozzle; firing pushes the body the opposite way.
type Engine struct {
	renderSlot

	Name      string
	Group     string
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Thrust    float32 // newtons

	firing bool
	mount  mgl32.Mat4
	matrix mgl32.Mat4
}

// NewEngine mounts an engine at pos with exhaust direction dir and a thrust
// given in kilonewtons.
func NewEngine(name, group string, pos, dir mgl32.Vec3, thrustKN float32) Engine {
	return Engine{
		Name:      name,
		Group:     group,
		Position:  pos,
		Direction: geom.Unit(dir),
		Thrust:    thrustKN * 1000,
		mount:     mgl32.Ident4(),
		matrix:    mgl32.Ident4(),
	}
}

func (e *Engine) Kind() Kind { return KindEngine }
func (e *Engine) isEntity()  {}

// ExhaustDirection is the world-space unit exhaust direction, using the
// mount matrix from the last update.
func (e *Engine) ExhaustDirection() mgl32.Vec3 {
	center := geom.Point(e.mount, geom.Origin)
	return geom.Unit(geom.Point(e.mount, e.Direction).Sub(center))
}

// LeverArm is the world-space offset of the engine from its mount's center.
func (e *Engine) LeverArm() mgl32.Vec3 {
	center := geom.Point(e.mount, geom.Origin)
	return geom.Point(e.mount, e.Position).Sub(center)
}

// Fire pushes body against the exhaust at the engine's lever arm. throttle
// scales the thrust, 1 being full power.
func (e *Engine) Fire(body *physics.RigidBody, throttle float32) {
	body.ApplyForceAndTorque(e.ExhaustDirection().Mul(-e.Thrust*throttle), e.LeverArm())
	e.firing = true
}

func (e *Engine) Firing() bool { return e.firing }

// UpdateMatrix records parent as the mount and draws the plume when the
// engine fired since the last update.
func (e *Engine) UpdateMatrix(_ float32, parent mgl32.Mat4) mgl32.Mat4 {
	e.mount = parent
	e.matrix = parent
	if e.firing {
		p := e.Position.Add(e.Direction.Mul(PlumeOffset))
		e.matrix = parent.Mul4(mgl32.Translate3D(p[0], p[1], p[2]))
		e.firing = false
	}
	return e.matrix
}

func (e *Engine) ShaderMetadata() (string, bool) { return QuadDescriptor, true }
func (e *Engine) Visible() bool                  { return true }
func (e *Engine) Matrix() mgl32.Mat4             { return e.matrix }
