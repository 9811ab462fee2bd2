// Package physics integrates linear and angular motion of rigid bodies.
//
// Units: distance in meters, mass in kilograms, time in seconds.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/geom"
)

const (
	DefaultVelocityLimit        = 200
	DefaultAngularVelocityLimit = 5

	// NearZero is the speed below which a velocity snaps to zero before
	// integration.
	NearZero = 1e-3

	// DampingSpeed and DampingSpin are the thresholds under which
	// ApplyDamping stops pushing against motion and zeroes it instead.
	DampingSpeed = 0.05
	DampingSpin  = 0.005
)

// RigidBody holds the dynamic state of one body. Forces and torques
// accumulate between calls to UpdatePhysics and are cleared by it.
// A body with Mass <= 0 is static: UpdatePhysics leaves it untouched.
type RigidBody struct {
	Mass            float32
	MomentOfInertia float32
	Damping         float32

	VelocityLimit        float32
	AngularVelocityLimit float32

	force               mgl32.Vec3
	velocity            mgl32.Vec3
	acceleration        mgl32.Vec3
	torque              mgl32.Vec3
	angularVelocity     mgl32.Vec3
	angularAcceleration mgl32.Vec3
}

// New returns a body with the given mass and damping coefficient. The moment
// of inertia defaults to that of a 10m cube of the same mass.
func New(mass, damping float32) RigidBody {
	return RigidBody{
		Mass:                 mass,
		MomentOfInertia:      MomentCube(mass, 10),
		Damping:              damping,
		VelocityLimit:        DefaultVelocityLimit,
		AngularVelocityLimit: DefaultAngularVelocityLimit,
	}
}

// Static reports whether the body is excluded from integration.
func (rb *RigidBody) Static() bool { return !(rb.Mass > 0) }

func (rb *RigidBody) Velocity() mgl32.Vec3        { return rb.velocity }
func (rb *RigidBody) AngularVelocity() mgl32.Vec3 { return rb.angularVelocity }
func (rb *RigidBody) Acceleration() mgl32.Vec3    { return rb.acceleration }
func (rb *RigidBody) Force() mgl32.Vec3           { return rb.force }
func (rb *RigidBody) Torque() mgl32.Vec3          { return rb.torque }

func (rb *RigidBody) SetVelocity(v mgl32.Vec3)        { rb.velocity = v }
func (rb *RigidBody) SetAngularVelocity(w mgl32.Vec3) { rb.angularVelocity = w }

// Reset zeroes all dynamic state, leaving mass and limits.
func (rb *RigidBody) Reset() {
	rb.force = mgl32.Vec3{}
	rb.velocity = mgl32.Vec3{}
	rb.acceleration = mgl32.Vec3{}
	rb.torque = mgl32.Vec3{}
	rb.angularVelocity = mgl32.Vec3{}
	rb.angularAcceleration = mgl32.Vec3{}
}

// Inherit copies the motion of other, so a spawned body starts moving with
// its parent.
func (rb *RigidBody) Inherit(other *RigidBody) {
	rb.velocity = other.velocity
	rb.acceleration = other.acceleration
	rb.angularVelocity = other.angularVelocity
	rb.angularAcceleration = other.angularAcceleration
}

// ApplyForce adds f to the force accumulator.
func (rb *RigidBody) ApplyForce(f mgl32.Vec3) {
	rb.force = rb.force.Add(f)
}

// ApplyTorque adds lever × f to the torque accumulator.
func (rb *RigidBody) ApplyTorque(f, lever mgl32.Vec3) {
	rb.torque = rb.torque.Add(lever.Cross(f))
}

// ApplyForceAndTorque applies f at lever from the center of mass.
func (rb *RigidBody) ApplyForceAndTorque(f, lever mgl32.Vec3) {
	rb.ApplyForce(f)
	rb.ApplyTorque(f, lever)
}

// ApplyDamping pushes against the current motion with strength c. Motion
// already below the damping thresholds is zeroed outright.
func (rb *RigidBody) ApplyDamping(c float32) {
	if rb.Static() {
		return
	}
	if rb.velocity.Len() > DampingSpeed {
		rb.ApplyForce(rb.velocity.Mul(-rb.Mass * c))
	} else {
		rb.velocity = mgl32.Vec3{}
	}
	if rb.angularVelocity.Len() > DampingSpin {
		rb.torque = rb.torque.Add(rb.angularVelocity.Mul(-rb.MomentOfInertia * c))
	} else {
		rb.angularVelocity = mgl32.Vec3{}
	}
}

// UpdatePhysics advances the body by dt, writing the new position and
// rotation through pos and rot.
//
// Position uses the current velocity plus half a step of the previous
// acceleration; the velocity then gains half a step of the acceleration
// derived from this tick's accumulators.
func (rb *RigidBody) UpdatePhysics(dt float32, pos, rot *mgl32.Vec3) {
	if rb.Static() {
		return
	}

	if geom.NearZero(rb.velocity, NearZero) {
		rb.velocity = mgl32.Vec3{}
	}
	if geom.NearZero(rb.angularVelocity, NearZero) {
		rb.angularVelocity = mgl32.Vec3{}
	}

	*pos = pos.Add(rb.velocity.Mul(dt)).Add(rb.acceleration.Mul(0.5 * dt * dt))
	rb.acceleration = rb.force.Mul(1 / rb.Mass)
	rb.velocity = rb.velocity.Add(rb.acceleration.Mul(0.5 * dt))

	*rot = rot.Add(rb.angularVelocity.Mul(dt)).Add(rb.angularAcceleration.Mul(0.5 * dt * dt))
	if rb.MomentOfInertia > 0 {
		rb.angularAcceleration = rb.torque.Mul(1 / rb.MomentOfInertia)
	} else {
		rb.angularAcceleration = mgl32.Vec3{}
	}
	rb.angularVelocity = rb.angularVelocity.Add(rb.angularAcceleration.Mul(0.5 * dt))

	rb.velocity = geom.ClampLen(rb.velocity, rb.VelocityLimit)
	rb.angularVelocity = geom.ClampLen(rb.angularVelocity, rb.AngularVelocityLimit)

	rb.force = mgl32.Vec3{}
	rb.torque = mgl32.Vec3{}
}
