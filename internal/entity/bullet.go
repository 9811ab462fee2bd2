package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/geom"
	"github.com/voidrift/simcore/internal/physics"
)

const (
	BulletMass          = 12
	BulletVelocityLimit = 800
	BulletRadius        = 1

	DefaultBulletLifetime     = 2.0 // seconds
	DefaultBulletExitVelocity = 400
)

// Bullet is a short-lived projectile. Dead bullets are skipped, never freed.
type Bullet struct {
	renderSlot

	Position     mgl32.Vec3
	Rotation     mgl32.Vec3
	Body         physics.RigidBody
	Shape        *collision.Circle
	Lifetime     float32
	ExitVelocity float32

	live   bool
	age    float32
	matrix mgl32.Mat4
}

func NewBullet(lifetime, exitVelocity float32) Bullet {
	body := physics.New(BulletMass, 0)
	body.MomentOfInertia = physics.MomentCube(BulletMass, 2)
	body.VelocityLimit = BulletVelocityLimit
	return Bullet{
		Body:         body,
		Shape:        collision.NewCircle(BulletRadius),
		Lifetime:     lifetime,
		ExitVelocity: exitVelocity,
		matrix:       mgl32.Ident4(),
	}
}

func (b *Bullet) Kind() Kind { return KindBullet }
func (b *Bullet) isEntity()  {}

func (b *Bullet) Live() bool   { return b.live }
func (b *Bullet) Age() float32 { return b.age }

// Kill retires the bullet before its lifetime runs out.
func (b *Bullet) Kill() { b.live = false }

// Fire launches the bullet from pos along dir, carrying the motion of
// parent. The returned force is the recoil to apply to the shooter.
func (b *Bullet) Fire(dt float32, pos, rot, dir mgl32.Vec3, parent *physics.RigidBody) mgl32.Vec3 {
	b.Position = pos
	b.Rotation = rot
	b.live = true
	b.age = 0

	force := dir.Mul(b.Body.Mass * b.ExitVelocity / dt)
	b.Body.Reset()
	b.Body.Inherit(parent)
	b.Body.ApplyForce(force)
	b.Shape.Update(pos)
	return force.Mul(-1)
}

func (b *Bullet) UpdateMatrix(dt float32, parent mgl32.Mat4) mgl32.Mat4 {
	if !b.live {
		return parent
	}
	b.age += dt
	if b.age > b.Lifetime {
		b.live = false
		return parent
	}
	b.Body.UpdatePhysics(dt, &b.Position, &b.Rotation)
	b.Shape.Update(b.Position)
	b.matrix = parent.Mul4(geom.Local(b.Position, b.Rotation, mgl32.Vec3{1, 1, 1}))
	return b.matrix
}

func (b *Bullet) ShaderMetadata() (string, bool) { return QuadDescriptor, true }
func (b *Bullet) Visible() bool                  { return b.live }
func (b *Bullet) Matrix() mgl32.Mat4             { return b.matrix }

func (b *Bullet) probe(node arena.Handle, part int) Probe {
	return Probe{
		Node:  node,
		Part:  part,
		Kind:  KindBullet,
		Shape: b.Shape,
		Layer: Layers(LayerBullet),
		Hits:  Layers(LayerAsteroid),
	}
}

func (b *Bullet) AppendProbes(dst []Probe, node arena.Handle) []Probe {
	if !b.live {
		return dst
	}
	return append(dst, b.probe(node, -1))
}
