package entity

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/geom"
	"github.com/voidrift/simcore/internal/physics"
)

const (
	DefaultMagazine   = 200
	DefaultShootDelay = 0.25 // seconds
)

// Gun fires bullets from a fixed ring, reusing the oldest one each shot.
// Bullets fly in world space, independent of the gun once fired.
type Gun struct {
	Position   mgl32.Vec3
	Direction  mgl32.Vec3
	ShootDelay float32

	bullets  *arena.Arena[Bullet]
	index    int
	cooldown float32
	mount    mgl32.Mat4
	matrix   mgl32.Mat4
}

// NewGun mounts a gun at pos aiming along dir with a ring of magazine
// bullets.
func NewGun(pos, dir mgl32.Vec3, magazine int, shootDelay, lifetime, exitVelocity float32) *Gun {
	g := &Gun{
		Position:   pos,
		Direction:  dir,
		ShootDelay: shootDelay,
		bullets:    arena.New[Bullet](magazine),
		mount:      mgl32.Ident4(),
		matrix:     mgl32.Ident4(),
	}
	for !g.bullets.Full() {
		g.bullets.Add(NewBullet(lifetime, exitVelocity))
	}
	return g
}

func (g *Gun) Kind() Kind { return KindGun }
func (g *Gun) isEntity()  {}

func (g *Gun) Bullet(i int) *Bullet { return g.bullets.Ptr(arena.Handle(i)) }
func (g *Gun) Magazine() int        { return g.bullets.Len() }

// Current is the ring index of the most recently fired bullet.
func (g *Gun) Current() int { return g.index }

// Ready reports whether the shoot delay has elapsed.
func (g *Gun) Ready() bool { return g.cooldown <= 0 }

// Shoot fires the next bullet in the ring if the gun is ready, pushing the
// shooter's body back with the recoil. rotation orients the bullet. A
// frame with no elapsed time never fires: the exit impulse is spread over dt.
func (g *Gun) Shoot(dt float32, rotation mgl32.Vec3, body *physics.RigidBody) bool {
	if dt <= 0 || !g.Ready() || g.bullets.Len() == 0 {
		return false
	}
	center := geom.Point(g.mount, geom.Origin)
	lever := geom.Point(g.mount, g.Position).Sub(center)
	dir := geom.Unit(geom.Point(g.mount, g.Direction).Sub(center))
	muzzle := geom.Point(g.mount, g.Position.Add(g.Direction))

	g.index = (g.index + 1) % g.bullets.Len()
	recoil := g.Bullet(g.index).Fire(dt, muzzle, rotation, dir, body)
	body.ApplyForceAndTorque(recoil, lever)
	g.cooldown = g.ShootDelay
	return true
}

func (g *Gun) UpdateMatrix(dt float32, parent mgl32.Mat4) mgl32.Mat4 {
	g.mount = parent
	if g.cooldown > 0 {
		g.cooldown -= dt
	}
	p := g.Position.Add(g.Direction)
	g.matrix = parent.Mul4(mgl32.Translate3D(p[0], p[1], p[2]))

	world := mgl32.Ident4()
	for _, b := range g.bullets.All() {
		b.UpdateMatrix(dt, world)
	}
	return g.matrix
}

func (g *Gun) ShaderMetadata() (string, bool) { return QuadDescriptor, true }
func (g *Gun) Matrix() mgl32.Mat4             { return g.matrix }

func (g *Gun) Parts() iter.Seq[Part] {
	return func(yield func(Part) bool) {
		for _, b := range g.bullets.All() {
			if !yield(b) {
				return
			}
		}
	}
}

func (g *Gun) AppendProbes(dst []Probe, node arena.Handle) []Probe {
	for h, b := range g.bullets.All() {
		if b.live {
			dst = append(dst, b.probe(node, h.Index()))
		}
	}
	return dst
}
