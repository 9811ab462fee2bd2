// Package game is the client side of the simulation: it steers the ship
// from input and reacts to collisions, touching entities only through
// checkout and checkin.
package game

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/core/event"
	"github.com/voidrift/simcore/internal/data"
	"github.com/voidrift/simcore/internal/entity"
	"github.com/voidrift/simcore/internal/frame"
	"github.com/voidrift/simcore/internal/scene"
	"github.com/voidrift/simcore/internal/scripting"
)

// Stats counts what happened since the session started.
type Stats struct {
	Shots        int
	BulletHits   int
	ShipHits     int
	AsteroidHits int
}

type Controller struct {
	tree   *scene.Tree
	layout data.Layout
	script *scripting.Engine
	bus    *event.Bus
	bounce float32 // used when the script has no on_collision answer
	log    *zap.Logger
	stats  Stats
	recent int // collisions resolved since the last Control
}

// New wires a controller to the scene and subscribes it to collision and
// shot events.
func New(tree *scene.Tree, layout data.Layout, script *scripting.Engine, bus *event.Bus, bounce float32, log *zap.Logger) *Controller {
	c := &Controller{
		tree:   tree,
		layout: layout,
		script: script,
		bus:    bus,
		bounce: bounce,
		log:    log,
	}
	event.Subscribe(bus, c.onCollision)
	event.Subscribe(bus, c.onShot)
	return c
}

func (c *Controller) Stats() Stats { return c.stats }

// Control applies this tick's input to the ship and gun.
func (c *Controller) Control(f *frame.Frame) {
	ship := c.tree.Checkout(c.layout.Ship).(*entity.Ship)
	defer c.tree.Checkin(c.layout.Ship, ship)

	var gun *entity.Gun
	if c.layout.HasGun {
		gun = c.tree.Checkout(c.layout.Gun).(*entity.Gun)
		defer c.tree.Checkin(c.layout.Gun, gun)
	}

	ctl := c.script.Control(scripting.ControlInput{
		Keys:       f.Keys,
		Velocity:   ship.Body.Velocity(),
		Spin:       ship.Body.AngularVelocity()[1],
		GunReady:   gun != nil && gun.Ready(),
		Collisions: c.recent,
	})
	c.recent = 0

	// sorted so forces accumulate in the same order every run
	for _, g := range slices.Sorted(maps.Keys(ctl.Throttle)) {
		if th := ctl.Throttle[g]; th > 0 {
			ship.Fire(g, th)
		}
	}

	if ctl.Shoot && gun != nil && gun.Shoot(f.Dt, ship.Rotation, &ship.Body) {
		event.Emit(c.bus, event.Shot{Gun: c.layout.Gun, Bullet: gun.Current(), T: f.T})
	}
}

func (c *Controller) onShot(ev event.Shot) {
	c.stats.Shots++
	c.log.Debug("shot", zap.Uint32("gun", uint32(ev.Gun)), zap.Int("bullet", ev.Bullet))
}

func (c *Controller) onCollision(ev event.Collision) {
	res, ok := c.script.OnCollision(ev.A.Kind, ev.B.Kind, ev.Depth)
	if !ok {
		res = scripting.CollisionResult{
			Bounce:  c.bounce,
			Destroy: ev.A.Kind == entity.KindBullet || ev.B.Kind == entity.KindBullet,
		}
	}
	c.recent++
	c.resolve(ev.A, ev.Axis, res)
	c.resolve(ev.B, ev.Axis.Mul(-1), res)
}

// resolve applies res to one side of a contact. away points out of the
// other shape.
func (c *Controller) resolve(p entity.Probe, away mgl32.Vec3, res scripting.CollisionResult) {
	switch p.Kind {
	case entity.KindBullet:
		if !res.Destroy {
			return
		}
		c.with(p.Node, func(e entity.Entity) {
			switch owner := e.(type) {
			case *entity.Gun:
				if p.Part >= 0 {
					owner.Bullet(p.Part).Kill()
				}
			case *entity.Bullet:
				owner.Kill()
			}
		})
		c.stats.BulletHits++

	case entity.KindAsteroid:
		c.with(p.Node, func(e entity.Entity) {
			if a, ok := e.(*entity.Asteroid); ok {
				a.Hit()
			}
		})
		c.stats.AsteroidHits++

	case entity.KindShip:
		c.with(p.Node, func(e entity.Entity) {
			if s, ok := e.(*entity.Ship); ok && res.Bounce > 0 {
				s.Body.ApplyForce(away.Mul(res.Bounce * s.Body.Mass))
			}
		})
		c.stats.ShipHits++
	}
}

func (c *Controller) with(h arena.Handle, fn func(entity.Entity)) {
	e := c.tree.Checkout(h)
	defer c.tree.Checkin(h, e)
	fn(e)
}
