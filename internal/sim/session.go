// Package sim assembles the scene, systems and client logic into a session
// that advances one frame per Step.
package sim

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/voidrift/simcore/internal/config"
	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/core/event"
	coresys "github.com/voidrift/simcore/internal/core/system"
	"github.com/voidrift/simcore/internal/data"
	"github.com/voidrift/simcore/internal/entity"
	"github.com/voidrift/simcore/internal/frame"
	"github.com/voidrift/simcore/internal/game"
	"github.com/voidrift/simcore/internal/geom"
	"github.com/voidrift/simcore/internal/scene"
	"github.com/voidrift/simcore/internal/scripting"
	"github.com/voidrift/simcore/internal/system"
)

// Session owns one running simulation. Not safe for concurrent use.
type Session struct {
	tree   *scene.Tree
	layout data.Layout
	frame  *frame.Frame
	camera *geom.Camera
	offset mgl32.Vec3 // camera position relative to its target
	follow bool
	runner *coresys.Runner
	output *system.OutputSystem
	ctl    *game.Controller
	script *scripting.Engine
	ticks  int
	log    *zap.Logger
}

// NewSession builds sc into a fresh scene. reg receives every renderer
// descriptor before NewSession returns.
func NewSession(cfg *config.Config, sc *data.Scene, reg scene.Registrar, log *zap.Logger) (*Session, error) {
	script, err := scripting.NewEngine(cfg.Scripts.Dir, log.Named("lua"))
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}

	tree := scene.NewTree(cfg.Simulation.NodeCapacity, cfg.Simulation.ChildCapacity, reg, log.Named("scene"))
	layout, err := build(sc, tree)
	if err != nil {
		script.Close()
		return nil, err
	}
	ship := tree.Entity(layout.Ship).(*entity.Ship)
	ship.Body.VelocityLimit = cfg.Physics.VelocityLimit
	ship.Body.AngularVelocityLimit = cfg.Physics.AngularVelocityLimit

	cam := cfg.Camera
	pos, target := mgl32.Vec3(cam.Position), mgl32.Vec3(cam.Target)
	s := &Session{
		tree:   tree,
		layout: layout,
		frame:  frame.New(cfg.Simulation.BufferCapacity),
		camera: geom.NewCamera(pos, target, cam.Fov, cam.Aspect, cam.Near, cam.Far),
		offset: pos.Sub(target),
		follow: cam.Follow,
		runner: coresys.NewRunner(),
		output: system.NewOutputSystem(cfg.Simulation.Digest, log),
		script: script,
		log:    log,
	}

	bus := event.NewBus()
	s.ctl = game.New(tree, layout, script, bus, cfg.Physics.CollisionBounce, log.Named("game"))
	s.runner.Register(system.NewEventSystem(bus))
	s.runner.Register(system.NewControlSystem(s.ctl))
	s.runner.Register(system.NewSceneSystem(tree))
	s.runner.Register(system.NewCollisionSystem(tree, bus, log.Named("collision")))
	s.runner.Register(s.output)

	log.Info("session ready",
		zap.Int("nodes", tree.Len()),
		zap.Int("asteroids", len(layout.Asteroids)),
		zap.Bool("gun", layout.HasGun),
	)
	return s, nil
}

// build turns an arena overflow while populating the tree into an error.
func build(sc *data.Scene, tree *scene.Tree) (l data.Layout, err error) {
	defer func() {
		if r := recover(); r != nil {
			var ce arena.CapacityError
			if e, ok := r.(error); ok && errors.As(e, &ce) {
				err = fmt.Errorf("scene does not fit: %w", ce)
				return
			}
			panic(r)
		}
	}()
	return sc.Build(tree), nil
}

// Step advances the simulation by dt and returns the finalized frame
// buffer. The slice is reused by the next Step.
func (s *Session) Step(t, dt float32, keys frame.Keys) []float32 {
	if s.follow {
		p := s.tree.Entity(s.layout.Ship).(*entity.Ship).Position
		s.camera.Position = p.Add(s.offset)
		s.camera.LookAt(p)
	}
	s.frame.Update(t, dt, keys, s.camera.ViewProjection())
	s.runner.Tick(s.frame)
	s.ticks++
	return s.output.Output()
}

// Digest hashes the last frame.
func (s *Session) Digest() [32]byte { return s.frame.Buffer.Digest() }

func (s *Session) Ticks() int           { return s.ticks }
func (s *Session) Stats() game.Stats    { return s.ctl.Stats() }
func (s *Session) Layout() data.Layout  { return s.layout }
func (s *Session) Tree() *scene.Tree    { return s.tree }
func (s *Session) Camera() *geom.Camera { return s.camera }

// Ship peeks at the player's ship.
func (s *Session) Ship() *entity.Ship {
	return s.tree.Entity(s.layout.Ship).(*entity.Ship)
}

func (s *Session) Close() {
	s.script.Close()
}
