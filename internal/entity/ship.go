package entity

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/geom"
	"github.com/voidrift/simcore/internal/physics"
)

// Engine groups fired together by the default controls.
const (
	GroupForward     = "forward"
	GroupBackward    = "backward"
	GroupLeftTop     = "left_top"
	GroupRightTop    = "right_top"
	GroupLeftBottom  = "left_bottom"
	GroupRightBottom = "right_bottom"
)

// MaxEngines bounds the engines a ship can carry.
const MaxEngines = 16

// Ship is a damped rigid body driven by its engines.
type Ship struct {
	geom.Transform
	Body physics.RigidBody
	Hull *collision.Polygon

	engines *arena.Arena[Engine]
	groups  map[string][]arena.Handle
	matrix  mgl32.Mat4
}

// NewShip builds a ship without engines.
func NewShip(body physics.RigidBody, scale float32, hull *collision.Polygon) *Ship {
	t := geom.NewTransform()
	t.Scale = mgl32.Vec3{scale, scale, scale}
	return &Ship{
		Transform: t,
		Body:      body,
		Hull:      hull,
		engines:   arena.New[Engine](MaxEngines),
		groups:    make(map[string][]arena.Handle),
		matrix:    mgl32.Ident4(),
	}
}

// DefaultShip is a 100kg ship with two main engines, two retro engines and
// four manoeuvring engines at the corners.
func DefaultShip() *Ship {
	s := NewShip(physics.New(100, 2), 5, collision.Box(4, 6))
	for _, e := range []Engine{
		NewEngine("left_top", GroupLeftTop, mgl32.Vec3{-4, 0, -4}, mgl32.Vec3{-1, 0, 0}, 1.1),
		NewEngine("right_top", GroupRightTop, mgl32.Vec3{4, 0, -4}, mgl32.Vec3{1, 0, 0}, 1.1),
		NewEngine("left_bottom", GroupLeftBottom, mgl32.Vec3{-4, 0, 4}, mgl32.Vec3{-1, 0, 0}, 1.1),
		NewEngine("right_bottom", GroupRightBottom, mgl32.Vec3{4, 0, 4}, mgl32.Vec3{1, 0, 0}, 1.1),
		NewEngine("forward_1", GroupForward, mgl32.Vec3{-2, 0, 6}, mgl32.Vec3{0, 0, 1}, 1.7),
		NewEngine("forward_2", GroupForward, mgl32.Vec3{2, 0, 6}, mgl32.Vec3{0, 0, 1}, 1.7),
		NewEngine("backward_1", GroupBackward, mgl32.Vec3{-1, 0, -6}, mgl32.Vec3{0, 0, -1}, 1.3),
		NewEngine("backward_2", GroupBackward, mgl32.Vec3{1, 0, -6}, mgl32.Vec3{0, 0, -1}, 1.3),
	} {
		s.AddEngine(e)
	}
	return s
}

func (s *Ship) Kind() Kind { return KindShip }
func (s *Ship) isEntity()  {}

// AddEngine mounts e and files it under its group.
func (s *Ship) AddEngine(e Engine) arena.Handle {
	h := s.engines.Add(e)
	s.groups[e.Group] = append(s.groups[e.Group], h)
	return h
}

func (s *Ship) Engine(h arena.Handle) *Engine { return s.engines.Ptr(h) }
func (s *Ship) EngineCount() int              { return s.engines.Len() }

// Fire fires every engine in group and returns how many fired.
func (s *Ship) Fire(group string, throttle float32) int {
	hs := s.groups[group]
	for _, h := range hs {
		s.engines.Ptr(h).Fire(&s.Body, throttle)
	}
	return len(hs)
}

// UpdateMatrix damps and integrates the body, places the hull and carries
// the engines along.
func (s *Ship) UpdateMatrix(dt float32, parent mgl32.Mat4) mgl32.Mat4 {
	s.Body.ApplyDamping(s.Body.Damping)
	s.Body.UpdatePhysics(dt, &s.Position, &s.Rotation)
	s.matrix = s.Compose(parent)
	s.Hull.Update(s.matrix)
	for _, e := range s.engines.All() {
		e.UpdateMatrix(dt, s.matrix)
	}
	return s.matrix
}

func (s *Ship) ShaderMetadata() (string, bool) { return HullDescriptor, true }
func (s *Ship) Matrix() mgl32.Mat4             { return s.matrix }

func (s *Ship) Parts() iter.Seq[Part] {
	return func(yield func(Part) bool) {
		for _, e := range s.engines.All() {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Ship) AppendProbes(dst []Probe, node arena.Handle) []Probe {
	return append(dst, Probe{
		Node:  node,
		Part:  -1,
		Kind:  KindShip,
		Shape: s.Hull,
		Layer: Layers(LayerShip),
		Hits:  Layers(LayerAsteroid),
	})
}
