package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/geom"
	"github.com/voidrift/simcore/internal/physics"
)

// Asteroid is an obstacle with a polygonal outline. A body with mass lets it
// drift and spin.
type Asteroid struct {
	geom.Transform
	Body physics.RigidBody
	Hull *collision.Polygon

	hits   int
	matrix mgl32.Mat4
}

func NewAsteroid(hull *collision.Polygon) *Asteroid {
	return &Asteroid{
		Transform: geom.NewTransform(),
		Hull:      hull,
		matrix:    mgl32.Ident4(),
	}
}

func (a *Asteroid) Kind() Kind { return KindAsteroid }
func (a *Asteroid) isEntity()  {}

// Hit records a strike and returns the running total.
func (a *Asteroid) Hit() int {
	a.hits++
	return a.hits
}

func (a *Asteroid) Hits() int { return a.hits }

func (a *Asteroid) UpdateMatrix(dt float32, parent mgl32.Mat4) mgl32.Mat4 {
	a.Body.UpdatePhysics(dt, &a.Position, &a.Rotation)
	a.matrix = a.Compose(parent)
	a.Hull.Update(a.matrix)
	return a.matrix
}

func (a *Asteroid) ShaderMetadata() (string, bool) { return CubeDescriptor, true }
func (a *Asteroid) Matrix() mgl32.Mat4             { return a.matrix }

func (a *Asteroid) AppendProbes(dst []Probe, node arena.Handle) []Probe {
	return append(dst, Probe{
		Node:  node,
		Part:  -1,
		Kind:  KindAsteroid,
		Shape: a.Hull,
		Layer: Layers(LayerAsteroid),
		Hits:  Layers(LayerShip, LayerBullet),
	})
}
