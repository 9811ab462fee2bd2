package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/geom"
	"github.com/voidrift/simcore/internal/physics"
)

// Object is a plain transform with an optional body. A zero-mass body leaves
// it where it is placed.
type Object struct {
	geom.Transform
	Body physics.RigidBody
	Meta string

	matrix mgl32.Mat4
}

// NewObject returns a static object. An empty meta makes it invisible.
func NewObject(meta string) *Object {
	return &Object{
		Transform: geom.NewTransform(),
		Meta:      meta,
		matrix:    mgl32.Ident4(),
	}
}

func (o *Object) Kind() Kind { return KindObject }
func (o *Object) isEntity()  {}

func (o *Object) UpdateMatrix(dt float32, parent mgl32.Mat4) mgl32.Mat4 {
	o.Body.UpdatePhysics(dt, &o.Position, &o.Rotation)
	o.matrix = o.Compose(parent)
	return o.matrix
}

func (o *Object) ShaderMetadata() (string, bool) {
	return o.Meta, o.Meta != ""
}

// Matrix is the world matrix from the last update.
func (o *Object) Matrix() mgl32.Mat4 { return o.matrix }
