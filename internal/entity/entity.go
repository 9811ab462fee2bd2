// Package entity defines the closed set of things that live in the scene
// graph. Every variant knows how to advance itself by one tick and compose
// its world matrix, and may describe itself to the renderer.
package entity

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tags the concrete variant of an Entity.
type Kind uint8

const (
	KindBlank Kind = iota
	KindObject
	KindShip
	KindEngine
	KindGun
	KindBullet
	KindAsteroid
)

var kindNames = [...]string{"blank", "object", "ship", "engine", "gun", "bullet", "asteroid"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Entity is implemented only by the variants in this package.
type Entity interface {
	Kind() Kind
	// UpdateMatrix integrates the entity over dt, composes its world matrix
	// onto parent and returns it for the entity's children.
	UpdateMatrix(dt float32, parent mgl32.Mat4) mgl32.Mat4
	// ShaderMetadata is the static renderer descriptor, if the entity is
	// drawn.
	ShaderMetadata() (string, bool)

	isEntity()
}

// Part is a renderable piece owned by a composite entity rather than by the
// scene graph.
type Part interface {
	RenderID() uint32
	BindRenderID(id uint32)
	ShaderMetadata() (string, bool)
	Visible() bool
	Matrix() mgl32.Mat4
}

// Composite entities own renderable parts.
type Composite interface {
	Parts() iter.Seq[Part]
}

type renderSlot struct {
	id uint32
}

func (r *renderSlot) RenderID() uint32       { return r.id }
func (r *renderSlot) BindRenderID(id uint32) { r.id = id }

// Blank is the empty placeholder left in a slot while its entity is checked
// out.
type Blank struct{}

func (Blank) Kind() Kind                                           { return KindBlank }
func (Blank) UpdateMatrix(_ float32, parent mgl32.Mat4) mgl32.Mat4 { return parent }
func (Blank) ShaderMetadata() (string, bool)                       { return "", false }
func (Blank) isEntity()                                            {}
