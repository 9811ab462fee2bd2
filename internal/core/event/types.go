package event

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/entity"
)

// Collision reports one overlapping probe pair. Axis points from B toward A.
type Collision struct {
	A, B     entity.Probe
	Axis     mgl32.Vec3
	Depth    float32
	Contacts []collision.Contact
}

// Shot reports a bullet leaving a gun.
type Shot struct {
	Gun    arena.Handle
	Bullet int // ring index within the gun
	T      float32
}
