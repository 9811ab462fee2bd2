package entity

import (
	"github.com/TheBitDrifter/mask"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/core/arena"
)

// Collision layer bits.
const (
	LayerShip uint32 = iota
	LayerAsteroid
	LayerBullet
)

// Layers builds a mask from layer bits.
func Layers(bits ...uint32) mask.Mask {
	var m mask.Mask
	for _, b := range bits {
		m.Mark(b)
	}
	return m
}

// Probe is one shape an entity exposes to collision detection this tick.
type Probe struct {
	Node  arena.Handle
	Part  int // -1 for the entity itself, else the index of an owned part
	Kind  Kind
	Shape collision.Collider
	Layer mask.Mask
	Hits  mask.Mask
}

// Interacts reports whether either probe wants to hit the other.
func (p *Probe) Interacts(o *Probe) bool {
	return p.Hits.ContainsAny(o.Layer) || o.Hits.ContainsAny(p.Layer)
}

// Collidable entities report their shapes for the current tick.
type Collidable interface {
	AppendProbes(dst []Probe, node arena.Handle) []Probe
}
