package system

import (
	"go.uber.org/zap"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/core/event"
	coresys "github.com/voidrift/simcore/internal/core/system"
	"github.com/voidrift/simcore/internal/entity"
	"github.com/voidrift/simcore/internal/frame"
	"github.com/voidrift/simcore/internal/scene"
)

// CollisionSystem gathers every probe after the scene update, buckets them
// on the broad-phase grid and emits a Collision event for each overlapping
// pair whose layers interact. Bounding boxes reject most pairs before the
// separating-axis test. Phase 3 (PostUpdate).
type CollisionSystem struct {
	tree   *scene.Tree
	bus    *event.Bus
	grid   *collision.Grid
	probes []entity.Probe
	bounds []collision.AABB
	nearby []int
	log    *zap.Logger
}

func NewCollisionSystem(tree *scene.Tree, bus *event.Bus, log *zap.Logger) *CollisionSystem {
	return &CollisionSystem{
		tree: tree,
		bus:  bus,
		grid: collision.NewGrid(),
		log:  log,
	}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CollisionSystem) Update(_ *frame.Frame) {
	s.probes = s.probes[:0]
	s.tree.Walk(func(h arena.Handle, e entity.Entity) {
		if c, ok := e.(entity.Collidable); ok {
			s.probes = c.AppendProbes(s.probes, h)
		}
	})

	s.grid.Reset()
	s.bounds = s.bounds[:0]
	for i := range s.probes {
		s.grid.Add(i, s.probes[i].Shape.Center())
		s.bounds = append(s.bounds, collision.Bounds(s.probes[i].Shape))
	}

	for i := range s.probes {
		a := &s.probes[i]
		s.nearby = s.grid.Nearby(a.Shape.Center(), s.nearby[:0])
		for _, j := range s.nearby {
			if j <= i {
				continue
			}
			b := &s.probes[j]
			if a.Node == b.Node || !a.Interacts(b) || !s.bounds[i].Overlaps(&s.bounds[j]) {
				continue
			}
			axis, depth, ok := collision.Penetration(a.Shape, b.Shape)
			if !ok {
				continue
			}
			ev := event.Collision{A: *a, B: *b, Axis: axis, Depth: depth}
			pa, okA := a.Shape.(collision.Polygonal)
			pb, okB := b.Shape.(collision.Polygonal)
			if okA && okB {
				ev.Contacts = collision.Manifold(pa, pb, axis.Mul(-1))
			}
			event.Emit(s.bus, ev)
			s.log.Debug("collision",
				zap.Stringer("a", a.Kind),
				zap.Stringer("b", b.Kind),
				zap.Float32("depth", depth),
			)
		}
	}
}
