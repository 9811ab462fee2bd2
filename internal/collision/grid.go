package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CellSize is chosen so every pair that passes InRange sits in the same or
// an adjacent cell: |d| < CellSize whenever floor(|d|) <= BroadPhaseRange.
const CellSize = BroadPhaseRange + 1

type cellKey struct {
	cx int32
	cz int32
}

func toCellCoord(v float32) int32 {
	return int32(math.Floor(float64(v) / CellSize))
}

// Grid buckets shape ids by ground-plane cell. It is rebuilt every tick.
// Accessed only from the simulation goroutine, no locks.
type Grid struct {
	cells map[cellKey][]int
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[cellKey][]int)}
}

func (g *Grid) key(p mgl32.Vec3) cellKey {
	return cellKey{cx: toCellCoord(p[0]), cz: toCellCoord(p[2])}
}

// Reset empties every cell. Buckets filled since the previous Reset keep
// their storage; buckets that stayed empty are dropped, so the map only
// holds cells occupied in the last tick.
func (g *Grid) Reset() {
	for k, ids := range g.cells {
		if len(ids) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = ids[:0]
	}
}

// Add places id at position p.
func (g *Grid) Add(id int, p mgl32.Vec3) {
	k := g.key(p)
	g.cells[k] = append(g.cells[k], id)
}

// Nearby appends to dst the ids in the 3x3 block of cells around p.
// Caller does the exact range test.
func (g *Grid) Nearby(p mgl32.Vec3, dst []int) []int {
	k := g.key(p)
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			dst = append(dst, g.cells[cellKey{cx: k.cx + dx, cz: k.cz + dz}]...)
		}
	}
	return dst
}
