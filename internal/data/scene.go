// Package data loads scene descriptions from YAML and builds them into a
// scene tree.
package data

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/core/arena"
	"github.com/voidrift/simcore/internal/entity"
	"github.com/voidrift/simcore/internal/physics"
	"github.com/voidrift/simcore/internal/scene"
)

//go:embed scenes/default.yaml
var defaultScene []byte

// Vec3 is a YAML triple.
type Vec3 [3]float32

func (v Vec3) Vec() mgl32.Vec3 { return mgl32.Vec3(v) }

type Scene struct {
	Ship      ShipSpec       `yaml:"ship"`
	Asteroids []AsteroidSpec `yaml:"asteroids"`
	Field     *FieldSpec     `yaml:"field,omitempty"`
}

type ShipSpec struct {
	Mass    float32      `yaml:"mass"`
	Damping float32      `yaml:"damping"`
	Scale   float32      `yaml:"scale"`
	Hull    []Vec3       `yaml:"hull"`
	Engines []EngineSpec `yaml:"engines"`
	Gun     *GunSpec     `yaml:"gun,omitempty"`
}

type EngineSpec struct {
	Name      string  `yaml:"name"`
	Group     string  `yaml:"group"`
	Position  Vec3    `yaml:"position"`
	Direction Vec3    `yaml:"direction"` // exhaust
	Thrust    float32 `yaml:"thrust"`    // kN
}

type GunSpec struct {
	Position     Vec3    `yaml:"position"`
	Direction    Vec3    `yaml:"direction"`
	Magazine     int     `yaml:"magazine"`
	ShootDelay   float32 `yaml:"shoot_delay"` // seconds
	Lifetime     float32 `yaml:"lifetime"`    // seconds
	ExitVelocity float32 `yaml:"exit_velocity"`
}

type AsteroidSpec struct {
	Position Vec3    `yaml:"position"`
	Rotation Vec3    `yaml:"rotation"`
	Scale    float32 `yaml:"scale"`
	Sides    int     `yaml:"sides"`
	Radius   float32 `yaml:"radius"`
	Mass     float32 `yaml:"mass"` // 0 keeps it fixed
	Spin     float32 `yaml:"spin"` // rad/s about y
}

// FieldSpec scatters asteroids in a ring around the origin.
type FieldSpec struct {
	Seed        uint64  `yaml:"seed"`
	Count       int     `yaml:"count"`
	InnerRadius float32 `yaml:"inner_radius"`
	OuterRadius float32 `yaml:"outer_radius"`
	MinScale    float32 `yaml:"min_scale"`
	MaxScale    float32 `yaml:"max_scale"`
	MinSides    int     `yaml:"min_sides"`
	MaxSides    int     `yaml:"max_sides"`
	MaxSpin     float32 `yaml:"max_spin"`
}

// Layout holds the handles of the nodes Build created.
type Layout struct {
	Ship      arena.Handle
	Gun       arena.Handle
	HasGun    bool
	Asteroids []arena.Handle
}

// Default returns the built-in scene.
func Default() (*Scene, error) {
	return ParseScene(defaultScene)
}

// LoadScene reads a scene file, falling back to the built-in scene when
// path is empty.
func LoadScene(path string) (*Scene, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	s, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

func ParseScene(raw []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) Validate() error {
	var errs []error
	if s.Ship.Mass <= 0 {
		errs = append(errs, errors.New("ship.mass must be positive"))
	}
	if len(s.Ship.Hull) < 3 {
		errs = append(errs, errors.New("ship.hull needs at least 3 vertices"))
	}
	if len(s.Ship.Engines) > entity.MaxEngines {
		errs = append(errs, fmt.Errorf("ship carries %d engines, max %d", len(s.Ship.Engines), entity.MaxEngines))
	}
	if g := s.Ship.Gun; g != nil && g.Magazine <= 0 {
		errs = append(errs, errors.New("ship.gun.magazine must be positive"))
	}
	for i, a := range s.Asteroids {
		if a.Sides < 3 {
			errs = append(errs, fmt.Errorf("asteroids[%d]: sides must be at least 3", i))
		}
	}
	if f := s.Field; f != nil {
		if f.Count < 0 {
			errs = append(errs, errors.New("field: count must not be negative"))
		}
		if f.MinSides < 3 || f.MaxSides < f.MinSides {
			errs = append(errs, errors.New("field: need 3 <= min_sides <= max_sides"))
		}
		if f.OuterRadius < f.InnerRadius || f.MaxScale < f.MinScale {
			errs = append(errs, errors.New("field: ranges are inverted"))
		}
	}
	return errors.Join(errs...)
}

// Generate expands the field into concrete asteroids. The same seed always
// yields the same asteroids.
func (f *FieldSpec) Generate() []AsteroidSpec {
	rng := rand.New(rand.NewPCG(f.Seed, f.Seed^0x9e3779b97f4a7c15))
	span := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }

	out := make([]AsteroidSpec, 0, f.Count)
	for range f.Count {
		angle := rng.Float64() * 2 * math.Pi
		dist := span(f.InnerRadius, f.OuterRadius)
		scale := span(f.MinScale, f.MaxScale)
		out = append(out, AsteroidSpec{
			Position: Vec3{dist * float32(math.Cos(angle)), 0, dist * float32(math.Sin(angle))},
			Rotation: Vec3{0, span(0, 2*math.Pi), 0},
			Scale:    scale,
			Sides:    f.MinSides + rng.IntN(f.MaxSides-f.MinSides+1),
			Radius:   1,
			Mass:     scale * scale,
			Spin:     span(-f.MaxSpin, f.MaxSpin),
		})
	}
	return out
}

// AllAsteroids returns the listed asteroids followed by the generated field.
func (s *Scene) AllAsteroids() []AsteroidSpec {
	out := append([]AsteroidSpec(nil), s.Asteroids...)
	if s.Field != nil {
		out = append(out, s.Field.Generate()...)
	}
	return out
}

func (s *ShipSpec) Build() *entity.Ship {
	hull := make([]mgl32.Vec3, len(s.Hull))
	for i, v := range s.Hull {
		hull[i] = v.Vec()
	}
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	ship := entity.NewShip(physics.New(s.Mass, s.Damping), scale, collision.NewPolygon(hull...))
	for _, e := range s.Engines {
		ship.AddEngine(entity.NewEngine(e.Name, e.Group, e.Position.Vec(), e.Direction.Vec(), e.Thrust))
	}
	return ship
}

func (g *GunSpec) Build() *entity.Gun {
	delay, life, exit := g.ShootDelay, g.Lifetime, g.ExitVelocity
	if delay == 0 {
		delay = entity.DefaultShootDelay
	}
	if life == 0 {
		life = entity.DefaultBulletLifetime
	}
	if exit == 0 {
		exit = entity.DefaultBulletExitVelocity
	}
	return entity.NewGun(g.Position.Vec(), g.Direction.Vec(), g.Magazine, delay, life, exit)
}

func (a *AsteroidSpec) Build() *entity.Asteroid {
	radius := a.Radius
	if radius == 0 {
		radius = 1
	}
	ast := entity.NewAsteroid(collision.Regular(a.Sides, radius))
	ast.Position = a.Position.Vec()
	ast.Rotation = a.Rotation.Vec()
	if a.Scale > 0 {
		ast.Scale = mgl32.Vec3{a.Scale, a.Scale, a.Scale}
	}
	if a.Mass > 0 {
		ast.Body = physics.New(a.Mass, 0)
		ast.Body.SetAngularVelocity(mgl32.Vec3{0, a.Spin, 0})
	}
	return ast
}

// Build places the ship, its gun and every asteroid under the tree root.
func (s *Scene) Build(tree *scene.Tree) Layout {
	root := tree.Root()
	var l Layout
	l.Ship = tree.AddEntity(root, s.Ship.Build())
	if s.Ship.Gun != nil {
		l.Gun = tree.AddEntity(l.Ship, s.Ship.Gun.Build())
		l.HasGun = true
	}
	for _, a := range s.AllAsteroids() {
		l.Asteroids = append(l.Asteroids, tree.AddEntity(root, a.Build()))
	}
	return l
}
