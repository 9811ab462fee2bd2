package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voidrift/simcore/internal/collision"
	"github.com/voidrift/simcore/internal/physics"
)

const dt = float32(1.0 / 60.0)

func TestEngineFirePushesAgainstExhaust(t *testing.T) {
	e := NewEngine("main", GroupForward, mgl32.Vec3{0, 0, 6}, mgl32.Vec3{0, 0, 2}, 1.5)
	e.UpdateMatrix(dt, mgl32.Ident4())

	body := physics.New(100, 0)
	e.Fire(&body, 0.5)

	want := mgl32.Vec3{0, 0, -750}
	if got := body.Force(); !got.ApproxEqualThreshold(want, 1e-3) {
		t.Errorf("force = %v, want %v", got, want)
	}
	if got := body.Torque(); got.Len() > 1e-3 {
		t.Errorf("torque = %v, want zero for an inline engine", got)
	}
	if !e.Firing() {
		t.Errorf("Firing() = false after Fire")
	}
	e.UpdateMatrix(dt, mgl32.Ident4())
	if e.Firing() {
		t.Errorf("Firing() = true after the plume was drawn")
	}
}

func TestEngineFollowsMount(t *testing.T) {
	e := NewEngine("side", GroupLeftTop, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}, 1)
	e.UpdateMatrix(dt, mgl32.Translate3D(10, 0, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))))

	if got := e.ExhaustDirection(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("ExhaustDirection() = %v, want (0, 0, -1)", got)
	}
	if got := e.LeverArm(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("LeverArm() = %v, want (0, 0, -1)", got)
	}
}

func TestDefaultShipControls(t *testing.T) {
	tests := []struct {
		name      string
		groups    []string
		wantForce func(mgl32.Vec3) bool
		wantYaw   func(float32) bool
	}{
		{
			name:      "forward",
			groups:    []string{GroupForward},
			wantForce: func(f mgl32.Vec3) bool { return f[2] < 0 && mgl32.Abs(f[0]) < 1e-3 },
			wantYaw:   func(y float32) bool { return mgl32.Abs(y) < 1e-2 },
		},
		{
			name:      "backward",
			groups:    []string{GroupBackward},
			wantForce: func(f mgl32.Vec3) bool { return f[2] > 0 },
			wantYaw:   func(y float32) bool { return mgl32.Abs(y) < 1e-2 },
		},
		{
			name:      "yaw left",
			groups:    []string{GroupLeftBottom, GroupRightTop},
			wantForce: func(f mgl32.Vec3) bool { return f.Len() < 1e-2 },
			wantYaw:   func(y float32) bool { return y > 0 },
		},
		{
			name:      "yaw right",
			groups:    []string{GroupLeftTop, GroupRightBottom},
			wantForce: func(f mgl32.Vec3) bool { return f.Len() < 1e-2 },
			wantYaw:   func(y float32) bool { return y < 0 },
		},
		{
			name:      "strafe left",
			groups:    []string{GroupRightTop, GroupRightBottom},
			wantForce: func(f mgl32.Vec3) bool { return f[0] < 0 },
			wantYaw:   func(y float32) bool { return mgl32.Abs(y) < 1e-2 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultShip()
			s.UpdateMatrix(dt, mgl32.Ident4())
			for _, g := range tt.groups {
				if n := s.Fire(g, 1); n == 0 {
					t.Fatalf("Fire(%q) fired no engines", g)
				}
			}
			if f := s.Body.Force(); !tt.wantForce(f) {
				t.Errorf("force = %v", f)
			}
			if y := s.Body.Torque()[1]; !tt.wantYaw(y) {
				t.Errorf("yaw torque = %v", y)
			}
		})
	}
}

func TestShipMovesForward(t *testing.T) {
	s := DefaultShip()
	for i := 0; i < 60; i++ {
		s.UpdateMatrix(dt, mgl32.Ident4())
		s.Fire(GroupForward, 1)
	}
	if s.Position[2] >= 0 {
		t.Errorf("position z = %v after a second of thrust, want negative", s.Position[2])
	}
	if c := s.Hull.Center(); !c.ApproxEqualThreshold(s.Position, 1e-3) {
		t.Errorf("hull center = %v, want %v", c, s.Position)
	}
}

func TestGunShoot(t *testing.T) {
	g := NewGun(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, -1}, 3, 0.5, 1, DefaultBulletExitVelocity)
	g.UpdateMatrix(dt, mgl32.Ident4())
	body := physics.New(100, 0)

	if !g.Shoot(dt, mgl32.Vec3{}, &body) {
		t.Fatalf("Shoot() = false on a ready gun")
	}
	if g.Shoot(dt, mgl32.Vec3{}, &body) {
		t.Errorf("Shoot() = true during the shoot delay")
	}
	if f := body.Force(); f[2] <= 0 {
		t.Errorf("recoil = %v, want pushing +z", f)
	}

	live := 0
	for i := 0; i < g.Magazine(); i++ {
		if g.Bullet(i).Live() {
			live++
			if p := g.Bullet(i).Position; !p.ApproxEqualThreshold(mgl32.Vec3{0, 0, -6}, 1e-5) {
				t.Errorf("bullet spawned at %v, want muzzle (0, 0, -6)", p)
			}
		}
	}
	if live != 1 {
		t.Errorf("live bullets = %d, want 1", live)
	}

	for i := 0; i < 40; i++ {
		g.UpdateMatrix(dt, mgl32.Ident4())
	}
	if !g.Ready() {
		t.Errorf("Ready() = false after the shoot delay")
	}
}

func TestGunHoldsFireOnZeroDt(t *testing.T) {
	g := NewGun(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, -1}, 3, 0.5, 1, DefaultBulletExitVelocity)
	g.UpdateMatrix(dt, mgl32.Ident4())
	body := physics.New(100, 0)

	for _, step := range []float32{0, -dt} {
		if g.Shoot(step, mgl32.Vec3{}, &body) {
			t.Errorf("Shoot(dt=%v) = true, want false", step)
		}
	}
	if f := body.Force(); f != (mgl32.Vec3{}) {
		t.Errorf("recoil = %v after refused shots, want zero", f)
	}
	if g.Current() != 0 || !g.Ready() {
		t.Errorf("ring index = %d ready = %v, want 0 and true", g.Current(), g.Ready())
	}
	for i := 0; i < g.Magazine(); i++ {
		if g.Bullet(i).Live() {
			t.Errorf("bullet %d live after refused shots", i)
		}
	}

	if !g.Shoot(dt, mgl32.Vec3{}, &body) {
		t.Fatalf("Shoot() = false on the next real frame")
	}
	f := body.Force()
	for i := 0; i < 3; i++ {
		if math.IsInf(float64(f[i]), 0) || math.IsNaN(float64(f[i])) {
			t.Fatalf("recoil = %v, want finite", f)
		}
	}
}

func TestGunRingWraps(t *testing.T) {
	g := NewGun(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 2, 0, 10, DefaultBulletExitVelocity)
	body := physics.New(100, 0)
	for i := 0; i < 5; i++ {
		if !g.Shoot(dt, mgl32.Vec3{}, &body) {
			t.Fatalf("shot %d refused", i)
		}
	}
	if !g.Bullet(0).Live() || !g.Bullet(1).Live() {
		t.Errorf("expected both ring slots live after wrapping")
	}
}

func TestBulletExpires(t *testing.T) {
	b := NewBullet(0.1, DefaultBulletExitVelocity)
	parent := physics.New(100, 0)
	parent.SetVelocity(mgl32.Vec3{5, 0, 0})
	b.Fire(dt, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, &parent)
	if b.Body.Velocity() != parent.Velocity() {
		t.Errorf("bullet velocity = %v, want inherited %v", b.Body.Velocity(), parent.Velocity())
	}

	b.UpdateMatrix(dt, mgl32.Ident4())
	if !b.Live() || b.Body.Velocity()[2] >= 0 {
		t.Fatalf("bullet live=%v moving %v after one tick", b.Live(), b.Body.Velocity())
	}
	if b.Body.Velocity().Len() > BulletVelocityLimit*(1+1e-5) {
		t.Errorf("bullet speed %v above limit", b.Body.Velocity().Len())
	}
	for i := 0; i < 10; i++ {
		b.UpdateMatrix(dt, mgl32.Ident4())
	}
	if b.Live() {
		t.Errorf("bullet still live after %v seconds", b.Age())
	}
	if n := len(b.AppendProbes(nil, 0)); n != 0 {
		t.Errorf("dead bullet reported %d probes", n)
	}
}

func TestProbeLayers(t *testing.T) {
	s := DefaultShip()
	a := NewAsteroid(collision.Regular(6, 4))
	g := NewGun(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 1, 0, 1, DefaultBulletExitVelocity)
	body := physics.New(1, 0)
	g.Shoot(dt, mgl32.Vec3{}, &body)

	ship := s.AppendProbes(nil, 1)[0]
	rock := a.AppendProbes(nil, 2)[0]
	bullets := g.AppendProbes(nil, 3)
	if len(bullets) != 1 {
		t.Fatalf("gun probes = %d, want 1", len(bullets))
	}
	shot := bullets[0]

	if !ship.Interacts(&rock) || !rock.Interacts(&ship) {
		t.Errorf("ship and asteroid should interact")
	}
	if !shot.Interacts(&rock) {
		t.Errorf("bullet and asteroid should interact")
	}
	if shot.Interacts(&ship) {
		t.Errorf("bullet and ship should not interact")
	}
	if shot.Part != 0 || shot.Node != 3 {
		t.Errorf("bullet probe = node %d part %d, want node 3 part 0", shot.Node, shot.Part)
	}
}

func TestBlank(t *testing.T) {
	var e Entity = Blank{}
	m := mgl32.Translate3D(1, 2, 3)
	if got := e.UpdateMatrix(dt, m); got != m {
		t.Errorf("UpdateMatrix() = %v, want parent", got)
	}
	if _, ok := e.ShaderMetadata(); ok {
		t.Errorf("Blank has shader metadata")
	}
}
