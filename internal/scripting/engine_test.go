package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/voidrift/simcore/internal/entity"
	"github.com/voidrift/simcore/internal/frame"
)

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuiltInControlMatchesDefaults(t *testing.T) {
	e := newEngine(t, "")
	cases := []frame.Keys{
		0,
		frame.Keys(0).With(frame.KeyW),
		frame.Keys(0).With(frame.KeyA).With(frame.KeyS),
		frame.Keys(0).With(frame.KeyQ).With(frame.KeyE),
		frame.Keys(0).With(frame.KeySpace),
	}
	for _, keys := range cases {
		for _, ready := range []bool{true, false} {
			in := ControlInput{Keys: keys, GunReady: ready}
			got, want := e.Control(in), DefaultControls(in)
			if got.Shoot != want.Shoot {
				t.Errorf("keys %08b ready %v: shoot = %v, want %v", keys, ready, got.Shoot, want.Shoot)
			}
			if len(got.Throttle) != len(want.Throttle) {
				t.Errorf("keys %08b: throttle = %v, want %v", keys, got.Throttle, want.Throttle)
				continue
			}
			for g, v := range want.Throttle {
				if got.Throttle[g] != v {
					t.Errorf("keys %08b: throttle[%s] = %v, want %v", keys, g, got.Throttle[g], v)
				}
			}
		}
	}
}

func TestScriptOverridesAndClamps(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "boost.lua", `
function control(input)
    return { throttle = { forward = 3, backward = -1 }, shoot = true }
end
`)
	e := newEngine(t, dir)
	c := e.Control(ControlInput{})
	if c.Throttle[entity.GroupForward] != 1 || c.Throttle[entity.GroupBackward] != 0 {
		t.Errorf("throttle = %v, want forward clamped to 1 and backward to 0", c.Throttle)
	}
	if !c.Shoot {
		t.Errorf("shoot = false, want true")
	}
}

func TestAssistScriptCountersSpin(t *testing.T) {
	dir := t.TempDir()
	raw, err := os.ReadFile(filepath.Join("..", "..", "scripts", "assist.lua"))
	if err != nil {
		t.Fatal(err)
	}
	writeScript(t, dir, "assist.lua", string(raw))
	e := newEngine(t, dir)

	c := e.Control(ControlInput{Spin: 1})
	if c.Throttle[entity.GroupLeftTop] != 0.5 || c.Throttle[entity.GroupRightBottom] != 0.5 {
		t.Errorf("positive spin: throttle = %v, want yaw-right pair at 0.5", c.Throttle)
	}
	c = e.Control(ControlInput{Spin: 1, Keys: frame.Keys(0).With(frame.KeyA)})
	if c.Throttle[entity.GroupLeftTop] != 0 {
		t.Errorf("steering input should disable assist, got %v", c.Throttle)
	}
}

func TestControlFallsBackOnError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", `function control(input) error("boom") end`)
	e := newEngine(t, dir)
	c := e.Control(ControlInput{Keys: frame.Keys(0).With(frame.KeyW)})
	if c.Throttle[entity.GroupForward] != 1 {
		t.Errorf("fallback throttle = %v, want forward", c.Throttle)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", `function (`)
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Errorf("NewEngine() with a syntax error should fail")
	}
	if _, err := NewEngine(filepath.Join(dir, "missing"), zap.NewNop()); err != nil {
		t.Errorf("NewEngine() with a missing dir = %v, want nil", err)
	}
}

func TestOnCollision(t *testing.T) {
	e := newEngine(t, "")
	r, ok := e.OnCollision(entity.KindBullet, entity.KindAsteroid, 0.5)
	if !ok || !r.Destroy || r.Bounce != 0 {
		t.Errorf("bullet hit = %+v, %v", r, ok)
	}
	r, ok = e.OnCollision(entity.KindShip, entity.KindAsteroid, 1)
	if !ok || r.Destroy || r.Bounce != 50 {
		t.Errorf("ship hit = %+v, %v, want bounce 50", r, ok)
	}

	dir := t.TempDir()
	writeScript(t, dir, "none.lua", `on_collision = nil`)
	e = newEngine(t, dir)
	if _, ok := e.OnCollision(entity.KindShip, entity.KindAsteroid, 1); ok {
		t.Errorf("OnCollision() ok = true without a handler")
	}
}

func TestAssistHoldsThrustAfterCollision(t *testing.T) {
	dir := t.TempDir()
	raw, err := os.ReadFile(filepath.Join("..", "..", "scripts", "assist.lua"))
	if err != nil {
		t.Fatal(err)
	}
	writeScript(t, dir, "assist.lua", string(raw))
	e := newEngine(t, dir)

	w := frame.Keys(0).With(frame.KeyW)
	if c := e.Control(ControlInput{Keys: w}); c.Throttle[entity.GroupForward] != 1 {
		t.Errorf("throttle = %v, want forward", c.Throttle)
	}
	if c := e.Control(ControlInput{Keys: w, Collisions: 2}); c.Throttle[entity.GroupForward] != 0 {
		t.Errorf("throttle after a collision = %v, want forward held", c.Throttle)
	}
}
