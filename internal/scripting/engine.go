package scripting

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/voidrift/simcore/internal/entity"
	"github.com/voidrift/simcore/internal/frame"
)

//go:embed lua/control.lua
var defaultScript string

// Engine wraps a single gopher-lua VM for ship control and collision
// response. Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine loads the built-in script, then every .lua file in dir in name
// order. Later files may redefine or wrap earlier globals.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := vm.DoString(defaultScript); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load built-in script: %w", err)
	}
	if dir != "" {
		if err := e.loadDir(dir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// ControlInput is what a control script sees each tick.
type ControlInput struct {
	Keys       frame.Keys
	Velocity   mgl32.Vec3
	Spin       float32 // angular velocity about y
	GunReady   bool
	Collisions int // contacts resolved at the start of this tick
}

// Controls maps engine groups to throttle and says whether to shoot.
type Controls struct {
	Throttle map[string]float32
	Shoot    bool
}

var keyGroups = map[frame.Key][]string{
	frame.KeyW: {entity.GroupForward},
	frame.KeyS: {entity.GroupBackward},
	frame.KeyA: {entity.GroupLeftBottom, entity.GroupRightTop},
	frame.KeyD: {entity.GroupLeftTop, entity.GroupRightBottom},
	frame.KeyQ: {entity.GroupRightTop, entity.GroupRightBottom},
	frame.KeyE: {entity.GroupLeftTop, entity.GroupLeftBottom},
}

// DefaultControls is the fixed key binding used when the script fails.
func DefaultControls(in ControlInput) Controls {
	c := Controls{Throttle: make(map[string]float32)}
	for _, k := range frame.AllKeys {
		if !in.Keys.Pressed(k) {
			continue
		}
		for _, g := range keyGroups[k] {
			c.Throttle[g] = 1
		}
	}
	c.Shoot = in.Keys.Pressed(frame.KeySpace) && in.GunReady
	return c
}

// Control calls the Lua control function.
func (e *Engine) Control(in ControlInput) Controls {
	fn := e.vm.GetGlobal("control")
	if fn == lua.LNil {
		e.log.Error("lua function control not found")
		return DefaultControls(in)
	}

	t := e.vm.NewTable()
	keys := e.vm.NewTable()
	for _, k := range frame.AllKeys {
		keys.RawSetString(k.String(), lua.LBool(in.Keys.Pressed(k)))
	}
	t.RawSetString("keys", keys)
	vel := e.vm.NewTable()
	vel.RawSetString("x", lua.LNumber(in.Velocity[0]))
	vel.RawSetString("y", lua.LNumber(in.Velocity[1]))
	vel.RawSetString("z", lua.LNumber(in.Velocity[2]))
	t.RawSetString("velocity", vel)
	t.RawSetString("spin", lua.LNumber(in.Spin))
	t.RawSetString("gun_ready", lua.LBool(in.GunReady))
	t.RawSetString("collisions", lua.LNumber(in.Collisions))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua control error", zap.Error(err))
		return DefaultControls(in)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua control returned non-table")
		return DefaultControls(in)
	}

	c := Controls{Throttle: make(map[string]float32), Shoot: lua.LVAsBool(rt.RawGetString("shoot"))}
	if th, ok := rt.RawGetString("throttle").(*lua.LTable); ok {
		th.ForEach(func(k, v lua.LValue) {
			name, ok := k.(lua.LString)
			if !ok {
				return
			}
			c.Throttle[string(name)] = mgl32.Clamp(float32(lua.LVAsNumber(v)), 0, 1)
		})
	}
	return c
}

// CollisionResult is the script's verdict on a contact.
type CollisionResult struct {
	Bounce  float32
	Destroy bool
}

// OnCollision calls the Lua on_collision function. ok is false when no
// script answer is available and the caller should use its own defaults.
func (e *Engine) OnCollision(a, b entity.Kind, depth float32) (CollisionResult, bool) {
	fn := e.vm.GetGlobal("on_collision")
	if fn == lua.LNil {
		return CollisionResult{}, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(a.String()), lua.LString(b.String()), lua.LNumber(depth)); err != nil {
		e.log.Error("lua on_collision error", zap.Error(err))
		return CollisionResult{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua on_collision returned non-table")
		return CollisionResult{}, false
	}
	return CollisionResult{
		Bounce:  float32(lua.LVAsNumber(rt.RawGetString("bounce"))),
		Destroy: lua.LVAsBool(rt.RawGetString("destroy")),
	}, true
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
