package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Physics    PhysicsConfig    `toml:"physics"`
	Camera     CameraConfig     `toml:"camera"`
	Scene      SceneConfig      `toml:"scene"`
	Scripts    ScriptsConfig    `toml:"scripts"`
	Viewer     ViewerConfig     `toml:"viewer"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate       time.Duration `toml:"tick_rate"`
	NodeCapacity   int           `toml:"node_capacity"`   // scene graph slots
	ChildCapacity  int           `toml:"child_capacity"`  // children per node
	BufferCapacity int           `toml:"buffer_capacity"` // floats per frame
	Digest         bool          `toml:"digest"`          // hash every frame at debug level
}

type PhysicsConfig struct {
	VelocityLimit        float32 `toml:"velocity_limit"`
	AngularVelocityLimit float32 `toml:"angular_velocity_limit"`
	CollisionBounce      float32 `toml:"collision_bounce"` // fallback when the script gives none
}

type CameraConfig struct {
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
	Fov      float32    `toml:"fov"` // degrees
	Aspect   float32    `toml:"aspect"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Follow   bool       `toml:"follow"` // keep the ship centred
}

type SceneConfig struct {
	Path string `toml:"path"` // empty: built-in scene
}

type ScriptsConfig struct {
	Dir string `toml:"dir"` // empty: built-in control script
}

type ViewerConfig struct {
	Enabled bool    `toml:"enabled"`
	Zoom    float32 `toml:"zoom"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty: stderr
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config { return defaults() }

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, errors.New("simulation.tick_rate must be positive"))
	}
	if c.Simulation.NodeCapacity <= 0 {
		errs = append(errs, errors.New("simulation.node_capacity must be positive"))
	}
	if c.Simulation.ChildCapacity <= 0 {
		errs = append(errs, errors.New("simulation.child_capacity must be positive"))
	}
	if c.Simulation.BufferCapacity < 1 {
		errs = append(errs, errors.New("simulation.buffer_capacity must hold the count slot"))
	}
	if c.Physics.VelocityLimit <= 0 || c.Physics.AngularVelocityLimit <= 0 {
		errs = append(errs, errors.New("physics velocity limits must be positive"))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, errors.New("camera needs 0 < near < far"))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:       16 * time.Millisecond,
			NodeCapacity:   256,
			ChildCapacity:  64,
			BufferCapacity: 8000,
		},
		Physics: PhysicsConfig{
			VelocityLimit:        200,
			AngularVelocityLimit: 5,
			CollisionBounce:      40,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 300, 0.1},
			Fov:      25,
			Aspect:   1,
			Near:     1,
			Far:      4000,
			Follow:   true,
		},
		Viewer: ViewerConfig{
			Zoom: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
