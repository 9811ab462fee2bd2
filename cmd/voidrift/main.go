package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voidrift/simcore/internal/config"
	"github.com/voidrift/simcore/internal/crash"
	"github.com/voidrift/simcore/internal/data"
	"github.com/voidrift/simcore/internal/scene"
	"github.com/voidrift/simcore/internal/sim"
	"github.com/voidrift/simcore/internal/view"
)

const defaultConfig = "config/voidrift.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := defaultConfig
	if p := os.Getenv("VOIDRIFT_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "config file")
	scenePath := flag.String("scene", "", "scene file, overrides [scene] path")
	headless := flag.Bool("headless", false, "run without the terminal viewer")
	ticks := flag.Int("ticks", 0, "stop after this many ticks (0 = until interrupted)")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) && cfgPath == defaultConfig {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	if *headless {
		cfg.Viewer.Enabled = false
	}

	// 2. Logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	defer func() { crash.Handle(log, recover()) }()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q", *prof)
	}

	// 3. Scene
	sc, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	// 4. Renderer
	var (
		term *view.Terminal
		reg  scene.Registrar = scene.RegistrarFunc(func(uint32, string) {})
	)
	if cfg.Viewer.Enabled {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		term = view.NewTerminal(screen, cfg.Viewer.Zoom, view.DefaultHold, log.Named("view"))
		reg = term
	}

	// 5. Session
	sess, err := sim.NewSession(cfg, sc, reg, log)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.Close()

	if term != nil {
		if err := term.Start(); err != nil {
			return fmt.Errorf("start viewer: %w", err)
		}
		defer term.Stop()
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	if term == nil {
		runHeadless(sess, cfg.Simulation.TickRate, *ticks, shutdownCh)
	} else {
		runViewer(sess, term, cfg.Simulation.TickRate, *ticks, shutdownCh, log)
	}

	sum := sess.Digest()
	st := sess.Stats()
	log.Info("simulation stopped",
		zap.Int("ticks", sess.Ticks()),
		zap.Int("shots", st.Shots),
		zap.Int("bullet_hits", st.BulletHits),
		zap.Int("ship_hits", st.ShipHits),
		zap.String("digest", hex.EncodeToString(sum[:])),
	)
	return nil
}

// runHeadless steps as fast as possible with no input.
func runHeadless(sess *sim.Session, tick time.Duration, limit int, stop <-chan os.Signal) {
	dt := float32(tick.Seconds())
	for i := 0; limit == 0 || i < limit; i++ {
		select {
		case <-stop:
			return
		default:
		}
		sess.Step(float32(i)*dt, dt, 0)
	}
}

func runViewer(sess *sim.Session, term *view.Terminal, tick time.Duration, limit int, stop <-chan os.Signal, log *zap.Logger) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	dt := float32(tick.Seconds())
	for i := 0; limit == 0 || i < limit; i++ {
		select {
		case now := <-ticker.C:
			t := float32(i) * dt
			out := sess.Step(t, dt, term.Keys(now))
			ship := sess.Ship()
			term.Draw(out, view.HUD{
				T:     t,
				Ticks: sess.Ticks(),
				Speed: ship.Body.Velocity().Len(),
				Stats: sess.Stats(),
			})
		case <-term.Done():
			log.Info("viewer closed")
			return
		case sig := <-stop:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if cfg.File != "" {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
