// Package view draws frame buffers on a character terminal and turns key
// presses into frame input.
package view

import (
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/voidrift/simcore/internal/crash"
	"github.com/voidrift/simcore/internal/frame"
	"github.com/voidrift/simcore/internal/game"
)

// DefaultHold is how long a key counts as held after its last repeat.
// Terminals report presses only, never releases.
const DefaultHold = 150 * time.Millisecond

const maxRadius = 8 // cells

type shape uint8

const (
	shapeNone shape = iota
	shapeQuad
	shapeCube
	shapeHull
)

var (
	styleHull = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleCube = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleQuad = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

var runeKeys = map[rune]frame.Key{
	'w': frame.KeyW,
	'a': frame.KeyA,
	's': frame.KeyS,
	'd': frame.KeyD,
	'q': frame.KeyQ,
	'e': frame.KeyE,
	' ': frame.KeySpace,
}

// HUD is the status line shown above the scene.
type HUD struct {
	T     float32
	Ticks int
	Speed float32
	Stats game.Stats
}

// Terminal is a scene.Registrar that renders finalized frame buffers.
type Terminal struct {
	screen  tcell.Screen
	zoom    float32
	hold    time.Duration
	shapes  map[uint32]shape
	printer *message.Printer
	log     *zap.Logger

	mu   sync.Mutex // guards held
	held [len(frame.AllKeys)]time.Time

	done     chan struct{}
	quitOnce sync.Once
	stopOnce sync.Once
}

func NewTerminal(screen tcell.Screen, zoom float32, hold time.Duration, log *zap.Logger) *Terminal {
	if zoom <= 0 {
		zoom = 1
	}
	return &Terminal{
		screen:  screen,
		zoom:    zoom,
		hold:    hold,
		shapes:  make(map[uint32]shape),
		printer: message.NewPrinter(language.English),
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start takes over the terminal and begins reading keys.
func (t *Terminal) Start() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	crash.OnCrash(t.screen.Fini)
	crash.Go(t.log, t.poll)
	return nil
}

// Stop hands the terminal back. Call it from the goroutine that draws.
func (t *Terminal) Stop() {
	t.stopOnce.Do(func() {
		t.quit()
		t.screen.Fini()
	})
}

// quit signals Done without touching the screen; the drawing goroutine
// owns Fini.
func (t *Terminal) quit() {
	t.quitOnce.Do(func() { close(t.done) })
}

// Done is closed when the user asks to quit.
func (t *Terminal) Done() <-chan struct{} { return t.done }

func (t *Terminal) poll() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if !t.handle(ev, time.Now()) {
			t.quit()
			return
		}
	}
}

// handle applies one event and reports whether to keep running.
func (t *Terminal) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			if k, ok := runeKeys[ev.Rune()]; ok {
				t.press(k, now)
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) press(k frame.Key, now time.Time) {
	t.mu.Lock()
	t.held[k] = now
	t.mu.Unlock()
}

// Keys is the set of keys pressed within the hold window before now.
func (t *Terminal) Keys(now time.Time) frame.Keys {
	t.mu.Lock()
	defer t.mu.Unlock()
	var keys frame.Keys
	for _, k := range frame.AllKeys {
		if at := t.held[k]; !at.IsZero() && now.Sub(at) <= t.hold {
			keys = keys.With(k)
		}
	}
	return keys
}

type descriptor struct {
	Attributes struct {
		Position string `json:"a_position"`
	} `json:"attributes"`
}

// Register records how to draw id.
func (t *Terminal) Register(id uint32, desc string) {
	var d descriptor
	if err := json.Unmarshal([]byte(desc), &d); err != nil {
		t.log.Warn("bad renderer descriptor", zap.Uint32("id", id), zap.Error(err))
		return
	}
	switch d.Attributes.Position {
	case "ship_vertices":
		t.shapes[id] = shapeHull
	case "cube_vertices":
		t.shapes[id] = shapeCube
	case "quad":
		t.shapes[id] = shapeQuad
	default:
		t.shapes[id] = shapeNone
	}
}

type mark struct {
	shape  shape
	x, y   int
	radius int
	glyph  rune
}

// Draw renders one finalized buffer.
func (t *Terminal) Draw(buf []float32, hud HUD) {
	w, h := t.screen.Size()
	t.screen.Clear()

	var marks []mark
	frame.Decode(buf, func(r frame.Record) {
		s := t.shapes[r.ID]
		if s == shapeNone {
			return
		}
		m, ok := r.Matrix()
		if !ok {
			return
		}
		x, y, ok := t.project(m, mgl32.Vec4{0, 0, 0, 1}, w, h)
		if !ok {
			return
		}
		mk := mark{shape: s, x: x, y: y}
		switch s {
		case shapeCube:
			if ex, ey, ok := t.project(m, mgl32.Vec4{1, 0, 0, 1}, w, h); ok {
				mk.radius = min(max(abs(ex-x), abs(ey-y)/2), maxRadius)
			}
		case shapeHull:
			mk.glyph = '^'
			if fx, fy, ok := t.project(m, mgl32.Vec4{0, 0, -1, 1}, w, h); ok {
				mk.glyph = heading(fx-x, fy-y)
			}
		}
		marks = append(marks, mk)
	})

	// asteroids under quads under the ship
	for _, layer := range []shape{shapeCube, shapeQuad, shapeHull} {
		for _, mk := range marks {
			if mk.shape == layer {
				t.drawMark(mk, w, h)
			}
		}
	}

	line := t.printer.Sprintf(" t %.1fs  tick %d  speed %.1f  shots %d  hits %d  bumps %d ",
		hud.T, hud.Ticks, hud.Speed, hud.Stats.Shots, hud.Stats.BulletHits, hud.Stats.ShipHits)
	for i, r := range []rune(line) {
		if i >= w {
			break
		}
		t.screen.SetContent(i, 0, r, nil, styleHUD)
	}
	t.screen.Show()
}

func (t *Terminal) drawMark(mk mark, w, h int) {
	set := func(x, y int, r rune, st tcell.Style) {
		if x >= 0 && x < w && y > 0 && y < h {
			t.screen.SetContent(x, y, r, nil, st)
		}
	}
	switch mk.shape {
	case shapeCube:
		rx, ry := mk.radius, mk.radius/2
		for dy := -ry; dy <= ry; dy++ {
			for dx := -rx; dx <= rx; dx++ {
				if rx > 0 && ry > 0 && dx*dx*ry*ry+dy*dy*rx*rx > rx*rx*ry*ry {
					continue
				}
				set(mk.x+dx, mk.y+dy, '#', styleCube)
			}
		}
		set(mk.x, mk.y, 'O', styleCube)
	case shapeQuad:
		set(mk.x, mk.y, '*', styleQuad)
	case shapeHull:
		set(mk.x, mk.y, mk.glyph, styleHull)
	}
}

// project maps a local point through the clip matrix to a screen cell.
// ok is false behind the camera or off screen.
func (t *Terminal) project(m mgl32.Mat4, p mgl32.Vec4, w, h int) (x, y int, ok bool) {
	c := m.Mul4x1(p)
	if c[3] <= 0 {
		return 0, 0, false
	}
	nx, ny := c[0]/c[3]*t.zoom, c[1]/c[3]*t.zoom
	x = int(math.Floor(float64((nx + 1) / 2 * float32(w))))
	y = int(math.Floor(float64((1 - ny) / 2 * float32(h))))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

func heading(dx, dy int) rune {
	if abs(dx) > abs(dy)*2 {
		if dx > 0 {
			return '>'
		}
		return '<'
	}
	if dy > 0 {
		return 'v'
	}
	return '^'
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
