// Package game implements the aquarium app: scene switching, global keys and
// frame composition. The frame loop itself belongs to the backend (SDL
// window or terminal), which feeds Step and presents Draw.
package game

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/effects"
	"github.com/Faultbox/aquarium/internal/engine/debug"
	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/game/states"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/internal/tank"
)

// Audio is the sound output the game drives.
type Audio interface {
	states.Sounds
	SetMuted(muted bool)
	Muted() bool
}

// Options holds what the game needs from main.
type Options struct {
	Config *config.Config
	Store  storage.Store // App namespace: creatures and theme
	Shared storage.Store // Widget snapshot, may be nil
	Audio  Audio         // May be nil

	// PickImage opens a file picker; see states.NewTankState.
	PickImage func() ([]byte, error)

	// Screenshots receives F12 captures. Nil disables them.
	Screenshots *debug.ScreenshotCapture

	// Scale is frame pixels per canvas unit. The terminal renders at a
	// fraction of the window resolution. Zero means 1.
	Scale float32

	Rand *rand.Rand
	Now  func() time.Time
}

// Game is the main app instance.
type Game struct {
	log     *zap.Logger
	running bool

	manager *states.Manager
	tank    *states.TankState
	cursor  *states.CursorState

	audio Audio
	shots *debug.ScreenshotCapture

	scale  float32
	width  int // Frame size in pixels
	height int
	list   render.DrawList
	raster *render.Rasterizer
	frame  *image.RGBA
}

// New creates the app, loads the saved tank and enters the tank scene.
func New(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	t := tank.New(tank.Options{
		Tank:    cfg.Tank,
		Bubbles: cfg.Bubbles,
		Store:   opts.Store,
		Shared:  opts.Shared,
		Rand:    rng,
		Now:     opts.Now,
	})
	t.Load()

	w, h := float32(cfg.Window.Width), float32(cfg.Window.Height)
	cur := effects.NewCursor(effects.Options{
		Cursor: cfg.Cursor,
		TickHz: cfg.Tank.TickHz,
		Store:  opts.Store,
		Rand:   rng,
		Now:    opts.Now,
	}, w, h)

	var sounds states.Sounds
	if opts.Audio != nil {
		sounds = opts.Audio
	}

	g := &Game{
		log:     logger.Named("game"),
		running: true,
		manager: states.NewManager(),
		tank:    states.NewTankState(t, sounds, opts.PickImage),
		cursor:  states.NewCursorState(cur, sounds, cfg.Tank.TickHz),
		audio:   opts.Audio,
		shots:   opts.Screenshots,
		scale:   scale,
		raster:  &render.Rasterizer{Scale: scale},
	}
	g.Resize(int(w*scale), int(h*scale))
	g.manager.Change(g.tank)
	return g
}

// Running reports whether the app should keep going.
func (g *Game) Running() bool {
	return g.running
}

// Stop ends the app after the current frame.
func (g *Game) Stop() {
	g.running = false
}

// Tank returns the aquarium scene.
func (g *Game) Tank() *states.TankState {
	return g.tank
}

// Scene returns the active scene. Nil until the first Step.
func (g *Game) Scene() states.State {
	return g.manager.Current()
}

// Title returns a window title for the active scene.
func (g *Game) Title() string {
	if cur := g.manager.Current(); cur != nil {
		if cur == g.tank {
			return fmt.Sprintf("Aquarium · %s", g.tank.Tank().TimeOfDay())
		}
		return fmt.Sprintf("Aquarium · %s", cur.Name())
	}
	return "Aquarium"
}

// Resize sets the frame size in pixels.
func (g *Game) Resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.width, g.height = width, height
	g.manager.Resize(float32(width)/g.scale, float32(height)/g.scale)
	g.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// Step handles the frame's events and advances the active scene by dt.
func (g *Game) Step(q *input.Queue, dt time.Duration) error {
	for _, e := range q.Events() {
		if err := g.handle(e); err != nil {
			return err
		}
		if !g.running {
			return nil
		}
	}
	return g.manager.Update(dt)
}

func (g *Game) handle(e input.Event) error {
	switch e.Type {
	case input.EventQuit:
		g.running = false
		return nil
	case input.EventWindowResize:
		g.Resize(e.Width, e.Height)
		return nil
	case input.EventKeyDown:
		switch e.Key {
		case input.KeyEscape:
			g.log.Info("quit requested")
			g.running = false
			return nil
		case input.KeyTab:
			g.switchScene()
			return nil
		case input.KeyM:
			g.toggleMute()
			return nil
		case input.KeyF12:
			g.screenshot()
			return nil
		}
	case input.EventMouseMove, input.EventMouseDown, input.EventMouseUp:
		e.MouseX = int(float32(e.MouseX) / g.scale)
		e.MouseY = int(float32(e.MouseY) / g.scale)
	}
	return g.manager.HandleInput(e)
}

func (g *Game) switchScene() {
	var next states.State = g.cursor
	if g.manager.Current() == g.cursor {
		next = g.tank
	}
	g.manager.Change(next)
	g.log.Info("switching scene", zap.String("to", next.Name()))
}

func (g *Game) toggleMute() {
	if g.audio == nil {
		return
	}
	g.audio.SetMuted(!g.audio.Muted())
	g.log.Info("audio", zap.Bool("muted", g.audio.Muted()))
}

func (g *Game) screenshot() {
	if g.shots == nil || g.frame == nil {
		return
	}
	name, err := g.shots.CaptureFromImage(g.frame)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("file", name))
}

// Draw renders the active scene into the frame buffer and returns it. The
// image is reused by the next call.
func (g *Game) Draw() *image.RGBA {
	if g.frame == nil || g.frame.Rect.Dx() != g.width || g.frame.Rect.Dy() != g.height {
		g.frame = image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	}
	draw.Draw(g.frame, g.frame.Bounds(), image.Black, image.Point{}, draw.Src)

	g.list.Reset()
	g.manager.Render(&g.list)
	g.raster.Draw(g.frame, &g.list)
	return g.frame
}
