package states

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/effects"
	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/pkg/math"
)

var meowTones = []float64{880, 740, 587.33}

const maxCursorCatchUp = 5

// CursorState is the pointer playground: the follower chain, its trail, the
// particles and the cat.
type CursorState struct {
	cursor *effects.Cursor
	sounds Sounds
	log    *zap.Logger

	step time.Duration
	acc  time.Duration
	last math.Vec2 // Last pointer position, enter events carry none
}

// NewCursorState wraps c, ticking it at tickHz.
func NewCursorState(c *effects.Cursor, sounds Sounds, tickHz int) *CursorState {
	if tickHz <= 0 {
		tickHz = 60
	}
	return &CursorState{
		cursor: c,
		sounds: sounds,
		log:    logger.Named("scene.cursor"),
		step:   time.Second / time.Duration(tickHz),
	}
}

// Name implements State.
func (s *CursorState) Name() string { return "Cursor" }

// Enter implements State.
func (s *CursorState) Enter() error {
	s.log.Info("entering cursor playground", zap.String("theme", string(s.cursor.Theme())))
	return nil
}

// Exit clears the particles so they do not freeze mid-air while hidden.
func (s *CursorState) Exit() error {
	s.cursor.Particles().Clear()
	s.cursor.Trail().Clear()
	return nil
}

// Resize implements State.
func (s *CursorState) Resize(w, h float32) {
	s.cursor.Resize(w, h)
}

// Cursor returns the wrapped effects.
func (s *CursorState) Cursor() *effects.Cursor {
	return s.cursor
}

// Update runs the effects at their fixed rate.
func (s *CursorState) Update(dt time.Duration) error {
	s.acc += dt
	n := 0
	for s.acc >= s.step && n < maxCursorCatchUp {
		s.cursor.Tick()
		s.acc -= s.step
		n++
	}
	if n == maxCursorCatchUp {
		s.acc = 0
	}
	return nil
}

// Render implements State.
func (s *CursorState) Render(list *render.DrawList) {
	s.cursor.Render(list)
}

// HandleInput implements State.
func (s *CursorState) HandleInput(e input.Event) error {
	switch e.Type {
	case input.EventMouseMove:
		p := math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)}
		s.last = p
		if !s.cursor.Inside() {
			s.cursor.Enter(p)
		}
		s.cursor.Move(p)
	case input.EventMouseEnter:
		s.cursor.Enter(s.last)
	case input.EventMouseLeave:
		s.cursor.Leave()
	case input.EventMouseDown:
		s.cursor.Click()
		if s.sounds != nil {
			if err := s.sounds.Chirp(meowTones, 70*time.Millisecond); err != nil {
				s.log.Debug("meow failed", zap.Error(err))
			}
		}
	case input.EventKeyDown:
		if e.Key == input.KeyT {
			theme := s.cursor.ToggleTheme()
			s.log.Info("theme changed", zap.String("theme", string(theme)))
		}
	}
	return nil
}
