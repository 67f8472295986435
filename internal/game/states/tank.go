package states

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/internal/tank"
	"github.com/Faultbox/aquarium/pkg/math"
)

// Feedback tones.
var (
	bubbleTone  = 660.0
	bounceTones = []float64{523.25, 783.99}
	addTones    = []float64{392, 523.25, 659.25}
	removeTones = []float64{440, 330}
)

const (
	blipLength  = 60 * time.Millisecond
	chirpLength = 50 * time.Millisecond
)

// imageResult carries a picked image back to the frame loop.
type imageResult struct {
	data []byte
	err  error
}

// TankState is the aquarium scene.
type TankState struct {
	tank   *tank.Tank
	sounds Sounds
	log    *zap.Logger

	// PickImage asks the user for an image file. It runs on its own
	// goroutine; nil data means the user cancelled.
	pickImage func() ([]byte, error)
	picked    chan imageResult
	picking   bool

	hover math.Vec2
}

// NewTankState creates the aquarium scene around an already loaded tank.
// pickImage may be nil when no file picker is available.
func NewTankState(t *tank.Tank, sounds Sounds, pickImage func() ([]byte, error)) *TankState {
	return &TankState{
		tank:      t,
		sounds:    sounds,
		log:       logger.Named("scene.tank"),
		pickImage: pickImage,
		picked:    make(chan imageResult, 1),
	}
}

// Name implements State.
func (s *TankState) Name() string { return "Aquarium" }

// Enter implements State.
func (s *TankState) Enter() error {
	s.tank.RefreshTimeOfDay()
	s.log.Info("entering tank", zap.Int("creatures", len(s.tank.Creatures())))
	return nil
}

// Exit implements State.
func (s *TankState) Exit() error {
	return nil
}

// Resize implements State.
func (s *TankState) Resize(w, h float32) {
	s.tank.Resize(w, h)
}

// Tank returns the simulated tank.
func (s *TankState) Tank() *tank.Tank {
	return s.tank
}

// Update advances the simulation and adds any image the picker returned.
func (s *TankState) Update(dt time.Duration) error {
	select {
	case r := <-s.picked:
		s.picking = false
		s.addImage(r)
	default:
	}
	s.tank.Advance(dt)
	return nil
}

func (s *TankState) addImage(r imageResult) {
	if r.err != nil {
		s.log.Warn("image picker failed", zap.Error(r.err))
		return
	}
	if len(r.data) == 0 {
		return
	}
	id, err := s.tank.AddImageCreature(r.data)
	if err != nil {
		s.log.Warn("image rejected", zap.Error(err))
		return
	}
	s.log.Info("image creature added", zap.Stringer("id", id))
	s.chirp(addTones)
}

// Render implements State.
func (s *TankState) Render(list *render.DrawList) {
	s.tank.Render(list)
}

// HandleInput implements State.
func (s *TankState) HandleInput(e input.Event) error {
	switch e.Type {
	case input.EventMouseMove:
		s.hover = math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)}

	case input.EventMouseDown:
		p := math.Vec2{X: float32(e.MouseX), Y: float32(e.MouseY)}
		s.hover = p
		switch s.tank.Tap(p) {
		case tank.TapBubbles:
			s.blip(bubbleTone)
		case tank.TapBounce:
			s.chirp(bounceTones)
		}

	case input.EventKeyDown:
		switch e.Key {
		case input.KeyA:
			sp := s.tank.RandomSpecies()
			id := s.tank.AddCreature(sp)
			s.log.Info("creature added", zap.String("species", string(sp)), zap.Stringer("id", id))
			s.chirp(addTones)
		case input.KeyDelete:
			s.removeHovered()
		case input.KeyI:
			s.startPick()
		}
	}
	return nil
}

func (s *TankState) removeHovered() {
	id, ok := s.tank.HitTest(s.hover)
	if !ok {
		return
	}
	if err := s.tank.Remove(id); err != nil {
		s.log.Warn("remove failed", zap.Error(err))
		return
	}
	s.log.Info("creature removed", zap.Stringer("id", id))
	s.chirp(removeTones)
}

func (s *TankState) startPick() {
	if s.pickImage == nil || s.picking {
		return
	}
	s.picking = true
	pick := s.pickImage
	go func() {
		data, err := pick()
		s.picked <- imageResult{data: data, err: err}
	}()
}

func (s *TankState) blip(freq float64) {
	if s.sounds == nil {
		return
	}
	if err := s.sounds.Blip(freq, blipLength); err != nil {
		s.log.Debug("blip failed", zap.Error(err))
	}
}

func (s *TankState) chirp(freqs []float64) {
	if s.sounds == nil {
		return
	}
	if err := s.sounds.Chirp(freqs, chirpLength); err != nil {
		s.log.Debug("chirp failed", zap.Error(err))
	}
}
