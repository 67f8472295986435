// Package states implements the scenes the aquarium app switches between.
package states

import (
	"time"

	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/render"
)

// State represents a scene (the tank, the cursor playground).
type State interface {
	// Name identifies the scene in logs and the window title.
	Name() string

	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Resize is called with the canvas size on entry and on every change.
	Resize(w, h float32)

	// Update is called every frame.
	Update(dt time.Duration) error

	// Render is called every frame to draw the state.
	Render(list *render.DrawList)

	// HandleInput processes input events.
	HandleInput(e input.Event) error
}

// Sounds plays the short effects scenes use for feedback.
type Sounds interface {
	Blip(freq float64, dur time.Duration) error
	Chirp(freqs []float64, each time.Duration) error
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
	w, h    float32
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change, applied on the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Resize forwards the canvas size to the current state and remembers it for
// the next one.
func (m *Manager) Resize(w, h float32) {
	m.w, m.h = w, h
	if m.current != nil {
		m.current.Resize(w, h)
	}
}

// HandleInput forwards an event to the current state.
func (m *Manager) HandleInput(e input.Event) error {
	if m.current == nil {
		return nil
	}
	return m.current.HandleInput(e)
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt time.Duration) error {
	// Handle state transition
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		m.current.Resize(m.w, m.h)
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	// Update current state
	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render(list *render.DrawList) {
	if m.current != nil {
		m.current.Render(list)
	}
}
