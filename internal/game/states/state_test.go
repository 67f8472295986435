package states

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/effects"
	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/internal/storage"
)

type recorder struct {
	name  string
	calls *[]string
	w, h  float32
}

func (r *recorder) Name() string        { return r.name }
func (r *recorder) Enter() error        { *r.calls = append(*r.calls, r.name+".enter"); return nil }
func (r *recorder) Exit() error         { *r.calls = append(*r.calls, r.name+".exit"); return nil }
func (r *recorder) Resize(w, h float32) { r.w, r.h = w, h }
func (r *recorder) Update(time.Duration) error {
	*r.calls = append(*r.calls, r.name+".update")
	return nil
}
func (r *recorder) Render(*render.DrawList)       {}
func (r *recorder) HandleInput(input.Event) error { return nil }

func TestManagerTransitions(t *testing.T) {
	var calls []string
	a := &recorder{name: "a", calls: &calls}
	b := &recorder{name: "b", calls: &calls}

	m := NewManager()
	m.Resize(100, 50)
	m.Change(a)
	if m.Current() != nil {
		t.Fatal("Change applied before Update")
	}
	if err := m.Update(0); err != nil {
		t.Fatal(err)
	}
	m.Change(b)
	if err := m.Update(0); err != nil {
		t.Fatal(err)
	}

	want := []string{"a.enter", "a.update", "a.exit", "b.enter", "b.update"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
	if b.w != 100 || b.h != 50 {
		t.Errorf("new state size %vx%v, want 100x50", b.w, b.h)
	}
}

func newCursorState(t *testing.T) (*CursorState, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	cfg := config.Default()
	c := effects.NewCursor(effects.Options{
		Cursor: cfg.Cursor,
		TickHz: 60,
		Store:  store,
		Rand:   rand.New(rand.NewSource(1)),
	}, 400, 300)
	return NewCursorState(c, nil, 60), store
}

func TestCursorStateTheme(t *testing.T) {
	s, store := newCursorState(t)
	before := s.Cursor().Theme()

	if err := s.HandleInput(input.Event{Type: input.EventKeyDown, Key: input.KeyT}); err != nil {
		t.Fatal(err)
	}
	if s.Cursor().Theme() == before {
		t.Fatal("T did not toggle the theme")
	}
	saved, err := effects.LoadTheme(store)
	if err != nil {
		t.Fatal(err)
	}
	if saved != s.Cursor().Theme() {
		t.Errorf("saved theme %q, want %q", saved, s.Cursor().Theme())
	}
}

func TestCursorStateLeaveAndEnter(t *testing.T) {
	s, _ := newCursorState(t)

	s.HandleInput(input.Event{Type: input.EventMouseMove, MouseX: 40, MouseY: 60})
	s.HandleInput(input.Event{Type: input.EventMouseLeave})
	if s.Cursor().Inside() {
		t.Fatal("still inside after leave")
	}
	s.HandleInput(input.Event{Type: input.EventMouseEnter})
	if !s.Cursor().Inside() {
		t.Fatal("not inside after enter")
	}
}

func TestCursorStateFixedRate(t *testing.T) {
	s, _ := newCursorState(t)
	s.HandleInput(input.Event{Type: input.EventMouseMove, MouseX: 300, MouseY: 200})

	start := s.Cursor().Chain().Tail()
	if err := s.Update(0); err != nil {
		t.Fatal(err)
	}
	if s.Cursor().Chain().Tail() != start {
		t.Error("chain moved without a full tick elapsing")
	}
	if err := s.Update(time.Second / 30); err != nil {
		t.Fatal(err)
	}
	if s.Cursor().Chain().Tail() == start {
		t.Error("chain did not move after two ticks")
	}
}
