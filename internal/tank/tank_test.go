package tank

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/render"
	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/pkg/math"
)

const eps = 1e-4

var testBounds = Bounds{W: 393, H: 700, Surface: 0.10, Floor: 0.85}

func near(a, b float32) bool {
	return math32.Abs(a-b) < eps
}

func sameAngle(a, b float32) bool {
	return math32.Abs(math.AngleDiff(a, b)) < eps
}

type fixture struct {
	tank   *Tank
	store  *storage.MemStore
	shared *storage.MemStore
	now    time.Time
}

func newFixture(t *testing.T, at time.Time) *fixture {
	t.Helper()
	f := &fixture{
		store:  storage.NewMemStore(),
		shared: storage.NewMemStore(),
		now:    at,
	}
	cfg := config.Default()
	f.tank = New(Options{
		Tank:    cfg.Tank,
		Bubbles: cfg.Bubbles,
		Store:   f.store,
		Shared:  f.shared,
		Rand:    rand.New(rand.NewSource(1)),
		Now:     func() time.Time { return f.now },
	})
	return f
}

func noon() time.Time {
	return time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
}

func TestWallHitMirrorsHeading(t *testing.T) {
	cfg := config.Default().Tank
	cfg.TurnChance = 0
	in := NewIntegrator(cfg, rand.New(rand.NewSource(1)))

	c := Creature{X: 0, Y: 350, Size: 60, Speed: 2, Angle: math.Pi}
	in.Step(&c, testBounds, 1.0/60)

	if !near(c.Angle, 0) {
		t.Errorf("Angle = %v, want 0", c.Angle)
	}
	if c.X != 30 {
		t.Errorf("X = %v, want 30", c.X)
	}
	if !c.Flipped {
		t.Error("Flipped = false, want true")
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float32
		angle  float32
		want   float32
		hitX   bool
		hitY   bool
		flipIs bool
	}{
		{"right wall", 500, 300, 0.3, math.Pi - 0.3, true, false, true},
		{"left wall", -5, 300, 2.5, math.Pi - 2.5, true, false, true},
		{"surface", 200, 10, 4.0, -4.0, false, true, false},
		{"floor", 200, 690, 1.2, -1.2, false, true, false},
		{"inside", 200, 300, 1.0, 1.0, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Creature{X: tt.x, Y: tt.y, Size: 50, Angle: tt.angle}
			hitX, hitY := testBounds.Reflect(&c, 0)

			if hitX != tt.hitX || hitY != tt.hitY {
				t.Fatalf("hits = (%v, %v), want (%v, %v)", hitX, hitY, tt.hitX, tt.hitY)
			}
			if !sameAngle(c.Angle, tt.want) {
				t.Errorf("Angle = %v, want %v (mod 2π)", c.Angle, tt.want)
			}
			if c.Flipped != tt.flipIs {
				t.Errorf("Flipped = %v, want %v", c.Flipped, tt.flipIs)
			}
		})
	}
}

func TestWobbleCanTriggerVerticalReflection(t *testing.T) {
	minY, _ := testBounds.Band(25)
	c := Creature{X: 200, Y: minY + 1, Size: 50, Angle: 4.5}

	_, hitY := testBounds.Reflect(&c, -3)
	if !hitY {
		t.Fatal("wobbled position above the band was not reflected")
	}
	if c.Y != minY+1 {
		t.Errorf("Y = %v, want unchanged %v", c.Y, minY+1)
	}
}

func TestPositionsStayInBounds(t *testing.T) {
	cfg := config.Default().Tank
	rng := rand.New(rand.NewSource(42))
	in := NewIntegrator(cfg, rng)

	creatures := make([]Creature, 20)
	for i := range creatures {
		creatures[i] = Creature{
			X:     randRange(rng, 0, testBounds.W),
			Y:     randRange(rng, 0, testBounds.H),
			Size:  randRange(rng, 40, 80),
			Speed: randRange(rng, 1, 6),
			Angle: rng.Float32() * math.TwoPi,
		}
	}

	for tick := 0; tick < 3000; tick++ {
		for i := range creatures {
			c := &creatures[i]
			in.Step(c, testBounds, 1.0/60)

			m := c.Margin()
			minY, maxY := testBounds.Band(m)
			if c.X < m || c.X > testBounds.W-m || c.Y < minY || c.Y > maxY {
				t.Fatalf("tick %d creature %d at (%v, %v) left the tank", tick, i, c.X, c.Y)
			}
		}
	}
}

func TestStepWithoutBoundsIsNoop(t *testing.T) {
	in := NewIntegrator(config.Default().Tank, rand.New(rand.NewSource(1)))
	c := Creature{X: 10, Y: 10, Size: 50, Speed: 3, Angle: 1}
	before := c

	in.Step(&c, Bounds{}, 1.0/60)

	if c.X != before.X || c.Y != before.Y || c.Angle != before.Angle || c.WobblePhase != 0 {
		t.Errorf("creature changed with empty bounds: %+v", c)
	}
}

func TestTickWithoutSizeIsNoop(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.SpawnBubbles(math.Vec2{X: 100, Y: 100})

	before := append([]Creature(nil), f.tank.Creatures()...)
	bubbles := append([]Bubble(nil), f.tank.Bubbles()...)
	f.tank.Tick()

	for i, c := range f.tank.Creatures() {
		if c.X != before[i].X || c.Y != before[i].Y {
			t.Errorf("creature %d moved before the tank had a size", i)
		}
	}
	for i, b := range f.tank.Bubbles() {
		if b != bubbles[i] {
			t.Errorf("bubble %d changed before the tank had a size", i)
		}
	}
}

func TestBubbleOpacityDecreasesUntilRemoved(t *testing.T) {
	cfg := config.Default().Bubbles
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		bs := []Bubble{newBubble(randRange(rng, 0, 393), randRange(rng, 0, 700), rng)}
		prev := bs[0].Opacity
		for ticks := 0; len(bs) > 0; ticks++ {
			if ticks > 10000 {
				t.Fatal("bubble never removed")
			}
			bs = UpdateBubbles(bs, cfg, 1.0/60)
			if len(bs) == 0 {
				break
			}
			if bs[0].Opacity > prev {
				t.Fatalf("opacity rose from %v to %v", prev, bs[0].Opacity)
			}
			if bs[0].Opacity <= 0 || bs[0].Y < offscreenY {
				t.Fatalf("expired bubble survived: %+v", bs[0])
			}
			prev = bs[0].Opacity
		}
	}
}

func TestNewBubbleRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		b := newBubble(0, 0, rng)
		if b.Size < 8 || b.Size > 24 || b.Opacity < 0.4 || b.Opacity > 0.8 || b.Speed < 1.5 || b.Speed > 4 {
			t.Fatalf("bubble out of range: %+v", b)
		}
	}
}

func TestSpawnBubbles(t *testing.T) {
	f := newFixture(t, noon())
	p := math.Vec2{X: 200, Y: 300}

	for i := 0; i < 20; i++ {
		before := len(f.tank.Bubbles())
		n := f.tank.SpawnBubbles(p)
		if n < 3 || n > 7 {
			t.Fatalf("burst of %d, want 3..7", n)
		}
		if got := len(f.tank.Bubbles()) - before; got != n {
			t.Fatalf("added %d bubbles, reported %d", got, n)
		}
	}
	for _, b := range f.tank.Bubbles() {
		if b.X < p.X-20 || b.X > p.X+20 || b.Y < p.Y-10 || b.Y > p.Y+10 {
			t.Fatalf("bubble %v outside burst area", b)
		}
	}
}

func TestEmptyStoreSeedsDefaults(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()

	got := f.tank.Creatures()
	if len(got) != len(DefaultSpecies) {
		t.Fatalf("loaded %d creatures, want %d", len(got), len(DefaultSpecies))
	}
	for i, c := range got {
		if c.Species != DefaultSpecies[i] {
			t.Errorf("creature %d species = %s, want %s", i, c.Species, DefaultSpecies[i])
		}
		if c.X < 60 || c.X > 300 || c.Y < 150 || c.Y > 500 || c.Size < 40 || c.Size > 70 || c.Speed < 1 || c.Speed > 3 {
			t.Errorf("creature %d out of default ranges: %+v", i, c)
		}
	}

	saved, err := LoadCreatures(f.store)
	if err != nil {
		t.Fatalf("defaults not persisted: %v", err)
	}
	if len(saved) != len(got) {
		t.Fatalf("persisted %d creatures, want %d", len(saved), len(got))
	}
	for i := range saved {
		if saved[i].ID != got[i].ID || saved[i].X != got[i].X || saved[i].Species != got[i].Species {
			t.Errorf("persisted creature %d = %+v, want %+v", i, saved[i], got[i])
		}
	}

	shared, err := LoadShared(f.shared)
	if err != nil {
		t.Fatalf("LoadShared: %v", err)
	}
	if len(shared) != len(got) || shared[0].ID != got[0].ID {
		t.Errorf("widget snapshot not written: %+v", shared)
	}
}

func TestMalformedStoreFallsBack(t *testing.T) {
	f := newFixture(t, noon())
	if err := f.store.Set(CreaturesKey, []byte("just a string")); err != nil {
		t.Fatal(err)
	}

	f.tank.Load()

	if len(f.tank.Creatures()) != len(DefaultSpecies) {
		t.Fatalf("got %d creatures, want defaults", len(f.tank.Creatures()))
	}
	if _, err := LoadCreatures(f.store); err != nil {
		t.Errorf("defaults did not replace malformed data: %v", err)
	}
}

func TestLoadSavedCreatures(t *testing.T) {
	f := newFixture(t, noon())
	saved := DefaultCreatures(rand.New(rand.NewSource(9)))[:2]
	if err := SaveCreatures(f.store, saved); err != nil {
		t.Fatal(err)
	}

	f.tank.Load()

	got := f.tank.Creatures()
	if len(got) != 2 || got[0].ID != saved[0].ID || got[1].ID != saved[1].ID {
		t.Fatalf("loaded %+v, want saved list", got)
	}
	shared, _ := LoadShared(f.shared)
	if len(shared) != 2 {
		t.Errorf("widget snapshot has %d creatures, want 2", len(shared))
	}
}

func TestAddAndRemovePersist(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.Resize(393, 700)

	id := f.tank.AddCreature(Turtle)
	saved, _ := LoadCreatures(f.store)
	if len(saved) != 6 || saved[5].ID != id || saved[5].Species != Turtle {
		t.Fatalf("add not persisted: %d creatures", len(saved))
	}
	c := saved[5]
	if c.X < 50 || c.X > 343 || c.Y < 140 || c.Y > 490 || c.Size < 40 || c.Size > 80 || c.Speed < 1 || c.Speed > 3.5 {
		t.Errorf("added creature out of range: %+v", c)
	}

	if err := f.tank.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	saved, _ = LoadCreatures(f.store)
	if len(saved) != 5 {
		t.Errorf("remove not persisted: %d creatures", len(saved))
	}
	shared, _ := LoadShared(f.shared)
	if len(shared) != 5 {
		t.Errorf("widget snapshot has %d creatures, want 5", len(shared))
	}

	if err := f.tank.Remove(id); !errors.Is(err, ErrUnknownCreature) {
		t.Errorf("second Remove error = %v, want ErrUnknownCreature", err)
	}
}

func TestTickDoesNotPersist(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.Resize(393, 700)
	before, _ := f.store.Get(CreaturesKey)

	for i := 0; i < 120; i++ {
		f.tank.Tick()
	}

	after, _ := f.store.Get(CreaturesKey)
	if !bytes.Equal(before, after) {
		t.Error("Tick wrote to the store")
	}
}

func TestBounce(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.Resize(393, 700)
	c := &f.tank.creatures[0]
	c.Speed = 2

	if err := f.tank.Bounce(c.ID); err != nil {
		t.Fatal(err)
	}
	if c.Speed != 3 || !c.Bouncing {
		t.Fatalf("after bounce speed=%v bouncing=%v, want 3 true", c.Speed, c.Bouncing)
	}

	for i := 0; i < 10; i++ {
		f.tank.Tick()
	}
	if c.Scale() <= 1 {
		t.Errorf("scale = %v while bouncing, want > 1", c.Scale())
	}
	for i := 0; i < 19; i++ {
		f.tank.Tick()
	}
	if c.Speed != 3 {
		t.Errorf("speed dropped early: %v", c.Speed)
	}

	for i := 0; i < 10; i++ {
		f.tank.Tick()
	}
	if c.Speed != 2 || c.Bouncing {
		t.Errorf("after bounce window speed=%v bouncing=%v, want 2 false", c.Speed, c.Bouncing)
	}

	if err := f.tank.Bounce(uuid.New()); !errors.Is(err, ErrUnknownCreature) {
		t.Errorf("Bounce(unknown) = %v, want ErrUnknownCreature", err)
	}
}

func TestBounceSpeedLimits(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.Resize(393, 700)
	c := &f.tank.creatures[0]
	c.Speed = 6

	f.tank.Bounce(c.ID)
	if c.Speed != 6 {
		t.Errorf("speed = %v, want capped at 6", c.Speed)
	}

	c.Speed = 1.5
	for i := 0; i < 60; i++ {
		f.tank.Tick()
	}
	if c.Speed != 1 {
		t.Errorf("speed = %v, want floored at 1", c.Speed)
	}
}

func TestTapHitsCreatureOrSpawnsBubbles(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.Resize(393, 700)
	c := &f.tank.creatures[0]
	c.X, c.Y, c.Size = 100, 300, 60

	if got := f.tank.Tap(math.Vec2{X: 105, Y: 302}); got != TapBounce {
		t.Errorf("tap on creature = %v, want TapBounce", got)
	}
	if got := f.tank.Tap(math.Vec2{X: 390, Y: 20}); got != TapBubbles {
		t.Errorf("tap on water = %v, want TapBubbles", got)
	}
}

func TestAddImageCreature(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.Resize(393, 700)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	id, err := f.tank.AddImageCreature(buf.Bytes())
	if err != nil {
		t.Fatalf("AddImageCreature: %v", err)
	}

	// Reload from the file store to check the image survives encoding
	dir := t.TempDir()
	fs, err := storage.OpenFileStore(dir, "standard")
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveCreatures(fs, f.tank.Creatures()); err != nil {
		t.Fatal(err)
	}
	list, err := LoadCreatures(fs)
	if err != nil {
		t.Fatal(err)
	}
	last := list[len(list)-1]
	if last.ID != id || last.Image() == nil {
		t.Fatalf("image creature did not round-trip: id=%v image=%v", last.ID, last.Image())
	}
	if b := last.Image().Bounds(); b.Dx() != 4 {
		t.Errorf("decoded width = %d, want 4", b.Dx())
	}

	if _, err := f.tank.AddImageCreature([]byte("not an image")); err == nil {
		t.Error("garbage image accepted")
	}
}

func TestTimeOfDayAt(t *testing.T) {
	tests := []struct {
		hour int
		want TimeOfDay
	}{
		{0, Night}, {4, Night}, {5, Dawn}, {6, Dawn}, {7, Morning}, {11, Morning},
		{12, Afternoon}, {16, Afternoon}, {17, Evening}, {19, Evening}, {20, Night}, {23, Night},
	}
	for _, tt := range tests {
		got := TimeOfDayAt(time.Date(2024, 1, 1, tt.hour, 15, 0, 0, time.UTC))
		if got != tt.want {
			t.Errorf("hour %d = %v, want %v", tt.hour, got, tt.want)
		}
	}
	if !Night.ShowStars() || !Evening.ShowStars() || Morning.ShowStars() {
		t.Error("stars shown in the wrong modes")
	}
}

func TestNextTransition(t *testing.T) {
	day := func(d, h, m int) time.Time {
		return time.Date(2024, 3, d, h, m, 0, 0, time.UTC)
	}
	tests := []struct {
		now, want time.Time
	}{
		{day(10, 4, 59), day(10, 5, 0)},
		{day(10, 5, 0), day(10, 7, 0)},
		{day(10, 13, 0), day(10, 17, 0)},
		{day(10, 20, 0), day(11, 5, 0)},
		{day(10, 23, 30), day(11, 5, 0)},
	}
	for _, tt := range tests {
		if got := NextTransition(tt.now); !got.Equal(tt.want) {
			t.Errorf("NextTransition(%v) = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestTimeCheckUpdatesMode(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 1, 16, 59, 30, 0, time.UTC))
	f.tank.Load()
	f.tank.Resize(393, 700)
	if f.tank.TimeOfDay() != Afternoon {
		t.Fatalf("mode = %v, want Afternoon", f.tank.TimeOfDay())
	}

	f.now = f.now.Add(40 * time.Second)
	f.tank.Tick()
	if f.tank.TimeOfDay() != Afternoon {
		t.Error("mode changed before the check interval")
	}

	f.now = f.now.Add(30 * time.Second)
	f.tank.Tick()
	if f.tank.TimeOfDay() != Evening {
		t.Errorf("mode = %v, want Evening", f.tank.TimeOfDay())
	}
}

func TestAdvance(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()
	f.tank.Resize(393, 700)

	if n := f.tank.Advance(10 * time.Millisecond); n != 0 {
		t.Errorf("Advance(10ms) ran %d ticks, want 0", n)
	}
	if n := f.tank.Advance(10 * time.Millisecond); n != 1 {
		t.Errorf("Advance(+10ms) ran %d ticks, want 1", n)
	}
	if n := f.tank.Advance(time.Second); n != maxCatchUp {
		t.Errorf("Advance(1s) ran %d ticks, want %d", n, maxCatchUp)
	}
}

func TestRender(t *testing.T) {
	f := newFixture(t, noon())
	f.tank.Load()

	var list render.DrawList
	f.tank.Render(&list)
	if list.Len() != 0 {
		t.Fatalf("rendered %d calls before the tank had a size", list.Len())
	}

	f.tank.Resize(393, 700)
	f.tank.SpawnBubbles(math.Vec2{X: 100, Y: 100})
	f.tank.Render(&list)
	day := list.Count(render.KindCircle)
	if list.Count(render.KindText) != 1 {
		t.Errorf("text calls = %d, want 1", list.Count(render.KindText))
	}

	f.tank.mode = Night
	list.Reset()
	f.tank.Render(&list)
	if night := list.Count(render.KindCircle); night != day+starCount {
		t.Errorf("night circles = %d, want %d", night, day+starCount)
	}

	img := render.NewRasterizer().Frame(393, 700, &list)
	if img.Bounds().Dx() != 393 {
		t.Fatal("unexpected frame size")
	}
}

func TestNarrowCanvasHoldsCreatureCentred(t *testing.T) {
	narrow := Bounds{W: 50, H: 700, Surface: 0.10, Floor: 0.85}
	c := Creature{X: 10, Y: 300, Size: 80, Speed: 2, Angle: 0.3}

	for i := 0; i < 10; i++ {
		c.X += 5
		hitX, _ := narrow.Reflect(&c, 0)
		if hitX {
			t.Fatalf("tick %d: reported a wall hit on a canvas narrower than the creature", i)
		}
		if c.X != 25 {
			t.Fatalf("tick %d: X = %v, want centred 25", i, c.X)
		}
	}
	if c.Flipped {
		t.Error("creature flipped on a narrow canvas")
	}
	if c.Angle != 0.3 {
		t.Errorf("Angle = %v, want unchanged 0.3", c.Angle)
	}
}
