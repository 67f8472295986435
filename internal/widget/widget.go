// Package widget builds the home-screen snapshot of the tank: a timeline of
// still frames with the saved creatures scattered at random, rendered at the
// standard widget sizes.
package widget

import (
	"bytes"
	"image"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/internal/tank"
)

// Timeline shape.
const (
	MaxCreatures  = 8
	FutureEntries = 8
	EntryInterval = 15 * time.Minute
	SizeFactor    = 0.6
)

// Creature is one creature placed inside a widget frame. Positions are
// ratios of the frame size.
type Creature struct {
	Species tank.Species
	Image   image.Image
	Size    float32
	XRatio  float32
	YRatio  float32
	Flipped bool
}

// Entry is one frame of the timeline.
type Entry struct {
	Date      time.Time
	Mode      tank.TimeOfDay
	Creatures []Creature
}

// Timeline is a run of entries plus the time the host should ask again.
type Timeline struct {
	Entries   []Entry
	RefreshAt time.Time
}

// Provider reads the shared snapshot written by the app.
type Provider struct {
	shared storage.Store
	rng    *rand.Rand
	log    *zap.Logger
}

// NewProvider creates a provider over the shared store. A nil rng uses a
// time-seeded source.
func NewProvider(shared storage.Store, rng *rand.Rand) *Provider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Provider{shared: shared, rng: rng, log: logger.Named("widget")}
}

// Entry builds a frame for date, placing up to MaxCreatures saved creatures
// at random spots. Missing or unreadable data shows the default set.
func (p *Provider) Entry(date time.Time) Entry {
	return p.place(date, p.residents())
}

// Timeline returns an entry for now and FutureEntries more, one every
// EntryInterval, refreshing at the next time-of-day boundary. The snapshot
// is read once and shared by every entry.
func (p *Provider) Timeline(now time.Time) Timeline {
	residents := p.residents()
	entries := make([]Entry, 0, FutureEntries+1)
	for i := 0; i <= FutureEntries; i++ {
		entries = append(entries, p.place(now.Add(time.Duration(i)*EntryInterval), residents))
	}
	return Timeline{Entries: entries, RefreshAt: tank.NextTransition(now)}
}

// residents loads the snapshot and decodes its images, capped at
// MaxCreatures. Positions are left for place.
func (p *Provider) residents() []Creature {
	saved := p.load()
	if len(saved) > MaxCreatures {
		saved = saved[:MaxCreatures]
	}
	out := make([]Creature, 0, len(saved))
	for _, sc := range saved {
		out = append(out, Creature{
			Species: sc.Species,
			Image:   decode(sc.ImageData),
			Size:    sc.Size * SizeFactor,
		})
	}
	return out
}

func (p *Provider) place(date time.Time, residents []Creature) Entry {
	creatures := make([]Creature, len(residents))
	for i, c := range residents {
		c.XRatio = 0.10 + p.rng.Float32()*0.80
		c.YRatio = 0.15 + p.rng.Float32()*0.57
		c.Flipped = p.rng.Intn(2) == 1
		creatures[i] = c
	}
	return Entry{Date: date, Mode: tank.TimeOfDayAt(date), Creatures: creatures}
}

func (p *Provider) load() []tank.SharedCreature {
	if p.shared == nil {
		return tank.DefaultShared()
	}
	list, err := tank.LoadShared(p.shared)
	if err != nil {
		p.log.Warn("widget snapshot unreadable, using defaults", zap.Error(err))
	}
	return list
}

func decode(data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}
