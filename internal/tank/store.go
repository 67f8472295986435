package tank

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/pkg/math"
)

// Storage keys.
const (
	CreaturesKey = "aquarium_creatures" // App store: full creature list
	SharedKey    = "shared_creatures"   // Shared store: widget snapshot
)

// SharedCreature is the reduced record the widget reads: identity, look and
// size, but no live position.
type SharedCreature struct {
	ID        uuid.UUID    `yaml:"id"`
	Species   Species      `yaml:"species,omitempty"`
	ImageData storage.Blob `yaml:"image_data,omitempty"`
	Size      float32      `yaml:"size"`
}

// LoadCreatures reads the saved creature list. A missing key yields an empty
// list and storage.ErrNotFound.
func LoadCreatures(s storage.Store) ([]Creature, error) {
	var list []Creature
	if err := storage.Load(s, CreaturesKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveCreatures writes the full creature list.
func SaveCreatures(s storage.Store, list []Creature) error {
	if list == nil {
		list = []Creature{}
	}
	return storage.Save(s, CreaturesKey, list)
}

// SaveShared writes the widget snapshot derived from list.
func SaveShared(s storage.Store, list []Creature) error {
	shared := make([]SharedCreature, 0, len(list))
	for i := range list {
		c := &list[i]
		shared = append(shared, SharedCreature{
			ID:        c.ID,
			Species:   c.Species,
			ImageData: c.ImageData,
			Size:      c.Size,
		})
	}
	return storage.Save(s, SharedKey, shared)
}

// LoadShared reads the widget snapshot. Missing, unreadable or empty data
// falls back to DefaultShared; the error is returned alongside for logging.
func LoadShared(s storage.Store) ([]SharedCreature, error) {
	var list []SharedCreature
	err := storage.Load(s, SharedKey, &list)
	if err != nil || len(list) == 0 {
		if errors.Is(err, storage.ErrNotFound) {
			err = nil
		}
		return DefaultShared(), err
	}
	return list, nil
}

// DefaultShared is the snapshot shown before the app has ever run.
func DefaultShared() []SharedCreature {
	sizes := [...]float32{55, 45, 60, 40, 50}
	list := make([]SharedCreature, len(DefaultSpecies))
	for i, sp := range DefaultSpecies {
		list[i] = SharedCreature{ID: uuid.New(), Species: sp, Size: sizes[i]}
	}
	return list
}

// DefaultCreatures builds the starter set: one of each default species at a
// random position, size and speed, heading in a random direction.
func DefaultCreatures(rng *rand.Rand) []Creature {
	list := make([]Creature, 0, len(DefaultSpecies))
	for _, sp := range DefaultSpecies {
		list = append(list, Creature{
			ID:      uuid.New(),
			Species: sp,
			X:       randRange(rng, 60, 300),
			Y:       randRange(rng, 150, 500),
			Size:    randRange(rng, 40, 70),
			Speed:   randRange(rng, 1, 3),
			Angle:   rng.Float32() * math.TwoPi,
		})
	}
	return list
}

func validateCreatures(list []Creature) error {
	for i := range list {
		c := &list[i]
		if c.ID == uuid.Nil {
			return fmt.Errorf("creature %d: missing id", i)
		}
		if c.Species == "" && len(c.ImageData) == 0 {
			return fmt.Errorf("creature %s: no species or image", c.ID)
		}
		if c.Size <= 0 {
			return fmt.Errorf("creature %s: size %.1f", c.ID, c.Size)
		}
	}
	return nil
}
