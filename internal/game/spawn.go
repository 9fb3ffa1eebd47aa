// Package game implements the exercise game core.
package game

import (
	"math/rand"
	"time"
)

// spawner emits object categories at an adaptive interval. The interval
// shortens multiplicatively after every spawn and never drops below the
// configured floor.
type spawner struct {
	interval  time.Duration
	decay     float64
	floor     time.Duration
	lastSpawn time.Time
}

func (s *spawner) reset(cfg Config, now time.Time) {
	s.interval = cfg.SpawnInterval
	s.decay = cfg.SpawnDecay
	s.floor = cfg.SpawnFloor
	s.lastSpawn = now
}

// maybeSpawn reports a uniformly chosen category once the interval has
// strictly elapsed since the previous spawn.
func (s *spawner) maybeSpawn(now time.Time, rng *rand.Rand) (Category, bool) {
	if now.Sub(s.lastSpawn) <= s.interval {
		return Category{}, false
	}
	cat := Categories[rng.Intn(len(Categories))]
	s.lastSpawn = now
	s.interval = time.Duration(float64(s.interval) * s.decay)
	if s.interval < s.floor {
		s.interval = s.floor
	}
	return cat, true
}
