package game

import (
	"math/rand"
	"testing"
	"time"
)

func TestSpawnIntervalDecaysToFloor(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	var s spawner
	s.reset(cfg, time.Unix(0, 0))

	prev := s.interval
	for i := 0; i < 60; i++ {
		now := s.lastSpawn.Add(s.interval + time.Millisecond)
		if _, ok := s.maybeSpawn(now, rng); !ok {
			t.Fatalf("expected spawn %d to fire", i)
		}
		if s.interval > prev {
			t.Fatalf("interval increased from %v to %v", prev, s.interval)
		}
		if s.interval < cfg.SpawnFloor {
			t.Fatalf("interval %v dropped below floor %v", s.interval, cfg.SpawnFloor)
		}
		prev = s.interval
	}
	if s.interval != cfg.SpawnFloor {
		t.Fatalf("expected interval to settle at %v, got %v", cfg.SpawnFloor, s.interval)
	}
}

func TestSpawnRequiresStrictlyElapsedInterval(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))
	var s spawner
	start := time.Unix(0, 0)
	s.reset(cfg, start)

	if _, ok := s.maybeSpawn(start.Add(cfg.SpawnInterval), rng); ok {
		t.Fatalf("spawn fired at exactly the interval boundary")
	}
	if _, ok := s.maybeSpawn(start.Add(cfg.SpawnInterval+time.Millisecond), rng); !ok {
		t.Fatalf("expected spawn just past the interval")
	}
}

func TestSpawnCategoriesFromFixedSet(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(42))
	var s spawner
	s.reset(cfg, time.Unix(0, 0))

	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		now := s.lastSpawn.Add(s.interval + time.Millisecond)
		cat, ok := s.maybeSpawn(now, rng)
		if !ok {
			t.Fatalf("expected spawn %d to fire", i)
		}
		switch cat.Points {
		case 10, 15, 20:
			seen[cat.Points] = true
		default:
			t.Fatalf("unexpected category points %d", cat.Points)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected all 3 categories over 100 spawns, got %d", len(seen))
	}
}
