package game

import (
	"math"
	"testing"
	"time"
)

func TestFallMissesOnlyBelowFloor(t *testing.T) {
	f := field{radius: 0.075}
	f.add(Object{ID: 1, Height: SpawnY, Speed: 0.2, SpawnedAt: time.Unix(0, 0)})

	// 0.3 -> 0.1: too far from the catcher at 0, still above the floor
	if out := f.step(1, 0, 0); len(out) != 0 {
		t.Fatalf("expected no outcome at height 0.1, got %d", len(out))
	}
	if h := f.objects[0].Height; math.Abs(h-0.1) > 1e-9 {
		t.Fatalf("expected height 0.1, got %v", h)
	}

	// 0.1 -> -0.1: passes the catcher outside the radius
	if out := f.step(1, 0, 0); len(out) != 0 {
		t.Fatalf("expected no outcome at height -0.1, got %d", len(out))
	}

	// -0.1 -> below -0.3: miss
	out := f.step(1, 0, 0)
	if len(out) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(out))
	}
	if out[0].caught {
		t.Fatalf("expected a miss, got a catch")
	}
	if len(f.objects) != 0 {
		t.Fatalf("expected retired object removed, %d still live", len(f.objects))
	}
}

func TestObjectAtFloorStaysAlive(t *testing.T) {
	f := field{radius: 0.075}
	// One 0.25 step from FloorY+0.25 lands back exactly on FloorY.
	f.add(Object{ID: 1, X: 0.4, Height: FloorY + 0.25, Speed: 0.25})

	if out := f.step(1, 0, 0); len(out) != 0 {
		t.Fatalf("expected no outcome exactly at the floor, got %d", len(out))
	}
	if h := f.objects[0].Height; h != FloorY {
		t.Fatalf("expected height %v, got %v", FloorY, h)
	}

	out := f.step(1, 0, 0)
	if len(out) != 1 || out[0].caught {
		t.Fatalf("expected a miss below the floor, got %+v", out)
	}
}

func TestCatchWithinRadius(t *testing.T) {
	f := field{radius: 0.075}
	f.add(Object{ID: 1, X: 0.03, Height: 0.1, Speed: 0.2})

	out := f.step(0.5, 0, 0)
	if len(out) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(out))
	}
	if !out[0].caught {
		t.Fatalf("expected a catch at distance 0.03")
	}
}

func TestCatchBeatsMissOnSameTick(t *testing.T) {
	f := field{radius: 0.075}
	f.add(Object{ID: 1, Height: -0.25, Speed: 0.2})

	// After the update the object is below the floor and inside the catch
	// radius at the same time; the catch must win.
	out := f.step(0.5, 0, -0.33)
	if len(out) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(out))
	}
	if !out[0].caught {
		t.Fatalf("expected the catch to win over the miss")
	}
}

func TestRetiredObjectReportsOnce(t *testing.T) {
	f := field{radius: 0.075}
	f.add(Object{ID: 1, X: 0.03, Height: 0.1, Speed: 0.2})

	if out := f.step(0.5, 0, 0); len(out) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(out))
	}
	if out := f.step(0.5, 0, 0); len(out) != 0 {
		t.Fatalf("expected no further outcomes, got %d", len(out))
	}
}

func TestOutcomesKeepSpawnOrder(t *testing.T) {
	f := field{radius: 0.075}
	f.add(Object{ID: 1, X: 0.02, Height: 0.1, Speed: 0.2})
	f.add(Object{ID: 2, X: 0.4, Height: -0.29, Speed: 0.2})

	out := f.step(0.5, 0, 0)
	if len(out) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(out))
	}
	if out[0].obj.ID != 1 || !out[0].caught {
		t.Fatalf("expected object 1 caught first, got %+v", out[0])
	}
	if out[1].obj.ID != 2 || out[1].caught {
		t.Fatalf("expected object 2 missed second, got %+v", out[1])
	}
}
