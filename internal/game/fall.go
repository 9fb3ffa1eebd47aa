// Package game implements the exercise game core.
package game

import (
	"math"
	"time"
)

// Object is a live falling entity.
type Object struct {
	ID        uint64
	Category  Category
	X         float64
	Height    float64
	Speed     float64
	SpawnedAt time.Time
}

// outcome is the retirement result for one object.
type outcome struct {
	obj    Object
	caught bool
}

// field owns the live-object set and retires objects on catch or miss.
type field struct {
	radius  float64
	objects []Object
}

func (f *field) reset() {
	f.objects = f.objects[:0]
}

func (f *field) add(o Object) {
	f.objects = append(f.objects, o)
}

// step advances every live object by dt seconds, then tests catch before
// miss, so a frame where both would hold resolves as a catch. Each retired
// object leaves the live set with exactly one outcome; outcomes are returned
// in spawn order.
func (f *field) step(dt, catcherX, catcherY float64) []outcome {
	if len(f.objects) == 0 {
		return nil
	}
	var out []outcome
	live := f.objects[:0]
	for _, o := range f.objects {
		o.Height -= o.Speed * dt
		switch {
		case math.Hypot(o.X-catcherX, o.Height-catcherY) < f.radius:
			out = append(out, outcome{obj: o, caught: true})
		case o.Height < FloorY:
			out = append(out, outcome{obj: o, caught: false})
		default:
			live = append(live, o)
		}
	}
	f.objects = live
	return out
}
