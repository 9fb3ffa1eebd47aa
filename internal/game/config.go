// Package game implements the exercise game core.
package game

import "time"

// World geometry in abstract scene units. The catcher sits on the vertical
// axis at x = 0; objects spawn at SpawnY and are retired below FloorY.
const (
	SpawnY      = 0.3
	FloorY      = -0.3
	CatcherMinY = -0.2
	CatcherMaxY = 0.2
	SpawnBand   = 0.05
)

// Category describes one class of falling object.
type Category struct {
	Name     string
	Points   int
	MinSpeed float64
	MaxSpeed float64
}

// Categories is the fixed set of spawnable object classes.
var Categories = [...]Category{
	{Name: "amber", Points: 10, MinSpeed: 0.10, MaxSpeed: 0.16},
	{Name: "jade", Points: 15, MinSpeed: 0.14, MaxSpeed: 0.22},
	{Name: "ruby", Points: 20, MinSpeed: 0.18, MaxSpeed: 0.30},
}

// Config defines the tunable parameters of a game session.
type Config struct {
	SessionDuration time.Duration
	CurlThreshold   float64
	MaxCurlAngle    float64
	CatchRadius     float64
	SpawnInterval   time.Duration
	SpawnDecay      float64
	SpawnFloor      time.Duration
	CalibrationTime time.Duration
	CalibrationAck  time.Duration
}

// DefaultConfig returns the standard session parameters.
func DefaultConfig() Config {
	return Config{
		SessionDuration: 180 * time.Second,
		CurlThreshold:   15,
		MaxCurlAngle:    45,
		CatchRadius:     0.075,
		SpawnInterval:   2000 * time.Millisecond,
		SpawnDecay:      0.98,
		SpawnFloor:      800 * time.Millisecond,
		CalibrationTime: 3000 * time.Millisecond,
		CalibrationAck:  1000 * time.Millisecond,
	}
}
