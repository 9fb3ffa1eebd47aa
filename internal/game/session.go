// Package game implements the core of the toe-curl exercise game:
// calibration, repetition classification, object spawning and fall
// simulation, scoring, and the session lifecycle. The package performs no
// I/O; an adapter drives it through Tick and renders from Snapshot.
package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

// Phase is the session lifecycle state.
type Phase int

// Session lifecycle states.
const (
	PhaseWaiting Phase = iota
	PhaseCalibrating
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseCalibrating:
		return "calibrating"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// TickInput carries the external inputs for one tick. The adapter buffers
// discrete inputs such as restart and hands them over here; nothing mutates
// the session mid-tick.
type TickInput struct {
	TrackingActive bool
	RawAngle       float64
	Restart        bool
}

// Snapshot is a copy of the display state after a tick.
type Snapshot struct {
	Phase       Phase
	Tracking    bool
	Calibration float64
	Score       int
	Combo       int
	Reps        int
	RepPhase    RepPhase
	CurrentHold time.Duration
	BestHold    time.Duration
	Remaining   time.Duration
	Magnitude   float64
	CatcherY    float64
	CatchRadius float64
	Caught      int
	Missed      int
	Objects     []Object
}

// Controller owns one game session and advances it one tick at a time. The
// driver samples a monotonic clock once per frame and passes it to Tick; all
// per-tick decisions are made against that single timestamp.
type Controller struct {
	cfg Config
	rng *rand.Rand

	phase     Phase
	cal       calibrator
	calPct    float64
	ackAt     time.Time
	ref       *Reference
	reps      repTracker
	spawn     spawner
	field     field
	board     scoreboard
	startedAt time.Time
	lastTick  time.Time
	magnitude float64
	catcherY  float64
	tracking  bool
	nextID    uint64
}

// NewController builds a controller in the Waiting phase.
func NewController(cfg Config, rng *rand.Rand) *Controller {
	c := &Controller{cfg: cfg, rng: rng}
	c.cal.window = cfg.CalibrationTime
	c.reps.threshold = cfg.CurlThreshold
	c.field.radius = cfg.CatchRadius
	c.board.reset()
	c.catcherY = CatcherMinY
	return c
}

// Tick advances the session to now and returns the events the step produced.
func (c *Controller) Tick(now time.Time, in TickInput) []Event {
	var dt float64
	if !c.lastTick.IsZero() {
		dt = now.Sub(c.lastTick).Seconds()
	}
	c.lastTick = now
	c.tracking = in.TrackingActive

	// Restart is only honored on the results screen; while Waiting it is a
	// no-op and elsewhere it is ignored.
	if in.Restart && c.phase == PhaseGameOver {
		c.resetSession()
		c.phase = PhaseWaiting
		return []Event{PhaseChanged{From: PhaseGameOver, To: PhaseWaiting}}
	}

	switch c.phase {
	case PhaseWaiting:
		return c.tickWaiting(now, in)
	case PhaseCalibrating:
		return c.tickCalibrating(now, in)
	case PhasePlaying:
		return c.tickPlaying(now, in, dt)
	}
	return nil
}

func (c *Controller) tickWaiting(now time.Time, in TickInput) []Event {
	if !in.TrackingActive {
		return nil
	}
	c.cal.begin(now)
	c.calPct = 0
	c.phase = PhaseCalibrating
	return []Event{PhaseChanged{From: PhaseWaiting, To: PhaseCalibrating}}
}

func (c *Controller) tickCalibrating(now time.Time, in TickInput) []Event {
	// After capture the phase lingers for a short acknowledgment window so
	// the player sees the completed bar before play begins.
	if !c.ackAt.IsZero() {
		if !in.TrackingActive {
			c.abortCalibration()
			return []Event{PhaseChanged{From: PhaseCalibrating, To: PhaseWaiting}}
		}
		if now.Before(c.ackAt) {
			return nil
		}
		return c.beginPlaying(now)
	}
	progress, done, aborted := c.cal.tick(now, in.TrackingActive)
	if aborted {
		c.abortCalibration()
		return []Event{PhaseChanged{From: PhaseCalibrating, To: PhaseWaiting}}
	}
	c.calPct = progress
	events := []Event{CalibrationProgress{Progress: progress}}
	if done {
		c.ref = &Reference{Angle: in.RawAngle, At: now}
		c.ackAt = now.Add(c.cfg.CalibrationAck)
		events = append(events, CalibrationDone{Reference: in.RawAngle})
	}
	return events
}

func (c *Controller) tickPlaying(now time.Time, in TickInput, dt float64) []Event {
	if now.Sub(c.startedAt) >= c.cfg.SessionDuration {
		return c.finish(now)
	}

	var events []Event

	// Motion-derived state freezes while tracking is lost; the clock, the
	// spawner and the fall keep running against the frozen catcher.
	if in.TrackingActive && c.ref != nil {
		angle := math.Abs(in.RawAngle - c.ref.Angle)
		c.magnitude = math.Min(1, angle/c.cfg.MaxCurlAngle)
		c.catcherY = CatcherMinY + c.magnitude*(CatcherMaxY-CatcherMinY)
		events = append(events, c.reps.tick(now, angle)...)
	}

	if cat, ok := c.spawn.maybeSpawn(now, c.rng); ok {
		obj := c.newObject(cat, now)
		c.field.add(obj)
		events = append(events, ObjectSpawned{Object: obj})
	}

	for _, out := range c.field.step(dt, 0, c.catcherY) {
		if out.caught {
			points, comboUp := c.board.catch(out.obj.Category)
			events = append(events, ObjectCaught{Object: out.obj, Points: points})
			if comboUp {
				events = append(events, ComboUp{Combo: c.board.combo})
			}
		} else {
			c.board.miss()
			events = append(events, ObjectMissed{Object: out.obj})
		}
	}
	return events
}

func (c *Controller) beginPlaying(now time.Time) []Event {
	c.phase = PhasePlaying
	c.ackAt = time.Time{}
	c.startedAt = now
	c.board.reset()
	c.reps.reset()
	c.field.reset()
	c.spawn.reset(c.cfg, now)
	c.magnitude = 0
	c.catcherY = CatcherMinY
	return []Event{PhaseChanged{From: PhaseCalibrating, To: PhasePlaying}}
}

func (c *Controller) finish(now time.Time) []Event {
	c.phase = PhaseGameOver
	c.field.reset()
	rec := model.SessionRecord{
		StartedAt:       c.startedAt,
		EndedAt:         now,
		DurationSeconds: int(c.cfg.SessionDuration / time.Second),
		Score:           c.board.score,
		Reps:            c.reps.count,
		BestHoldMs:      c.reps.best.Milliseconds(),
		Caught:          c.board.caught,
		Missed:          c.board.missed,
		MaxCombo:        c.board.maxCombo,
	}
	return []Event{
		PhaseChanged{From: PhasePlaying, To: PhaseGameOver},
		SessionFinished{Record: rec},
	}
}

func (c *Controller) abortCalibration() {
	c.phase = PhaseWaiting
	c.ref = nil
	c.ackAt = time.Time{}
	c.calPct = 0
}

func (c *Controller) resetSession() {
	c.ref = nil
	c.ackAt = time.Time{}
	c.calPct = 0
	c.board.reset()
	c.reps.reset()
	c.field.reset()
	c.magnitude = 0
	c.catcherY = CatcherMinY
	c.startedAt = time.Time{}
}

func (c *Controller) newObject(cat Category, now time.Time) Object {
	c.nextID++
	return Object{
		ID:        c.nextID,
		Category:  cat,
		X:         -SpawnBand + c.rng.Float64()*2*SpawnBand,
		Height:    SpawnY,
		Speed:     cat.MinSpeed + c.rng.Float64()*(cat.MaxSpeed-cat.MinSpeed),
		SpawnedAt: now,
	}
}

// Snapshot returns a copy of the current display state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Phase:       c.phase,
		Tracking:    c.tracking,
		Calibration: c.calPct,
		Score:       c.board.score,
		Combo:       c.board.combo,
		Reps:        c.reps.count,
		RepPhase:    c.reps.phase,
		CurrentHold: c.reps.current,
		BestHold:    c.reps.best,
		Magnitude:   c.magnitude,
		CatcherY:    c.catcherY,
		CatchRadius: c.cfg.CatchRadius,
		Caught:      c.board.caught,
		Missed:      c.board.missed,
	}
	switch c.phase {
	case PhasePlaying:
		remaining := c.cfg.SessionDuration - c.lastTick.Sub(c.startedAt)
		if remaining < 0 {
			remaining = 0
		}
		s.Remaining = remaining
	case PhaseGameOver:
		s.Remaining = 0
	default:
		s.Remaining = c.cfg.SessionDuration
	}
	if len(c.field.objects) > 0 {
		s.Objects = make([]Object, len(c.field.objects))
		copy(s.Objects, c.field.objects)
	}
	return s
}
