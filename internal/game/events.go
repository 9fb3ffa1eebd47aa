// Package game implements the exercise game core.
package game

import (
	"time"

	"github.com/skxlly-cyber/ar-toe-rehab/internal/model"
)

// Event is a state-change notification produced during a tick. Adapters
// type-switch on the concrete types below; the order within the returned
// slice is the order the changes happened.
type Event interface{ event() }

// PhaseChanged reports a session lifecycle transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

// CalibrationProgress reports the elapsed fraction of the capture window.
type CalibrationProgress struct {
	Progress float64
}

// CalibrationDone reports the captured reference angle in degrees.
type CalibrationDone struct {
	Reference float64
}

// RepCompleted reports one finished repetition cycle.
type RepCompleted struct {
	Count int
	Hold  time.Duration
}

// RepMilestone fires on every 10th completed repetition.
type RepMilestone struct {
	Count int
}

// ObjectSpawned reports a new falling object.
type ObjectSpawned struct {
	Object Object
}

// ObjectCaught reports a catch and the points it scored.
type ObjectCaught struct {
	Object Object
	Points int
}

// ObjectMissed reports an object that fell past the floor.
type ObjectMissed struct {
	Object Object
}

// ComboUp reports a raised combo multiplier.
type ComboUp struct {
	Combo int
}

// SessionFinished carries the summary of a timed-out session.
type SessionFinished struct {
	Record model.SessionRecord
}

func (PhaseChanged) event()        {}
func (CalibrationProgress) event() {}
func (CalibrationDone) event()     {}
func (RepCompleted) event()        {}
func (RepMilestone) event()        {}
func (ObjectSpawned) event()       {}
func (ObjectCaught) event()        {}
func (ObjectMissed) event()        {}
func (ComboUp) event()             {}
func (SessionFinished) event()     {}
