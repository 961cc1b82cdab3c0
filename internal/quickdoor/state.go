// Package quickdoor implements the Quick Door round scheduler: the timed
// state machine that arms a door, opens it after a random wait, scores hits
// and misses, and ramps the speed.
//
// The engine contains no terminal or storage code. Time, randomness and
// persistence are injected, so the scheduling logic runs deterministically
// under test with a ManualClock and a scripted Random.
package quickdoor

// DoorCount is the number of door positions.
const DoorCount = 4

// Feedback is the transient result tag shown after a round ends.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackSuccess
	FeedbackMiss
)

// String returns the feedback name.
func (f Feedback) String() string {
	switch f {
	case FeedbackNone:
		return "none"
	case FeedbackSuccess:
		return "success"
	case FeedbackMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Phase names the single round timer that is pending.
type Phase int

const (
	PhaseIdle     Phase = iota // No round timer (stopped)
	PhaseCooldown              // Rest after a hit, next round not yet armed
	PhaseWaiting               // Door armed and closed, waiting to open
	PhaseOpen                  // Door open, miss deadline pending
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCooldown:
		return "cooldown"
	case PhaseWaiting:
		return "waiting"
	case PhaseOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single RegisterAttempt call.
type Outcome int

const (
	OutcomeIgnored    Outcome = iota // Not running, or wrong door
	OutcomeClosedDoor                // Armed door was still closed: -1
	OutcomeHit                       // Armed door was open: +1
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeClosedDoor:
		return "closed-door"
	case OutcomeHit:
		return "hit"
	default:
		return "unknown"
	}
}

// State is a copy of the engine's game state handed to renderers.
type State struct {
	Score      int
	Best       int
	Running    bool
	Position   int  // Armed door, 0..DoorCount-1
	DoorOpen   bool // Whether the armed door is open
	SpeedMs    int
	Difficulty float64
	Feedback   Feedback
	Phase      Phase
}

// Level is the whole-number difficulty shown in the HUD.
func (s State) Level() int {
	return int(s.Difficulty)
}

// IsOpen reports whether door pos is currently open.
func (s State) IsOpen(pos int) bool {
	return s.DoorOpen && s.Position == pos
}
