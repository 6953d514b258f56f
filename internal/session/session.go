// Package session drives a single interactive run through a workout plan:
// a short warm-up, then alternating work/rest countdowns per exercise. The
// machine is pure; the caller owns the one-second timer and feeds Tick.
package session

import (
	"fmt"

	"fittick/internal/models"
)

// Phase is the machine's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWarmup
	PhaseWork
	PhaseRest
	PhaseComplete
	PhaseCancelled
)

func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseWork:
		return "work"
	case PhaseRest:
		return "rest"
	case PhaseComplete:
		return "complete"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// CueKind classifies a spoken/visual cue emitted by the machine.
type CueKind int

const (
	// CueAnnounce marks a phase entry ("Start burpees", "Rest").
	CueAnnounce CueKind = iota
	// CueHalfway fires once at the midpoint of a work phase.
	CueHalfway
	// CueCountdown fires each second during the final three seconds of a phase.
	CueCountdown
	// CueComplete fires exactly once when the session finishes naturally.
	CueComplete
)

// Cue is one spoken/visual prompt. Seconds is set for CueCountdown.
type Cue struct {
	Kind    CueKind
	Text    string
	Seconds int
}

// DefaultWarmupSeconds is the fixed get-ready countdown before the first
// exercise.
const DefaultWarmupSeconds = 5

// Machine is the workout session state machine. It never touches the plan's
// completion history; the caller records a completion when Completed reports
// true.
type Machine struct {
	plan       *models.WorkoutPlan
	warmup     int
	phase      Phase
	index      int
	remaining  int
	phaseTotal int
	completed  bool
}

// New builds a machine for one run through plan. A negative warmupSeconds
// selects the default; zero means no warm-up at all.
func New(plan *models.WorkoutPlan, warmupSeconds int) *Machine {
	if warmupSeconds < 0 {
		warmupSeconds = DefaultWarmupSeconds
	}
	return &Machine{
		plan:   plan,
		warmup: warmupSeconds,
		phase:  PhaseIdle,
		index:  -1,
	}
}

// Start moves the machine from Idle into the warm-up countdown.
func (m *Machine) Start() ([]Cue, error) {
	if m.phase != PhaseIdle {
		return nil, fmt.Errorf("session already started")
	}
	if len(m.plan.Exercises) == 0 {
		return nil, fmt.Errorf("workout plan %q has no exercises", m.plan.Name)
	}
	m.phase = PhaseWarmup
	m.phaseTotal = m.warmup
	m.remaining = m.warmup
	if m.remaining == 0 {
		// No warm-up configured: go straight to the first exercise.
		return m.advance(), nil
	}
	return []Cue{{Kind: CueAnnounce, Text: "Get ready to start"}}, nil
}

// Running reports whether the machine is in a countdown phase.
func (m *Machine) Running() bool {
	switch m.phase {
	case PhaseWarmup, PhaseWork, PhaseRest:
		return true
	}
	return false
}

// Tick advances the countdown by one second and returns any cues due. Once
// the machine leaves its running phases, further ticks are no-ops.
func (m *Machine) Tick() []Cue {
	if !m.Running() {
		return nil
	}

	m.remaining--
	if m.remaining <= 0 {
		return m.advance()
	}

	var cues []Cue
	if m.phase == PhaseWork && m.remaining == m.phaseTotal/2 {
		cues = append(cues, Cue{Kind: CueHalfway, Text: "Halfway there!"})
	}
	if m.remaining <= 3 {
		cues = append(cues, Cue{Kind: CueCountdown, Text: fmt.Sprintf("%d", m.remaining), Seconds: m.remaining})
	}
	return cues
}

// Skip force-expires the current phase, triggering the same transition as a
// natural expiry.
func (m *Machine) Skip() []Cue {
	if !m.Running() {
		return nil
	}
	m.remaining = 0
	return m.advance()
}

// Cancel terminates the session. The plan's completion history is untouched.
// Cancelling is permitted from any state and never fails; after Cancel no
// further ticks have any effect.
func (m *Machine) Cancel() {
	if m.phase == PhaseComplete || m.phase == PhaseCancelled {
		return
	}
	m.phase = PhaseCancelled
	m.remaining = 0
}

// advance performs the expiry transition for the current phase. Zero-length
// phases (a rest of 0 seconds) are passed through without consuming a tick.
func (m *Machine) advance() []Cue {
	var cues []Cue
	for {
		switch m.phase {
		case PhaseWarmup, PhaseRest:
			m.index++
			ex := m.plan.Exercises[m.index]
			m.phase = PhaseWork
			m.phaseTotal = ex.WorkSeconds
			m.remaining = ex.WorkSeconds
			cues = append(cues, Cue{Kind: CueAnnounce, Text: "Start " + ex.Name})
		case PhaseWork:
			if m.index >= len(m.plan.Exercises)-1 {
				m.phase = PhaseComplete
				m.completed = true
				return append(cues, Cue{Kind: CueComplete, Text: "Workout complete!"})
			}
			ex := m.plan.Exercises[m.index]
			m.phase = PhaseRest
			m.phaseTotal = ex.RestSeconds
			m.remaining = ex.RestSeconds
			cues = append(cues, Cue{Kind: CueAnnounce, Text: "Rest"})
		default:
			return cues
		}
		if m.remaining > 0 {
			return cues
		}
	}
}

// Completed reports whether the session finished naturally (not cancelled).
func (m *Machine) Completed() bool { return m.completed }

func (m *Machine) Phase() Phase { return m.phase }

// Remaining returns the seconds left in the current phase.
func (m *Machine) Remaining() int { return m.remaining }

// PhaseTotal returns the full duration of the current phase.
func (m *Machine) PhaseTotal() int { return m.phaseTotal }

// ExerciseNumber returns the 1-based position of the current exercise, for
// display. During the warm-up it returns 1.
func (m *Machine) ExerciseNumber() int {
	if m.index < 0 {
		return 1
	}
	return m.index + 1
}

// CurrentExercise returns the exercise being worked or rested from, or false
// during the warm-up.
func (m *Machine) CurrentExercise() (models.Exercise, bool) {
	if m.index < 0 || m.index >= len(m.plan.Exercises) {
		return models.Exercise{}, false
	}
	return m.plan.Exercises[m.index], true
}

// Upcoming returns up to n exercises after the current one.
func (m *Machine) Upcoming(n int) []models.Exercise {
	start := m.index + 1
	if start >= len(m.plan.Exercises) {
		return nil
	}
	end := start + n
	if end > len(m.plan.Exercises) {
		end = len(m.plan.Exercises)
	}
	return m.plan.Exercises[start:end]
}

// TotalRemaining returns the seconds left in the whole session, including
// the current phase and every future work/rest interval. There is no rest
// after the last exercise.
func (m *Machine) TotalRemaining() int {
	if !m.Running() {
		return 0
	}
	total := m.remaining
	last := len(m.plan.Exercises) - 1
	if m.phase == PhaseWork && m.index < last {
		total += m.plan.Exercises[m.index].RestSeconds
	}
	for i := m.index + 1; i <= last; i++ {
		total += m.plan.Exercises[i].WorkSeconds
		if i < last {
			total += m.plan.Exercises[i].RestSeconds
		}
	}
	return total
}
